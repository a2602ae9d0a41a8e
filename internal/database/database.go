package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// Sentinel errors returned by the database client. Handlers translate
// these into user-facing flash notices.
var (
	ErrDuplicateUser   = errors.New("username already taken")
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
	ErrNotOwner        = errors.New("product is not owned by this user")
	ErrInvalidTarget   = errors.New("invalid transfer target")
)

// Client wraps the gorm.DB instance.
type Client struct {
	db *gorm.DB
}

// New creates a new database connection and performs migrations.
func New(dbpath string) (*Client, error) {
	db, err := gorm.Open(sqlite.Open(dbpath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.AutoMigrate(
		&User{},
		&Fridge{},
		&Product{},
		&IssueReport{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Client{db: db}, nil
}

// Close closes the underlying database connection.
func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Stats holds row counts for the db-stats command.
type Stats struct {
	Users          int64
	Fridges        int64
	Products       int64
	ActiveProducts int64
	GivenAway      int64
	IssueReports   int64
}

// GetStats returns row counts for all tables.
func (c *Client) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats

	counts := []struct {
		model any
		dest  *int64
		conds []any
	}{
		{&User{}, &stats.Users, nil},
		{&Fridge{}, &stats.Fridges, nil},
		{&Product{}, &stats.Products, nil},
		{&Product{}, &stats.ActiveProducts, []any{"status = ?", ProductStatusActive}},
		{&Product{}, &stats.GivenAway, []any{"status = ?", ProductStatusGivenAway}},
		{&IssueReport{}, &stats.IssueReports, nil},
	}

	for _, cnt := range counts {
		q := c.db.WithContext(ctx).Model(cnt.model)
		if cnt.conds != nil {
			q = q.Where(cnt.conds[0], cnt.conds[1:]...)
		}
		if err := q.Count(cnt.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count rows: %w", err)
		}
	}

	return &stats, nil
}
