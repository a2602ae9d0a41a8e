package database

import (
	"context"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// IssueReport is an insert-only complaint record tied to a user and a
// fridge. CreatedAt doubles as the report timestamp.
type IssueReport struct {
	gorm.Model
	IssueType   string `gorm:"not null"`
	Description string `gorm:"not null"`
	UserID      uint   `gorm:"not null;index"`
	User        User
	FridgeID    uint `gorm:"not null"`
	Fridge      Fridge
}

// CreateIssueReport persists a new issue report.
func (c *Client) CreateIssueReport(ctx context.Context, report *IssueReport) error {
	if err := c.db.WithContext(ctx).Create(report).Error; err != nil {
		log.Error("failed to create issue report", "error", err)
		return err
	}
	return nil
}

// ListIssueReports returns all issue reports newest-first, with the
// reporting user preloaded for display.
func (c *Client) ListIssueReports(ctx context.Context) ([]IssueReport, error) {
	var reports []IssueReport
	if err := c.db.WithContext(ctx).Preload("User").Order("created_at DESC, id DESC").Find(&reports).Error; err != nil {
		log.Error("failed to list issue reports", "error", err)
		return nil, err
	}
	return reports, nil
}
