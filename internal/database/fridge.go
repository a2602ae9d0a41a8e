package database

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// Fridge is a physical container that products and issue reports belong to.
// Only a single default fridge exists right now, but nothing else assumes
// that, so multi-fridge support stays an additive change.
type Fridge struct {
	gorm.Model
	Name string `gorm:"not null"`
}

// EnsureDefaultFridge returns the oldest fridge, creating one with the
// given name if none exists yet. It is idempotent and meant to run once
// at startup.
func (c *Client) EnsureDefaultFridge(ctx context.Context, name string) (*Fridge, error) {
	var fridge Fridge
	err := c.db.WithContext(ctx).Order("id").First(&fridge).Error
	if err == nil {
		return &fridge, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error("failed to look up default fridge", "error", err)
		return nil, err
	}

	fridge = Fridge{Name: name}
	if err := c.db.WithContext(ctx).Create(&fridge).Error; err != nil {
		log.Error("failed to create default fridge", "error", err)
		return nil, err
	}
	log.Info("created default fridge", "name", name)
	return &fridge, nil
}
