package database

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// User represents a registered household member.
// The very first user ever created is granted admin rights so a fresh
// install always has someone who can review issue reports. Further admins
// can be seeded through the bootstrap_admin config option.
type User struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	IsAdmin      bool   `gorm:"default:false"`
}

// CreateUser creates a new user. It fails with ErrDuplicateUser if the
// username is already taken. The existence check, the first-user admin
// grant and the insert run in one transaction.
func (c *Client) CreateUser(ctx context.Context, username, passwordHash string) (*User, error) {
	user := User{
		Username:     username,
		PasswordHash: passwordHash,
	}

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing User
		err := tx.Where("username = ?", username).First(&existing).Error
		if err == nil {
			return ErrDuplicateUser
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var count int64
		if err := tx.Model(&User{}).Count(&count).Error; err != nil {
			return err
		}
		user.IsAdmin = count == 0

		return tx.Create(&user).Error
	})
	if err != nil {
		if !errors.Is(err, ErrDuplicateUser) {
			log.Error("failed to create user", "error", err)
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByID returns the user with the given id.
func (c *Client) GetUserByID(ctx context.Context, id uint) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		log.Error("failed to get user by ID", "error", err)
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername returns the user with the given username.
func (c *Client) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		log.Error("failed to get user by username", "error", err)
		return nil, err
	}
	return &user, nil
}

// GrantAdmin sets the admin flag on the named user. It is a no-op if the
// user is already an admin and fails with ErrUserNotFound if the user
// doesn't exist. Used by the startup bootstrap.
func (c *Client) GrantAdmin(ctx context.Context, username string) error {
	result := c.db.WithContext(ctx).Model(&User{}).Where("username = ?", username).Update("is_admin", true)
	if result.Error != nil {
		log.Error("failed to grant admin", "username", username, "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
