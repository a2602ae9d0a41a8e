package database

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// ProductStatus represents the lifecycle state of a product.
type ProductStatus string

const (
	ProductStatusActive    ProductStatus = "active"
	ProductStatusGivenAway ProductStatus = "given_away"
)

// Product is a perishable item tracked in a fridge. Products are never
// deleted; the only mutation is a transfer, which reassigns the owner and
// flips the status to given_away.
type Product struct {
	gorm.Model
	Name           string        `gorm:"not null"`
	PurchaseDate   time.Time     `gorm:"not null"`
	ExpirationDate time.Time     `gorm:"not null"`
	Category       string        `gorm:"not null"`
	Quantity       int           `gorm:"default:1"`
	Notes          string
	Status         ProductStatus `gorm:"default:active"`
	UserID         uint          `gorm:"not null;index"`
	User           User
	FridgeID       uint          `gorm:"not null"`
	Fridge         Fridge
}

// CreateProduct persists a new product.
func (c *Client) CreateProduct(ctx context.Context, product *Product) error {
	if product.Status == "" {
		product.Status = ProductStatusActive
	}
	if err := c.db.WithContext(ctx).Create(product).Error; err != nil {
		log.Error("failed to create product", "error", err)
		return err
	}
	return nil
}

// GetProductByID returns the product with the given id.
func (c *Client) GetProductByID(ctx context.Context, id uint) (*Product, error) {
	var product Product
	if err := c.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		log.Error("failed to get product by ID", "error", err)
		return nil, err
	}
	return &product, nil
}

// ListProductsByOwner returns the products owned by the given user,
// optionally filtered by exact category match, ordered by expiration date
// so the soonest-expiring products come first.
func (c *Client) ListProductsByOwner(ctx context.Context, ownerID uint, category string) ([]Product, error) {
	query := c.db.WithContext(ctx).Where("user_id = ?", ownerID)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var products []Product
	if err := query.Order("expiration_date").Find(&products).Error; err != nil {
		log.Error("failed to list products", "owner", ownerID, "error", err)
		return nil, err
	}
	return products, nil
}

// TransferProduct reassigns ownership of a product from one user to
// another and marks it as given away. The update is conditional on the
// current owner, so two concurrent transfers of the same product cannot
// both succeed. Fails with ErrInvalidTarget when the target equals the
// current owner and ErrNotOwner when the product doesn't belong to the
// caller anymore (or never did).
func (c *Client) TransferProduct(ctx context.Context, productID, fromUserID, toUserID uint) error {
	if fromUserID == toUserID {
		return ErrInvalidTarget
	}

	result := c.db.WithContext(ctx).Model(&Product{}).
		Where("id = ? AND user_id = ?", productID, fromUserID).
		Updates(map[string]any{
			"user_id": toUserID,
			"status":  ProductStatusGivenAway,
		})
	if result.Error != nil {
		log.Error("failed to transfer product", "product", productID, "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotOwner
	}
	return nil
}
