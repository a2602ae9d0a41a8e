package handler

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ccoveille/go-safecast"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/mkowalik/fridgekeep/internal/database"
)

const dateLayout = "2006-01-02"

// ListProducts shows the calling user's products, soonest-expiring first,
// optionally filtered by exact category match.
func (h *Handler) ListProducts(c *gin.Context) {
	user := currentUser(c)
	category := c.Query("category")

	products, err := h.db.ListProductsByOwner(c.Request.Context(), user.ID, category)
	if err != nil {
		flashAndRedirect(c, "Failed to load products", "/")
		return
	}

	h.render(c, "products.html", gin.H{
		"Products":   products,
		"Category":   category,
		"Categories": h.cfg.Categories,
		"Today":      time.Now(),
	})
}

func (h *Handler) AddProductPage(c *gin.Context) {
	h.render(c, "add_product.html", gin.H{
		"Categories": h.cfg.Categories,
	})
}

// AddProduct creates a product for the session user in the default fridge.
// Malformed dates and quantities are rejected with a notice instead of
// failing the request.
func (h *Handler) AddProduct(c *gin.Context) {
	user := currentUser(c)

	name := c.PostForm("name")
	if name == "" {
		flashAndRedirect(c, "Product name is required", "/add_product")
		return
	}

	purchase, err := time.Parse(dateLayout, c.PostForm("purchase_date"))
	if err != nil {
		flashAndRedirect(c, "Invalid purchase date, use YYYY-MM-DD", "/add_product")
		return
	}
	expiration, err := time.Parse(dateLayout, c.PostForm("expiration_date"))
	if err != nil {
		flashAndRedirect(c, "Invalid expiration date, use YYYY-MM-DD", "/add_product")
		return
	}

	quantity := 1
	if q := c.PostForm("quantity"); q != "" {
		quantity, err = strconv.Atoi(q)
		if err != nil || quantity < 0 {
			flashAndRedirect(c, "Invalid quantity", "/add_product")
			return
		}
	}

	category := c.PostForm("category")
	if len(h.cfg.Categories) > 0 && !lo.Contains(h.cfg.Categories, category) {
		flashAndRedirect(c, fmt.Sprintf("Unknown category %q", category), "/add_product")
		return
	}

	// Only the two lifecycle states exist, anything else falls back to active.
	status := database.ProductStatus(c.PostForm("status"))
	if status != database.ProductStatusGivenAway {
		status = database.ProductStatusActive
	}

	product := &database.Product{
		Name:           name,
		PurchaseDate:   purchase,
		ExpirationDate: expiration,
		Category:       category,
		Quantity:       quantity,
		Notes:          c.PostForm("notes"),
		Status:         status,
		UserID:         user.ID,
		FridgeID:       h.fridge.ID,
	}
	if err := h.db.CreateProduct(c.Request.Context(), product); err != nil {
		flashAndRedirect(c, "Failed to add product", "/add_product")
		return
	}

	flashAndRedirect(c, "Product added", "/products")
}

func (h *Handler) TransferPage(c *gin.Context) {
	user := currentUser(c)

	productID, err := productIDParam(c)
	if err != nil {
		flashAndRedirect(c, "Product not found", "/products")
		return
	}

	product, err := h.db.GetProductByID(c.Request.Context(), productID)
	if err != nil {
		flashAndRedirect(c, "Product not found", "/products")
		return
	}
	if product.UserID != user.ID {
		flashAndRedirect(c, "Access denied", "/products")
		return
	}

	h.render(c, "transfer.html", gin.H{
		"Product": product,
	})
}

// Transfer reassigns ownership of a product to another registered user and
// marks it as given away.
func (h *Handler) Transfer(c *gin.Context) {
	user := currentUser(c)

	productID, err := productIDParam(c)
	if err != nil {
		flashAndRedirect(c, "Product not found", "/products")
		return
	}
	transferURL := fmt.Sprintf("/transfer/%d", productID)

	if _, err := h.db.GetProductByID(c.Request.Context(), productID); err != nil {
		flashAndRedirect(c, "Product not found", "/products")
		return
	}

	target, err := h.db.GetUserByUsername(c.Request.Context(), c.PostForm("username"))
	if err != nil {
		flashAndRedirect(c, "Invalid user", transferURL)
		return
	}

	err = h.db.TransferProduct(c.Request.Context(), productID, user.ID, target.ID)
	switch {
	case errors.Is(err, database.ErrInvalidTarget):
		flashAndRedirect(c, "Invalid user", transferURL)
	case errors.Is(err, database.ErrNotOwner):
		flashAndRedirect(c, "Access denied", "/products")
	case err != nil:
		flashAndRedirect(c, "Failed to transfer product", "/products")
	default:
		flashAndRedirect(c, "Product transferred", "/products")
	}
}

func productIDParam(c *gin.Context) (uint, error) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return safecast.ToUint(id64)
}
