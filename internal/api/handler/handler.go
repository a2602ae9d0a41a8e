package handler

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/mkowalik/fridgekeep/internal/api/models"
	"github.com/mkowalik/fridgekeep/internal/config"
	"github.com/mkowalik/fridgekeep/internal/database"
)

type Handler struct {
	db     *database.Client
	cfg    *config.Config
	fridge *database.Fridge
}

func New(db *database.Client, cfg *config.Config, fridge *database.Fridge) *Handler {
	return &Handler{
		db:     db,
		cfg:    cfg,
		fridge: fridge,
	}
}

// Home redirects to the product list for authenticated users and to the
// login page otherwise.
func (h *Handler) Home(c *gin.Context) {
	session := sessions.Default(c)
	if session.Get("user_id") != nil {
		c.Redirect(http.StatusFound, "/products")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) LoginPage(c *gin.Context) {
	session := sessions.Default(c)
	if session.Get("user_id") != nil {
		c.Redirect(http.StatusFound, "/products")
		return
	}
	h.render(c, "login.html", gin.H{})
}

func (h *Handler) RegisterPage(c *gin.Context) {
	h.render(c, "register.html", gin.H{})
}

// render writes an HTML page, injecting the session user and any pending
// flash notices into the template data.
func (h *Handler) render(c *gin.Context, name string, data gin.H) {
	if user, ok := c.Get("user"); ok {
		data["User"] = user.(*models.User)
	}
	data["Flashes"] = takeFlashes(c)
	c.HTML(http.StatusOK, name, data)
}

// takeFlashes drains the pending flash notices from the session.
func takeFlashes(c *gin.Context) []string {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	// Reading flashes removes them, the session must be saved to persist that.
	if err := session.Save(); err != nil {
		log.Error("failed to save session", "error", err)
	}
	notices := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			notices = append(notices, s)
		}
	}
	return notices
}

func flashAndRedirect(c *gin.Context, notice, location string) {
	session := sessions.Default(c)
	session.AddFlash(notice)
	if err := session.Save(); err != nil {
		log.Error("failed to save session", "error", err)
	}
	c.Redirect(http.StatusFound, location)
}

func currentUser(c *gin.Context) *models.User {
	return c.MustGet("user").(*models.User)
}
