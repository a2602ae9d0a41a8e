package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/mkowalik/fridgekeep/internal/api/models"
	"github.com/mkowalik/fridgekeep/internal/database"
)

// Provider implements username/password authentication backed by the
// database. Session state identifies the current user for the rest of the
// request handlers.
type Provider struct {
	db *database.Client
}

func New(db *database.Client) *Provider {
	return &Provider{db: db}
}

// Register handles the registration form submission. It does not log the
// new user in.
func (p *Provider) Register(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	if username == "" || password == "" {
		flashAndRedirect(c, "Username and password are required", "/register")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		flashAndRedirect(c, "Registration failed, please try again", "/register")
		return
	}

	user, err := p.db.CreateUser(c.Request.Context(), username, string(hash))
	if err != nil {
		if errors.Is(err, database.ErrDuplicateUser) {
			flashAndRedirect(c, "Username already taken", "/register")
			return
		}
		flashAndRedirect(c, "Registration failed, please try again", "/register")
		return
	}

	log.Info("registered new user", "username", user.Username, "admin", user.IsAdmin)
	flashAndRedirect(c, "Registration complete, please log in", "/login")
}

// Login handles the login form submission and establishes the session.
func (p *Provider) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	user, err := p.db.GetUserByUsername(c.Request.Context(), username)
	if err != nil {
		// Same notice for unknown user and bad password, no username probing.
		flashAndRedirect(c, "Invalid credentials", "/login")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		flashAndRedirect(c, "Invalid credentials", "/login")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Set("user_username", user.Username)
	session.Set("user_is_admin", user.IsAdmin)
	if err := session.Save(); err != nil {
		log.Error("failed to save session", "error", err)
		flashAndRedirect(c, "Login failed, please try again", "/login")
		return
	}

	c.Redirect(http.StatusFound, "/products")
}

// Logout clears the session. It is idempotent and safe without one.
func (p *Provider) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.AddFlash("Logged out")
	if err := session.Save(); err != nil {
		log.Error("failed to save session", "error", err)
	}
	c.Redirect(http.StatusFound, "/login")
}

// RequireAuth returns middleware that redirects to the login page when no
// session is active, and otherwise puts the session user into the context.
func (p *Provider) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")
		if userID == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		// create user model from session data
		user := &models.User{
			ID:       userID.(uint),
			Username: getSessionString(session, "user_username"),
			IsAdmin:  getSessionBool(session, "user_is_admin"),
		}

		c.Set("user_id", userID)
		c.Set("user", user)
		c.Next()
	}
}

// RequireAdmin returns middleware that rejects non-admin users.
func (p *Provider) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := c.MustGet("user").(*models.User)
		if !ok || !user.IsAdmin {
			flashAndRedirect(c, "Access denied", "/products")
			c.Abort()
			return
		}
		c.Next()
	}
}

func flashAndRedirect(c *gin.Context, notice, location string) {
	session := sessions.Default(c)
	session.AddFlash(notice)
	if err := session.Save(); err != nil {
		log.Error("failed to save session", "error", err)
	}
	c.Redirect(http.StatusFound, location)
}

func getSessionString(session sessions.Session, key string) string {
	if v, ok := session.Get(key).(string); ok {
		return v
	}
	return ""
}

func getSessionBool(session sessions.Session, key string) bool {
	if v, ok := session.Get(key).(bool); ok {
		return v
	}
	return false
}
