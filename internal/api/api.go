package api

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/mkowalik/fridgekeep/internal/api/auth"
	"github.com/mkowalik/fridgekeep/internal/api/handler"
	"github.com/mkowalik/fridgekeep/internal/config"
	"github.com/mkowalik/fridgekeep/internal/database"
	"github.com/mkowalik/fridgekeep/web"
)

type Server struct {
	cfg          *config.Config
	ginEngine    *gin.Engine
	db           *database.Client
	fridge       *database.Fridge
	authProvider *auth.Provider
}

func New(cfg *config.Config, db *database.Client, fridge *database.Fridge, debug bool) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	engine.SetHTMLTemplate(tmpl)

	return &Server{
		cfg:          cfg,
		ginEngine:    engine,
		db:           db,
		fridge:       fridge,
		authProvider: auth.New(db),
	}, nil
}

func (s *Server) setupSession() {
	store := cookie.NewStore([]byte(s.cfg.SessionKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   s.cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   false, // Set to true in production
		SameSite: http.SameSiteLaxMode,
	})
	s.ginEngine.Use(sessions.Sessions("fridgekeep_session", store))
}

func (s *Server) setupRoutes() {
	s.setupSession()

	h := handler.New(s.db, s.cfg, s.fridge)

	s.ginEngine.GET("/", h.Home)
	s.ginEngine.GET("/register", h.RegisterPage)
	s.ginEngine.POST("/register", s.authProvider.Register)
	s.ginEngine.GET("/login", h.LoginPage)
	s.ginEngine.POST("/login", s.authProvider.Login)
	s.ginEngine.GET("/logout", s.authProvider.Logout)

	protected := s.ginEngine.Group("/")
	protected.Use(s.authProvider.RequireAuth())

	protected.GET("/products", h.ListProducts)
	protected.GET("/add_product", h.AddProductPage)
	protected.POST("/add_product", h.AddProduct)
	protected.GET("/transfer/:id", h.TransferPage)
	protected.POST("/transfer/:id", h.Transfer)
	protected.GET("/report_issue", h.ReportIssuePage)
	protected.POST("/report_issue", h.ReportIssue)

	admin := s.ginEngine.Group("/")
	admin.Use(s.authProvider.RequireAuth(), s.authProvider.RequireAdmin())
	admin.GET("/issues", h.ListIssues)
}

// Handler sets up all routes and returns the engine as an http.Handler.
func (s *Server) Handler() http.Handler {
	s.setupRoutes()
	return s.ginEngine
}

func (s *Server) Run() error {
	s.setupRoutes()

	return s.ginEngine.Run(s.cfg.Listen)
}
