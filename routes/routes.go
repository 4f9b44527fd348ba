package routes

import (
	"restaurant-admin/handlers"
	"restaurant-admin/middleware"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the engine with default middleware (logger + recovery)
// and every route mounted.
func NewRouter(h *handlers.Handler) *gin.Engine {
	r := gin.Default()
	SetupRoutes(r, h)
	return r
}

func SetupRoutes(r *gin.Engine, h *handlers.Handler) {
	r.GET("/health", h.Health)
	r.Use(middleware.Authenticate(h.Sessions))

	// ── Admin session pages ────────────────────────────────────────
	r.GET(handlers.LoginPath, h.LoginPage)
	r.POST(handlers.LoginPath, h.Login)
	r.POST("/admin/register/", h.Register)
	r.GET("/admin/logout/", h.Logout)
	r.POST("/admin/logout/", h.Logout)
	r.GET("/admin/session-states", h.SessionStates)

	// ── Admin views (login required) ───────────────────────────────
	adm := r.Group("/admin")
	adm.Use(middleware.LoginRequired(handlers.LoginPath))
	{
		adm.GET("/", h.Index)
		adm.GET("/:view/", h.ListEntities)
		adm.POST("/:view/", h.CreateEntity)
		adm.GET("/:view/export.csv", h.ExportEntities)
		adm.GET("/:view/:id", h.GetEntity)
		adm.PUT("/:view/:id", h.EditEntity)
		adm.PATCH("/:view/:id", h.PatchEntity)
		adm.DELETE("/:view/:id", h.DeleteEntity)
	}

	// ── User API (Bearer tokens) ───────────────────────────────────
	public := r.Group("/api/user")
	public.Use(middleware.CORS())
	{
		public.OPTIONS("/*path", func(c *gin.Context) {})
		public.POST("/login", h.APILogin)
		public.POST("/register", h.APIRegister)
	}

	auth := r.Group("/api/user")
	auth.Use(middleware.CORS(), middleware.AuthRequired())
	{
		auth.GET("/profile", h.GetProfile)
		auth.POST("/logout", h.APILogout)
	}
}
