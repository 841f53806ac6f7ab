package handler

import (
	"log/slog"
	"net/http"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/handler/api"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/handler/middleware"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const maxInventoryBody = 4 << 20

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Reservations *api.ReservationHandler
	Resources    *api.ResourceHandler
	Inventory    *api.InventoryHandler
	Users        *api.UserHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, h Handlers) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup.Group("/reservations"), []route{
			{Method: http.MethodPost, Path: "", Handler: h.Reservations.Create},
			{Method: http.MethodGet, Path: "", Handler: h.Reservations.List},
			{Method: http.MethodGet, Path: "/token/:token", Handler: h.Reservations.GetByToken},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Reservations.Get},
			{Method: http.MethodPut, Path: "/:id", Handler: h.Reservations.Update},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Reservations.Delete},
		})

		addRoutes(apiGroup.Group("/resources"), []route{
			{Method: http.MethodGet, Path: "", Handler: h.Resources.List},
			{Method: http.MethodGet, Path: "/:id/overlaps", Handler: h.Resources.Overlaps},
		})

		addRoutes(apiGroup.Group("/users"), []route{
			{Method: http.MethodPost, Path: "", Handler: h.Users.Create},
			{Method: http.MethodGet, Path: "", Handler: h.Users.List},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Users.Get},
			{Method: http.MethodPut, Path: "/:id", Handler: h.Users.Update},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Users.Delete},
		})

		addRoutes(apiGroup.Group("/inventory"), []route{
			{
				Method:  http.MethodPost,
				Path:    "/reconcile",
				Handler: h.Inventory.Reconcile,
				Mw:      []gin.HandlerFunc{middleware.LimitBody(maxInventoryBody)},
			},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
