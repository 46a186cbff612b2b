package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/nibzard/beautiful-mermaid/application/services"
	"github.com/nibzard/beautiful-mermaid/interfaces/http/rest/handlers"
	"github.com/nibzard/beautiful-mermaid/interfaces/http/rest/middleware"
	"github.com/nibzard/beautiful-mermaid/pkg/common"
)

// Router creates and configures the HTTP router
type Router struct {
	scenes     *services.SceneService
	logger     *zap.Logger
	enableCORS bool
}

// NewRouter creates a new router instance
func NewRouter(scenes *services.SceneService, logger *zap.Logger, enableCORS bool) *Router {
	return &Router{scenes: scenes, logger: logger, enableCORS: enableCORS}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		sceneHandler := handlers.NewSceneHandler(rt.scenes, rt.logger)
		layoutHandler := handlers.NewLayoutHandler(rt.scenes, rt.logger)

		r.Route("/scenes", func(r chi.Router) {
			r.Post("/", sceneHandler.CreateScene)
			r.Route("/{sceneID}", func(r chi.Router) {
				r.Get("/", sceneHandler.GetScene)
				r.Delete("/", sceneHandler.DeleteScene)
				r.Get("/svg", sceneHandler.GetSVG)

				r.Post("/drag/start", sceneHandler.DragStart)
				r.Post("/drag/move", sceneHandler.DragMove)
				r.Post("/drag/end", sceneHandler.DragEnd)

				r.Get("/layout", layoutHandler.ExportLayout)
				r.Put("/layout", layoutHandler.ImportLayout)
				r.Put("/positions", layoutHandler.SetPositions)
				r.Post("/positions/reset", layoutHandler.ResetPositions)
			})
		})
	})

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
