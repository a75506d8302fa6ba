package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	generateHandler "github.com/arcgen/backend/internal/handler/generate"
	historyHandler "github.com/arcgen/backend/internal/handler/history"
	providerHandler "github.com/arcgen/backend/internal/handler/provider"
	shapelibHandler "github.com/arcgen/backend/internal/handler/shapelib"
	streamHandler "github.com/arcgen/backend/internal/handler/stream"
	uploadHandler "github.com/arcgen/backend/internal/handler/upload"
	wsHandler "github.com/arcgen/backend/internal/handler/ws"
	middlewarePkg "github.com/arcgen/backend/internal/middleware"
	providerModel "github.com/arcgen/backend/internal/model/provider"
	aiService "github.com/arcgen/backend/internal/service/ai"
	historyService "github.com/arcgen/backend/internal/service/history"
	shapelibService "github.com/arcgen/backend/internal/service/shapelib"
	uploadService "github.com/arcgen/backend/internal/service/upload"
	"github.com/arcgen/backend/pkg/utils"
)

// Deps bundles the services the router wires into handlers.
type Deps struct {
	Registry  providerModel.Registry
	AI        *aiService.Service
	History   *historyService.Service
	ShapeLibs *shapelibService.Manager
	Uploads   *uploadService.Processor
	MaxUpload int64
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/", handleRoot)

	r.Route("/api", func(api chi.Router) {
		generateHandler.New(deps.AI).RegisterRoutes(api)
		streamHandler.New(deps.AI).RegisterRoutes(api)
		wsHandler.New(deps.AI).RegisterRoutes(api)
		historyHandler.New(deps.History).RegisterRoutes(api)
		providerHandler.New(deps.Registry, deps.AI).RegisterRoutes(api)
		shapelibHandler.New(deps.ShapeLibs).RegisterRoutes(api)
		uploadHandler.New(deps.Uploads, deps.MaxUpload).RegisterRoutes(api)
	})

	return r
}

func handleRoot(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"service": "arcgen",
		"status":  "ok",
		"endpoints": []string{
			"POST /api/generate",
			"POST /api/generate-stream",
			"GET /api/ws",
			"GET /api/history",
			"GET /api/providers",
			"GET /api/shape-library/{name}",
			"POST /api/upload-file",
		},
	})
}
