// Route registration and go-chi router setup.
// Public routes (/health, /auth/login) vs JWT-protected routes (/api/v1/*).
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/agritechlabs/sahayak/internal/api/handlers"
	apmiddleware "github.com/agritechlabs/sahayak/internal/api/middleware"
	"github.com/agritechlabs/sahayak/internal/domain/rag"
	"github.com/agritechlabs/sahayak/internal/infra/config"
	"github.com/agritechlabs/sahayak/internal/infra/llm"
	pkgauth "github.com/agritechlabs/sahayak/pkg/auth"
)

// Deps holds the wired services the router needs.
type Deps struct {
	Log      *zap.Logger
	Tokens   *pkgauth.Manager
	Users    []config.User
	Chat     handlers.ChatService
	Selector *llm.Selector

	// LocalModels is the local provider's model API; nil when disabled.
	LocalModels llm.ModelManager
}

// NewRouter creates and configures a chi router with all routes.
func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on all routes)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(apmiddleware.RequestLog(deps.Log))
	r.Use(chimiddleware.Recoverer)

	// ===== PUBLIC ROUTES (no auth required) =====

	// Health check, unauthenticated; used by load balancers and health probes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	})

	authHandler := handlers.NewAuthHandler(deps.Users, deps.Tokens)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login) // POST /auth/login
	})

	// ===== PROTECTED ROUTES (JWT required) =====

	chatHandler := handlers.NewChatHandler(deps.Chat)
	statusHandler := handlers.NewStatusHandler(deps.Selector)
	modelsHandler := handlers.NewModelsHandler(deps.LocalModels, deps.Selector)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apmiddleware.Auth(deps.Tokens))

		r.Route("/assistant", func(r chi.Router) {
			r.Post("/chat", chatHandler.Chat)     // POST /api/v1/assistant/chat
			r.Get("/status", statusHandler.Status) // GET  /api/v1/assistant/status
			r.Get("/models", modelsHandler.List)   // GET  /api/v1/assistant/models

			// Model switching changes shared state; admins only.
			r.With(apmiddleware.RequireRole(string(rag.RoleAdmin))).
				Post("/models/switch", modelsHandler.Switch) // POST /api/v1/assistant/models/switch
		})
	})

	return r
}
