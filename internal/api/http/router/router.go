package router

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Gi2009/cod-back/internal/api/http/handler"
	"github.com/Gi2009/cod-back/internal/api/http/middleware"
	"github.com/Gi2009/cod-back/internal/logger"
	"github.com/Gi2009/cod-back/internal/model"
)

// Options configures the HTTP surface.
type Options struct {
	BasePath           string
	CORSAllowedOrigins []string
	MaxBodyBytes       int64
}

// Router wires the handlers and middleware of the HTTP API.
type Router struct {
	authService     handler.AuthService
	activityService handler.ActivityService
	tokenService    middleware.TokenService
	healthChecker   handler.HealthChecker
	contextManager  model.ContextManager
	opts            Options
	logger          *logger.Logger
}

// New creates new HTTP Router instance.
func New(
	authService handler.AuthService,
	activityService handler.ActivityService,
	tokenService middleware.TokenService,
	healthChecker handler.HealthChecker,
	contextManager model.ContextManager,
	opts Options,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:     authService,
		activityService: activityService,
		tokenService:    tokenService,
		healthChecker:   healthChecker,
		contextManager:  contextManager,
		opts:            opts,
		logger:          logger,
	}
}

// Register builds the route tree. Auth routes are public, activity routes
// require a bearer token.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)

	authHandler := handler.NewAuth(r.authService, r.logger)
	activityHandler := handler.NewActivity(r.activityService, r.contextManager, r.logger)
	healthHandler := handler.NewHealth(r.healthChecker, r.logger)

	mux := chi.NewRouter()
	mux.Use(chimw.RequestID)
	mux.Use(logging.Handler)
	mux.Use(chimw.Recoverer)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   r.opts.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if r.opts.MaxBodyBytes > 0 {
		mux.Use(chimw.RequestSize(r.opts.MaxBodyBytes))
	}

	mux.Get("/healthz", healthHandler.Check)

	api := func(api chi.Router) {
		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", authHandler.Register)
			auth.Post("/login", authHandler.Login)
		})

		api.Route("/activities", func(activities chi.Router) {
			activities.Use(authenticate.Handler)
			activities.Post("/", activityHandler.Create)
			activities.Get("/", activityHandler.List)
			activities.Get("/user", activityHandler.ListMine)
			activities.Delete("/{id}", activityHandler.Delete)
		})
	}

	if base := strings.TrimSuffix(r.opts.BasePath, "/"); base != "" {
		mux.Route(base, api)
	} else {
		api(mux)
	}

	return mux
}
