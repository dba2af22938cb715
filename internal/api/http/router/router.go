package router

import (
	"net/http"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/okazarin/taskboard/internal/api/http/handler"
	"github.com/okazarin/taskboard/internal/api/http/middleware"
	"github.com/okazarin/taskboard/internal/logger"
	"github.com/okazarin/taskboard/internal/model"
)

// Router wires HTTP handlers and middleware for the task-tracking API.
type Router struct {
	authService    handler.AuthService
	taskService    handler.TaskService
	verifier       middleware.TokenVerifier
	contextManager model.ContextManager
	allowedOrigins []string
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService handler.AuthService,
	taskService handler.TaskService,
	verifier middleware.TokenVerifier,
	contextManager model.ContextManager,
	allowedOrigins []string,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		taskService:    taskService,
		verifier:       verifier,
		contextManager: contextManager,
		allowedOrigins: allowedOrigins,
		logger:         logger,
	}
}

// Handler builds the routing table and returns the root handler with
// request logging and CORS applied. Task routes sit behind the authenticate
// middleware; registration, login and health stay public.
func (r *Router) Handler() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.verifier, r.contextManager, r.logger)

	authHandler := handler.NewAuth(r.authService, r.logger)
	taskHandler := handler.NewTask(r.taskService, r.contextManager, r.logger)

	m := mux.NewRouter()
	m.Use(logging.Handle)

	m.HandleFunc("/health", handler.Health).Methods(http.MethodGet)
	m.HandleFunc("/api/register", authHandler.Register).Methods(http.MethodPost)
	m.HandleFunc("/api/login", authHandler.Login).Methods(http.MethodPost)

	tasks := m.PathPrefix("/api/tasks").Subrouter()
	tasks.Use(authenticate.Handle)
	tasks.HandleFunc("", taskHandler.List).Methods(http.MethodGet)
	tasks.HandleFunc("", taskHandler.Create).Methods(http.MethodPost)
	tasks.HandleFunc("/{id}", taskHandler.Update).Methods(http.MethodPut)
	tasks.HandleFunc("/{id}", taskHandler.Delete).Methods(http.MethodDelete)

	headers := gorillahandlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type", "Authorization"})
	methods := gorillahandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	origins := gorillahandlers.AllowedOrigins(r.allowedOrigins)

	return gorillahandlers.CORS(headers, methods, origins)(m)
}
