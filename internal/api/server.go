package api

import (
	"context"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/handlers"
	"github.com/limbo/starboard/internal/service"
)

const defaultRequestTimeout = 15 * time.Second

type Server struct {
	mx             *chi.Mux
	srv            *http.Server
	tasksService   service.TasksServiceI
	rewardsService service.RewardsServiceI
	requestTimeout time.Duration
	accessLog      io.Writer
}

type ServicesList struct {
	TasksService   service.TasksServiceI
	RewardsService service.RewardsServiceI
	// Upper bound for the store calls of one request
	RequestTimeout time.Duration
	// Apache-style access log, disabled when nil
	AccessLog io.Writer
}

func New(servicesOptions *ServicesList) *Server {
	if servicesOptions == nil || servicesOptions.TasksService == nil || servicesOptions.RewardsService == nil {
		log.Fatal("api server: provided nil services")
	}
	timeout := servicesOptions.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	s := &Server{
		mx:             chi.NewMux(),
		tasksService:   servicesOptions.TasksService,
		rewardsService: servicesOptions.RewardsService,
		requestTimeout: timeout,
		accessLog:      servicesOptions.AccessLog,
	}
	s.mountEndpoints()
	return s
}

func (s *Server) mountEndpoints() {
	s.mx.Use(middleware.Recoverer)
	s.mx.Get("/healthz", s.Healthz)
	s.mx.Route("/api", func(r chi.Router) {
		r.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware, s.UserIDMiddleware, s.LoggerExtensionMiddleware)
		r.Get("/tasks", s.GetTasks)
		r.Put("/tasks/{id}", s.UpdateTask)
		r.Get("/all-data", s.GetAllData)
		r.Get("/user/progress", s.GetProgress)
		r.Post("/user/checkin", s.CheckIn)
		r.Get("/rewards", s.GetRewards)
		r.Post("/rewards/redeem", s.Redeem)
	})
}

// Handler returns the router wrapped with CORS for the browser client.
func (s *Server) Handler() http.Handler {
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type", UserIDHeader}),
	)
	var h http.Handler = cors(s.mx)
	if s.accessLog != nil {
		h = handlers.CombinedLoggingHandler(s.accessLog, h)
	}
	return h
}

// Run blocks until the server stops. http.ErrServerClosed means Shutdown was called.
func (s *Server) Run(addr string) error {
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      s.requestTimeout + 5*time.Second,
	}
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
