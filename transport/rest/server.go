package rest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	logger *slog.Logger
	r      *chi.Mux
}

// New installs middleware and routes. ws and static may be nil.
func New(logger *slog.Logger, sessions uSession, ws http.Handler, static fs.FS) *Server {
	server := &Server{
		logger: logger.With("component", "rest"),
		r:      chi.NewRouter(),
	}

	server.r.Use(chimw.RequestID)
	server.r.Use(chimw.RealIP)
	server.r.Use(server.requestLogger)
	server.r.Use(chimw.Recoverer)

	ping := NewPingHandler()
	server.r.Get("/ping", ping.PingHandler)

	// websocket connections outlive any request timeout
	if ws != nil {
		server.r.Handle("/ws", ws)
	}

	handlers := NewHandlers(logger, sessions)
	server.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))
		r.Use(jsonContentType)

		r.Route("/api/sessions", func(r chi.Router) {
			r.Post("/", handlers.CreateSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", handlers.GetSession)
				r.Delete("/", handlers.DeleteSession)
				r.Post("/moves", handlers.MakeMove)
				r.Post("/reset", handlers.ResetSession)
			})
		})
	})

	if static != nil {
		server.r.Handle("/*", http.FileServer(http.FS(static)))
	}

	return server
}

// Router exposes the internal router (useful for tests).
func (that *Server) Router() chi.Router {
	return that.r
}

// Start serves HTTP on port until ctx is done, then shuts down gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.r,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

func (that *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		that.logger.Debug("request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"requestID", chimw.GetReqID(r.Context()),
		)
	})
}

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}
