package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"
)

type ctxKey int

const (
	userKey ctxKey = iota
	ministryKey
)

func userFrom(ctx context.Context) string {
	uid, _ := ctx.Value(userKey).(string)
	return uid
}

func ministryFrom(ctx context.Context) string {
	id, _ := ctx.Value(ministryKey).(string)
	return id
}

// setupRoutes registers all HTTP routes and middleware
func (s *Server) setupRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		s.loggingMiddleware,
		middleware.Recoverer,
	)

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/transpose", s.handleTranspose)

		r.Get("/session", s.handleGetSession)
		r.Post("/session", s.handleCreateSession)
		r.Delete("/session", s.handleDeleteSession)

		// Signed-in routes. Songs are shared by every ministry.
		r.Group(func(r chi.Router) {
			r.Use(s.requireUser)

			r.Route("/songs", func(r chi.Router) {
				r.Get("/", s.handleListSongs)
				r.Post("/", s.handleCreateSong)
				r.Post("/import", s.handleImportSong)
				r.Get("/{id}", s.handleGetSong)
				r.Put("/{id}", s.handleUpdateSong)
				r.Delete("/{id}", s.handleDeleteSong)
			})
			r.Get("/perform/{songID}", s.handlePerform)

			r.Post("/ministries", s.handleCreateMinistry)
			r.Post("/ministries/join", s.handleJoinMinistry)
		})

		// Ministry-scoped routes.
		r.Group(func(r chi.Router) {
			r.Use(s.requireMinistry)

			r.Route("/setlists", func(r chi.Router) {
				r.Get("/", s.handleListSetlists)
				r.Post("/", s.handleSaveSetlist)
				r.Get("/{id}", s.handleGetSetlist)
				r.Put("/{id}", s.handleSaveSetlist)
				r.Delete("/{id}", s.handleDeleteSetlist)
				r.Get("/{id}/songs", s.handleSetlistSongs)
				r.Post("/{id}/items", s.handleAddCustomItem)
				r.Delete("/{id}/items/{uuid}", s.handleRemoveCustomItem)
			})

			r.Get("/musicians", s.handleListMusicians)
			r.Post("/musicians", s.handleSaveMusician)
			r.Delete("/musicians/{id}", s.handleDeleteMusician)
			r.Get("/instruments", s.handleInstruments)

			r.Route("/schedules", func(r chi.Router) {
				r.Get("/", s.handleListSchedules)
				r.Post("/", s.handleSaveSchedule)
				r.Get("/{id}", s.handleGetSchedule)
				r.Put("/{id}", s.handleSaveSchedule)
				r.Delete("/{id}", s.handleDeleteSchedule)
			})

			r.Get("/ministries/current", s.handleCurrentMinistry)
			r.Get("/ministries/current/members", s.handleMembers)
			r.Delete("/ministries/current/members/{uid}", s.handleRemoveMember)
		})
	})

	return cors.New(cors.Options{
		AllowedOrigins:   s.config.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           3600,
	}).Handler(r)
}

// requireUser rejects requests without a signed-in user.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, err := s.sessions.CurrentUser(r)
		if err != nil {
			s.respondError(w, http.StatusUnauthorized, "sign in required")
			return
		}
		ctx := context.WithValue(r.Context(), userKey, uid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireMinistry rejects requests until the user has signed in and
// selected a ministry.
func (s *Server) requireMinistry(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, ministryID, err := s.sessions.CurrentMinistry(r)
		if err != nil {
			s.respondError(w, http.StatusConflict, "onboarding required")
			return
		}
		ctx := context.WithValue(r.Context(), userKey, uid)
		ctx = context.WithValue(ctx, ministryKey, ministryID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// loggingMiddleware logs every request with its status and duration.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.log.Infof("%s %s -> %d (%s, %s)", r.Method, r.URL.Path, ww.Status(), time.Since(start).Round(time.Microsecond), r.RemoteAddr)
	})
}

// Serve starts the HTTP server and blocks until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	s.log.Infof("SacraMusic server starting on %s", addr)
	s.log.Infof("   Database: %s", s.config.DBPath)
	s.log.Infof("   CORS Origins: %v", s.config.AllowedOrigins)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.setupRoutes(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.log.Infof("Shutting down server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
