// Package server is the thin HTTP wrapper around the dialogue core. It only
// decodes (userId, message) pairs, forwards them to the dispatcher, and
// serves the embedded chat page.
package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	contractx "github.com/trattoria-labs/tavolo/agent/contract"
	"github.com/trattoria-labs/tavolo/agent/restaurant"
)

//go:embed index.html
var pageFS embed.FS

type Config struct {
	Addr            string        `envconfig:"ADDR" default:":3000"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" split_words:"true" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" split_words:"true" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" split_words:"true" default:"10s"`
}

// TurnHandler is the dialogue core as the transport sees it.
type TurnHandler interface {
	HandleTurn(ctx context.Context, userID, message string) (contractx.TurnResult, error)
}

type Server struct {
	httpServer      *http.Server
	turns           TurnHandler
	rest            *restaurant.Config
	page            *template.Template
	shutdownTimeout time.Duration
}

func New(cfg Config, turns TurnHandler, rest *restaurant.Config) (*Server, error) {
	if turns == nil {
		return nil, errors.New("turn handler is required")
	}
	if rest == nil {
		return nil, errors.New("restaurant config is required")
	}

	page, err := template.ParseFS(pageFS, "index.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		turns:           turns,
		rest:            rest,
		page:            page,
		shutdownTimeout: cfg.ShutdownTimeout,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(hlog.AccessHandler(func(req *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(req).Info().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Int("status", status).
			Dur("duration", duration).
			Msg("http request")
	}))

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealthz)
	r.Post("/chat", s.handleChat)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s, nil
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.httpServer.Addr).Msg("http server listening")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
