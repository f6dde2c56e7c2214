// Package server exposes the translation client over HTTP.
//
// Routes:
//
//	GET  /           single page UI
//	POST /translate  {text, fromLang?, toLang?} -> {translatedText} | {error}
//	GET  /healthz    liveness plus translator readiness
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/valpere/perevod/internal/translator"
)

//go:embed templates/*.html
var templatesFS embed.FS

const shutdownTimeout = 10 * time.Second

type Options struct {
	AllowedOrigins []string
}

type Server struct {
	svc    translator.TranslationService
	log    *slog.Logger
	engine *gin.Engine
}

// New wires the routes. svc may be nil, in which case /translate reports the
// service as not initialized and every other route keeps working.
func New(svc translator.TranslationService, log *slog.Logger, opts Options) (*Server, error) {
	if log == nil {
		log = slog.Default()
	}

	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	cc := corsConfig(opts.AllowedOrigins)
	if err := cc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid CORS configuration: %w", err)
	}

	s := &Server{svc: svc, log: log, engine: gin.New()}

	s.engine.SetHTMLTemplate(tmpl)
	s.engine.Use(requestID(), accessLog(log), gin.Recovery(), cors.New(cc))

	s.engine.GET("/", s.handleIndex)
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.POST("/translate", s.handleTranslate)

	return s, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", requestIDHeader}
	return cfg
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr, "translator", s.translatorState())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) translatorState() string {
	if s.svc == nil {
		return "unavailable"
	}
	return "ready"
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"translator": s.translatorState(),
	})
}
