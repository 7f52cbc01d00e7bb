package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/devbush/vidrange/internal/application"
	"github.com/devbush/vidrange/internal/domain"
	"github.com/devbush/vidrange/internal/logging"
)

// listCacheSize is how many parsed list files are kept in memory
const listCacheSize = 64

// shutdownGrace bounds how long Run waits for in-flight requests
const shutdownGrace = 5 * time.Second

// errBusy rejects a request while another yt-dlp job holds the server
var errBusy = errors.New("another extraction or download is already running, try again when it finishes")

// Services are the application services the web front-end drives
type Services struct {
	Extract   *application.ExtractService
	Lists     *application.ListService
	Downloads *application.DownloadService

	// EnsureTool makes yt-dlp available before extraction or download. Optional.
	EnsureTool func(ctx context.Context) error
}

// Server serves the extract, preview and download forms
type Server struct {
	svc    Services
	lists  *lru.Cache[string, *domain.ListFile]
	engine *gin.Engine

	// run is held for the whole of an extraction or download batch so that
	// at most one yt-dlp process runs at a time
	run sync.Mutex
}

// NewServer builds the gin engine and its routes
func NewServer(svc Services) (*Server, error) {
	cache, err := lru.New[string, *domain.ListFile](listCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create list cache: %w", err)
	}

	s := &Server{svc: svc, lists: cache}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())
	engine.SetHTMLTemplate(pages)

	engine.GET("/", s.index)
	engine.POST("/extract", s.extract)
	engine.POST("/preview", s.preview)
	engine.POST("/download", s.download)

	s.engine = engine
	return s, nil
}

// Handler returns the HTTP handler for the server
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on addr until ctx is cancelled
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("web server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	logging.Info("web server stopping")
	return srv.Shutdown(shutdownCtx)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logging.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"took", time.Since(start).Round(time.Millisecond))
	}
}

// acquire claims the run lock without waiting. Callers must call the
// returned release func when it succeeds.
func (s *Server) acquire() (func(), error) {
	if !s.run.TryLock() {
		return nil, errBusy
	}
	return s.run.Unlock, nil
}

func (s *Server) ensureTool(ctx context.Context) error {
	if s.svc.EnsureTool == nil {
		return nil
	}
	return s.svc.EnsureTool(ctx)
}

// openList reads a list file through the cache, keyed by name and mtime
func (s *Server) openList(name string) (*domain.ListFile, error) {
	modTime, err := s.svc.Lists.ModTime(name)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s|%d", name, modTime.UnixNano())
	if list, ok := s.lists.Get(key); ok {
		return list, nil
	}

	list, err := s.svc.Lists.Open(name)
	if err != nil {
		return nil, err
	}
	s.lists.Add(key, list)
	return list, nil
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	var toolErr *domain.ToolError
	var rangeErr *domain.RangeError
	switch {
	case errors.As(err, &toolErr):
		return http.StatusBadGateway
	case errors.As(err, &rangeErr),
		errors.Is(err, domain.ErrEmptyInput),
		errors.Is(err, domain.ErrUnknownPlatform),
		errors.Is(err, domain.ErrInvalidListFile):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrPlatformDisabled):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNoEntries):
		return http.StatusNotFound
	case errors.Is(err, errBusy):
		return http.StatusConflict
	case errors.Is(err, domain.ErrYtDlpNotFound):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
