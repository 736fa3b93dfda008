// Package web serves the public village website: read-only pages rendered
// from the remote API.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/pkg/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

const shutdownTimeout = 10 * time.Second

// Catalog is the read side of the API client the website renders from.
type Catalog interface {
	ListDestinations(ctx context.Context) ([]domain.Destination, error)
	GetDestination(ctx context.Context, id int64) (*domain.Destination, error)
	ListCategories(ctx context.Context) ([]string, error)
	GetArticle(ctx context.Context, wisataID int64) (*domain.Article, error)
	ListAgenda(ctx context.Context) ([]domain.AgendaItem, error)
	ListGallery(ctx context.Context) ([]domain.GalleryItem, error)
	ResolveImageURL(path string) string
}

// Server is the public website.
type Server struct {
	api    Catalog
	cache  *cache.Cache // nil disables caching
	logger *zap.Logger
	tmpl   *template.Template
	now    func() time.Time
}

// New creates a Server. A ttl of 0 turns the read-through cache off.
func New(api Catalog, ttl time.Duration, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("web.New: parse templates: %w", err)
	}
	s := &Server{api: api, logger: logger, tmpl: tmpl, now: time.Now}
	if ttl > 0 {
		s.cache = cache.New(ttl, 2*ttl)
	}
	return s, nil
}

// Handler builds the gin engine with every route registered.
func (s *Server) Handler() *gin.Engine {
	r := gin.New()
	r.Use(recoveryMiddleware(s.logger))
	r.Use(requestLogger(s.logger))
	r.SetHTMLTemplate(s.tmpl)

	r.GET("/", s.home)
	r.GET("/wisata", s.wisataList)
	r.GET("/wisata/:id", s.wisataDetail)
	r.GET("/agenda", s.agenda)
	r.GET("/galeri", s.galeri)
	r.GET("/hubungi-kami", s.hubungi)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.NoRoute(func(c *gin.Context) {
		s.render(c, http.StatusNotFound, "notfound.html", page{Title: "Halaman tidak ditemukan"})
	})
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("website listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web.Run: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("website shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web.Run: shutdown: %w", err)
	}
	return nil
}
