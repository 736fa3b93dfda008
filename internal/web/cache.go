package web

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/pkg/domain"
)

const (
	keyDestinations = "destinations"
	keyCategories   = "categories"
	keyAgenda       = "agenda"
	keyGallery      = "gallery"
)

func articleKey(id int64) string {
	return "article:" + strconv.FormatInt(id, 10)
}

func destinationKey(id int64) string {
	return "destination:" + strconv.FormatInt(id, 10)
}

// cached returns the value stored under key, or calls fetch and stores its
// result. Errors are never cached.
func cached[T any](s *Server, key string, fetch func() (T, error)) (T, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			if t, ok := v.(T); ok {
				return t, nil
			}
		}
	}
	v, err := fetch()
	if err != nil {
		return v, err
	}
	if s.cache != nil {
		s.cache.SetDefault(key, v)
	}
	return v, nil
}

func (s *Server) destinations(ctx context.Context) ([]domain.Destination, error) {
	return cached(s, keyDestinations, func() ([]domain.Destination, error) {
		return s.api.ListDestinations(ctx)
	})
}

func (s *Server) categories(ctx context.Context) ([]string, error) {
	return cached(s, keyCategories, func() ([]string, error) {
		return s.api.ListCategories(ctx)
	})
}

func (s *Server) agendaItems(ctx context.Context) ([]domain.AgendaItem, error) {
	return cached(s, keyAgenda, func() ([]domain.AgendaItem, error) {
		return s.api.ListAgenda(ctx)
	})
}

func (s *Server) galleryItems(ctx context.Context) ([]domain.GalleryItem, error) {
	return cached(s, keyGallery, func() ([]domain.GalleryItem, error) {
		return s.api.ListGallery(ctx)
	})
}

func (s *Server) destination(ctx context.Context, id int64) (*domain.Destination, error) {
	return cached(s, destinationKey(id), func() (*domain.Destination, error) {
		return s.api.GetDestination(ctx, id)
	})
}

// article loads the article of a destination. A missing article is not an
// error; a failed load is logged and shown as missing.
func (s *Server) article(ctx context.Context, id int64) *domain.Article {
	a, err := cached(s, articleKey(id), func() (*domain.Article, error) {
		return s.api.GetArticle(ctx, id)
	})
	if err != nil {
		s.logger.Warn("load article", zap.Int64("wisata_id", id), zap.Error(err))
		return nil
	}
	return a
}
