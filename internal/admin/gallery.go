package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/pkg/client"
	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/pkg/domain"
)

// GalleryForm is the editable state of the gallery form.
type GalleryForm struct {
	ID        int64 // 0 creates a new item
	Judul     string
	Deskripsi string
	Tanggal   string // YYYY-MM-DD
	ImageURL  string // current image
	ImagePath string // local file to upload; required on create
}

// NewGalleryForm returns an empty form dated today.
func NewGalleryForm(now time.Time) GalleryForm {
	return GalleryForm{Tanggal: now.Format(domain.DateLayout)}
}

// GalleryFormFrom loads an existing item into a form.
func GalleryFormFrom(item domain.GalleryItem) GalleryForm {
	tanggal := strings.TrimSpace(item.Tanggal)
	if len(tanggal) > len(domain.DateLayout) {
		tanggal = tanggal[:len(domain.DateLayout)]
	}
	return GalleryForm{
		ID:        int64(item.ID),
		Judul:     item.Judul,
		Deskripsi: item.Deskripsi,
		Tanggal:   tanggal,
		ImageURL:  item.ImageURL,
	}
}

// Validate checks the form. New items need an image file.
func (f *GalleryForm) Validate() error {
	if strings.TrimSpace(f.Judul) == "" {
		return invalid("judul", "Judul wajib diisi")
	}
	if _, err := time.Parse(domain.DateLayout, strings.TrimSpace(f.Tanggal)); err != nil {
		return invalid("tanggal", "Tanggal harus berformat YYYY-MM-DD")
	}
	if f.ImagePath == "" {
		if f.ID == 0 {
			return invalid("image", "Harap pilih gambar")
		}
		return nil
	}
	return checkImagePath("image", f.ImagePath)
}

// GalleryAPI is the part of the API client the gallery form uses.
type GalleryAPI interface {
	CreateGallery(ctx context.Context, item domain.GalleryItem) error
	UpdateGallery(ctx context.Context, id int64, item domain.GalleryItem) error
	DeleteGallery(ctx context.Context, id int64) error
}

// Gallery runs gallery submissions.
type Gallery struct {
	api    GalleryAPI
	images ImageUploader
	logger *zap.Logger
}

// NewGallery creates the gallery workflow.
func NewGallery(api GalleryAPI, images ImageUploader, logger *zap.Logger) *Gallery {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gallery{api: api, images: images, logger: logger}
}

// Save uploads the picked image, then creates or updates the item.
func (w *Gallery) Save(ctx context.Context, form GalleryForm, progress client.ProgressFunc) error {
	if err := form.Validate(); err != nil {
		return err
	}
	imageURL := form.ImageURL
	if form.ImagePath != "" {
		u, err := uploadFile(ctx, w.images, form.ImagePath, progress)
		if err != nil {
			return err
		}
		imageURL = u
	}
	item := domain.GalleryItem{
		Judul:     strings.TrimSpace(form.Judul),
		Deskripsi: strings.TrimSpace(form.Deskripsi),
		Tanggal:   strings.TrimSpace(form.Tanggal),
		ImageURL:  imageURL,
	}
	if form.ID == 0 {
		if err := w.api.CreateGallery(ctx, item); err != nil {
			return fmt.Errorf("save gallery: %w", err)
		}
	} else if err := w.api.UpdateGallery(ctx, form.ID, item); err != nil {
		return fmt.Errorf("save gallery: %w", err)
	}
	w.logger.Info("gallery item saved", zap.Int64("id", form.ID))
	return nil
}

// Delete removes a gallery item.
func (w *Gallery) Delete(ctx context.Context, id int64) error {
	if err := w.api.DeleteGallery(ctx, id); err != nil {
		return fmt.Errorf("delete gallery: %w", err)
	}
	w.logger.Info("gallery item deleted", zap.Int64("id", id))
	return nil
}
