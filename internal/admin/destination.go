package admin

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/internal/present"
	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/pkg/client"
	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/pkg/domain"
)

// DestinationForm is the editable state of the destination form, including
// its article.
type DestinationForm struct {
	ID          int64 // 0 creates a new destination
	Title       string
	Description string
	Kategori    string
	ImageURL    string // current image
	ImagePath   string // local file to upload on save, optional

	// Price and PriceDisplay always describe the same amount.
	Price        int64
	PriceDisplay string

	Rating      *float64
	RatingInput string
	// RatingErr is set while RatingInput is not a rating in 0..5.
	RatingErr string

	Article    domain.Article
	HasArticle bool // the destination already has an article on the server
}

// SetPriceInput takes the raw price field text, keeps its digits as Price and
// reformats the display.
func (f *DestinationForm) SetPriceInput(raw string) {
	if !strings.ContainsAny(raw, "0123456789") {
		f.Price = 0
		f.PriceDisplay = ""
		return
	}
	f.Price = present.ParseDigits(raw)
	f.PriceDisplay = present.FormatRupiah(f.Price)
}

// SetRatingInput takes the raw rating field text. Values above 5 are flagged
// immediately; the form cannot be submitted until the input is fixed.
func (f *DestinationForm) SetRatingInput(raw string) {
	f.RatingInput = raw
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if s == "" {
		f.Rating = nil
		f.RatingErr = ""
		return
	}
	r, err := strconv.ParseFloat(s, 64)
	switch {
	case err != nil, math.IsNaN(r), math.IsInf(r, 0):
		f.Rating = nil
		f.RatingErr = "Rating harus berupa angka"
	case r > domain.MaxRating:
		f.Rating = nil
		f.RatingErr = fmt.Sprintf("Rating maksimal %d", domain.MaxRating)
	case r < 0:
		f.Rating = nil
		f.RatingErr = "Rating tidak boleh negatif"
	default:
		f.Rating = &r
		f.RatingErr = ""
	}
}

// CanSubmit is false while a field-level error is showing.
func (f *DestinationForm) CanSubmit() bool {
	return f.RatingErr == ""
}

// Validate checks the whole form before submission.
func (f *DestinationForm) Validate() error {
	if f.RatingErr != "" {
		return invalid("rating", f.RatingErr)
	}
	if f.Rating != nil && !domain.ValidRating(*f.Rating) {
		return invalid("rating", fmt.Sprintf("Rating maksimal %d", domain.MaxRating))
	}
	if strings.TrimSpace(f.Title) == "" {
		return invalid("title", "Nama wisata wajib diisi")
	}
	if strings.TrimSpace(f.Description) == "" {
		return invalid("description", "Deskripsi wajib diisi")
	}
	if strings.TrimSpace(f.Kategori) == "" {
		return invalid("kategori", "Kategori wajib dipilih")
	}
	if f.Price < 0 {
		return invalid("price", "Harga tidak boleh negatif")
	}
	if f.ImagePath != "" {
		if err := checkImagePath("image", f.ImagePath); err != nil {
			return err
		}
	}
	return nil
}

func (f *DestinationForm) input(imageURL string) domain.DestinationInput {
	return domain.DestinationInput{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		ImageURL:    imageURL,
		Price:       f.Price,
		Rating:      f.Rating,
		Kategori:    domain.NormalizeCategory(f.Kategori),
	}
}

// DestinationAPI is the part of the API client the destination form uses.
type DestinationAPI interface {
	GetArticle(ctx context.Context, wisataID int64) (*domain.Article, error)
	CreateDestination(ctx context.Context, d domain.DestinationInput) (int64, error)
	UpdateDestination(ctx context.Context, id int64, d domain.DestinationInput) error
	DeleteDestination(ctx context.Context, id int64) error
	CreateArticle(ctx context.Context, a domain.Article) error
	UpdateArticle(ctx context.Context, a domain.Article) error
	DeleteArticle(ctx context.Context, wisataID int64) error
	CreateCategory(ctx context.Context, name string) error
	DeleteCategory(ctx context.Context, name string) error
}

// Destinations runs destination, article and category submissions.
type Destinations struct {
	api    DestinationAPI
	images ImageUploader
	logger *zap.Logger
}

// NewDestinations creates the destination workflow.
func NewDestinations(api DestinationAPI, images ImageUploader, logger *zap.Logger) *Destinations {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Destinations{api: api, images: images, logger: logger}
}

// Edit loads a destination into a form together with its article. A
// destination without an article gets empty article fields.
func (w *Destinations) Edit(ctx context.Context, d domain.Destination) (DestinationForm, error) {
	form := DestinationForm{
		ID:          int64(d.ID),
		Title:       d.Title,
		Description: d.Description,
		Kategori:    domain.NormalizeCategory(d.Kategori),
		ImageURL:    d.ImageURL,
	}
	form.SetPriceInput(strconv.FormatInt(int64(d.Price), 10))
	if r, ok := d.RatingValue(); ok {
		form.SetRatingInput(strconv.FormatFloat(r, 'f', -1, 64))
	}

	a, err := w.api.GetArticle(ctx, int64(d.ID))
	if err != nil {
		return form, fmt.Errorf("load article: %w", err)
	}
	form.Article = domain.Article{WisataID: d.ID}
	if a != nil {
		form.Article = *a
		form.Article.WisataID = d.ID
		form.HasArticle = true
	}
	return form, nil
}

// Save uploads the image if one was picked, then creates or updates the
// destination, then its article. It returns the destination ID. Any failed
// step stops the sequence; when the destination was created but its article
// failed, the new ID is returned with the error so a retry updates it.
func (w *Destinations) Save(ctx context.Context, form DestinationForm, progress client.ProgressFunc) (int64, error) {
	if err := form.Validate(); err != nil {
		return 0, err
	}

	imageURL := form.ImageURL
	if form.ImagePath != "" {
		u, err := uploadFile(ctx, w.images, form.ImagePath, progress)
		if err != nil {
			return 0, err
		}
		imageURL = u
	}

	in := form.input(imageURL)
	id := form.ID
	if id == 0 {
		newID, err := w.api.CreateDestination(ctx, in)
		if err != nil {
			return 0, fmt.Errorf("save destination: %w", err)
		}
		if newID == 0 {
			return 0, errors.New("save destination: response carried no id")
		}
		id = newID
	} else if err := w.api.UpdateDestination(ctx, id, in); err != nil {
		return 0, fmt.Errorf("save destination: %w", err)
	}

	konten, err := present.DecorateContent(form.Article.Konten)
	if err != nil {
		return id, fmt.Errorf("save article: %w", err)
	}
	article := domain.Article{
		ID:             form.Article.ID,
		WisataID:       domain.FlexInt(id),
		Konten:         konten,
		JamOperasional: strings.TrimSpace(form.Article.JamOperasional),
		Lokasi:         strings.TrimSpace(form.Article.Lokasi),
		PetaLokasi:     strings.TrimSpace(form.Article.PetaLokasi),
	}
	if form.ID != 0 && form.HasArticle {
		err = w.api.UpdateArticle(ctx, article)
	} else {
		article.ID = 0
		err = w.api.CreateArticle(ctx, article)
	}
	if err != nil {
		return id, fmt.Errorf("save article: %w", err)
	}

	w.logger.Info("destination saved", zap.Int64("id", id), zap.Bool("created", form.ID == 0))
	return id, nil
}

// Delete removes the article and then the destination. If the article
// delete fails for any reason the destination is left alone.
func (w *Destinations) Delete(ctx context.Context, id int64) error {
	if err := w.api.DeleteArticle(ctx, id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if err := w.api.DeleteDestination(ctx, id); err != nil {
		return fmt.Errorf("delete destination: %w", err)
	}
	w.logger.Info("destination deleted", zap.Int64("id", id))
	return nil
}

// AddCategory creates a category from name, lowercased.
func (w *Destinations) AddCategory(ctx context.Context, name string) error {
	name = domain.NormalizeCategory(name)
	if name == "" {
		return invalid("kategori", "Nama kategori tidak boleh kosong")
	}
	if name == domain.AllCategories {
		return invalid("kategori", fmt.Sprintf("%q dipakai sebagai filter semua kategori", domain.AllCategories))
	}
	if err := w.api.CreateCategory(ctx, name); err != nil {
		return fmt.Errorf("add category: %w", err)
	}
	w.logger.Info("category added", zap.String("name", name))
	return nil
}

// DeleteCategory removes a category. Destinations still tagged with it keep
// the stale name.
func (w *Destinations) DeleteCategory(ctx context.Context, name string) error {
	if err := w.api.DeleteCategory(ctx, name); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	w.logger.Info("category deleted", zap.String("name", name))
	return nil
}
