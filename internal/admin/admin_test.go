package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/pkg/client"
	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/pkg/domain"
)

// fakeAPI records every call in order and fails the ones named in fail.
type fakeAPI struct {
	calls    []string
	fail     map[string]error
	article  *domain.Article
	newID    int64
	created  []domain.DestinationInput
	articles []domain.Article
	agenda   []domain.AgendaItem
	gallery  []domain.GalleryItem
	uploaded []string
	password string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{fail: map[string]error{}, newID: 10}
}

func (f *fakeAPI) record(call string) error {
	f.calls = append(f.calls, call)
	return f.fail[call]
}

func (f *fakeAPI) GetArticle(_ context.Context, id int64) (*domain.Article, error) {
	if err := f.record(fmt.Sprintf("GetArticle(%d)", id)); err != nil {
		return nil, err
	}
	return f.article, nil
}

func (f *fakeAPI) CreateDestination(_ context.Context, d domain.DestinationInput) (int64, error) {
	if err := f.record("CreateDestination"); err != nil {
		return 0, err
	}
	f.created = append(f.created, d)
	return f.newID, nil
}

func (f *fakeAPI) UpdateDestination(_ context.Context, id int64, d domain.DestinationInput) error {
	f.created = append(f.created, d)
	return f.record(fmt.Sprintf("UpdateDestination(%d)", id))
}

func (f *fakeAPI) DeleteDestination(_ context.Context, id int64) error {
	return f.record(fmt.Sprintf("DeleteDestination(%d)", id))
}

func (f *fakeAPI) CreateArticle(_ context.Context, a domain.Article) error {
	f.articles = append(f.articles, a)
	return f.record(fmt.Sprintf("CreateArticle(%d)", a.WisataID))
}

func (f *fakeAPI) UpdateArticle(_ context.Context, a domain.Article) error {
	f.articles = append(f.articles, a)
	return f.record(fmt.Sprintf("UpdateArticle(%d)", a.WisataID))
}

func (f *fakeAPI) DeleteArticle(_ context.Context, id int64) error {
	return f.record(fmt.Sprintf("DeleteArticle(%d)", id))
}

func (f *fakeAPI) CreateCategory(_ context.Context, name string) error {
	return f.record("CreateCategory(" + name + ")")
}

func (f *fakeAPI) DeleteCategory(_ context.Context, name string) error {
	return f.record("DeleteCategory(" + name + ")")
}

func (f *fakeAPI) CreateAgenda(_ context.Context, item domain.AgendaItem) error {
	f.agenda = append(f.agenda, item)
	return f.record("CreateAgenda")
}

func (f *fakeAPI) UpdateAgenda(_ context.Context, id int64, item domain.AgendaItem) error {
	f.agenda = append(f.agenda, item)
	return f.record(fmt.Sprintf("UpdateAgenda(%d)", id))
}

func (f *fakeAPI) DeleteAgenda(_ context.Context, id int64) error {
	return f.record(fmt.Sprintf("DeleteAgenda(%d)", id))
}

func (f *fakeAPI) CreateGallery(_ context.Context, item domain.GalleryItem) error {
	f.gallery = append(f.gallery, item)
	return f.record("CreateGallery")
}

func (f *fakeAPI) UpdateGallery(_ context.Context, id int64, item domain.GalleryItem) error {
	f.gallery = append(f.gallery, item)
	return f.record(fmt.Sprintf("UpdateGallery(%d)", id))
}

func (f *fakeAPI) DeleteGallery(_ context.Context, id int64) error {
	return f.record(fmt.Sprintf("DeleteGallery(%d)", id))
}

func (f *fakeAPI) UploadImage(_ context.Context, filename string, r io.Reader, progress client.ProgressFunc) (string, error) {
	if err := f.record("UploadImage(" + filename + ")"); err != nil {
		return "", err
	}
	data, _ := io.ReadAll(r)
	f.uploaded = append(f.uploaded, string(data))
	if progress != nil {
		progress(0.5)
		progress(1)
	}
	return "https://cdn.example.id/uploads/" + filename, nil
}

func (f *fakeAPI) UpdatePassword(_ context.Context, pw string) error {
	f.password = pw
	return f.record("UpdatePassword")
}

func writeImage(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("IMG"), 0o600))
	return path
}

func validForm() DestinationForm {
	f := DestinationForm{Title: "Curug Gomblang", Description: "Air terjun", Kategori: "Alam"}
	f.SetPriceInput("15000")
	f.Article.Konten = "<p>Halo</p>"
	return f
}

func TestSetPriceInput(t *testing.T) {
	tests := []struct {
		raw         string
		wantPrice   int64
		wantDisplay string
	}{
		{"", 0, ""},
		{"Rp", 0, ""},
		{"0", 0, "Rp 0"},
		{"15000", 15000, "Rp 15.000"},
		{"Rp 15.0001", 150001, "Rp 150.001"},
		{"1.250.000", 1250000, "Rp 1.250.000"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var f DestinationForm
			f.SetPriceInput(tt.raw)
			assert.Equal(t, tt.wantPrice, f.Price)
			assert.Equal(t, tt.wantDisplay, f.PriceDisplay)
		})
	}
}

func TestSetPriceInput_KeystrokesStayConsistent(t *testing.T) {
	var f DestinationForm
	typed := ""
	for _, r := range "25000" {
		typed = f.PriceDisplay + string(r)
		f.SetPriceInput(typed)
	}
	assert.Equal(t, int64(25000), f.Price)
	assert.Equal(t, "Rp 25.000", f.PriceDisplay)
}

func TestSetRatingInput(t *testing.T) {
	tests := []struct {
		raw        string
		wantRating *float64
		wantErr    bool
	}{
		{"", nil, false},
		{"4.5", ptr(4.5), false},
		{"4,5", ptr(4.5), false},
		{"5", ptr(5), false},
		{"0", ptr(0), false},
		{"5.1", nil, true},
		{"6", nil, true},
		{"-1", nil, true},
		{"lima", nil, true},
		{"NaN", nil, true},
		{"Inf", nil, true},
		{"-Inf", nil, true},
		{"1e400", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var f DestinationForm
			f.SetRatingInput(tt.raw)
			assert.Equal(t, tt.wantRating, f.Rating)
			assert.Equal(t, tt.wantErr, f.RatingErr != "")
			assert.Equal(t, !tt.wantErr, f.CanSubmit())
		})
	}
}

func ptr(f float64) *float64 { return &f }

func TestDestinationSave_RatingAboveMaxMakesNoCalls(t *testing.T) {
	api := newFakeAPI()
	w := NewDestinations(api, api, zap.NewNop())
	f := validForm()
	f.SetRatingInput("7")

	_, err := w.Save(context.Background(), f, nil)

	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Empty(t, api.calls)
}

func TestDestinationValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*DestinationForm)
		field string
	}{
		{"title", func(f *DestinationForm) { f.Title = " " }, "title"},
		{"description", func(f *DestinationForm) { f.Description = "" }, "description"},
		{"kategori", func(f *DestinationForm) { f.Kategori = "" }, "kategori"},
		{"image missing", func(f *DestinationForm) { f.ImagePath = "/nope/a.png" }, "image"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.edit(&f)
			err := f.Validate()
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "error = %v", err)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
	f := validForm()
	assert.NoError(t, f.Validate())
}

func TestDestinationSave_Create(t *testing.T) {
	api := newFakeAPI()
	w := NewDestinations(api, api, zap.NewNop())
	f := validForm()
	f.ImagePath = writeImage(t, "curug.png")
	f.SetRatingInput("4.5")

	var progress []float64
	id, err := w.Save(context.Background(), f, func(p float64) { progress = append(progress, p) })

	require.NoError(t, err)
	assert.Equal(t, int64(10), id)
	assert.Equal(t, []string{"UploadImage(curug.png)", "CreateDestination", "CreateArticle(10)"}, api.calls)
	require.Len(t, api.created, 1)
	assert.Equal(t, "https://cdn.example.id/uploads/curug.png", api.created[0].ImageURL)
	assert.Equal(t, "alam", api.created[0].Kategori)
	assert.Equal(t, int64(15000), api.created[0].Price)
	require.NotNil(t, api.created[0].Rating)
	assert.Equal(t, 4.5, *api.created[0].Rating)
	require.Len(t, api.articles, 1)
	assert.Equal(t, `<p class="text-base mb-4">Halo</p>`, api.articles[0].Konten)
	assert.Equal(t, []float64{0.5, 1}, progress)
}

func TestDestinationSave_UploadFailureStops(t *testing.T) {
	api := newFakeAPI()
	api.fail["UploadImage(curug.png)"] = errors.New("HTTP 413: too large")
	w := NewDestinations(api, api, zap.NewNop())
	f := validForm()
	f.ImagePath = writeImage(t, "curug.png")

	_, err := w.Save(context.Background(), f, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "upload image")
	assert.Equal(t, []string{"UploadImage(curug.png)"}, api.calls)
}

func TestDestinationSave_CreateWithoutID(t *testing.T) {
	api := newFakeAPI()
	api.newID = 0
	w := NewDestinations(api, api, zap.NewNop())

	_, err := w.Save(context.Background(), validForm(), nil)

	require.Error(t, err)
	assert.Equal(t, []string{"CreateDestination"}, api.calls)
}

func TestDestinationSave_RetryAfterArticleFailureUpdates(t *testing.T) {
	api := newFakeAPI()
	api.fail["CreateArticle(10)"] = errors.New("HTTP 500: db down")
	w := NewDestinations(api, api, zap.NewNop())
	f := validForm()

	id, err := w.Save(context.Background(), f, nil)
	require.Error(t, err)
	assert.Equal(t, int64(10), id)

	delete(api.fail, "CreateArticle(10)")
	f.ID = id
	_, err = w.Save(context.Background(), f, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"CreateDestination", "CreateArticle(10)", "UpdateDestination(10)", "CreateArticle(10)"}, api.calls)
}

func TestDestinationEdit_MissingArticle(t *testing.T) {
	api := newFakeAPI()
	w := NewDestinations(api, api, zap.NewNop())
	rating := domain.FlexFloat(4)
	d := domain.Destination{ID: 7, Title: "Bukit", Description: "x", Price: 20000, Rating: &rating, Kategori: "Alam"}

	form, err := w.Edit(context.Background(), d)

	require.NoError(t, err)
	assert.Equal(t, int64(7), form.ID)
	assert.Equal(t, "Rp 20.000", form.PriceDisplay)
	assert.Equal(t, "4", form.RatingInput)
	assert.False(t, form.HasArticle)
	assert.Empty(t, form.Article.Konten)
	assert.Empty(t, form.Article.JamOperasional)
	assert.Empty(t, form.Article.Lokasi)
	assert.Empty(t, form.Article.PetaLokasi)

	// Saving the edit creates the article rather than updating a missing one.
	api.calls = nil
	_, err = w.Save(context.Background(), form, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"UpdateDestination(7)", "CreateArticle(7)"}, api.calls)
}

func TestDestinationEdit_ExistingArticle(t *testing.T) {
	api := newFakeAPI()
	api.article = &domain.Article{ID: 3, WisataID: 7, Konten: "<p>x</p>", Lokasi: "Desa"}
	w := NewDestinations(api, api, zap.NewNop())

	form, err := w.Edit(context.Background(), domain.Destination{ID: 7, Title: "Bukit"})
	require.NoError(t, err)
	assert.True(t, form.HasArticle)
	assert.Equal(t, "Desa", form.Article.Lokasi)

	form.Description = "d"
	form.Kategori = "alam"
	api.calls = nil
	_, err = w.Save(context.Background(), form, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"UpdateDestination(7)", "UpdateArticle(7)"}, api.calls)
}

func TestDestinationEdit_FetchError(t *testing.T) {
	api := newFakeAPI()
	api.fail["GetArticle(7)"] = errors.New("HTTP 500: boom")
	w := NewDestinations(api, api, zap.NewNop())

	_, err := w.Edit(context.Background(), domain.Destination{ID: 7})
	assert.Error(t, err)
}

func TestDestinationDelete_ArticleFirst(t *testing.T) {
	api := newFakeAPI()
	w := NewDestinations(api, api, zap.NewNop())

	require.NoError(t, w.Delete(context.Background(), 4))
	assert.Equal(t, []string{"DeleteArticle(4)", "DeleteDestination(4)"}, api.calls)
}

func TestDestinationDelete_ArticleFailureAborts(t *testing.T) {
	api := newFakeAPI()
	api.fail["DeleteArticle(4)"] = &client.HTTPError{StatusCode: 500, Message: "boom"}
	w := NewDestinations(api, api, zap.NewNop())

	err := w.Delete(context.Background(), 4)

	require.Error(t, err)
	assert.Equal(t, []string{"DeleteArticle(4)"}, api.calls)
}

func TestDestinationDelete_ArticleNotFoundAborts(t *testing.T) {
	api := newFakeAPI()
	api.fail["DeleteArticle(4)"] = &client.HTTPError{StatusCode: 404, Message: "not found"}
	w := NewDestinations(api, api, zap.NewNop())

	err := w.Delete(context.Background(), 4)

	require.Error(t, err)
	assert.True(t, client.IsStatus(err, 404))
	assert.Equal(t, []string{"DeleteArticle(4)"}, api.calls)
}

func TestCategories(t *testing.T) {
	api := newFakeAPI()
	w := NewDestinations(api, api, zap.NewNop())
	ctx := context.Background()

	assert.True(t, IsValidation(w.AddCategory(ctx, "   ")))
	assert.True(t, IsValidation(w.AddCategory(ctx, "Semua")))
	require.NoError(t, w.AddCategory(ctx, " Wisata Alam "))
	require.NoError(t, w.DeleteCategory(ctx, "kuliner"))
	assert.Equal(t, []string{"CreateCategory(wisata alam)", "DeleteCategory(kuliner)"}, api.calls)
}

func TestAgendaSave(t *testing.T) {
	api := newFakeAPI()
	w := NewAgenda(api, zap.NewNop())
	ctx := context.Background()

	form := AgendaForm{Title: "Festival", Date: "2025-08-17", Time: "08:00", Location: "Balai Desa", Description: "Lomba"}
	require.NoError(t, w.Save(ctx, form))

	form = AgendaFormFrom(domain.AgendaItem{ID: 5, Title: "Festival", Date: "2025-08-17 00:00:00", Time: "08:00:00", Location: "Balai", Description: "d"})
	assert.Equal(t, "2025-08-17", form.Date)
	assert.Equal(t, "08:00", form.Time)
	require.NoError(t, w.Save(ctx, form))
	require.NoError(t, w.Delete(ctx, 5))

	assert.Equal(t, []string{"CreateAgenda", "UpdateAgenda(5)", "DeleteAgenda(5)"}, api.calls)
	assert.Equal(t, "08:00", api.agenda[1].Time)
}

func TestAgendaValidate(t *testing.T) {
	base := AgendaForm{Title: "a", Date: "2025-08-17", Time: "08:00", Location: "b", Description: "c"}
	tests := []struct {
		name  string
		edit  func(*AgendaForm)
		field string
	}{
		{"title", func(f *AgendaForm) { f.Title = "" }, "title"},
		{"date", func(f *AgendaForm) { f.Date = "17-08-2025" }, "date"},
		{"time", func(f *AgendaForm) { f.Time = "8 pagi" }, "time"},
		{"location", func(f *AgendaForm) { f.Location = "" }, "location"},
		{"description", func(f *AgendaForm) { f.Description = " " }, "description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := base
			tt.edit(&f)
			var ve *ValidationError
			require.True(t, errors.As(f.Validate(), &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestGallerySave(t *testing.T) {
	api := newFakeAPI()
	w := NewGallery(api, api, zap.NewNop())
	ctx := context.Background()
	now := time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC)

	form := NewGalleryForm(now)
	assert.Equal(t, "2025-03-09", form.Tanggal)
	form.Judul = "Sunrise"

	err := w.Save(ctx, form, nil)
	assert.True(t, IsValidation(err), "new item without image must fail validation")
	assert.Empty(t, api.calls)

	form.ImagePath = writeImage(t, "sunrise.jpg")
	require.NoError(t, w.Save(ctx, form, nil))
	assert.Equal(t, []string{"UploadImage(sunrise.jpg)", "CreateGallery"}, api.calls)
	assert.Equal(t, "https://cdn.example.id/uploads/sunrise.jpg", api.gallery[0].ImageURL)

	api.calls = nil
	edit := GalleryFormFrom(domain.GalleryItem{ID: 2, Judul: "Lama", Tanggal: "2024-01-01", ImageURL: "https://cdn.example.id/old.jpg"})
	require.NoError(t, w.Save(ctx, edit, nil))
	require.NoError(t, w.Delete(ctx, 2))
	assert.Equal(t, []string{"UpdateGallery(2)", "DeleteGallery(2)"}, api.calls)
	assert.Equal(t, "https://cdn.example.id/old.jpg", api.gallery[1].ImageURL)
}

func TestGalleryValidate_NotAnImage(t *testing.T) {
	f := GalleryForm{Judul: "x", Tanggal: "2025-01-01", ImagePath: writeImage(t, "notes.txt")}
	var ve *ValidationError
	require.True(t, errors.As(f.Validate(), &ve))
	assert.Equal(t, "image", ve.Field)
}

func TestChangePassword(t *testing.T) {
	api := newFakeAPI()
	ctx := context.Background()

	assert.True(t, IsValidation(ChangePassword(ctx, api, PasswordForm{})))
	err := ChangePassword(ctx, api, PasswordForm{New: "a", Confirm: "b"})
	require.Error(t, err)
	assert.Equal(t, "Password tidak cocok!", err.Error())
	assert.Empty(t, api.calls)

	require.NoError(t, ChangePassword(ctx, api, PasswordForm{New: "baru", Confirm: "baru"}))
	assert.Equal(t, "baru", api.password)

	api.fail["UpdatePassword"] = errors.New("HTTP 500: db down")
	err = ChangePassword(ctx, api, PasswordForm{New: "x", Confirm: "x"})
	require.Error(t, err)
	assert.False(t, IsValidation(err))
}
