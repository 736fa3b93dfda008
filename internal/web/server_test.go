package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/pkg/domain"
)

type fakeCatalog struct {
	mu           sync.Mutex
	destinations []domain.Destination
	categories   []string
	articles     map[int64]*domain.Article
	agenda       []domain.AgendaItem
	gallery      []domain.GalleryItem
	err          error
	calls        map[string]int
}

func (f *fakeCatalog) count(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[name]++
}

func (f *fakeCatalog) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeCatalog) ListDestinations(_ context.Context) ([]domain.Destination, error) {
	f.count("destinations")
	return f.destinations, f.err
}

func (f *fakeCatalog) GetDestination(_ context.Context, id int64) (*domain.Destination, error) {
	f.count("destination")
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.destinations {
		if int64(f.destinations[i].ID) == id {
			return &f.destinations[i], nil
		}
	}
	return nil, nil
}

func (f *fakeCatalog) ListCategories(_ context.Context) ([]string, error) {
	f.count("categories")
	return f.categories, f.err
}

func (f *fakeCatalog) GetArticle(_ context.Context, id int64) (*domain.Article, error) {
	f.count("article")
	return f.articles[id], f.err
}

func (f *fakeCatalog) ListAgenda(_ context.Context) ([]domain.AgendaItem, error) {
	f.count("agenda")
	return f.agenda, f.err
}

func (f *fakeCatalog) ListGallery(_ context.Context) ([]domain.GalleryItem, error) {
	f.count("gallery")
	return f.gallery, f.err
}

func (f *fakeCatalog) ResolveImageURL(path string) string {
	if path == "" || strings.HasPrefix(path, "http") {
		return path
	}
	return "https://desa.example/" + strings.TrimPrefix(path, "/")
}

func rating(r float64) *domain.FlexFloat {
	v := domain.FlexFloat(r)
	return &v
}

func newCatalog() *fakeCatalog {
	return &fakeCatalog{
		destinations: []domain.Destination{
			{ID: 1, Title: "Curug Pinang", Description: "Air terjun.", Kategori: "alam", Price: 10000, Rating: rating(4.5), ImageURL: "uploads/curug.png"},
			{ID: 2, Title: "Kampung Batik", Description: "Membatik.", Kategori: "Budaya"},
			{ID: 3, Title: "Bukit Sikampret", Description: "Matahari terbit.", Kategori: "alam", Price: 5000, Rating: rating(4.8)},
			{ID: 4, Title: "Telaga Biru", Description: "Telaga.", Kategori: "alam", Rating: rating(3.9)},
		},
		categories: []string{"alam", "budaya"},
		articles: map[int64]*domain.Article{
			1: {
				WisataID:       1,
				Konten:         `<h2>Rute</h2><p onclick="x()">Dari balai desa.</p><script>alert(1)</script>`,
				JamOperasional: "07.00 - 17.00",
				Lokasi:         "Dusun Karangpucung",
				PetaLokasi:     "https://maps.example/curug",
			},
		},
		agenda: []domain.AgendaItem{
			{ID: 1, Title: "Kerja Bakti", Date: "2025-01-10", Time: "07:00:00", Location: "Balai Desa"},
			{ID: 2, Title: "Festival Panen", Date: "2025-12-01", Time: "19:30", Location: "Lapangan"},
		},
		gallery: []domain.GalleryItem{
			{ID: 1, Judul: "Sawah Terasering", Tanggal: "2025-03-01", ImageURL: "uploads/sawah.jpg"},
		},
	}
}

func newTestServer(t *testing.T, api Catalog, ttl time.Duration) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s, err := New(api, ttl, nil)
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC) }
	return s
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, newCatalog(), 0)
	w := get(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t, newCatalog(), 0)

	w := get(t, s, "/healthz")
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "6f1c2a9e-3b4d-4c5e-8f70-112233445566")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, "6f1c2a9e-3b4d-4c5e-8f70-112233445566", w.Header().Get(requestIDHeader))
}

func TestHomeShowsTopRatedAndUpcoming(t *testing.T) {
	s := newTestServer(t, newCatalog(), 0)
	w := get(t, s, "/")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Bukit Sikampret")
	assert.Contains(t, body, "Curug Pinang")
	assert.Contains(t, body, "Telaga Biru")
	assert.NotContains(t, body, "Kampung Batik", "only the three best rated destinations are featured")
	assert.Contains(t, body, "Festival Panen")
	assert.NotContains(t, body, "Kerja Bakti", "passed events are not featured")
	assert.Less(t, strings.Index(body, "Bukit Sikampret"), strings.Index(body, "Curug Pinang"))
}

func TestWisataListFiltersByCategory(t *testing.T) {
	s := newTestServer(t, newCatalog(), 0)

	w := get(t, s, "/wisata")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	for _, want := range []string{"Curug Pinang", "Kampung Batik", "Gratis", "Rp 10.000", "Semua", "Alam", "Budaya", "https://desa.example/uploads/curug.png"} {
		assert.Contains(t, body, want)
	}

	w = get(t, s, "/wisata?kategori=BUDAYA")
	body = w.Body.String()
	assert.Contains(t, body, "Kampung Batik")
	assert.NotContains(t, body, "Curug Pinang")

	w = get(t, s, "/wisata?kategori=kuliner")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Tidak ada wisata pada kategori ini.")
}

func TestListErrorsRenderEmptyState(t *testing.T) {
	s := newTestServer(t, &fakeCatalog{err: errors.New("connection refused")}, 0)

	tests := []struct {
		path string
		want string
	}{
		{"/wisata", "Destinasi wisata belum dapat dimuat."},
		{"/agenda", "Agenda belum dapat dimuat."},
		{"/galeri", "Galeri belum dapat dimuat."},
		{"/", "Destinasi wisata belum dapat dimuat."},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			w := get(t, s, tc.path)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tc.want)
			assert.NotContains(t, w.Body.String(), "connection refused")
		})
	}
}

func TestWisataDetailSanitizesArticle(t *testing.T) {
	s := newTestServer(t, newCatalog(), 0)
	w := get(t, s, "/wisata/1")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Curug Pinang")
	assert.Contains(t, body, "07.00 - 17.00")
	assert.Contains(t, body, "Dusun Karangpucung")
	assert.Contains(t, body, "https://maps.example/curug")
	assert.Contains(t, body, "Dari balai desa.")
	assert.NotContains(t, body, "<script>alert")
	assert.NotContains(t, body, "onclick")
}

func TestWisataDetailWithoutArticle(t *testing.T) {
	s := newTestServer(t, newCatalog(), 0)
	w := get(t, s, "/wisata/2")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Belum ada artikel untuk destinasi ini.")
}

func TestWisataDetailNotFound(t *testing.T) {
	s := newTestServer(t, newCatalog(), 0)
	for _, path := range []string{"/wisata/99", "/wisata/abc", "/wisata/0", "/tidak-ada"} {
		t.Run(path, func(t *testing.T) {
			w := get(t, s, path)
			assert.Equal(t, http.StatusNotFound, w.Code)
		})
	}
}

func TestWisataDetailRemoteFailure(t *testing.T) {
	s := newTestServer(t, &fakeCatalog{err: errors.New("timeout")}, 0)
	w := get(t, s, "/wisata/1")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "belum dapat dimuat")
}

func TestAgendaSortedWithStatus(t *testing.T) {
	s := newTestServer(t, newCatalog(), 0)
	w := get(t, s, "/agenda")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Less(t, strings.Index(body, "Festival Panen"), strings.Index(body, "Kerja Bakti"), "newest first")
	assert.Contains(t, body, "Sudah Lewat")
	assert.Contains(t, body, "Akan Datang")
	assert.Contains(t, body, "1 Desember 2025")
	assert.Contains(t, body, "07:00")
	assert.NotContains(t, body, "07:00:00")
}

func TestGaleriResolvesImages(t *testing.T) {
	s := newTestServer(t, newCatalog(), 0)
	w := get(t, s, "/galeri")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://desa.example/uploads/sawah.jpg")
	assert.Contains(t, w.Body.String(), "1 Maret 2025")
}

func TestHubungiKami(t *testing.T) {
	s := newTestServer(t, newCatalog(), 0)
	w := get(t, s, "/hubungi-kami")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Jam Operasional")
}

func TestCacheServesRepeatedReads(t *testing.T) {
	api := newCatalog()
	s := newTestServer(t, api, time.Minute)

	get(t, s, "/wisata")
	get(t, s, "/wisata?kategori=alam")
	assert.Equal(t, 1, api.callCount("destinations"))
	assert.Equal(t, 1, api.callCount("categories"))
}

func TestCacheDisabledWithZeroTTL(t *testing.T) {
	api := newCatalog()
	s := newTestServer(t, api, 0)

	get(t, s, "/agenda")
	get(t, s, "/agenda")
	assert.Equal(t, 2, api.callCount("agenda"))
}

func TestCacheSkipsErrors(t *testing.T) {
	api := newCatalog()
	api.err = errors.New("boom")
	s := newTestServer(t, api, time.Minute)

	get(t, s, "/galeri")
	api.err = nil
	w := get(t, s, "/galeri")
	assert.Contains(t, w.Body.String(), "Sawah Terasering")
	assert.Equal(t, 2, api.callCount("gallery"))
}

func TestRunStopsOnCancel(t *testing.T) {
	s := newTestServer(t, newCatalog(), 0)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
