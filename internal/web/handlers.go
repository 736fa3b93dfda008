package web

import (
	"html/template"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/internal/present"
	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/pkg/domain"
)

const (
	homeDestinations = 3
	homeAgenda       = 3
)

// page is the data shared by every template.
type page struct {
	Title    string
	Subtitle string
	Active   string
	// Failed is set when the remote data could not be loaded.
	Failed bool
}

type destinationView struct {
	ID          int64
	Title       string
	Description string
	Category    string
	Price       string
	Rating      string
	Image       string
	Slug        string
}

type agendaView struct {
	Title       string
	Date        string
	Time        string
	Location    string
	Description string
	Status      string
	Passed      bool
}

type galleryView struct {
	Judul     string
	Deskripsi string
	Tanggal   string
	Image     string
}

type categoryLink struct {
	Name   string
	Label  string
	Active bool
}

type homePage struct {
	page
	Destinations []destinationView
	Agenda       []agendaView
}

type wisataPage struct {
	page
	Categories   []categoryLink
	Destinations []destinationView
}

type detailPage struct {
	page
	Destination    destinationView
	HasArticle     bool
	Content        template.HTML
	JamOperasional string
	Lokasi         string
	PetaLokasi     string
}

type agendaPage struct {
	page
	Items []agendaView
}

type galeriPage struct {
	page
	Items []galleryView
}

func (s *Server) destinationView(d domain.Destination) destinationView {
	r, ok := d.RatingValue()
	return destinationView{
		ID:          int64(d.ID),
		Title:       d.Title,
		Description: d.Description,
		Category:    present.CategoryLabel(d.Kategori),
		Price:       present.PriceLabel(int64(d.Price)),
		Rating:      present.FormatRating(r, ok),
		Image:       s.api.ResolveImageURL(d.ImageURL),
		Slug:        present.Slug(d.Title),
	}
}

func (s *Server) destinationViews(list []domain.Destination) []destinationView {
	out := make([]destinationView, 0, len(list))
	for _, d := range list {
		out = append(out, s.destinationView(d))
	}
	return out
}

func (s *Server) agendaViews(items []domain.AgendaItem) []agendaView {
	now := s.now()
	out := make([]agendaView, 0, len(items))
	for _, it := range items {
		out = append(out, agendaView{
			Title:       it.Title,
			Date:        present.FormatDate(it.Date),
			Time:        present.FormatTime(it.Time),
			Location:    it.Location,
			Description: it.Description,
			Status:      present.AgendaStatus(it, now),
			Passed:      present.IsPassed(it, now),
		})
	}
	return out
}

func (s *Server) render(c *gin.Context, status int, name string, data any) {
	c.HTML(status, name, data)
}

func (s *Server) home(c *gin.Context) {
	ctx := c.Request.Context()
	log := requestLog(c, s.logger)
	data := homePage{page: page{Title: "Desa Wisata Banjarpanepen", Active: "home"}}

	if list, err := s.destinations(ctx); err != nil {
		log.Warn("list destinations", zap.Error(err))
		data.Failed = true
	} else {
		top := append([]domain.Destination(nil), list...)
		sort.SliceStable(top, func(i, j int) bool {
			ri, _ := top[i].RatingValue()
			rj, _ := top[j].RatingValue()
			return ri > rj
		})
		if len(top) > homeDestinations {
			top = top[:homeDestinations]
		}
		data.Destinations = s.destinationViews(top)
	}

	if items, err := s.agendaItems(ctx); err != nil {
		log.Warn("list agenda", zap.Error(err))
	} else {
		// Nearest upcoming events first.
		sorted := present.SortAgendaDesc(items)
		var upcoming []domain.AgendaItem
		now := s.now()
		for i := len(sorted) - 1; i >= 0 && len(upcoming) < homeAgenda; i-- {
			if !present.IsPassed(sorted[i], now) {
				upcoming = append(upcoming, sorted[i])
			}
		}
		data.Agenda = s.agendaViews(upcoming)
	}

	s.render(c, http.StatusOK, "home.html", data)
}

func (s *Server) wisataList(c *gin.Context) {
	ctx := c.Request.Context()
	log := requestLog(c, s.logger)
	selected := domain.NormalizeCategory(c.DefaultQuery("kategori", domain.AllCategories))
	data := wisataPage{page: page{
		Title:    "Daftar Wisata Banjarpanepen",
		Subtitle: "Jelajahi wisata yang ada di Banjarpanepen",
		Active:   "wisata",
	}}

	cats, err := s.categories(ctx)
	if err != nil {
		// The filter bar still offers "semua".
		log.Warn("list categories", zap.Error(err))
	}
	for _, name := range present.CategoryOptions(cats) {
		data.Categories = append(data.Categories, categoryLink{
			Name:   name,
			Label:  present.CategoryLabel(name),
			Active: name == selected,
		})
	}

	list, err := s.destinations(ctx)
	if err != nil {
		log.Warn("list destinations", zap.Error(err))
		data.Failed = true
	} else {
		data.Destinations = s.destinationViews(present.FilterByCategory(list, selected))
	}
	s.render(c, http.StatusOK, "wisata.html", data)
}

func (s *Server) wisataDetail(c *gin.Context) {
	ctx := c.Request.Context()
	log := requestLog(c, s.logger)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		s.render(c, http.StatusNotFound, "notfound.html", page{Title: "Wisata tidak ditemukan", Active: "wisata"})
		return
	}

	d, err := s.destination(ctx, id)
	if err != nil {
		log.Warn("get destination", zap.Int64("id", id), zap.Error(err))
		s.render(c, http.StatusBadGateway, "detail.html", detailPage{page: page{Title: "Wisata", Active: "wisata", Failed: true}})
		return
	}
	if d == nil {
		s.render(c, http.StatusNotFound, "notfound.html", page{Title: "Wisata tidak ditemukan", Active: "wisata"})
		return
	}

	data := detailPage{
		page:        page{Title: d.Title, Active: "wisata"},
		Destination: s.destinationView(*d),
	}
	if a := s.article(ctx, id); a != nil {
		data.HasArticle = true
		data.JamOperasional = a.JamOperasional
		data.Lokasi = a.Lokasi
		data.PetaLokasi = a.PetaLokasi
		content, err := present.DecorateContent(present.SanitizeHTML(a.Konten))
		if err != nil {
			log.Warn("decorate article", zap.Int64("id", id), zap.Error(err))
			content = present.SanitizeHTML(a.Konten)
		}
		// Sanitized above.
		data.Content = template.HTML(content) //nolint:gosec
	}
	s.render(c, http.StatusOK, "detail.html", data)
}

func (s *Server) agenda(c *gin.Context) {
	data := agendaPage{page: page{Title: "Agenda", Subtitle: "Jadwal kegiatan dan acara mendatang", Active: "agenda"}}
	items, err := s.agendaItems(c.Request.Context())
	if err != nil {
		requestLog(c, s.logger).Warn("list agenda", zap.Error(err))
		data.Failed = true
	} else {
		data.Items = s.agendaViews(present.SortAgendaDesc(items))
	}
	s.render(c, http.StatusOK, "agenda.html", data)
}

func (s *Server) galeri(c *gin.Context) {
	data := galeriPage{page: page{
		Title:    "Galeri Foto",
		Subtitle: "Koleksi momen-momen indah dari berbagai destinasi wisata",
		Active:   "galeri",
	}}
	items, err := s.galleryItems(c.Request.Context())
	if err != nil {
		requestLog(c, s.logger).Warn("list gallery", zap.Error(err))
		data.Failed = true
	}
	for _, it := range items {
		data.Items = append(data.Items, galleryView{
			Judul:     it.Judul,
			Deskripsi: it.Deskripsi,
			Tanggal:   present.FormatDate(it.Tanggal),
			Image:     s.api.ResolveImageURL(it.ImageURL),
		})
	}
	s.render(c, http.StatusOK, "galeri.html", data)
}

func (s *Server) hubungi(c *gin.Context) {
	s.render(c, http.StatusOK, "hubungi.html", page{
		Title:    "Hubungi Kami",
		Subtitle: "Hubungi tim kami untuk merencanakan kunjungan Anda ke Desa Wisata Banjarpanepen",
		Active:   "hubungi",
	})
}

var templateFuncs = template.FuncMap{
	// navClass marks the navigation link of the current page.
	"navClass": func(active, name string) string {
		if active == name {
			return "nav-link active"
		}
		return "nav-link"
	},
}
