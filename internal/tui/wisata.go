package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/internal/browser"
	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/internal/present"
	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/pkg/client"
	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/pkg/domain"
)

// wisataModel is the public destination catalog: a filterable list and a
// detail view with the destination's article.
type wisataModel struct {
	client     *client.Client
	all        []domain.Destination
	categories []string // filter options, "semua" first
	category   string
	cursor     int
	detail     bool
	article    *domain.Article
	articleID  int64 // destination the article belongs to
	articleErr error
	loadingArt bool
	scroll     int
	err        error
	loading    bool
	width      int
	height     int
	statusMsg  string
}

type destinationsLoadedMsg struct {
	list       []domain.Destination
	categories []string
	err        error
}

type articleLoadedMsg struct {
	wisataID int64
	article  *domain.Article
	err      error
}

type wisataCopyMsg struct{ err error }
type wisataOpenMsg struct{ err error }

func newWisataModel(c *client.Client) wisataModel {
	return wisataModel{
		client:     c,
		category:   domain.AllCategories,
		categories: []string{domain.AllCategories},
		loading:    true,
	}
}

func (m wisataModel) Init() tea.Cmd {
	return m.load()
}

// load fetches destinations and categories together. A category failure
// only leaves the filter with "semua".
func (m wisataModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		list, err := c.ListDestinations(ctx)
		if err != nil {
			return destinationsLoadedMsg{err: err}
		}
		cats, _ := c.ListCategories(ctx)
		return destinationsLoadedMsg{list: list, categories: cats}
	}
}

func (m wisataModel) loadArticle(id int64) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		a, err := c.GetArticle(ctx, id)
		return articleLoadedMsg{wisataID: id, article: a, err: err}
	}
}

// visible returns the destinations matching the active category.
func (m wisataModel) visible() []domain.Destination {
	return present.FilterByCategory(m.all, m.category)
}

func (m wisataModel) selected() (domain.Destination, bool) {
	v := m.visible()
	if m.cursor < 0 || m.cursor >= len(v) {
		return domain.Destination{}, false
	}
	return v[m.cursor], true
}

func (m wisataModel) Update(msg tea.Msg) (wisataModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case destinationsLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.all = nil
		} else {
			m.all = msg.list
			m.categories = present.CategoryOptions(msg.categories)
		}
		found := false
		for _, c := range m.categories {
			if c == m.category {
				found = true
				break
			}
		}
		if !found {
			m.category = domain.AllCategories
		}
		m.cursor = clampCursor(m.cursor, len(m.visible()))
		return m, nil

	case articleLoadedMsg:
		if d, ok := m.selected(); !ok || int64(d.ID) != msg.wisataID {
			return m, nil
		}
		m.loadingArt = false
		m.article = msg.article
		m.articleID = msg.wisataID
		m.articleErr = msg.err
		return m, nil

	case wisataCopyMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("copy failed: %v", msg.err)
		} else {
			m.statusMsg = "link gambar disalin"
		}
		return m, nil

	case wisataOpenMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("open failed: %v", msg.err)
		} else {
			m.statusMsg = "membuka peta lokasi"
		}
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		if m.detail {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m wisataModel) updateList(msg tea.KeyMsg) (wisataModel, tea.Cmd) {
	n := len(m.visible())
	switch msg.String() {
	case "j", "down":
		if m.cursor < n-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "c":
		m.category = m.nextCategory()
		m.cursor = 0
	case "enter":
		d, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.detail = true
		m.scroll = 0
		m.article = nil
		m.articleErr = nil
		m.loadingArt = true
		return m, m.loadArticle(int64(d.ID))
	case "y":
		return m, m.copyImage()
	case "r":
		m.loading = true
		return m, m.load()
	}
	return m, nil
}

func (m wisataModel) updateDetail(msg tea.KeyMsg) (wisataModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.detail = false
	case "j", "down":
		m.scroll++
	case "k", "up":
		if m.scroll > 0 {
			m.scroll--
		}
	case "o":
		if m.article == nil || strings.TrimSpace(m.article.PetaLokasi) == "" {
			m.statusMsg = "peta lokasi belum tersedia"
			return m, nil
		}
		link := strings.TrimSpace(m.article.PetaLokasi)
		return m, func() tea.Msg {
			return wisataOpenMsg{err: browser.Open(link)}
		}
	case "y":
		return m, m.copyImage()
	}
	return m, nil
}

func (m wisataModel) copyImage() tea.Cmd {
	d, ok := m.selected()
	if !ok || d.ImageURL == "" {
		return nil
	}
	link := d.ImageURL
	if m.client != nil {
		link = m.client.ResolveImageURL(d.ImageURL)
	}
	return func() tea.Msg {
		return wisataCopyMsg{err: clipboard.WriteAll(link)}
	}
}

func (m wisataModel) nextCategory() string {
	if len(m.categories) == 0 {
		return domain.AllCategories
	}
	for i, c := range m.categories {
		if c == m.category {
			return m.categories[(i+1)%len(m.categories)]
		}
	}
	return m.categories[0]
}

func (m wisataModel) helpKeys() string {
	if m.detail {
		return helpEntry("j/k", "scroll") + "  " + helpEntry("o", "peta") + "  " + helpEntry("y", "copy") + "  " + helpEntry("esc", "back")
	}
	return helpEntry("j/k", "nav") + "  " + helpEntry("enter", "detail") + "  " + helpEntry("c", "kategori") + "  " + helpEntry("r", "reload") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
}

func (m wisataModel) View() string {
	if m.detail {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m wisataModel) viewList() string {
	var b strings.Builder

	// Category filter bar
	b.WriteString(" ")
	for i, c := range m.categories {
		if i > 0 {
			b.WriteString(metaStyle.Render(" · "))
		}
		label := present.CategoryLabel(c)
		if c == m.category {
			b.WriteString(CategoryStyle(c).Underline(true).Render(label))
		} else {
			b.WriteString(dimStyle.Render(label))
		}
	}
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(dimStyle.Render("  memuat destinasi wisata...") + "\n")
		return b.String()
	}

	list := m.visible()
	if len(list) == 0 {
		if m.err != nil {
			b.WriteString(dimStyle.Render("  Destinasi wisata belum dapat dimuat.") + "\n")
			b.WriteString(metaStyle.Render("  r to retry") + "\n")
		} else {
			b.WriteString(dimStyle.Render("  Belum ada destinasi wisata untuk kategori ini.") + "\n")
		}
		return b.String()
	}

	rows := (m.height - 3) / 2
	start, end := visibleWindow(m.cursor, len(list), rows)
	titleW := m.width - 36
	if titleW < 16 {
		titleW = 16
	}
	for i := start; i < end; i++ {
		d := list[i]
		sel := i == m.cursor
		marker := "  "
		title := normalStyle.Render(truncStr(d.Title, titleW))
		if sel {
			marker = accentStyle.Render("▸ ")
			title = selectedStyle.Render(truncStr(d.Title, titleW))
		}
		r, ok := d.RatingValue()
		rating := metaStyle.Render(present.FormatRating(r, ok))
		if ok {
			rating = goldStyle.Render("★ " + present.FormatRating(r, ok))
		}
		fmt.Fprintf(&b, " %s%s  %s\n", marker, title, rating)
		fmt.Fprintf(&b, "     %s  %s\n",
			CategoryStyle(domain.NormalizeCategory(d.Kategori)).Render(present.CategoryLabel(d.Kategori)),
			priceStyle.Render(present.PriceLabel(int64(d.Price))))
	}

	if m.statusMsg != "" {
		b.WriteString("\n " + goldStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}

func (m wisataModel) viewDetail() string {
	d, ok := m.selected()
	if !ok {
		return dimStyle.Render("  Destinasi tidak ditemukan.") + "\n"
	}
	width := m.width - 4
	if width > 96 {
		width = 96
	}

	var b strings.Builder
	b.WriteString(" " + selectedStyle.Render(d.Title) + "\n")
	r, hasRating := d.RatingValue()
	meta := CategoryStyle(domain.NormalizeCategory(d.Kategori)).Render(present.CategoryLabel(d.Kategori)) +
		metaStyle.Render(" · ") + priceStyle.Render(present.PriceLabel(int64(d.Price)))
	if hasRating {
		meta += metaStyle.Render(" · ") + ratingStars(r) + " " + goldStyle.Render(present.FormatRating(r, true))
	}
	b.WriteString(" " + meta + "\n")
	if d.ImageURL != "" && m.client != nil {
		b.WriteString(" " + metaStyle.Render(m.client.ResolveImageURL(d.ImageURL)) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(wrap(d.Description, width, " ") + "\n\n")

	switch {
	case m.loadingArt:
		b.WriteString(dimStyle.Render("  memuat artikel...") + "\n")
	case m.articleErr != nil:
		b.WriteString(dimStyle.Render("  Artikel belum dapat dimuat.") + "\n")
	case m.article == nil:
		b.WriteString(dimStyle.Render("  Belum ada artikel untuk destinasi ini.") + "\n")
	default:
		a := m.article
		if a.JamOperasional != "" {
			b.WriteString(" " + sectionHeaderStyle.Render("Jam Operasional  ") + normalStyle.Render(a.JamOperasional) + "\n")
		}
		if a.Lokasi != "" {
			b.WriteString(" " + sectionHeaderStyle.Render("Lokasi           ") + normalStyle.Render(a.Lokasi) + "\n")
		}
		if a.PetaLokasi != "" {
			b.WriteString(" " + sectionHeaderStyle.Render("Peta             ") + accentStyle.Render(truncStr(a.PetaLokasi, width-18)) + "\n")
		}
		if text := present.HTMLToText(a.Konten); text != "" {
			b.WriteString("\n" + wrap(text, width, " ") + "\n")
		}
	}

	if m.statusMsg != "" {
		b.WriteString("\n " + goldStyle.Render(m.statusMsg) + "\n")
	}

	lines := strings.Split(b.String(), "\n")
	scroll := m.scroll
	if scroll > len(lines)-1 {
		scroll = len(lines) - 1
	}
	if scroll < 0 {
		scroll = 0
	}
	return strings.Join(lines[scroll:], "\n")
}
