package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/internal/browser"
	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/internal/present"
	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/pkg/client"
	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/pkg/domain"
)

// galeriModel is the photo gallery with a lightbox that steps through
// items one at a time.
type galeriModel struct {
	client    *client.Client
	items     []domain.GalleryItem
	cursor    int
	lightbox  bool
	err       error
	loading   bool
	width     int
	height    int
	statusMsg string
}

type galleryLoadedMsg struct {
	items []domain.GalleryItem
	err   error
}

type galeriOpenMsg struct{ err error }

func newGaleriModel(c *client.Client) galeriModel {
	return galeriModel{client: c, loading: true}
}

func (m galeriModel) Init() tea.Cmd {
	return m.load()
}

func (m galeriModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		items, err := c.ListGallery(ctx)
		return galleryLoadedMsg{items: items, err: err}
	}
}

func (m galeriModel) imageURL(item domain.GalleryItem) string {
	if m.client == nil {
		return item.ImageURL
	}
	return m.client.ResolveImageURL(item.ImageURL)
}

func (m galeriModel) Update(msg tea.Msg) (galeriModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case galleryLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.items = msg.items
		m.cursor = clampCursor(m.cursor, len(m.items))
		if len(m.items) == 0 {
			m.lightbox = false
		}
		return m, nil

	case galeriOpenMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("open failed: %v", msg.err)
		} else {
			m.statusMsg = "membuka gambar"
		}
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		switch msg.String() {
		case "j", "down":
			if !m.lightbox && m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "k", "up":
			if !m.lightbox && m.cursor > 0 {
				m.cursor--
			}
		case "l", "right":
			if m.lightbox && len(m.items) > 0 {
				m.cursor = (m.cursor + 1) % len(m.items)
			}
		case "left":
			if m.lightbox && len(m.items) > 0 {
				m.cursor = (m.cursor - 1 + len(m.items)) % len(m.items)
			}
		case "enter":
			if len(m.items) > 0 {
				m.lightbox = true
			}
		case "esc":
			m.lightbox = false
		case "o":
			if m.cursor < len(m.items) {
				link := m.imageURL(m.items[m.cursor])
				return m, func() tea.Msg {
					return galeriOpenMsg{err: browser.Open(link)}
				}
			}
		case "r":
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func (m galeriModel) helpKeys() string {
	if m.lightbox {
		return helpEntry("←/→", "prev/next") + "  " + helpEntry("o", "open") + "  " + helpEntry("esc", "close")
	}
	return helpEntry("j/k", "nav") + "  " + helpEntry("enter", "view") + "  " + helpEntry("o", "open") + "  " + helpEntry("r", "reload") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
}

func (m galeriModel) View() string {
	var b strings.Builder
	b.WriteString(" " + sectionHeaderStyle.Render("Galeri Desa") + "\n\n")

	if m.loading {
		b.WriteString(dimStyle.Render("  memuat galeri...") + "\n")
		return b.String()
	}
	if len(m.items) == 0 {
		if m.err != nil {
			b.WriteString(dimStyle.Render("  Galeri belum dapat dimuat.") + "\n")
			b.WriteString(metaStyle.Render("  r to retry") + "\n")
		} else {
			b.WriteString(dimStyle.Render("  Belum ada foto di galeri.") + "\n")
		}
		return b.String()
	}

	if m.lightbox {
		item := m.items[m.cursor]
		width := m.width - 4
		if width > 96 {
			width = 96
		}
		b.WriteString(" " + metaStyle.Render(fmt.Sprintf("%d / %d", m.cursor+1, len(m.items))) + "\n\n")
		b.WriteString(" " + selectedStyle.Render(item.Judul) + "\n")
		b.WriteString(" " + dimStyle.Render(present.FormatDate(item.Tanggal)) + "\n\n")
		if item.Deskripsi != "" {
			b.WriteString(wrap(item.Deskripsi, width, " ") + "\n\n")
		}
		b.WriteString(" " + accentStyle.Render(m.imageURL(item)) + "\n")
		if m.statusMsg != "" {
			b.WriteString("\n " + goldStyle.Render(m.statusMsg) + "\n")
		}
		return b.String()
	}

	rows := m.height - 3
	start, end := visibleWindow(m.cursor, len(m.items), rows)
	titleW := m.width - 26
	if titleW < 16 {
		titleW = 16
	}
	for i := start; i < end; i++ {
		item := m.items[i]
		marker := "  "
		title := normalStyle.Render(truncStr(item.Judul, titleW))
		if i == m.cursor {
			marker = accentStyle.Render("▸ ")
			title = selectedStyle.Render(truncStr(item.Judul, titleW))
		}
		fmt.Fprintf(&b, " %s%s  %s\n", marker, title, metaStyle.Render(present.FormatDate(item.Tanggal)))
	}
	if m.statusMsg != "" {
		b.WriteString("\n " + goldStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}
