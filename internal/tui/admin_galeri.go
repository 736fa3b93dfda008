package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/internal/admin"
	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/internal/present"
	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/pkg/client"
	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/pkg/domain"
)

// adminGaleriModel manages gallery items and their images.
type adminGaleriModel struct {
	client     *client.Client
	flow       *admin.Gallery
	items      []domain.GalleryItem
	cursor     int
	state      editState
	editID     int64
	imageURL   string // current image of the item being edited
	fields     fieldSet
	errKey     string
	errMsg     string
	submitting bool
	deleting   bool // a confirmed delete is in flight
	progress   float64
	progressCh chan float64
	err        error
	loading    bool
	now        func() time.Time
	width      int
	height     int
	statusMsg  string
}

type adminGalleryLoadedMsg struct {
	items []domain.GalleryItem
	err   error
}

type gallerySavedMsg struct{ err error }
type galleryDeletedMsg struct{ err error }

func newAdminGaleriModel(c *client.Client, flow *admin.Gallery) adminGaleriModel {
	return adminGaleriModel{client: c, flow: flow, loading: true, now: time.Now}
}

func (m adminGaleriModel) Init() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		items, err := c.ListGallery(ctx)
		return adminGalleryLoadedMsg{items: items, err: err}
	}
}

func galleryFields(f admin.GalleryForm) fieldSet {
	hint := "path ke .jpg/.png/.webp"
	if f.ID != 0 {
		hint = "kosong = gambar lama"
	}
	return newFieldSet(
		formField{key: "judul", label: "Judul", value: f.Judul},
		formField{key: "deskripsi", label: "Deskripsi", value: f.Deskripsi},
		formField{key: "tanggal", label: "Tanggal", value: f.Tanggal, hint: "YYYY-MM-DD"},
		formField{key: "image", label: "Gambar", value: f.ImagePath, hint: hint},
	)
}

func (m adminGaleriModel) form() admin.GalleryForm {
	return admin.GalleryForm{
		ID:        m.editID,
		Judul:     m.fields.get("judul"),
		Deskripsi: m.fields.get("deskripsi"),
		Tanggal:   m.fields.get("tanggal"),
		ImageURL:  m.imageURL,
		ImagePath: strings.TrimSpace(m.fields.get("image")),
	}
}

func (m adminGaleriModel) Update(msg tea.Msg) (adminGaleriModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case adminGalleryLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.items = msg.items
		}
		m.cursor = clampCursor(m.cursor, len(m.items))
		return m, expiredCmd(msg.err)

	case uploadProgressMsg:
		if msg.ch != m.progressCh {
			return m, nil
		}
		m.progress = msg.fraction
		return m, waitForProgress(m.progressCh)

	case gallerySavedMsg:
		if !m.submitting {
			return m, nil
		}
		m.submitting = false
		m.progressCh = nil
		if msg.err != nil {
			if key, text, ok := fieldError(msg.err); ok {
				m.errKey, m.errMsg = key, text
				return m, nil
			}
			m.statusMsg = failureText("simpan galeri", msg.err)
			return m, expiredCmd(msg.err)
		}
		if m.state == editAdding {
			m.statusMsg = "foto ditambahkan"
		} else {
			m.statusMsg = "foto diperbarui"
		}
		m.state = editNone
		m.loading = true
		return m, m.Init()

	case galleryDeletedMsg:
		m.deleting = false
		m.state = editNone
		if msg.err != nil {
			m.statusMsg = failureText("hapus galeri", msg.err)
			return m, expiredCmd(msg.err)
		}
		m.statusMsg = "foto dihapus"
		m.loading = true
		return m, m.Init()

	case tea.KeyMsg:
		switch m.state {
		case editAdding, editEditing:
			return m.handleKeyForm(msg)
		case editDeleting:
			return m.handleKeyDeleting(msg)
		}
		return m.handleKeyNormal(msg)
	}
	return m, nil
}

func (m adminGaleriModel) handleKeyNormal(msg tea.KeyMsg) (adminGaleriModel, tea.Cmd) {
	m.statusMsg = ""
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "a":
		f := admin.NewGalleryForm(m.now())
		m.state = editAdding
		m.editID = 0
		m.imageURL = ""
		m.fields = galleryFields(f)
		m.errKey, m.errMsg = "", ""
	case "e", "enter":
		if m.cursor < len(m.items) {
			f := admin.GalleryFormFrom(m.items[m.cursor])
			m.state = editEditing
			m.editID = f.ID
			m.imageURL = f.ImageURL
			m.fields = galleryFields(f)
			m.errKey, m.errMsg = "", ""
		}
	case "d":
		if m.cursor < len(m.items) {
			m.state = editDeleting
		}
	case "r":
		m.loading = true
		return m, m.Init()
	}
	return m, nil
}

func (m adminGaleriModel) handleKeyForm(msg tea.KeyMsg) (adminGaleriModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.state = editNone
		m.errKey, m.errMsg = "", ""
		return m, nil
	case "tab", "down", "enter":
		m.fields.next()
		return m, nil
	case "shift+tab", "up":
		m.fields.prev()
		return m, nil
	case "ctrl+s":
		form := m.form()
		if err := form.Validate(); err != nil {
			m.errKey, m.errMsg, _ = fieldError(err)
			m.fields.focusKey(m.errKey)
			return m, nil
		}
		m.errKey, m.errMsg = "", ""
		m.submitting = true
		m.progress = 0
		ch, progress := newProgress()
		m.progressCh = ch
		flow := m.flow
		save := func() tea.Msg {
			defer close(ch)
			ctx, cancel := uploadContext()
			defer cancel()
			return gallerySavedMsg{err: flow.Save(ctx, form, progress)}
		}
		return m, tea.Batch(save, waitForProgress(ch))
	}
	key := m.fields.focused()
	if m.fields.handle(msg.String()) && key == m.errKey {
		m.errKey, m.errMsg = "", ""
	}
	return m, nil
}

func (m adminGaleriModel) handleKeyDeleting(msg tea.KeyMsg) (adminGaleriModel, tea.Cmd) {
	if m.deleting {
		return m, nil
	}
	switch msg.String() {
	case "y":
		if m.cursor >= len(m.items) {
			m.state = editNone
			return m, nil
		}
		id := int64(m.items[m.cursor].ID)
		flow := m.flow
		m.deleting = true
		return m, func() tea.Msg {
			ctx, cancel := requestContext()
			defer cancel()
			return galleryDeletedMsg{err: flow.Delete(ctx, id)}
		}
	case "n", "esc":
		m.state = editNone
	}
	return m, nil
}

func (m adminGaleriModel) helpKeys() string {
	switch m.state {
	case editAdding, editEditing:
		if m.submitting {
			return helpEntry("", "mengunggah...")
		}
		return helpEntry("tab", "next") + "  " + helpEntry("ctrl+s", "save") + "  " + helpEntry("esc", "cancel")
	case editDeleting:
		if m.deleting {
			return helpEntry("", "menghapus...")
		}
		return helpEntry("y", "confirm") + "  " + helpEntry("n", "cancel")
	}
	return helpEntry("j/k", "nav") + "  " + helpEntry("a", "add") + "  " + helpEntry("e", "edit") + "  " + helpEntry("d", "delete") + "  " + helpEntry("r", "reload")
}

func (m adminGaleriModel) View() string {
	var b strings.Builder
	if m.state == editAdding || m.state == editEditing {
		title := "Tambah Foto"
		if m.state == editEditing {
			title = "Edit Foto"
		}
		b.WriteString(" " + sectionHeaderStyle.Render(title) + "\n\n")
		var extra map[string]string
		if m.imageURL != "" && m.client != nil {
			extra = map[string]string{"image": metaStyle.Render("sekarang: " + m.client.ResolveImageURL(m.imageURL))}
		}
		b.WriteString(m.fields.view(m.width, m.errKey, m.errMsg, extra))
		if m.submitting {
			b.WriteString("\n  " + dimStyle.Render("mengunggah ") + renderProgressBar(m.progress, 24) + "\n")
		}
		return b.String()
	}

	if m.loading {
		b.WriteString(dimStyle.Render("  memuat galeri...") + "\n")
		return b.String()
	}
	if len(m.items) == 0 {
		if m.err != nil {
			b.WriteString(dimStyle.Render("  Galeri belum dapat dimuat.") + "\n")
		} else {
			b.WriteString(dimStyle.Render("  Belum ada foto. Tekan a untuk menambah.") + "\n")
		}
	}

	rows := m.height - 4
	start, end := visibleWindow(m.cursor, len(m.items), rows)
	titleW := m.width - 28
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

	if m.state == editDeleting && m.cursor < len(m.items) {
		b.WriteString("\n " + rejectStyle.Render(fmt.Sprintf("Hapus foto %q? (y/n)", m.items[m.cursor].Judul)) + "\n")
	}
	if m.statusMsg != "" {
		b.WriteString("\n " + goldStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}
