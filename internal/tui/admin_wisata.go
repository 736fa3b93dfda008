package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/internal/admin"
	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/internal/present"
	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/pkg/client"
	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/pkg/domain"
)

// adminWisataModel manages destinations and their articles.
type adminWisataModel struct {
	client     *client.Client
	flow       *admin.Destinations
	list       []domain.Destination
	categories []string
	cursor     int
	state      editState
	form       admin.DestinationForm
	fields     fieldSet
	errKey     string
	errMsg     string
	submitting bool
	deleting   bool // a confirmed delete is in flight
	progress   float64
	progressCh chan float64
	err        error
	loading    bool
	width      int
	height     int
	statusMsg  string
}

type adminDestinationsLoadedMsg struct {
	list       []domain.Destination
	categories []string
	catErr     error
	err        error
}

type destinationFormLoadedMsg struct {
	id   int64
	form admin.DestinationForm
	err  error
}

type destinationSavedMsg struct {
	id  int64
	err error
}

type destinationDeletedMsg struct {
	id  int64
	err error
}

func newAdminWisataModel(c *client.Client, flow *admin.Destinations) adminWisataModel {
	return adminWisataModel{client: c, flow: flow, loading: true}
}

func (m adminWisataModel) Init() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		list, err := c.ListDestinations(ctx)
		if err != nil {
			return adminDestinationsLoadedMsg{err: err}
		}
		cats, catErr := c.ListCategories(ctx)
		return adminDestinationsLoadedMsg{list: list, categories: cats, catErr: catErr}
	}
}

// categoryChoices lists the categories a destination can be tagged with.
// The current value stays selectable even if it was deleted meanwhile.
func (m adminWisataModel) categoryChoices(current string) []string {
	opts := present.CategoryOptions(m.categories)[1:]
	current = domain.NormalizeCategory(current)
	if current == "" {
		return opts
	}
	for _, o := range opts {
		if o == current {
			return opts
		}
	}
	return append([]string{current}, opts...)
}

func (m adminWisataModel) fieldsFor(form admin.DestinationForm) fieldSet {
	choices := m.categoryChoices(form.Kategori)
	kategori := domain.NormalizeCategory(form.Kategori)
	if kategori == "" && len(choices) > 0 {
		kategori = choices[0]
	}
	return newFieldSet(
		formField{key: "title", label: "Nama Wisata", value: form.Title},
		formField{key: "description", label: "Deskripsi", value: form.Description},
		formField{key: "kategori", label: "Kategori", value: kategori, choices: choices, hint: "nama kategori"},
		formField{key: "price", label: "Harga", value: form.PriceDisplay, hint: "kosong = Gratis"},
		formField{key: "rating", label: "Rating", value: form.RatingInput, hint: "0 - 5"},
		formField{key: "image", label: "Gambar", value: form.ImagePath, hint: "path ke .jpg/.png/.webp"},
		formField{key: "konten", label: "Artikel (HTML)", value: form.Article.Konten, hint: "<p>...</p>"},
		formField{key: "jam", label: "Jam Operasional", value: form.Article.JamOperasional, hint: "08.00 - 17.00"},
		formField{key: "lokasi", label: "Lokasi", value: form.Article.Lokasi},
		formField{key: "peta", label: "Peta Lokasi", value: form.Article.PetaLokasi, hint: "https://maps.google.com/..."},
	)
}

// syncForm copies the field values into the form. Price and rating are
// parsed as they are typed.
func (m *adminWisataModel) syncForm(changed string) {
	f := &m.form
	f.Title = m.fields.get("title")
	f.Description = m.fields.get("description")
	f.Kategori = m.fields.get("kategori")
	f.ImagePath = strings.TrimSpace(m.fields.get("image"))
	f.Article.Konten = m.fields.get("konten")
	f.Article.JamOperasional = m.fields.get("jam")
	f.Article.Lokasi = m.fields.get("lokasi")
	f.Article.PetaLokasi = m.fields.get("peta")
	switch changed {
	case "price":
		f.SetPriceInput(m.fields.get("price"))
		m.fields.set("price", f.PriceDisplay)
	case "rating":
		f.SetRatingInput(m.fields.get("rating"))
	}
}

func (m adminWisataModel) selected() (domain.Destination, bool) {
	if m.cursor < 0 || m.cursor >= len(m.list) {
		return domain.Destination{}, false
	}
	return m.list[m.cursor], true
}

func (m adminWisataModel) Update(msg tea.Msg) (adminWisataModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case adminDestinationsLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.cursor = clampCursor(m.cursor, len(m.list))
			return m, expiredCmd(msg.err)
		}
		m.list = msg.list
		m.cursor = clampCursor(m.cursor, len(m.list))
		if msg.catErr != nil {
			m.statusMsg = failureText("memuat kategori", msg.catErr)
			return m, expiredCmd(msg.catErr)
		}
		m.categories = msg.categories
		return m, nil

	case destinationFormLoadedMsg:
		if m.state != editLoading {
			return m, nil
		}
		if msg.err != nil {
			m.state = editNone
			m.statusMsg = failureText("memuat artikel", msg.err)
			return m, expiredCmd(msg.err)
		}
		m.state = editEditing
		m.form = msg.form
		m.fields = m.fieldsFor(msg.form)
		m.syncForm("")
		m.errKey, m.errMsg = "", ""
		return m, nil

	case uploadProgressMsg:
		if msg.ch != m.progressCh {
			return m, nil
		}
		m.progress = msg.fraction
		return m, waitForProgress(m.progressCh)

	case destinationSavedMsg:
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
			if msg.id != 0 && m.form.ID == 0 {
				// The destination exists now; a retry must update it.
				m.form.ID = msg.id
				m.form.HasArticle = false
			}
			m.statusMsg = failureText("simpan destinasi", msg.err)
			return m, expiredCmd(msg.err)
		}
		if m.state == editAdding {
			m.statusMsg = "destinasi ditambahkan"
		} else {
			m.statusMsg = "destinasi diperbarui"
		}
		m.state = editNone
		m.loading = true
		return m, m.Init()

	case destinationDeletedMsg:
		m.deleting = false
		m.state = editNone
		if msg.err != nil {
			m.statusMsg = failureText("hapus destinasi", msg.err)
			return m, expiredCmd(msg.err)
		}
		m.statusMsg = "destinasi dihapus"
		m.loading = true
		return m, m.Init()

	case tea.KeyMsg:
		switch m.state {
		case editAdding, editEditing:
			return m.handleKeyForm(msg)
		case editDeleting:
			return m.handleKeyDeleting(msg)
		case editLoading:
			if msg.String() == "esc" {
				m.state = editNone
			}
			return m, nil
		}
		return m.handleKeyNormal(msg)
	}
	return m, nil
}

func (m adminWisataModel) handleKeyNormal(msg tea.KeyMsg) (adminWisataModel, tea.Cmd) {
	m.statusMsg = ""
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.list)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "a":
		m.state = editAdding
		m.form = admin.DestinationForm{}
		m.fields = m.fieldsFor(m.form)
		m.syncForm("")
		m.errKey, m.errMsg = "", ""
	case "e", "enter":
		d, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.state = editLoading
		flow := m.flow
		return m, func() tea.Msg {
			ctx, cancel := requestContext()
			defer cancel()
			form, err := flow.Edit(ctx, d)
			return destinationFormLoadedMsg{id: int64(d.ID), form: form, err: err}
		}
	case "d":
		if _, ok := m.selected(); ok {
			m.state = editDeleting
		}
	case "r":
		m.loading = true
		return m, m.Init()
	}
	return m, nil
}

func (m adminWisataModel) handleKeyForm(msg tea.KeyMsg) (adminWisataModel, tea.Cmd) {
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
		return m.submit()
	}
	key := m.fields.focused()
	if m.fields.handle(msg.String()) {
		m.syncForm(key)
		if key == m.errKey {
			m.errKey, m.errMsg = "", ""
		}
	}
	return m, nil
}

func (m adminWisataModel) submit() (adminWisataModel, tea.Cmd) {
	if !m.form.CanSubmit() {
		return m, nil
	}
	if err := m.form.Validate(); err != nil {
		m.errKey, m.errMsg, _ = fieldError(err)
		if m.errKey == "" {
			m.errMsg = err.Error()
		}
		m.fields.focusKey(m.errKey)
		return m, nil
	}
	m.errKey, m.errMsg = "", ""
	m.submitting = true
	m.progress = 0
	ch, progress := newProgress()
	m.progressCh = ch
	form := m.form
	flow := m.flow
	save := func() tea.Msg {
		defer close(ch)
		ctx, cancel := uploadContext()
		defer cancel()
		id, err := flow.Save(ctx, form, progress)
		return destinationSavedMsg{id: id, err: err}
	}
	return m, tea.Batch(save, waitForProgress(ch))
}

func (m adminWisataModel) handleKeyDeleting(msg tea.KeyMsg) (adminWisataModel, tea.Cmd) {
	if m.deleting {
		return m, nil
	}
	switch msg.String() {
	case "y":
		d, ok := m.selected()
		if !ok {
			m.state = editNone
			return m, nil
		}
		id := int64(d.ID)
		flow := m.flow
		m.deleting = true
		return m, func() tea.Msg {
			ctx, cancel := requestContext()
			defer cancel()
			return destinationDeletedMsg{id: id, err: flow.Delete(ctx, id)}
		}
	case "n", "esc":
		m.state = editNone
	}
	return m, nil
}

func (m adminWisataModel) helpKeys() string {
	switch m.state {
	case editAdding, editEditing:
		if m.submitting {
			return helpEntry("", "menyimpan...")
		}
		return helpEntry("tab", "next") + "  " + helpEntry("←/→", "kategori") + "  " + helpEntry("ctrl+s", "save") + "  " + helpEntry("esc", "cancel")
	case editDeleting:
		if m.deleting {
			return helpEntry("", "menghapus...")
		}
		return helpEntry("y", "confirm") + "  " + helpEntry("n", "cancel")
	case editLoading:
		return helpEntry("esc", "cancel")
	}
	return helpEntry("j/k", "nav") + "  " + helpEntry("a", "add") + "  " + helpEntry("e", "edit") + "  " + helpEntry("d", "delete") + "  " + helpEntry("r", "reload")
}

func (m adminWisataModel) View() string {
	switch m.state {
	case editAdding, editEditing:
		return m.viewForm()
	case editLoading:
		return dimStyle.Render("  memuat artikel...") + "\n"
	}

	var b strings.Builder
	if m.loading {
		b.WriteString(dimStyle.Render("  memuat destinasi...") + "\n")
		return b.String()
	}
	if len(m.list) == 0 {
		if m.err != nil {
			b.WriteString(dimStyle.Render("  Destinasi belum dapat dimuat.") + "\n")
		} else {
			b.WriteString(dimStyle.Render("  Belum ada destinasi. Tekan a untuk menambah.") + "\n")
		}
	}

	rows := m.height - 4
	start, end := visibleWindow(m.cursor, len(m.list), rows)
	titleW := m.width - 40
	if titleW < 16 {
		titleW = 16
	}
	for i := start; i < end; i++ {
		d := m.list[i]
		marker := "  "
		title := normalStyle.Render(truncStr(d.Title, titleW))
		if i == m.cursor {
			marker = accentStyle.Render("▸ ")
			title = selectedStyle.Render(truncStr(d.Title, titleW))
		}
		r, ok := d.RatingValue()
		fmt.Fprintf(&b, " %s%s  %s  %s  %s\n", marker, title,
			CategoryStyle(domain.NormalizeCategory(d.Kategori)).Render(present.CategoryLabel(d.Kategori)),
			priceStyle.Render(present.PriceLabel(int64(d.Price))),
			goldStyle.Render(present.FormatRating(r, ok)))
	}

	if m.state == editDeleting {
		if d, ok := m.selected(); ok {
			b.WriteString("\n " + rejectStyle.Render(fmt.Sprintf("Hapus %q beserta artikelnya? (y/n)", d.Title)) + "\n")
		}
	}
	if m.statusMsg != "" {
		b.WriteString("\n " + goldStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}

func (m adminWisataModel) viewForm() string {
	var b strings.Builder
	title := "Tambah Destinasi"
	if m.state == editEditing {
		title = "Edit Destinasi"
	}
	b.WriteString(" " + sectionHeaderStyle.Render(title) + "\n\n")

	extra := map[string]string{}
	if m.form.RatingErr != "" {
		extra["rating"] = rejectStyle.Render(m.form.RatingErr)
	}
	if m.form.ImageURL != "" && m.client != nil {
		extra["image"] = metaStyle.Render("sekarang: " + m.client.ResolveImageURL(m.form.ImageURL))
	}
	b.WriteString(m.fields.view(m.width, m.errKey, m.errMsg, extra))
	b.WriteString("\n")

	switch {
	case m.submitting:
		b.WriteString("  " + dimStyle.Render("menyimpan ") + renderProgressBar(m.progress, 24) + "\n")
	case m.errKey == "" && m.errMsg != "":
		b.WriteString("  " + rejectStyle.Render(m.errMsg) + "\n")
	case !m.form.CanSubmit():
		b.WriteString("  " + metaStyle.Render("perbaiki rating sebelum menyimpan") + "\n")
	case m.statusMsg != "":
		b.WriteString("  " + goldStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}
