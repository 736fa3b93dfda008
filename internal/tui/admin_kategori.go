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

// adminKategoriModel adds and removes destination categories.
type adminKategoriModel struct {
	client     *client.Client
	flow       *admin.Destinations
	categories []string
	cursor     int
	state      editState
	input      string
	errMsg     string
	submitting bool
	deleting   bool // a confirmed delete is in flight
	err        error
	loading    bool
	width      int
	height     int
	statusMsg  string
}

type categoriesLoadedMsg struct {
	categories []string
	err        error
}

type categoryAddedMsg struct {
	name string
	err  error
}

type categoryDeletedMsg struct {
	name string
	err  error
}

func newAdminKategoriModel(c *client.Client, flow *admin.Destinations) adminKategoriModel {
	return adminKategoriModel{client: c, flow: flow, loading: true}
}

func (m adminKategoriModel) Init() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		cats, err := c.ListCategories(ctx)
		return categoriesLoadedMsg{categories: cats, err: err}
	}
}

func (m adminKategoriModel) Update(msg tea.Msg) (adminKategoriModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case categoriesLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			// Drop the "semua" pseudo-category; it cannot be managed.
			m.categories = present.CategoryOptions(msg.categories)[1:]
		}
		m.cursor = clampCursor(m.cursor, len(m.categories))
		return m, expiredCmd(msg.err)

	case categoryAddedMsg:
		if !m.submitting {
			return m, nil
		}
		m.submitting = false
		if msg.err != nil {
			if _, text, ok := fieldError(msg.err); ok {
				m.errMsg = text
				return m, nil
			}
			m.errMsg = failureText("tambah kategori", msg.err)
			return m, expiredCmd(msg.err)
		}
		m.state = editNone
		m.input = ""
		m.statusMsg = fmt.Sprintf("kategori %q ditambahkan", msg.name)
		m.loading = true
		return m, m.Init()

	case categoryDeletedMsg:
		m.deleting = false
		m.state = editNone
		if msg.err != nil {
			m.statusMsg = failureText("hapus kategori", msg.err)
			return m, expiredCmd(msg.err)
		}
		m.statusMsg = fmt.Sprintf("kategori %q dihapus", msg.name)
		m.loading = true
		return m, m.Init()

	case tea.KeyMsg:
		switch m.state {
		case editAdding:
			return m.handleKeyAdding(msg)
		case editDeleting:
			return m.handleKeyDeleting(msg)
		}
		return m.handleKeyNormal(msg)
	}
	return m, nil
}

func (m adminKategoriModel) handleKeyNormal(msg tea.KeyMsg) (adminKategoriModel, tea.Cmd) {
	m.statusMsg = ""
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.categories)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "a":
		m.state = editAdding
		m.input = ""
		m.errMsg = ""
	case "d":
		if m.cursor < len(m.categories) {
			m.state = editDeleting
		}
	case "r":
		m.loading = true
		return m, m.Init()
	}
	return m, nil
}

func (m adminKategoriModel) handleKeyAdding(msg tea.KeyMsg) (adminKategoriModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.state = editNone
		m.input = ""
		m.errMsg = ""
	case "enter", "ctrl+s":
		name := m.input
		flow := m.flow
		m.submitting = true
		m.errMsg = ""
		return m, func() tea.Msg {
			ctx, cancel := requestContext()
			defer cancel()
			return categoryAddedMsg{name: domain.NormalizeCategory(name), err: flow.AddCategory(ctx, name)}
		}
	default:
		m.input = editRune(m.input, msg.String())
	}
	return m, nil
}

func (m adminKategoriModel) handleKeyDeleting(msg tea.KeyMsg) (adminKategoriModel, tea.Cmd) {
	if m.deleting {
		return m, nil
	}
	switch msg.String() {
	case "y":
		if m.cursor >= len(m.categories) {
			m.state = editNone
			return m, nil
		}
		name := m.categories[m.cursor]
		flow := m.flow
		m.deleting = true
		return m, func() tea.Msg {
			ctx, cancel := requestContext()
			defer cancel()
			return categoryDeletedMsg{name: name, err: flow.DeleteCategory(ctx, name)}
		}
	case "n", "esc":
		m.state = editNone
	}
	return m, nil
}

func (m adminKategoriModel) helpKeys() string {
	switch m.state {
	case editAdding:
		return helpEntry("enter", "save") + "  " + helpEntry("esc", "cancel")
	case editDeleting:
		if m.deleting {
			return helpEntry("", "menghapus...")
		}
		return helpEntry("y", "confirm") + "  " + helpEntry("n", "cancel")
	}
	return helpEntry("j/k", "nav") + "  " + helpEntry("a", "add") + "  " + helpEntry("d", "delete") + "  " + helpEntry("r", "reload")
}

func (m adminKategoriModel) View() string {
	var b strings.Builder
	if m.loading {
		b.WriteString(dimStyle.Render("  memuat kategori...") + "\n")
		return b.String()
	}
	if len(m.categories) == 0 {
		if m.err != nil {
			b.WriteString(dimStyle.Render("  Kategori belum dapat dimuat.") + "\n")
		} else {
			b.WriteString(dimStyle.Render("  Belum ada kategori.") + "\n")
		}
	}
	for i, c := range m.categories {
		marker := "  "
		if i == m.cursor {
			marker = accentStyle.Render("▸ ")
		}
		b.WriteString(" " + marker + CategoryStyle(c).Render(present.CategoryLabel(c)) + " " + metaStyle.Render(c) + "\n")
	}

	switch m.state {
	case editAdding:
		cursor := accentStyle.Render("_")
		b.WriteString("\n " + inputPromptStyle.Render("Kategori baru: ") + selectedStyle.Render(m.input) + cursor + "\n")
		if m.submitting {
			b.WriteString("  " + dimStyle.Render("menyimpan...") + "\n")
		} else if m.errMsg != "" {
			b.WriteString("  " + rejectStyle.Render(m.errMsg) + "\n")
		}
	case editDeleting:
		if m.cursor < len(m.categories) {
			b.WriteString("\n " + rejectStyle.Render(fmt.Sprintf("Hapus kategori %q? (y/n)", m.categories[m.cursor])) + "\n")
			b.WriteString("  " + metaStyle.Render("destinasi dengan kategori ini tetap menyimpan namanya") + "\n")
		}
	}
	if m.statusMsg != "" {
		b.WriteString("\n " + goldStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}
