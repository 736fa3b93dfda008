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

// adminAgendaModel manages agenda items.
type adminAgendaModel struct {
	client     *client.Client
	flow       *admin.Agenda
	items      []domain.AgendaItem
	cursor     int
	state      editState
	editID     int64
	fields     fieldSet
	errKey     string
	errMsg     string
	submitting bool
	deleting   bool // a confirmed delete is in flight
	err        error
	loading    bool
	now        func() time.Time
	width      int
	height     int
	statusMsg  string
}

type adminAgendaLoadedMsg struct {
	items []domain.AgendaItem
	err   error
}

type agendaSavedMsg struct{ err error }
type agendaDeletedMsg struct{ err error }

func newAdminAgendaModel(c *client.Client, flow *admin.Agenda) adminAgendaModel {
	return adminAgendaModel{client: c, flow: flow, loading: true, now: time.Now}
}

func (m adminAgendaModel) Init() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		items, err := c.ListAgenda(ctx)
		return adminAgendaLoadedMsg{items: items, err: err}
	}
}

func agendaFields(f admin.AgendaForm) fieldSet {
	return newFieldSet(
		formField{key: "title", label: "Judul", value: f.Title},
		formField{key: "date", label: "Tanggal", value: f.Date, hint: "YYYY-MM-DD"},
		formField{key: "time", label: "Waktu", value: f.Time, hint: "HH:MM"},
		formField{key: "location", label: "Lokasi", value: f.Location},
		formField{key: "description", label: "Deskripsi", value: f.Description},
	)
}

func (m adminAgendaModel) form() admin.AgendaForm {
	return admin.AgendaForm{
		ID:          m.editID,
		Title:       m.fields.get("title"),
		Date:        m.fields.get("date"),
		Time:        m.fields.get("time"),
		Location:    m.fields.get("location"),
		Description: m.fields.get("description"),
	}
}

func (m adminAgendaModel) Update(msg tea.Msg) (adminAgendaModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case adminAgendaLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.items = present.SortAgendaDesc(msg.items)
		}
		m.cursor = clampCursor(m.cursor, len(m.items))
		return m, expiredCmd(msg.err)

	case agendaSavedMsg:
		if !m.submitting {
			return m, nil
		}
		m.submitting = false
		if msg.err != nil {
			if key, text, ok := fieldError(msg.err); ok {
				m.errKey, m.errMsg = key, text
				return m, nil
			}
			m.statusMsg = failureText("simpan agenda", msg.err)
			return m, expiredCmd(msg.err)
		}
		if m.state == editAdding {
			m.statusMsg = "agenda ditambahkan"
		} else {
			m.statusMsg = "agenda diperbarui"
		}
		m.state = editNone
		m.loading = true
		return m, m.Init()

	case agendaDeletedMsg:
		m.deleting = false
		m.state = editNone
		if msg.err != nil {
			m.statusMsg = failureText("hapus agenda", msg.err)
			return m, expiredCmd(msg.err)
		}
		m.statusMsg = "agenda dihapus"
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

func (m adminAgendaModel) handleKeyNormal(msg tea.KeyMsg) (adminAgendaModel, tea.Cmd) {
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
		m.state = editAdding
		m.editID = 0
		m.fields = agendaFields(admin.AgendaForm{Date: m.now().Format(domain.DateLayout)})
		m.errKey, m.errMsg = "", ""
	case "e", "enter":
		if m.cursor < len(m.items) {
			f := admin.AgendaFormFrom(m.items[m.cursor])
			m.state = editEditing
			m.editID = f.ID
			m.fields = agendaFields(f)
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

func (m adminAgendaModel) handleKeyForm(msg tea.KeyMsg) (adminAgendaModel, tea.Cmd) {
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
		flow := m.flow
		return m, func() tea.Msg {
			ctx, cancel := requestContext()
			defer cancel()
			return agendaSavedMsg{err: flow.Save(ctx, form)}
		}
	}
	key := m.fields.focused()
	if m.fields.handle(msg.String()) && key == m.errKey {
		m.errKey, m.errMsg = "", ""
	}
	return m, nil
}

func (m adminAgendaModel) handleKeyDeleting(msg tea.KeyMsg) (adminAgendaModel, tea.Cmd) {
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
			return agendaDeletedMsg{err: flow.Delete(ctx, id)}
		}
	case "n", "esc":
		m.state = editNone
	}
	return m, nil
}

func (m adminAgendaModel) helpKeys() string {
	switch m.state {
	case editAdding, editEditing:
		if m.submitting {
			return helpEntry("", "menyimpan...")
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

func (m adminAgendaModel) View() string {
	var b strings.Builder
	if m.state == editAdding || m.state == editEditing {
		title := "Tambah Agenda"
		if m.state == editEditing {
			title = "Edit Agenda"
		}
		b.WriteString(" " + sectionHeaderStyle.Render(title) + "\n\n")
		b.WriteString(m.fields.view(m.width, m.errKey, m.errMsg, nil))
		if m.submitting {
			b.WriteString("\n  " + dimStyle.Render("menyimpan...") + "\n")
		}
		return b.String()
	}

	if m.loading {
		b.WriteString(dimStyle.Render("  memuat agenda...") + "\n")
		return b.String()
	}
	if len(m.items) == 0 {
		if m.err != nil {
			b.WriteString(dimStyle.Render("  Agenda belum dapat dimuat.") + "\n")
		} else {
			b.WriteString(dimStyle.Render("  Belum ada agenda. Tekan a untuk menambah.") + "\n")
		}
	}

	now := m.now()
	rows := m.height - 4
	start, end := visibleWindow(m.cursor, len(m.items), rows)
	titleW := m.width - 44
	if titleW < 16 {
		titleW = 16
	}
	for i := start; i < end; i++ {
		item := m.items[i]
		marker := "  "
		title := normalStyle.Render(truncStr(item.Title, titleW))
		if i == m.cursor {
			marker = accentStyle.Render("▸ ")
			title = selectedStyle.Render(truncStr(item.Title, titleW))
		}
		fmt.Fprintf(&b, " %s%s  %s  %s\n", marker, title,
			dimStyle.Render(present.FormatDate(item.Date)+" "+present.FormatTime(item.Time)),
			statusBadge(item, now))
	}

	if m.state == editDeleting && m.cursor < len(m.items) {
		b.WriteString("\n " + rejectStyle.Render(fmt.Sprintf("Hapus agenda %q? (y/n)", m.items[m.cursor].Title)) + "\n")
	}
	if m.statusMsg != "" {
		b.WriteString("\n " + goldStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}
