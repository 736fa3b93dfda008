package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/internal/present"
	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/pkg/client"
	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/pkg/domain"
)

// agendaModel lists village events, newest first, with a passed/upcoming
// badge computed against the local clock.
type agendaModel struct {
	client  *client.Client
	items   []domain.AgendaItem
	cursor  int
	detail  bool
	err     error
	loading bool
	now     func() time.Time
	width   int
	height  int
}

type agendaLoadedMsg struct {
	items []domain.AgendaItem
	err   error
}

func newAgendaModel(c *client.Client) agendaModel {
	return agendaModel{client: c, loading: true, now: time.Now}
}

func (m agendaModel) Init() tea.Cmd {
	return m.load()
}

func (m agendaModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		items, err := c.ListAgenda(ctx)
		return agendaLoadedMsg{items: items, err: err}
	}
}

func (m agendaModel) Update(msg tea.Msg) (agendaModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case agendaLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.items = present.SortAgendaDesc(msg.items)
		m.cursor = clampCursor(m.cursor, len(m.items))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "enter":
			if len(m.items) > 0 {
				m.detail = !m.detail
			}
		case "esc":
			m.detail = false
		case "r":
			m.loading = true
			return m, m.load()
		}
	}
	return m, nil
}

func (m agendaModel) helpKeys() string {
	if m.detail {
		return helpEntry("j/k", "nav") + "  " + helpEntry("esc", "back")
	}
	return helpEntry("j/k", "nav") + "  " + helpEntry("enter", "detail") + "  " + helpEntry("r", "reload") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
}

func statusBadge(item domain.AgendaItem, now time.Time) string {
	if present.IsPassed(item, now) {
		return passedBadgeStyle.Render(present.StatusPassed)
	}
	return upcomingBadgeStyle.Render(present.StatusUpcoming)
}

func (m agendaModel) View() string {
	var b strings.Builder
	b.WriteString(" " + sectionHeaderStyle.Render("Agenda Desa") + "\n\n")

	if m.loading {
		b.WriteString(dimStyle.Render("  memuat agenda...") + "\n")
		return b.String()
	}
	if len(m.items) == 0 {
		if m.err != nil {
			b.WriteString(dimStyle.Render("  Agenda belum dapat dimuat.") + "\n")
			b.WriteString(metaStyle.Render("  r to retry") + "\n")
		} else {
			b.WriteString(dimStyle.Render("  Belum ada agenda.") + "\n")
		}
		return b.String()
	}

	now := m.now()
	if m.detail {
		item := m.items[m.cursor]
		width := m.width - 4
		if width > 96 {
			width = 96
		}
		b.WriteString(" " + selectedStyle.Render(item.Title) + "  " + statusBadge(item, now) + "\n\n")
		b.WriteString(" " + sectionHeaderStyle.Render("Tanggal  ") + normalStyle.Render(present.FormatDate(item.Date)) + "\n")
		b.WriteString(" " + sectionHeaderStyle.Render("Waktu    ") + normalStyle.Render(present.FormatTime(item.Time)) + "\n")
		b.WriteString(" " + sectionHeaderStyle.Render("Lokasi   ") + normalStyle.Render(item.Location) + "\n\n")
		b.WriteString(wrap(item.Description, width, " ") + "\n")
		return b.String()
	}

	rows := (m.height - 3) / 2
	start, end := visibleWindow(m.cursor, len(m.items), rows)
	titleW := m.width - 20
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
		fmt.Fprintf(&b, " %s%s  %s\n", marker, title, statusBadge(item, now))
		when := present.FormatDate(item.Date)
		if t := present.FormatTime(item.Time); t != "" {
			when += " · " + t
		}
		fmt.Fprintf(&b, "     %s  %s\n", dimStyle.Render(when), metaStyle.Render(truncStr(item.Location, titleW/2)))
	}
	return b.String()
}
