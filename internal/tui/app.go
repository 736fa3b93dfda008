package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/internal/session"
	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/pkg/client"
)

type view int

const (
	viewWisata view = iota
	viewAgenda
	viewGaleri
	viewAdmin
)

// Deps are the collaborators the TUI runs against.
type Deps struct {
	// Public reads the catalog without credentials.
	Public *client.Client
	// Admin sends the session token with every request.
	Admin    *client.Client
	Sessions *session.Manager
	Guard    *session.Guard
	Logger   *zap.Logger
	Version  string
}

// App is the root Bubbletea model.
type App struct {
	sessions *session.Manager
	version  string
	view     view
	wisata   wisataModel
	agenda   agendaModel
	galeri   galeriModel
	admin    adminModel
	helpOpen bool
	width    int
	height   int
	frame    int // logo shimmer animation frame
}

// NewApp creates a new TUI application.
func NewApp(d Deps) App {
	return App{
		sessions: d.Sessions,
		version:  d.Version,
		wisata:   newWisataModel(d.Public),
		agenda:   newAgendaModel(d.Public),
		galeri:   newGaleriModel(d.Public),
		admin:    newAdminModel(d.Admin, d.Sessions, d.Guard, d.Logger),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.wisata.Init(), shimmerTickCmd())
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + spacer(1) + help(1) = 5 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 5}
		a.wisata, _ = a.wisata.Update(bodyMsg)
		a.agenda, _ = a.agenda.Update(bodyMsg)
		a.galeri, _ = a.galeri.Update(bodyMsg)
		a.admin, _ = a.admin.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case tea.KeyMsg:
		// Help overlay captures all keys when open
		if a.helpOpen {
			switch msg.String() {
			case "h", "esc":
				a.helpOpen = false
			case "q", "ctrl+c":
				return a, tea.Quit
			}
			return a, nil
		}

		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Leaving the login form is the only way out while it has focus.
		if a.view == viewAdmin && a.admin.phase == phaseLogin && msg.String() == "esc" {
			a.view = viewWisata
			return a, a.wisata.Init()
		}

		// Global keys (only when not editing)
		if !a.isEditing() {
			switch msg.String() {
			case "h", "?":
				a.helpOpen = true
				return a, nil
			case "q":
				return a, tea.Quit
			case "1":
				return a.switchTo(viewWisata)
			case "2":
				return a.switchTo(viewAgenda)
			case "3":
				return a.switchTo(viewGaleri)
			case "4":
				// Admin is re-checked even when already there.
				a.view = viewAdmin
				var cmd tea.Cmd
				a.admin, cmd = a.admin.enter(session.RouteAdmin)
				return a, cmd
			}
		}

		var cmd tea.Cmd
		switch a.view {
		case viewWisata:
			a.wisata, cmd = a.wisata.Update(msg)
		case viewAgenda:
			a.agenda, cmd = a.agenda.Update(msg)
		case viewGaleri:
			a.galeri, cmd = a.galeri.Update(msg)
		case viewAdmin:
			a.admin, cmd = a.admin.Update(msg)
		}
		return a, cmd
	}

	// Async results go to every view; each ignores what it does not own.
	var cmds [4]tea.Cmd
	a.wisata, cmds[0] = a.wisata.Update(msg)
	a.agenda, cmds[1] = a.agenda.Update(msg)
	a.galeri, cmds[2] = a.galeri.Update(msg)
	a.admin, cmds[3] = a.admin.Update(msg)
	return a, tea.Batch(cmds[:]...)
}

func (a App) switchTo(v view) (App, tea.Cmd) {
	if a.view == v {
		return a, nil
	}
	a.view = v
	switch v {
	case viewWisata:
		a.wisata.loading = true
		return a, a.wisata.Init()
	case viewAgenda:
		a.agenda.loading = true
		return a, a.agenda.Init()
	case viewGaleri:
		a.galeri.loading = true
		return a, a.galeri.Init()
	}
	return a, nil
}

func (a App) isEditing() bool {
	if a.view == viewAdmin {
		return a.admin.isEditing()
	}
	return false
}

func (a App) View() string {
	// Header: centered shimmer logo
	logo := renderShimmerLogo(a.frame)
	logoPad := (a.width - lipgloss.Width(logo)) / 2
	if logoPad < 0 {
		logoPad = 0
	}
	header := strings.Repeat(" ", logoPad) + logo

	status := metaStyle.Render("wisata desa")
	if a.sessions != nil && a.sessions.IsAuthenticated() {
		status = statusOKStyle.Render("● admin")
	}
	statusPad := (a.width - lipgloss.Width(status)) / 2
	if statusPad < 0 {
		statusPad = 0
	}
	header += "\n" + strings.Repeat(" ", statusPad) + status

	// Tab bar: 1 Wisata  2 Agenda  3 Galeri  4 Admin
	type tabEntry struct {
		key  string
		name string
		v    view
	}
	tabs := []tabEntry{
		{"1", "Wisata", viewWisata},
		{"2", "Agenda", viewAgenda},
		{"3", "Galeri", viewGaleri},
		{"4", "Admin", viewAdmin},
	}

	// Tab bar: equal-width columns spread across the terminal
	colWidth := a.width / len(tabs)
	var tabBar strings.Builder
	for _, t := range tabs {
		var label string
		if t.v == a.view {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		labelWidth := lipgloss.Width(label)
		leftPad := (colWidth - labelWidth) / 2
		if leftPad < 0 {
			leftPad = 0
		}
		rightPad := colWidth - labelWidth - leftPad
		if rightPad < 0 {
			rightPad = 0
		}
		tabBar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}

	var body, help string
	switch a.view {
	case viewWisata:
		body = a.wisata.View()
		help = " " + helpEntry("1-4", "tabs") + "  " + a.wisata.helpKeys()
	case viewAgenda:
		body = a.agenda.View()
		help = " " + helpEntry("1-4", "tabs") + "  " + a.agenda.helpKeys()
	case viewGaleri:
		body = a.galeri.View()
		help = " " + helpEntry("1-4", "tabs") + "  " + a.galeri.helpKeys()
	case viewAdmin:
		body = a.admin.View()
		if a.isEditing() {
			help = " " + a.admin.helpKeys()
		} else {
			help = " " + helpEntry("1-4", "tabs") + "  " + a.admin.helpKeys()
		}
	}

	if a.helpOpen {
		body = helpView(a.version)
		help = " " + helpEntry("esc", "close")
	}

	// Chrome budget: header(2) + tabs(1) + spacer(1) + help(1) = 5 lines + body
	chrome := 5
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n\n%s", header, tabBar.String(), body, help)
}
