package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/internal/admin"
	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/internal/session"
	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/pkg/client"
)

type adminPhase int

const (
	phaseChecking adminPhase = iota
	phaseLogin
	phaseReady
)

type adminSection int

const (
	sectionWisata adminSection = iota
	sectionKategori
	sectionAgenda
	sectionGaleri
	sectionAkun
	sectionCount
)

func (s adminSection) String() string {
	switch s {
	case sectionWisata:
		return "Wisata"
	case sectionKategori:
		return "Kategori"
	case sectionAgenda:
		return "Agenda"
	case sectionGaleri:
		return "Galeri"
	case sectionAkun:
		return "Akun"
	}
	return ""
}

// editState is the CRUD state shared by the admin sections.
type editState int

const (
	editNone editState = iota
	editAdding
	editEditing
	editDeleting
	editLoading // fetching what the edit form needs
)

// guardResultMsg carries the guard's verdict for one navigation. seq ties it
// to the navigation that asked, so stale verdicts are dropped.
type guardResultMsg struct {
	seq      int
	route    session.Route
	decision session.Decision
}

type loginResultMsg struct{ ok bool }
type logoutDoneMsg struct{}

// adminModel is the protected admin area. Every entry into a section runs
// the route guard first.
type adminModel struct {
	sessions  *session.Manager
	guard     *session.Guard
	logger    *zap.Logger
	phase     adminPhase
	section   adminSection
	seq       int
	login     fieldSet
	loginErr  string
	loggingIn bool
	wisata    adminWisataModel
	kategori  adminKategoriModel
	agenda    adminAgendaModel
	galeri    adminGaleriModel
	akun      passwordModel
	width     int
	height    int
	statusMsg string
}

func newLoginFields() fieldSet {
	return newFieldSet(
		formField{key: "username", label: "Username", hint: "admin"},
		formField{key: "password", label: "Password", secret: true},
	)
}

func newAdminModel(c *client.Client, sessions *session.Manager, guard *session.Guard, logger *zap.Logger) adminModel {
	if logger == nil {
		logger = zap.NewNop()
	}
	destinations := admin.NewDestinations(c, c, logger)
	return adminModel{
		sessions: sessions,
		guard:    guard,
		logger:   logger,
		login:    newLoginFields(),
		wisata:   newAdminWisataModel(c, destinations),
		kategori: newAdminKategoriModel(c, destinations),
		agenda:   newAdminAgendaModel(c, admin.NewAgenda(c, logger)),
		galeri:   newAdminGaleriModel(c, admin.NewGallery(c, c, logger)),
		akun:     newPasswordModel(c),
	}
}

// enter starts a guarded navigation to route.
func (m adminModel) enter(route session.Route) (adminModel, tea.Cmd) {
	m.seq++
	if route == session.RouteAdmin {
		m.phase = phaseChecking
	}
	return m, m.check(route)
}

func (m adminModel) check(route session.Route) tea.Cmd {
	g := m.guard
	seq := m.seq
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		return guardResultMsg{seq: seq, route: route, decision: g.Enter(ctx, route)}
	}
}

func (m adminModel) initSection() tea.Cmd {
	switch m.section {
	case sectionWisata:
		return m.wisata.Init()
	case sectionKategori:
		return m.kategori.Init()
	case sectionAgenda:
		return m.agenda.Init()
	case sectionGaleri:
		return m.galeri.Init()
	case sectionAkun:
		return m.akun.Init()
	}
	return nil
}

func (m adminModel) showLogin() adminModel {
	m.phase = phaseLogin
	m.login = newLoginFields()
	m.loggingIn = false
	return m
}

func (m adminModel) Update(msg tea.Msg) (adminModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		sub := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 2}
		m.wisata, _ = m.wisata.Update(sub)
		m.kategori, _ = m.kategori.Update(sub)
		m.agenda, _ = m.agenda.Update(sub)
		m.galeri, _ = m.galeri.Update(sub)
		m.akun, _ = m.akun.Update(sub)
		return m, nil

	case guardResultMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		switch msg.decision {
		case session.Proceed:
			m.phase = phaseReady
			return m, m.initSection()
		case session.RedirectLogin:
			if m.statusMsg == "" {
				m.statusMsg = "silakan login untuk mengelola konten"
			}
			return m.enter(session.RouteLogin)
		case session.StayOnLogin:
			return m.showLogin(), nil
		case session.RedirectAdminHome:
			m.section = sectionWisata
			return m.enter(session.RouteAdmin)
		}
		return m, nil

	case loginResultMsg:
		m.loggingIn = false
		if !msg.ok {
			m.loginErr = "Login gagal! Username atau password salah."
			m.login.set("password", "")
			m.login.focusKey("password")
			return m, nil
		}
		m.loginErr = ""
		m.statusMsg = ""
		m.section = sectionWisata
		return m.enter(session.RouteAdmin)

	case logoutDoneMsg:
		m.statusMsg = "anda telah logout"
		return m.showLogin(), nil

	case sessionExpiredMsg:
		m.sessions.Invalidate()
		m.statusMsg = "sesi berakhir, silakan login kembali"
		return m.showLogin(), nil

	case tea.KeyMsg:
		switch m.phase {
		case phaseChecking:
			return m, nil
		case phaseLogin:
			return m.updateLogin(msg)
		}
		if !m.sectionEditing() {
			switch msg.String() {
			case "tab":
				m.section = (m.section + 1) % sectionCount
				m.statusMsg = ""
				return m.enter(session.RouteAdmin)
			case "shift+tab":
				m.section = (m.section - 1 + sectionCount) % sectionCount
				m.statusMsg = ""
				return m.enter(session.RouteAdmin)
			case "p":
				m.section = sectionAkun
				m.statusMsg = ""
				return m.enter(session.RouteAdmin)
			case "L":
				sessions := m.sessions
				return m, func() tea.Msg {
					ctx, cancel := requestContext()
					defer cancel()
					sessions.Logout(ctx)
					return logoutDoneMsg{}
				}
			}
		}
	}

	// Everything else belongs to the sections. Async results go to all of
	// them so a reply is not lost when the section changed meanwhile.
	var cmd tea.Cmd
	if _, ok := msg.(tea.KeyMsg); ok {
		switch m.section {
		case sectionWisata:
			m.wisata, cmd = m.wisata.Update(msg)
		case sectionKategori:
			m.kategori, cmd = m.kategori.Update(msg)
		case sectionAgenda:
			m.agenda, cmd = m.agenda.Update(msg)
		case sectionGaleri:
			m.galeri, cmd = m.galeri.Update(msg)
		case sectionAkun:
			m.akun, cmd = m.akun.Update(msg)
		}
		return m, cmd
	}
	var cmds [5]tea.Cmd
	m.wisata, cmds[0] = m.wisata.Update(msg)
	m.kategori, cmds[1] = m.kategori.Update(msg)
	m.agenda, cmds[2] = m.agenda.Update(msg)
	m.galeri, cmds[3] = m.galeri.Update(msg)
	m.akun, cmds[4] = m.akun.Update(msg)
	return m, tea.Batch(cmds[:]...)
}

func (m adminModel) updateLogin(msg tea.KeyMsg) (adminModel, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.login.next()
	case "shift+tab", "up":
		m.login.prev()
	case "enter":
		if m.loggingIn {
			return m, nil
		}
		if m.login.focused() == "username" {
			m.login.next()
			return m, nil
		}
		username := strings.TrimSpace(m.login.get("username"))
		password := m.login.get("password")
		if username == "" || password == "" {
			m.loginErr = "Username dan password wajib diisi"
			return m, nil
		}
		m.loggingIn = true
		m.loginErr = ""
		sessions := m.sessions
		return m, func() tea.Msg {
			ctx, cancel := requestContext()
			defer cancel()
			return loginResultMsg{ok: sessions.Login(ctx, username, password)}
		}
	default:
		if !m.loggingIn {
			m.login.handle(msg.String())
		}
	}
	return m, nil
}

// sectionEditing reports whether the active section has a form or prompt
// open.
func (m adminModel) sectionEditing() bool {
	switch m.section {
	case sectionWisata:
		return m.wisata.state != editNone
	case sectionKategori:
		return m.kategori.state != editNone
	case sectionAgenda:
		return m.agenda.state != editNone
	case sectionGaleri:
		return m.galeri.state != editNone
	case sectionAkun:
		return m.akun.focused
	}
	return false
}

// isEditing reports whether keys should go to a text input rather than the
// global shortcuts.
func (m adminModel) isEditing() bool {
	if m.phase == phaseLogin {
		return true
	}
	if m.phase != phaseReady {
		return false
	}
	return m.sectionEditing() && m.currentState() != editDeleting
}

func (m adminModel) currentState() editState {
	switch m.section {
	case sectionWisata:
		return m.wisata.state
	case sectionKategori:
		return m.kategori.state
	case sectionAgenda:
		return m.agenda.state
	case sectionGaleri:
		return m.galeri.state
	}
	return editNone
}

func (m adminModel) helpKeys() string {
	switch m.phase {
	case phaseChecking:
		return helpEntry("q", "quit")
	case phaseLogin:
		return helpEntry("tab", "next") + "  " + helpEntry("enter", "login") + "  " + helpEntry("esc", "back")
	}
	var keys string
	switch m.section {
	case sectionWisata:
		keys = m.wisata.helpKeys()
	case sectionKategori:
		keys = m.kategori.helpKeys()
	case sectionAgenda:
		keys = m.agenda.helpKeys()
	case sectionGaleri:
		keys = m.galeri.helpKeys()
	case sectionAkun:
		keys = m.akun.helpKeys()
	}
	if !m.sectionEditing() {
		keys += "  " + helpEntry("tab", "section") + "  " + helpEntry("p", "password") + "  " + helpEntry("L", "logout")
	}
	return keys
}

func (m adminModel) View() string {
	switch m.phase {
	case phaseChecking:
		return "\n" + dimStyle.Render("  memeriksa sesi admin...") + "\n"
	case phaseLogin:
		return m.viewLogin()
	}

	var b strings.Builder
	b.WriteString(" ")
	for s := adminSection(0); s < sectionCount; s++ {
		if s > 0 {
			b.WriteString(metaStyle.Render("  "))
		}
		if s == m.section {
			b.WriteString(selectedStyle.Underline(true).Render(s.String()))
		} else {
			b.WriteString(dimStyle.Render(s.String()))
		}
	}
	if m.statusMsg != "" {
		b.WriteString("   " + goldStyle.Render(m.statusMsg))
	}
	b.WriteString("\n\n")

	switch m.section {
	case sectionWisata:
		b.WriteString(m.wisata.View())
	case sectionKategori:
		b.WriteString(m.kategori.View())
	case sectionAgenda:
		b.WriteString(m.agenda.View())
	case sectionGaleri:
		b.WriteString(m.galeri.View())
	case sectionAkun:
		b.WriteString(m.akun.View())
	}
	return b.String()
}

func (m adminModel) viewLogin() string {
	var b strings.Builder
	b.WriteString("\n " + sectionHeaderStyle.Render("Login Admin") + "\n\n")
	b.WriteString(m.login.view(m.width, "", "", nil))
	b.WriteString("\n")
	switch {
	case m.loggingIn:
		b.WriteString(dimStyle.Render("  masuk...") + "\n")
	case m.loginErr != "":
		b.WriteString("  " + rejectStyle.Render(m.loginErr) + "\n")
	case m.statusMsg != "":
		b.WriteString("  " + goldStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}
