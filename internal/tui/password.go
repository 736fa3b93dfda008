package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/internal/admin"
	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/pkg/client"
)

// passwordModel is the account section: change the admin password.
type passwordModel struct {
	client     *client.Client
	fields     fieldSet
	focused    bool
	submitting bool
	errKey     string
	errMsg     string
	width      int
	height     int
	statusMsg  string
}

type passwordChangedMsg struct{ err error }

func newPasswordFields() fieldSet {
	return newFieldSet(
		formField{key: "new", label: "Password Baru", secret: true},
		formField{key: "confirm", label: "Konfirmasi", secret: true},
	)
}

func newPasswordModel(c *client.Client) passwordModel {
	return passwordModel{client: c, fields: newPasswordFields()}
}

func (m passwordModel) Init() tea.Cmd {
	return nil
}

func (m passwordModel) Update(msg tea.Msg) (passwordModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case passwordChangedMsg:
		if !m.submitting {
			return m, nil
		}
		m.submitting = false
		if msg.err != nil {
			if key, text, ok := fieldError(msg.err); ok {
				m.errKey, m.errMsg = key, text
				return m, nil
			}
			m.statusMsg = failureText("ubah password", msg.err)
			return m, expiredCmd(msg.err)
		}
		m.fields = newPasswordFields()
		m.focused = false
		m.statusMsg = "password berhasil diubah"
		return m, nil

	case tea.KeyMsg:
		if !m.focused {
			if msg.String() == "enter" || msg.String() == "e" {
				m.focused = true
				m.statusMsg = ""
			}
			return m, nil
		}
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			m.focused = false
			m.fields = newPasswordFields()
			m.errKey, m.errMsg = "", ""
		case "tab", "down", "up", "shift+tab":
			m.fields.next()
		case "enter", "ctrl+s":
			if msg.String() == "enter" && m.fields.focused() == "new" {
				m.fields.next()
				return m, nil
			}
			form := admin.PasswordForm{New: m.fields.get("new"), Confirm: m.fields.get("confirm")}
			if err := form.Validate(); err != nil {
				m.errKey, m.errMsg, _ = fieldError(err)
				m.fields.focusKey(m.errKey)
				return m, nil
			}
			m.errKey, m.errMsg = "", ""
			m.submitting = true
			c := m.client
			return m, func() tea.Msg {
				ctx, cancel := requestContext()
				defer cancel()
				return passwordChangedMsg{err: admin.ChangePassword(ctx, c, form)}
			}
		default:
			key := m.fields.focused()
			if m.fields.handle(msg.String()) && key == m.errKey {
				m.errKey, m.errMsg = "", ""
			}
		}
	}
	return m, nil
}

func (m passwordModel) helpKeys() string {
	if !m.focused {
		return helpEntry("enter", "ubah password")
	}
	return helpEntry("tab", "next") + "  " + helpEntry("enter", "save") + "  " + helpEntry("esc", "cancel")
}

func (m passwordModel) View() string {
	var b strings.Builder
	b.WriteString(" " + sectionHeaderStyle.Render("Ubah Password Admin") + "\n\n")
	if !m.focused {
		b.WriteString(dimStyle.Render("  Tekan enter untuk mengganti password.") + "\n")
	} else {
		b.WriteString(m.fields.view(m.width, m.errKey, m.errMsg, nil))
		if m.submitting {
			b.WriteString("\n  " + dimStyle.Render("menyimpan...") + "\n")
		}
	}
	if m.statusMsg != "" {
		b.WriteString("\n " + goldStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}
