package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/internal/session"
)

func newTestApp() App {
	a := NewApp(Deps{Version: "dev"})
	a.width = 80
	a.height = 30
	return a
}

func TestAppTabSwitching(t *testing.T) {
	tests := []struct {
		key      string
		wantView view
	}{
		{"2", viewAgenda},
		{"3", viewGaleri},
		{"4", viewAdmin},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			app := newTestApp()
			model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tc.key)})
			a := model.(App)
			if a.view != tc.wantView {
				t.Errorf("after key %q: expected view=%d, got %d", tc.key, tc.wantView, a.view)
			}
			if cmd == nil {
				t.Errorf("after key %q: expected a load or guard command", tc.key)
			}
		})
	}
}

func TestAppSameTabDoesNotReload(t *testing.T) {
	a := newTestApp()
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1")})
	if cmd != nil {
		t.Error("switching to the current tab should not reload")
	}
}

func TestAppAdminTabStartsGuardCheck(t *testing.T) {
	a := newTestApp()
	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("4")})
	a = model.(App)
	if a.admin.phase != phaseChecking {
		t.Errorf("admin tab should wait for the guard, phase=%d", a.admin.phase)
	}
	if !strings.Contains(a.View(), "memeriksa sesi") {
		t.Errorf("expected checking notice, got:\n%s", a.View())
	}
}

func TestAppGlobalQuitOnQ(t *testing.T) {
	a := newTestApp()
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command on 'q', got nil")
	}
}

func TestAppLoginFormCapturesGlobalKeys(t *testing.T) {
	a := newTestApp()
	a.view = viewAdmin
	a.admin = a.admin.showLogin()

	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	a = model.(App)
	if got := a.admin.login.get("username"); got != "q" {
		t.Errorf("q should be typed into the username, got %q", got)
	}

	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1")})
	a = model.(App)
	if a.view != viewAdmin {
		t.Error("digits should be typed, not switch tabs, while the login form is open")
	}

	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = model.(App)
	if a.view != viewWisata {
		t.Errorf("esc on the login form should return to Wisata, got view=%d", a.view)
	}
}

func TestAppHelpOverlay(t *testing.T) {
	a := newTestApp()
	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	a = model.(App)
	if !a.helpOpen {
		t.Fatal("? should open help")
	}
	if !strings.Contains(a.View(), "banjarpanepen serve") {
		t.Errorf("help overlay should list commands, got:\n%s", a.View())
	}

	// Tab keys are swallowed while help is open.
	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	a = model.(App)
	if a.view != viewWisata || !a.helpOpen {
		t.Error("help overlay should capture keys")
	}

	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = model.(App)
	if a.helpOpen {
		t.Error("esc should close help")
	}
}

func TestAppShimmerTickAdvancesFrame(t *testing.T) {
	a := newTestApp()
	model, cmd := a.Update(shimmerTickMsg{})
	a = model.(App)
	if a.frame != 1 {
		t.Errorf("frame = %d, want 1", a.frame)
	}
	if cmd == nil {
		t.Error("shimmer should schedule the next tick")
	}
}

func TestAppWindowSizePropagates(t *testing.T) {
	a := newTestApp()
	model, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	a = model.(App)
	if a.wisata.width != 120 || a.wisata.height != 35 {
		t.Errorf("wisata size = %dx%d, want 120x35", a.wisata.width, a.wisata.height)
	}
	if a.admin.width != 120 {
		t.Errorf("admin width = %d, want 120", a.admin.width)
	}
}

func TestAppAsyncResultReachesBackgroundView(t *testing.T) {
	a := newTestApp()
	model, _ := a.Update(galleryLoadedMsg{})
	a = model.(App)
	if a.galeri.loading {
		t.Error("gallery reply should be applied even when another tab is active")
	}
}

func TestAppViewRendersChrome(t *testing.T) {
	a := newTestApp()
	view := a.View()
	for _, want := range []string{"Wisata", "Agenda", "Galeri", "Admin", "wisata desa"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view, got:\n%s", want, view)
		}
	}
	if lines := strings.Count(view, "\n") + 1; lines > a.height {
		t.Errorf("view has %d lines, exceeds height %d", lines, a.height)
	}
}

func TestAppHeaderShowsAdminWhenSignedIn(t *testing.T) {
	mgr := session.NewManager(session.NewMemoryStore("tok"), stubAuth{}, nil)
	a := NewApp(Deps{Sessions: mgr, Guard: session.NewGuard(mgr, stubChecker{}, nil)})
	a.width, a.height = 80, 30
	if !strings.Contains(a.View(), "● admin") {
		t.Errorf("expected signed-in marker, got:\n%s", a.View())
	}
}
