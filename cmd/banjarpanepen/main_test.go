package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/internal/config"
	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/internal/session"
)

func TestReadCredentials(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		user     string
		password string
	}{
		{"newline terminated", "admin\nrahasia\n", "admin", "rahasia"},
		{"crlf", "admin\r\nrahasia\r\n", "admin", "rahasia"},
		{"no trailing newline", "admin\nrahasia", "admin", "rahasia"},
		{"username is trimmed", "  admin  \npass word\n", "admin", "pass word"},
		{"empty input", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			user, pass, err := readCredentials(strings.NewReader(tt.input), &out)
			if err != nil {
				t.Fatalf("readCredentials() error: %v", err)
			}
			if user != tt.user || pass != tt.password {
				t.Errorf("readCredentials() = (%q, %q), want (%q, %q)", user, pass, tt.user, tt.password)
			}
			if !strings.Contains(out.String(), "Password: ") {
				t.Errorf("expected prompts, got %q", out.String())
			}
		})
	}
}

func TestRunUnknownCommand(t *testing.T) {
	if err := run([]string{"frobnicate"}); err == nil {
		t.Fatal("expected error for unknown command")
	}
}

func TestRunVersionAndHelp(t *testing.T) {
	for _, arg := range []string{"version", "--version", "help", "-h"} {
		if err := run([]string{arg}); err != nil {
			t.Errorf("run(%q) error: %v", arg, err)
		}
	}
}

// fakeAPI serves the auth endpoints of the village API.
func fakeAPI(t *testing.T, validToken string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/login.php", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if body["username"] != "admin" || body["password"] != "desa123" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Invalid credentials"}`)) //nolint:errcheck
			return
		}
		w.Write([]byte(`{"token":"` + validToken + `"}`)) //nolint:errcheck
	})
	mux.HandleFunc("/logout.php", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status":"success"}`)) //nolint:errcheck
	})
	mux.HandleFunc("/check_token.php", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+validToken {
			w.Write([]byte(`{"status":"error","message":"invalid token"}`)) //nolint:errcheck
			return
		}
		w.Write([]byte(`{"status":"success"}`)) //nolint:errcheck
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, apiBase string, env map[string]string) *config.Config {
	t.Helper()
	vars := map[string]string{
		"BANJARPANEPEN_API_BASE":   apiBase,
		"BANJARPANEPEN_TOKEN_FILE": filepath.Join(t.TempDir(), "token"),
	}
	for k, v := range env {
		vars[k] = v
	}
	cfg, err := config.FromEnv(func(k string) string { return vars[k] })
	if err != nil {
		t.Fatalf("config.FromEnv() error: %v", err)
	}
	return cfg
}

func TestLoginPersistsToken(t *testing.T) {
	srv := fakeAPI(t, "tok-123")
	cfg := testConfig(t, srv.URL, nil)
	d := wire(cfg, zap.NewNop())

	if err := runLogin(d, strings.NewReader("admin\ndesa123\n")); err != nil {
		t.Fatalf("runLogin() error: %v", err)
	}
	data, err := os.ReadFile(cfg.TokenPath)
	if err != nil {
		t.Fatalf("token file not written: %v", err)
	}
	if string(data) != "tok-123" {
		t.Errorf("token file = %q, want %q", data, "tok-123")
	}

	// A fresh process picks the token up and the guard accepts it.
	d = wire(cfg, zap.NewNop())
	if got := d.guard.Enter(context.Background(), session.RouteAdmin); got != session.Proceed {
		t.Errorf("guard decision = %v, want Proceed", got)
	}
}

func TestLoginRejected(t *testing.T) {
	srv := fakeAPI(t, "tok-123")
	cfg := testConfig(t, srv.URL, nil)
	d := wire(cfg, zap.NewNop())

	err := runLogin(d, strings.NewReader("admin\nsalah\n"))
	if !errors.Is(err, errLoginFailed) {
		t.Fatalf("runLogin() error = %v, want errLoginFailed", err)
	}
	if _, err := os.Stat(cfg.TokenPath); !os.IsNotExist(err) {
		t.Error("token file should not exist after a failed login")
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1", nil)
	d := wire(cfg, zap.NewNop())
	if err := runLogin(d, strings.NewReader("\n\n")); err == nil {
		t.Fatal("expected error for empty credentials")
	}
}

func TestLogoutClearsToken(t *testing.T) {
	srv := fakeAPI(t, "tok-123")
	cfg := testConfig(t, srv.URL, nil)
	if err := os.WriteFile(cfg.TokenPath, []byte("tok-123"), 0o600); err != nil {
		t.Fatal(err)
	}
	d := wire(cfg, zap.NewNop())
	if !d.sessions.IsAuthenticated() {
		t.Fatal("expected session loaded from the token file")
	}

	if err := runLogout(d); err != nil {
		t.Fatalf("runLogout() error: %v", err)
	}
	if _, err := os.Stat(cfg.TokenPath); !os.IsNotExist(err) {
		t.Error("token file should be removed after logout")
	}
	if err := runLogout(d); err != nil {
		t.Errorf("second logout should be a no-op, got %v", err)
	}
}

func TestEnvTokenIsNotPersisted(t *testing.T) {
	srv := fakeAPI(t, "env-tok")
	cfg := testConfig(t, srv.URL, map[string]string{"BANJARPANEPEN_TOKEN": "env-tok"})
	d := wire(cfg, zap.NewNop())

	if got := d.guard.Enter(context.Background(), session.RouteAdmin); got != session.Proceed {
		t.Errorf("guard decision = %v, want Proceed", got)
	}
	if _, err := os.Stat(cfg.TokenPath); !os.IsNotExist(err) {
		t.Error("an environment token must not be written to disk")
	}
}

func TestInvalidStoredTokenIsCleared(t *testing.T) {
	srv := fakeAPI(t, "tok-123")
	cfg := testConfig(t, srv.URL, nil)
	if err := os.WriteFile(cfg.TokenPath, []byte("stale"), 0o600); err != nil {
		t.Fatal(err)
	}
	d := wire(cfg, zap.NewNop())

	if got := d.guard.Enter(context.Background(), session.RouteAdmin); got != session.RedirectLogin {
		t.Errorf("guard decision = %v, want RedirectLogin", got)
	}
	if d.sessions.IsAuthenticated() {
		t.Error("rejected token should be dropped")
	}
}
