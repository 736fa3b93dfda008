package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/internal/admin"
	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/pkg/client"
)

// uploadTimeout bounds a save that may include an image upload.
const uploadTimeout = 2 * time.Minute

// uploadProgressMsg reports the fraction of an image upload sent so far.
type uploadProgressMsg struct {
	ch       <-chan float64
	fraction float64
}

// sessionExpiredMsg is sent when the API rejects the admin token mid-action.
type sessionExpiredMsg struct{}

func uploadContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), uploadTimeout)
}

// newProgress returns a channel for upload progress and the callback that
// feeds it. Updates are dropped rather than block the upload.
func newProgress() (chan float64, client.ProgressFunc) {
	ch := make(chan float64, 16)
	return ch, func(p float64) {
		select {
		case ch <- p:
		default:
		}
	}
}

// waitForProgress reads the next progress update. It yields no message once
// the channel is closed.
func waitForProgress(ch <-chan float64) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return uploadProgressMsg{ch: ch, fraction: p}
	}
}

// expiredCmd signals a session expiry when err is an auth failure.
func expiredCmd(err error) tea.Cmd {
	if !client.IsUnauthorized(err) {
		return nil
	}
	return func() tea.Msg { return sessionExpiredMsg{} }
}

// fieldError splits a validation error into its field and message.
func fieldError(err error) (string, string, bool) {
	var ve *admin.ValidationError
	if errors.As(err, &ve) {
		return ve.Field, ve.Message, true
	}
	return "", "", false
}

// failureText is the status line for a failed admin action.
func failureText(action string, err error) string {
	if client.IsUnauthorized(err) {
		return "sesi berakhir, silakan login kembali"
	}
	return fmt.Sprintf("%s gagal: %v", action, err)
}
