package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Open opens an http or https link, such as a map location or an image, in
// the user's default browser.
func Open(link string) error {
	if err := Check(link); err != nil {
		return err
	}
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", link).Start()
	case "linux":
		return exec.Command("xdg-open", link).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", link).Start()
	default:
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
}

// Check reports whether link is an absolute http or https URL.
func Check(link string) error {
	if link == "" {
		return fmt.Errorf("no link to open")
	}
	u, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("parse link: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open %q link", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("link has no host")
	}
	return nil
}
