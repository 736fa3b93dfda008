package tui

import (
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Shimmer animation for the header logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

const logoText = "BANJARPANEPEN"

// renderShimmerLogo renders the village name as a slow wave running from
// rice-field green to sunlit gold.
func renderShimmerLogo(frame int) string {
	n := len(logoText)
	t := float64(frame)

	var out strings.Builder
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)
		phase := t*0.08 - x*3.0
		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.4)
		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		// Green (#2f7d32) -> gold (#e0b84c)
		r := clampByte(47 + b*(224-47))
		g := clampByte(125 + b*(184-125))
		bl := clampByte(50 + b*(76-50))
		color := fmt.Sprintf("#%02X%02X%02X", r, g, bl)

		out.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color)).Render(string(logoText[i])))
		if i < n-1 {
			out.WriteString(" ")
		}
	}
	return out.String()
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8a9484"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f0efe6")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c9ccc0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5c6657"))

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8a9484"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5c6657"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4caf50"))

	goldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e0b84c"))

	rejectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c65a4a"))

	priceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4caf50")).
			Bold(true)

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#6b7565"))

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#4caf50")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#3c4438"))

	statusOKStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#86d98a"))

	// Agenda badges
	passedBadgeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f3d6d2")).
				Background(lipgloss.Color("#7a2e25")).
				Padding(0, 1)

	upcomingBadgeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#d9f2da")).
				Background(lipgloss.Color("#2e6b31")).
				Padding(0, 1)

	progressFillStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#4caf50"))

	progressEmptyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#2c332a"))

	// Category colors for the common village categories.
	categoryColors = map[string]lipgloss.Color{
		"alam":     lipgloss.Color("#6fcf73"),
		"budaya":   lipgloss.Color("#d79a5b"),
		"kuliner":  lipgloss.Color("#e0b84c"),
		"religi":   lipgloss.Color("#9fb8e0"),
		"edukasi":  lipgloss.Color("#b48ad6"),
		"sejarah":  lipgloss.Color("#c7a27a"),
		"air":      lipgloss.Color("#5cc4d6"),
		"keluarga": lipgloss.Color("#e08fa8"),
	}

	// Fallback palette for categories created by the admin.
	categoryFallback = []lipgloss.Color{
		lipgloss.Color("#8fc98f"),
		lipgloss.Color("#d6b07a"),
		lipgloss.Color("#88b4d6"),
		lipgloss.Color("#c794c7"),
		lipgloss.Color("#d68f80"),
	}
)

// CategoryStyle returns a bold style colored for the given category. Unknown
// categories get a stable color from the fallback palette.
func CategoryStyle(cat string) lipgloss.Style {
	if c, ok := categoryColors[cat]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	if cat == "" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#5c6657")).Bold(true)
	}
	h := fnv.New32a()
	h.Write([]byte(cat)) //nolint:errcheck // hash writes never fail
	return lipgloss.NewStyle().Foreground(categoryFallback[h.Sum32()%uint32(len(categoryFallback))]).Bold(true)
}

// renderProgressBar draws a fixed-width bar for a fraction in [0, 1].
func renderProgressBar(fraction float64, width int) string {
	if width < 4 {
		width = 4
	}
	if fraction < 0 {
		fraction = 0
	} else if fraction > 1 {
		fraction = 1
	}
	filled := int(math.Round(fraction * float64(width)))
	bar := progressFillStyle.Render(strings.Repeat("█", filled)) +
		progressEmptyStyle.Render(strings.Repeat("░", width-filled))
	return bar + " " + dimStyle.Render(fmt.Sprintf("%3d%%", int(math.Round(fraction*100))))
}

// ratingStars renders a rating as five stars followed by the number.
func ratingStars(r float64) string {
	full := int(math.Round(r))
	if full > 5 {
		full = 5
	} else if full < 0 {
		full = 0
	}
	return goldStyle.Render(strings.Repeat("★", full)) + metaStyle.Render(strings.Repeat("☆", 5-full))
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpView renders the help overlay.
func helpView(version string) string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4caf50")).
		Bold(true).
		Render("B A N J A R P A N E P E N")

	sub := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("Wisata Desa Banjarpanepen " + version)

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)

	keys := []struct{ key, desc string }{
		{"1 2 3 4", "Wisata, Agenda, Galeri, Admin"},
		{"j/k", "move up and down"},
		{"enter", "open detail"},
		{"c", "cycle category (Wisata)"},
		{"o", "open map or image in browser"},
		{"y", "copy link"},
		{"r", "reload"},
		{"a e d", "add, edit, delete (Admin)"},
		{"ctrl+s", "save form (Admin)"},
		{"p", "change password (Admin)"},
		{"L", "log out (Admin)"},
	}
	commands := []struct{ cmd, desc string }{
		{"banjarpanepen", "Open the terminal guide"},
		{"banjarpanepen login", "Sign in as admin"},
		{"banjarpanepen logout", "End the admin session"},
		{"banjarpanepen serve", "Run the public website"},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n  %s\n\n", title, sub)
	fmt.Fprintf(&b, "  %s\n", sectionStyle.Render("Keys"))
	for _, k := range keys {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-10s", k.key)), descStyle.Render(k.desc))
	}
	fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Commands"))
	for _, c := range commands {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-22s", c.cmd)), descStyle.Render(c.desc))
	}
	return b.String()
}
