package main

import "fmt"

// ANSI color constants for command output (no lipgloss, runs outside the TUI).
const (
	ansiReset     = "\033[0m"
	ansiBold      = "\033[1m"
	ansiItalic    = "\033[3m"
	ansiEmerald   = "\033[38;2;74;222;128m"  // #4ade80
	ansiGreen     = "\033[38;2;52;212;116m"  // #34d474
	ansiGold      = "\033[38;2;212;168;68m"  // #d4a844
	ansiGoldLight = "\033[38;2;200;168;76m"  // #c8a84c
	ansiSlate     = "\033[38;2;136;144;160m" // #8890a0
)

// printLogo prints the spaced wordmark in alternating greens.
func printLogo() {
	letters := "BANJARPANEPEN"
	colors := [2]string{ansiEmerald, ansiGreen}
	fmt.Print("\n  ")
	for i, ch := range letters {
		fmt.Printf("%s%s%c%s", colors[i%2], ansiBold, ch, ansiReset)
		if i < len(letters)-1 {
			fmt.Print(" ")
		}
	}
	fmt.Println()
}

func printLoggedIn(username string) {
	printLogo()
	fmt.Printf("\n  %s%s●%s  login sebagai %s%s%s\n",
		ansiEmerald, ansiBold, ansiReset,
		ansiBold, username, ansiReset,
	)
	fmt.Printf("\n  %s│%s %s%s%s%s\n\n", ansiGold, ansiReset, ansiGoldLight, ansiItalic, randomSapaan(), ansiReset)
}

func printLoggedOut() {
	printLogo()
	fmt.Printf("\n  %s%s○%s  %s%ssesi admin diakhiri%s\n\n",
		ansiSlate, ansiBold, ansiReset,
		ansiSlate, ansiItalic, ansiReset,
	)
}
