package main

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/lipgloss"
)

var sapaan = [...]string{
	"Sugeng rawuh. Curug sudah menunggu untuk diceritakan.",
	"Agenda desa tidak akan menulis dirinya sendiri.",
	"Foto sawah terasering terbaik belum masuk galeri.",
	"Pengunjung membaca artikel yang Anda tulis. Buat mereka betah.",
	"Harga tiket berubah? Perbarui sebelum wisatawan datang.",
	"Selamat bekerja. Banjarpanepen siap dikenalkan lebih luas.",
	"Satu destinasi baru bisa mendatangkan seratus tamu.",
	"Jam operasional yang jelas membuat tamu datang tepat waktu.",
}

func printHelp() {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4ade80")).
		Bold(true).
		Render("B A N J A R P A N E P E N")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(`"Wisata alam dan budaya desa, dari terminal Anda."`)

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"banjarpanepen", "Buka aplikasi (wisata, agenda, galeri, admin)"},
		{"banjarpanepen login", "Login sebagai admin"},
		{"banjarpanepen logout", "Akhiri sesi admin"},
		{"banjarpanepen serve", "Jalankan situs web publik"},
		{"banjarpanepen --version", "Tampilkan versi"},
		{"banjarpanepen help", "Bantuan ini"},
	}

	fmt.Printf("\n  %s\n\n  %s\n\n  Perintah:\n", title, quote)
	for _, c := range commands {
		fmt.Printf("    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-24s", c.cmd)), descStyle.Render(c.desc))
	}
	env := descStyle.Render("Konfigurasi: .env atau variabel BANJARPANEPEN_* (mis. BANJARPANEPEN_API_BASE)")
	fmt.Printf("\n  %s\n\n", env)
}

func randomSapaan() string {
	return sapaan[rand.Intn(len(sapaan))]
}
