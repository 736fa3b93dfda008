package present

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FreeLabel is shown instead of a zero price.
const FreeLabel = "Gratis"

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatRupiah renders an amount with Indonesian grouping: 150000 -> "Rp 150.000".
func FormatRupiah(n int64) string {
	if n < 0 {
		return "-Rp " + idPrinter.Sprintf("%d", -n)
	}
	return "Rp " + idPrinter.Sprintf("%d", n)
}

// ParseDigits keeps only the ASCII digits of s and reads them as an integer.
// No digits gives 0; values past the int64 range saturate.
// ParseDigits(FormatRupiah(n)) == n for every n >= 0.
func ParseDigits(s string) int64 {
	var n int64
	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}
		d := int64(r - '0')
		if n > (math.MaxInt64-d)/10 {
			return math.MaxInt64
		}
		n = n*10 + d
	}
	return n
}

// PriceLabel is the public price display: "Gratis" for 0, Rupiah otherwise.
func PriceLabel(n int64) string {
	if n == 0 {
		return FreeLabel
	}
	return FormatRupiah(n)
}

// FormatRating renders a rating with one decimal, or "-" when unset.
func FormatRating(r float64, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.1f", r)
}
