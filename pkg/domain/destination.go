package domain

import "strings"

// MaxRating is the highest rating a destination may carry.
const MaxRating = 5

// Destination is a wisata (attraction) record.
type Destination struct {
	ID          FlexInt    `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ImageURL    string     `json:"imageUrl"`
	Price       FlexInt    `json:"price"`
	Rating      *FlexFloat `json:"rating,omitempty"`
	Kategori    string     `json:"kategori"`
}

// RatingValue returns the rating and whether one is set.
func (d Destination) RatingValue() (float64, bool) {
	if d.Rating == nil {
		return 0, false
	}
	return float64(*d.Rating), true
}

// DestinationInput is the writable part of a destination sent on create/update.
type DestinationInput struct {
	ID          int64    `json:"id,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	Price       int64    `json:"price"`
	Rating      *float64 `json:"rating,omitempty"`
	Kategori    string   `json:"kategori"`
}

// Article is the long-form content attached 1:1 to a destination.
// WisataID must reference an existing destination.
type Article struct {
	ID             FlexInt `json:"id,omitempty"`
	WisataID       FlexInt `json:"wisata_id"`
	Konten         string  `json:"konten"`
	JamOperasional string  `json:"jam_operasional"`
	Lokasi         string  `json:"lokasi"`
	PetaLokasi     string  `json:"peta_lokasi"`
}

// Empty reports whether the article carries no content at all.
func (a Article) Empty() bool {
	return strings.TrimSpace(a.Konten) == "" &&
		strings.TrimSpace(a.JamOperasional) == "" &&
		strings.TrimSpace(a.Lokasi) == "" &&
		strings.TrimSpace(a.PetaLokasi) == ""
}

// ValidRating returns true if r is within 0..MaxRating.
func ValidRating(r float64) bool {
	return r >= 0 && r <= MaxRating
}
