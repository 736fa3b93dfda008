package domain

// GalleryItem is a photo in the village gallery.
type GalleryItem struct {
	ID        FlexInt `json:"id,omitempty"`
	Judul     string  `json:"judul"`
	Deskripsi string  `json:"deskripsi"`
	ImageURL  string  `json:"imageUrl"`
	Tanggal   string  `json:"tanggal"` // YYYY-MM-DD
}
