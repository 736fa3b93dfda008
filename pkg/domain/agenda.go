package domain

// Date and time layouts used by the village API.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// AgendaItem is a scheduled village event.
type AgendaItem struct {
	ID          FlexInt `json:"id,omitempty"`
	Title       string  `json:"title"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Time        string  `json:"time"` // HH:MM or HH:MM:SS
	Location    string  `json:"location"`
	Description string  `json:"description"`
}
