package present

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ikyyy777/TPLM-website-wisata-desa-banjarpanepen/pkg/domain"
)

// Agenda status labels.
const (
	StatusPassed   = "Sudah Lewat"
	StatusUpcoming = "Akan Datang"
)

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// ParseDate reads the date part of an API date ("2025-01-02" or
// "2025-01-02 00:00:00") in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(domain.DateLayout) {
		s = s[:len(domain.DateLayout)]
	}
	t, err := time.ParseInLocation(domain.DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("present.ParseDate: %w", err)
	}
	return t, nil
}

// SortAgendaDesc returns a copy of items ordered by date, furthest future
// first. Items with unreadable dates keep their relative order at the end.
func SortAgendaDesc(items []domain.AgendaItem) []domain.AgendaItem {
	type keyed struct {
		item domain.AgendaItem
		at   time.Time
		ok   bool
	}
	ks := make([]keyed, len(items))
	for i, it := range items {
		at, err := ParseDate(it.Date, time.UTC)
		ks[i] = keyed{item: it, at: at, ok: err == nil}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		if ks[i].ok != ks[j].ok {
			return ks[i].ok
		}
		return ks[i].at.After(ks[j].at)
	})
	out := make([]domain.AgendaItem, len(ks))
	for i, k := range ks {
		out[i] = k.item
	}
	return out
}

// IsPassed reports whether the item's day lies before now's day. Times of
// day are ignored. An unreadable date is never passed.
func IsPassed(item domain.AgendaItem, now time.Time) bool {
	day, err := ParseDate(item.Date, now.Location())
	if err != nil {
		return false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return day.Before(today)
}

// AgendaStatus returns "Sudah Lewat" or "Akan Datang".
func AgendaStatus(item domain.AgendaItem, now time.Time) string {
	if IsPassed(item, now) {
		return StatusPassed
	}
	return StatusUpcoming
}

// FormatDate renders an API date as "2 Januari 2025". Unreadable input is
// returned unchanged.
func FormatDate(s string) string {
	t, err := ParseDate(s, time.UTC)
	if err != nil {
		return s
	}
	return fmt.Sprintf("%d %s %d", t.Day(), monthNames[t.Month()-1], t.Year())
}

// FormatTime cuts an API time down to HH:MM.
func FormatTime(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > len(domain.TimeLayout) {
		return s[:len(domain.TimeLayout)]
	}
	return s
}
