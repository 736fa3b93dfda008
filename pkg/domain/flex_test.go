package domain

import (
	"encoding/json"
	"testing"
)

func TestFlexIntDecodes(t *testing.T) {
	tests := []struct {
		in   string
		want FlexInt
	}{
		{`15000`, 15000},
		{`"15000"`, 15000},
		{`"15000.00"`, 15000},
		{`" 7 "`, 7},
		{`""`, 0},
		{`null`, 0},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			var got FlexInt
			if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("Unmarshal(%s) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestFlexIntRejectsGarbage(t *testing.T) {
	var n FlexInt
	if err := json.Unmarshal([]byte(`"abc"`), &n); err == nil {
		t.Error("expected error for non-numeric string")
	}
}

func TestDestinationDecodesStringNumbers(t *testing.T) {
	raw := `{"id":"3","title":"Curug","price":"25000","rating":"4.5","kategori":"Alam"}`
	var d Destination
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if d.ID != 3 || d.Price != 25000 {
		t.Errorf("got id=%d price=%d, want 3 and 25000", d.ID, d.Price)
	}
	r, ok := d.RatingValue()
	if !ok || r != 4.5 {
		t.Errorf("RatingValue() = %v, %v; want 4.5, true", r, ok)
	}
}

func TestDestinationWithoutRating(t *testing.T) {
	var d Destination
	if err := json.Unmarshal([]byte(`{"id":1,"title":"x","rating":null}`), &d); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if _, ok := d.RatingValue(); ok {
		t.Error("expected no rating for null")
	}
}
