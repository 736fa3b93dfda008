package domain

import "testing"

func TestValidRating(t *testing.T) {
	tests := []struct {
		r    float64
		want bool
	}{
		{0, true},
		{2.5, true},
		{5, true},
		{5.01, false},
		{6, false},
		{-1, false},
	}
	for _, tc := range tests {
		if got := ValidRating(tc.r); got != tc.want {
			t.Errorf("ValidRating(%v) = %v, want %v", tc.r, got, tc.want)
		}
	}
}

func TestNormalizeCategory(t *testing.T) {
	if got := NormalizeCategory("  Edukasi "); got != "edukasi" {
		t.Errorf("NormalizeCategory = %q, want %q", got, "edukasi")
	}
}

func TestArticleEmpty(t *testing.T) {
	if !(Article{WisataID: 4}).Empty() {
		t.Error("article with only ids should be empty")
	}
	if (Article{Lokasi: "Sumpiuh"}).Empty() {
		t.Error("article with lokasi should not be empty")
	}
}

func TestSessionIsAuthenticated(t *testing.T) {
	if (Session{}).IsAuthenticated() {
		t.Error("empty session should not be authenticated")
	}
	if !(Session{Token: "abc"}).IsAuthenticated() {
		t.Error("session with token should be authenticated")
	}
}
