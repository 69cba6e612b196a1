package textutil

import (
	"math"
	"testing"
)

func TestCosineSimilarityNil(t *testing.T) {
	tests := []struct {
		name string
		a    *Fingerprint
		b    *Fingerprint
		want float64
	}{
		{"both nil", nil, nil, 0},
		{"a nil", nil, NewFingerprint("blade runner"), 0},
		{"b nil", NewFingerprint("blade runner"), nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTitleSimilarity(t *testing.T) {
	if got := TitleSimilarity("Blade Runner 2049", "blade runner: 2049"); math.Abs(got-1) > 1e-9 {
		t.Errorf("punctuation and case should not matter, got %v", got)
	}
	if got := TitleSimilarity("Dune", "Arrival"); got != 0 {
		t.Errorf("unrelated titles scored %v", got)
	}
	partial := TitleSimilarity("The Lord of the Rings", "The Lord of the Flies")
	if partial <= 0 || partial >= SimilarTitleThreshold {
		t.Errorf("partial overlap scored %v", partial)
	}
}

func TestTokenizeDropsSingleCharacters(t *testing.T) {
	got := Tokenize("A Quiet Place: Part II")
	want := []string{"quiet", "place", "part", "ii"}
	if len(got) != len(want) {
		t.Fatalf("Tokenize = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Tokenize = %v, want %v", got, want)
		}
	}
	if NewFingerprint("a ? !") != nil {
		t.Error("expected nil fingerprint for text without tokens")
	}
}

func TestContainsFold(t *testing.T) {
	tests := []struct {
		haystack, needle string
		want             bool
	}{
		{"Dune: Part Two", "part two", true},
		{"AMÉLIE", "amélie", true},
		{"Severance", "", true},
		{"Severance", "sever ", true},
		{"Severance", "andor", false},
	}
	for _, tt := range tests {
		if got := ContainsFold(tt.haystack, tt.needle); got != tt.want {
			t.Errorf("ContainsFold(%q, %q) = %v", tt.haystack, tt.needle, got)
		}
	}
}
