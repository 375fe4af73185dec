package textutil

import (
	"math"
	"slices"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b *Fingerprint
		low  float64
		high float64
	}{
		{"both nil", nil, nil, 0, 0},
		{"one nil", nil, NewFingerprint("hello world"), 0, 0},
		{"zero norm", &Fingerprint{weights: map[string]float64{}}, NewFingerprint("hello world"), 0, 0},
		{"identical", NewFingerprint("The quick brown fox"), NewFingerprint("the QUICK brown fox!"), 1, 1},
		{"disjoint", NewFingerprint("apple banana cherry"), NewFingerprint("dog elephant frog"), 0, 0},
		{"partial", NewFingerprint("the quick brown fox"), NewFingerprint("the slow brown cat"), 0.2, 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ab := CosineSimilarity(tt.a, tt.b)
			ba := CosineSimilarity(tt.b, tt.a)
			if math.Abs(ab-ba) > 1e-12 {
				t.Fatalf("not symmetric: %v vs %v", ab, ba)
			}
			if ab < tt.low-1e-9 || ab > tt.high+1e-9 {
				t.Fatalf("CosineSimilarity = %v, want within [%v, %v]", ab, tt.low, tt.high)
			}
		})
	}
}

func TestNewFingerprint(t *testing.T) {
	if NewFingerprint("") != nil || NewFingerprint("a b c ?") != nil {
		t.Fatal("expected nil for text without usable tokens")
	}

	fp := NewFingerprint("hello hello world")
	if math.Abs(fp.norm-math.Sqrt(5)) > 1e-9 {
		t.Fatalf("norm = %v, want sqrt(5)", fp.norm)
	}
	if fp.Terms() != 2 || !fp.Has("hello") || fp.Has("goodbye") {
		t.Fatalf("unexpected terms %v", fp.weights)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"Hello World", []string{"hello", "world"}},
		{"a to the quick fox", []string{"to", "the", "quick", "fox"}},
		{"What's up?", []string{"what", "up"}},
		{"Hello, World! How are you?", []string{"hello", "world", "how", "are", "you"}},
		{"test123 456test", []string{"test123", "456test"}},
		{"Café über señor", []string{"café", "über", "señor"}},
		{"", nil},
		{"a b c", nil},
	}

	for _, tt := range tests {
		got := Tokenize(tt.input)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !slices.Equal(got, tt.want) {
			t.Fatalf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestCorpusIDF(t *testing.T) {
	var empty *Corpus
	if empty.IDF() != nil || empty.Len() != 0 {
		t.Fatal("expected nil corpus to be empty")
	}

	corpus := NewCorpus()
	corpus.Add(NewFingerprint("great job"))
	corpus.Add(NewFingerprint("great wall"))
	corpus.Add(nil)
	if corpus.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", corpus.Len())
	}

	idf := corpus.IDF()
	if idf["great"] >= idf["job"] {
		t.Fatalf("expected shared term to weigh less: great=%v job=%v", idf["great"], idf["job"])
	}
	if math.Abs(idf["great"]-1) > 1e-9 {
		t.Fatalf("expected a term in every document to weigh 1, got %v", idf["great"])
	}
}

func TestWithIDF(t *testing.T) {
	fp := NewFingerprint("great job")
	weighted := fp.WithIDF(map[string]float64{"job": 3})
	if weighted == fp {
		t.Fatal("expected a new fingerprint")
	}
	if weighted.weights["job"] != 3 || weighted.weights["great"] != 1 {
		t.Fatalf("unexpected weights: %v", weighted.weights)
	}
	if math.Abs(weighted.norm-math.Sqrt(10)) > 1e-9 {
		t.Fatalf("norm = %v, want sqrt(10)", weighted.norm)
	}
	if fp.WithIDF(nil) != fp {
		t.Fatal("expected empty IDF to return the receiver")
	}
	if fp.WithIDF(map[string]float64{"great": 0, "job": 0}) != nil {
		t.Fatal("expected all-zero weights to yield nil")
	}
}
