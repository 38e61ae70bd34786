package topic

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func loadTestVocabulary(t *testing.T) *Vocabulary {
	t.Helper()
	v, err := LoadVocabulary(filepath.Join("testdata", "words.csv"))
	if err != nil {
		t.Fatalf("load vocabulary: %v", err)
	}
	return v
}

func TestLoadVocabularyDropsIncompleteRows(t *testing.T) {
	v := loadTestVocabulary(t)
	// 13 data rows, two with a missing word or level.
	if v.Len() != 11 {
		t.Errorf("Len() = %d, want 11", v.Len())
	}
}

func TestSampleWithoutReplacement(t *testing.T) {
	v := loadTestVocabulary(t)

	words, err := v.Sample(11, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 11 {
		t.Fatalf("expected 11 words, got %d", len(words))
	}

	seen := make(map[string]bool)
	for _, w := range words {
		if seen[w] {
			t.Errorf("word %q drawn twice", w)
		}
		seen[w] = true
	}
}

func TestSampleLevelFilter(t *testing.T) {
	v := loadTestVocabulary(t)

	words, err := v.Sample(10, 4)
	if err != nil {
		t.Fatal(err)
	}
	// Only three level-4 words exist; a short pool returns what it has.
	if len(words) != 3 {
		t.Fatalf("expected 3 level-4 words, got %d: %v", len(words), words)
	}
	for _, w := range words {
		switch w {
		case "abandon", "absorb", "abstract":
		default:
			t.Errorf("unexpected level-4 word %q", w)
		}
	}
}

func TestSampleEmptyPool(t *testing.T) {
	v := &Vocabulary{words: []Word{{Text: "able", Level: 1}}}
	_, err := v.Sample(5, 6)
	if !errors.Is(err, ErrEmptyPool) {
		t.Fatalf("expected ErrEmptyPool, got %v", err)
	}
}

func TestSampleRejectsNonPositiveCount(t *testing.T) {
	v := loadTestVocabulary(t)
	for _, count := range []int{0, -1} {
		if _, err := v.Sample(count, 0); err == nil {
			t.Errorf("Sample(%d, 0) expected error", count)
		}
	}
}

func TestSampleResolvesSlashVariants(t *testing.T) {
	v := loadTestVocabulary(t)

	// Draw level 5 repeatedly; the "abolish/abolition" headword must always
	// surface as a single variant.
	for range 20 {
		words, err := v.Sample(3, 5)
		if err != nil {
			t.Fatal(err)
		}
		for _, w := range words {
			if strings.Contains(w, "/") {
				t.Fatalf("unresolved variant %q", w)
			}
		}
	}
}

func TestLoadVocabularyMissingColumns(t *testing.T) {
	_, err := LoadVocabulary(filepath.Join("testdata", "words.csv") + ".nope")
	if err == nil {
		t.Error("expected error for missing file")
	}
}
