// Package topic selects the raw material questions are generated from:
// GSAT vocabulary words (from the 學測6000字 list) and social-studies topics.
package topic

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
)

// ErrEmptyPool is returned when a filter matches no candidates.
var ErrEmptyPool = errors.New("no candidates match the filter")

// Vocabulary levels span 1-6 per the GSAT word list; 0 means no filter.
const (
	MinLevel = 1
	MaxLevel = 6
)

// Word is one vocabulary entry.
type Word struct {
	// Text is the headword. May contain slash-separated variants
	// (e.g. "color/colour"); Sample picks one variant per draw.
	Text  string
	Level int
}

// Vocabulary is the loaded GSAT word pool.
type Vocabulary struct {
	words []Word
}

// LoadVocabulary reads the word list CSV. The file must have a header row
// with 單字 (word) and 級別 (level) columns; rows missing either are dropped,
// matching how the word list ships with stray blanks.
func LoadVocabulary(path string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vocabulary file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse vocabulary CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("vocabulary CSV has no data rows")
	}

	wordCol, levelCol := -1, -1
	for i, name := range records[0] {
		switch strings.TrimSpace(name) {
		case "單字":
			wordCol = i
		case "級別":
			levelCol = i
		}
	}
	if wordCol < 0 || levelCol < 0 {
		return nil, fmt.Errorf("vocabulary CSV missing 單字/級別 columns")
	}

	var words []Word
	for _, rec := range records[1:] {
		if wordCol >= len(rec) || levelCol >= len(rec) {
			continue
		}
		text := strings.TrimSpace(rec[wordCol])
		levelStr := strings.TrimSpace(rec[levelCol])
		if text == "" || levelStr == "" {
			continue
		}
		level, err := strconv.Atoi(levelStr)
		if err != nil || level < MinLevel || level > MaxLevel {
			continue
		}
		words = append(words, Word{Text: text, Level: level})
	}

	if len(words) == 0 {
		return nil, fmt.Errorf("vocabulary CSV has no usable rows")
	}
	return &Vocabulary{words: words}, nil
}

// Len returns the number of loaded words.
func (v *Vocabulary) Len() int {
	return len(v.words)
}

// Sample draws up to count distinct words uniformly at random without
// replacement from the level-filtered pool (level 0 = all levels).
// Slash-separated headwords contribute one randomly chosen variant.
// Returns ErrEmptyPool when the filter matches nothing; returns fewer than
// count when the pool is smaller.
func (v *Vocabulary) Sample(count, level int) ([]string, error) {
	if count < 1 {
		return nil, fmt.Errorf("word count must be positive, got %d", count)
	}

	var pool []Word
	if level == 0 {
		pool = v.words
	} else {
		for _, w := range v.words {
			if w.Level == level {
				pool = append(pool, w)
			}
		}
	}
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}

	if count > len(pool) {
		count = len(pool)
	}

	out := make([]string, 0, count)
	for _, idx := range rand.Perm(len(pool))[:count] {
		out = append(out, pickVariant(pool[idx].Text))
	}
	return out, nil
}

// pickVariant resolves slash-separated headwords to a single form.
func pickVariant(word string) string {
	if !strings.Contains(word, "/") {
		return word
	}
	variants := strings.Split(word, "/")
	return strings.TrimSpace(variants[rand.IntN(len(variants))])
}
