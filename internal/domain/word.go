package domain

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// WordRecord represents one english word with its meanings
type WordRecord struct {
	English  string
	Meanings []string
	Favorite bool

	// Extra holds tab columns after the meaning section, kept verbatim
	// (the quiz writes question/correct counters into the public file).
	Extra []string
}

// Stats holds quiz counters stored alongside public words
type Stats struct {
	Questions int
	Correct   int
}

// Accuracy returns the share of correct answers, 0 when never asked
func (s Stats) Accuracy() float64 {
	if s.Questions == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Questions)
}

// Fold returns the case-insensitive key for an english token
func Fold(english string) string {
	return cases.Fold().String(strings.TrimSpace(english))
}

// SameEnglish reports whether two english tokens are equal ignoring case
func SameEnglish(a, b string) bool {
	return Fold(a) == Fold(b)
}

// Key returns the case-insensitive key of the record
func (w WordRecord) Key() string {
	return Fold(w.English)
}

// Is reports whether the record is keyed by english
func (w WordRecord) Is(english string) bool {
	return SameEnglish(w.English, english)
}

// MeaningText joins meanings the way they are stored on disk
func (w WordRecord) MeaningText() string {
	return strings.Join(w.Meanings, "/")
}

// HasMeaning reports whether meaning is already in the set
func (w WordRecord) HasMeaning(meaning string) bool {
	meaning = strings.TrimSpace(meaning)
	for _, m := range w.Meanings {
		if m == meaning {
			return true
		}
	}
	return false
}

// MergeMeanings adds meanings missing from the set and returns how many were added
func (w *WordRecord) MergeMeanings(meanings ...string) int {
	added := 0
	for _, m := range meanings {
		m = strings.TrimSpace(m)
		if m == "" || w.HasMeaning(m) {
			continue
		}
		w.Meanings = append(w.Meanings, m)
		added++
	}
	return added
}

// Matches reports whether query occurs in the english token or any meaning, ignoring case
func (w WordRecord) Matches(query string) bool {
	q := Fold(query)
	if q == "" {
		return false
	}
	if strings.Contains(Fold(w.English), q) {
		return true
	}
	for _, m := range w.Meanings {
		if strings.Contains(Fold(m), q) {
			return true
		}
	}
	return false
}

// Stats returns quiz counters when the record carries them
func (w WordRecord) Stats() (Stats, bool) {
	if len(w.Extra) < 2 {
		return Stats{}, false
	}
	questions, err := strconv.Atoi(strings.TrimSpace(w.Extra[0]))
	if err != nil {
		return Stats{}, false
	}
	correct, err := strconv.Atoi(strings.TrimSpace(w.Extra[1]))
	if err != nil {
		return Stats{}, false
	}
	return Stats{Questions: questions, Correct: correct}, true
}

// Clone returns a deep copy so callers can mutate slices safely
func (w WordRecord) Clone() WordRecord {
	c := w
	c.Meanings = append([]string(nil), w.Meanings...)
	if w.Extra != nil {
		c.Extra = append([]string(nil), w.Extra...)
	}
	return c
}

// Location points at one record inside one file
type Location struct {
	Path     string   `yaml:"path"`
	Category Category `yaml:"category"`
	Index    int      `yaml:"index"`
	English  string   `yaml:"english"`
}

// Match is a search hit inside one file
type Match struct {
	Index  int
	Record WordRecord
}
