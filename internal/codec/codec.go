// Package codec converts between text lines and word records.
//
// A line is "<english>\t<meaning1>/<meaning2>..." optionally followed by
// further tab columns. Personal files mark favorites with a leading '*',
// note files with a '*' right after the english token. Public and ledger
// lines never carry a marker.
package codec

import (
	"regexp"
	"strings"

	"vocabook/internal/domain"
)

const (
	marker           = "*"
	fieldSeparator   = "\t"
	meaningSeparator = "/"
)

var englishPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z -]*$`)

// Parse decodes one line of a file of the given category
func Parse(line string, category domain.Category) (domain.WordRecord, error) {
	line = strings.TrimRight(line, "\r\n")

	head, rest, ok := strings.Cut(line, fieldSeparator)
	if !ok {
		return domain.WordRecord{}, &domain.ParseError{Text: line, Reason: "missing tab separator"}
	}

	english, favorite := stripMarker(strings.TrimSpace(head), category.Policy().Marker)
	if english == "" {
		return domain.WordRecord{}, &domain.ParseError{Text: line, Reason: "empty english"}
	}

	columns := strings.Split(rest, fieldSeparator)
	meanings := SplitMeanings(columns[0])
	if len(meanings) == 0 {
		return domain.WordRecord{}, &domain.ParseError{Text: line, Reason: "empty meaning"}
	}

	rec := domain.WordRecord{
		English:  english,
		Meanings: meanings,
		Favorite: favorite,
	}
	if len(columns) > 1 {
		rec.Extra = make([]string, 0, len(columns)-1)
		for _, c := range columns[1:] {
			rec.Extra = append(rec.Extra, strings.TrimSpace(c))
		}
	}
	return rec, nil
}

// Serialize encodes rec for a file of the given category
func Serialize(rec domain.WordRecord, category domain.Category) string {
	english := strings.TrimSpace(rec.English)
	if rec.Favorite {
		switch category.Policy().Marker {
		case domain.MarkerPrefix:
			english = marker + english
		case domain.MarkerSuffix:
			english = english + marker
		}
	}

	var b strings.Builder
	b.WriteString(english)
	b.WriteString(fieldSeparator)
	b.WriteString(strings.Join(rec.Meanings, meaningSeparator))
	for _, extra := range rec.Extra {
		b.WriteString(fieldSeparator)
		b.WriteString(extra)
	}
	return b.String()
}

func stripMarker(token string, m domain.Marker) (string, bool) {
	switch m {
	case domain.MarkerPrefix:
		if strings.HasPrefix(token, marker) {
			return strings.TrimSpace(strings.TrimPrefix(token, marker)), true
		}
	case domain.MarkerSuffix:
		if strings.HasSuffix(token, marker) {
			return strings.TrimSpace(strings.TrimSuffix(token, marker)), true
		}
	}
	return token, false
}

// SplitMeanings splits a meaning section on '/', trimming and dropping empty or repeated parts
func SplitMeanings(section string) []string {
	parts := strings.Split(section, meaningSeparator)
	meanings := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		meanings = append(meanings, p)
	}
	return meanings
}

// ValidateEnglish checks that english only uses letters, spaces and hyphens
func ValidateEnglish(english string) error {
	english = strings.TrimSpace(english)
	if english == "" {
		return &domain.ValidationError{Field: "english", Value: english, Reason: "must not be empty"}
	}
	if !englishPattern.MatchString(english) {
		return &domain.ValidationError{
			Field:  "english",
			Value:  english,
			Reason: "only letters, spaces and hyphens are allowed",
		}
	}
	return nil
}

// ValidateMeaning checks that a meaning section yields at least one meaning
// and cannot break the line format
func ValidateMeaning(meaning string) error {
	if strings.ContainsAny(meaning, "\t\r\n") {
		return &domain.ValidationError{Field: "meaning", Value: meaning, Reason: "must not contain tabs or line breaks"}
	}
	if len(SplitMeanings(meaning)) == 0 {
		return &domain.ValidationError{Field: "meaning", Value: meaning, Reason: "must not be empty"}
	}
	return nil
}
