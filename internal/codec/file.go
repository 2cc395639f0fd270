package codec

import (
	"errors"

	"vocabook/internal/domain"
)

// Decode parses raw lines into a VocabularyFile. Malformed lines are kept
// with their parse error so that saving writes them back untouched.
func Decode(path string, category domain.Category, raw []string) *domain.VocabularyFile {
	f := domain.NewVocabularyFile(path, category)
	f.Lines = make([]domain.Line, 0, len(raw))
	for i, text := range raw {
		rec, err := Parse(text, category)
		if err != nil {
			var pe *domain.ParseError
			if errors.As(err, &pe) {
				pe.Line = i + 1
			}
			f.Lines = append(f.Lines, domain.Line{Raw: text, Err: err})
			continue
		}
		f.Lines = append(f.Lines, domain.Line{Raw: text, Record: rec})
	}
	return f
}

// Encode renders f back into raw lines
func Encode(f *domain.VocabularyFile) []string {
	out := make([]string, 0, len(f.Lines))
	for _, l := range f.Lines {
		if l.Valid() && (l.Dirty || l.Raw == "") {
			out = append(out, Serialize(l.Record, f.Category))
			continue
		}
		out = append(out, l.Raw)
	}
	return out
}

// EncodeRecords renders records for a file of the given category
func EncodeRecords(category domain.Category, records []domain.WordRecord) []string {
	out := make([]string, 0, len(records))
	for _, rec := range records {
		out = append(out, Serialize(rec, category))
	}
	return out
}

// Malformed returns the parse errors of f in line order
func Malformed(f *domain.VocabularyFile) []error {
	var errs []error
	for _, l := range f.Lines {
		if !l.Valid() {
			errs = append(errs, l.Err)
		}
	}
	return errs
}
