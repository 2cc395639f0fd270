package service

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"vocabook/internal/codec"
	"vocabook/internal/domain"
	"vocabook/internal/repository"

	"go.uber.org/zap"
)

// VocabularyService handles load, save and record edits of a single file
type VocabularyService struct {
	files  repository.FileRepository
	logger *zap.Logger
}

// NewVocabularyService creates a new vocabulary service
func NewVocabularyService(files repository.FileRepository, logger *zap.Logger) *VocabularyService {
	return &VocabularyService{
		files:  files,
		logger: logger,
	}
}

// Open reads path into a VocabularyFile. A missing file opens as empty.
func (s *VocabularyService) Open(path string, category domain.Category) (*domain.VocabularyFile, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, category)
	}

	lines, err := s.files.ReadLines(path)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewVocabularyFile(path, category), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	f := codec.Decode(path, category, lines)
	for _, perr := range codec.Malformed(f) {
		s.logger.Debug("Skipping malformed line", zap.String("path", path), zap.Error(perr))
	}
	return f, nil
}

// Commit writes f back, re-serializing only the lines that changed
func (s *VocabularyService) Commit(f *domain.VocabularyFile) error {
	if err := s.files.WriteLines(f.Path, codec.Encode(f)); err != nil {
		return fmt.Errorf("failed to save %s: %w", f.Path, err)
	}
	return nil
}

// LoadFile returns the records of path in file order
func (s *VocabularyService) LoadFile(path string, category domain.Category) ([]domain.WordRecord, error) {
	f, err := s.Open(path, category)
	if err != nil {
		return nil, err
	}
	return f.Records(), nil
}

// SaveFile overwrites path with records
func (s *VocabularyService) SaveFile(path string, category domain.Category, records []domain.WordRecord) error {
	if !category.Valid() {
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, category)
	}

	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		english := strings.TrimSpace(rec.English)
		if english == "" || strings.ContainsAny(english, "\t\r\n") {
			return &domain.ValidationError{Field: "english", Value: rec.English, Reason: "must be a single non-empty token"}
		}
		if err := codec.ValidateMeaning(rec.MeaningText()); err != nil {
			return err
		}
		if _, ok := seen[rec.Key()]; ok {
			return fmt.Errorf("%w: %q appears twice", domain.ErrDuplicate, english)
		}
		seen[rec.Key()] = struct{}{}
	}

	if err := s.files.WriteLines(path, codec.EncodeRecords(category, records)); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	s.logger.Debug("File saved", zap.String("path", path), zap.Int("records", len(records)))
	return nil
}

// Add merges meaning into the record keyed by english, or appends a new record.
// The resulting record is returned together with whether it was newly created.
func (s *VocabularyService) Add(path string, category domain.Category, english, meaning string) (domain.WordRecord, bool, error) {
	if !category.Policy().Mutable {
		return domain.WordRecord{}, false, domain.ErrReadOnly
	}
	if err := codec.ValidateEnglish(english); err != nil {
		return domain.WordRecord{}, false, err
	}
	if err := codec.ValidateMeaning(meaning); err != nil {
		return domain.WordRecord{}, false, err
	}
	english = strings.TrimSpace(english)
	meanings := codec.SplitMeanings(meaning)

	f, err := s.Open(path, category)
	if err != nil {
		return domain.WordRecord{}, false, err
	}

	var (
		rec     domain.WordRecord
		created bool
	)
	if idx := f.Find(english); idx >= 0 {
		rec, _ = f.Record(idx)
		if rec.MergeMeanings(meanings...) == 0 {
			return rec, false, fmt.Errorf("%w: %q already has %q", domain.ErrDuplicate, rec.English, meaning)
		}
		_ = f.Set(idx, rec)
	} else {
		rec = domain.WordRecord{English: english, Meanings: meanings}
		f.Append(rec)
		created = true
	}

	if err := s.Commit(f); err != nil {
		return domain.WordRecord{}, false, err
	}

	s.logger.Info("Word added",
		zap.String("path", path),
		zap.String("english", rec.English),
		zap.Bool("created", created),
	)
	return rec, created, nil
}

// Remove deletes the record at index and returns it
func (s *VocabularyService) Remove(path string, category domain.Category, index int) (domain.WordRecord, error) {
	if !category.Policy().Mutable {
		return domain.WordRecord{}, domain.ErrReadOnly
	}

	f, err := s.Open(path, category)
	if err != nil {
		return domain.WordRecord{}, err
	}
	rec, err := f.Delete(index)
	if err != nil {
		return domain.WordRecord{}, err
	}
	if err := s.Commit(f); err != nil {
		return domain.WordRecord{}, err
	}

	s.logger.Info("Word removed", zap.String("path", path), zap.String("english", rec.English))
	return rec, nil
}

// Edit replaces the english token and meanings of the record at index.
// Empty input keeps the current value. Renaming onto another record is
// rejected with ErrCollision.
func (s *VocabularyService) Edit(path string, category domain.Category, index int, newEnglish, newMeaning string) (old, updated domain.WordRecord, err error) {
	if !category.Policy().Mutable {
		return old, updated, domain.ErrReadOnly
	}

	f, err := s.Open(path, category)
	if err != nil {
		return old, updated, err
	}
	old, err = f.Record(index)
	if err != nil {
		return old, updated, err
	}

	updated = old.Clone()
	if strings.TrimSpace(newEnglish) != "" {
		if err := codec.ValidateEnglish(newEnglish); err != nil {
			return old, updated, err
		}
		updated.English = strings.TrimSpace(newEnglish)
	}
	if strings.TrimSpace(newMeaning) != "" {
		if err := codec.ValidateMeaning(newMeaning); err != nil {
			return old, updated, err
		}
		updated.Meanings = codec.SplitMeanings(newMeaning)
	}

	if f.FindOther(updated.English, index) >= 0 {
		return old, updated, fmt.Errorf("%w: %q", domain.ErrCollision, updated.English)
	}

	_ = f.Set(index, updated)
	if err := s.Commit(f); err != nil {
		return old, updated, err
	}

	s.logger.Info("Word edited",
		zap.String("path", path),
		zap.String("from", old.English),
		zap.String("to", updated.English),
	)
	return old, updated, nil
}

// Search returns the records whose english or meanings contain query
func (s *VocabularyService) Search(path string, category domain.Category, query string) ([]domain.Match, error) {
	f, err := s.Open(path, category)
	if err != nil {
		return nil, err
	}

	var matches []domain.Match
	for i, rec := range f.Records() {
		if rec.Matches(query) {
			matches = append(matches, domain.Match{Index: i, Record: rec})
		}
	}
	return matches, nil
}

// SaveNote writes records into a new timestamped note file under dir.
// Records sharing an english token are folded into one with merged meanings.
func (s *VocabularyService) SaveNote(dir string, at time.Time, records []domain.WordRecord) (string, error) {
	var merged []domain.WordRecord
	index := make(map[string]int, len(records))
	for _, rec := range records {
		if i, ok := index[rec.Key()]; ok {
			merged[i].MergeMeanings(rec.Meanings...)
			continue
		}
		c := rec.Clone()
		c.Favorite = false
		c.Extra = nil
		index[rec.Key()] = len(merged)
		merged = append(merged, c)
	}
	if len(merged) == 0 {
		return "", &domain.ValidationError{Field: "note", Reason: "no words to save"}
	}

	path := filepath.Join(dir, domain.NoteFileName(at))
	if err := s.SaveFile(path, domain.CategoryNote, merged); err != nil {
		return "", err
	}

	s.logger.Info("Note saved", zap.String("path", path), zap.Int("words", len(merged)))
	return path, nil
}
