package service

import (
	"fmt"
	"strings"

	"vocabook/internal/domain"

	"go.uber.org/zap"
)

// LedgerService maintains the per-user favorites ledger
type LedgerService struct {
	vocab  *VocabularyService
	path   string
	logger *zap.Logger
}

// NewLedgerService creates a ledger bound to path
func NewLedgerService(vocab *VocabularyService, path string, logger *zap.Logger) *LedgerService {
	return &LedgerService{
		vocab:  vocab,
		path:   path,
		logger: logger,
	}
}

// Path returns the ledger file
func (s *LedgerService) Path() string {
	return s.path
}

func (s *LedgerService) open() (*domain.VocabularyFile, error) {
	return s.vocab.Open(s.path, domain.CategoryFavorites)
}

// List returns all ledger entries in file order
func (s *LedgerService) List() ([]domain.WordRecord, error) {
	f, err := s.open()
	if err != nil {
		return nil, err
	}
	entries := f.Records()
	for i := range entries {
		entries[i].Favorite = true
	}
	return entries, nil
}

// Keys returns the case-insensitive keys of all entries
func (s *LedgerService) Keys() (map[string]struct{}, error) {
	entries, err := s.List()
	if err != nil {
		return nil, err
	}
	keys := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		keys[e.Key()] = struct{}{}
	}
	return keys, nil
}

// Entry returns the entry keyed by english
func (s *LedgerService) Entry(english string) (domain.WordRecord, bool, error) {
	f, err := s.open()
	if err != nil {
		return domain.WordRecord{}, false, err
	}
	idx := f.Find(english)
	if idx < 0 {
		return domain.WordRecord{}, false, nil
	}
	entry, _ := f.Record(idx)
	entry.Favorite = true
	return entry, true, nil
}

// Contains reports whether english is favorited
func (s *LedgerService) Contains(english string) (bool, error) {
	_, ok, err := s.Entry(english)
	return ok, err
}

// Add merges meanings into the entry keyed by english, creating it if needed.
// It reports whether the ledger changed.
func (s *LedgerService) Add(english string, meanings ...string) (bool, error) {
	english = strings.TrimSpace(english)
	if english == "" {
		return false, &domain.ValidationError{Field: "english", Reason: "must not be empty"}
	}

	f, err := s.open()
	if err != nil {
		return false, err
	}

	if idx := f.Find(english); idx >= 0 {
		entry, _ := f.Record(idx)
		if entry.MergeMeanings(meanings...) == 0 {
			return false, nil
		}
		_ = f.Set(idx, entry)
	} else {
		entry := domain.WordRecord{English: english}
		if entry.MergeMeanings(meanings...) == 0 {
			return false, &domain.ValidationError{Field: "meaning", Value: english, Reason: "favorite needs at least one meaning"}
		}
		f.Append(entry)
	}

	if err := s.vocab.Commit(f); err != nil {
		return false, fmt.Errorf("failed to update favorites: %w", err)
	}
	s.logger.Debug("Ledger entry added", zap.String("english", english))
	return true, nil
}

// Remove deletes every entry keyed by english and reports whether any existed
func (s *LedgerService) Remove(english string) (bool, error) {
	f, err := s.open()
	if err != nil {
		return false, err
	}

	removed := 0
	for idx := f.Find(english); idx >= 0; idx = f.Find(english) {
		if _, err := f.Delete(idx); err != nil {
			return false, err
		}
		removed++
	}
	if removed == 0 {
		return false, nil
	}

	if err := s.vocab.Commit(f); err != nil {
		return false, fmt.Errorf("failed to update favorites: %w", err)
	}
	s.logger.Debug("Ledger entry removed", zap.String("english", english), zap.Int("entries", removed))
	return true, nil
}
