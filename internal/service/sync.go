package service

import (
	"errors"
	"fmt"
	"path/filepath"

	"vocabook/internal/domain"
	"vocabook/internal/repository"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const scanPattern = "*.txt"

// Marked is a favorite marker found in a scanned file
type Marked struct {
	Location domain.Location
	Record   domain.WordRecord
}

// SyncService keeps the favorites ledger and the per-file markers consistent
type SyncService struct {
	vocab  *VocabularyService
	ledger *LedgerService
	files  repository.FileRepository
	roots  []domain.ScanRoot
	logger *zap.Logger
}

// NewSyncService creates a new sync service scanning roots on propagation
func NewSyncService(
	vocab *VocabularyService,
	ledger *LedgerService,
	files repository.FileRepository,
	roots []domain.ScanRoot,
	logger *zap.Logger,
) *SyncService {
	return &SyncService{
		vocab:  vocab,
		ledger: ledger,
		files:  files,
		roots:  roots,
		logger: logger,
	}
}

// LoadFile returns the records of path with their effective favorite status
func (s *SyncService) LoadFile(path string, category domain.Category) ([]domain.WordRecord, error) {
	records, err := s.vocab.LoadFile(path, category)
	if err != nil {
		return nil, err
	}

	switch {
	case category == domain.CategoryFavorites:
		for i := range records {
			records[i].Favorite = true
		}
	case category.Policy().LedgerDerived:
		keys, err := s.ledger.Keys()
		if err != nil {
			return nil, err
		}
		for i := range records {
			_, records[i].Favorite = keys[records[i].Key()]
		}
	}
	return records, nil
}

// Search returns the records of path matching query with their effective favorite status
func (s *SyncService) Search(path string, category domain.Category, query string) ([]domain.Match, error) {
	matches, err := s.vocab.Search(path, category, query)
	if err != nil || !category.Policy().LedgerDerived || len(matches) == 0 {
		return matches, err
	}
	keys, err := s.ledger.Keys()
	if err != nil {
		return nil, err
	}
	for i := range matches {
		_, matches[i].Record.Favorite = keys[matches[i].Record.Key()]
	}
	return matches, nil
}

// SaveFile overwrites path with records. Favorited records of marker
// categories are merged into the ledger afterwards.
func (s *SyncService) SaveFile(path string, category domain.Category, records []domain.WordRecord) error {
	if category == domain.CategoryFavorites {
		return domain.ErrReadOnly
	}
	if err := s.vocab.SaveFile(path, category, records); err != nil {
		return err
	}
	if category.Policy().Marker == domain.MarkerNone {
		return nil
	}

	var errs error
	for _, rec := range records {
		if !rec.Favorite {
			continue
		}
		if _, err := s.ledger.Add(rec.English, rec.Meanings...); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// AddWord adds english with meaning to path
func (s *SyncService) AddWord(path string, category domain.Category, english, meaning string) (domain.Result, error) {
	res := domain.Result{Action: domain.ActionAdd, English: english}

	rec, created, err := s.vocab.Add(path, category, english, meaning)
	if err != nil {
		res.Message = err.Error()
		return res, err
	}
	res.English = rec.English
	res.Applied = true
	if created {
		res.Message = fmt.Sprintf("added %q", rec.English)
	} else {
		res.Message = fmt.Sprintf("added meaning to %q", rec.English)
	}

	favorite, err := s.isFavorite(rec, category)
	if err != nil {
		return res, err
	}
	res.Favorite = favorite
	if created || !favorite {
		return res, nil
	}

	if _, err := s.ledger.Add(rec.English, rec.Meanings...); err != nil {
		return res, fmt.Errorf("word added but favorites not updated: %w", err)
	}
	return res, nil
}

// RemoveWord deletes the record at index; a favorited word is also dropped
// from the ledger and its stale markers are cleared.
func (s *SyncService) RemoveWord(path string, category domain.Category, index int) (domain.Result, error) {
	if category == domain.CategoryFavorites {
		entry, err := s.ledgerEntryAt(path, index)
		if err != nil {
			return domain.Result{Action: domain.ActionRemove, Message: err.Error()}, err
		}
		res, err := s.RemoveFromLedger(entry.English)
		res.Action = domain.ActionRemove
		return res, err
	}

	res := domain.Result{Action: domain.ActionRemove}
	rec, err := s.vocab.Remove(path, category, index)
	if err != nil {
		res.Message = err.Error()
		return res, err
	}
	res.English = rec.English
	res.Applied = true
	res.Message = fmt.Sprintf("removed %q", rec.English)

	wasFavorite, err := s.isFavorite(rec, category)
	if err != nil {
		return res, err
	}
	if !wasFavorite {
		return res, nil
	}

	cleared, err := s.unfavorite(rec.English)
	res.Cleared = cleared
	return res, err
}

// EditWord replaces the record at index. A favorited record keeps its
// status under the new name and no marker survives under the old one.
func (s *SyncService) EditWord(path string, category domain.Category, index int, english, meaning string) (domain.Result, error) {
	res := domain.Result{Action: domain.ActionEdit}

	old, updated, err := s.vocab.Edit(path, category, index, english, meaning)
	if err != nil {
		res.Message = err.Error()
		return res, err
	}
	res.English = updated.English
	res.Applied = true
	res.Message = fmt.Sprintf("edited %q", updated.English)

	wasFavorite, err := s.isFavorite(old, category)
	if err != nil {
		return res, err
	}
	if !wasFavorite {
		return res, nil
	}
	res.Favorite = true

	cleared, errs := s.unfavorite(old.English)
	if _, err := s.ledger.Add(updated.English, updated.Meanings...); err != nil {
		errs = multierr.Append(errs, err)
	}
	if category.Policy().Marker != domain.MarkerNone {
		errs = multierr.Append(errs, s.remark(path, category, index, updated.English))
	}

	// The edited record itself is re-marked, so it is not reported as cleared.
	res.Cleared = excludeLocation(cleared, path, index)
	if errs != nil {
		return res, fmt.Errorf("word edited but favorites not fully updated: %w", errs)
	}
	return res, nil
}

// ToggleFavorite flips the favorite status of the record at index
func (s *SyncService) ToggleFavorite(path string, category domain.Category, index int) (domain.Result, error) {
	if category == domain.CategoryFavorites {
		entry, err := s.ledgerEntryAt(path, index)
		if err != nil {
			return domain.Result{Action: domain.ActionUnfavorite, Message: err.Error()}, err
		}
		return s.RemoveFromLedger(entry.English)
	}

	f, err := s.vocab.Open(path, category)
	if err != nil {
		return domain.Result{Action: domain.ActionFavorite, Message: err.Error()}, err
	}
	rec, err := f.Record(index)
	if err != nil {
		return domain.Result{Action: domain.ActionFavorite, Message: err.Error()}, err
	}
	favorite, err := s.isFavorite(rec, category)
	if err != nil {
		return domain.Result{Action: domain.ActionFavorite, English: rec.English, Message: err.Error()}, err
	}

	if domain.StateOf(rec, category, favorite).Next() == domain.StateFavorited {
		return s.favorite(f, index, rec)
	}
	return s.unfavoriteRecord(f, index, rec)
}

func (s *SyncService) favorite(f *domain.VocabularyFile, index int, rec domain.WordRecord) (domain.Result, error) {
	res := domain.Result{Action: domain.ActionFavorite, English: rec.English}

	if f.Category.Policy().Marker != domain.MarkerNone {
		rec.Favorite = true
		_ = f.Set(index, rec)
		if err := s.vocab.Commit(f); err != nil {
			res.Message = err.Error()
			return res, err
		}
		res.Applied = true
	}

	if _, err := s.ledger.Add(rec.English, rec.Meanings...); err != nil {
		res.Message = err.Error()
		if res.Applied {
			return res, fmt.Errorf("marker set but favorites not updated: %w", err)
		}
		return res, err
	}

	res.Applied = true
	res.Favorite = true
	res.Message = fmt.Sprintf("%q added to favorites", rec.English)
	s.logger.Info("Word favorited", zap.String("path", f.Path), zap.String("english", rec.English))
	return res, nil
}

func (s *SyncService) unfavoriteRecord(f *domain.VocabularyFile, index int, rec domain.WordRecord) (domain.Result, error) {
	res := domain.Result{Action: domain.ActionUnfavorite, English: rec.English}

	if f.Category.Policy().Marker != domain.MarkerNone {
		rec.Favorite = false
		_ = f.Set(index, rec)
		if err := s.vocab.Commit(f); err != nil {
			res.Message = err.Error()
			return res, err
		}
	}

	cleared, err := s.unfavorite(rec.English)
	res.Applied = true
	res.Cleared = cleared
	res.Message = fmt.Sprintf("%q removed from favorites", rec.English)
	s.logger.Info("Word unfavorited", zap.String("path", f.Path), zap.String("english", rec.English))
	return res, err
}

// RemoveFromLedger drops english from the ledger and clears its markers everywhere
func (s *SyncService) RemoveFromLedger(english string) (domain.Result, error) {
	res := domain.Result{Action: domain.ActionUnfavorite, English: english}

	removed, err := s.ledger.Remove(english)
	if err != nil {
		res.Message = err.Error()
		return res, err
	}
	res.Applied = true
	if removed {
		res.Message = fmt.Sprintf("%q removed from favorites", english)
	} else {
		res.Message = fmt.Sprintf("%q was not in favorites", english)
	}

	cleared, err := s.ScanAndClear(english)
	res.Cleared = cleared
	return res, err
}

// ScanAndClear strips the marker of english from every scanned file.
// Missing directories are skipped; a failing file does not stop the scan
// and all failures are returned together.
func (s *SyncService) ScanAndClear(english string) ([]domain.Location, error) {
	var (
		cleared []domain.Location
		errs    error
	)

	err := s.walk(func(f *domain.VocabularyFile) {
		var hits []domain.Location
		f.Update(func(index int, rec *domain.WordRecord) bool {
			if !rec.Favorite || !rec.Is(english) {
				return false
			}
			rec.Favorite = false
			hits = append(hits, domain.Location{
				Path:     f.Path,
				Category: f.Category,
				Index:    index,
				English:  rec.English,
			})
			return true
		})
		if len(hits) == 0 {
			return
		}
		if err := s.vocab.Commit(f); err != nil {
			s.logger.Warn("Failed to clear stale marker", zap.String("path", f.Path), zap.Error(err))
			errs = multierr.Append(errs, err)
			return
		}
		cleared = append(cleared, hits...)
	})
	errs = multierr.Append(err, errs)

	s.logger.Info("Stale markers cleared",
		zap.String("english", english),
		zap.Int("cleared", len(cleared)),
		zap.Int("failed", len(multierr.Errors(errs))),
	)
	return cleared, errs
}

// Locate returns every marker of english in the scanned files
func (s *SyncService) Locate(english string) ([]domain.Location, error) {
	marked, err := s.Markers()
	var locations []domain.Location
	for _, m := range marked {
		if m.Record.Is(english) {
			locations = append(locations, m.Location)
		}
	}
	return locations, err
}

// Markers returns every marked record in the scanned files
func (s *SyncService) Markers() ([]Marked, error) {
	var marked []Marked
	err := s.walk(func(f *domain.VocabularyFile) {
		for i, rec := range f.Records() {
			if !rec.Favorite {
				continue
			}
			marked = append(marked, Marked{
				Location: domain.Location{Path: f.Path, Category: f.Category, Index: i, English: rec.English},
				Record:   rec,
			})
		}
	})
	return marked, err
}

// walk opens every file of the scan roots in order. Files that cannot be
// listed or read are reported but do not stop the walk.
func (s *SyncService) walk(visit func(f *domain.VocabularyFile)) error {
	var errs error
	for _, root := range s.roots {
		paths, err := s.files.ListFiles(root.Dir, scanPattern)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			s.logger.Warn("Failed to list files", zap.String("dir", root.Dir), zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}

		for _, path := range paths {
			f, err := s.vocab.Open(path, root.Category)
			if err != nil {
				s.logger.Warn("Failed to read file", zap.String("path", path), zap.Error(err))
				errs = multierr.Append(errs, err)
				continue
			}
			visit(f)
		}
	}
	return errs
}

// unfavorite removes english from the ledger and clears its markers
func (s *SyncService) unfavorite(english string) ([]domain.Location, error) {
	var errs error
	if _, err := s.ledger.Remove(english); err != nil {
		errs = multierr.Append(errs, err)
	}
	cleared, err := s.ScanAndClear(english)
	return cleared, multierr.Append(errs, err)
}

// remark sets the marker on the record at index if it is still keyed by english
func (s *SyncService) remark(path string, category domain.Category, index int, english string) error {
	f, err := s.vocab.Open(path, category)
	if err != nil {
		return err
	}
	rec, err := f.Record(index)
	if err != nil {
		return err
	}
	if !rec.Is(english) || rec.Favorite {
		return nil
	}
	rec.Favorite = true
	_ = f.Set(index, rec)
	return s.vocab.Commit(f)
}

func (s *SyncService) isFavorite(rec domain.WordRecord, category domain.Category) (bool, error) {
	if !category.Policy().LedgerDerived {
		return rec.Favorite, nil
	}
	return s.ledger.Contains(rec.English)
}

func (s *SyncService) ledgerEntryAt(path string, index int) (domain.WordRecord, error) {
	f, err := s.vocab.Open(path, domain.CategoryFavorites)
	if err != nil {
		return domain.WordRecord{}, err
	}
	return f.Record(index)
}

func excludeLocation(locations []domain.Location, path string, index int) []domain.Location {
	var out []domain.Location
	for _, l := range locations {
		if filepath.Clean(l.Path) == filepath.Clean(path) && l.Index == index {
			continue
		}
		out = append(out, l)
	}
	return out
}
