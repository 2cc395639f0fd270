package service

import (
	"vocabook/internal/domain"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// IssueKind classifies an inconsistency between markers and the ledger
type IssueKind string

const (
	// IssueStaleMarker is a marker whose word is not in the ledger.
	IssueStaleMarker IssueKind = "stale-marker"
	// IssueMissingMeaning is a marked record with meanings the ledger entry lacks.
	IssueMissingMeaning IssueKind = "missing-meaning"
)

// Issue is one inconsistency found by Check
type Issue struct {
	Kind     IssueKind       `yaml:"kind"`
	Location domain.Location `yaml:"location"`
	Missing  []string        `yaml:"missing,omitempty"`
}

// Report summarises a consistency pass
type Report struct {
	Markers  int     `yaml:"markers"`
	Entries  int     `yaml:"entries"`
	Issues   []Issue `yaml:"issues"`
	Repaired int     `yaml:"repaired"`
}

// ConsistencyService detects and repairs drift between markers and the ledger
type ConsistencyService struct {
	sync   *SyncService
	ledger *LedgerService
	logger *zap.Logger
}

// NewConsistencyService creates a new consistency service
func NewConsistencyService(sync *SyncService, ledger *LedgerService, logger *zap.Logger) *ConsistencyService {
	return &ConsistencyService{
		sync:   sync,
		ledger: ledger,
		logger: logger,
	}
}

// Check compares every marker in the scanned files against the ledger
func (s *ConsistencyService) Check() (Report, error) {
	s.logger.Info("Starting consistency check")

	entries, err := s.ledger.List()
	if err != nil {
		s.logger.Error("Failed to read favorites", zap.Error(err))
		return Report{}, err
	}
	byKey := make(map[string]domain.WordRecord, len(entries))
	for _, e := range entries {
		byKey[e.Key()] = e
	}

	marked, scanErr := s.sync.Markers()
	report := Report{Markers: len(marked), Entries: len(entries)}

	for _, m := range marked {
		entry, ok := byKey[m.Record.Key()]
		if !ok {
			report.Issues = append(report.Issues, Issue{Kind: IssueStaleMarker, Location: m.Location})
			continue
		}
		var missing []string
		for _, meaning := range m.Record.Meanings {
			if !entry.HasMeaning(meaning) {
				missing = append(missing, meaning)
			}
		}
		if len(missing) > 0 {
			report.Issues = append(report.Issues, Issue{
				Kind:     IssueMissingMeaning,
				Location: m.Location,
				Missing:  missing,
			})
		}
	}

	s.logger.Info("Consistency check completed",
		zap.Int("markers", report.Markers),
		zap.Int("issues", len(report.Issues)),
	)
	return report, scanErr
}

// Repair runs Check and fixes what it found: stale markers are cleared and
// missing meanings are merged into the ledger.
func (s *ConsistencyService) Repair() (Report, error) {
	report, errs := s.Check()
	if len(report.Issues) == 0 {
		return report, errs
	}

	cleared := make(map[string]struct{})
	for _, issue := range report.Issues {
		switch issue.Kind {
		case IssueStaleMarker:
			key := domain.Fold(issue.Location.English)
			if _, done := cleared[key]; done {
				continue
			}
			cleared[key] = struct{}{}
			locations, err := s.sync.ScanAndClear(issue.Location.English)
			errs = multierr.Append(errs, err)
			report.Repaired += len(locations)
		case IssueMissingMeaning:
			if _, err := s.ledger.Add(issue.Location.English, issue.Missing...); err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			report.Repaired++
		}
	}

	if errs != nil {
		s.logger.Error("Repair finished with errors", zap.Int("repaired", report.Repaired), zap.Error(errs))
		return report, errs
	}
	s.logger.Info("Repair completed successfully", zap.Int("repaired", report.Repaired))
	return report, nil
}
