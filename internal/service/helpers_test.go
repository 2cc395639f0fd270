package service

import (
	"testing"

	"vocabook/internal/repository/textfile"
	"vocabook/internal/testutil"
)

type fixture struct {
	ws          *testutil.Workspace
	vocab       *VocabularyService
	ledger      *LedgerService
	sync        *SyncService
	consistency *ConsistencyService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ws := testutil.NewWorkspace(t, "alice")
	files := textfile.NewFileRepo()
	logger := testutil.NewTestLogger()

	vocab := NewVocabularyService(files, logger)
	ledger := NewLedgerService(vocab, ws.Layout.LedgerPath(), logger)
	sync := NewSyncService(vocab, ledger, files, ws.Layout.ScanRoots(), logger)

	return &fixture{
		ws:          ws,
		vocab:       vocab,
		ledger:      ledger,
		sync:        sync,
		consistency: NewConsistencyService(sync, ledger, logger),
	}
}
