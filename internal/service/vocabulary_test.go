package service

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"vocabook/internal/domain"
	"vocabook/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestVocabularyService_LoadFile(t *testing.T) {
	fx := newFixture(t)

	t.Run("missing file is empty", func(t *testing.T) {
		records, err := fx.vocab.LoadFile(fx.ws.Layout.VocaPath("nothing"), domain.CategoryPersonal)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("malformed lines are skipped", func(t *testing.T) {
		path := fx.ws.Personal("mixed", "*apple\t사과", "no tab here", "banana\t바나나/버내너", "\t빈칸")

		records, err := fx.vocab.LoadFile(path, domain.CategoryPersonal)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, domain.WordRecord{English: "apple", Meanings: []string{"사과"}, Favorite: true}, records[0])
		assert.Equal(t, []string{"바나나", "버내너"}, records[1].Meanings)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := fx.vocab.LoadFile(fx.ws.Layout.VocaPath("x"), domain.Category("other"))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestVocabularyService_SaveFile_RoundTrip(t *testing.T) {
	fx := newFixture(t)

	tests := []struct {
		name     string
		path     string
		category domain.Category
		lines    []string
	}{
		{
			name:     "personal",
			path:     fx.ws.Layout.VocaPath("myvoca"),
			category: domain.CategoryPersonal,
			lines:    []string{"*apple\t사과", "banana\t바나나/버내너", "ice cream\t아이스크림"},
		},
		{
			name:     "note",
			path:     fx.ws.Layout.NotePath("note-20240101_10_00_00"),
			category: domain.CategoryNote,
			lines:    []string{"apple*\t사과", "well-known\t잘 알려진"},
		},
		{
			name:     "public with quiz counters",
			path:     fx.ws.Layout.PublicPath(),
			category: domain.CategoryPublic,
			lines:    []string{"apple\t사과\t3\t2", "pear\t배"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx.ws.Write(tt.path, tt.lines...)
			before, err := os.ReadFile(tt.path)
			require.NoError(t, err)

			records, err := fx.vocab.LoadFile(tt.path, tt.category)
			require.NoError(t, err)
			require.NoError(t, fx.vocab.SaveFile(tt.path, tt.category, records))

			after, err := os.ReadFile(tt.path)
			require.NoError(t, err)
			assert.Equal(t, string(before), string(after))
		})
	}
}

func TestVocabularyService_SaveFile_Rejects(t *testing.T) {
	fx := newFixture(t)
	path := fx.ws.Layout.VocaPath("bad")

	tests := []struct {
		name    string
		records []domain.WordRecord
		wantErr error
	}{
		{
			name: "duplicate english ignoring case",
			records: []domain.WordRecord{
				{English: "apple", Meanings: []string{"사과"}},
				{English: "APPLE", Meanings: []string{"능금"}},
			},
			wantErr: domain.ErrDuplicate,
		},
		{
			name:    "empty english",
			records: []domain.WordRecord{{English: " ", Meanings: []string{"사과"}}},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "no meanings",
			records: []domain.WordRecord{{English: "apple"}},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fx.vocab.SaveFile(path, domain.CategoryPersonal, tt.records)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, fx.ws.Read(path))
		})
	}
}

func TestVocabularyService_Add(t *testing.T) {
	tests := []struct {
		name        string
		category    domain.Category
		initial     []string
		english     string
		meaning     string
		wantCreated bool
		wantErr     error
		wantLines   []string
	}{
		{
			name:        "new word is appended unfavorited",
			category:    domain.CategoryPersonal,
			initial:     []string{"*apple\t사과"},
			english:     "banana",
			meaning:     "바나나",
			wantCreated: true,
			wantLines:   []string{"*apple\t사과", "banana\t바나나"},
		},
		{
			name:      "meaning merged case-insensitively",
			category:  domain.CategoryPersonal,
			initial:   []string{"*apple\t사과"},
			english:   "Apple",
			meaning:   "능금",
			wantLines: []string{"*apple\t사과/능금"},
		},
		{
			name:      "duplicate meaning is rejected without write",
			category:  domain.CategoryNote,
			initial:   []string{"apple*\t사과"},
			english:   "APPLE",
			meaning:   " 사과 ",
			wantErr:   domain.ErrDuplicate,
			wantLines: []string{"apple*\t사과"},
		},
		{
			name:        "missing file is created",
			category:    domain.CategoryNote,
			english:     "ice cream",
			meaning:     "아이스크림/빙과",
			wantCreated: true,
			wantLines:   []string{"ice cream\t아이스크림/빙과"},
		},
		{
			name:     "english with digits",
			category: domain.CategoryPersonal,
			english:  "b2b",
			meaning:  "기업간",
			wantErr:  domain.ErrValidation,
		},
		{
			name:     "english with marker",
			category: domain.CategoryPersonal,
			english:  "*apple",
			meaning:  "사과",
			wantErr:  domain.ErrValidation,
		},
		{
			name:     "empty meaning",
			category: domain.CategoryPersonal,
			english:  "apple",
			meaning:  " / ",
			wantErr:  domain.ErrValidation,
		},
		{
			name:     "ledger is read-only",
			category: domain.CategoryFavorites,
			english:  "apple",
			meaning:  "사과",
			wantErr:  domain.ErrReadOnly,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t)
			path := fx.ws.Layout.VocaPath("words")
			if len(tt.initial) > 0 {
				fx.ws.Write(path, tt.initial...)
			}

			rec, created, err := fx.vocab.Add(path, tt.category, tt.english, tt.meaning)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantCreated, created)
				assert.True(t, rec.Is(tt.english))
			}
			assert.Equal(t, tt.wantLines, fx.ws.Read(path))
		})
	}
}

func TestVocabularyService_Add_Idempotent(t *testing.T) {
	fx := newFixture(t)
	path := fx.ws.Personal("myvoca", "apple\t사과")

	_, _, err := fx.vocab.Add(path, domain.CategoryPersonal, "pear", "배")
	require.NoError(t, err)
	_, _, err = fx.vocab.Add(path, domain.CategoryPersonal, "pear", "배")
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	records, err := fx.vocab.LoadFile(path, domain.CategoryPersonal)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"배"}, records[1].Meanings)
}

func TestVocabularyService_Remove(t *testing.T) {
	fx := newFixture(t)
	path := fx.ws.Personal("myvoca", "*apple\t사과", "garbage", "banana\t바나나")

	rec, err := fx.vocab.Remove(path, domain.CategoryPersonal, 1)
	require.NoError(t, err)
	assert.Equal(t, "banana", rec.English)
	assert.Equal(t, []string{"*apple\t사과", "garbage"}, fx.ws.Read(path))

	_, err = fx.vocab.Remove(path, domain.CategoryPersonal, 5)
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)

	_, err = fx.vocab.Remove(path, domain.CategoryPersonal, -1)
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
}

func TestVocabularyService_Edit(t *testing.T) {
	initial := []string{"*apple\t사과", "banana\t바나나"}

	tests := []struct {
		name       string
		index      int
		english    string
		meaning    string
		wantErr    error
		wantLines  []string
		wantOldEng string
	}{
		{
			name:       "rename keeps marker and meanings",
			index:      0,
			english:    "green apple",
			wantLines:  []string{"*green apple\t사과", "banana\t바나나"},
			wantOldEng: "apple",
		},
		{
			name:       "meaning replaces the set",
			index:      1,
			meaning:    "바나나/파초",
			wantLines:  []string{"*apple\t사과", "banana\t바나나/파초"},
			wantOldEng: "banana",
		},
		{
			name:       "case change of the same record",
			index:      0,
			english:    "Apple",
			wantLines:  []string{"*Apple\t사과", "banana\t바나나"},
			wantOldEng: "apple",
		},
		{
			name:      "collision with another record",
			index:     1,
			english:   "APPLE",
			wantErr:   domain.ErrCollision,
			wantLines: initial,
		},
		{
			name:      "invalid english",
			index:     1,
			english:   "ban\tana",
			wantErr:   domain.ErrValidation,
			wantLines: initial,
		},
		{
			name:      "index out of range",
			index:     2,
			english:   "cherry",
			wantErr:   domain.ErrIndexOutOfRange,
			wantLines: initial,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t)
			path := fx.ws.Personal("myvoca", initial...)

			old, _, err := fx.vocab.Edit(path, domain.CategoryPersonal, tt.index, tt.english, tt.meaning)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantOldEng, old.English)
			}
			assert.Equal(t, tt.wantLines, fx.ws.Read(path))
		})
	}
}

func TestVocabularyService_Search(t *testing.T) {
	fx := newFixture(t)
	path := fx.ws.Public("apple\t사과", "pineapple\t파인애플", "pear\t배", "Grape\t포도")

	tests := []struct {
		name    string
		query   string
		indexes []int
	}{
		{name: "english substring", query: "APPLE", indexes: []int{0, 1}},
		{name: "meaning substring", query: "포", indexes: []int{3}},
		{name: "no match", query: "kiwi", indexes: nil},
		{name: "empty query", query: "", indexes: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := fx.vocab.Search(path, domain.CategoryPublic, tt.query)
			require.NoError(t, err)

			var got []int
			for _, m := range matches {
				got = append(got, m.Index)
			}
			assert.Equal(t, tt.indexes, got)
		})
	}
}

func TestVocabularyService_SaveNote(t *testing.T) {
	fx := newFixture(t)
	at := time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local)

	path, err := fx.vocab.SaveNote(fx.ws.Layout.NoteDir(), at, []domain.WordRecord{
		{English: "apple", Meanings: []string{"사과"}, Favorite: true},
		{English: "pear", Meanings: []string{"배"}, Extra: []string{"1", "0"}},
		{English: "Apple", Meanings: []string{"능금", "사과"}},
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(fx.ws.Layout.NoteDir(), "note-20240309_14_05_07.txt"), path)
	assert.Equal(t, []string{"apple\t사과/능금", "pear\t배"}, fx.ws.Read(path))

	_, err = fx.vocab.SaveNote(fx.ws.Layout.NoteDir(), at, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestVocabularyService_WriteFailure(t *testing.T) {
	files := new(testutil.MockFileRepository)
	files.On("ReadLines", "words.txt").Return([]string{"apple\t사과"}, nil)
	files.On("WriteLines", "words.txt", mock.Anything).Return(fmt.Errorf("%w: disk full", domain.ErrIO))

	vocab := NewVocabularyService(files, testutil.NewTestLogger())

	_, _, err := vocab.Add("words.txt", domain.CategoryPersonal, "pear", "배")
	assert.ErrorIs(t, err, domain.ErrIO)

	files.AssertExpectations(t)
}
