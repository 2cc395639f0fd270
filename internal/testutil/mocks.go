package testutil

import (
	"github.com/stretchr/testify/mock"
)

// MockFileRepository is a mock for FileRepository
type MockFileRepository struct {
	mock.Mock
}

func (m *MockFileRepository) ReadLines(path string) ([]string, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFileRepository) WriteLines(path string, lines []string) error {
	args := m.Called(path, lines)
	return args.Error(0)
}

func (m *MockFileRepository) ListFiles(dir, pattern string) ([]string, error) {
	args := m.Called(dir, pattern)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
