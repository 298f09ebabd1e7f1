package mocks

import "github.com/stretchr/testify/mock"

// MockImportQueue is a mock implementation of jobs.ImportQueue
type MockImportQueue struct {
	mock.Mock
}

func (m *MockImportQueue) EnqueueImport(dataset string) error {
	args := m.Called(dataset)
	return args.Error(0)
}
