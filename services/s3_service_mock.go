package services

import "sync"

// MockS3Service is a mock implementation of S3Service for testing
type MockS3Service struct {
	uploadedBackups map[string][]byte // map of S3 key to content
	mu              sync.RWMutex
}

// NewMockS3Service creates a new mock S3 service
func NewMockS3Service() *MockS3Service {
	return &MockS3Service{
		uploadedBackups: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global S3 service instance for testing
func (m *MockS3Service) SetAsMockForTesting() {
	SetS3Service(m)
}

// UploadBackup simulates uploading a backup document to S3
func (m *MockS3Service) UploadBackup(key string, content []byte) error {
	m.mu.Lock()
	m.uploadedBackups[key] = append([]byte(nil), content...)
	m.mu.Unlock()
	return nil
}

// GetUploadedBackups returns all uploaded backups (for testing assertions)
func (m *MockS3Service) GetUploadedBackups() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	backups := make(map[string][]byte, len(m.uploadedBackups))
	for k, v := range m.uploadedBackups {
		backups[k] = v
	}
	return backups
}

// Clear removes all backups from mock storage
func (m *MockS3Service) Clear() {
	m.mu.Lock()
	m.uploadedBackups = make(map[string][]byte)
	m.mu.Unlock()
}
