package services

import (
	"fmt"
	"sync"
)

// MockS3Service is a mock implementation of S3Service for testing
type MockS3Service struct {
	uploadedObjects map[string][]byte // map of S3 key to object content
	mu              sync.RWMutex
}

// NewMockS3Service creates a new mock S3 service
func NewMockS3Service() *MockS3Service {
	return &MockS3Service{
		uploadedObjects: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global S3 service instance for testing
func (m *MockS3Service) SetAsMockForTesting() {
	SetS3Service(m)
}

// UploadObject simulates uploading an export file to S3
func (m *MockS3Service) UploadObject(filename string, content []byte, contentType string) (string, error) {
	s3Key := fmt.Sprintf("exports/mock_%s", filename)

	stored := make([]byte, len(content))
	copy(stored, content)

	m.mu.Lock()
	m.uploadedObjects[s3Key] = stored
	m.mu.Unlock()

	return s3Key, nil
}

// GetPresignedURL simulates generating a presigned URL
func (m *MockS3Service) GetPresignedURL(s3Key string) (string, error) {
	if s3Key == "" {
		return "", nil
	}

	m.mu.RLock()
	_, exists := m.uploadedObjects[s3Key]
	m.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("object not found in mock S3: %s", s3Key)
	}

	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s?mock=true", s3Key), nil
}

// DeleteObject simulates deleting an object from S3
func (m *MockS3Service) DeleteObject(s3Key string) error {
	if s3Key == "" {
		return nil
	}

	m.mu.Lock()
	delete(m.uploadedObjects, s3Key)
	m.mu.Unlock()

	return nil
}

// GetUploadedObjects returns all uploaded objects (for testing assertions)
func (m *MockS3Service) GetUploadedObjects() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	objects := make(map[string][]byte, len(m.uploadedObjects))
	for k, v := range m.uploadedObjects {
		objects[k] = v
	}
	return objects
}

// ObjectExists checks if an object exists in mock storage
func (m *MockS3Service) ObjectExists(s3Key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.uploadedObjects[s3Key]
	return exists
}

// Clear removes all objects from mock storage
func (m *MockS3Service) Clear() {
	m.mu.Lock()
	m.uploadedObjects = make(map[string][]byte)
	m.mu.Unlock()
}
