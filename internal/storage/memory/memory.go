package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/utafrali/reviewcarousel/internal/storage"
)

// Storage implements storage.Storage using an in-memory map. Files are
// served back from memory under <baseURL>/media/<key>.
type Storage struct {
	mu      sync.RWMutex
	files   map[string]*storage.Object
	baseURL string
	maxSize int64
}

// New creates an in-memory store. Uploads larger than maxSize bytes are
// rejected; zero means unlimited.
func New(baseURL string, maxSize int64) *Storage {
	return &Storage{
		files:   make(map[string]*storage.Object),
		baseURL: strings.TrimRight(baseURL, "/"),
		maxSize: maxSize,
	}
}

// Upload reads the file into memory and returns its public URL.
func (s *Storage) Upload(_ context.Context, input *storage.UploadInput) (*storage.UploadResult, error) {
	var buf bytes.Buffer
	src := input.Data
	if s.maxSize > 0 {
		src = io.LimitReader(src, s.maxSize+1)
	}
	if _, err := io.Copy(&buf, src); err != nil {
		return nil, fmt.Errorf("read upload %s: %w", input.Key, err)
	}
	if s.maxSize > 0 && int64(buf.Len()) > s.maxSize {
		return nil, fmt.Errorf("upload %s exceeds %d bytes", input.Key, s.maxSize)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.files[input.Key] = &storage.Object{
		Key:         input.Key,
		ContentType: input.ContentType,
		Data:        buf.Bytes(),
	}

	return &storage.UploadResult{
		Key: input.Key,
		URL: s.url(input.Key),
	}, nil
}

// Open returns the stored object for key.
func (s *Storage) Open(_ context.Context, key string) (*storage.Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, exists := s.files[key]
	if !exists {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, key)
	}
	return obj, nil
}

// Delete removes a file from memory.
func (s *Storage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.files[key]; !exists {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, key)
	}

	delete(s.files, key)
	return nil
}

// GetURL returns the URL for the given key.
func (s *Storage) GetURL(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, exists := s.files[key]; !exists {
		return "", fmt.Errorf("%w: %s", storage.ErrNotFound, key)
	}
	return s.url(key), nil
}

func (s *Storage) url(key string) string {
	return fmt.Sprintf("%s/media/%s", s.baseURL, key)
}
