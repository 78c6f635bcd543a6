package session

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type memoryRecord struct {
	data      TokenData
	expiresAt time.Time
}

// MemoryStore is the in-process fallback used when no Redis is
// configured. Sessions do not survive a restart.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]memoryRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]memoryRecord)}
}

func (s *MemoryStore) SaveRefreshSession(_ context.Context, tokenHash, userID, role string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[tokenHash] = memoryRecord{
		data: TokenData{
			UserID:    userID,
			Role:      role,
			CreatedAt: time.Now(),
		},
		expiresAt: expiresAt,
	}
	return nil
}

func (s *MemoryStore) LookupRefreshSession(_ context.Context, tokenHash string) (TokenData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[tokenHash]
	if !ok || time.Now().After(record.expiresAt) {
		delete(s.records, tokenHash)
		return TokenData{}, fmt.Errorf("token not found or expired")
	}
	return record.data, nil
}

func (s *MemoryStore) RevokeRefreshSession(_ context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, tokenHash)
	return nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
