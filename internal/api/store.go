package api

import (
	"sync"

	"github.com/google/uuid"
)

// MaskStore keeps computed masks in memory, keyed by ID.
type MaskStore struct {
	mu    sync.Mutex
	masks map[string]MaskRecord
}

func NewMaskStore() *MaskStore {
	return &MaskStore{
		masks: make(map[string]MaskRecord),
	}
}

// Put assigns an ID to rec, stores it and returns the stored copy.
func (s *MaskStore) Put(rec MaskRecord) MaskRecord {
	rec.ID = newMaskID()
	rec.Object = "mask"
	s.mu.Lock()
	s.masks[rec.ID] = rec
	s.mu.Unlock()
	return rec
}

func (s *MaskStore) Get(id string) (MaskRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.masks[id]
	return rec, ok
}

func (s *MaskStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.masks[id]; !ok {
		return false
	}
	delete(s.masks, id)
	return true
}

func (s *MaskStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.masks)
}

func newMaskID() string {
	return "mask_" + uuid.NewString()
}
