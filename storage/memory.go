package storage

import (
	"context"
	"encoding/json"

	"bitbucket.org/mmdatafocus/roserial_backend/models"
)

// MemoryStore is the in-process test double. It round-trips through JSON so
// tests observe the same serialization behavior as the durable backends.
type MemoryStore struct {
	data []byte
	// SaveErr, when set, fails the next Save (for atomicity tests).
	SaveErr error
	Saves   int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) (*models.Snapshot, bool, error) {
	if s.data == nil {
		return nil, false, nil
	}
	var snap models.Snapshot
	if err := json.Unmarshal(s.data, &snap); err != nil {
		return nil, false, err
	}
	return &snap, true, nil
}

func (s *MemoryStore) Save(ctx context.Context, snap *models.Snapshot) error {
	if s.SaveErr != nil {
		err := s.SaveErr
		s.SaveErr = nil
		return err
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	s.data = data
	s.Saves++
	return nil
}

func (s *MemoryStore) Reset(ctx context.Context) error {
	s.data = nil
	return nil
}

// Corrupt overwrites the stored blob with undecodable bytes.
func (s *MemoryStore) Corrupt() {
	s.data = []byte("{not json")
}
