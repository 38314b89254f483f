package storage

import (
	"context"
	"os"
	"strings"

	"bitbucket.org/mmdatafocus/roserial_backend/models"
)

// SnapshotStore persists the whole ledger aggregate as one blob under the
// fixed storage key. Writes are synchronous; a Save that returns nil must
// have durably replaced the previous blob.
type SnapshotStore interface {
	// Load returns the stored snapshot. ok is false when no blob exists.
	// A blob that cannot be decoded is an error; callers fall back to the
	// default catalog.
	Load(ctx context.Context) (snap *models.Snapshot, ok bool, err error)
	Save(ctx context.Context, snap *models.Snapshot) error
	// Reset removes the stored blob entirely.
	Reset(ctx context.Context) error
}

const (
	ProviderFile   = "file"
	ProviderRedis  = "redis"
	ProviderMySQL  = "mysql"
	ProviderMemory = "memory"
)

func GetStorageProvider() string {
	provider := strings.TrimSpace(strings.ToLower(os.Getenv("STORAGE_PROVIDER")))
	if provider == "" {
		return ProviderFile
	}
	return provider
}

// NewFromEnv builds the snapshot store selected by STORAGE_PROVIDER.
// The redis and mysql providers expect the corresponding config connector
// to have been called first.
func NewFromEnv() SnapshotStore {
	switch GetStorageProvider() {
	case ProviderRedis:
		return NewRedisStore()
	case ProviderMySQL:
		return NewMySQLStore()
	case ProviderMemory:
		return NewMemoryStore()
	default:
		path := strings.TrimSpace(os.Getenv("LEDGER_DB_PATH"))
		if path == "" {
			path = "ro_master_db.json"
		}
		return NewFileStore(path)
	}
}
