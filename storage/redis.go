package storage

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/roserial_backend/config"
	"bitbucket.org/mmdatafocus/roserial_backend/models"
	"github.com/bsm/redislock"
)

const snapshotLockKey = "ledger:snapshot:lock"

// RedisStore keeps the snapshot blob under models.StorageKey in Redis.
// Saves are serialized with a redislock so two operators running cmd tools
// against the same instance cannot interleave read-modify-write cycles.
type RedisStore struct{}

func NewRedisStore() *RedisStore {
	return &RedisStore{}
}

func (s *RedisStore) Load(ctx context.Context) (*models.Snapshot, bool, error) {
	var snap models.Snapshot
	ok, err := config.GetRedisObject(models.StorageKey, &snap)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	return &snap, true, nil
}

func (s *RedisStore) Save(ctx context.Context, snap *models.Snapshot) error {
	release, err := s.acquireLock(ctx)
	if err != nil {
		return err
	}
	defer release()
	return config.SetRedisObject(models.StorageKey, snap, 0)
}

func (s *RedisStore) Reset(ctx context.Context) error {
	release, err := s.acquireLock(ctx)
	if err != nil {
		return err
	}
	defer release()
	return config.RemoveRedisKey(models.StorageKey)
}

func (s *RedisStore) acquireLock(ctx context.Context) (func(), error) {
	locker := config.GetRedisLock()
	if locker == nil {
		return func() {}, nil
	}
	lock, err := locker.Obtain(ctx, snapshotLockKey, 10*time.Second, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 50),
	})
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, errors.New("could not acquire snapshot lock")
		}
		return nil, err
	}
	return func() { _ = lock.Release(ctx) }, nil
}
