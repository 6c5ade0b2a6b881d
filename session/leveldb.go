package session

import (
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	lerrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

const (
	// minCache is the smallest read/write cache, in MB, given to leveldb.
	minCache = 8
	// minHandles is the smallest number of open file handles given to leveldb.
	minHandles = 16
)

// LevelDBBackend persists session keys in a LevelDB directory.
type LevelDBBackend struct {
	db *leveldb.DB
}

// OpenLevelDB opens (or creates) a LevelDB store at path, recovering a corrupted
// database when possible.
func OpenLevelDB(path string) (*LevelDBBackend, error) {
	options := &opt.Options{
		OpenFilesCacheCapacity: minHandles,
		BlockCacheCapacity:     minCache / 2 * opt.MiB,
		WriteBuffer:            minCache / 4 * opt.MiB,
	}
	db, err := leveldb.OpenFile(path, options)
	if _, corrupted := err.(*lerrors.ErrCorrupted); corrupted {
		db, err = leveldb.RecoverFile(path, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("open session db %s: %w", path, err)
	}
	return &LevelDBBackend{db: db}, nil
}

func (l *LevelDBBackend) Get(key string) (string, bool, error) {
	v, err := l.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return string(v), true, nil
}

func (l *LevelDBBackend) Apply(ops []Op) error {
	batch := new(leveldb.Batch)
	for _, op := range ops {
		if op.Delete {
			batch.Delete([]byte(op.Key))
			continue
		}
		batch.Put([]byte(op.Key), []byte(op.Value))
	}
	if err := l.db.Write(batch, &opt.WriteOptions{Sync: true}); err != nil {
		return fmt.Errorf("write session batch: %w", err)
	}
	return nil
}

func (l *LevelDBBackend) Close() error {
	return l.db.Close()
}
