package storage

import (
	"fmt"
	json "github.com/goccy/go-json"
	"meetup/internal/providers"
	"meetup/internal/storage/interfaces"
	"os"
	"sync"
)

const snapshotVersion = 1

type fileSnapshot struct {
	Version int               `json:"version"`
	Entries map[string][]byte `json:"entries"`
}

// FileStore keeps every key in memory and rewrites a zstd-compressed JSON
// snapshot on each Set. Writes go to a temp file that is renamed into place.
type FileStore struct {
	mu         sync.Mutex
	path       string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	data       map[string][]byte
	closed     bool
}

func NewFileStore(path string, compressor interfaces.CompressorInterface, logger providers.Logger) (*FileStore, error) {
	fs := &FileStore{
		path:       path,
		compressor: compressor,
		logger:     logger,
		data:       make(map[string][]byte),
	}
	if err := fs.load(); err != nil {
		return nil, err
	}
	return fs, nil
}

func (f *FileStore) load() error {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressed, err := f.compressor.Decompress(raw)
	if err != nil {
		return fmt.Errorf("decompress %s: %w", f.path, err)
	}

	var snap fileSnapshot
	if err := json.Unmarshal(decompressed, &snap); err != nil {
		return fmt.Errorf("decode %s: %w", f.path, err)
	}
	if snap.Version != snapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d in %s", snap.Version, f.path)
	}
	if snap.Entries != nil {
		f.data = snap.Entries
	}
	f.logger.Infof(providers.TypeStore, "Loaded %d keys from %s", len(f.data), f.path)
	return nil
}

func (f *FileStore) Get(key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, false, ErrClosed
	}
	val, ok := f.data[key]
	return cloneBytes(val), ok, nil
}

// Set updates key and flushes the snapshot. If the flush fails the previous
// value is restored so memory and disk stay in step.
func (f *FileStore) Set(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}

	prev, existed := f.data[key]
	f.data[key] = cloneBytes(value)

	if err := f.flush(); err != nil {
		if existed {
			f.data[key] = prev
		} else {
			delete(f.data, key)
		}
		return err
	}
	return nil
}

func (f *FileStore) flush() error {
	jsonData, err := json.Marshal(fileSnapshot{Version: snapshotVersion, Entries: f.data})
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := f.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, f.path)
}

func (f *FileStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	f.compressor.Close()
	return nil
}
