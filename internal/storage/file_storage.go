// internal/storage/file_storage.go
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// FileStorage persists JSON documents under a base directory with per-path
// RW locks and a small TTL read cache. Writes are atomic (temp file + rename).
type FileStorage struct {
	BaseDir string

	fileLocks sync.Map // full path -> *sync.RWMutex

	cache        map[string]*CacheEntry
	cacheMutex   sync.RWMutex
	cacheExpiry  time.Duration
	maxCacheSize int

	stopCleanup chan struct{}
}

// CacheEntry is one cached file read.
type CacheEntry struct {
	Data      []byte
	Timestamp time.Time
}

// NewFileStorage creates a file storage rooted at baseDir.
func NewFileStorage(baseDir string) (*FileStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	fs := &FileStorage{
		BaseDir:      baseDir,
		cache:        make(map[string]*CacheEntry),
		cacheExpiry:  5 * time.Minute,
		maxCacheSize: 100,
		stopCleanup:  make(chan struct{}),
	}

	fs.startCacheCleanup()

	return fs, nil
}

func (fs *FileStorage) getFileLock(fullPath string) *sync.RWMutex {
	value, _ := fs.fileLocks.LoadOrStore(fullPath, &sync.RWMutex{})
	return value.(*sync.RWMutex)
}

// SaveTextFile writes content to dirPath/filename atomically.
func (fs *FileStorage) SaveTextFile(dirPath, filename string, content []byte) error {
	fullDirPath := filepath.Join(fs.BaseDir, dirPath)
	fullPath := filepath.Join(fullDirPath, filename)

	lock := fs.getFileLock(fullPath)
	lock.Lock()
	defer lock.Unlock()

	if err := os.MkdirAll(fullDirPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tempPath := fullPath + ".tmp"

	if err := os.WriteFile(tempPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tempPath, fullPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save file: %w", err)
	}

	fs.invalidateCache(fullPath)

	return nil
}

// SaveJSONFile marshals data and writes it to dirPath/filename.
func (fs *FileStorage) SaveJSONFile(dirPath, filename string, data interface{}) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize JSON: %w", err)
	}

	return fs.SaveTextFile(dirPath, filename, content)
}

// LoadTextFile reads dirPath/filename, served from cache when fresh.
func (fs *FileStorage) LoadTextFile(dirPath, filename string) ([]byte, error) {
	fullPath := filepath.Join(fs.BaseDir, dirPath, filename)

	fs.cacheMutex.RLock()
	if entry, exists := fs.cache[fullPath]; exists {
		if time.Since(entry.Timestamp) < fs.cacheExpiry {
			fs.cacheMutex.RUnlock()
			return entry.Data, nil
		}
	}
	fs.cacheMutex.RUnlock()

	lock := fs.getFileLock(fullPath)
	lock.RLock()
	defer lock.RUnlock()

	content, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	fs.updateCache(fullPath, content)

	return content, nil
}

// LoadJSONFile reads and unmarshals dirPath/filename into v.
func (fs *FileStorage) LoadJSONFile(dirPath, filename string, v interface{}) error {
	content, err := fs.LoadTextFile(dirPath, filename)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(content, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	return nil
}

// DirExists reports whether dirPath exists under the base directory.
func (fs *FileStorage) DirExists(dirPath string) bool {
	info, err := os.Stat(filepath.Join(fs.BaseDir, dirPath))
	if err != nil {
		return false
	}
	return info.IsDir()
}

// FileExists reports whether dirPath/filename exists.
func (fs *FileStorage) FileExists(dirPath, filename string) bool {
	_, err := os.Stat(filepath.Join(fs.BaseDir, dirPath, filename))
	return err == nil
}

// ListDirs returns the names of subdirectories of dirPath, sorted.
func (fs *FileStorage) ListDirs(dirPath string) ([]string, error) {
	fullPath := filepath.Join(fs.BaseDir, dirPath)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	return names, nil
}

// DeleteFile removes dirPath/filename.
func (fs *FileStorage) DeleteFile(dirPath, filename string) error {
	fullPath := filepath.Join(fs.BaseDir, dirPath, filename)

	lock := fs.getFileLock(fullPath)
	lock.Lock()
	defer lock.Unlock()

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", fullPath)
	}

	if err := os.Remove(fullPath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	fs.invalidateCache(fullPath)

	return nil
}

// DeleteDir removes dirPath and everything under it.
func (fs *FileStorage) DeleteDir(dirPath string) error {
	fullPath := filepath.Join(fs.BaseDir, dirPath)

	lock := fs.getFileLock(fullPath)
	lock.Lock()
	defer lock.Unlock()

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return fmt.Errorf("directory does not exist: %s", fullPath)
	}

	if err := os.RemoveAll(fullPath); err != nil {
		return fmt.Errorf("failed to delete directory: %w", err)
	}

	fs.removeCacheEntriesWithPrefix(fullPath)

	return nil
}

func (fs *FileStorage) updateCache(path string, data []byte) {
	fs.cacheMutex.Lock()
	defer fs.cacheMutex.Unlock()

	fs.cache[path] = &CacheEntry{
		Data:      data,
		Timestamp: time.Now(),
	}

	if len(fs.cache) > fs.maxCacheSize {
		var oldestKey string
		var oldestTime time.Time

		for key, entry := range fs.cache {
			if oldestKey == "" || entry.Timestamp.Before(oldestTime) {
				oldestKey = key
				oldestTime = entry.Timestamp
			}
		}

		if oldestKey != "" {
			delete(fs.cache, oldestKey)
		}
	}
}

func (fs *FileStorage) invalidateCache(path string) {
	fs.cacheMutex.Lock()
	defer fs.cacheMutex.Unlock()

	delete(fs.cache, path)
}

func (fs *FileStorage) removeCacheEntriesWithPrefix(prefix string) {
	fs.cacheMutex.Lock()
	defer fs.cacheMutex.Unlock()

	for key := range fs.cache {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(fs.cache, key)
		}
	}
}

func (fs *FileStorage) startCacheCleanup() {
	ticker := time.NewTicker(fs.cacheExpiry)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				fs.cacheMutex.Lock()
				now := time.Now()
				for key, entry := range fs.cache {
					if now.Sub(entry.Timestamp) > fs.cacheExpiry {
						delete(fs.cache, key)
					}
				}
				fs.cacheMutex.Unlock()
			case <-fs.stopCleanup:
				return
			}
		}
	}()
}

// Close stops the background cache cleanup.
func (fs *FileStorage) Close() {
	close(fs.stopCleanup)
}
