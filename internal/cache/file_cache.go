package cache

import (
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/forest-guardian/landcover-samples/internal/properties"
)

type Entry[T any] struct {
	Data      T         `json:"data"`
	CreatedAt time.Time `json:"created_at"`
	Checksum  string    `json:"checksum"`
}

type Service[T any] interface {
	Get(key string) (T, bool)
	Set(key string, data T) error
	Delete(key string) error
	GenerateKey(params ...any) string
}

// FileCache stores one JSON document per key under a directory.
type FileCache[T any] struct {
	dir string
}

func NewFileCache[T any](dir string) *FileCache[T] {
	return &FileCache[T]{dir: dir}
}

// NewDataCache stores entries under ROOT_PATH/data/cache/<subDir>.
func NewDataCache[T any](subDir string) *FileCache[T] {
	return NewFileCache[T](properties.DataPath("cache", subDir))
}

func (fc *FileCache[T]) Dir() string {
	return fc.dir
}

func (fc *FileCache[T]) GenerateKey(params ...any) string {
	var keyData string
	for _, param := range params {
		keyData += fmt.Sprintf("%v_", param)
	}
	h := sha1.New()
	h.Write([]byte(keyData))
	return hex.EncodeToString(h.Sum(nil))
}

// FileKey is GenerateKey with the size and modification time of every
// path mixed in, so that a changed input invalidates the entry.
func (fc *FileCache[T]) FileKey(paths []string, params ...any) (string, error) {
	all := make([]any, 0, len(paths)*3+len(params))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return "", err
		}
		all = append(all, p, info.Size(), info.ModTime().UnixNano())
	}
	all = append(all, params...)
	return fc.GenerateKey(all...), nil
}

func (fc *FileCache[T]) path(key string) string {
	return filepath.Join(fc.dir, key+".json")
}

func (fc *FileCache[T]) Get(key string) (T, bool) {
	var zero T
	data, err := os.ReadFile(fc.path(key))
	if err != nil {
		return zero, false
	}

	var entry Entry[T]
	if err := json.Unmarshal(data, &entry); err != nil {
		return zero, false
	}
	if entry.Checksum != fc.checksum(entry.Data) {
		return zero, false
	}
	return entry.Data, true
}

func (fc *FileCache[T]) Set(key string, data T) error {
	if err := os.MkdirAll(fc.dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	entry := Entry[T]{
		Data:      data,
		CreatedAt: time.Now(),
		Checksum:  fc.checksum(data),
	}
	jsonData, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	cacheFile := fc.path(key)
	tmpFile := cacheFile + ".tmp"
	if err := os.WriteFile(tmpFile, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write temp cache file: %w", err)
	}
	if err := os.Rename(tmpFile, cacheFile); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to rename temp cache file: %w", err)
	}
	return nil
}

func (fc *FileCache[T]) Delete(key string) error {
	err := os.Remove(fc.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (fc *FileCache[T]) checksum(data T) string {
	jsonData, _ := json.Marshal(data)
	hash := md5.Sum(jsonData)
	return hex.EncodeToString(hash[:])
}
