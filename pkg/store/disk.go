package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// Disk is a Store backed by diskv. A key `ns-rest` lives in the file
// `<base>/ns/rest`.
type Disk struct {
	d        *diskv.Diskv
	basePath string
}

var _ Store = (*Disk)(nil)
var _ Watcher = (*Disk)(nil)

// Load creates a diskv backed store using the provided config.
func Load(cfg Config) (*Disk, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &Disk{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

// BasePath is the directory holding the records.
func (s *Disk) BasePath() string {
	return s.basePath
}

func (s *Disk) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	val, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("store: read %s: %w", key, err)
	}
	return val, true, nil
}

func (s *Disk) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("store: key required")
	}
	if err := s.d.Write(key, value); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (s *Disk) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.d.Has(key) {
		return nil
	}
	if err := s.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

func (s *Disk) Keys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	keys := make([]string, 0)
	for key := range s.d.Keys(ctx.Done()) {
		keys = append(keys, key)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Disk) MultiGet(ctx context.Context, keys []string) ([]Pair, error) {
	out := make([]Pair, 0, len(keys))
	for _, key := range keys {
		val, ok, err := s.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if !ok {
			val = nil
		}
		out = append(out, Pair{Key: key, Value: val})
	}
	return out, nil
}

func keyToPathTransform(s string) *diskv.PathKey {
	ns, rest, ok := strings.Cut(s, "-")
	if !ok || ns == "" || rest == "" {
		return &diskv.PathKey{FileName: s}
	}
	return &diskv.PathKey{
		Path:     []string{ns},
		FileName: rest,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}
