package driver

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"sjavac/internal/diag"
	"sjavac/internal/project"
	"sjavac/internal/source"
	"sjavac/internal/version"
)

// Current schema version - increment when CachePayload format changes
const cacheSchemaVersion uint16 = 2

// DiskCache хранит вердикты по хешу содержимого файла.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachePayload is the stored verdict for one file content.
type CachePayload struct {
	Schema   uint16
	Path     string
	Outcome  uint8
	Code     uint16
	Subjects []string
	Line     uint32
	Notes    []CacheNote
}

// CacheNote mirrors diag.LineNote.
type CacheNote struct {
	Line uint32
	Msg  string
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir, creating it if needed.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key project.Digest) string {
	// Вердикты лежат в подкаталоге "verdicts".
	return filepath.Join(c.dir, "verdicts", key.Hex()+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *CachePayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
// Payloads written by another schema count as misses.
func (c *DiskCache) Get(key project.Digest, out *CachePayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() { _ = f.Close() }()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Schema == cacheSchemaVersion, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// cacheKey binds the file content to the checker version.
func cacheKey(f *source.File) project.Digest {
	return project.Combine(project.Digest(f.Hash), version.Version, strconv.Itoa(int(cacheSchemaVersion)))
}

func payloadFor(r *Report) *CachePayload {
	p := &CachePayload{Schema: cacheSchemaVersion, Path: r.Path, Outcome: uint8(r.Outcome)}
	if de, ok := diag.AsError(r.Err); ok {
		p.Code = uint16(de.Code)
		p.Subjects = de.Subjects
		p.Line = de.Line
		for _, n := range de.Notes {
			p.Notes = append(p.Notes, CacheNote{Line: n.Line, Msg: n.Msg})
		}
	}
	return p
}

// verdict restores the checker error recorded in p, nil for legal files.
func (p *CachePayload) verdict() error {
	if Outcome(p.Outcome) == Legal {
		return nil
	}
	err := diag.At(p.Line, diag.Code(p.Code), p.Subjects...)
	for _, n := range p.Notes {
		err = err.WithNote(n.Line, n.Msg)
	}
	return err
}
