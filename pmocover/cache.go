// Package pmocover keeps the thumbnails advertised through DIDL-Lite.
// Sources (embedded covers, poster downloads, sidecar images) are
// normalized to a lossless WebP master; renderers then get per-profile
// JPEG/PNG variants generated on demand.
package pmocover

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"image"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Entry is one cached thumbnail master.
type Entry struct {
	PK       string `json:"pk"`
	Source   string `json:"source"`
	Hits     int    `json:"hits"`
	LastUsed string `json:"last_used"` // ISO8601
}

// Cache is the persistent thumbnail store.
type Cache struct {
	dir   string
	limit int
	db    *DB

	mu sync.Mutex
}

// NewCache opens or creates the cache directory and its database. limit
// is the number of masters kept across Trim calls, 0 meaning unbounded.
func NewCache(dir string, limit int) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	db, err := InitDB(dir)
	if err != nil {
		return nil, err
	}

	return &Cache{
		dir:   dir,
		limit: limit,
		db:    db,
	}, nil
}

// EnsureFromURL downloads an image and caches it.
func (c *Cache) EnsureFromURL(url string) (string, error) {
	resp, err := http.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errors.New("bad status")
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return c.Ensure(url, data)
}

// EnsureFromFile caches an image read from disk (sidecar cover, poster
// extracted by the scanner).
func (c *Cache) EnsureFromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return c.Ensure(path, data)
}

// Ensure caches already loaded image bytes under the source identity and
// returns the cache key.
func (c *Cache) Ensure(source string, data []byte) (string, error) {
	pk := pkFromSource(source)
	origPath := filepath.Join(c.dir, pk+".orig.webp")

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := os.Stat(origPath); errors.Is(err, os.ErrNotExist) {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return "", err
		}
		buf, err := encodeWebP(img)
		if err != nil {
			return "", err
		}
		if err := os.WriteFile(origPath, buf, 0o644); err != nil {
			return "", err
		}
		log.Debugf("✅ cached thumbnail %s (%s) from %s", pk, humanize.Bytes(uint64(len(buf))), source)
	}

	_ = c.db.Add(pk, source)
	return pk, nil
}

// MasterPath returns the path of the WebP master and records the hit.
func (c *Cache) MasterPath(pk string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.db.Get(pk); err != nil {
		return "", err
	}
	_ = c.db.UpdateHit(pk)

	origPath := filepath.Join(c.dir, pk+".orig.webp")
	if _, err := os.Stat(origPath); err != nil {
		return "", err
	}
	return origPath, nil
}

// Trim evicts the coldest masters (and their variants) down to the
// configured limit.
func (c *Cache) Trim() error {
	if c.limit <= 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	cold, err := c.db.ColdEntries(c.limit)
	if err != nil {
		return err
	}
	for _, pk := range cold {
		c.removeFiles(pk)
		_ = c.db.Delete(pk)
	}
	if len(cold) > 0 {
		log.Infof("✅ evicted %d cold thumbnails", len(cold))
	}
	return nil
}

// Purge empties the cache completely.
func (c *Cache) Purge() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	files, _ := filepath.Glob(filepath.Join(c.dir, "*.webp"))
	for _, f := range files {
		os.Remove(f)
	}
	files, _ = filepath.Glob(filepath.Join(c.dir, "*.jpg"))
	for _, f := range files {
		os.Remove(f)
	}
	files, _ = filepath.Glob(filepath.Join(c.dir, "*.png"))
	for _, f := range files {
		os.Remove(f)
	}
	return c.db.Purge()
}

func (c *Cache) removeFiles(pk string) {
	files, _ := filepath.Glob(filepath.Join(c.dir, pk+".*"))
	for _, f := range files {
		os.Remove(f)
	}
}

// pkFromSource is a stable hash of the source identity.
func pkFromSource(source string) string {
	h := sha1.Sum([]byte(source))
	return hex.EncodeToString(h[:8])
}

// KeyFor returns the cache key a source would be stored under, letting
// URL builders name a thumbnail before it is cached.
func KeyFor(source string) string { return pkFromSource(source) }
