package patterns

import (
	"bufio"
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/blake2b"

	"github.com/robalobadob/wordle-solver/internal/feedback"
)

// ErrCorrupt is returned when a cache file fails its magic or digest check, or an
// entry does not hold every pattern of its word.
var ErrCorrupt = errors.New("patterns: corrupt cache file")

var magic = [4]byte{'W', 'P', 'C', '1'}

// WriteTo serializes the cache as magic, BLAKE2b-256 digest of the payload, gob payload.
func (c *Cache) WriteTo(w io.Writer) (int64, error) {
	c.mu.RLock()
	var payload bytes.Buffer
	err := gob.NewEncoder(&payload).Encode(c.entries)
	c.mu.RUnlock()
	if err != nil {
		return 0, fmt.Errorf("encode cache: %w", err)
	}
	sum := blake2b.Sum256(payload.Bytes())

	var n int64
	for _, chunk := range [][]byte{magic[:], sum[:], payload.Bytes()} {
		m, err := w.Write(chunk)
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// Read parses a cache written by WriteTo.
func Read(r io.Reader) (*Cache, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) < len(magic)+blake2b.Size256 || !bytes.Equal(data[:len(magic)], magic[:]) {
		return nil, ErrCorrupt
	}
	data = data[len(magic):]
	want, payload := data[:blake2b.Size256], data[blake2b.Size256:]
	if got := blake2b.Sum256(payload); !bytes.Equal(got[:], want) {
		return nil, ErrCorrupt
	}

	entries := make(map[string][]feedback.Pattern)
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	for word, ps := range entries {
		if want := Count(len(word)); len(ps) != want {
			return nil, fmt.Errorf("%w: %q has %d patterns, want %d", ErrCorrupt, word, len(ps), want)
		}
		for _, p := range ps {
			if len(p) != len(word) {
				return nil, fmt.Errorf("%w: %q has a pattern of length %d", ErrCorrupt, word, len(p))
			}
		}
	}
	return &Cache{entries: entries}, nil
}

// Load reads a cache file from path.
func Load(path string) (*Cache, error) {
	start := time.Now()
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := Read(bufio.NewReaderSize(f, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	log.Info().
		Str("path", path).
		Str("words", humanize.Comma(int64(c.Len()))).
		Dur("took", time.Since(start)).
		Msg("loaded pattern cache")
	return c, nil
}

// Save writes the cache to path, creating the parent directory if needed.
func (c *Cache) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(f, 64*1024)
	n, err := c.WriteTo(bw)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	log.Info().
		Str("path", path).
		Str("size", humanize.Bytes(uint64(n))).
		Str("words", humanize.Comma(int64(c.Len()))).
		Msg("saved pattern cache")
	return nil
}
