package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/vovakirdan/irr-runner/internal/core"
)

// BestFile keeps the best score as a single decimal string in a file.
// A missing file means no best yet.
type BestFile struct {
	mu   sync.Mutex
	path string
}

// NewBestFile returns a best-score store at path.
func NewBestFile(path string) *BestFile {
	return &BestFile{path: path}
}

// Path returns the file location.
func (b *BestFile) Path() string { return b.path }

// LoadBest reads the stored best. Missing files yield 0. Unparseable or
// negative contents yield 0 and an error.
func (b *BestFile) LoadBest() (float64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: read best %s: %w", b.path, err)
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
	if err != nil {
		return 0, fmt.Errorf("storage: parse best %s: %w", b.path, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("storage: invalid best %q in %s", strings.TrimSpace(string(data)), b.path)
	}
	return core.SnapDown(v, 2), nil
}

// SaveBest writes best with two decimals. The write goes through a temp
// file and rename so a crash never leaves a truncated value.
func (b *BestFile) SaveBest(best float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".best-*")
	if err != nil {
		return fmt.Errorf("storage: write best: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(strconv.FormatFloat(core.SnapDown(best, 2), 'f', 2, 64)); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: write best: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: write best: %w", err)
	}
	if err := os.Rename(tmp.Name(), b.path); err != nil {
		return fmt.Errorf("storage: write best: %w", err)
	}
	return nil
}
