// Package assets loads the character sprites drawn by the terminal renderer.
// Every sprite loads behind its own readiness future; LoadSet joins them
// before the engine boots, substituting a procedurally drawn placeholder
// for any sprite that fails so the game can always start.
package assets

import (
	"bufio"
	"bytes"
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

//go:embed sprites/*.txt
var builtin embed.FS

// Sprite names looked up as <name>.txt.
const (
	NamePlayer   = "player"
	NameChaser   = "chaser"
	NameBird     = "bird"
	NameObstacle = "obstacle"
)

// Sprite is a small rune grid. Spaces are transparent.
type Sprite struct {
	Name        string
	Rows        [][]rune
	Placeholder bool // Drawn procedurally because the file failed to load
}

// Size returns the sprite dimensions in cells.
func (s Sprite) Size() (int, int) {
	if len(s.Rows) == 0 {
		return 0, 0
	}
	return len(s.Rows[0]), len(s.Rows)
}

// Aspect returns the on-screen width/height ratio for the given cell size.
// Placeholders report 0 so callers fall back to default proportions.
func (s Sprite) Aspect(cellW, cellH float64) float64 {
	w, h := s.Size()
	if s.Placeholder || w == 0 || h == 0 || cellH <= 0 {
		return 0
	}
	return float64(w) * cellW / (float64(h) * cellH)
}

// At samples the sprite scaled to a w x h cell box using nearest neighbour.
func (s Sprite) At(x, y, w, h int) rune {
	sw, sh := s.Size()
	if sw == 0 || w <= 0 || h <= 0 || x < 0 || y < 0 || x >= w || y >= h {
		return ' '
	}
	return s.Rows[y*sh/h][x*sw/w]
}

// Parse builds a sprite from text. Rows are padded to the widest line.
func Parse(name string, data []byte) (Sprite, error) {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return Sprite{}, fmt.Errorf("assets: parse %s: %w", name, err)
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return Sprite{}, fmt.Errorf("assets: sprite %s is empty", name)
	}

	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	rows := make([][]rune, len(lines))
	for i, l := range lines {
		r := []rune(l)
		for len(r) < width {
			r = append(r, ' ')
		}
		rows[i] = r
	}
	return Sprite{Name: name, Rows: rows}, nil
}

// Placeholder returns a solid block sprite for name.
func Placeholder(name string) Sprite {
	w, h := 2, 2
	fill := '█'
	switch name {
	case NameBird:
		w, h = 3, 1
		fill = '▀'
	case NameObstacle:
		w, h = 1, 1
		fill = '▓'
	case NameChaser:
		w, h = 2, 3
		fill = '▒'
	}
	rows := make([][]rune, h)
	for y := range rows {
		rows[y] = []rune(strings.Repeat(string(fill), w))
	}
	return Sprite{Name: name, Rows: rows, Placeholder: true}
}

// Future is the pending result of one sprite load.
type Future struct {
	done   chan struct{}
	sprite Sprite
	err    error
}

// Load starts reading <name>.txt from fsys in the background.
func Load(fsys fs.FS, name string) *Future {
	f := &Future{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		data, err := fs.ReadFile(fsys, name+".txt")
		if err != nil {
			f.err = fmt.Errorf("assets: read %s: %w", name, err)
			return
		}
		f.sprite, f.err = Parse(name, data)
	}()
	return f
}

// Done is closed once the load has finished.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the load finishes or ctx is done.
func (f *Future) Wait(ctx context.Context) (Sprite, error) {
	select {
	case <-f.done:
		return f.sprite, f.err
	case <-ctx.Done():
		return Sprite{}, ctx.Err()
	}
}

// Set holds every sprite the renderer draws.
type Set struct {
	Player   Sprite
	Chaser   Sprite
	Bird     Sprite
	Obstacle Sprite
}

// Placeholders returns a set made only of placeholder sprites.
func Placeholders() Set {
	return Set{
		Player:   Placeholder(NamePlayer),
		Chaser:   Placeholder(NameChaser),
		Bird:     Placeholder(NameBird),
		Obstacle: Placeholder(NameObstacle),
	}
}

// Loader loads sprite sets from a directory or the built-in sprites.
type Loader struct {
	fsys fs.FS
	log  *log.Logger
}

// NewLoader returns a loader reading from dir, or from the built-in sprites
// when dir is empty.
func NewLoader(dir string, logger *log.Logger) *Loader {
	var fsys fs.FS
	if dir == "" {
		sub, err := fs.Sub(builtin, "sprites")
		if err != nil {
			panic(err) // embedded path is fixed at build time
		}
		fsys = sub
	} else {
		fsys = os.DirFS(dir)
	}
	return NewFSLoader(fsys, logger)
}

// NewFSLoader returns a loader reading from fsys.
func NewFSLoader(fsys fs.FS, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{fsys: fsys, log: logger}
}

// LoadSet starts every sprite load and joins them. A sprite that fails is
// replaced by its placeholder and logged; only cancellation of ctx is
// returned as an error.
func (l *Loader) LoadSet(ctx context.Context) (Set, error) {
	var set Set
	slots := []struct {
		name string
		dst  *Sprite
	}{
		{NamePlayer, &set.Player},
		{NameChaser, &set.Chaser},
		{NameBird, &set.Bird},
		{NameObstacle, &set.Obstacle},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, slot := range slots {
		future := Load(l.fsys, slot.name)
		g.Go(func() error {
			sp, err := future.Wait(gctx)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				l.log.Warn("sprite unavailable, using placeholder", "sprite", slot.name, "err", err)
				sp = Placeholder(slot.name)
			}
			*slot.dst = sp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Set{}, fmt.Errorf("assets: load sprites: %w", err)
	}
	return set, nil
}
