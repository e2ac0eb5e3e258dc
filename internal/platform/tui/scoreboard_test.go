package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/irr-runner/internal/core"
	"github.com/vovakirdan/irr-runner/internal/storage"
)

func TestRunRow(t *testing.T) {
	r := storage.RunRecord{
		Player:    "",
		Score:     10,
		Outcome:   core.OutcomeWin,
		Chased:    true,
		CreatedAt: time.Date(2024, 3, 5, 14, 30, 0, 0, time.Local),
	}

	row := RunRow(1, r)
	expected := []string{"#1", "10.00%", "win", "escaped", "local", "Mar 05 14:30"}
	for i, want := range expected {
		if row[i] != want {
			t.Errorf("column %d = %q, expected %q", i, row[i], want)
		}
	}

	row = RunRow(2, storage.RunRecord{Player: "bob", Score: 2.5, Outcome: core.OutcomeGameOver})
	if row[2] != "caught" || row[3] != "-" || row[4] != "bob" {
		t.Errorf("game over row = %v", row)
	}
}

func TestScoreboardViews(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveRun(storage.RunRecord{Score: 9, Outcome: core.OutcomeGameOver, Chased: true})
	store.SaveRun(storage.RunRecord{Score: 1, Outcome: core.OutcomeGameOver})

	m := NewScoreboardModel(store, 100, 30)
	if m.runs[0].Score != 9 {
		t.Errorf("top view should start with the best run, got %v", m.runs[0].Score)
	}
	if !strings.Contains(m.View(), "2 runs") {
		t.Error("view should show the run summary")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.view != BoardRecent || m.runs[0].Score != 1 {
		t.Errorf("recent view should start with the newest run, got view %v score %v", m.view, m.runs[0].Score)
	}
}

func TestScoreboardEmpty(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("empty scoreboard should show the placeholder")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil || !next.(ScoreboardModel).IsQuitting() {
		t.Error("q should quit the scoreboard")
	}
}
