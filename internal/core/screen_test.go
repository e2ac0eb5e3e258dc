package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	if got := strings.Count(s.String(), " "); got != 80*24 {
		t.Errorf("expected %d spaces, got %d", 80*24, got)
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)
	s.SetColored(5, 5, 'X', ColorRed)

	if cell := s.GetCell(5, 5); cell.Rune != 'X' || cell.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected red X", cell)
	}

	// Out of bounds writes are dropped and reads are blank
	for _, p := range [][2]int{{-1, 0}, {10, 0}, {0, -1}, {0, 10}} {
		s.Set(p[0], p[1], 'A')
		if s.GetCell(p[0], p[1]) != blankCell {
			t.Errorf("GetCell%v should be blank", p)
		}
	}
	if strings.Count(s.String(), "A") != 0 {
		t.Error("out of bounds writes must not wrap onto other rows")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(6, 4)
	s.Fill('X')
	s.SetColored(1, 1, 'Y', ColorBlue)
	s.Clear()

	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			if s.GetCell(x, y) != blankCell {
				t.Fatalf("after Clear, (%d, %d) = %+v", x, y, s.GetCell(x, y))
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	tests := []struct {
		name     string
		x        int
		text     string
		expected string
	}{
		{"inside", 2, "Hello", "  Hello   "},
		{"clipped right", 7, "Hello", "       Hel"},
		{"clipped left", -2, "Hello", "llo       "},
		{"multibyte", 0, "█▓x", "█▓x       "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScreen(10, 1)
			s.DrawText(tc.x, 0, tc.text)
			if got := s.Row(0); got != tc.expected {
				t.Errorf("Row(0) = %q, expected %q", got, tc.expected)
			}
		})
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi", ColorYellow)

	x := (20 - 2) / 2
	if s.Get(x, 2) != 'H' || s.Get(x+1, 2) != 'i' {
		t.Errorf("centered text missing, row = %q", s.Row(2))
	}
	if s.GetCell(x, 2).Color != ColorYellow {
		t.Error("DrawTextCentered should apply color")
	}

	// Centering counts runes, not bytes
	s.DrawTextCentered(3, "══", ColorDefault)
	if s.Get(x, 3) != '═' {
		t.Errorf("multibyte text should center like ASCII, row = %q", s.Row(3))
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(6, 6)
	s.DrawRect(2, 2, 3, 2, '#', ColorDefault)

	expected := []string{
		"      ",
		"      ",
		"  ### ",
		"  ### ",
		"      ",
		"      ",
	}
	if got := s.String(); got != strings.Join(expected, "\n") {
		t.Errorf("DrawRect:\n%s", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(7, 5)
	s.DrawBox(1, 1, 5, 4, ColorRed)

	expected := []string{
		"       ",
		" ┌───┐ ",
		" │   │ ",
		" │   │ ",
		" └───┘ ",
	}
	if got := s.String(); got != strings.Join(expected, "\n") {
		t.Errorf("DrawBox:\n%s", got)
	}
	if s.GetCell(1, 1).Color != ColorRed {
		t.Error("box should be colored")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")
	s.DrawText(0, 9, "Bottom")

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Fatalf("size = %dx%d, expected 8x4", s.Width(), s.Height())
	}
	if s.Row(0) != "Hello   " {
		t.Errorf("row 0 = %q, content should be preserved", s.Row(0))
	}

	s.Resize(15, 8)
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("row 0 = %q after enlarging", s.Row(0))
	}
	if strings.Contains(s.String(), "Bottom") {
		t.Error("rows cut by shrinking must not come back")
	}
	if s.GetCell(14, 7) != blankCell {
		t.Error("grown area should be blank")
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawText(0, 2, "Test")

	if got := s.Row(2); got != "Test      " {
		t.Errorf("Row(2) = %q", got)
	}
	if s.Row(-1) != "          " || s.Row(5) != "          " {
		t.Error("out of range rows should be spaces")
	}
}
