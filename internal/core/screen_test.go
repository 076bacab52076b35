package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(20, 6)

	if s.Width() != 20 {
		t.Errorf("Width() = %d, expected 20", s.Width())
	}
	if s.Height() != 6 {
		t.Errorf("Height() = %d, expected 6", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Errorf("new screen should hold uncolored spaces, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(3, 4, '#', ColorRed)
	if c := s.GetCell(3, 4); c.Rune != '#' || c.Color != ColorRed {
		t.Errorf("GetCell(3, 4) = %+v, expected '#' red", c)
	}

	s.Set(-1, 0, 'A')
	s.Set(10, 0, 'A')
	s.SetColored(0, 10, 'A', ColorGreen)

	if s.Get(-1, 0) != ' ' || s.Get(10, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenDrawTextClipped(t *testing.T) {
	s := NewScreen(5, 1)
	s.DrawTextColored(2, 0, "abcdef", ColorCyan)

	if got := s.Row(0); got != "  abc" {
		t.Errorf("Row(0) = %q, expected %q", got, "  abc")
	}
	if s.GetCell(4, 0).Color != ColorCyan {
		t.Error("expected drawn text to keep its color")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(NewRect(0, 0, 4, 3), ColorGray)

	expected := strings.Join([]string{
		"┌──┐",
		"│  │",
		"└──┘",
	}, "\n")
	if got := s.String(); got != expected {
		t.Errorf("String() =\n%s\nexpected\n%s", got, expected)
	}
}

func TestScreenResizeClears(t *testing.T) {
	s := NewScreen(4, 4)
	s.Set(1, 1, 'x')
	s.Resize(6, 2)

	if s.Width() != 6 || s.Height() != 2 {
		t.Fatalf("Resize() gave %dx%d, expected 6x2", s.Width(), s.Height())
	}
	if s.Get(1, 1) != ' ' {
		t.Error("Resize should clear content")
	}
}

func TestScreenStringTrimsTrailingSpaces(t *testing.T) {
	s := NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.DrawText(1, 1, "c")

	if got := s.String(); got != "ab\n c" {
		t.Errorf("String() = %q, expected %q", got, "ab\n c")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 2)

	tests := []struct {
		x, y     int
		expected bool
	}{
		{2, 3, true},
		{5, 4, true},
		{6, 4, false},
		{5, 5, false},
		{1, 3, false},
	}
	for _, tc := range tests {
		if got := r.Contains(tc.x, tc.y); got != tc.expected {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name string
		want Color
		ok   bool
	}{
		{"red", ColorRed, true},
		{"bright_green", ColorBrightGreen, true},
		{"grey", ColorGray, true},
		{"", ColorDefault, true},
		{"chartreuse", ColorDefault, false},
	}
	for _, tc := range tests {
		got, ok := ParseColor(tc.name)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseColor(%q) = %v, %v; expected %v, %v", tc.name, got, ok, tc.want, tc.ok)
		}
	}
}

func TestActionDelta(t *testing.T) {
	tests := []struct {
		a      Action
		dx, dy int
	}{
		{ActionUp, 0, -1},
		{ActionDown, 0, 1},
		{ActionLeft, -1, 0},
		{ActionRight, 1, 0},
		{ActionSearch, 0, 0},
	}
	for _, tc := range tests {
		dx, dy := tc.a.Delta()
		if dx != tc.dx || dy != tc.dy {
			t.Errorf("%v.Delta() = (%d, %d), expected (%d, %d)", tc.a, dx, dy, tc.dx, tc.dy)
		}
	}
}
