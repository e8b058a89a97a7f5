package base

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSquareFromAlgebraic(t *testing.T) {
	tests := []struct {
		in       string
		file     int
		rank     int
		wantFail bool
	}{
		{"a1", 0, 0, false},
		{"e1", 4, 0, false},
		{"h8", 7, 7, false},
		{"d5", 3, 4, false},
		{"i1", 0, 0, true},
		{"a9", 0, 0, true},
		{"", 0, 0, true},
		{"e10", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			sq, err := SquareFromAlgebraic(tt.in)
			if tt.wantFail {
				if err == nil {
					t.Fatalf("SquareFromAlgebraic(%q) = %v, want error", tt.in, sq)
				}
				return
			}
			if err != nil {
				t.Fatalf("SquareFromAlgebraic(%q) error: %v", tt.in, err)
			}
			if sq.File() != tt.file || sq.Rank() != tt.rank {
				t.Errorf("SquareFromAlgebraic(%q) = (%d,%d), want (%d,%d)", tt.in, sq.File(), sq.Rank(), tt.file, tt.rank)
			}
			if sq.String() != tt.in {
				t.Errorf("String() = %q, want %q", sq.String(), tt.in)
			}
		})
	}
}

func TestSquareColour(t *testing.T) {
	a1, _ := SquareFromAlgebraic("a1")
	h1, _ := SquareFromAlgebraic("h1")
	d1, _ := SquareFromAlgebraic("d1")
	if a1.IsLight() {
		t.Error("a1 should be dark")
	}
	if !h1.IsLight() {
		t.Error("h1 should be light")
	}
	if !d1.IsLight() {
		t.Error("d1 should be light")
	}
}

func TestSquareOffset(t *testing.T) {
	e4 := NewSquare(4, 3)
	if got, ok := e4.Offset(1, 2); !ok || got.String() != "f6" {
		t.Errorf("e4.Offset(1,2) = %v,%v; want f6,true", got, ok)
	}
	h8 := NewSquare(7, 7)
	if _, ok := h8.Offset(1, 0); ok {
		t.Error("h8.Offset(1,0) should leave the board")
	}
	if NewSquare(8, 0) != NoSquare {
		t.Error("NewSquare(8,0) should be NoSquare")
	}
}

func TestSquareSet(t *testing.T) {
	e2, _ := SquareFromAlgebraic("e2")
	e4, _ := SquareFromAlgebraic("e4")
	a1, _ := SquareFromAlgebraic("a1")

	s := SetOf(e4, e2, NoSquare)
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if !s.Has(e2) || !s.Has(e4) || s.Has(a1) {
		t.Errorf("membership wrong for %v", s)
	}
	if diff := cmp.Diff([]Square{e2, e4}, s.Squares()); diff != "" {
		t.Errorf("Squares() mismatch (-want +got):\n%s", diff)
	}
	if AllSquares.Len() != 64 {
		t.Errorf("AllSquares.Len() = %d", AllSquares.Len())
	}
	if got := s.Intersect(SetOf(e4, a1)); got != SetOf(e4) {
		t.Errorf("Intersect = %v, want e4", got)
	}
}

func TestMoveFromCoord(t *testing.T) {
	for _, in := range []string{"e2e4", "e2-e4"} {
		m, err := MoveFromCoord(in)
		if err != nil {
			t.Fatalf("MoveFromCoord(%q) error: %v", in, err)
		}
		if m.String() != "e2e4" {
			t.Errorf("MoveFromCoord(%q) = %v", in, m)
		}
	}
	if _, err := MoveFromCoord("e2"); err == nil {
		t.Error("MoveFromCoord(e2) should fail")
	}
	if _, err := MoveFromCoord("z2e4"); err == nil {
		t.Error("MoveFromCoord(z2e4) should fail")
	}
}

func TestPieceRunes(t *testing.T) {
	for _, r := range "PNBRQKpnbrqk" {
		p := ConvertPieceFromRune(r)
		if p.IsEmpty() {
			t.Fatalf("ConvertPieceFromRune(%c) is empty", r)
		}
		if got := ConvertRuneFromPiece(p); got != r {
			t.Errorf("round trip %c -> %v -> %c", r, p, got)
		}
	}
	if !ConvertPieceFromRune('x').IsEmpty() {
		t.Error("x should not be a piece")
	}
}

func TestColorOpposite(t *testing.T) {
	if White.Opposite() != Black || Black.Opposite() != White {
		t.Error("Opposite is broken")
	}
}
