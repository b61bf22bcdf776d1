package columns

import (
	"reflect"
	"testing"
)

func TestNewFaller(t *testing.T) {
	f := newFaller(3, [FallerLength]Color{"S", "T", "V"})
	if f.col != 3 {
		t.Errorf("wanted column 3, got %d", f.col)
	}
	if f.rows != [FallerLength]int{0, 1, 2} {
		t.Errorf("wanted rows [0 1 2], got %v", f.rows)
	}
	if f.bottom() != 2 {
		t.Errorf("wanted bottom row 2, got %d", f.bottom())
	}
}

func TestFallerMoveAndDrop(t *testing.T) {
	f := newFaller(3, [FallerLength]Color{"S", "T", "V"})
	f.move(Left)
	if f.col != 2 {
		t.Errorf("wanted column 2 after moving left, got %d", f.col)
	}
	f.move(Right)
	f.move(Right)
	if f.col != 4 {
		t.Errorf("wanted column 4 after moving right twice, got %d", f.col)
	}
	f.drop()
	if f.rows != [FallerLength]int{1, 2, 3} {
		t.Errorf("wanted rows [1 2 3] after one drop, got %v", f.rows)
	}
	if f.bottom() != 3 {
		t.Errorf("wanted bottom row 3, got %d", f.bottom())
	}
}

func TestFallerRotate(t *testing.T) {
	f := newFaller(0, [FallerLength]Color{"S", "T", "V"})
	f.rotate()
	if f.colors != [FallerLength]Color{"V", "S", "T"} {
		t.Errorf("wanted bottom color to cycle to the top, got %v", f.colors)
	}

	t.Run("rotation has order 3", func(t *testing.T) {
		f := newFaller(0, [FallerLength]Color{"S", "T", "V"})
		want := f.colors
		f.rotate()
		f.rotate()
		f.rotate()
		if f.colors != want {
			t.Errorf("wanted colors back to %v after three rotations, got %v", want, f.colors)
		}
	})
}

func TestFallerColor(t *testing.T) {
	f := newFaller(0, [FallerLength]Color{"S", "T", "V"})
	f.drop()
	f.drop()
	// occupies rows 2, 3, 4 now
	want := []Color{"S", "T", "V"}
	var got []Color
	for _, row := range f.rows {
		got = append(got, f.color(row))
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("wanted colors %v top to bottom, got %v", want, got)
	}
}

func TestFallerContainsCell(t *testing.T) {
	f := newFaller(2, [FallerLength]Color{"S", "T", "V"})
	f.drop()
	// occupies rows 1, 2, 3 in column 2
	tests := []struct {
		name     string
		row, col int
		want     bool
	}{
		{"top jewel", 1, 2, true},
		{"middle jewel", 2, 2, true},
		{"bottom jewel", 3, 2, true},
		{"row above", 0, 2, false},
		{"row below", 4, 2, false},
		{"wrong column", 2, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.containsCell(tt.row, tt.col); got != tt.want {
				t.Errorf("containsCell(%d, %d) = %t, wanted %t", tt.row, tt.col, got, tt.want)
			}
		})
	}
}
