package types

import (
	"math"
	"testing"

	"github.com/nalgeon/be"
)

func TestConstantRange(t *testing.T) {
	down := ConstantRange{Left: 7, Right: 0}
	up := ConstantRange{Left: 0, Right: 7}

	be.True(t, down.IsLittleEndian())
	be.True(t, !up.IsLittleEndian())
	be.Equal(t, down.Width(), uint32(8))
	be.Equal(t, up.Width(), uint32(8))

	// Offsets are counted from the right bound.
	be.Equal(t, down.TranslateIndex(2), int32(2))
	be.Equal(t, up.TranslateIndex(2), int32(5))
	be.Equal(t, up.Reverse().TranslateIndex(2), int32(2))

	be.True(t, down.ContainsPoint(0))
	be.True(t, !down.ContainsPoint(8))
	be.True(t, ConstantRange{Left: 3, Right: 3}.IsLittleEndian())
}

func TestIndexedRangeMatchesSimpleRange(t *testing.T) {
	tests := []struct {
		name         string
		l, w         int32
		littleEndian bool
		up           bool
		want         ConstantRange
	}{
		{"ascending up", 2, 3, false, true, ConstantRange{Left: 2, Right: 4}},
		{"ascending down", 4, 3, false, false, ConstantRange{Left: 2, Right: 4}},
		{"descending up", 2, 3, true, true, ConstantRange{Left: 4, Right: 2}},
		{"descending down", 4, 3, true, false, ConstantRange{Left: 4, Right: 2}},
		{"single", 5, 1, true, true, ConstantRange{Left: 5, Right: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IndexedRange(tt.l, tt.w, tt.littleEndian, tt.up)
			be.Equal(t, got, tt.want)
		})
	}
}

func TestConstantRangeOverlaps(t *testing.T) {
	be.True(t, ConstantRange{Left: 7, Right: 4}.Overlaps(ConstantRange{Left: 4, Right: 0}))
	be.True(t, !ConstantRange{Left: 7, Right: 4}.Overlaps(ConstantRange{Left: 3, Right: 0}))
	be.True(t, ConstantRange{Left: 0, Right: 3}.Overlaps(ConstantRange{Left: 2, Right: 2}))
}

func TestIndexedRangeSaturates(t *testing.T) {
	r := IndexedRange(5, math.MaxInt32, false, true)
	be.Equal(t, r, ConstantRange{Left: 5, Right: math.MaxInt32})

	r = IndexedRange(-5, math.MaxInt32, true, false)
	be.Equal(t, r, ConstantRange{Left: -5, Right: math.MinInt32})
}
