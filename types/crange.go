package types

import (
	"fmt"
	"math"
)

// ConstantRange is a pair of bounds. When Left >= Right the range is
// little endian (descending, [7:0]); otherwise big endian ([0:7]).
type ConstantRange struct {
	Left  int32
	Right int32
}

// Width returns the number of positions covered
func (r ConstantRange) Width() uint32 {
	d := int64(r.Left) - int64(r.Right)
	if d < 0 {
		d = -d
	}
	return uint32(d + 1)
}

// Lower returns the smaller bound
func (r ConstantRange) Lower() int32 {
	return min(r.Left, r.Right)
}

// Upper returns the larger bound
func (r ConstantRange) Upper() int32 {
	return max(r.Left, r.Right)
}

// IsLittleEndian reports whether the range is descending
func (r ConstantRange) IsLittleEndian() bool {
	return r.Left >= r.Right
}

// Reverse swaps the bounds
func (r ConstantRange) Reverse() ConstantRange {
	return ConstantRange{Left: r.Right, Right: r.Left}
}

// ContainsPoint reports whether index lies within the bounds
func (r ConstantRange) ContainsPoint(index int32) bool {
	return index >= r.Lower() && index <= r.Upper()
}

// TranslateIndex converts an index in this range into a zero-based offset
// counted from the Right bound.
func (r ConstantRange) TranslateIndex(index int32) int32 {
	if r.IsLittleEndian() {
		return index - r.Right
	}
	return r.Right - index
}

// Overlaps reports whether the two ranges share any position
func (r ConstantRange) Overlaps(o ConstantRange) bool {
	return r.Lower() <= o.Upper() && o.Lower() <= r.Upper()
}

// String returns the [left:right] form
func (r ConstantRange) String() string {
	return fmt.Sprintf("[%d:%d]", r.Left, r.Right)
}

// IndexedRange computes the range of an indexed part-select l +: width
// (up) or l -: width in a container with the given endianness.
// Bounds that leave the int32 domain saturate.
func IndexedRange(l, width int32, littleEndian, up bool) ConstantRange {
	count := int64(width) - 1
	var r ConstantRange
	if up {
		r = ConstantRange{Left: saturate(int64(l) + count), Right: l}
	} else {
		r = ConstantRange{Left: l, Right: saturate(int64(l) - count)}
	}
	if !littleEndian {
		r = r.Reverse()
	}
	return r
}

func saturate(v int64) int32 {
	return int32(min(max(v, math.MinInt32), math.MaxInt32))
}
