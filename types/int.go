package types

import (
	"fmt"
	"math/big"
	"strings"
)

// IntValue is a fixed-width integer whose bits may be unknown (x) or
// high impedance (z) when the value is four-state. Unknown bits are
// tracked in a separate mask; the value bit distinguishes x (0) from z (1).
type IntValue struct {
	width     uint32
	signed    bool
	fourState bool
	val       *big.Int // never negative, no bits at or above width
	unk       *big.Int // nil when no bit is unknown
}

func mask(width uint32) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), uint(width))
	return m.Sub(m, big.NewInt(1))
}

func wrap(v *big.Int, width uint32) *big.Int {
	r := new(big.Int).Set(v)
	if r.Sign() < 0 {
		r.Add(r, new(big.Int).Lsh(big.NewInt(1), uint(width)))
	}
	return r.And(r, mask(width))
}

// NewInt creates a two-state integer holding v truncated to width bits
func NewInt(width uint32, signed bool, v int64) IntValue {
	if width == 0 {
		width = 1
	}
	return IntValue{width: width, signed: signed, val: wrap(big.NewInt(v), width)}
}

// NewLogic creates a four-state integer holding v truncated to width bits
func NewLogic(width uint32, signed bool, v int64) IntValue {
	i := NewInt(width, signed, v)
	i.fourState = true
	return i
}

// NewBig creates an integer from an arbitrary precision value
func NewBig(width uint32, signed, fourState bool, v *big.Int) IntValue {
	if width == 0 {
		width = 1
	}
	return IntValue{width: width, signed: signed, fourState: fourState, val: wrap(v, width)}
}

// NewUnknown creates a four-state integer with every bit set to x
func NewUnknown(width uint32, signed bool) IntValue {
	if width == 0 {
		width = 1
	}
	return IntValue{width: width, signed: signed, fourState: true, val: new(big.Int), unk: mask(width)}
}

// NewBits creates a four-state integer from a string of 0, 1, x and z
// characters, most significant bit first.
func NewBits(bits string) IntValue {
	width := uint32(len(bits))
	r := IntValue{width: width, fourState: true, val: new(big.Int)}
	for i := 0; i < len(bits); i++ {
		pos := len(bits) - 1 - i
		switch bits[i] {
		case '1':
			r.val.SetBit(r.val, pos, 1)
		case 'x', 'X':
			r.setUnknown(pos, false)
		case 'z', 'Z', '?':
			r.setUnknown(pos, true)
		}
	}
	return r
}

func (i *IntValue) setUnknown(pos int, z bool) {
	if i.unk == nil {
		i.unk = new(big.Int)
	}
	i.unk.SetBit(i.unk, pos, 1)
	if z {
		i.val.SetBit(i.val, pos, 1)
	} else {
		i.val.SetBit(i.val, pos, 0)
	}
}

// Kind returns KindInteger
func (i IntValue) Kind() ValueKind { return KindInteger }

// Width returns the number of bits
func (i IntValue) Width() uint32 { return i.width }

// IsSigned reports whether the value is interpreted as two's complement
func (i IntValue) IsSigned() bool { return i.signed }

// IsFourState reports whether the value may hold x and z bits
func (i IntValue) IsFourState() bool { return i.fourState }

// HasUnknown reports whether any bit is x or z
func (i IntValue) HasUnknown() bool {
	return i.unk != nil && i.unk.Sign() != 0
}

// Bit returns the value of bit pos as one of '0', '1', 'x' or 'z'
func (i IntValue) Bit(pos int) byte {
	if pos < 0 || pos >= int(i.width) {
		if i.fourState {
			return 'x'
		}
		return '0'
	}
	v := i.val.Bit(pos)
	if i.unk != nil && i.unk.Bit(pos) == 1 {
		if v == 1 {
			return 'z'
		}
		return 'x'
	}
	if v == 1 {
		return '1'
	}
	return '0'
}

func (i *IntValue) setBit(pos int, b byte) {
	switch b {
	case '1':
		i.val.SetBit(i.val, pos, 1)
		if i.unk != nil {
			i.unk.SetBit(i.unk, pos, 0)
		}
	case 'x', 'z':
		if i.fourState {
			i.setUnknown(pos, b == 'z')
			return
		}
		i.val.SetBit(i.val, pos, 0)
		if i.unk != nil {
			i.unk.SetBit(i.unk, pos, 0)
		}
	default:
		i.val.SetBit(i.val, pos, 0)
		if i.unk != nil {
			i.unk.SetBit(i.unk, pos, 0)
		}
	}
}

func (i IntValue) clone() IntValue {
	r := i
	r.val = new(big.Int).Set(i.val)
	if i.unk != nil {
		r.unk = new(big.Int).Set(i.unk)
	}
	return r
}

// Slice returns bits [msb:lsb] as an unsigned value. Bits outside the
// value read as x for four-state values and 0 otherwise.
func (i IntValue) Slice(msb, lsb int32) IntValue {
	if msb < lsb {
		msb, lsb = lsb, msb
	}
	w := uint32(msb - lsb + 1)
	r := IntValue{width: w, fourState: i.fourState, val: new(big.Int)}
	for k := 0; k < int(w); k++ {
		r.setBit(k, i.Bit(int(lsb)+k))
	}
	return r
}

// SetSlice returns a copy of i with bits [msb:lsb] replaced by the low
// bits of v. Bits outside the value are ignored.
func (i IntValue) SetSlice(msb, lsb int32, v IntValue) IntValue {
	if msb < lsb {
		msb, lsb = lsb, msb
	}
	r := i.clone()
	for k := 0; k <= int(msb-lsb); k++ {
		pos := int(lsb) + k
		if pos < 0 || pos >= int(i.width) {
			continue
		}
		b := byte('0')
		if k < int(v.width) {
			b = v.Bit(k)
		}
		r.setBit(pos, b)
	}
	return r
}

// Resize truncates or extends the value to width bits. Signed values
// are sign extended.
func (i IntValue) Resize(width uint32, signed bool) IntValue {
	if width == 0 {
		width = 1
	}
	r := IntValue{width: width, signed: signed, fourState: i.fourState, val: new(big.Int)}
	top := i.Bit(int(i.width) - 1)
	for k := 0; k < int(width); k++ {
		switch {
		case k < int(i.width):
			r.setBit(k, i.Bit(k))
		case i.signed:
			r.setBit(k, top)
		}
	}
	return r
}

// AsFourState returns the same bits marked as four-state
func (i IntValue) AsFourState() IntValue {
	r := i
	r.fourState = true
	return r
}

func (i IntValue) signedBig() *big.Int {
	v := new(big.Int).Set(i.val)
	if i.signed && i.val.Bit(int(i.width)-1) == 1 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), uint(i.width)))
	}
	return v
}

// AsInt64 returns the numeric value, failing when bits are unknown or
// the value does not fit.
func (i IntValue) AsInt64() (int64, bool) {
	if i.HasUnknown() {
		return 0, false
	}
	v := i.signedBig()
	if !v.IsInt64() {
		return 0, false
	}
	return v.Int64(), true
}

// AsInt32 returns the numeric value, failing when bits are unknown or
// the value does not fit in 32 bits.
func (i IntValue) AsInt32() (int32, bool) {
	v, ok := i.AsInt64()
	if !ok || v < -1<<31 || v > 1<<31-1 {
		return 0, false
	}
	return int32(v), true
}

// Big returns the numeric value as an arbitrary precision integer
func (i IntValue) Big() *big.Int {
	return i.signedBig()
}

// Concat joins values, the first operand being most significant
func Concat(parts ...IntValue) IntValue {
	var width uint32
	fourState := false
	for _, p := range parts {
		width += p.width
		fourState = fourState || p.fourState
	}
	r := IntValue{width: width, fourState: fourState, val: new(big.Int)}
	pos := int(width)
	for _, p := range parts {
		pos -= int(p.width)
		for k := 0; k < int(p.width); k++ {
			r.setBit(pos+k, p.Bit(k))
		}
	}
	return r
}

func arith(a, b IntValue, op func(x, y *big.Int) *big.Int) IntValue {
	width := a.width
	if b.width > width {
		width = b.width
	}
	signed := a.signed && b.signed
	fourState := a.fourState || b.fourState
	if a.HasUnknown() || b.HasUnknown() {
		return NewUnknown(width, signed)
	}
	x := a.Resize(width, a.signed).signedBig()
	y := b.Resize(width, b.signed).signedBig()
	return NewBig(width, signed, fourState, op(x, y))
}

// Add returns a + b in the wider of the two widths
func (i IntValue) Add(o IntValue) IntValue {
	return arith(i, o, func(x, y *big.Int) *big.Int { return new(big.Int).Add(x, y) })
}

// Sub returns a - b in the wider of the two widths
func (i IntValue) Sub(o IntValue) IntValue {
	return arith(i, o, func(x, y *big.Int) *big.Int { return new(big.Int).Sub(x, y) })
}

// Mul returns a * b in the wider of the two widths
func (i IntValue) Mul(o IntValue) IntValue {
	return arith(i, o, func(x, y *big.Int) *big.Int { return new(big.Int).Mul(x, y) })
}

// String returns a sized literal: 8'd165, -32'sd1 or 4'b10xz
func (i IntValue) String() string {
	if i.HasUnknown() {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%d'b", i.width)
		for pos := int(i.width) - 1; pos >= 0; pos-- {
			sb.WriteByte(i.Bit(pos))
		}
		return sb.String()
	}
	if i.signed {
		v := i.signedBig()
		if v.Sign() < 0 {
			return fmt.Sprintf("-%d'sd%s", i.width, new(big.Int).Neg(v).String())
		}
		return fmt.Sprintf("%d'sd%s", i.width, v.String())
	}
	return fmt.Sprintf("%d'd%s", i.width, i.val.String())
}

// Equal compares width and bits, including x and z positions.
// Signedness and state are ignored.
func (i IntValue) Equal(other Value) bool {
	o, ok := other.(IntValue)
	if !ok || o.width != i.width || o.val == nil || i.val == nil {
		return false
	}
	if i.val.Cmp(o.val) != 0 {
		return false
	}
	return unknownBits(i).Cmp(unknownBits(o)) == 0
}

func unknownBits(i IntValue) *big.Int {
	if i.unk == nil {
		return new(big.Int)
	}
	return i.unk
}
