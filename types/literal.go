package types

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// ParseLiteral parses an integer literal. Plain decimals are 32-bit signed
// two-state values; sized and based literals (8'hA5, 4'b10xz, 'd3, 16'sd7)
// are four-state. The unbased forms '0, '1, 'x and 'z are single bits.
// Underscores are ignored.
func ParseLiteral(text string) (IntValue, error) {
	text = strings.ReplaceAll(text, "_", "")
	tick := strings.IndexByte(text, '\'')
	if tick < 0 {
		v, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return IntValue{}, fmt.Errorf("invalid integer literal %q", text)
		}
		return NewBig(32, true, false, v), nil
	}

	width := uint32(32)
	sized := tick > 0
	if sized {
		w, err := strconv.ParseUint(text[:tick], 10, 32)
		if err != nil || w == 0 {
			return IntValue{}, fmt.Errorf("invalid literal size in %q", text)
		}
		width = uint32(w)
	}

	rest := text[tick+1:]
	if !sized && len(rest) == 1 {
		switch c := strings.ToLower(rest); c {
		case "0", "1", "x", "z":
			return NewBits(c), nil
		}
	}
	signed := false
	if len(rest) > 0 && (rest[0] == 's' || rest[0] == 'S') {
		signed = true
		rest = rest[1:]
	}
	if len(rest) < 2 {
		return IntValue{}, fmt.Errorf("invalid based literal %q", text)
	}

	var bitsPerDigit int
	switch rest[0] {
	case 'b', 'B':
		bitsPerDigit = 1
	case 'o', 'O':
		bitsPerDigit = 3
	case 'h', 'H':
		bitsPerDigit = 4
	case 'd', 'D':
		return parseDecimal(text, rest[1:], width, signed)
	default:
		return IntValue{}, fmt.Errorf("invalid base in literal %q", text)
	}

	digits := strings.ToLower(rest[1:])
	var bits strings.Builder
	for _, c := range digits {
		switch c {
		case 'x':
			bits.WriteString(strings.Repeat("x", bitsPerDigit))
		case 'z', '?':
			bits.WriteString(strings.Repeat("z", bitsPerDigit))
		default:
			d, err := strconv.ParseUint(string(c), 1<<bitsPerDigit, 8)
			if err != nil {
				return IntValue{}, fmt.Errorf("invalid digit %q in literal %q", c, text)
			}
			s := strconv.FormatUint(d, 2)
			bits.WriteString(strings.Repeat("0", bitsPerDigit-len(s)) + s)
		}
	}

	raw := NewBits(bits.String())
	if !sized {
		width = raw.width
		if width < 32 {
			width = 32
		}
	}
	return extendLiteral(raw, width, signed), nil
}

func parseDecimal(text, digits string, width uint32, signed bool) (IntValue, error) {
	switch strings.ToLower(digits) {
	case "x":
		return NewUnknown(width, signed), nil
	case "z", "?":
		return NewBits(strings.Repeat("z", int(width))).withSign(signed), nil
	}
	v, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return IntValue{}, fmt.Errorf("invalid decimal literal %q", text)
	}
	return NewBig(width, signed, true, v), nil
}

// extendLiteral sizes a based literal, extending with x or z when the
// leftmost digit is unknown.
func extendLiteral(raw IntValue, width uint32, signed bool) IntValue {
	r := IntValue{width: width, signed: signed, fourState: true, val: new(big.Int)}
	top := raw.Bit(int(raw.width) - 1)
	for k := 0; k < int(width); k++ {
		switch {
		case k < int(raw.width):
			r.setBit(k, raw.Bit(k))
		case top == 'x' || top == 'z':
			r.setBit(k, top)
		}
	}
	return r
}

func (i IntValue) withSign(signed bool) IntValue {
	i.signed = signed
	return i
}
