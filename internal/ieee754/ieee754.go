// Package ieee754 decodes hexadecimal tokens holding 32-bit IEEE-754
// single precision patterns.
//
// A token goes through two stages: ParseHex turns it into a BitPattern of
// exactly 32 binary digits, padding the binary expansion (not the hex text)
// on the left, and Decode interprets that pattern as sign, biased exponent
// and mantissa.
package ieee754

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/ansel1/merry"
	"github.com/fpawel/hexfloat/internal/pkg/must"
)

const (
	Width        = 32
	ExponentBias = 127

	exponentBits = 8
	mantissaBits = 23
)

var (
	ErrInvalidHexToken     = merry.New("invalid hex token")
	ErrInvalidBitLength    = merry.New("invalid bit pattern length")
	ErrInvalidBitCharacter = merry.New("invalid bit pattern character")
	ErrUnknownMode         = merry.New("unknown decode mode")
)

// BitPattern is a string of exactly Width characters '0' or '1',
// most significant bit first.
type BitPattern string

// Fields are the three parts of a single precision pattern.
type Fields struct {
	Sign     uint32 // 0 or 1
	Exponent uint32 // biased, 0..255
	Mantissa uint32 // 23 fraction bits without the implicit leading one
}

func ParseHex(token string) (BitPattern, error) {
	if token == "" {
		return "", ErrInvalidHexToken.Here().Append("empty token")
	}
	n, err := strconv.ParseUint(token, 16, Width)
	if err != nil {
		reason := "not hexadecimal"
		if errors.Is(err, strconv.ErrRange) {
			reason = "wider than 32 bits"
		}
		return "", ErrInvalidHexToken.Here().
			WithValue("token", token).
			Appendf("%q: %s", token, reason)
	}
	return formatBits(uint32(n)), nil
}

func ParseBits(s string) (BitPattern, error) {
	if len(s) != Width {
		return "", ErrInvalidBitLength.Here().
			Appendf("got %d characters, want %d", len(s), Width)
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '0' && s[i] != '1' {
			return "", ErrInvalidBitCharacter.Here().
				Appendf("%q at position %d", s[i], i)
		}
	}
	return BitPattern(s), nil
}

// Fields splits a valid pattern. The result is undefined for a pattern
// that did not come from ParseHex or ParseBits.
func (p BitPattern) Fields() Fields {
	return Fields{
		Sign:     parseBinary(p[:1]),
		Exponent: parseBinary(p[1 : 1+exponentBits]),
		Mantissa: parseBinary(p[1+exponentBits:]),
	}
}

// Uint32 returns the pattern as a machine word.
func (p BitPattern) Uint32() uint32 {
	return parseBinary(p)
}

func Decode(p BitPattern, mode Mode) (float64, error) {
	if _, err := ParseBits(string(p)); err != nil {
		return 0, err
	}
	f := p.Fields()
	switch mode {
	case ModeStandard:
		return f.standard(), nil
	case ModeUniform:
		return f.uniform(), nil
	}
	return 0, ErrUnknownMode.Here().Appendf("%q", mode)
}

// DecodeHex decodes a hex token. A bit pattern error after a successful
// ParseHex means the conversion itself is broken, so it panics.
func DecodeHex(token string, mode Mode) (float64, error) {
	p, err := ParseHex(token)
	if err != nil {
		return 0, err
	}
	v, err := Decode(p, mode)
	if merry.Is(err, ErrInvalidBitLength, ErrInvalidBitCharacter) {
		must.PanicIf(merry.Prependf(err, "token %q", token))
	}
	return v, err
}

func (f Fields) bits() uint32 {
	return f.Sign<<31 | f.Exponent<<mantissaBits | f.Mantissa
}

func (f Fields) standard() float64 {
	return float64(math.Float32frombits(f.bits()))
}

// uniform applies sign × 1.M × 2^(E-127) to every exponent, including 0 and
// 255. Only the all-zero magnitude is mapped to a signed zero.
func (f Fields) uniform() float64 {
	if f.Exponent == 0 && f.Mantissa == 0 {
		return math.Copysign(0, f.sign())
	}
	significand := float64(1<<mantissaBits | f.Mantissa)
	v := math.Ldexp(significand, int(f.Exponent)-ExponentBias-mantissaBits)
	return f.sign() * v
}

func (f Fields) sign() float64 {
	if f.Sign == 1 {
		return -1
	}
	return 1
}

func formatBits(n uint32) BitPattern {
	return BitPattern(fmt.Sprintf("%032b", n))
}

func parseBinary(s BitPattern) uint32 {
	var n uint32
	for i := 0; i < len(s); i++ {
		n = n<<1 | uint32(s[i]-'0')
	}
	return n
}
