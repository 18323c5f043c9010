// Package match is the host-side pattern collaborator: it compiles the
// caller's vanity pattern into a matcher over 20-byte addresses and into the
// 4-word pattern configuration record that travels with a dispatch. The hash
// kernel never consumes that record; matching happens entirely here, on the
// digest bytes read back from the results buffer.
package match

import (
	"errors"
	"strings"

	"lukechampine.com/uint128"

	"github.com/ethvanity/crunch/address"
)

// Pattern configuration flags, word 1 of the 4-word record.
const (
	FlagLeading         = 1 // one fixed leading byte
	FlagTrailing        = 2 // one fixed trailing byte
	FlagBothEnds        = 3 // same fixed byte at both ends
	FlagLeadingRun      = 4 // run of one fixed byte at the start
	FlagLeadingTrailing = 5 // leading run plus a fixed trailing byte
	FlagTotalZeros      = 6 // at least N zero bytes anywhere
	FlagZerosAnd        = 7 // leading zeros AND total zeros thresholds
	FlagZerosOr         = 8 // leading zeros OR total zeros thresholds
	FlagFreeForm        = 99 // arbitrary hex prefix/suffix, matched host-side
)

// maxZerosThreshold bounds zero-count thresholds to the address size.
const maxZerosThreshold = address.Size

// Matcher is a compiled reward pattern. Match is safe for concurrent use.
type Matcher struct {
	flags    uint32
	value    uint32 // fixed byte; trailing byte packed into bits 8..16
	length   uint32 // run length or zero-count threshold
	leading  uint32 // leading-zeros threshold for the combined zero kinds
	prefix   string // free-form lowercase hex prefix
	suffix   string // free-form lowercase hex suffix
	describe string
}

// Compile parses a vanity pattern string.
//
// Grammar:
//
//	"bb"        one fixed leading byte
//	"bbbb..."   run of a repeated byte at the start
//	"bb...ee"   leading run plus fixed trailing byte
//	"...ee"     one fixed trailing byte
//	"abcd...ef" arbitrary prefix and suffix, matched as hex strings
func Compile(pattern string) (*Matcher, error) {
	pattern = strings.TrimPrefix(strings.ToLower(pattern), "0x")
	if pattern == "" {
		return nil, errors.New("pattern cannot be empty")
	}

	if !strings.Contains(pattern, "...") {
		if len(pattern) != 2 {
			return nil, errors.New("simple pattern must be exactly 2 characters")
		}
		v, err := hexByte(pattern)
		if err != nil {
			return nil, err
		}
		return &Matcher{
			flags:    FlagLeading,
			value:    uint32(v),
			length:   1,
			describe: "address starting with 0x" + pattern,
		}, nil
	}

	parts := strings.Split(pattern, "...")
	if len(parts) != 2 {
		return nil, errors.New("pattern must have exactly one '...' separator")
	}
	leading, trailing := parts[0], parts[1]

	if len(leading)%2 != 0 {
		return nil, errors.New("leading part must have even number of characters")
	}
	if !isHex(leading) || !isHex(trailing) {
		return nil, errors.New("pattern must contain only hex characters")
	}
	if trailing != "" && len(trailing) != 2 {
		return nil, errors.New("trailing part must be exactly 2 characters")
	}
	if leading == "" && trailing == "" {
		return nil, errors.New("pattern cannot be empty")
	}
	if len(leading) > address.Size*2 {
		return nil, errors.New("leading part longer than an address")
	}

	if leading == "" {
		v, err := hexByte(trailing)
		if err != nil {
			return nil, err
		}
		return &Matcher{
			flags:    FlagTrailing,
			value:    uint32(v),
			length:   1,
			describe: "address ending with " + trailing,
		}, nil
	}

	if repeated, ok := repeatedByte(leading); ok {
		v, err := hexByte(repeated)
		if err != nil {
			return nil, err
		}
		m := &Matcher{
			flags:    FlagLeadingRun,
			value:    uint32(v),
			length:   uint32(len(leading) / 2),
			describe: "address starting with 0x" + leading,
		}
		if trailing != "" {
			t, err := hexByte(trailing)
			if err != nil {
				return nil, err
			}
			if m.length == 1 && t == v {
				m.flags = FlagBothEnds
			} else {
				m.flags = FlagLeadingTrailing
				m.value |= uint32(t) << 8
			}
			m.describe += " and ending with " + trailing
		}
		return m, nil
	}

	// Non-repeating leading part: matched as hex strings on the host.
	m := &Matcher{
		flags:    FlagFreeForm,
		prefix:   leading,
		suffix:   trailing,
		describe: "address matching pattern 0x" + pattern,
	}
	return m, nil
}

// LeadingZeros matches addresses with at least n leading zero bytes.
func LeadingZeros(n uint8) (*Matcher, error) {
	if err := validateZerosThreshold(n); err != nil {
		return nil, err
	}
	return &Matcher{
		flags:    FlagLeadingRun,
		value:    0,
		length:   uint32(n),
		describe: "address with " + itoa(n) + " leading zero bytes",
	}, nil
}

// TotalZeros matches addresses with at least n zero bytes anywhere.
func TotalZeros(n uint8) (*Matcher, error) {
	if err := validateZerosThreshold(n); err != nil {
		return nil, err
	}
	return &Matcher{
		flags:    FlagTotalZeros,
		length:   uint32(n),
		describe: "address with " + itoa(n) + " total zero bytes",
	}, nil
}

// LeadingAndTotalZeros requires both thresholds to hold.
func LeadingAndTotalZeros(leading, total uint8) (*Matcher, error) {
	if err := validateZerosThreshold(leading); err != nil {
		return nil, err
	}
	if err := validateZerosThreshold(total); err != nil {
		return nil, err
	}
	return &Matcher{
		flags:    FlagZerosAnd,
		leading:  uint32(leading),
		length:   uint32(total),
		describe: "address with " + itoa(leading) + " leading and " + itoa(total) + " total zero bytes",
	}, nil
}

// LeadingOrTotalZeros requires either threshold to hold.
func LeadingOrTotalZeros(leading, total uint8) (*Matcher, error) {
	if err := validateZerosThreshold(leading); err != nil {
		return nil, err
	}
	if err := validateZerosThreshold(total); err != nil {
		return nil, err
	}
	return &Matcher{
		flags:    FlagZerosOr,
		leading:  uint32(leading),
		length:   uint32(total),
		describe: "address with " + itoa(leading) + " leading or " + itoa(total) + " total zero bytes",
	}, nil
}

// Match reports whether the address satisfies the pattern.
func (m *Matcher) Match(a address.Address) bool {
	switch m.flags {
	case FlagLeading:
		return a[0] == byte(m.value)
	case FlagTrailing:
		return a[address.Size-1] == byte(m.value)
	case FlagBothEnds:
		return a[0] == byte(m.value) && a[address.Size-1] == byte(m.value)
	case FlagLeadingRun:
		return hasLeadingRun(a, byte(m.value), int(m.length))
	case FlagLeadingTrailing:
		return a[address.Size-1] == byte(m.value>>8) &&
			hasLeadingRun(a, byte(m.value), int(m.length))
	case FlagTotalZeros:
		return totalZeros(a) >= int(m.length)
	case FlagZerosAnd:
		return leadingZeros(a) >= int(m.leading) && totalZeros(a) >= int(m.length)
	case FlagZerosOr:
		return leadingZeros(a) >= int(m.leading) || totalZeros(a) >= int(m.length)
	case FlagFreeForm:
		return matchNibbles(a, m.prefix, m.suffix)
	default:
		return false
	}
}

// Config encodes the matcher as the 4-word pattern configuration record
// dispatched alongside a batch: [value, flags, length, reserved]. Free-form
// patterns carry only their flag; their hex parts stay host-side.
func (m *Matcher) Config() [4]uint32 {
	switch m.flags {
	case FlagZerosAnd, FlagZerosOr:
		return [4]uint32{m.leading, m.flags, m.length, 0}
	default:
		return [4]uint32{m.value, m.flags, m.length, 0}
	}
}

// Difficulty estimates the expected number of attempts to find one match,
// 16^(fixed nibbles). Zero-count kinds are estimated from their byte
// thresholds; the estimate saturates at the 128-bit maximum.
func (m *Matcher) Difficulty() uint128.Uint128 {
	var nibbles int
	switch m.flags {
	case FlagLeading, FlagTrailing:
		nibbles = 2
	case FlagBothEnds:
		nibbles = 4
	case FlagLeadingRun, FlagTotalZeros:
		nibbles = 2 * int(m.length)
	case FlagLeadingTrailing:
		nibbles = 2*int(m.length) + 2
	case FlagZerosAnd:
		nibbles = 2 * int(max(m.leading, m.length))
	case FlagZerosOr:
		nibbles = 2 * int(min(m.leading, m.length))
	case FlagFreeForm:
		nibbles = len(m.prefix) + len(m.suffix)
	}
	if nibbles*4 >= 128 {
		return uint128.Max
	}
	return uint128.From64(1).Lsh(uint(nibbles * 4))
}

func (m *Matcher) String() string {
	return m.describe
}

func hasLeadingRun(a address.Address, value byte, length int) bool {
	if length > address.Size {
		return false
	}
	for i := 0; i < length; i++ {
		if a[i] != value {
			return false
		}
	}
	return true
}

func leadingZeros(a address.Address) (n int) {
	for _, b := range a {
		if b != 0 {
			break
		}
		n++
	}
	return
}

func totalZeros(a address.Address) (n int) {
	for _, b := range a {
		if b == 0 {
			n++
		}
	}
	return
}

// matchNibbles compares the pattern's hex parts against the address nibble
// by nibble, without formatting the address.
func matchNibbles(a address.Address, prefix, suffix string) bool {
	if len(prefix) > address.Size*2 || len(suffix) > address.Size*2 {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		if nibbleAt(a, i) != hexValue(prefix[i]) {
			return false
		}
	}
	for i := 0; i < len(suffix); i++ {
		if nibbleAt(a, address.Size*2-len(suffix)+i) != hexValue(suffix[i]) {
			return false
		}
	}
	return true
}

func nibbleAt(a address.Address, i int) byte {
	if i%2 == 0 {
		return a[i/2] >> 4
	}
	return a[i/2] & 0xf
}

func hexValue(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	}
	return 0xff
}

func hexByte(s string) (byte, error) {
	if len(s) != 2 {
		return 0, errors.New("expected exactly one hex byte")
	}
	hi, lo := hexValue(s[0]), hexValue(s[1])
	if hi == 0xff || lo == 0xff {
		return 0, errors.New("pattern must contain only hex characters")
	}
	return hi<<4 | lo, nil
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		if hexValue(s[i]) == 0xff {
			return false
		}
	}
	return true
}

func repeatedByte(s string) (string, bool) {
	first := s[0:2]
	for i := 2; i < len(s); i += 2 {
		if s[i:i+2] != first {
			return "", false
		}
	}
	return first, true
}

func validateZerosThreshold(n uint8) error {
	if n == 0 {
		return errors.New("threshold must be greater than 0")
	}
	if n > maxZerosThreshold {
		return errors.New("threshold must be at most 20")
	}
	return nil
}

func itoa(n uint8) string {
	if n >= 10 {
		return string([]byte{'0' + n/10, '0' + n%10})
	}
	return string([]byte{'0' + n})
}
