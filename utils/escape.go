package utils

import (
	"fmt"
	"hash"
	"io"

	_ "unsafe"
)

// These functions allow defeat of the escape analysis to prevent heap allocations.
// It is the caller responsibility to ensure this is safe

func _appendf(buf []byte, format string, v ...any) []byte {
	return fmt.Appendf(buf, format, v...)
}

func _sprintf(format string, v ...any) string {
	return fmt.Sprintf(format, v...)
}

func _write(writer io.Writer, buf []byte) (n int, err error) {
	return writer.Write(buf)
}

func _read(reader io.Reader, buf []byte) (n int, err error) {
	return reader.Read(buf)
}

func _sum(hasher hash.Hash, buf []byte) []byte {
	return hasher.Sum(buf)
}

//go:noescape
//go:linkname AppendfNoEscape github.com/ethvanity/crunch/utils._appendf
func AppendfNoEscape(buf []byte, format string, v ...any) []byte

//go:noescape
//go:linkname SprintfNoEscape github.com/ethvanity/crunch/utils._sprintf
func SprintfNoEscape(format string, v ...any) string

//go:noescape
//go:linkname WriteNoEscape github.com/ethvanity/crunch/utils._write
func WriteNoEscape(writer io.Writer, buf []byte) (n int, err error)

//go:noescape
//go:linkname ReadNoEscape github.com/ethvanity/crunch/utils._read
func ReadNoEscape(reader io.Reader, buf []byte) (n int, err error)

//go:noescape
//go:linkname SumNoEscape github.com/ethvanity/crunch/utils._sum
func SumNoEscape(hasher hash.Hash, buf []byte) []byte
