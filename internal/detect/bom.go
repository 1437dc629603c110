package detect

import "bytes"

// BOM identifies a byte-order mark found at the start of a file.
type BOM int

const (
	BOMNone BOM = iota
	BOMUTF8
	BOMUTF16LE
	BOMUTF16BE
	BOMUTF32LE
	BOMUTF32BE
)

var bomEncodings = map[BOM]string{
	BOMUTF8:    "utf-8",
	BOMUTF16LE: "utf-16le",
	BOMUTF16BE: "utf-16be",
	BOMUTF32LE: "utf-32le",
	BOMUTF32BE: "utf-32be",
}

// String returns the encoding label associated with the mark.
func (b BOM) String() string {
	if name, ok := bomEncodings[b]; ok {
		return name
	}
	return "none"
}

// Len returns the mark's length in bytes.
func (b BOM) Len() int {
	switch b {
	case BOMUTF8:
		return 3
	case BOMUTF16LE, BOMUTF16BE:
		return 2
	case BOMUTF32LE, BOMUTF32BE:
		return 4
	default:
		return 0
	}
}

// SniffBOM inspects the head of data for a byte-order mark. The UTF-32
// checks run before UTF-16 because a UTF-32LE mark begins with the
// UTF-16LE mark's bytes.
func SniffBOM(data []byte) BOM {
	switch {
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE, 0x00, 0x00}):
		return BOMUTF32LE
	case bytes.HasPrefix(data, []byte{0x00, 0x00, 0xFE, 0xFF}):
		return BOMUTF32BE
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return BOMUTF8
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return BOMUTF16LE
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return BOMUTF16BE
	default:
		return BOMNone
	}
}
