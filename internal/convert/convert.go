package convert

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Options describes the rewrite policy applied after decoding.
type Options struct {
	// Newline is "keep", "lf", or "crlf".
	Newline string
	// NormalizeForm is "none", "nfc", "nfd", "nfkc", or "nfkd".
	NormalizeForm string
	// StripBOM removes a leading U+FEFF from the decoded text.
	StripBOM bool
}

// Decode converts data from the named encoding to UTF-8, substituting
// U+FFFD for byte sequences that are invalid under that encoding. It
// returns the decoded text and the number of substitutions made.
//
// For multibyte source encodings the substitution count is derived from
// U+FFFD occurrences in the output, so text that legitimately contained
// the replacement character inflates it slightly.
func Decode(data []byte, encodingName string) ([]byte, int, error) {
	enc, err := Lookup(encodingName)
	if err != nil {
		return nil, 0, err
	}
	if enc == nil {
		return decodeUTF8(data)
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, 0, fmt.Errorf("decode as %s: %w", encodingName, err)
	}
	return decoded, bytes.Count(decoded, []byte(string(utf8.RuneError))), nil
}

// decodeUTF8 revalidates UTF-8 input, replacing each invalid byte with
// U+FFFD. Valid input is returned unchanged.
func decodeUTF8(data []byte) ([]byte, int, error) {
	if utf8.Valid(data) {
		return data, 0, nil
	}

	out := make([]byte, 0, len(data)+16)
	replacements := 0
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			out = utf8.AppendRune(out, utf8.RuneError)
			replacements++
		} else {
			out = append(out, data[:size]...)
		}
		data = data[size:]
	}
	return out, replacements, nil
}

// ApplyPolicy applies BOM stripping, newline normalization, and Unicode
// normalization to decoded UTF-8 text.
func ApplyPolicy(text []byte, opts Options) []byte {
	if opts.StripBOM {
		text = bytes.TrimPrefix(text, []byte("\uFEFF"))
	}

	switch opts.Newline {
	case "lf":
		text = normalizeToLF(text)
	case "crlf":
		text = bytes.ReplaceAll(normalizeToLF(text), []byte("\n"), []byte("\r\n"))
	}

	if form, ok := normForms[opts.NormalizeForm]; ok {
		if !form.IsNormal(text) {
			text = form.Bytes(text)
		}
	}
	return text
}

var normForms = map[string]norm.Form{
	"nfc":  norm.NFC,
	"nfd":  norm.NFD,
	"nfkc": norm.NFKC,
	"nfkd": norm.NFKD,
}

func normalizeToLF(text []byte) []byte {
	text = bytes.ReplaceAll(text, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(text, []byte("\r"), []byte("\n"))
}
