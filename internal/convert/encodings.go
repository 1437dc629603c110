package convert

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"

	"enconv/internal/textutil"
)

// aliases covers labels chardet and users produce that the HTML index
// does not resolve, plus spellings where we want a specific charmap
// rather than the index's HTML-flavored substitution.
var aliases = map[string]encoding.Encoding{
	"ascii":    nil, // UTF-8 subset, handled by the caller's fast path
	"us-ascii": nil,
	"latin1":   charmap.ISO8859_1,
	"cp1252":   charmap.Windows1252,
	"utf-16":   unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	"utf-32le": utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM),
	"utf-32be": utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM),
	"utf-32":   utf32.UTF32(utf32.LittleEndian, utf32.UseBOM),
	// chardet reports "GB-18030" and "Shift_JIS"; the canonical forms
	// of those spellings are not WHATWG labels. ISO-2022-CN and
	// ISO-2022-KR have no x/text decoder and stay unresolvable.
	"gb-18030":  simplifiedchinese.GB18030,
	"shift-jis": japanese.ShiftJIS,
}

// Lookup resolves an encoding label to a decoder. UTF-8 and ASCII return
// (nil, nil): the caller decodes those natively so replacement positions
// can be counted exactly.
func Lookup(label string) (encoding.Encoding, error) {
	name := textutil.CanonicalEncoding(label)
	if name == "" || name == "utf-8" {
		return nil, nil
	}
	if enc, ok := aliases[name]; ok {
		return enc, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q", label)
	}
	if enc == unicode.UTF8 {
		return nil, nil
	}
	return enc, nil
}
