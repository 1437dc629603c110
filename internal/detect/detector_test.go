package detect

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func latin1Bytes(t *testing.T, s string) []byte {
	t.Helper()
	out, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	if err != nil {
		t.Fatalf("encode latin-1: %v", err)
	}
	return out
}

func TestDetectASCII(t *testing.T) {
	d := New(Options{})
	res := d.Detect([]byte("plain ascii text, nothing special"))
	if res.Encoding != "utf-8" {
		t.Fatalf("encoding = %q", res.Encoding)
	}
	if res.Confidence != 100 || !res.ValidUTF8 {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.NeedsConversion(true) {
		t.Fatal("ascii should not need conversion")
	}
}

func TestDetectUTF8Multibyte(t *testing.T) {
	d := New(Options{})
	res := d.Detect([]byte("naïve café — ☃"))
	if res.Encoding != "utf-8" || !res.ValidUTF8 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestDetectUTF8BOM(t *testing.T) {
	d := New(Options{})
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello")...)
	res := d.Detect(data)
	if res.BOM != BOMUTF8 {
		t.Fatalf("BOM = %v", res.BOM)
	}
	if res.Encoding != "utf-8" {
		t.Fatalf("encoding = %q", res.Encoding)
	}
	if !res.NeedsConversion(true) {
		t.Fatal("BOM should trigger conversion when stripping is on")
	}
	if res.NeedsConversion(false) {
		t.Fatal("BOM should not trigger conversion when stripping is off")
	}
}

func TestDetectUTF16LEBOM(t *testing.T) {
	d := New(Options{})
	data := []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00}
	res := d.Detect(data)
	if res.Encoding != "utf-16le" {
		t.Fatalf("encoding = %q", res.Encoding)
	}
	if res.Confidence != 100 {
		t.Fatalf("confidence = %d", res.Confidence)
	}
	if !res.NeedsConversion(true) {
		t.Fatal("utf-16 should need conversion")
	}
}

func TestDetectLatin1(t *testing.T) {
	d := New(Options{ConfidenceThreshold: 0})
	sample := latin1Bytes(t, strings.Repeat("Möglichkeiten für Österreich und Kitzbühel. ", 50))
	res := d.Detect(sample)
	if res.Fallback {
		t.Fatalf("expected a statistical verdict, got fallback: %+v", res)
	}
	if res.Encoding == "utf-8" {
		t.Fatalf("latin-1 bytes misread as utf-8: %+v", res)
	}
	if !res.NeedsConversion(true) {
		t.Fatal("latin-1 should need conversion")
	}
}

func TestDetectFallsBackBelowThreshold(t *testing.T) {
	d := New(Options{FallbackEncoding: "windows-1252", ConfidenceThreshold: 101})
	res := d.Detect(latin1Bytes(t, "Bücher über die Straße"))
	if !res.Fallback {
		t.Fatalf("expected fallback, got %+v", res)
	}
	if res.Encoding != "windows-1252" {
		t.Fatalf("fallback encoding = %q", res.Encoding)
	}
}

func TestDetectFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.txt")
	if err := os.WriteFile(path, []byte("just ascii\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	d := New(Options{SampleBytes: 1024})
	res, err := d.DetectFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if res.Encoding != "utf-8" {
		t.Fatalf("encoding = %q", res.Encoding)
	}
}

func TestSniffBOMOrder(t *testing.T) {
	tests := []struct {
		data []byte
		want BOM
	}{
		{[]byte{0xFF, 0xFE, 0x00, 0x00, 0x41, 0x00, 0x00, 0x00}, BOMUTF32LE},
		{[]byte{0x00, 0x00, 0xFE, 0xFF}, BOMUTF32BE},
		{[]byte{0xFF, 0xFE, 0x41, 0x00}, BOMUTF16LE},
		{[]byte{0xFE, 0xFF, 0x00, 0x41}, BOMUTF16BE},
		{[]byte{0xEF, 0xBB, 0xBF, 'a'}, BOMUTF8},
		{[]byte("abc"), BOMNone},
		{nil, BOMNone},
	}
	for _, tt := range tests {
		if got := SniffBOM(tt.data); got != tt.want {
			t.Errorf("SniffBOM(% x) = %v, want %v", tt.data, got, tt.want)
		}
	}
}

func TestValidSampleTruncatedRune(t *testing.T) {
	full := []byte("snow ☃ man")
	cut := full[:bytes.IndexByte(full, 0x83)]

	if !validSample(cut, true) {
		t.Fatal("rune cut by the sampling window should be tolerated")
	}
	if validSample(cut, false) {
		t.Fatal("partial rune at end of a whole file is invalid")
	}
	if validSample([]byte{'a', 0xFF, 'b'}, true) {
		t.Fatal("interior invalid byte must not be tolerated")
	}
}

func TestDetectLegacyFinalHighByte(t *testing.T) {
	d := New(Options{})
	res := d.Detect([]byte("caf\xe9"))
	if res.ValidUTF8 {
		t.Fatalf("trailing 0xE9 misread as clean utf-8: %+v", res)
	}
	if !res.NeedsConversion(true) {
		t.Fatal("file ending in a bare high byte must need conversion")
	}
}

func TestDetectFileWholeFileEndingInHighByte(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cafe.txt")
	if err := os.WriteFile(path, []byte("caf\xe9"), 0o644); err != nil {
		t.Fatal(err)
	}

	d := New(Options{})
	res, err := d.DetectFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if res.ValidUTF8 {
		t.Fatalf("unexpected result %+v", res)
	}
	if !res.NeedsConversion(true) {
		t.Fatal("expected conversion for a legacy file ending mid-rune")
	}
}

func TestDetectFileWindowCutsRune(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "long.txt")
	content := append(bytes.Repeat([]byte{'a'}, 1023), []byte("é plus more text past the window")...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	d := New(Options{SampleBytes: 1024})
	res, err := d.DetectFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !res.ValidUTF8 || res.Encoding != "utf-8" {
		t.Fatalf("window cutting a rune should still read as utf-8: %+v", res)
	}
}
