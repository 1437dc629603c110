package detect

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/saintfish/chardet"

	"enconv/internal/textutil"
)

// Result describes the outcome of encoding detection for one file.
type Result struct {
	// Encoding is the canonical label of the best guess, never empty.
	Encoding string
	// Confidence is the detector's score from 0 to 100. BOM and clean
	// UTF-8 verdicts report 100.
	Confidence int
	// BOM is the byte-order mark found at the start of the file, if any.
	BOM BOM
	// ValidUTF8 reports whether the sampled bytes already form valid UTF-8.
	ValidUTF8 bool
	// Fallback reports that detection was inconclusive and the configured
	// fallback encoding was assumed.
	Fallback bool
}

// NeedsConversion reports whether rewriting the file would change it:
// anything that is not already BOM-less valid UTF-8 qualifies. The
// stripBOM argument mirrors the conversion policy; when BOM stripping is
// disabled a UTF-8 file with a BOM counts as converted already.
func (r Result) NeedsConversion(stripBOM bool) bool {
	if r.Encoding != "utf-8" {
		return true
	}
	if !r.ValidUTF8 {
		return true
	}
	return stripBOM && r.BOM == BOMUTF8
}

// Options configures a Detector.
type Options struct {
	// SampleBytes bounds how much of the file head is read. Zero uses 64 KiB.
	SampleBytes int
	// FallbackEncoding is assumed when detection is inconclusive. Empty
	// means UTF-8.
	FallbackEncoding string
	// ConfidenceThreshold is the minimum chardet confidence (0-100)
	// required to trust a statistical guess.
	ConfidenceThreshold int
}

// Detector estimates file encodings. It is safe for concurrent use.
type Detector struct {
	sampleBytes int
	fallback    string
	threshold   int
}

const defaultSampleBytes = 64 * 1024

// New constructs a Detector from options.
func New(opts Options) *Detector {
	sample := opts.SampleBytes
	if sample <= 0 {
		sample = defaultSampleBytes
	}
	fallback := textutil.CanonicalEncoding(opts.FallbackEncoding)
	if fallback == "" {
		fallback = "utf-8"
	}
	return &Detector{
		sampleBytes: sample,
		fallback:    fallback,
		threshold:   opts.ConfidenceThreshold,
	}
}

// DetectFile samples the head of the file at path and estimates its
// encoding. One extra byte is read past the window so detection knows
// whether the sample covers the whole file.
func (d *Detector) DetectFile(path string) (Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	sample := make([]byte, d.sampleBytes+1)
	n, err := io.ReadFull(file, sample)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return Result{}, fmt.Errorf("read %s: %w", path, err)
	}
	if n > d.sampleBytes {
		return d.detect(sample[:d.sampleBytes], true), nil
	}
	return d.detect(sample[:n], false), nil
}

// Detect estimates the encoding of a complete byte sequence.
func (d *Detector) Detect(sample []byte) Result {
	return d.detect(sample, false)
}

func (d *Detector) detect(sample []byte, truncated bool) Result {
	result := Result{BOM: SniffBOM(sample)}

	if result.BOM != BOMNone {
		result.Encoding = result.BOM.String()
		result.Confidence = 100
		result.ValidUTF8 = result.BOM == BOMUTF8 && validSample(sample[result.BOM.Len():], truncated)
		return result
	}

	if validSample(sample, truncated) {
		result.Encoding = "utf-8"
		result.Confidence = 100
		result.ValidUTF8 = true
		return result
	}

	best, err := textDetector.DetectBest(sample)
	if err != nil || best == nil || best.Charset == "" || best.Confidence < d.threshold {
		result.Encoding = d.fallback
		result.Fallback = true
		return result
	}

	result.Encoding = textutil.CanonicalEncoding(best.Charset)
	result.Confidence = best.Confidence
	return result
}

// textDetector is shared; chardet detectors are stateless after construction.
var textDetector = chardet.NewTextDetector()

// validSample reports whether sample is valid UTF-8. When truncated is
// true the sample stops short of the file's end, and a single rune cut
// in half by the window is tolerated; a complete file ending in a
// partial rune is simply invalid.
func validSample(sample []byte, truncated bool) bool {
	if utf8.Valid(sample) {
		return true
	}
	if !truncated {
		return false
	}
	// Back up past trailing continuation bytes and the lead byte of the
	// rune the window cut in half, then re-validate what remains.
	end := len(sample)
	for i := 0; i < 3 && end > 0 && sample[end-1]&0xC0 == 0x80; i++ {
		end--
	}
	if end == 0 || sample[end-1]&0xC0 != 0xC0 {
		return false
	}
	end--
	return utf8.Valid(sample[:end])
}
