package scan

import (
	"bytes"
	"io"
	"os"

	"enconv/internal/detect"
)

// sniffBinary reads the head of the file and reports whether it looks
// like binary content. The heuristic is a NUL byte in the sample window,
// with an exception for UTF-16/32 files, which legitimately interleave
// NULs and are identified by their byte-order mark.
func (w *Walker) sniffBinary(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer file.Close()

	sample := make([]byte, w.opts.SampleBytes)
	n, err := io.ReadFull(file, sample)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return false, err
	}
	sample = sample[:n]

	if bytes.IndexByte(sample, 0x00) < 0 {
		return false, nil
	}
	switch detect.SniffBOM(sample) {
	case detect.BOMUTF16LE, detect.BOMUTF16BE, detect.BOMUTF32LE, detect.BOMUTF32BE:
		return false, nil
	}
	return true, nil
}
