package textutil

import "testing"

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
		{3 * 1024 * 1024 * 1024, "3.0 GiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCanonicalEncoding(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"UTF-8", "utf-8"},
		{"utf8", "utf-8"},
		{"UTF_8", "utf-8"},
		{"  windows_1252 ", "windows-1252"},
		{"GB-18030", "gb-18030"},
		{"ISO 8859 1", "iso-8859-1"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CanonicalEncoding(tt.in); got != tt.want {
			t.Errorf("CanonicalEncoding(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDisplayEncoding(t *testing.T) {
	if got := DisplayEncoding("utf8"); got != "UTF-8" {
		t.Errorf("DisplayEncoding(utf8) = %q", got)
	}
	if got := DisplayEncoding("Windows-1252"); got != "windows-1252" {
		t.Errorf("DisplayEncoding(Windows-1252) = %q", got)
	}
}

func TestTernary(t *testing.T) {
	if got := Ternary(true, "a", "b"); got != "a" {
		t.Errorf("Ternary(true) = %q", got)
	}
	if got := Ternary(false, 1, 2); got != 2 {
		t.Errorf("Ternary(false) = %d", got)
	}
}
