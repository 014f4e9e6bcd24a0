package utils

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.00 KB"},
		{10 * 1024 * 1024, "10.00 MB"},
		{1536 * 1024 * 1024, "1.50 GB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatSpeed(t *testing.T) {
	if got := FormatSpeed(2048, 2); got != "1.00 KB/s" {
		t.Errorf("FormatSpeed = %q", got)
	}
	if got := FormatSpeed(2048, 0); got != "0 B/s" {
		t.Errorf("FormatSpeed with zero elapsed = %q", got)
	}
}

func writeBatch(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadBatchFile(t *testing.T) {
	path := writeBatch(t, `
- link: https://example.com/a.zip
- link: https://example.com/b.iso
  op: /tmp/isos
`)
	entries, err := ReadBatchFile(path)
	if err != nil {
		t.Fatalf("ReadBatchFile: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].OutputDir != "" || entries[1].OutputDir != "/tmp/isos" {
		t.Errorf("unexpected output dirs: %+v", entries)
	}
}

func TestReadBatchFile_Errors(t *testing.T) {
	if _, err := ReadBatchFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := ReadBatchFile(writeBatch(t, "link: [unterminated")); err == nil {
		t.Error("expected error for malformed YAML")
	}
	_, err := ReadBatchFile(writeBatch(t, "- op: /tmp\n"))
	if err == nil || !strings.Contains(err.Error(), "entry 1") {
		t.Errorf("expected missing link error, got %v", err)
	}
}

func TestTransferError_Unwrap(t *testing.T) {
	err := &TransferError{Op: "GET http://x/a", StatusCode: 503, Err: ErrBadStatus}
	if !errors.Is(err, ErrBadStatus) {
		t.Error("expected errors.Is to find ErrBadStatus")
	}
	if got := err.Error(); got != "GET http://x/a: unexpected status code: 503" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestNamingError_Unwrap(t *testing.T) {
	parseErr := &ExtensionParseError{ContentType: "garbage"}
	err := &NamingError{URL: "http://x/a", Reason: "no usable extension", Err: parseErr}
	var target *ExtensionParseError
	if !errors.As(err, &target) || target.ContentType != "garbage" {
		t.Errorf("expected wrapped ExtensionParseError, got %v", err)
	}
}
