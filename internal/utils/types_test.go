package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDownloadRequest(t *testing.T) {
	dir := t.TempDir()
	req, err := NewDownloadRequest("https://example.com/a.zip", dir, 512)
	if err != nil {
		t.Fatalf("NewDownloadRequest: %v", err)
	}
	if req.URL() != "https://example.com/a.zip" || req.OutputDir() != dir || req.ChunkSize() != 512 {
		t.Errorf("unexpected request %+v", req)
	}
}

func TestNewDownloadRequest_DefaultsToWorkingDirectory(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	req, err := NewDownloadRequest("https://example.com/a.zip", "", DefaultChunkSize)
	if err != nil {
		t.Fatalf("NewDownloadRequest: %v", err)
	}
	if req.OutputDir() != wd {
		t.Errorf("expected %s, got %s", wd, req.OutputDir())
	}
}

func TestNewDownloadRequest_RelativeDirIsAbsolute(t *testing.T) {
	req, err := NewDownloadRequest("https://example.com/a.zip", "downloads", DefaultChunkSize)
	if err != nil {
		t.Fatalf("NewDownloadRequest: %v", err)
	}
	if !filepath.IsAbs(req.OutputDir()) {
		t.Errorf("expected absolute dir, got %s", req.OutputDir())
	}
}

func TestNewDownloadRequest_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		chunkSize int
	}{
		{"empty url", "", DefaultChunkSize},
		{"blank url", "   ", DefaultChunkSize},
		{"relative url", "a.zip", DefaultChunkSize},
		{"zero chunk", "https://example.com/a.zip", 0},
		{"negative chunk", "https://example.com/a.zip", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewDownloadRequest(tt.url, t.TempDir(), tt.chunkSize); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
