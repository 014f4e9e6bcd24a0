package utils

import (
	"fmt"
	"net/http"
	u "net/url"
	"os"
	"path/filepath"
	"strings"
)

const DefaultChunkSize = 1024 * 1024 // 1MB chunks
const DefaultBarWidth = 60

var MgetVersion = "0.1.0"

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config is built once at startup and handed to every component by value.
type Config struct {
	ChunkSize int
	OutputDir string
	Prefix    string
	Suffix    string
	Decimals  int
	BarWidth  int
	ProxyURL  string
}

func DefaultConfig() Config {
	return Config{
		ChunkSize: DefaultChunkSize,
		BarWidth:  DefaultBarWidth,
	}
}

type DownloadRequest struct {
	url       string
	outputDir string
	chunkSize int
}

func NewDownloadRequest(rawURL, outputDir string, chunkSize int) (DownloadRequest, error) {
	if strings.TrimSpace(rawURL) == "" {
		return DownloadRequest{}, fmt.Errorf("url must not be empty")
	}
	if _, err := u.ParseRequestURI(rawURL); err != nil {
		return DownloadRequest{}, fmt.Errorf("invalid URL: %w", err)
	}
	if chunkSize <= 0 {
		return DownloadRequest{}, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return DownloadRequest{}, fmt.Errorf("error resolving working directory: %w", err)
		}
		outputDir = wd
	}
	absDir, err := filepath.Abs(outputDir)
	if err != nil {
		return DownloadRequest{}, fmt.Errorf("error resolving output directory: %w", err)
	}
	return DownloadRequest{url: rawURL, outputDir: absDir, chunkSize: chunkSize}, nil
}

func (r DownloadRequest) URL() string       { return r.url }
func (r DownloadRequest) OutputDir() string { return r.outputDir }
func (r DownloadRequest) ChunkSize() int    { return r.chunkSize }

type FileTarget struct {
	BaseName     string
	Extension    string
	FullName     string
	AbsolutePath string
}

type BatchEntry struct {
	OutputDir string `yaml:"op,omitempty"`
	Link      string `yaml:"link"`
}

type Job struct {
	ID      string
	Request DownloadRequest
}
