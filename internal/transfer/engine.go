package transfer

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mpakhapoca/mget/internal/naming"
	"github.com/mpakhapoca/mget/internal/output"
	"github.com/mpakhapoca/mget/internal/utils"
)

// TransferState tracks one response stream. displayed advances by a full
// chunk per iteration and is clamped to TotalSize; BytesWritten counts what
// actually reached the file.
type TransferState struct {
	TotalSize    int64
	BytesWritten int64
	ChunkSize    int
	displayed    int64
}

func (s *TransferState) advance(n int) {
	s.BytesWritten += int64(n)
	s.displayed = min(s.displayed+int64(s.ChunkSize), s.TotalSize)
}

type TransferSummary struct {
	Target       utils.FileTarget
	TotalSize    int64
	BytesWritten int64
	Renders      int
	Elapsed      time.Duration
}

type Engine struct {
	client   utils.HTTPDoer
	progress io.Writer
	cfg      utils.Config
}

func NewEngine(client utils.HTTPDoer, progress io.Writer, cfg utils.Config) *Engine {
	return &Engine{client: client, progress: progress, cfg: cfg}
}

// Download performs the GET, names the file from the URL and the response
// headers, and streams the body into it. Nothing is created on disk unless
// the response is a 2xx with a valid Content-Length and a name was derived.
func (e *Engine) Download(req utils.DownloadRequest) (TransferSummary, error) {
	resp, total, err := e.fetch(req.URL())
	if err != nil {
		return TransferSummary{}, err
	}
	defer resp.Body.Close()
	target, err := naming.NewResolver(req.OutputDir()).Resolve(req.URL(), resp.Header)
	if err != nil {
		return TransferSummary{}, err
	}
	return e.stream(resp.Body, total, target, req.ChunkSize())
}

// Transfer streams rawURL into an already resolved target.
func (e *Engine) Transfer(rawURL string, target utils.FileTarget, chunkSize int) (TransferSummary, error) {
	if chunkSize <= 0 {
		return TransferSummary{}, &utils.TransferError{Op: "validating chunk size", Err: fmt.Errorf("chunk size must be positive, got %d", chunkSize)}
	}
	resp, total, err := e.fetch(rawURL)
	if err != nil {
		return TransferSummary{}, err
	}
	defer resp.Body.Close()
	return e.stream(resp.Body, total, target, chunkSize)
}

func (e *Engine) fetch(rawURL string) (*http.Response, int64, error) {
	log := utils.GetLogger("transfer")
	req, err := http.NewRequest("GET", rawURL, nil)
	if err != nil {
		return nil, 0, &utils.TransferError{Op: "creating GET request", Err: err}
	}
	req.Header.Set("Accept-Encoding", "identity")
	log.Debug().Str("url", rawURL).Msg("Starting download")
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, 0, &utils.TransferError{Op: "executing GET request", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, 0, &utils.TransferError{Op: "GET " + rawURL, StatusCode: resp.StatusCode, Err: utils.ErrBadStatus}
	}
	contentLength := resp.Header.Get("Content-Length")
	if contentLength == "" {
		resp.Body.Close()
		return nil, 0, &utils.TransferError{Op: "reading response metadata", Err: utils.ErrMissingContentLength}
	}
	size, err := strconv.ParseInt(contentLength, 10, 64)
	if err != nil || size < 0 {
		resp.Body.Close()
		return nil, 0, &utils.TransferError{Op: "reading response metadata", Err: fmt.Errorf("%w: %q", utils.ErrInvalidContentLength, contentLength)}
	}
	log.Debug().Int("status", resp.StatusCode).Int64("fileSize", size).Str("contentType", resp.Header.Get("Content-Type")).Msg("Response accepted")
	return resp, size, nil
}

func (e *Engine) stream(body io.Reader, total int64, target utils.FileTarget, chunkSize int) (summary TransferSummary, err error) {
	log := utils.GetLogger("transfer")
	start := time.Now()
	if err := os.MkdirAll(filepath.Dir(target.AbsolutePath), 0755); err != nil {
		return summary, &utils.TransferError{Op: "creating output directory", Err: err}
	}
	// O_EXCL makes a lost naming race fail instead of overwriting someone else's file
	outFile, err := os.OpenFile(target.AbsolutePath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return summary, &utils.TransferError{Op: "creating output file", Err: err}
	}
	state := TransferState{TotalSize: total, ChunkSize: chunkSize}
	summary = TransferSummary{Target: target, TotalSize: total}
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("op", "transfer/stream").Interface("panic", r).Msg("Unexpected error while writing")
			err = &utils.TransferError{Op: "writing " + target.FullName, Err: fmt.Errorf("%w: %v", utils.ErrUnexpected, r)}
		}
		if closeErr := outFile.Close(); closeErr != nil && err == nil {
			err = &utils.TransferError{Op: "closing output file", Err: closeErr}
		}
		summary.BytesWritten = state.BytesWritten
		summary.Elapsed = time.Since(start)
	}()

	buffer := make([]byte, chunkSize)
	lastComplete := false
	for {
		bytesRead, readErr := io.ReadFull(body, buffer)
		if bytesRead > 0 {
			if _, writeErr := outFile.Write(buffer[:bytesRead]); writeErr != nil {
				return summary, &utils.TransferError{Op: "writing to output file", Err: writeErr}
			}
			state.advance(bytesRead)
			e.render(state.displayed, total)
			summary.Renders++
			lastComplete = output.IsComplete(state.displayed, total)
		}
		if errors.Is(readErr, io.EOF) || errors.Is(readErr, io.ErrUnexpectedEOF) {
			break
		}
		if readErr != nil {
			return summary, &utils.TransferError{Op: "reading response body", Err: readErr}
		}
	}
	if state.displayed >= total && !lastComplete {
		e.render(100, 100)
		summary.Renders++
	}
	if state.BytesWritten != total {
		return summary, &utils.TransferError{
			Op:  "verifying download",
			Err: fmt.Errorf("%w: expected %d bytes, got %d", utils.ErrLengthMismatch, total, state.BytesWritten),
		}
	}
	if err := outFile.Sync(); err != nil {
		return summary, &utils.TransferError{Op: "syncing output file", Err: err}
	}
	log.Debug().Int64("downloadedSize", state.BytesWritten).Str("path", target.AbsolutePath).Msg("Download completed")
	return summary, nil
}

func (e *Engine) render(current, total int64) {
	line := output.RenderProgressBar(current, total, e.cfg.BarWidth, e.cfg.Prefix, e.cfg.Suffix, e.cfg.Decimals)
	io.WriteString(e.progress, line)
}
