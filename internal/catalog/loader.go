// Package catalog fetches the default player catalog at startup.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

// MaxSize caps the bytes read from any one candidate
const MaxSize = 32 << 20

// DefaultCandidates are tried when no candidates are configured
var DefaultCandidates = []string{
	"./Quotazioni_Fantacalcio.xlsx",
	"./data/Quotazioni_Fantacalcio.xlsx",
}

// Loader tries each candidate in order until one yields a file
type Loader struct {
	candidates []string
	client     *http.Client
	logger     *slog.Logger
}

// NewLoader creates a loader over the given candidates. Each candidate is
// either an http(s) URL or a local file path.
func NewLoader(candidates []string, client *http.Client, logger *slog.Logger) *Loader {
	if len(candidates) == 0 {
		candidates = DefaultCandidates
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Loader{
		candidates: candidates,
		client:     client,
		logger:     logger,
	}
}

// Load returns the bytes of the first candidate that could be read along
// with its name. When every candidate fails the individual errors are
// joined.
func (l *Loader) Load(ctx context.Context) ([]byte, string, error) {
	var errs []error
	for _, c := range l.candidates {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}
		data, err := l.fetch(ctx, c)
		if err != nil {
			l.logger.Debug("catalog candidate failed",
				slog.String("candidate", c),
				slog.String("error", err.Error()),
			)
			errs = append(errs, fmt.Errorf("%s: %w", c, err))
			continue
		}
		return data, c, nil
	}
	return nil, "", fmt.Errorf("no catalog candidate could be loaded: %w", errors.Join(errs...))
}

func (l *Loader) fetch(ctx context.Context, candidate string) ([]byte, error) {
	if isURL(candidate) {
		return l.fetchURL(ctx, candidate)
	}
	return readFile(candidate)
}

func (l *Loader) fetchURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return readLimited(resp.Body)
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return readLimited(f)
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxSize {
		return nil, fmt.Errorf("file exceeds %d bytes", MaxSize)
	}
	if len(data) == 0 {
		return nil, errors.New("file is empty")
	}
	return data, nil
}

func isURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
