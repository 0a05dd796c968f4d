// Package docs fetches the documentation page linked from a specifier
// record and extracts a short plain-text excerpt, so the bot can answer
// "what does the linked page say" without the user leaving chat.
package docs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

const (
	// maxBodySize limits how much HTML we read from a docs page.
	maxBodySize = 10 * 1024 * 1024
	// defaultExcerptLen is the maximum excerpt length in runes.
	defaultExcerptLen = 600
	// cacheSize bounds the per-URL excerpt cache. Catalogs hold at most a
	// few hundred records, so this effectively caches everything.
	cacheSize = 256
)

// Excerpter fetches and caches documentation excerpts keyed by URL.
type Excerpter struct {
	http   *http.Client
	cache  *lru.Cache[string, string]
	maxLen int
	logger *zap.Logger
}

func NewExcerpter(logger *zap.Logger) (*Excerpter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Excerpter{
		http:   &http.Client{Timeout: 15 * time.Second},
		cache:  cache,
		maxLen: defaultExcerptLen,
		logger: logger,
	}, nil
}

// Excerpt returns a readable plain-text excerpt of the page at rawURL.
// Results are cached; a cached excerpt never triggers a network read.
func (e *Excerpter) Excerpt(ctx context.Context, rawURL string) (string, error) {
	if cached, ok := e.cache.Get(rawURL); ok {
		return cached, nil
	}

	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse docs url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build docs request: %w", err)
	}
	req.Header.Set("User-Agent", "benbot")

	resp, err := e.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch docs page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch docs page: status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("read docs page: %w", err)
	}

	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return "", fmt.Errorf("extract docs text: %w", err)
	}

	excerpt := truncate(collapseWhitespace(article.TextContent), e.maxLen)
	if excerpt == "" {
		return "", fmt.Errorf("docs page has no readable text")
	}

	e.cache.Add(rawURL, excerpt)
	e.logger.Debug("docs excerpt cached",
		zap.String("url", rawURL),
		zap.Int("length", len(excerpt)))
	return excerpt, nil
}

// collapseWhitespace squeezes runs of whitespace (readability output is
// full of layout newlines) into single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max])) + "…"
}
