package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/benbot/benbot/pkg/specifier"
)

// DefaultBaseURL is the raw-file root of the upstream specifier docs repo.
const DefaultBaseURL = "https://raw.githubusercontent.com/benui-dev/UE-Specifier-Docs/main/yaml"

// Fetch failure taxonomy. All three are per-category and non-fatal: the
// category is marked not-loaded and siblings keep going.
var (
	// ErrUnavailable covers transport failures and non-2xx responses.
	ErrUnavailable = errors.New("catalog unavailable")
	// ErrSyntax covers documents that are not parseable YAML at all.
	ErrSyntax = errors.New("catalog syntax error")
	// ErrMalformedSchema covers parseable documents with the wrong shape:
	// no top-level mapping, no specifiers key, or non-mapping items.
	ErrMalformedSchema = errors.New("catalog schema malformed")
)

// catalogFiles maps each category to its document name under the base URL.
var catalogFiles = map[specifier.Category]string{
	specifier.CategoryProperty: "uproperty.yml",
	specifier.CategoryClass:    "uclass.yml",
	specifier.CategoryEnum:     "uenum.yml",
	specifier.CategoryFunction: "ufunction.yml",
}

// maxDocumentSize caps how much of a catalog response we will read.
const maxDocumentSize = 10 * 1024 * 1024

// Client fetches and parses one catalog document per category.
type Client struct {
	http    *http.Client
	baseURL string
	logger  *zap.Logger
}

// NewClient returns a fetcher rooted at baseURL (DefaultBaseURL when
// empty).
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		logger:  logger,
	}
}

// URL returns the document URL for cat.
func (c *Client) URL(cat specifier.Category) string {
	return fmt.Sprintf("%s/%s", c.baseURL, catalogFiles[cat])
}

// Fetch retrieves and parses the catalog for cat. Records without a name
// are dropped and logged; they never fail the whole document.
func (c *Client) Fetch(ctx context.Context, cat specifier.Category) ([]specifier.Record, error) {
	if !cat.Valid() {
		return nil, fmt.Errorf("unknown category %q", cat)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(cat), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("User-Agent", "benbot")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %s", ErrUnavailable, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrUnavailable, err)
	}

	records, err := parseCatalog(body, c.logger.With(zap.String("category", cat.String())))
	if err != nil {
		return nil, err
	}
	return records, nil
}

// parseCatalog decodes a catalog document. The expected shape is a
// top-level mapping with a specifiers key holding a sequence of mappings.
func parseCatalog(body []byte, logger *zap.Logger) ([]specifier.Record, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(body, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrMalformedSchema)
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level is not a mapping", ErrMalformedSchema)
	}

	var list *yaml.Node
	for i := 0; i+1 < len(top.Content); i += 2 {
		if top.Content[i].Value == "specifiers" {
			list = top.Content[i+1]
			break
		}
	}
	if list == nil {
		return nil, fmt.Errorf("%w: missing specifiers key", ErrMalformedSchema)
	}
	if list.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: specifiers is not a sequence", ErrMalformedSchema)
	}

	records := make([]specifier.Record, 0, len(list.Content))
	skipped := 0
	for _, item := range list.Content {
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: specifier entry at line %d is not a mapping", ErrMalformedSchema, item.Line)
		}
		var rec specifier.Record
		if err := item.Decode(&rec); err != nil {
			return nil, fmt.Errorf("%w: specifier entry at line %d: %v", ErrMalformedSchema, item.Line, err)
		}
		if rec.Name == "" {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	if skipped > 0 {
		logger.Warn("skipped records with no name", zap.Int("skipped", skipped))
	}
	return records, nil
}
