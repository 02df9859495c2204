// Package kb is the read-side client for the design knowledge base: a
// Fuseki-style SPARQL endpoint holding previously manufactured designs.
// It is consumed only to warm-start the genetic optimizer, so every entry
// point is best-effort; the optimizer never depends on it for correctness.
package kb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Design is one knowledge-base design record.
type Design struct {
	ID          string  `json:"design_id"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Depth       float64 `json:"depth"`
	Thickness   float64 `json:"thickness"`
	NumShelves  int     `json:"n_shelves"`
	NumDividers int     `json:"n_dividers"`
	Material    string  `json:"material"`
}

// Client queries the knowledge-base SPARQL endpoint.
type Client struct {
	baseURL string
	dataset string
	httpc   *http.Client
}

// NewClient creates a client for the given endpoint, e.g.
// NewClient("http://localhost:3030", "bookshelf", 5*time.Second).
func NewClient(baseURL, dataset string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		dataset: dataset,
		httpc:   &http.Client{Timeout: timeout},
	}
}

const designQueryTemplate = `
PREFIX bs: <http://shelfforge.example/ontology#>
SELECT ?id ?width ?height ?depth ?thickness ?shelves ?dividers ?material
WHERE {
  ?design a bs:Design ;
          bs:id ?id ;
          bs:width ?width ;
          bs:height ?height ;
          bs:depth ?depth ;
          bs:thickness ?thickness ;
          bs:numShelves ?shelves ;
          bs:numDividers ?dividers ;
          bs:material ?material .
  FILTER (?width >= %g && ?width <= %g)
  FILTER (?height >= %g && ?height <= %g)
  FILTER (?depth >= %g && ?depth <= %g)
}
ORDER BY ?width
LIMIT 20
`

// SearchSimilarDesigns returns stored designs whose envelope is within the
// relative tolerance of the requested one (tolerance 0.1 = ±10%), ordered
// by width.
func (c *Client) SearchSimilarDesigns(ctx context.Context, width, height, depth, tolerance float64) ([]Design, error) {
	query := fmt.Sprintf(designQueryTemplate,
		width*(1-tolerance), width*(1+tolerance),
		height*(1-tolerance), height*(1+tolerance),
		depth*(1-tolerance), depth*(1+tolerance))

	endpoint := fmt.Sprintf("%s/%s/query", c.baseURL, c.dataset)
	form := url.Values{"query": {query}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("building knowledge base query: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/sparql-results+json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying knowledge base: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("knowledge base returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading knowledge base response: %w", err)
	}

	return parseResults(body)
}

// sparqlResults is the standard SPARQL JSON results envelope.
type sparqlResults struct {
	Results struct {
		Bindings []map[string]sparqlValue `json:"bindings"`
	} `json:"results"`
}

type sparqlValue struct {
	Value string `json:"value"`
}

func parseResults(body []byte) ([]Design, error) {
	var envelope sparqlResults
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding knowledge base response: %w", err)
	}

	designs := make([]Design, 0, len(envelope.Results.Bindings))
	for _, b := range envelope.Results.Bindings {
		designs = append(designs, Design{
			ID:          b["id"].Value,
			Width:       floatBinding(b, "width"),
			Height:      floatBinding(b, "height"),
			Depth:       floatBinding(b, "depth"),
			Thickness:   floatBinding(b, "thickness"),
			NumShelves:  int(floatBinding(b, "shelves")),
			NumDividers: int(floatBinding(b, "dividers")),
			Material:    b["material"].Value,
		})
	}
	return designs, nil
}

func floatBinding(b map[string]sparqlValue, key string) float64 {
	f, _ := strconv.ParseFloat(b[key].Value, 64)
	return f
}

// BestEffortSeeds wraps SearchSimilarDesigns with the degradation policy
// the optimizer requires: any failure or timeout is logged and yields an
// empty seed list, never an error.
func BestEffortSeeds(ctx context.Context, c *Client, width, height, depth, tolerance float64, logger *slog.Logger) []Design {
	if logger == nil {
		logger = slog.Default()
	}
	if c == nil {
		return nil
	}
	designs, err := c.SearchSimilarDesigns(ctx, width, height, depth, tolerance)
	if err != nil {
		logger.Warn("knowledge base seeding unavailable, continuing without seeds", "error", err)
		return nil
	}
	return designs
}
