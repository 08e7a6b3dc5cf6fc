package catalog_client

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/mcdev12/draftroom/go/clients"
	"github.com/mcdev12/draftroom/go/internal/draft"
)

// CatalogClient resolves entity eligibility against the catalog service.
// Verdicts are cached per entity and format for the cache TTL so a busy
// draft room does not hammer the catalog with repeat lookups.
type CatalogClient struct {
	*clients.BaseClient

	mu       sync.Mutex
	cache    map[string]cachedVerdict
	cacheTTL time.Duration
}

type cachedVerdict struct {
	verdict draft.Verdict
	expires time.Time
}

type eligibilityResponse struct {
	Legal  bool   `json:"legal"`
	Reason string `json:"reason,omitempty"`
	Cost   int64  `json:"cost"`
}

func NewCatalogClient(baseURL string) *CatalogClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &CatalogClient{
		BaseClient: clients.NewBaseClient(baseURL),
		cache:      make(map[string]cachedVerdict),
		cacheTTL:   DefaultCacheTTL,
	}
}

// Validate checks whether an entity may be drafted under a format.
func (c *CatalogClient) Validate(ctx context.Context, entityID, formatID string) (*draft.Verdict, error) {
	key := formatID + "/" + entityID

	c.mu.Lock()
	if entry, ok := c.cache[key]; ok && time.Now().Before(entry.expires) {
		verdict := entry.verdict
		c.mu.Unlock()
		return &verdict, nil
	}
	c.mu.Unlock()

	endpoint := fmt.Sprintf(EligibilityEndpointFormat, url.PathEscape(formatID), url.PathEscape(entityID))
	var response eligibilityResponse
	if err := c.GetJSON(ctx, endpoint, &response); err != nil {
		return nil, fmt.Errorf("eligibility lookup for %s: %w", entityID, err)
	}

	verdict := draft.Verdict{
		Legal:  response.Legal,
		Reason: response.Reason,
		Cost:   response.Cost,
	}

	c.mu.Lock()
	c.cache[key] = cachedVerdict{verdict: verdict, expires: time.Now().Add(c.cacheTTL)}
	c.mu.Unlock()

	return &verdict, nil
}
