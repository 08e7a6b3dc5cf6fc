package catalog_client

import "time"

const (
	// DefaultBaseURL points at the local entity catalog service.
	DefaultBaseURL = "http://localhost:8090"

	// API Endpoints
	EligibilityEndpointFormat = "/formats/%s/entities/%s/eligibility"

	// Verdicts are stable for the length of a draft session.
	DefaultCacheTTL = 5 * time.Minute
)
