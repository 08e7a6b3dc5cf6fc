package draft

import "context"

// Verdict is the legality validator's answer for one entity in one format.
// Cost is the validator's authoritative acquisition cost and overrides
// whatever the caller proposed.
type Verdict struct {
	Legal  bool
	Reason string
	Cost   int64
}

// EntityValidator answers whether an entity may be acquired in a given
// format. Implementations are expected to be safe for concurrent use.
type EntityValidator interface {
	Validate(ctx context.Context, entityID, formatID string) (*Verdict, error)
}
