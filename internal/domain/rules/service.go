package rules

import "context"

// Service is the thin administrative surface over the registry. Rule sets
// are insert-only; corrections produce a new row.
type Service interface {
	Create(ctx context.Context, req CreateRulesRequest) (RulesResponse, error)
	Resolve(ctx context.Context, countryCode string, year int) (RulesResponse, error)
}
