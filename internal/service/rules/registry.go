package rules

import (
	"context"
	"fmt"

	"github.com/nominahr/nomina-backend-go/internal/domain/rules"
)

// RegistryImpl resolves statutory rule sets by (country_code, year). It is a
// plain lookup: no defaulting to a neighbouring year, no interpolation. A
// missing rule set is a hard stop for any calculation that needs it.
type RegistryImpl struct {
	rulesRepo rules.Repository
}

func NewRegistry(rulesRepo rules.Repository) rules.Registry {
	return &RegistryImpl{rulesRepo: rulesRepo}
}

func (r *RegistryImpl) Resolve(ctx context.Context, countryCode string, year int) (rules.CountryPayrollRules, error) {
	rs, err := r.rulesRepo.GetActive(ctx, countryCode, year)
	if err != nil {
		return rules.CountryPayrollRules{}, fmt.Errorf("resolve rules for %s/%d: %w", countryCode, year, err)
	}
	return rs, nil
}
