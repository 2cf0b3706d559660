package rules

import (
	"context"

	"github.com/nominahr/nomina-backend-go/internal/domain/rules"
)

type ServiceImpl struct {
	rulesRepo rules.Repository
	registry  rules.Registry
}

func NewRulesService(rulesRepo rules.Repository, registry rules.Registry) rules.Service {
	return &ServiceImpl{rulesRepo: rulesRepo, registry: registry}
}

func (s *ServiceImpl) Create(ctx context.Context, req rules.CreateRulesRequest) (rules.RulesResponse, error) {
	if err := req.Validate(); err != nil {
		return rules.RulesResponse{}, err
	}

	created, err := s.rulesRepo.Create(ctx, rules.CountryPayrollRules{
		CountryCode:                 req.CountryCode,
		Year:                        req.Year,
		MinimumWage:                 req.MinimumWage,
		HealthEmployeePct:           req.HealthEmployeePct,
		PensionEmployeePct:          req.PensionEmployeePct,
		HealthEmployerPct:           req.HealthEmployerPct,
		PensionEmployerPct:          req.PensionEmployerPct,
		TransportAllowance:          req.TransportAllowance,
		TransportAllowanceSalaryCap: req.TransportAllowanceSalaryCap,
		IsActive:                    true,
	})
	if err != nil {
		return rules.RulesResponse{}, err
	}

	return mapToResponse(created), nil
}

func (s *ServiceImpl) Resolve(ctx context.Context, countryCode string, year int) (rules.RulesResponse, error) {
	rs, err := s.registry.Resolve(ctx, countryCode, year)
	if err != nil {
		return rules.RulesResponse{}, err
	}
	return mapToResponse(rs), nil
}

func mapToResponse(rs rules.CountryPayrollRules) rules.RulesResponse {
	return rules.RulesResponse{
		ID:                          rs.ID,
		CountryCode:                 rs.CountryCode,
		Year:                        rs.Year,
		MinimumWage:                 rs.MinimumWage,
		HealthEmployeePct:           rs.HealthEmployeePct,
		PensionEmployeePct:          rs.PensionEmployeePct,
		HealthEmployerPct:           rs.HealthEmployerPct,
		PensionEmployerPct:          rs.PensionEmployerPct,
		TransportAllowance:          rs.TransportAllowance,
		TransportAllowanceSalaryCap: rs.TransportAllowanceSalaryCap,
		IsActive:                    rs.IsActive,
	}
}
