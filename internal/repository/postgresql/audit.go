package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nominahr/nomina-backend-go/internal/domain/audit"
	"github.com/nominahr/nomina-backend-go/internal/pkg/database"
)

type auditRepository struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.Repository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Append(ctx context.Context, event audit.Event) error {
	q := GetQuerier(ctx, r.db)

	detail, err := json.Marshal(event.Detail)
	if err != nil {
		return fmt.Errorf("failed to encode audit detail: %w", err)
	}

	query := `
		INSERT INTO payroll_audit_events (id, run_id, event_type, occurred_at, detail)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := q.Exec(ctx, query, event.ID, event.RunID, event.Type, event.OccurredAt, detail); err != nil {
		return fmt.Errorf("failed to append audit event: %w", err)
	}

	return nil
}

func (r *auditRepository) ListForRun(ctx context.Context, runID string, organizationID string) ([]audit.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.run_id, e.event_type, e.occurred_at, e.detail
		FROM payroll_audit_events e
		JOIN payroll_runs r ON r.id = e.run_id
		JOIN payroll_periods p ON p.id = r.period_id
		WHERE e.run_id = $1 AND p.organization_id = $2
		ORDER BY e.occurred_at, e.id
	`

	rows, err := q.Query(ctx, query, runID, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit events: %w", err)
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var e audit.Event
		var detail []byte
		if err := rows.Scan(&e.ID, &e.RunID, &e.Type, &e.OccurredAt, &detail); err != nil {
			return nil, fmt.Errorf("failed to scan audit event: %w", err)
		}
		if len(detail) > 0 {
			if err := json.Unmarshal(detail, &e.Detail); err != nil {
				return nil, fmt.Errorf("failed to decode audit detail: %w", err)
			}
		}
		events = append(events, e)
	}

	return events, rows.Err()
}
