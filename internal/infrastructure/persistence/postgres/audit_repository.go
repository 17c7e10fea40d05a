package postgres

import (
	"context"

	"github.com/BolivianProgrammer/RazorPedidos/internal/domain/repository"
)

// AuditRepository appends consumed order events to the audit trail.
type AuditRepository struct {
	q querier
}

func NewAuditRepository(q querier) *AuditRepository {
	return &AuditRepository{q: q}
}

func (r *AuditRepository) Append(ctx context.Context, entry *repository.AuditEntry) error {
	const query = `
		INSERT INTO order_audit (event_id, event_type, order_id, user_id, status, total, occurred_at, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id;
	`
	return r.q.QueryRow(ctx, query,
		entry.EventID,
		entry.EventType,
		entry.OrderID,
		entry.UserID,
		entry.Status,
		entry.Total,
		entry.OccurredAt,
		entry.RecordedAt,
	).Scan(&entry.ID)
}
