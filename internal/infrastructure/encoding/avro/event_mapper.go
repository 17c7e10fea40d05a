package avro

import (
	"fmt"
	"time"

	"github.com/BolivianProgrammer/RazorPedidos/internal/domain/order"
	"github.com/BolivianProgrammer/RazorPedidos/internal/domain/repository"
)

// ToOrderEventNative converts a domain event to the goavro native form
// expected by OrderEventSchema.
func ToOrderEventNative(ev order.Event) map[string]interface{} {
	return map[string]interface{}{
		"id":          ev.ID,
		"type":        string(ev.Type),
		"order_id":    ev.OrderID,
		"user_id":     ev.UserID,
		"status":      string(ev.Status),
		"total":       ev.Total.String(),
		"occurred_at": ev.OccurredAt.UTC().Format(time.RFC3339Nano),
	}
}

// ToAuditEntry converts a decoded native record into an audit entry ready for
// persistence. RecordedAt is stamped by the caller.
func ToAuditEntry(native map[string]interface{}) (*repository.AuditEntry, error) {
	entry := &repository.AuditEntry{}

	var err error
	if entry.EventID, err = nativeString(native, "id"); err != nil {
		return nil, err
	}
	if entry.EventType, err = nativeString(native, "type"); err != nil {
		return nil, err
	}
	if entry.OrderID, err = nativeLong(native, "order_id"); err != nil {
		return nil, err
	}
	if entry.UserID, err = nativeLong(native, "user_id"); err != nil {
		return nil, err
	}
	if entry.Status, err = nativeString(native, "status"); err != nil {
		return nil, err
	}
	if entry.Total, err = nativeString(native, "total"); err != nil {
		return nil, err
	}

	raw, err := nativeString(native, "occurred_at")
	if err != nil {
		return nil, err
	}
	occurred, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, fmt.Errorf("parse occurred_at %q: %w", raw, err)
	}
	entry.OccurredAt = occurred

	return entry, nil
}

func nativeString(native map[string]interface{}, key string) (string, error) {
	v, ok := native[key].(string)
	if !ok {
		return "", fmt.Errorf("field %s is not a string", key)
	}
	return v, nil
}

func nativeLong(native map[string]interface{}, key string) (int64, error) {
	v, ok := native[key].(int64)
	if !ok {
		return 0, fmt.Errorf("field %s is not a long", key)
	}
	return v, nil
}
