package service

import "github.com/google/uuid"

// Cache key families. Point lookups are keyed by entity id, the per-owner
// instrument collection by owner id.
func accountKey(id uuid.UUID) string {
	return "account:" + id.String()
}

func instrumentKey(id uuid.UUID) string {
	return "instrument:" + id.String()
}

func ownerInstrumentsKey(ownerID uuid.UUID) string {
	return "instruments:owner:" + ownerID.String()
}
