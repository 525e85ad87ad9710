// Package order holds the order-merge engine and the order sheet service
// that wraps it with persistence and per-channel locking.
package order

import (
	"strings"

	"github.com/grubworks/grubbot/internal/domain"
)

// Merge applies a batch of intents to an order list, left to right, against
// mutable working state. The input slice is never modified.
//
// Add appends exactly one row per intent. Remove strips the first row whose
// person matches, case-insensitively, regardless of which food that row
// carries - "remove" means "take my row off", not "take this food off".
// Nil intents are parse failures and touch nothing.
//
// The returned count is the number of intents that touched a row. A remove
// with no matching row is a no-op and does not count, so merging the same
// removal twice deletes one row and then does nothing.
func Merge(existing []domain.OrderEntry, intents []*domain.Intent, senderID string) ([]domain.OrderEntry, int) {
	entries := make([]domain.OrderEntry, len(existing))
	copy(entries, existing)

	applied := 0
	for _, intent := range intents {
		if !intent.Valid() {
			continue
		}

		name := intent.For
		if name == domain.ForSender {
			name = domain.SenderTag(senderID)
		}

		switch intent.Operator {
		case domain.OperatorRemove:
			for i := range entries {
				if strings.EqualFold(entries[i].Person, name) {
					entries = append(entries[:i], entries[i+1:]...)
					applied++
					break
				}
			}
		default:
			entries = append(entries, domain.OrderEntry{Person: name, Food: intent.Item})
			applied++
		}
	}

	return entries, applied
}
