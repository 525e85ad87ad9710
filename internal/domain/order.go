package domain

import "time"

// OrderEntry is a single row on the order board: one person, one food item.
// Duplicate pairs are allowed on purpose - several people can want the same
// thing, and nothing deduplicates rows beyond explicit removals.
type OrderEntry struct {
	Person string `json:"person"`
	Food   string `json:"food"`
}

// Override allows a sheet to replace the generated board with a custom
// message.
type Override struct {
	Enabled bool   `json:"enabled"`
	Message string `json:"message,omitempty"`
}

// OrderSheet is the persisted order document. The field set matches the
// stored JSON contract: override, food, order, driver, tax, payment,
// paymentLink, pin.
type OrderSheet struct {
	Override    Override          `json:"override"`
	Food        string            `json:"food"`
	Order       []OrderEntry      `json:"order"`
	Driver      string            `json:"driver"`
	Tax         int               `json:"tax"`
	Payment     []string          `json:"payment"`
	PaymentLink map[string]string `json:"paymentLink,omitempty"`
	Pin         bool              `json:"pin"`
}

// Order sheet lifecycle states.
const (
	SheetStatusOpen   = "open"
	SheetStatusClosed = "closed"
)

// OrderRecord is an order sheet together with its storage and channel
// bookkeeping. At most one open record exists per channel.
type OrderRecord struct {
	ID        string     `json:"id"`
	Channel   string     `json:"channel"`
	PlaceID   int        `json:"place_id,omitempty"`
	Status    string     `json:"status"`
	SlackTS   string     `json:"slack_ts,omitempty"`
	Sheet     OrderSheet `json:"sheet"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Open reports whether the record still accepts order changes.
func (r *OrderRecord) Open() bool {
	return r != nil && r.Status == SheetStatusOpen
}

// SenderTagPrefix marks a person value as a raw Slack user ID rather than a
// display name. Tagged values render as <@U...> mentions on the board.
const SenderTagPrefix = "SLACK_"

// SenderTag builds the synthetic person value for a Slack user ID.
func SenderTag(userID string) string {
	return SenderTagPrefix + userID
}

// MentionEvent is one inbound @-mention of the bot, already unwrapped from
// the Slack Events API envelope.
type MentionEvent struct {
	Channel         string
	User            string
	Text            string
	Timestamp       string
	ThreadTimestamp string
}
