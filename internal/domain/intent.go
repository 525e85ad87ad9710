package domain

// Operator says what an intent wants done with its item.
type Operator string

const (
	OperatorAdd    Operator = "add"
	OperatorRemove Operator = "remove"
)

// ForSender is the sentinel target meaning "the message sender". It is
// resolved to a sender tag at merge time, never stored.
const ForSender = "me"

// Intent is the parsed form of one comma-separated message segment. Item is
// always one of the candidate menu names handed to the parser; a segment
// that matched no candidate yields no Intent at all (nil).
type Intent struct {
	Operator Operator
	Item     string
	For      string
}

// Valid reports whether the intent can be merged. An intent without an item
// must be treated as a parse failure by callers.
func (i *Intent) Valid() bool {
	return i != nil && i.Item != ""
}
