package domain

// CommandKind enumerates the administrative phrases understood outside of
// item parsing.
type CommandKind int

const (
	CommandNone CommandKind = iota
	CommandHelp
	CommandShowMenu
	CommandChangeCollector
	CommandNewOrder
	CommandCloseOrder
)

// String returns the kind name, mainly for logs and metrics labels.
func (k CommandKind) String() string {
	switch k {
	case CommandHelp:
		return "help"
	case CommandShowMenu:
		return "menu"
	case CommandChangeCollector:
		return "change_collector"
	case CommandNewOrder:
		return "new_order"
	case CommandCloseOrder:
		return "close_order"
	default:
		return "none"
	}
}

// Command is the tagged result of the collector-command parse. Name is set
// for CommandChangeCollector, Place for CommandNewOrder (may be empty when
// no "at PLACE" clause was given).
type Command struct {
	Kind  CommandKind
	Name  string
	Place string
}
