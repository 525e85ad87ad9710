package parser

import (
	"regexp"
	"strings"

	"github.com/grubworks/grubbot/internal/domain"
)

var (
	changeCollectorRE = regexp.MustCompile(`(?i)change\s+(?:the\s+)?(?:collector|driver)\s+to\s+(.+)`)
	newOrderRE        = regexp.MustCompile(`(?i)new\s+order(?:\s+at\s+(.+))?`)
)

// MatchCommand checks the full mention text for an administrative command.
// Commands short-circuit item parsing entirely, and are checked in a fixed
// priority order: a message containing both "help" and "menu" is a help
// request.
func MatchCommand(text string) domain.Command {
	lowered := strings.ToLower(text)

	if strings.Contains(lowered, "help") {
		return domain.Command{Kind: domain.CommandHelp}
	}
	if strings.Contains(lowered, "menu") {
		return domain.Command{Kind: domain.CommandShowMenu}
	}
	if m := changeCollectorRE.FindStringSubmatch(text); m != nil {
		return domain.Command{
			Kind: domain.CommandChangeCollector,
			Name: strings.TrimSpace(m[1]),
		}
	}
	if m := newOrderRE.FindStringSubmatch(text); m != nil {
		return domain.Command{
			Kind:  domain.CommandNewOrder,
			Place: strings.TrimSpace(m[1]),
		}
	}
	if strings.Contains(lowered, "close order") {
		return domain.Command{Kind: domain.CommandCloseOrder}
	}

	return domain.Command{Kind: domain.CommandNone}
}
