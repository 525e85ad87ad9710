// Package parser turns free-text Slack mention segments into order intents
// and administrative commands. Matching is deliberately plain keyword and
// substring work - no scoring, no fuzziness beyond case folding.
package parser

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/grubworks/grubbot/internal/domain"
)

// removalKeywords flip an intent from add to remove when they appear as a
// standalone token anywhere in the segment.
var removalKeywords = map[string]bool{
	"no":     true,
	"delete": true,
	"remove": true,
	"x":      true,
	"-":      true,
}

var titleCaser = cases.Title(language.English)

// Decipher extracts an order intent from one comma-separated segment,
// matching items against the candidate list in catalog order. It returns nil
// when no candidate name occurs in the segment, or when a "for" clause names
// another Slack user by mention - guessing at impersonation is worse than
// asking the sender to rephrase.
//
// When several candidates are substrings of the segment the last one in
// catalog order wins, so callers must list more specific names after the
// shorter names they contain ("Pizza" before "Large Pizza").
func Decipher(segment string, candidates []string) *domain.Intent {
	lowered := strings.ToLower(segment)

	item := ""
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(candidate)) {
			item = candidate
		}
	}
	if item == "" {
		return nil
	}

	intent := &domain.Intent{
		Operator: domain.OperatorAdd,
		Item:     item,
		For:      domain.ForSender,
	}

	tokens := strings.Fields(lowered)
	for i, token := range tokens {
		if removalKeywords[token] {
			intent.Operator = domain.OperatorRemove
			continue
		}
		if token == "for" && i+1 < len(tokens) {
			target := strings.Trim(tokens[i+1], ",.!?:;")
			if strings.Contains(target, "@") {
				return nil
			}
			if target != "" {
				intent.For = titleCaser.String(target)
			}
		}
	}

	return intent
}
