package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grubworks/grubbot/internal/domain"
)

// foodRollMenu follows the catalog contract: names containing another name
// as a substring come after it, so the most specific match wins.
var foodRollMenu = []string{
	"Food Roll",
	"Large Food Roll",
	"Medium Food Roll",
	"Drink",
}

func TestDecipher(t *testing.T) {
	tests := []struct {
		name       string
		segment    string
		candidates []string
		want       *domain.Intent
	}{
		{
			name:       "polite add",
			segment:    "Please sir, may I have a food roll?",
			candidates: foodRollMenu,
			want:       &domain.Intent{Operator: domain.OperatorAdd, Item: "Food Roll", For: domain.ForSender},
		},
		{
			name:       "mixed case removal",
			segment:    "remove my fOod ROLL please!",
			candidates: foodRollMenu,
			want:       &domain.Intent{Operator: domain.OperatorRemove, Item: "Food Roll", For: domain.ForSender},
		},
		{
			name:       "more specific later entry wins",
			segment:    "can I get a large food roll?",
			candidates: foodRollMenu,
			want:       &domain.Intent{Operator: domain.OperatorAdd, Item: "Large Food Roll", For: domain.ForSender},
		},
		{
			name:       "no candidate match",
			segment:    "This string is invalid!",
			candidates: foodRollMenu,
			want:       nil,
		},
		{
			name:       "empty candidate list never matches",
			segment:    "food roll",
			candidates: nil,
			want:       nil,
		},
		{
			name:       "for clause captures third party",
			segment:    "a drink for alice",
			candidates: foodRollMenu,
			want:       &domain.Intent{Operator: domain.OperatorAdd, Item: "Drink", For: "Alice"},
		},
		{
			name:       "removal scoped to named person",
			segment:    "remove food roll for bob",
			candidates: foodRollMenu,
			want:       &domain.Intent{Operator: domain.OperatorRemove, Item: "Food Roll", For: "Bob"},
		},
		{
			name:       "for mention is rejected outright",
			segment:    "food roll for <@U12345>",
			candidates: foodRollMenu,
			want:       nil,
		},
		{
			name:       "for bare mention is rejected",
			segment:    "drink for @dave",
			candidates: foodRollMenu,
			want:       nil,
		},
		{
			name:       "shorthand removal keyword",
			segment:    "x drink",
			candidates: foodRollMenu,
			want:       &domain.Intent{Operator: domain.OperatorRemove, Item: "Drink", For: domain.ForSender},
		},
		{
			name:       "dash removal keyword",
			segment:    "- drink",
			candidates: foodRollMenu,
			want:       &domain.Intent{Operator: domain.OperatorRemove, Item: "Drink", For: domain.ForSender},
		},
		{
			name:       "no keyword removes too",
			segment:    "no drink thanks",
			candidates: foodRollMenu,
			want:       &domain.Intent{Operator: domain.OperatorRemove, Item: "Drink", For: domain.ForSender},
		},
		{
			name:       "removal keyword inside a word does not trigger",
			segment:    "an extra drink",
			candidates: foodRollMenu,
			want:       &domain.Intent{Operator: domain.OperatorAdd, Item: "Drink", For: domain.ForSender},
		},
		{
			name:       "trailing for without a target keeps sender",
			segment:    "drink for",
			candidates: foodRollMenu,
			want:       &domain.Intent{Operator: domain.OperatorAdd, Item: "Drink", For: domain.ForSender},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decipher(tt.segment, tt.candidates)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want.Operator, got.Operator)
			assert.Equal(t, tt.want.Item, got.Item)
			assert.Equal(t, tt.want.For, got.For)
			assert.True(t, got.Valid())
		})
	}
}

func TestDecipherItemResolutionIsMandatory(t *testing.T) {
	// Removal keywords and for-clauses alone never make an intent.
	assert.Nil(t, Decipher("remove for alice", foodRollMenu))
	assert.Nil(t, Decipher("no thanks", foodRollMenu))
}

func TestDecipherLastMatchTieBreak(t *testing.T) {
	// The documented caller contract: longer names listed later win.
	candidates := []string{"Pizza", "Large Pizza"}
	got := Decipher("one large pizza please", candidates)
	require.NotNil(t, got)
	assert.Equal(t, "Large Pizza", got.Item)

	// With the catalog reversed the shorter name shadows the longer one.
	reversed := []string{"Large Pizza", "Pizza"}
	got = Decipher("one large pizza please", reversed)
	require.NotNil(t, got)
	assert.Equal(t, "Pizza", got.Item)
}

func BenchmarkDecipher(b *testing.B) {
	segment := "could I please have a large food roll for alice"
	for i := 0; i < b.N; i++ {
		Decipher(segment, foodRollMenu)
	}
}
