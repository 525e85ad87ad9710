// Package formatting renders the order board message, menu listings and the
// small pieces they are built from: currency strings and emoji codes.
package formatting

import (
	"fmt"
	"strconv"
)

// Money formats a minor-unit amount with the default pound/pence symbols.
func Money(value int) string {
	return MoneyWith(value, "£", "p")
}

// MoneyWith formats a minor-unit amount. Sub-unit amounts render in the low
// symbol ("85p"), anything else in the high symbol with two decimals
// ("£1.20"). Zero and negative amounts clamp to "0p".
func MoneyWith(value int, highSymbol, lowSymbol string) string {
	if value <= 0 {
		return "0" + lowSymbol
	}
	if value < 100 {
		return strconv.Itoa(value) + lowSymbol
	}
	return fmt.Sprintf("%s%d.%02d", highSymbol, value/100, value%100)
}
