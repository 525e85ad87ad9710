package formatting

import (
	"fmt"
	"strings"
	"time"

	"github.com/grubworks/grubbot/internal/domain"
)

// Status renders the full order board for one sheet. When the sheet's
// override is enabled the custom message replaces the board entirely. items
// supplies prices for the cost summary; it may be empty.
func Status(sheet domain.OrderSheet, placeName string, items []domain.MenuItem, now time.Time) string {
	if sheet.Override.Enabled {
		return sheet.Override.Message
	}

	sections := []string{
		header(sheet.Food, placeName, now),
		renderOrders(sheet.Order, priceIndex(items), sheet.Tax),
		collectorLine(sheet.Driver),
	}

	if sheet.Tax > 0 {
		sections = append(sections, fmt.Sprintf(":pound: *Additional %s per person* to fund the collector.", Money(sheet.Tax)))
	}

	if line := paymentsLine(sheet.Payment, sheet.PaymentLink); line != "" {
		sections = append(sections, line)
	}

	return strings.Join(sections, "\n\n")
}

// MenuListing renders the list of orderable items for a place, cheapest
// formatting only, one item per line in menu position order.
func MenuListing(placeName string, items []domain.MenuItem) string {
	if len(items) == 0 {
		return fmt.Sprintf("*%s* has nothing on the menu yet.", placeName)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*%s menu*\n", placeName)
	for _, item := range items {
		fmt.Fprintf(&b, ">%s", item.Name)
		if item.PriceMinor > 0 {
			fmt.Fprintf(&b, " - %s", Money(item.PriceMinor))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// DisplayPerson converts a stored person into its board form. Slack senders
// carry an internal tag prefix and render as a real mention; manual names
// pass through untouched.
func DisplayPerson(person string) string {
	if id, ok := strings.CutPrefix(person, domain.SenderTagPrefix); ok {
		return "<@" + id + ">"
	}
	return person
}

func header(food, placeName string, now time.Time) string {
	emoji := FoodEmoji(food)
	title := strings.TrimSpace(fmt.Sprintf("%s %s %s (%s)", food, now.Weekday(), placeName, ordinalDate(now)))
	return fmt.Sprintf("%s *%s* %s", emoji, title, emoji)
}

func collectorLine(driver string) string {
	if driver == "" {
		return "Polling <!here> for orders. No collector has volunteered yet."
	}
	return fmt.Sprintf("Polling <!here> for orders. Today's collector is *%s* :truck:", driver)
}

func paymentsLine(payments []string, links map[string]string) string {
	if len(payments) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(payments))
	for _, p := range payments {
		if url, ok := links[p]; ok && url != "" {
			rendered = append(rendered, fmt.Sprintf("<%s|%s>", url, p))
		} else {
			rendered = append(rendered, p)
		}
	}

	switch len(rendered) {
	case 1:
		return fmt.Sprintf("Collector accepts %s.", rendered[0])
	default:
		return fmt.Sprintf("Collector accepts %s & %s.",
			strings.Join(rendered[:len(rendered)-1], ", "), rendered[len(rendered)-1])
	}
}

// renderOrders groups entries by food in first-seen order, one line per food
// with a count, unit price and the people who ordered it, then closes with a
// cost summary when any ordered item is priced.
func renderOrders(entries []domain.OrderEntry, prices map[string]int, tax int) string {
	if len(entries) == 0 {
		return "_Nobody has ordered anything yet!_"
	}

	var foods []string
	people := make(map[string][]string)
	for _, e := range entries {
		if _, seen := people[e.Food]; !seen {
			foods = append(foods, e.Food)
		}
		people[e.Food] = append(people[e.Food], DisplayPerson(e.Person))
	}

	var b strings.Builder
	total := 0
	priced := false
	for _, food := range foods {
		who := people[food]
		fmt.Fprintf(&b, "*%dx %s", len(who), food)
		if price, ok := prices[strings.ToLower(food)]; ok && price > 0 {
			fmt.Fprintf(&b, " (%s each)", Money(price))
			total += price * len(who)
			priced = true
		}
		fmt.Fprintf(&b, "*\n>%s\n", strings.Join(who, ", "))
	}

	if priced {
		fmt.Fprintf(&b, "\n*Cost*: %s _for priced orders_.", Money(total))
		if tax > 0 {
			fmt.Fprintf(&b, "\n*Tax*: %s.", Money(tax*len(entries)))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func priceIndex(items []domain.MenuItem) map[string]int {
	prices := make(map[string]int, len(items))
	for _, item := range items {
		prices[strings.ToLower(item.Name)] = item.PriceMinor
	}
	return prices
}

func ordinalDate(now time.Time) string {
	day := now.Day()
	suffix := "th"
	switch {
	case day%100 >= 11 && day%100 <= 13:
	case day%10 == 1:
		suffix = "st"
	case day%10 == 2:
		suffix = "nd"
	case day%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s %s", day, suffix, now.Month())
}
