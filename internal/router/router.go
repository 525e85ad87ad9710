// Package router drives the conversation: it takes an inbound @-mention,
// decides between command handling and order parsing, and answers through
// Slack with board updates, reactions and threaded replies.
package router

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/grubworks/grubbot/internal/domain"
	"github.com/grubworks/grubbot/internal/formatting"
	"github.com/grubworks/grubbot/internal/logger"
	"github.com/grubworks/grubbot/internal/menu"
	"github.com/grubworks/grubbot/internal/metrics"
	"github.com/grubworks/grubbot/internal/order"
	"github.com/grubworks/grubbot/internal/parser"
	slackclient "github.com/grubworks/grubbot/internal/slack"
)

const helpText = `Here's what I understand:
• ` + "`new order`" + ` or ` + "`new order at <place>`" + ` - start a fresh order board
• ` + "`<item>`" + ` - put yourself down for an item from the menu
• ` + "`no <item>`" + ` (or remove/delete/x/-) - take yourself off again
• ` + "`<item> for <name>`" + ` - order on someone else's behalf
• ` + "`change collector to <name>`" + ` - set who's collecting
• ` + "`menu`" + ` - list what's orderable
• ` + "`close order`" + ` - close the board

Separate multiple requests with commas, e.g. ` + "`kebab, chips for Dave`" + `.`

const (
	noActiveOrderReply = "There's no open order in this channel. Say `new order at <place>` to start one."
	closedSuffix       = "\n\n:no_entry_sign: *This order is closed.*"
)

// Router handles one mention at a time per channel; per-channel writes are
// serialized further down in the order service.
type Router struct {
	orders    order.Service
	menus     menu.Service
	slack     slackclient.Messenger
	botUserID string
	now       func() time.Time
}

// New wires a Router. botUserID is the bot's own Slack user; only its
// mention token is stripped from inbound text, so mentions of anyone else
// survive into parsing and hit the for-clause rejection. now is a clock
// override for tests; nil means wall clock.
func New(orders order.Service, menus menu.Service, messenger slackclient.Messenger, botUserID string, now func() time.Time) *Router {
	if now == nil {
		now = time.Now
	}
	return &Router{orders: orders, menus: menus, slack: messenger, botUserID: botUserID, now: now}
}

// HandleMention processes one @-mention end to end. Commands run first and
// short-circuit item parsing; only a command-free mention is split into
// comma-separated order segments.
func (r *Router) HandleMention(ctx context.Context, ev domain.MentionEvent) error {
	text := stripBotMention(ev.Text, r.botUserID)
	log := logger.FromContext(ctx)
	metrics.RecordMentionReceived()

	if strings.EqualFold(text, "hello") {
		return r.slack.PostThreadReply(ctx, ev.Channel, ev.Timestamp,
			fmt.Sprintf("Hello, <@%s>! :wave:", ev.User))
	}

	cmd := parser.MatchCommand(text)
	if cmd.Kind != domain.CommandNone {
		log.Info("Handling command", "command", cmd.Kind.String(), "channel", ev.Channel)
		metrics.RecordCommandHandled(cmd.Kind.String())
		return r.handleCommand(ctx, ev, cmd)
	}

	return r.handleOrderText(ctx, ev, text)
}

func (r *Router) handleCommand(ctx context.Context, ev domain.MentionEvent, cmd domain.Command) error {
	switch cmd.Kind {
	case domain.CommandHelp:
		return r.slack.PostThreadReply(ctx, ev.Channel, ev.Timestamp, helpText)

	case domain.CommandNewOrder:
		return r.openOrder(ctx, ev, cmd.Place)

	case domain.CommandShowMenu:
		return r.showMenu(ctx, ev)

	case domain.CommandChangeCollector:
		rec, err := r.orders.SetCollector(ctx, ev.Channel, cmd.Name)
		if errors.Is(err, domain.ErrNoActiveOrder) {
			return r.slack.PostThreadReply(ctx, ev.Channel, ev.Timestamp, noActiveOrderReply)
		}
		if err != nil {
			return fmt.Errorf("changing collector: %w", err)
		}
		if err := r.refreshBoard(ctx, rec); err != nil {
			return err
		}
		return r.slack.React(ctx, ev.Channel, ev.Timestamp, formatting.PositiveEmoji())

	case domain.CommandCloseOrder:
		return r.closeOrder(ctx, ev)
	}

	return nil
}

// openOrder starts a new sheet, posts the board and remembers its timestamp
// so later merges can edit the same message.
func (r *Router) openOrder(ctx context.Context, ev domain.MentionEvent, placeName string) error {
	rec, err := r.orders.Open(ctx, ev.Channel, placeName)
	if errors.Is(err, domain.ErrPlaceNotFound) {
		return r.slack.PostThreadReply(ctx, ev.Channel, ev.Timestamp,
			fmt.Sprintf("I don't know anywhere called *%s*. %s", placeName, ":"+formatting.CuriousEmoji()+":"))
	}
	if err != nil {
		return fmt.Errorf("opening order: %w", err)
	}
	metrics.RecordOrderOpened()

	board, err := r.renderBoard(ctx, rec)
	if err != nil {
		return err
	}

	ts, err := r.slack.PostMessage(ctx, ev.Channel, board)
	if err != nil {
		return fmt.Errorf("posting board: %w", err)
	}
	if err := r.orders.SetMessageTS(ctx, ev.Channel, ts); err != nil {
		return fmt.Errorf("recording board timestamp: %w", err)
	}

	if rec.Sheet.Pin {
		if err := r.slack.Pin(ctx, ev.Channel, ts); err != nil {
			// A failed pin is cosmetic; the board is already up.
			logger.FromContext(ctx).Warn("Failed to pin board", "error", err)
		}
	}

	return r.slack.React(ctx, ev.Channel, ev.Timestamp, formatting.PositiveEmoji())
}

func (r *Router) closeOrder(ctx context.Context, ev domain.MentionEvent) error {
	rec, err := r.orders.Close(ctx, ev.Channel)
	if errors.Is(err, domain.ErrNoActiveOrder) {
		return r.slack.PostThreadReply(ctx, ev.Channel, ev.Timestamp, noActiveOrderReply)
	}
	if err != nil {
		return fmt.Errorf("closing order: %w", err)
	}
	metrics.RecordOrderClosed()

	if rec.SlackTS != "" {
		board, err := r.renderBoard(ctx, rec)
		if err != nil {
			return err
		}
		if err := r.slack.UpdateMessage(ctx, ev.Channel, rec.SlackTS, board+closedSuffix); err != nil {
			return fmt.Errorf("marking board closed: %w", err)
		}
		if rec.Sheet.Pin {
			if err := r.slack.Unpin(ctx, ev.Channel, rec.SlackTS); err != nil {
				logger.FromContext(ctx).Warn("Failed to unpin board", "error", err)
			}
		}
	}

	return r.slack.React(ctx, ev.Channel, ev.Timestamp, formatting.PositiveEmoji())
}

func (r *Router) showMenu(ctx context.Context, ev domain.MentionEvent) error {
	rec, err := r.orders.Active(ctx, ev.Channel)
	if errors.Is(err, domain.ErrNoActiveOrder) {
		return r.slack.PostThreadReply(ctx, ev.Channel, ev.Timestamp, noActiveOrderReply)
	}
	if err != nil {
		return fmt.Errorf("looking up active order: %w", err)
	}

	placeName, items, err := r.placeAndItems(ctx, rec)
	if err != nil {
		return err
	}
	if placeName == "" {
		return r.slack.PostThreadReply(ctx, ev.Channel, ev.Timestamp,
			"This order isn't tied to a place, so there's no menu to show.")
	}

	return r.slack.PostThreadReply(ctx, ev.Channel, ev.Timestamp, formatting.MenuListing(placeName, items))
}

// handleOrderText splits a command-free mention into comma segments, parses
// each into an intent, merges the parsed ones into the sheet, and reports
// back: board edit plus positive reaction on success, threaded nudges for
// anything unparseable.
func (r *Router) handleOrderText(ctx context.Context, ev domain.MentionEvent, text string) error {
	rec, err := r.orders.Active(ctx, ev.Channel)
	if errors.Is(err, domain.ErrNoActiveOrder) {
		return r.slack.PostThreadReply(ctx, ev.Channel, ev.Timestamp, noActiveOrderReply)
	}
	if err != nil {
		return fmt.Errorf("looking up active order: %w", err)
	}

	candidates, err := r.menus.Potentials(ctx, rec.PlaceID)
	if err != nil {
		return fmt.Errorf("loading menu candidates: %w", err)
	}

	var (
		intents  []*domain.Intent
		confused []string
	)
	for _, segment := range strings.Split(text, ",") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		if intent := parser.Decipher(segment, candidates); intent.Valid() {
			intents = append(intents, intent)
			metrics.RecordIntentParsed(string(intent.Operator))
		} else {
			confused = append(confused, segment)
		}
	}

	if len(intents) == 0 {
		if err := r.slack.React(ctx, ev.Channel, ev.Timestamp, formatting.CuriousEmoji()); err != nil {
			return err
		}
		return r.slack.PostThreadReply(ctx, ev.Channel, ev.Timestamp,
			"I couldn't match that to anything on the menu. Say `menu` to see what's orderable.")
	}

	rec, applied, err := r.orders.ApplyIntents(ctx, ev.Channel, intents, ev.User)
	if err != nil {
		return fmt.Errorf("applying intents: %w", err)
	}
	metrics.RecordMergeApplied(applied)

	if applied == 0 {
		return r.slack.React(ctx, ev.Channel, ev.Timestamp, formatting.NegativeEmoji())
	}

	if err := r.refreshBoard(ctx, rec); err != nil {
		return err
	}
	if err := r.slack.React(ctx, ev.Channel, ev.Timestamp, formatting.PositiveEmoji()); err != nil {
		return err
	}

	if len(confused) > 0 {
		return r.slack.PostThreadReply(ctx, ev.Channel, ev.Timestamp,
			fmt.Sprintf("I didn't understand: _%s_. The rest went on the board.", strings.Join(confused, "_, _")))
	}
	return nil
}

// refreshBoard re-renders the sheet and edits the posted board in place. A
// sheet that never got a board message posts one now.
func (r *Router) refreshBoard(ctx context.Context, rec *domain.OrderRecord) error {
	board, err := r.renderBoard(ctx, rec)
	if err != nil {
		return err
	}

	if rec.SlackTS == "" {
		ts, err := r.slack.PostMessage(ctx, rec.Channel, board)
		if err != nil {
			return fmt.Errorf("posting board: %w", err)
		}
		return r.orders.SetMessageTS(ctx, rec.Channel, ts)
	}

	if err := r.slack.UpdateMessage(ctx, rec.Channel, rec.SlackTS, board); err != nil {
		return fmt.Errorf("updating board: %w", err)
	}
	return nil
}

func (r *Router) renderBoard(ctx context.Context, rec *domain.OrderRecord) (string, error) {
	placeName, items, err := r.placeAndItems(ctx, rec)
	if err != nil {
		return "", err
	}
	return formatting.Status(rec.Sheet, placeName, items, r.now()), nil
}

func (r *Router) placeAndItems(ctx context.Context, rec *domain.OrderRecord) (string, []domain.MenuItem, error) {
	if rec.PlaceID == 0 {
		return "", nil, nil
	}

	place, err := r.menus.Place(ctx, rec.PlaceID)
	if err != nil {
		return "", nil, fmt.Errorf("resolving place: %w", err)
	}
	items, err := r.menus.Items(ctx, rec.PlaceID)
	if err != nil {
		return "", nil, err
	}
	return place.Name, items, nil
}

// stripBotMention removes the bot's own <@BOTID> tokens so "help" and
// "<@UBOT> help" parse identically. Mentions of other users are left in
// place: "kebab for <@U999>" must reach the parser intact so its for-clause
// rejection can fire instead of the order landing on the sender.
func stripBotMention(text, botUserID string) string {
	if botUserID != "" {
		text = strings.ReplaceAll(text, "<@"+botUserID+">", "")
	}
	return strings.TrimSpace(text)
}
