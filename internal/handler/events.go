// Package handler exposes the HTTP surface: the Slack Events API endpoint
// the bot lives behind, an admin API for orders and the menu catalog, and
// the usual health and version endpoints.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/nlopes/slack/slackevents"

	"github.com/grubworks/grubbot/internal/domain"
	"github.com/grubworks/grubbot/internal/logger"
)

// maxEventBodyBytes caps the Slack event payload size.
const maxEventBodyBytes = 1 << 20

// MentionRouter consumes unwrapped app mentions.
type MentionRouter interface {
	HandleMention(ctx context.Context, ev domain.MentionEvent) error
}

// EventsHandler terminates the Slack Events API: URL verification challenges
// and app_mention callbacks.
type EventsHandler struct {
	router            MentionRouter
	verificationToken string
	botUserID         string
}

// NewEventsHandler creates the events endpoint handler. botUserID is the
// bot's own Slack user, used to drop self-mentions.
func NewEventsHandler(router MentionRouter, verificationToken, botUserID string) *EventsHandler {
	return &EventsHandler{
		router:            router,
		verificationToken: verificationToken,
		botUserID:         botUserID,
	}
}

// HandleEvent handles POST /slack/events
func (h *EventsHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	body, err := io.ReadAll(io.LimitReader(r.Body, maxEventBodyBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	event, err := slackevents.ParseEvent(json.RawMessage(body),
		slackevents.OptionVerifyToken(&slackevents.TokenComparator{VerificationToken: h.verificationToken}))
	if err != nil {
		log.Warn("Rejected Slack event", "error", err)
		respondError(w, http.StatusUnauthorized, "Event verification failed")
		return
	}

	switch event.Type {
	case slackevents.URLVerification:
		h.handleChallenge(w, body)

	case slackevents.CallbackEvent:
		h.handleCallback(w, r, event)

	default:
		// Unknown outer types are acknowledged so Slack stops retrying.
		w.WriteHeader(http.StatusOK)
	}
}

// handleChallenge answers the one-time URL verification handshake Slack
// performs when the events URL is configured.
func (h *EventsHandler) handleChallenge(w http.ResponseWriter, body []byte) {
	var challenge slackevents.ChallengeResponse
	if err := json.Unmarshal(body, &challenge); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid challenge payload")
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(challenge.Challenge))
}

func (h *EventsHandler) handleCallback(w http.ResponseWriter, r *http.Request, event slackevents.EventsAPIEvent) {
	log := logger.FromContext(r.Context())

	mention, ok := event.InnerEvent.Data.(*slackevents.AppMentionEvent)
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}

	// Ignore our own messages so board posts can never re-trigger parsing.
	if mention.User == "" || mention.User == h.botUserID {
		w.WriteHeader(http.StatusOK)
		return
	}

	ev := domain.MentionEvent{
		Channel:         mention.Channel,
		User:            mention.User,
		Text:            mention.Text,
		Timestamp:       mention.TimeStamp,
		ThreadTimestamp: mention.ThreadTimeStamp,
	}

	if err := h.router.HandleMention(r.Context(), ev); err != nil {
		if errors.Is(err, context.Canceled) {
			w.WriteHeader(http.StatusOK)
			return
		}
		log.Error("Failed to handle mention", "error", err, "channel", ev.Channel)
		// Still ack with 200: Slack retries non-2xx responses and a retry
		// would replay the same mention.
	}
	w.WriteHeader(http.StatusOK)
}
