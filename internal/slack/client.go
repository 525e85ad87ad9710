// Package slack wraps the Slack Web API behind a small interface so the
// conversation router can be tested without network calls.
package slack

import (
	"context"
	"fmt"
	"strings"

	"github.com/nlopes/slack"
)

// Messenger is the surface the router needs from Slack: post and edit
// messages, react to the triggering mention, and pin the order board.
type Messenger interface {
	PostMessage(ctx context.Context, channel, text string) (string, error)
	PostThreadReply(ctx context.Context, channel, threadTS, text string) error
	UpdateMessage(ctx context.Context, channel, ts, text string) error
	React(ctx context.Context, channel, ts, emoji string) error
	Pin(ctx context.Context, channel, ts string) error
	Unpin(ctx context.Context, channel, ts string) error
}

// Client is the real Messenger backed by the Slack Web API.
type Client struct {
	api *slack.Client
}

// NewClient builds a Client from a bot token.
func NewClient(botToken string) *Client {
	return &Client{api: slack.New(botToken)}
}

// PostMessage posts text to a channel and returns the message timestamp,
// which is the handle for later edits and pins.
func (c *Client) PostMessage(ctx context.Context, channel, text string) (string, error) {
	_, ts, err := c.api.PostMessageContext(ctx, channel,
		slack.MsgOptionText(text, false),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		return "", fmt.Errorf("posting message: %w", err)
	}
	return ts, nil
}

// PostThreadReply posts text as a threaded reply under the given message.
func (c *Client) PostThreadReply(ctx context.Context, channel, threadTS, text string) error {
	_, _, err := c.api.PostMessageContext(ctx, channel,
		slack.MsgOptionText(text, false),
		slack.MsgOptionAsUser(true),
		slack.MsgOptionTS(threadTS),
	)
	if err != nil {
		return fmt.Errorf("posting thread reply: %w", err)
	}
	return nil
}

// UpdateMessage edits an existing message in place.
func (c *Client) UpdateMessage(ctx context.Context, channel, ts, text string) error {
	_, _, _, err := c.api.UpdateMessageContext(ctx, channel, ts,
		slack.MsgOptionText(text, false),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		return fmt.Errorf("updating message: %w", err)
	}
	return nil
}

// React adds an emoji reaction to a message. Colons around the emoji name
// are stripped so callers can pass either form.
func (c *Client) React(ctx context.Context, channel, ts, emoji string) error {
	name := strings.Trim(emoji, ":")
	if err := c.api.AddReactionContext(ctx, name, slack.NewRefToMessage(channel, ts)); err != nil {
		return fmt.Errorf("adding reaction %q: %w", name, err)
	}
	return nil
}

// Pin pins a message to its channel.
func (c *Client) Pin(ctx context.Context, channel, ts string) error {
	if err := c.api.AddPinContext(ctx, channel, slack.NewRefToMessage(channel, ts)); err != nil {
		return fmt.Errorf("pinning message: %w", err)
	}
	return nil
}

// Unpin removes a message's pin.
func (c *Client) Unpin(ctx context.Context, channel, ts string) error {
	if err := c.api.RemovePinContext(ctx, channel, slack.NewRefToMessage(channel, ts)); err != nil {
		return fmt.Errorf("unpinning message: %w", err)
	}
	return nil
}
