package notify

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// slackPoster is the part of the slack client the notifier uses.
type slackPoster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// SlackNotifier posts messages to a channel through the Slack Web API.
type SlackNotifier struct {
	client    slackPoster
	channelID string
}

// NewSlackNotifier creates a notifier for token. Extra client options are passed to slack.New.
func NewSlackNotifier(token, channelID string, opts ...slack.Option) *SlackNotifier {
	if channelID == "" {
		channelID = "#general"
	}
	return &SlackNotifier{
		client:    slack.New(token, opts...),
		channelID: channelID,
	}
}

// Notify posts message as plain text.
func (s *SlackNotifier) Notify(ctx context.Context, message string) error {
	_, _, err := s.client.PostMessageContext(ctx, s.channelID,
		slack.MsgOptionText(message, false),
		slack.MsgOptionUsername("stride"),
	)
	if err != nil {
		return fmt.Errorf("failed to send slack notification: %w", err)
	}
	return nil
}
