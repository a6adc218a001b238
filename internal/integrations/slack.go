package integrations

import (
	"careerpath-backend/internal/models"
	"context"
	"fmt"
	"strings"

	"github.com/slack-go/slack"
)

// Ensure SlackNotifier implements the Notifier interface.
var _ Notifier = (*SlackNotifier)(nil)

// slackAPI is the subset of *slack.Client the notifier uses.
type slackAPI interface {
	AuthTestContext(ctx context.Context) (*slack.AuthTestResponse, error)
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// SlackNotifier posts each new booking to a channel.
type SlackNotifier struct {
	api       slackAPI
	channelID string
}

// NewSlackNotifier creates a notifier using a bot token (xoxb-...).
func NewSlackNotifier(botToken, channelID string) (*SlackNotifier, error) {
	if botToken == "" || channelID == "" {
		return nil, fmt.Errorf("slack notifier needs both a bot token and a channel ID")
	}
	return &SlackNotifier{api: slack.New(botToken), channelID: channelID}, nil
}

func (s *SlackNotifier) Name() string { return "slack" }

// TestConnection calls auth.test with the bot token.
func (s *SlackNotifier) TestConnection(ctx context.Context) error {
	resp, err := s.api.AuthTestContext(ctx)
	if err != nil {
		return fmt.Errorf("slack auth test failed: %w", err)
	}
	if resp.UserID == "" {
		return fmt.Errorf("slack auth test returned no bot user")
	}
	return nil
}

func (s *SlackNotifier) NotifyConsultation(ctx context.Context, c models.Consultation) error {
	_, _, err := s.api.PostMessageContext(ctx, s.channelID, slack.MsgOptionText(formatSlackMessage(c), false))
	if err != nil {
		return fmt.Errorf("failed to post message to Slack channel %s: %w", s.channelID, err)
	}
	return nil
}

// formatSlackMessage renders a booking as Slack mrkdwn.
func formatSlackMessage(c models.Consultation) string {
	var b strings.Builder
	fmt.Fprintf(&b, ":calendar: *New consultation request* from *%s*\n", c.FullName)
	fmt.Fprintf(&b, "• Email: %s\n", c.Email)
	fmt.Fprintf(&b, "• Phone: %s\n", c.Phone)
	fmt.Fprintf(&b, "• Mode: %s on %s\n", c.PreferredMode, c.PreferredDate.Format(models.DateLayout))
	fmt.Fprintf(&b, "> %s\n", strings.ReplaceAll(c.Concerns, "\n", "\n> "))
	fmt.Fprintf(&b, "_Reference: %s_", c.ID)
	return b.String()
}
