package integrations

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/slack-go/slack"
)

type fakeSlack struct {
	channel string
	posts   int
	authErr error
	postErr error
}

func (f *fakeSlack) AuthTestContext(ctx context.Context) (*slack.AuthTestResponse, error) {
	if f.authErr != nil {
		return nil, f.authErr
	}
	return &slack.AuthTestResponse{UserID: "U123"}, nil
}

func (f *fakeSlack) PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	f.channel = channelID
	f.posts++
	return channelID, "1700000000.000100", f.postErr
}

func TestSlackNotifierPostsToChannel(t *testing.T) {
	api := &fakeSlack{}
	n := &SlackNotifier{api: api, channelID: "C12345678"}

	if err := n.TestConnection(context.Background()); err != nil {
		t.Fatalf("TestConnection: %v", err)
	}
	if err := n.NotifyConsultation(context.Background(), sampleConsultation()); err != nil {
		t.Fatalf("NotifyConsultation: %v", err)
	}
	if api.posts != 1 || api.channel != "C12345678" {
		t.Fatalf("expected one post to C12345678, got %d to %q", api.posts, api.channel)
	}

	api.postErr = errors.New("channel_not_found")
	if err := n.NotifyConsultation(context.Background(), sampleConsultation()); err == nil {
		t.Fatal("expected post error to surface")
	}
}

func TestFormatSlackMessage(t *testing.T) {
	msg := formatSlackMessage(sampleConsultation())
	for _, want := range []string{"*Jane Doe*", "jane@x.com", "video on 2025-01-01", "> Feeling anxious lately", "c0ffee00"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestNewSlackNotifierRequiresConfig(t *testing.T) {
	if _, err := NewSlackNotifier("", "C1"); err == nil {
		t.Fatal("expected error without token")
	}
	if _, err := NewSlackNotifier("xoxb-test", ""); err == nil {
		t.Fatal("expected error without channel")
	}
}
