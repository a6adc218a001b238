package chatbot

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Sleeper suspends for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the real-clock Sleeper.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Thinker produces the artificial "thinking" pause shown before a reply.
type Thinker struct {
	Min, Max time.Duration
	Random   Random
	Sleep    Sleeper
}

// NewThinker returns a Thinker drawing uniformly from [min, max].
func NewThinker(min, max time.Duration) *Thinker {
	if max < min {
		max = min
	}
	return &Thinker{Min: min, Max: max, Random: globalRandom{}, Sleep: SleepContext}
}

// Delay picks the next pause length.
func (t *Thinker) Delay() time.Duration {
	span := t.Max - t.Min
	if span <= 0 {
		return t.Min
	}
	return t.Min + time.Duration(t.Random.Float64()*float64(span))
}

// Wait sleeps for one Delay.
func (t *Thinker) Wait(ctx context.Context) error {
	return t.Sleep(ctx, t.Delay())
}

// Replier is what a chat session needs to answer a user message.
type Replier interface {
	Reply(ctx context.Context, text string) (string, error)
}

// Bot combines a classifier with the thinking pause.
type Bot struct {
	classifier *Classifier
	thinker    *Thinker
	topics     metric.Int64Counter
}

// NewBot wires a classifier and thinker. A nil thinker answers immediately.
func NewBot(c *Classifier, t *Thinker) *Bot {
	topics, err := otel.Meter("careerpath/chatbot").Int64Counter("chatbot.replies",
		metric.WithDescription("Chat widget replies by matched topic"))
	if err != nil {
		log.Printf("WARN [Bot] could not create reply counter: %v", err)
	}
	return &Bot{classifier: c, thinker: t, topics: topics}
}

// Reply waits out the thinking pause, then classifies. A panic in a rule's
// responder is converted to an error so the caller can apologise instead.
func (b *Bot) Reply(ctx context.Context, text string) (reply string, err error) {
	if b.thinker != nil {
		if err := b.thinker.Wait(ctx); err != nil {
			return "", fmt.Errorf("thinking interrupted: %w", err)
		}
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR [Bot] classifier panic: %v", r)
			err = fmt.Errorf("classifier failed: %v", r)
		}
	}()

	result := b.classifier.Classify(text)
	if b.topics != nil {
		b.topics.Add(ctx, 1, metric.WithAttributes(attribute.String("topic", result.Topic)))
	}
	return result.Reply, nil
}
