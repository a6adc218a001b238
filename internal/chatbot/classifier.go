package chatbot

import (
	"fmt"
	"math/rand"
	"strings"
)

// FallbackTopic is reported when no rule matched.
const FallbackTopic = "fallback"

// Responder produces a reply for already lower-cased input.
type Responder func(input string) string

// Static returns a Responder that always answers text.
func Static(text string) Responder {
	return func(string) string { return text }
}

// Rule pairs a keyword predicate with a response producer.
// Refinements are tried in order once the rule itself matches; the first
// matching refinement answers instead of Reply.
type Rule struct {
	Topic       string
	Keywords    []string
	Reply       Responder
	Refinements []Rule
}

// Matches reports whether input contains any keyword. input must already be lower-cased.
func (r Rule) Matches(input string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(input, kw) {
			return true
		}
	}
	return false
}

// resolve returns the most specific matching rule, or false.
func (r Rule) resolve(input string) (Rule, bool) {
	if !r.Matches(input) {
		return Rule{}, false
	}
	for _, ref := range r.Refinements {
		if match, ok := ref.resolve(input); ok {
			return match, true
		}
	}
	return r, true
}

// Random is the subset of *rand.Rand the chatbot needs.
type Random interface {
	Intn(n int) int
	Float64() float64
}

// globalRandom uses the package-level math/rand source, which is safe for concurrent use.
type globalRandom struct{}

func (globalRandom) Intn(n int) int   { return rand.Intn(n) }
func (globalRandom) Float64() float64 { return rand.Float64() }

// Classification is the outcome of one classifier pass.
type Classification struct {
	Topic    string
	Reply    string
	Fallback bool
}

// Classifier is a first-match-wins decision table over keyword rules.
// It holds no mutable state besides the random source.
type Classifier struct {
	rules    []Rule
	fallback []string
	random   Random
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithRules replaces the rule table.
func WithRules(rules []Rule) ClassifierOption {
	return func(c *Classifier) { c.rules = rules }
}

// WithFallback replaces the fallback pool.
func WithFallback(replies []string) ClassifierOption {
	return func(c *Classifier) { c.fallback = replies }
}

// WithRandom pins the source used for fallback selection.
func WithRandom(r Random) ClassifierOption {
	return func(c *Classifier) { c.random = r }
}

// NewClassifier builds a classifier with the default career rules unless overridden.
func NewClassifier(opts ...ClassifierOption) (*Classifier, error) {
	c := &Classifier{
		rules:    DefaultRules(),
		fallback: FallbackReplies,
		random:   globalRandom{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if len(c.fallback) == 0 {
		return nil, fmt.Errorf("classifier needs at least one fallback reply")
	}
	for i, r := range c.rules {
		if r.Reply == nil {
			return nil, fmt.Errorf("rule %d (%s) has no reply", i, r.Topic)
		}
	}
	return c, nil
}

// Classify maps free text to exactly one reply. Empty input falls through to the fallback pool.
func (c *Classifier) Classify(text string) Classification {
	input := strings.ToLower(text)
	for _, rule := range c.rules {
		if match, ok := rule.resolve(input); ok {
			return Classification{Topic: match.Topic, Reply: match.Reply(input)}
		}
	}
	return Classification{
		Topic:    FallbackTopic,
		Reply:    c.fallback[c.random.Intn(len(c.fallback))],
		Fallback: true,
	}
}

// Rules exposes the table in priority order.
func (c *Classifier) Rules() []Rule {
	return c.rules
}
