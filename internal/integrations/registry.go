// Package integrations pushes new consultation bookings to external tools
// (Slack, Notion) so counselors see them without polling the listing.
package integrations

import (
	"careerpath-backend/internal/models"
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

// Notifier is one external destination for booking notifications.
type Notifier interface {
	// Name identifies the integration in logs, e.g. "slack".
	Name() string

	// TestConnection verifies credentials with a cheap read call.
	TestConnection(ctx context.Context) error

	// NotifyConsultation publishes one stored booking.
	NotifyConsultation(ctx context.Context, c models.Consultation) error
}

// Registry holds the configured notifiers in registration order.
type Registry struct {
	mu        sync.RWMutex
	notifiers map[string]Notifier
	order     []string
}

// NewRegistry creates a new integration registry.
func NewRegistry() *Registry {
	return &Registry{
		notifiers: make(map[string]Notifier),
	}
}

// Register adds a notifier, replacing any with the same name.
func (r *Registry) Register(n Notifier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.notifiers[n.Name()]; exists {
		log.Printf("WARN [IntegrationRegistry] Notifier '%s' is already registered. Overwriting.", n.Name())
	} else {
		r.order = append(r.order, n.Name())
	}
	r.notifiers[n.Name()] = n
	log.Printf("[IntegrationRegistry] Registered notifier: %s", n.Name())
}

// Get retrieves a notifier by name.
func (r *Registry) Get(name string) (Notifier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, exists := r.notifiers[name]
	if !exists {
		return nil, fmt.Errorf("no notifier registered with name: %s", name)
	}
	return n, nil
}

// Len reports how many notifiers are registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

func (r *Registry) snapshot() []Notifier {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Notifier, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.notifiers[name])
	}
	return out
}

// TestAll checks every notifier's connection and returns the failures joined.
func (r *Registry) TestAll(ctx context.Context) error {
	var errs []error
	for _, n := range r.snapshot() {
		if err := n.TestConnection(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", n.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Dispatch sends c to every notifier concurrently and waits for all of them.
// One destination failing does not stop the others.
func (r *Registry) Dispatch(ctx context.Context, c models.Consultation) error {
	notifiers := r.snapshot()
	errs := make([]error, len(notifiers))

	var wg sync.WaitGroup
	for i, n := range notifiers {
		wg.Add(1)
		go func(i int, n Notifier) {
			defer wg.Done()
			if err := n.NotifyConsultation(ctx, c); err != nil {
				log.Printf("ERROR [IntegrationRegistry] %s notification for consultation %s failed: %v", n.Name(), c.ID, err)
				errs[i] = fmt.Errorf("%s: %w", n.Name(), err)
			}
		}(i, n)
	}
	wg.Wait()
	return errors.Join(errs...)
}
