package event

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// Sentinel errors for the bus.
var (
	// ErrNilHandler is returned when a nil handler is subscribed.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrSubscriptionNotFound is returned when unsubscribing an unknown ID.
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

// FileOpenedHandler receives file-opened events. A returned error is
// collected by Publish but does not stop delivery to later handlers.
type FileOpenedHandler func(ctx context.Context, evt FileOpened) error

// FileSavedHandler receives file-saved events.
type FileSavedHandler func(ctx context.Context, evt FileSaved) error

type openedSub struct {
	id      string
	handler FileOpenedHandler
}

type savedSub struct {
	id      string
	handler FileSavedHandler
}

// Bus delivers file-lifecycle events to subscribed handlers,
// synchronously and in subscription order.
type Bus struct {
	mu     sync.RWMutex
	opened []openedSub
	saved  []savedSub
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// SubscribeFileOpened registers a handler for file-opened events and
// returns the subscription ID.
func (b *Bus) SubscribeFileOpened(h FileOpenedHandler) (string, error) {
	if h == nil {
		return "", ErrNilHandler
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	id := uuid.NewString()
	b.opened = append(b.opened, openedSub{id: id, handler: h})
	return id, nil
}

// SubscribeFileSaved registers a handler for file-saved events and
// returns the subscription ID.
func (b *Bus) SubscribeFileSaved(h FileSavedHandler) (string, error) {
	if h == nil {
		return "", ErrNilHandler
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	id := uuid.NewString()
	b.saved = append(b.saved, savedSub{id: id, handler: h})
	return id, nil
}

// Unsubscribe removes a subscription by ID.
func (b *Bus) Unsubscribe(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.opened {
		if s.id == id {
			b.opened = append(b.opened[:i], b.opened[i+1:]...)
			return nil
		}
	}
	for i, s := range b.saved {
		if s.id == id {
			b.saved = append(b.saved[:i], b.saved[i+1:]...)
			return nil
		}
	}
	return ErrSubscriptionNotFound
}

// PublishFileOpened delivers evt to every file-opened handler in
// subscription order. Handler errors are joined and returned after all
// handlers have run; an error from one handler never suppresses later
// handlers.
func (b *Bus) PublishFileOpened(ctx context.Context, evt FileOpened) error {
	b.mu.RLock()
	subs := make([]openedSub, len(b.opened))
	copy(subs, b.opened)
	b.mu.RUnlock()

	var errs []error
	for _, s := range subs {
		if err := s.handler(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// PublishFileSaved delivers evt to every file-saved handler in
// subscription order.
func (b *Bus) PublishFileSaved(ctx context.Context, evt FileSaved) error {
	b.mu.RLock()
	subs := make([]savedSub, len(b.saved))
	copy(subs, b.saved)
	b.mu.RUnlock()

	var errs []error
	for _, s := range subs {
		if err := s.handler(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
