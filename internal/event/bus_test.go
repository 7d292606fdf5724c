package event

import (
	"context"
	"errors"
	"testing"
)

func TestBus_SubscribeNil(t *testing.T) {
	bus := NewBus()

	if _, err := bus.SubscribeFileOpened(nil); !errors.Is(err, ErrNilHandler) {
		t.Errorf("SubscribeFileOpened(nil) = %v, want ErrNilHandler", err)
	}
}

func TestBus_PublishFileOpened_Order(t *testing.T) {
	bus := NewBus()
	var order []string

	for _, name := range []string{"a", "b", "c"} {
		name := name
		if _, err := bus.SubscribeFileOpened(func(ctx context.Context, evt FileOpened) error {
			order = append(order, name)
			return nil
		}); err != nil {
			t.Fatalf("SubscribeFileOpened() error: %v", err)
		}
	}

	evt := FileOpened{Path: "/a/foo.txt", Metadata: NewMetadata("test")}
	if err := bus.PublishFileOpened(context.Background(), evt); err != nil {
		t.Fatalf("PublishFileOpened() error: %v", err)
	}

	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Errorf("delivery order = %v, want [a b c]", order)
	}
}

func TestBus_HandlerErrorDoesNotStopDelivery(t *testing.T) {
	bus := NewBus()
	var delivered int
	failure := errors.New("handler failed")

	if _, err := bus.SubscribeFileOpened(func(ctx context.Context, evt FileOpened) error {
		return failure
	}); err != nil {
		t.Fatalf("SubscribeFileOpened() error: %v", err)
	}
	if _, err := bus.SubscribeFileOpened(func(ctx context.Context, evt FileOpened) error {
		delivered++
		return nil
	}); err != nil {
		t.Fatalf("SubscribeFileOpened() error: %v", err)
	}

	err := bus.PublishFileOpened(context.Background(), FileOpened{Path: "/x"})
	if !errors.Is(err, failure) {
		t.Errorf("PublishFileOpened() = %v, want wrapped %v", err, failure)
	}
	if delivered != 1 {
		t.Errorf("second handler delivered %d times, want 1", delivered)
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()
	var delivered int

	id, err := bus.SubscribeFileOpened(func(ctx context.Context, evt FileOpened) error {
		delivered++
		return nil
	})
	if err != nil {
		t.Fatalf("SubscribeFileOpened() error: %v", err)
	}

	if err := bus.Unsubscribe(id); err != nil {
		t.Fatalf("Unsubscribe() error: %v", err)
	}
	if err := bus.Unsubscribe(id); !errors.Is(err, ErrSubscriptionNotFound) {
		t.Errorf("second Unsubscribe() = %v, want ErrSubscriptionNotFound", err)
	}

	if err := bus.PublishFileOpened(context.Background(), FileOpened{Path: "/x"}); err != nil {
		t.Fatalf("PublishFileOpened() error: %v", err)
	}
	if delivered != 0 {
		t.Errorf("unsubscribed handler delivered %d times", delivered)
	}
}

func TestNewMetadata(t *testing.T) {
	a := NewMetadata("engine")
	b := NewMetadata("engine")

	if a.ID == "" || b.ID == "" {
		t.Error("metadata ID is empty")
	}
	if a.ID == b.ID {
		t.Error("metadata IDs are not unique")
	}
	if a.Source != "engine" {
		t.Errorf("Source = %q, want engine", a.Source)
	}
	if a.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}
