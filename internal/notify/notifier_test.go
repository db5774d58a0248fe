package notify

import "testing"

func TestPublishFansOutToAllSubscribers(t *testing.T) {
	n := NewNotifier()
	var first, second []Notification
	n.Subscribe(func(note Notification) { first = append(first, note) })
	n.Subscribe(func(note Notification) { second = append(second, note) })

	n.Success("Item removed")
	n.Error("Failed to add to cart")

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("got %d and %d notifications, want 2 each", len(first), len(second))
	}
	if first[0].Level != LevelSuccess || first[0].Message != "Item removed" {
		t.Errorf("got %+v", first[0])
	}
	if first[1].Level != LevelError {
		t.Errorf("got %+v", first[1])
	}
	if first[0].Timestamp.IsZero() {
		t.Error("notification timestamp should be set")
	}
}

func TestPublishWithoutSubscribersIsSafe(t *testing.T) {
	n := NewNotifier()
	n.Info("nobody listening")
}

func TestNilNotifierPublishIsSafe(t *testing.T) {
	var n *Notifier
	n.Error("should not panic")
}
