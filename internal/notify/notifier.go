package notify

import (
	"sync"
	"time"
)

// Level classifies a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is a transient, non-blocking message surfaced to the user
// after an operation. It is never persisted and never retried.
type Notification struct {
	Level     Level
	Message   string
	Timestamp time.Time
}

// Handler consumes a published notification.
type Handler func(Notification)

// Notifier is a simple synchronous fan-out bus. Components publish,
// renderers subscribe. Publishing never fails and never blocks the
// triggering operation on a handler.
type Notifier struct {
	mu       sync.RWMutex
	handlers []Handler
}

// NewNotifier creates a notifier instance.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe registers a handler for all notifications.
func (n *Notifier) Subscribe(handler Handler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handlers = append(n.handlers, handler)
}

// Publish synchronously invokes all handlers.
func (n *Notifier) Publish(level Level, message string) {
	if n == nil {
		return
	}
	n.mu.RLock()
	handlers := append([]Handler{}, n.handlers...)
	n.mu.RUnlock()

	note := Notification{Level: level, Message: message, Timestamp: time.Now()}
	for _, handler := range handlers {
		handler(note)
	}
}

// Info publishes an informational notification.
func (n *Notifier) Info(message string) { n.Publish(LevelInfo, message) }

// Success publishes a success notification.
func (n *Notifier) Success(message string) { n.Publish(LevelSuccess, message) }

// Error publishes an error notification.
func (n *Notifier) Error(message string) { n.Publish(LevelError, message) }
