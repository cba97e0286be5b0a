// Package notify delivers transient user-facing messages, the toast
// analogue of the web UI.
package notify

import "log/slog"

// Kind classifies a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Message is one user-facing notification.
type Message struct {
	Kind Kind
	Text string
}

// Notifier receives fire-and-forget notifications. Implementations must not
// block: the stores call them on their own goroutines and expect nothing
// back.
type Notifier interface {
	Success(text string)
	Error(text string)
}

// Feed buffers notifications for a UI consumer. Delivery is best effort:
// when the buffer is full the message is dropped rather than blocking the
// producing store.
type Feed struct {
	ch chan Message
}

func NewFeed(size int) *Feed {
	return &Feed{ch: make(chan Message, size)}
}

func (f *Feed) Success(text string) {
	f.push(Message{Kind: KindSuccess, Text: text})
}

func (f *Feed) Error(text string) {
	f.push(Message{Kind: KindError, Text: text})
}

// Messages returns the channel the consumer drains.
func (f *Feed) Messages() <-chan Message {
	return f.ch
}

func (f *Feed) push(m Message) {
	select {
	case f.ch <- m:
	default:
	}
}

// Log writes notifications into the application log, for runs without a UI
// attached.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger.With("component", "notify")}
}

func (l *Log) Success(text string) {
	l.logger.Info("notification", "kind", string(KindSuccess), "text", text)
}

func (l *Log) Error(text string) {
	l.logger.Warn("notification", "kind", string(KindError), "text", text)
}

// Multi fans every notification out to all given sinks.
func Multi(sinks ...Notifier) Notifier {
	return multi(sinks)
}

type multi []Notifier

func (m multi) Success(text string) {
	for _, n := range m {
		n.Success(text)
	}
}

func (m multi) Error(text string) {
	for _, n := range m {
		n.Error(text)
	}
}
