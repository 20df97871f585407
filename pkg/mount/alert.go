package mount

import (
	"context"
	"log/slog"
	"sync"
)

// Alerter shows a message to the user, the way a browser alert does.
type Alerter interface {
	Alert(msg string)
}

// AlertFunc adapts a function to Alerter.
type AlertFunc func(msg string)

// Alert implements Alerter.
func (f AlertFunc) Alert(msg string) { f(msg) }

type alerterKey struct{}

// WithAlerter returns a context whose callbacks raise alerts through a.
func WithAlerter(ctx context.Context, a Alerter) context.Context {
	return context.WithValue(ctx, alerterKey{}, a)
}

// Alert raises msg through the context's Alerter. Without one, the alert
// is logged.
func Alert(ctx context.Context, msg string) {
	if a, ok := ctx.Value(alerterKey{}).(Alerter); ok && a != nil {
		a.Alert(msg)
		return
	}
	slog.InfoContext(ctx, "alert", "message", msg)
}

// AlertLog collects alerts, for example to return them in an HTTP
// response. It is safe for concurrent use.
type AlertLog struct {
	mu   sync.Mutex
	msgs []string
}

// Alert implements Alerter.
func (l *AlertLog) Alert(msg string) {
	l.mu.Lock()
	l.msgs = append(l.msgs, msg)
	l.mu.Unlock()
}

// Messages returns the collected alerts in order.
func (l *AlertLog) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.msgs...)
}
