package notify

import "log/slog"

// LogListener writes each change event to the structured log. It stands in
// for outbound channels (e-mail, chat) that only need the rendered message.
type LogListener struct {
	logger *slog.Logger
}

// NewLogListener builds a listener over the given logger.
func NewLogListener(logger *slog.Logger) *LogListener {
	return &LogListener{logger: logger}
}

// Notify implements Listener.
func (l *LogListener) Notify(event Event) error {
	if l.logger == nil {
		return nil
	}
	l.logger.Info("change event",
		slog.String("event", event.EventName()),
		slog.Time("occurred_at", event.OccurredAt()),
		slog.String("message", event.Message()),
	)
	return nil
}

var _ Listener = (*LogListener)(nil)
