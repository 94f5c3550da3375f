package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hp-grievance/portal/internal/core/domain"
)

// LogNotifier delivers notifications by writing them to the structured log.
// It stands in for the SMS gateway, which is out of scope.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, msg domain.Notification) error {
	n.log.Info().
		Str("grievance_id", msg.GrievanceID).
		Str("subject", msg.Subject).
		Str("status", string(msg.Status)).
		Str("message", msg.Message).
		Time("created_at", msg.CreatedAt).
		Msg("citizen notified")
	return nil
}
