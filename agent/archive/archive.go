// Package archive persists completed orders and reservations. It is the
// fire-and-forget collaborator behind the dialogue core: the conversation
// never waits on it and never sees its failures.
package archive

import (
	"context"

	"github.com/rs/zerolog/log"
	contractx "github.com/trattoria-labs/tavolo/agent/contract"
)

// Noop is used when no archive DSN is configured. It only logs, so completed
// orders still leave a trace in the process output.
type Noop struct{}

func NewNoop() *Noop {
	return &Noop{}
}

func (*Noop) SaveOrder(_ context.Context, rec contractx.OrderRecord) error {
	log.Info().
		Str("user_id", rec.UserID).
		Str("customer", rec.CustomerName).
		Float64("total", rec.Total).
		Msg("order archive disabled, record dropped")
	return nil
}
