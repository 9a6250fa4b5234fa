package contract

import (
	"context"

	statex "github.com/trattoria-labs/tavolo/agent/state"
)

// Agent implements one conversation state's logic. Process may mutate the
// session data but must never fail: unmatched input is a re-prompt, not an
// error. Transitions are requested via Outcome.Next.
type Agent interface {
	Process(s *statex.Session, text string) Outcome
}

// Registry resolves a state name to its agent.
type Registry interface {
	Lookup(name statex.StateName) (Agent, bool)
}

// SessionStore hands out sessions with the per-user turn lock held.
type SessionStore interface {
	Acquire(userID string) (*statex.Session, func())
	Len() int
	Close()
}

// OrderArchive persists completed orders and reservations. Failures are
// logged by the caller and never surfaced to the conversation.
type OrderArchive interface {
	SaveOrder(ctx context.Context, rec OrderRecord) error
}

// Notifier tells the restaurant about a completed order.
type Notifier interface {
	NotifyOrder(ctx context.Context, rec OrderRecord) error
}
