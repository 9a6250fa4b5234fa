package agents

import (
	contractx "github.com/trattoria-labs/tavolo/agent/contract"
	"github.com/trattoria-labs/tavolo/agent/restaurant"
	statex "github.com/trattoria-labs/tavolo/agent/state"
)

// Clarification re-classifies every message like Greeting does, but an
// unclear message repeats the same prompt without advancing. Sending the same
// unrecognized message twice therefore yields the same reply twice.
type Clarification struct {
	rest *restaurant.Config
}

func NewClarification(rest *restaurant.Config) *Clarification {
	return &Clarification{rest: rest}
}

func (c *Clarification) Process(s *statex.Session, text string) contractx.Outcome {
	if out, ok := routeByIntent(c.rest, text); ok {
		return out
	}
	return contractx.Outcome{Reply: clarificationPrompt(c.rest)}
}
