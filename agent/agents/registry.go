package agents

import (
	contractx "github.com/trattoria-labs/tavolo/agent/contract"
	"github.com/trattoria-labs/tavolo/agent/restaurant"
	statex "github.com/trattoria-labs/tavolo/agent/state"
)

// Registry maps every state name to its agent. It is built once at startup
// and read-only afterwards.
type Registry struct {
	byName map[statex.StateName]contractx.Agent
}

func NewRegistry(rest *restaurant.Config) *Registry {
	return &Registry{
		byName: map[statex.StateName]contractx.Agent{
			statex.StateGreeting:            NewGreeting(rest),
			statex.StateOrderSelection:      NewOrderSelection(rest),
			statex.StateDeliveryOrder:       NewDeliveryOrder(rest),
			statex.StatePickupOrder:         NewPickupOrder(rest),
			statex.StateTakeawayOrder:       NewTakeawayOrder(rest),
			statex.StateCollectCustomerData: NewCollectCustomerData(rest),
			statex.StateInfo:                NewInfo(rest),
			statex.StateReservation:         NewReservation(rest),
			statex.StateConfirmation:        NewConfirmation(rest),
			statex.StateClarification:       NewClarification(rest),
		},
	}
}

func (r *Registry) Lookup(name statex.StateName) (contractx.Agent, bool) {
	agent, ok := r.byName[name]
	return agent, ok
}
