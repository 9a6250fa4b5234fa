package contract

import (
	"time"

	statex "github.com/trattoria-labs/tavolo/agent/state"
)

// Intent is the coarse classification of a user message.
type Intent string

const (
	IntentOrder       Intent = "order"
	IntentReservation Intent = "reservation"
	IntentInfo        Intent = "info"
	IntentUnclear     Intent = "unclear"
)

// Outcome is what an agent produces for one turn. Next is the transition
// target; empty means stay in the current state. Effects are commands for the
// dispatcher's collaborators and never block the reply.
type Outcome struct {
	Reply   string
	Next    statex.StateName
	Effects []Effect
}

type EffectKind string

const (
	EffectPersistOrder     EffectKind = "persist_order"
	EffectNotifyRestaurant EffectKind = "notify_restaurant"
)

type Effect struct {
	Kind   EffectKind
	Record OrderRecord
}

// OrderRecord is the flattened session data handed to the archive and the
// restaurant notifier once customer data is complete.
type OrderRecord struct {
	UserID          string              `json:"user_id"`
	CustomerName    string              `json:"customer_name"`
	CustomerPhone   string              `json:"customer_phone"`
	CustomerEmail   string              `json:"customer_email"`
	OrderType       statex.OrderType    `json:"order_type,omitempty"`
	Items           []statex.OrderItem  `json:"items,omitempty"`
	DeliveryAddress string              `json:"delivery_address,omitempty"`
	PickupTime      string              `json:"pickup_time,omitempty"`
	Total           float64             `json:"total"`
	Reservation     *statex.Reservation `json:"reservation,omitempty"`
	CompletedAt     time.Time           `json:"completed_at"`
}

// TurnResult is the outbound boundary contract for one turn.
type TurnResult struct {
	Response     string              `json:"response"`
	CurrentAgent statex.StateName    `json:"currentAgent"`
	SessionData  statex.DataSnapshot `json:"sessionData"`
}
