package state

import (
	"fmt"
	"time"
)

// StateName identifies one dialogue agent. A Session.CurrentAgent is always a
// member of this set; a turn that does not transition leaves it untouched.
type StateName string

const (
	StateGreeting            StateName = "greeting"
	StateOrderSelection      StateName = "orderSelection"
	StateDeliveryOrder       StateName = "deliveryOrder"
	StatePickupOrder         StateName = "pickupOrder"
	StateTakeawayOrder       StateName = "takeawayOrder"
	StateCollectCustomerData StateName = "collectCustomerData"
	StateInfo                StateName = "info"
	StateReservation         StateName = "reservation"
	StateConfirmation        StateName = "confirmation"
	StateClarification       StateName = "clarification"
)

var allStates = map[StateName]struct{}{
	StateGreeting:            {},
	StateOrderSelection:      {},
	StateDeliveryOrder:       {},
	StatePickupOrder:         {},
	StateTakeawayOrder:       {},
	StateCollectCustomerData: {},
	StateInfo:                {},
	StateReservation:         {},
	StateConfirmation:        {},
	StateClarification:       {},
}

func (n StateName) Valid() bool {
	_, ok := allStates[n]
	return ok
}

type OrderType string

const (
	OrderDelivery OrderType = "delivery"
	OrderPickup   OrderType = "pickup"
	OrderTakeaway OrderType = "takeaway"
)

type OrderItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Customer fields are write-once: once non-empty they are never overwritten.
type Customer struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

func (c *Customer) Complete() bool {
	return c.Name != "" && c.Phone != "" && c.Email != ""
}

// Missing lists the still-unset fields using the labels the bot speaks.
func (c *Customer) Missing() []string {
	var missing []string
	if c.Name == "" {
		missing = append(missing, "nome")
	}
	if c.Phone == "" {
		missing = append(missing, "telefono")
	}
	if c.Email == "" {
		missing = append(missing, "email")
	}
	return missing
}

type Order struct {
	Type            OrderType   `json:"orderType,omitempty"`
	Items           []OrderItem `json:"orderItems"`
	DeliveryAddress string      `json:"deliveryAddress,omitempty"`
	PickupTime      string      `json:"pickupTime,omitempty"`
	Total           float64     `json:"total"`
}

func (o *Order) HasItems() bool {
	return len(o.Items) > 0
}

// SetItems replaces the line items and recomputes Total once: the sum of item
// prices plus the delivery surcharge (pass 0 for pickup/takeaway).
func (o *Order) SetItems(items []OrderItem, deliveryCost float64) {
	o.Items = items
	total := deliveryCost
	for _, it := range items {
		total += it.Price
	}
	o.Total = total
}

// ItemNames returns the line item names in order, for summaries.
func (o *Order) ItemNames() []string {
	names := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		names = append(names, it.Name)
	}
	return names
}

type Reservation struct {
	PartySize int    `json:"partySize"`
	Date      string `json:"date"`
	Time      string `json:"time,omitempty"`
}

type TurnRole string

const (
	RoleUser TurnRole = "user"
	RoleBot  TurnRole = "bot"
)

type Turn struct {
	Role TurnRole  `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Session is the per-user conversation state. It is exclusively owned by the
// dispatcher pipeline for its user; the store serializes access per user id.
type Session struct {
	UserID       string       `json:"userId"`
	CurrentAgent StateName    `json:"currentAgent"`
	Customer     Customer     `json:"customer"`
	Order        Order        `json:"order"`
	Reservation  *Reservation `json:"reservation,omitempty"`
	History      []Turn       `json:"history"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewSession(userID string, now time.Time) *Session {
	return &Session{
		UserID:       userID,
		CurrentAgent: StateGreeting,
		Order:        Order{Items: []OrderItem{}},
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
	}
}

func (s *Session) Touch(now time.Time) {
	s.UpdatedAt = now.UTC()
}

// AppendUser appends a user utterance to the history. History is append-only.
func (s *Session) AppendUser(text string, at time.Time) {
	s.History = append(s.History, Turn{Role: RoleUser, Text: text, At: at.UTC()})
}

// AppendBot appends a bot utterance to the history.
func (s *Session) AppendBot(text string, at time.Time) {
	s.History = append(s.History, Turn{Role: RoleBot, Text: text, At: at.UTC()})
}

func (s *Session) Validate() error {
	if s.UserID == "" {
		return fmt.Errorf("session has empty user id")
	}
	if !s.CurrentAgent.Valid() {
		return fmt.Errorf("session %s has unknown agent %q", s.UserID, s.CurrentAgent)
	}
	return nil
}

// DataSnapshot is the read-only copy of session data returned with each turn.
type DataSnapshot struct {
	Name               string       `json:"name,omitempty"`
	Phone              string       `json:"phone,omitempty"`
	Email              string       `json:"email,omitempty"`
	OrderType          OrderType    `json:"orderType,omitempty"`
	OrderItems         []OrderItem  `json:"orderItems"`
	DeliveryAddress    string       `json:"deliveryAddress,omitempty"`
	PickupTime         string       `json:"pickupTime,omitempty"`
	ReservationDetails *Reservation `json:"reservationDetails,omitempty"`
	Total              float64      `json:"total"`
}

// Snapshot deep-copies the session data so callers never alias live state.
func (s *Session) Snapshot() DataSnapshot {
	snap := DataSnapshot{
		Name:            s.Customer.Name,
		Phone:           s.Customer.Phone,
		Email:           s.Customer.Email,
		OrderType:       s.Order.Type,
		OrderItems:      make([]OrderItem, len(s.Order.Items)),
		DeliveryAddress: s.Order.DeliveryAddress,
		PickupTime:      s.Order.PickupTime,
		Total:           s.Order.Total,
	}
	copy(snap.OrderItems, s.Order.Items)
	if s.Reservation != nil {
		r := *s.Reservation
		snap.ReservationDetails = &r
	}
	return snap
}
