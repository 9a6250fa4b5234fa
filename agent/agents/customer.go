package agents

import (
	"fmt"
	"strings"

	contractx "github.com/trattoria-labs/tavolo/agent/contract"
	"github.com/trattoria-labs/tavolo/agent/extract"
	"github.com/trattoria-labs/tavolo/agent/restaurant"
	statex "github.com/trattoria-labs/tavolo/agent/state"
)

// CollectCustomerData fills name, phone, and email in that fixed order: the
// first unset field whose presence test passes wins the turn. Fields are
// write-once. When the email lands, all three are set and the completed
// order is handed to the archive and the restaurant notifier as effects.
type CollectCustomerData struct {
	rest *restaurant.Config
}

func NewCollectCustomerData(rest *restaurant.Config) *CollectCustomerData {
	return &CollectCustomerData{rest: rest}
}

func (a *CollectCustomerData) Process(s *statex.Session, text string) contractx.Outcome {
	if s.Customer.Name == "" && extract.HasNameMarker(text) {
		s.Customer.Name = extract.Name(text)
		return contractx.Outcome{
			Reply: fmt.Sprintf("Grazie %s! Ora il numero di telefono?", s.Customer.Name),
		}
	}

	if s.Customer.Phone == "" && extract.HasPhoneMarker(text) {
		s.Customer.Phone = extract.Phone(text)
		return contractx.Outcome{Reply: "Numero registrato. Ultima cosa: la tua email?"}
	}

	if s.Customer.Email == "" && extract.HasEmailMarker(text) {
		s.Customer.Email = extract.Email(text)

		rec := recordFromSession(s)
		return contractx.Outcome{
			Reply: completionSummary(s),
			Next:  statex.StateConfirmation,
			Effects: []contractx.Effect{
				{Kind: contractx.EffectPersistOrder, Record: rec},
				{Kind: contractx.EffectNotifyRestaurant, Record: rec},
			},
		}
	}

	return contractx.Outcome{
		Reply: fmt.Sprintf("Ho bisogno ancora di %s.", strings.Join(s.Customer.Missing(), " e ")),
	}
}

func completionSummary(s *statex.Session) string {
	var b strings.Builder
	b.WriteString("Perfetto! Riepilogo:\n\n")
	fmt.Fprintf(&b, "%s - %s\n", s.Customer.Name, s.Customer.Phone)

	if s.Reservation != nil {
		when := s.Reservation.Time
		if when == "" {
			when = "20:00"
		}
		fmt.Fprintf(&b, "Tavolo per %d persone il %s alle %s\n", s.Reservation.PartySize, s.Reservation.Date, when)
	}
	if s.Order.HasItems() {
		if s.Order.DeliveryAddress != "" {
			fmt.Fprintf(&b, "%s\n", s.Order.DeliveryAddress)
		}
		fmt.Fprintf(&b, "%s\n", strings.Join(s.Order.ItemNames(), ", "))
		fmt.Fprintf(&b, "Totale: €%.2f\n", s.Order.Total)
	}

	b.WriteString("\nConfermi? Il ristorante riceverà la notifica immediatamente.")
	return b.String()
}

func recordFromSession(s *statex.Session) contractx.OrderRecord {
	rec := contractx.OrderRecord{
		UserID:          s.UserID,
		CustomerName:    s.Customer.Name,
		CustomerPhone:   s.Customer.Phone,
		CustomerEmail:   s.Customer.Email,
		OrderType:       s.Order.Type,
		DeliveryAddress: s.Order.DeliveryAddress,
		PickupTime:      s.Order.PickupTime,
		Total:           s.Order.Total,
	}
	if s.Order.HasItems() {
		rec.Items = make([]statex.OrderItem, len(s.Order.Items))
		copy(rec.Items, s.Order.Items)
	}
	if s.Reservation != nil {
		r := *s.Reservation
		rec.Reservation = &r
	}
	return rec
}
