package agents

import (
	"fmt"
	"strings"

	contractx "github.com/trattoria-labs/tavolo/agent/contract"
	"github.com/trattoria-labs/tavolo/agent/extract"
	"github.com/trattoria-labs/tavolo/agent/restaurant"
	statex "github.com/trattoria-labs/tavolo/agent/state"
)

// PickupOrder collects line items for pickup at the restaurant. No delivery
// surcharge and no minimum apply; a stated time ("alle 19:30") is recorded as
// the desired pickup time.
type PickupOrder struct {
	rest *restaurant.Config
}

func NewPickupOrder(rest *restaurant.Config) *PickupOrder {
	return &PickupOrder{rest: rest}
}

func (a *PickupOrder) Process(s *statex.Session, text string) contractx.Outcome {
	items := extract.OrderItems(text, a.rest.Menu)
	if len(items) > 0 && !s.Order.HasItems() {
		s.Order.SetItems(items, 0)
		if t := extract.Reservation(text).Time; t != "" {
			s.Order.PickupTime = t
		}

		when := "appena pronto"
		if s.Order.PickupTime != "" {
			when = "alle " + s.Order.PickupTime
		}
		reply := fmt.Sprintf("Ordine: %s\n"+
			"Totale: €%.2f, ritiro al locale %s.\n\n"+
			"Per completare l'ordine ho bisogno di:\n"+
			"- Nome completo\n"+
			"- Numero di telefono\n"+
			"- Email",
			strings.Join(s.Order.ItemNames(), ", "), s.Order.Total, when)
		return contractx.Outcome{Reply: reply, Next: statex.StateCollectCustomerData}
	}

	return contractx.Outcome{Reply: "Scegli dal menu e dimmi per che ora vorresti ritirare.\n\n" +
		menuListing(a.rest.Menu)}
}
