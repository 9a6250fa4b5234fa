package agents

import (
	"fmt"
	"strings"

	contractx "github.com/trattoria-labs/tavolo/agent/contract"
	"github.com/trattoria-labs/tavolo/agent/extract"
	"github.com/trattoria-labs/tavolo/agent/restaurant"
	statex "github.com/trattoria-labs/tavolo/agent/state"
)

// DeliveryOrder collects line items, enforces the delivery minimum, then
// takes the next free-text message as the delivery address. Condition order
// is fixed; the first satisfied branch wins.
type DeliveryOrder struct {
	rest *restaurant.Config
}

func NewDeliveryOrder(rest *restaurant.Config) *DeliveryOrder {
	return &DeliveryOrder{rest: rest}
}

func (a *DeliveryOrder) Process(s *statex.Session, text string) contractx.Outcome {
	items := extract.OrderItems(text, a.rest.Menu)
	if len(items) > 0 && !s.Order.HasItems() {
		s.Order.SetItems(items, a.rest.DeliveryCost)

		if s.Order.Total < a.rest.MinimumOrder {
			reply := fmt.Sprintf("Il totale è €%.2f ma l'ordine minimo per la consegna è €%.2f.\n"+
				"Vuoi aggiungere qualcosa?", s.Order.Total, a.rest.MinimumOrder)
			return contractx.Outcome{Reply: reply}
		}

		reply := fmt.Sprintf("Ordine: %s\n"+
			"Totale: €%.2f (inclusa consegna €%.2f)\n\n"+
			"Ora ho bisogno dell'indirizzo di consegna.",
			strings.Join(s.Order.ItemNames(), ", "), s.Order.Total, a.rest.DeliveryCost)
		return contractx.Outcome{Reply: reply}
	}

	if s.Order.HasItems() && s.Order.DeliveryAddress == "" {
		s.Order.DeliveryAddress = text
		reply := fmt.Sprintf("Indirizzo registrato: %s\n\n"+
			"Per completare l'ordine ho bisogno di:\n"+
			"- Nome completo\n"+
			"- Numero di telefono\n"+
			"- Email", text)
		return contractx.Outcome{Reply: reply, Next: statex.StateCollectCustomerData}
	}

	return contractx.Outcome{Reply: "Cosa vorresti ordinare? Dimmi i piatti che ti interessano."}
}
