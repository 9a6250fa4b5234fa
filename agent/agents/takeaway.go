package agents

import (
	"fmt"
	"strings"

	contractx "github.com/trattoria-labs/tavolo/agent/contract"
	"github.com/trattoria-labs/tavolo/agent/extract"
	"github.com/trattoria-labs/tavolo/agent/restaurant"
	statex "github.com/trattoria-labs/tavolo/agent/state"
)

// TakeawayOrder collects line items for quick takeaway, then moves straight
// to customer data collection.
type TakeawayOrder struct {
	rest *restaurant.Config
}

func NewTakeawayOrder(rest *restaurant.Config) *TakeawayOrder {
	return &TakeawayOrder{rest: rest}
}

func (a *TakeawayOrder) Process(s *statex.Session, text string) contractx.Outcome {
	items := extract.OrderItems(text, a.rest.Menu)
	if len(items) > 0 && !s.Order.HasItems() {
		s.Order.SetItems(items, 0)

		reply := fmt.Sprintf("Ordine: %s\n"+
			"Totale: €%.2f, pronto per l'asporto.\n\n"+
			"Per completare l'ordine ho bisogno di:\n"+
			"- Nome completo\n"+
			"- Numero di telefono\n"+
			"- Email",
			strings.Join(s.Order.ItemNames(), ", "), s.Order.Total)
		return contractx.Outcome{Reply: reply, Next: statex.StateCollectCustomerData}
	}

	return contractx.Outcome{Reply: "Cosa posso prepararti velocemente?\n\n" + menuListing(a.rest.Menu)}
}
