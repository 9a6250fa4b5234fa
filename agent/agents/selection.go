package agents

import (
	"fmt"
	"strconv"
	"strings"

	contractx "github.com/trattoria-labs/tavolo/agent/contract"
	"github.com/trattoria-labs/tavolo/agent/restaurant"
	statex "github.com/trattoria-labs/tavolo/agent/state"
)

// OrderSelection asks how the order should be fulfilled. Conditions are
// checked in fixed order: domicilio, ritiro, asporto.
type OrderSelection struct {
	rest *restaurant.Config
}

func NewOrderSelection(rest *restaurant.Config) *OrderSelection {
	return &OrderSelection{rest: rest}
}

func (a *OrderSelection) Process(s *statex.Session, text string) contractx.Outcome {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "domicilio"):
		s.Order.Type = statex.OrderDelivery
		reply := "Perfetto! Ordine con consegna a domicilio.\n" +
			"Cosa vorresti ordinare dal nostro menu?\n\n" +
			menuListing(a.rest.Menu)
		return contractx.Outcome{Reply: reply, Next: statex.StateDeliveryOrder}

	case strings.Contains(lower, "ritiro"):
		s.Order.Type = statex.OrderPickup
		reply := "Ottima scelta! Ordine con ritiro al locale.\n" +
			"Scegli dal menu e dimmi per che ora vorresti ritirare.\n\n" +
			menuListing(a.rest.Menu)
		return contractx.Outcome{Reply: reply, Next: statex.StatePickupOrder}

	case strings.Contains(lower, "asporto"):
		s.Order.Type = statex.OrderTakeaway
		reply := "Asporto rapido! Perfetto per chi ha fretta.\n" +
			"Cosa posso prepararti velocemente?\n\n" +
			menuListing(a.rest.Menu)
		return contractx.Outcome{Reply: reply, Next: statex.StateTakeawayOrder}
	}

	return contractx.Outcome{Reply: "Non ho capito bene. Preferisci:\n" +
		"1. Consegna a domicilio\n" +
		"2. Ritiro al locale\n" +
		"3. Asporto rapido"}
}

// menuListing renders the menu grouped by category in table order.
func menuListing(menu []restaurant.MenuItem) string {
	var order []string
	byCategory := make(map[string][]string)
	for _, item := range menu {
		if _, seen := byCategory[item.Category]; !seen {
			order = append(order, item.Category)
		}
		byCategory[item.Category] = append(byCategory[item.Category],
			fmt.Sprintf("%s (%s€)", item.Name, priceLabel(item.Price)))
	}

	lines := make([]string, 0, len(order))
	for _, category := range order {
		lines = append(lines, category+": "+strings.Join(byCategory[category], ", "))
	}
	return strings.Join(lines, "\n")
}

func priceLabel(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
