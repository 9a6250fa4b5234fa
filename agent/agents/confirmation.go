package agents

import (
	"fmt"
	"strings"

	contractx "github.com/trattoria-labs/tavolo/agent/contract"
	"github.com/trattoria-labs/tavolo/agent/restaurant"
	statex "github.com/trattoria-labs/tavolo/agent/state"
)

// Confirmation closes the flow. A confirming word acknowledges the order; a
// restart phrase clears order and reservation data (customer data is
// write-once and survives) and returns to Greeting; anything else re-prompts.
type Confirmation struct {
	rest *restaurant.Config
}

func NewConfirmation(rest *restaurant.Config) *Confirmation {
	return &Confirmation{rest: rest}
}

func (a *Confirmation) Process(s *statex.Session, text string) contractx.Outcome {
	lower := strings.ToLower(text)

	if strings.Contains(lower, "nuovo ordine") || strings.Contains(lower, "ricomincia") {
		s.Order = statex.Order{Items: []statex.OrderItem{}}
		s.Reservation = nil
		return contractx.Outcome{
			Reply: "Va bene, ricominciamo! Come posso aiutarti?",
			Next:  statex.StateGreeting,
		}
	}

	if confirms(lower) {
		return contractx.Outcome{
			Reply: fmt.Sprintf("Grazie %s! È tutto confermato, %s ti aspetta.\n"+
				"Per qualsiasi cosa chiamaci al %s.",
				s.Customer.Name, a.rest.Name, a.rest.Phone),
		}
	}

	return contractx.Outcome{Reply: "Confermi? Rispondi \"confermo\" oppure scrivi \"nuovo ordine\" per ricominciare."}
}

func confirms(lower string) bool {
	if strings.Contains(lower, "conferm") {
		return true
	}
	for _, field := range strings.Fields(lower) {
		switch strings.Trim(field, ".,!") {
		case "sì", "si", "ok", "certo":
			return true
		}
	}
	return false
}
