// Package agents implements the dialogue state machine: one agent per
// conversation state, resolved through the Registry by state name.
package agents

import (
	"fmt"

	contractx "github.com/trattoria-labs/tavolo/agent/contract"
	"github.com/trattoria-labs/tavolo/agent/intent"
	"github.com/trattoria-labs/tavolo/agent/restaurant"
	statex "github.com/trattoria-labs/tavolo/agent/state"
)

// Greeting routes the opening message by intent. Anything unclear hands the
// conversation over to Clarification.
type Greeting struct {
	rest *restaurant.Config
}

func NewGreeting(rest *restaurant.Config) *Greeting {
	return &Greeting{rest: rest}
}

func (g *Greeting) Process(s *statex.Session, text string) contractx.Outcome {
	if out, ok := routeByIntent(g.rest, text); ok {
		return out
	}
	return contractx.Outcome{
		Reply: clarificationPrompt(g.rest),
		Next:  statex.StateClarification,
	}
}

// routeByIntent is shared by Greeting and Clarification: both advance the
// conversation the same way when an intent is recognized.
func routeByIntent(rest *restaurant.Config, text string) (contractx.Outcome, bool) {
	switch intent.Classify(text) {
	case contractx.IntentOrder:
		reply := fmt.Sprintf("Ciao! Benvenuto da %s!\n"+
			"Vedo che vuoi fare un ordine. Preferisci:\n"+
			"- Consegna a domicilio\n"+
			"- Ritiro al locale\n"+
			"- Asporto rapido", rest.Name)
		return contractx.Outcome{Reply: reply, Next: statex.StateOrderSelection}, true
	case contractx.IntentReservation:
		reply := "Perfetto! Ti aiuto con la prenotazione del tavolo.\n" +
			"Per quante persone e per quando?"
		return contractx.Outcome{Reply: reply, Next: statex.StateReservation}, true
	case contractx.IntentInfo:
		reply := fmt.Sprintf("Ti fornisco volentieri le informazioni su %s!\n"+
			"Cosa vorresti sapere? Orari, menu, contatti o altro?", rest.Name)
		return contractx.Outcome{Reply: reply, Next: statex.StateInfo}, true
	default:
		return contractx.Outcome{}, false
	}
}

func clarificationPrompt(rest *restaurant.Config) string {
	return fmt.Sprintf("Ciao! Sono l'assistente di %s.\n"+
		"Come posso aiutarti oggi? Vuoi:\n"+
		"- Ordinare cibo\n"+
		"- Prenotare un tavolo\n"+
		"- Ricevere informazioni", rest.Name)
}
