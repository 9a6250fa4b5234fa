package agents

import (
	"fmt"
	"strings"

	contractx "github.com/trattoria-labs/tavolo/agent/contract"
	"github.com/trattoria-labs/tavolo/agent/restaurant"
	statex "github.com/trattoria-labs/tavolo/agent/state"
)

// Info answers single-turn questions about the restaurant and never leaves
// its state. Topic checks run in fixed order: orari, menu, indirizzo/dove.
type Info struct {
	rest *restaurant.Config
}

func NewInfo(rest *restaurant.Config) *Info {
	return &Info{rest: rest}
}

func (a *Info) Process(s *statex.Session, text string) contractx.Outcome {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "orari"):
		return contractx.Outcome{Reply: fmt.Sprintf("Orari di %s:\n%s\n\nAltro che vuoi sapere?",
			a.rest.Name, a.rest.Hours)}

	case strings.Contains(lower, "menu"):
		return contractx.Outcome{Reply: fmt.Sprintf("Le nostre categorie:\n%s\n\nVuoi fare un ordine ora?",
			strings.Join(a.rest.Categories, "\n"))}

	case strings.Contains(lower, "indirizzo"), strings.Contains(lower, "dove"):
		return contractx.Outcome{Reply: fmt.Sprintf("Ci trovi in: %s\n\nVuoi prenotare un tavolo?",
			a.rest.Address)}
	}

	return contractx.Outcome{Reply: "Ti posso dare informazioni su:\n" +
		"- Orari di apertura\n" +
		"- Menu e prezzi\n" +
		"- Indirizzo e contatti\n" +
		"- Modalità di ordine e consegna"}
}
