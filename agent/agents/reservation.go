package agents

import (
	"fmt"

	contractx "github.com/trattoria-labs/tavolo/agent/contract"
	"github.com/trattoria-labs/tavolo/agent/extract"
	"github.com/trattoria-labs/tavolo/agent/restaurant"
	statex "github.com/trattoria-labs/tavolo/agent/state"
)

// Reservation books a table once both party size and date are found in a
// single message. The 20:00 default only appears in the reply; an absent
// time is stored as absent.
type Reservation struct {
	rest *restaurant.Config
}

func NewReservation(rest *restaurant.Config) *Reservation {
	return &Reservation{rest: rest}
}

func (a *Reservation) Process(s *statex.Session, text string) contractx.Outcome {
	det := extract.Reservation(text)

	if det.PartySize > 0 && det.Date != "" {
		s.Reservation = &statex.Reservation{
			PartySize: det.PartySize,
			Date:      det.Date,
			Time:      det.Time,
		}

		when := det.Time
		if when == "" {
			when = "20:00"
		}
		reply := fmt.Sprintf("Prenotazione per %d persone il %s alle %s.\n\n"+
			"Ora ho bisogno dei tuoi dati:\n"+
			"- Nome completo\n"+
			"- Numero di telefono\n"+
			"- Email", det.PartySize, det.Date, when)
		return contractx.Outcome{Reply: reply, Next: statex.StateCollectCustomerData}
	}

	return contractx.Outcome{Reply: "Per la prenotazione ho bisogno di:\n" +
		"- Numero di persone\n" +
		"- Data e orario preferito\n\n" +
		"Esempio: \"Tavolo per 4 persone sabato alle 20:00\""}
}
