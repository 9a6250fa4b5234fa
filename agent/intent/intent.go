// Package intent classifies user messages into coarse topic categories by
// ordered keyword containment. Deliberately no NLU: the first matching
// category in table order wins, everything else is Unclear.
package intent

import (
	"strings"

	contractx "github.com/trattoria-labs/tavolo/agent/contract"
)

type keywordSet struct {
	intent contractx.Intent
	words  []string
}

// Table order is the tie-break: order before reservation before info.
var table = []keywordSet{
	{contractx.IntentOrder, []string{"ordine", "ordinare", "cibo", "pizza", "pasta"}},
	{contractx.IntentReservation, []string{"prenotazione", "tavolo", "prenotare"}},
	{contractx.IntentInfo, []string{"informazioni", "orari", "indirizzo", "menu"}},
}

// Classify lowercases the text and returns the first matching category.
func Classify(text string) contractx.Intent {
	lower := strings.ToLower(text)
	for _, set := range table {
		for _, word := range set.words {
			if strings.Contains(lower, word) {
				return set.intent
			}
		}
	}
	return contractx.IntentUnclear
}
