package agents

import (
	"strings"
	"testing"
	"time"

	contractx "github.com/trattoria-labs/tavolo/agent/contract"
	"github.com/trattoria-labs/tavolo/agent/restaurant"
	statex "github.com/trattoria-labs/tavolo/agent/state"
)

func testConfig() *restaurant.Config {
	return &restaurant.Config{
		Name:         "Trattoria del Tavolo",
		Address:      "Via Garibaldi 12, Milano",
		Hours:        "Mar-Dom 12:00-15:00, 19:00-23:30",
		Phone:        "123456789",
		Categories:   []string{"Antipasti", "Primi", "Secondi", "Dolci"},
		DeliveryCost: 3.5,
		MinimumOrder: 15,
		Menu: []restaurant.MenuItem{
			{Keyword: "margherita", Name: "Pizza Margherita", Category: "Pizze", Price: 8},
			{Keyword: "diavola", Name: "Pizza Diavola", Category: "Pizze", Price: 10},
			{Keyword: "carbonara", Name: "Pasta Carbonara", Category: "Pasta", Price: 9},
			{Keyword: "amatriciana", Name: "Pasta Amatriciana", Category: "Pasta", Price: 9},
			{Keyword: "caesar", Name: "Insalata Caesar", Category: "Insalate", Price: 7},
			{Keyword: "mista", Name: "Insalata Mista", Category: "Insalate", Price: 6},
		},
	}
}

func newTestSession() *statex.Session {
	return statex.NewSession("u1", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
}

// run processes one turn through the registry and applies the transition the
// way the dispatcher does.
func run(t *testing.T, reg *Registry, s *statex.Session, text string) contractx.Outcome {
	t.Helper()
	agent, ok := reg.Lookup(s.CurrentAgent)
	if !ok {
		t.Fatalf("no agent registered for %s", s.CurrentAgent)
	}
	out := agent.Process(s, text)
	if out.Next != "" {
		if !out.Next.Valid() {
			t.Fatalf("agent %s requested invalid transition %q", s.CurrentAgent, out.Next)
		}
		s.CurrentAgent = out.Next
	}
	return out
}

func TestRegistryCoversAllStates(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(testConfig())
	for _, name := range []statex.StateName{
		statex.StateGreeting, statex.StateOrderSelection, statex.StateDeliveryOrder,
		statex.StatePickupOrder, statex.StateTakeawayOrder, statex.StateCollectCustomerData,
		statex.StateInfo, statex.StateReservation, statex.StateConfirmation,
		statex.StateClarification,
	} {
		if _, ok := reg.Lookup(name); !ok {
			t.Fatalf("no agent registered for %s", name)
		}
	}
}

func TestGreetingRoutesOrderIntent(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(testConfig())
	s := newTestSession()

	out := run(t, reg, s, "vorrei ordinare")
	if s.CurrentAgent != statex.StateOrderSelection {
		t.Fatalf("state = %s, want %s", s.CurrentAgent, statex.StateOrderSelection)
	}
	for _, option := range []string{"domicilio", "Ritiro", "Asporto"} {
		if !strings.Contains(out.Reply, option) {
			t.Fatalf("reply must list %q: %s", option, out.Reply)
		}
	}
}

func TestGreetingRoutesReservationAndInfo(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(testConfig())

	s := newTestSession()
	run(t, reg, s, "vorrei prenotare un tavolo")
	if s.CurrentAgent != statex.StateReservation {
		t.Fatalf("state = %s, want %s", s.CurrentAgent, statex.StateReservation)
	}

	s = newTestSession()
	run(t, reg, s, "che orari fate?")
	if s.CurrentAgent != statex.StateInfo {
		t.Fatalf("state = %s, want %s", s.CurrentAgent, statex.StateInfo)
	}
}

func TestClarificationIsIdempotent(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(testConfig())
	s := newTestSession()

	first := run(t, reg, s, "bla bla")
	if s.CurrentAgent != statex.StateClarification {
		t.Fatalf("state = %s, want %s", s.CurrentAgent, statex.StateClarification)
	}

	second := run(t, reg, s, "bla bla")
	if s.CurrentAgent != statex.StateClarification {
		t.Fatalf("clarification must not advance on unclear input, got %s", s.CurrentAgent)
	}
	if first.Reply != second.Reply {
		t.Fatalf("same unrecognized message must yield the same reply:\n%q\n%q", first.Reply, second.Reply)
	}
}

func TestClarificationStillRoutesIntents(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(testConfig())
	s := newTestSession()

	run(t, reg, s, "boh")
	run(t, reg, s, "allora vorrei ordinare una pizza")
	if s.CurrentAgent != statex.StateOrderSelection {
		t.Fatalf("state = %s, want %s", s.CurrentAgent, statex.StateOrderSelection)
	}
}

func TestOrderSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text     string
		wantType statex.OrderType
		wantNext statex.StateName
	}{
		{"consegna a domicilio", statex.OrderDelivery, statex.StateDeliveryOrder},
		{"ritiro al locale", statex.OrderPickup, statex.StatePickupOrder},
		{"asporto", statex.OrderTakeaway, statex.StateTakeawayOrder},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			reg := NewRegistry(testConfig())
			s := newTestSession()
			s.CurrentAgent = statex.StateOrderSelection

			run(t, reg, s, tt.text)
			if s.Order.Type != tt.wantType {
				t.Fatalf("order type = %s, want %s", s.Order.Type, tt.wantType)
			}
			if s.CurrentAgent != tt.wantNext {
				t.Fatalf("state = %s, want %s", s.CurrentAgent, tt.wantNext)
			}
		})
	}
}

func TestOrderSelectionRePrompts(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(testConfig())
	s := newTestSession()
	s.CurrentAgent = statex.StateOrderSelection

	out := run(t, reg, s, "non so")
	if s.CurrentAgent != statex.StateOrderSelection {
		t.Fatalf("state = %s, must stay", s.CurrentAgent)
	}
	if !strings.Contains(out.Reply, "Non ho capito") {
		t.Fatalf("unexpected reply: %s", out.Reply)
	}
}

func TestDeliveryOrderFlow(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(testConfig())
	s := newTestSession()
	s.CurrentAgent = statex.StateOrderSelection

	run(t, reg, s, "domicilio")

	// Items above the minimum: stays in state asking for the address.
	out := run(t, reg, s, "margherita e diavola")
	if s.CurrentAgent != statex.StateDeliveryOrder {
		t.Fatalf("state = %s, must stay while waiting for the address", s.CurrentAgent)
	}
	if len(s.Order.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(s.Order.Items))
	}
	if s.Order.Total != 21.5 {
		t.Fatalf("total = %v, want 21.5", s.Order.Total)
	}
	if !strings.Contains(out.Reply, "€21.50") {
		t.Fatalf("reply must state the total: %s", out.Reply)
	}
	if !strings.Contains(out.Reply, "indirizzo") {
		t.Fatalf("reply must ask for the address: %s", out.Reply)
	}

	// Next free-text message is the address.
	out = run(t, reg, s, "via Roma 10")
	if s.Order.DeliveryAddress != "via Roma 10" {
		t.Fatalf("address = %q", s.Order.DeliveryAddress)
	}
	if s.CurrentAgent != statex.StateCollectCustomerData {
		t.Fatalf("state = %s, want %s", s.CurrentAgent, statex.StateCollectCustomerData)
	}
	if !strings.Contains(out.Reply, "via Roma 10") {
		t.Fatalf("reply must echo the address: %s", out.Reply)
	}
}

func TestDeliveryOrderBelowMinimum(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(testConfig())
	s := newTestSession()
	s.CurrentAgent = statex.StateDeliveryOrder
	s.Order.Type = statex.OrderDelivery

	out := run(t, reg, s, "una insalata mista")
	if s.CurrentAgent != statex.StateDeliveryOrder {
		t.Fatalf("state = %s, must stay", s.CurrentAgent)
	}
	// 6 + 3.50 delivery = 9.50, under the 15.00 minimum.
	if s.Order.Total != 9.5 {
		t.Fatalf("total = %v, want 9.5", s.Order.Total)
	}
	if !strings.Contains(out.Reply, "ordine minimo") {
		t.Fatalf("reply must mention the minimum: %s", out.Reply)
	}
}

func TestDeliveryOrderRePromptsWithoutItems(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(testConfig())
	s := newTestSession()
	s.CurrentAgent = statex.StateDeliveryOrder

	out := run(t, reg, s, "qualcosa di buono")
	if s.CurrentAgent != statex.StateDeliveryOrder {
		t.Fatalf("state = %s, must stay", s.CurrentAgent)
	}
	if !strings.Contains(out.Reply, "Cosa vorresti ordinare") {
		t.Fatalf("unexpected reply: %s", out.Reply)
	}
}

func TestCollectCustomerDataSequence(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(testConfig())
	s := newTestSession()
	s.CurrentAgent = statex.StateCollectCustomerData
	s.Order.Type = statex.OrderDelivery
	s.Order.SetItems([]statex.OrderItem{
		{Name: "Pizza Margherita", Price: 8},
		{Name: "Pizza Diavola", Price: 10},
	}, 3.5)
	s.Order.DeliveryAddress = "via Roma 10"

	out := run(t, reg, s, "mi chiamo Mario")
	if s.Customer.Name != "Mario" {
		t.Fatalf("name = %q, want Mario", s.Customer.Name)
	}
	if !strings.Contains(out.Reply, "telefono") {
		t.Fatalf("reply must ask for the phone: %s", out.Reply)
	}

	run(t, reg, s, "3331234567")
	if s.Customer.Phone != "3331234567" {
		t.Fatalf("phone = %q", s.Customer.Phone)
	}

	out = run(t, reg, s, "mario@test.com")
	if s.Customer.Email != "mario@test.com" {
		t.Fatalf("email = %q", s.Customer.Email)
	}
	if s.CurrentAgent != statex.StateConfirmation {
		t.Fatalf("state = %s, want %s", s.CurrentAgent, statex.StateConfirmation)
	}
	if !strings.Contains(out.Reply, "€21.50") {
		t.Fatalf("summary must contain the total: %s", out.Reply)
	}
	if !strings.Contains(out.Reply, "Mario") || !strings.Contains(out.Reply, "via Roma 10") {
		t.Fatalf("summary must contain customer and address: %s", out.Reply)
	}

	if len(out.Effects) != 2 {
		t.Fatalf("effects = %d, want persist + notify", len(out.Effects))
	}
	if out.Effects[0].Kind != contractx.EffectPersistOrder {
		t.Fatalf("first effect = %s", out.Effects[0].Kind)
	}
	if out.Effects[1].Kind != contractx.EffectNotifyRestaurant {
		t.Fatalf("second effect = %s", out.Effects[1].Kind)
	}
	rec := out.Effects[0].Record
	if rec.CustomerName != "Mario" || rec.Total != 21.5 || len(rec.Items) != 2 {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestCustomerFieldsAreWriteOnce(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(testConfig())
	s := newTestSession()
	s.CurrentAgent = statex.StateCollectCustomerData

	run(t, reg, s, "mi chiamo Mario")
	// A second name-looking message must fill the phone slot, not rename.
	run(t, reg, s, "sono 3331234567")
	if s.Customer.Name != "Mario" {
		t.Fatalf("name changed to %q", s.Customer.Name)
	}
	if s.Customer.Phone != "3331234567" {
		t.Fatalf("phone = %q", s.Customer.Phone)
	}
}

func TestCollectCustomerDataReportsMissing(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(testConfig())
	s := newTestSession()
	s.CurrentAgent = statex.StateCollectCustomerData

	out := run(t, reg, s, "boh")
	if !strings.Contains(out.Reply, "nome e telefono e email") {
		t.Fatalf("reply must list missing fields joined with e: %s", out.Reply)
	}
	if len(out.Effects) != 0 {
		t.Fatalf("no effects expected, got %d", len(out.Effects))
	}
}

func TestInfoTopics(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	reg := NewRegistry(cfg)

	tests := []struct {
		text string
		want string
	}{
		{"che orari fate", cfg.Hours},
		{"vediamo il menu", "Antipasti"},
		{"dove siete?", cfg.Address},
		{"indirizzo per favore", cfg.Address},
		{"altro", "Ti posso dare informazioni"},
	}

	for _, tt := range tests {
		s := newTestSession()
		s.CurrentAgent = statex.StateInfo
		out := run(t, reg, s, tt.text)
		if !strings.Contains(out.Reply, tt.want) {
			t.Fatalf("Info(%q) reply %q must contain %q", tt.text, out.Reply, tt.want)
		}
		if s.CurrentAgent != statex.StateInfo {
			t.Fatalf("info must not transition, got %s", s.CurrentAgent)
		}
	}
}

func TestReservationFlow(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(testConfig())
	s := newTestSession()
	s.CurrentAgent = statex.StateReservation

	out := run(t, reg, s, "Tavolo per 4 persone sabato alle 20:00")
	if s.Reservation == nil {
		t.Fatal("reservation not stored")
	}
	if s.Reservation.PartySize != 4 || s.Reservation.Date != "sabato" {
		t.Fatalf("unexpected reservation: %+v", s.Reservation)
	}
	if s.CurrentAgent != statex.StateCollectCustomerData {
		t.Fatalf("state = %s, want %s", s.CurrentAgent, statex.StateCollectCustomerData)
	}
	if !strings.Contains(out.Reply, "4 persone") || !strings.Contains(out.Reply, "sabato") {
		t.Fatalf("unexpected reply: %s", out.Reply)
	}
}

func TestReservationDefaultTimeIsResponseOnly(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(testConfig())
	s := newTestSession()
	s.CurrentAgent = statex.StateReservation

	out := run(t, reg, s, "tavolo per 2 persone domenica")
	if !strings.Contains(out.Reply, "20:00") {
		t.Fatalf("reply must default to 20:00: %s", out.Reply)
	}
	if s.Reservation.Time != "" {
		t.Fatalf("stored time = %q, must stay absent", s.Reservation.Time)
	}
}

func TestReservationRePrompts(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(testConfig())
	s := newTestSession()
	s.CurrentAgent = statex.StateReservation

	out := run(t, reg, s, "vorrei un tavolo")
	if s.CurrentAgent != statex.StateReservation {
		t.Fatalf("state = %s, must stay", s.CurrentAgent)
	}
	if !strings.Contains(out.Reply, "Esempio") {
		t.Fatalf("re-prompt must show the example format: %s", out.Reply)
	}
}

func TestPickupOrderCollectsItemsAndTime(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(testConfig())
	s := newTestSession()
	s.CurrentAgent = statex.StatePickupOrder
	s.Order.Type = statex.OrderPickup

	out := run(t, reg, s, "una carbonara alle 19:30")
	if s.CurrentAgent != statex.StateCollectCustomerData {
		t.Fatalf("state = %s, want %s", s.CurrentAgent, statex.StateCollectCustomerData)
	}
	// No delivery surcharge on pickup.
	if s.Order.Total != 9 {
		t.Fatalf("total = %v, want 9", s.Order.Total)
	}
	if s.Order.PickupTime != "19:30" {
		t.Fatalf("pickup time = %q", s.Order.PickupTime)
	}
	if !strings.Contains(out.Reply, "19:30") {
		t.Fatalf("reply must echo the pickup time: %s", out.Reply)
	}
}

func TestTakeawayOrderCollectsItems(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(testConfig())
	s := newTestSession()
	s.CurrentAgent = statex.StateTakeawayOrder
	s.Order.Type = statex.OrderTakeaway

	run(t, reg, s, "margherita e caesar")
	if s.CurrentAgent != statex.StateCollectCustomerData {
		t.Fatalf("state = %s, want %s", s.CurrentAgent, statex.StateCollectCustomerData)
	}
	if s.Order.Total != 15 {
		t.Fatalf("total = %v, want 15", s.Order.Total)
	}
}

func TestConfirmation(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(testConfig())
	s := newTestSession()
	s.CurrentAgent = statex.StateConfirmation
	s.Customer = statex.Customer{Name: "Mario", Phone: "333", Email: "m@t.it"}

	out := run(t, reg, s, "confermo")
	if s.CurrentAgent != statex.StateConfirmation {
		t.Fatalf("confirmation is terminal, got %s", s.CurrentAgent)
	}
	if !strings.Contains(out.Reply, "Mario") {
		t.Fatalf("unexpected reply: %s", out.Reply)
	}

	out = run(t, reg, s, "mah")
	if !strings.Contains(out.Reply, "confermo") {
		t.Fatalf("re-prompt must explain how to confirm: %s", out.Reply)
	}
}

func TestConfirmationRestartKeepsCustomer(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(testConfig())
	s := newTestSession()
	s.CurrentAgent = statex.StateConfirmation
	s.Customer = statex.Customer{Name: "Mario", Phone: "333", Email: "m@t.it"}
	s.Order.SetItems([]statex.OrderItem{{Name: "Pizza Diavola", Price: 10}}, 3.5)
	s.Reservation = &statex.Reservation{PartySize: 2, Date: "sabato"}

	run(t, reg, s, "nuovo ordine per favore")
	if s.CurrentAgent != statex.StateGreeting {
		t.Fatalf("state = %s, want %s", s.CurrentAgent, statex.StateGreeting)
	}
	if s.Order.HasItems() || s.Reservation != nil || s.Order.Total != 0 {
		t.Fatalf("order data must be cleared: %+v", s.Order)
	}
	if s.Customer.Name != "Mario" {
		t.Fatal("customer data is write-once and must survive a restart")
	}
}
