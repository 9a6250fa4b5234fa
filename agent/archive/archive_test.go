package archive

import (
	"context"
	"testing"
	"time"

	contractx "github.com/trattoria-labs/tavolo/agent/contract"
	statex "github.com/trattoria-labs/tavolo/agent/state"
)

func TestNoopSaveOrder(t *testing.T) {
	t.Parallel()

	if err := NewNoop().SaveOrder(context.Background(), contractx.OrderRecord{UserID: "u1"}); err != nil {
		t.Fatalf("SaveOrder() error = %v", err)
	}
}

func TestNewPostgresRequiresDSN(t *testing.T) {
	t.Parallel()

	if _, err := NewPostgres(Config{}); err == nil {
		t.Fatal("expected error for empty dsn")
	}
}

func TestRowFromRecord(t *testing.T) {
	t.Parallel()

	completed := time.Date(2026, 3, 1, 20, 30, 0, 0, time.UTC)
	rec := contractx.OrderRecord{
		UserID:          "u1",
		CustomerName:    "Mario",
		CustomerPhone:   "3331234567",
		CustomerEmail:   "mario@test.com",
		OrderType:       statex.OrderDelivery,
		Items:           []statex.OrderItem{{Name: "Pizza Diavola", Price: 10}},
		DeliveryAddress: "via Roma 10",
		Total:           21.5,
		Reservation:     &statex.Reservation{PartySize: 4, Date: "sabato", Time: "20:00"},
		CompletedAt:     completed,
	}

	row := rowFromRecord(rec)
	if row.ID == "" {
		t.Fatal("row must get an id")
	}
	if row.CustomerName != "Mario" || row.OrderType != "delivery" || row.Total != 21.5 {
		t.Fatalf("unexpected row: %+v", row)
	}
	if row.PartySize != 4 || row.ReservationDate != "sabato" || row.ReservationTime != "20:00" {
		t.Fatalf("reservation not flattened: %+v", row)
	}
	if !row.CompletedAt.Equal(completed) {
		t.Fatalf("CompletedAt = %v", row.CompletedAt)
	}
}
