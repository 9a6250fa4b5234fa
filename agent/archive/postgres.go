package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	contractx "github.com/trattoria-labs/tavolo/agent/contract"
	statex "github.com/trattoria-labs/tavolo/agent/state"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

type Config struct {
	// DSN is the Postgres connection string. Empty disables the archive.
	DSN     string        `envconfig:"DSN"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"10s"`
}

// OrderRow is the bun model for one archived order or reservation.
type OrderRow struct {
	bun.BaseModel `bun:"table:orders,alias:o"`

	ID              string             `bun:"id,pk"`
	UserID          string             `bun:"user_id,notnull"`
	CustomerName    string             `bun:"customer_name,notnull"`
	CustomerPhone   string             `bun:"customer_phone,notnull"`
	CustomerEmail   string             `bun:"customer_email,notnull"`
	OrderType       string             `bun:"order_type,nullzero"`
	Items           []statex.OrderItem `bun:"items,type:jsonb"`
	DeliveryAddress string             `bun:"delivery_address,nullzero"`
	PickupTime      string             `bun:"pickup_time,nullzero"`
	PartySize       int                `bun:"party_size,nullzero"`
	ReservationDate string             `bun:"reservation_date,nullzero"`
	ReservationTime string             `bun:"reservation_time,nullzero"`
	Total           float64            `bun:"total,notnull"`
	CompletedAt     time.Time          `bun:"completed_at,notnull"`
}

// Postgres archives orders through bun.
type Postgres struct {
	db      *bun.DB
	timeout time.Duration
}

func NewPostgres(cfg Config) (*Postgres, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("archive dsn is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())

	return &Postgres{db: db, timeout: timeout}, nil
}

func MustNewPostgres(cfg Config) *Postgres {
	p, err := NewPostgres(cfg)
	if err != nil {
		panic(err)
	}
	return p
}

// Init pings the database and creates the orders table when missing.
func (p *Postgres) Init(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping archive database: %w", err)
	}

	if _, err := p.db.NewCreateTable().
		Model((*OrderRow)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("create orders table: %w", err)
	}
	return nil
}

func (p *Postgres) SaveOrder(ctx context.Context, rec contractx.OrderRecord) error {
	row := rowFromRecord(rec)
	if _, err := p.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return fmt.Errorf("insert order %s: %w", row.ID, err)
	}
	return nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

func rowFromRecord(rec contractx.OrderRecord) *OrderRow {
	row := &OrderRow{
		ID:              uuid.NewString(),
		UserID:          rec.UserID,
		CustomerName:    rec.CustomerName,
		CustomerPhone:   rec.CustomerPhone,
		CustomerEmail:   rec.CustomerEmail,
		OrderType:       string(rec.OrderType),
		Items:           rec.Items,
		DeliveryAddress: rec.DeliveryAddress,
		PickupTime:      rec.PickupTime,
		Total:           rec.Total,
		CompletedAt:     rec.CompletedAt.UTC(),
	}
	if rec.Reservation != nil {
		row.PartySize = rec.Reservation.PartySize
		row.ReservationDate = rec.Reservation.Date
		row.ReservationTime = rec.Reservation.Time
	}
	return row
}
