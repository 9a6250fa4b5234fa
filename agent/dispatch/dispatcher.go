// Package dispatch turns (userId, message) pairs into bot replies. It owns
// the per-turn pipeline: validate, lock the session, run the current agent,
// record history, and hand side effects to collaborators without ever
// letting them delay the response.
package dispatch

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	contractx "github.com/trattoria-labs/tavolo/agent/contract"
)

const effectTimeout = 10 * time.Second

type Dispatcher struct {
	store    contractx.SessionStore
	registry contractx.Registry
	archive  contractx.OrderArchive
	notifier contractx.Notifier

	now func() time.Time

	// wg tracks in-flight effect goroutines so Wait can drain them.
	wg sync.WaitGroup
}

func New(
	store contractx.SessionStore,
	registry contractx.Registry,
	archive contractx.OrderArchive,
	notifier contractx.Notifier,
) (*Dispatcher, error) {
	if store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if registry == nil {
		return nil, fmt.Errorf("agent registry is required")
	}
	if archive == nil {
		archive = noopArchive{}
	}
	if notifier == nil {
		notifier = noopNotifier{}
	}

	return &Dispatcher{
		store:    store,
		registry: registry,
		archive:  archive,
		notifier: notifier,
		now:      time.Now,
	}, nil
}

func MustNew(
	store contractx.SessionStore,
	registry contractx.Registry,
	archive contractx.OrderArchive,
	notifier contractx.Notifier,
) *Dispatcher {
	d, err := New(store, registry, archive, notifier)
	if err != nil {
		panic(err)
	}
	return d
}

// HandleTurn runs one exchange. The session lock is held for the whole turn,
// so turns for the same user serialize while different users run in
// parallel. It fails only on structurally invalid input.
func (d *Dispatcher) HandleTurn(ctx context.Context, userID, message string) (contractx.TurnResult, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return contractx.TurnResult{}, fmt.Errorf("%w: user id is empty", contractx.ErrValidation)
	}
	msg := strings.TrimSpace(message)
	if msg == "" {
		return contractx.TurnResult{}, fmt.Errorf("%w: message is empty", contractx.ErrValidation)
	}

	session, release := d.store.Acquire(uid)
	defer release()

	agent, ok := d.registry.Lookup(session.CurrentAgent)
	if !ok {
		return contractx.TurnResult{}, fmt.Errorf("%w: %s", contractx.ErrUnknownState, session.CurrentAgent)
	}

	now := d.now()
	session.AppendUser(msg, now)

	out := agent.Process(session, msg)
	if out.Next != "" {
		session.CurrentAgent = out.Next
	}

	session.AppendBot(out.Reply, d.now())
	session.Touch(d.now())

	result := contractx.TurnResult{
		Response:     out.Reply,
		CurrentAgent: session.CurrentAgent,
		SessionData:  session.Snapshot(),
	}

	if len(out.Effects) > 0 {
		d.runEffects(out.Effects, now)
	}

	return result, nil
}

// Wait blocks until all in-flight effects have finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// runEffects executes effects fire-and-forget. Failures are logged and never
// reach the conversation.
func (d *Dispatcher) runEffects(effects []contractx.Effect, now time.Time) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), effectTimeout)
		defer cancel()

		for _, effect := range effects {
			rec := effect.Record
			if rec.CompletedAt.IsZero() {
				rec.CompletedAt = now.UTC()
			}

			switch effect.Kind {
			case contractx.EffectPersistOrder:
				if err := d.archive.SaveOrder(ctx, rec); err != nil {
					log.Error().Err(err).Str("user_id", rec.UserID).Msg("order archive failed")
				}
			case contractx.EffectNotifyRestaurant:
				if err := d.notifier.NotifyOrder(ctx, rec); err != nil {
					log.Error().Err(err).Str("user_id", rec.UserID).Msg("restaurant notification failed")
				}
			default:
				log.Warn().Str("kind", string(effect.Kind)).Msg("unknown effect kind")
			}
		}
	}()
}

type noopArchive struct{}

func (noopArchive) SaveOrder(context.Context, contractx.OrderRecord) error {
	return nil
}

type noopNotifier struct{}

func (noopNotifier) NotifyOrder(context.Context, contractx.OrderRecord) error {
	return nil
}
