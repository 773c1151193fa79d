package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fantalega/market-backend/internal/market"
	"github.com/fantalega/market-backend/internal/store"
)

type Msg interface{ isSessionMsg() }

// FromClient carries one member intent. Result receives the apply error
// (nil on success); a nil channel means fire-and-forget.
type FromClient struct {
	Cmd    market.Command
	Result chan error
}

func (FromClient) isSessionMsg() {}

type Join struct {
	ClientID string
	Outbox   chan *market.Snapshot
}

func (Join) isSessionMsg() {}

type Leave struct{ ClientID string }

func (Leave) isSessionMsg() {}

type GetSnapshot struct {
	Reply chan *market.Snapshot
}

func (GetSnapshot) isSessionMsg() {}

type Shutdown struct{}

func (Shutdown) isSessionMsg() {}

type timerFired struct {
	AuctionID string
}

func (timerFired) isSessionMsg() {}

// Actor owns one market session. Every command — human, admin, timer —
// passes through its inbox, so state transitions are totally ordered and
// budget/roster invariants cannot race. The mutated snapshot is persisted
// before any broadcast goes out.
type Actor struct {
	inbox   chan Msg
	state   *market.Session
	clients map[string]chan *market.Snapshot
	store   store.Store
	log     *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc

	timer    *time.Timer
	armedFor time.Time
}

func NewActor(parent context.Context, initial *market.Session, st store.Store, log *zap.Logger) *Actor {
	ctx, cancel := context.WithCancel(parent)
	a := &Actor{
		inbox:   make(chan Msg, 64),
		state:   initial,
		clients: make(map[string]chan *market.Snapshot),
		store:   st,
		log:     log.Named("session").With(zap.String("session_id", initial.ID)),
		ctx:     ctx,
		cancel:  cancel,
	}
	// A restart may have left an armed auction behind; rearm before the
	// loop starts so there is no concurrent timer access.
	a.rearm()
	go a.loop()
	return a
}

func (a *Actor) Inbox() chan<- Msg { return a.inbox }

func (a *Actor) loop() {
	for {
		select {
		case <-a.ctx.Done():
			a.shutdown()
			return

		case m := <-a.inbox:
			switch msg := m.(type) {
			case Join:
				a.clients[msg.ClientID] = msg.Outbox
				msg.Outbox <- market.BuildSnapshot(a.state, time.Now())

			case Leave:
				delete(a.clients, msg.ClientID)

			case FromClient:
				msg.Cmd.At = time.Now()
				err := a.apply(msg.Cmd)
				if msg.Result != nil {
					msg.Result <- err
				}

			case timerFired:
				cmd := market.Command{
					Type:      market.CmdTimerFired,
					AuctionID: msg.AuctionID,
					At:        time.Now(),
				}
				if err := a.apply(cmd); err != nil {
					a.log.Warn("timer resolution failed", zap.Error(err))
				}

			case GetSnapshot:
				msg.Reply <- market.BuildSnapshot(a.state, time.Now())

			case Shutdown:
				a.shutdown()
				return
			}
		}
	}
}

func (a *Actor) apply(cmd market.Command) error {
	events, err := market.Apply(a.state, cmd)
	if err != nil {
		a.log.Debug("command rejected",
			zap.String("command", string(cmd.Type)),
			zap.String("actor", string(cmd.ActorID)),
			zap.Error(err))
		return err
	}
	if len(events) == 0 {
		return nil
	}
	// Durability before visibility: the snapshot must survive a crash
	// before anyone is told about it.
	if err := a.store.Save(a.ctx, a.state); err != nil {
		a.log.Error("persist failed", zap.Error(err))
		return err
	}
	for _, ev := range events {
		a.log.Info("event",
			zap.String("type", string(ev.Type)),
			zap.String("member", string(ev.MemberID)),
			zap.String("player", string(ev.PlayerID)),
			zap.Int("amount", ev.Amount))
	}
	a.rearm()
	a.broadcast()
	return nil
}

// rearm keeps exactly one pending expiry callback in flight for the
// active auction. Stale fires are harmless: expiry is re-checked against
// the wall clock inside the engine.
func (a *Actor) rearm() {
	auc := a.state.Auction
	if auc == nil {
		return
	}
	expiry := auc.ExpiresAt()
	if a.timer != nil && a.armedFor.Equal(expiry) {
		return
	}
	if a.timer != nil {
		a.timer.Stop()
	}
	a.armedFor = expiry
	id := auc.ID
	a.timer = time.AfterFunc(time.Until(expiry), func() {
		select {
		case a.inbox <- timerFired{AuctionID: id}:
		case <-a.ctx.Done():
		}
	})
}

func (a *Actor) broadcast() {
	snap := market.BuildSnapshot(a.state, time.Now())
	for id, ch := range a.clients {
		select {
		case ch <- snap:
		default:
			// Client is slow/full - drop them.
			close(ch)
			delete(a.clients, id)
		}
	}
}

func (a *Actor) shutdown() {
	if a.timer != nil {
		a.timer.Stop()
	}
	for id, ch := range a.clients {
		close(ch)
		delete(a.clients, id)
	}
	a.cancel()
}
