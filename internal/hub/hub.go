package hub

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fantalega/market-backend/internal/market"
	"github.com/fantalega/market-backend/internal/session"
	"github.com/fantalega/market-backend/internal/store"
)

type HubMsg interface{ isHubMsg() }

// CreateSession registers a brand new session actor for the given state.
type CreateSession struct {
	State *market.Session
	Reply chan *session.Actor
}

// GetSession resolves a live actor, restoring it from the store if this
// process has not seen the session yet (stateless redeploys).
type GetSession struct {
	ID    string
	Reply chan *session.Actor
}

type RemoveSession struct {
	ID string
}

type ShutdownHub struct{}

func (CreateSession) isHubMsg() {}
func (GetSession) isHubMsg()    {}
func (RemoveSession) isHubMsg() {}
func (ShutdownHub) isHubMsg()   {}

type Hub struct {
	inbox    chan HubMsg
	sessions map[string]*session.Actor
	store    store.Store
	log      *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewHub(parent context.Context, st store.Store, log *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:    make(chan HubMsg, 64),
		sessions: make(map[string]*session.Actor),
		store:    st,
		log:      log.Named("hub"),
		ctx:      ctx,
		cancel:   cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateSession:
				if a := h.sessions[msg.State.ID]; a != nil {
					msg.Reply <- a
					break
				}
				a := session.NewActor(h.ctx, msg.State, h.store, h.log)
				h.sessions[msg.State.ID] = a
				msg.Reply <- a

			case GetSession:
				if a := h.sessions[msg.ID]; a != nil {
					msg.Reply <- a
					break
				}
				msg.Reply <- h.restore(msg.ID)

			case RemoveSession:
				delete(h.sessions, msg.ID)

			case ShutdownHub:
				for _, a := range h.sessions {
					a.Inbox() <- session.Shutdown{}
				}
				clear(h.sessions)
				h.cancel()
			}
		}
	}
}

// restore brings a persisted session back to life in this process. May
// return nil when the session does not exist at all.
func (h *Hub) restore(id string) *session.Actor {
	ctx, cancel := context.WithTimeout(h.ctx, 5*time.Second)
	defer cancel()
	state, err := h.store.Load(ctx, id)
	if err != nil {
		if err != store.ErrNotFound {
			h.log.Error("session restore failed", zap.String("session_id", id), zap.Error(err))
		}
		return nil
	}
	a := session.NewActor(h.ctx, state, h.store, h.log)
	h.sessions[id] = a
	return a
}
