package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fantalega/market-backend/internal/hub"
	"github.com/fantalega/market-backend/internal/market"
	"github.com/fantalega/market-backend/internal/session"
)

type createSessionRequest struct {
	LeagueID     string `json:"league_id"`
	Type         string `json:"type"` // "first_market" | "recurring_market"
	TimerSeconds int    `json:"timer_seconds"`
	Members      []struct {
		ID     string `json:"id"`
		UserID string `json:"user_id"`
		Role   string `json:"role"`
		Budget int    `json:"budget"`
		Roster []string `json:"roster,omitempty"`
	} `json:"members"`
	Players []struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Position  string `json:"position"`
		BasePrice int    `json:"base_price"`
	} `json:"players"`
}

func CreateSession(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		sessionType := market.SessionType(req.Type)
		if sessionType != market.FirstMarket && sessionType != market.RecurringMarket {
			http.Error(w, "unknown session type", http.StatusBadRequest)
			return
		}
		if len(req.Members) == 0 {
			http.Error(w, "no members", http.StatusBadRequest)
			return
		}
		if req.TimerSeconds <= 0 {
			req.TimerSeconds = 30
		}

		params := market.NewSessionParams{
			ID:           uuid.NewString(),
			LeagueID:     req.LeagueID,
			Type:         sessionType,
			TimerSeconds: req.TimerSeconds,
			OrderSeed:    time.Now().UnixNano(),
			Now:          time.Now(),
		}
		for _, m := range req.Members {
			role := market.RoleManager
			if market.Role(m.Role) == market.RoleAdmin {
				role = market.RoleAdmin
			}
			roster := make([]market.PlayerID, 0, len(m.Roster))
			for _, pid := range m.Roster {
				roster = append(roster, market.PlayerID(pid))
			}
			params.Members = append(params.Members, &market.Member{
				ID:     market.MemberID(m.ID),
				UserID: m.UserID,
				Role:   role,
				Status: market.MemberActive,
				Budget: m.Budget,
				Roster: roster,
			})
		}
		for _, p := range req.Players {
			params.Players = append(params.Players, &market.Player{
				ID:        market.PlayerID(p.ID),
				Name:      p.Name,
				Position:  market.Position(p.Position),
				BasePrice: p.BasePrice,
			})
		}

		state := market.NewSession(params)
		reply := make(chan *session.Actor, 1)
		h.Inbox() <- hub.CreateSession{State: state, Reply: reply}
		if <-reply == nil {
			http.Error(w, "failed to create session", http.StatusInternalServerError)
			return
		}
		log.Info("session created",
			zap.String("session_id", state.ID),
			zap.String("league_id", state.LeagueID),
			zap.String("type", string(state.Type)))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(struct {
			ID string `json:"id"`
		}{ID: state.ID})
	}
}

func GetSnapshot(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		reply := make(chan *session.Actor, 1)
		h.Inbox() <- hub.GetSession{ID: id, Reply: reply}
		actor := <-reply
		if actor == nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		snapReply := make(chan *market.Snapshot, 1)
		actor.Inbox() <- session.GetSnapshot{Reply: snapReply}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(<-snapReply)
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
