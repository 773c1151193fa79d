package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fantalega/market-backend/internal/hub"
	"github.com/fantalega/market-backend/internal/market"
	"github.com/fantalega/market-backend/internal/session"
	"github.com/fantalega/market-backend/pkg/types"
)

// Handler upgrades a client to the session's snapshot feed and relays its
// commands into the session actor. Identity comes from the query string;
// real authentication fronts this service.
func Handler(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("session")
		memberID := r.URL.Query().Get("member")
		if sessionID == "" || memberID == "" {
			http.Error(w, "missing session or member", http.StatusBadRequest)
			return
		}

		reply := make(chan *session.Actor, 1)
		h.Inbox() <- hub.GetSession{ID: sessionID, Reply: reply}
		actor := <-reply
		if actor == nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan *market.Snapshot, 8)
		clientID := uuid.NewString()

		actor.Inbox() <- session.Join{ClientID: clientID, Outbox: out}
		defer func() { actor.Inbox() <- session.Leave{ClientID: clientID} }()

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for snap := range out {
				msg := types.ServerMessage{Type: "StateSnapshot", Snapshot: snap}
				payload, _ := json.Marshal(msg)
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		// Reader loop
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				writeError(r.Context(), conn, "bad json")
				continue
			}

			cmd, ok := toCommand(cm, market.MemberID(memberID))
			if !ok {
				writeError(r.Context(), conn, "unknown type")
				continue
			}

			result := make(chan error, 1)
			actor.Inbox() <- session.FromClient{Cmd: cmd, Result: result}
			if err := <-result; err != nil {
				log.Debug("command rejected",
					zap.String("session_id", sessionID),
					zap.String("member_id", memberID),
					zap.String("type", cm.Type),
					zap.Error(err))
				writeError(r.Context(), conn, err.Error())
			}
		}
	}
}

func writeError(ctx context.Context, conn *websocket.Conn, msg string) {
	payload, _ := json.Marshal(types.ServerMessage{Type: "Error", Error: msg})
	wctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_ = conn.Write(wctx, websocket.MessageText, payload)
}

func toCommand(m types.ClientMessage, actor market.MemberID) (market.Command, bool) {
	cmd := market.Command{
		ActorID:  actor,
		PlayerID: market.PlayerID(m.PlayerID),
		Amount:   m.Amount,
		Seconds:  m.Seconds,
		TargetID: market.MemberID(m.TargetID),
	}
	switch m.Type {
	case "Nominate":
		cmd.Type = market.CmdNominate
	case "ConfirmNomination":
		cmd.Type = market.CmdConfirmNomination
	case "MarkReady":
		cmd.Type = market.CmdMarkReady
	case "PlaceBid":
		cmd.Type = market.CmdPlaceBid
	case "Acknowledge":
		cmd.Type = market.CmdAcknowledge
	case "RubataPass":
		cmd.Type = market.CmdRubataPass
	case "RubataCounterBid":
		cmd.Type = market.CmdRubataCounterBid
	case "WaiverNominate":
		cmd.Type = market.CmdWaiverNominate
	case "WaiverPass":
		cmd.Type = market.CmdWaiverPass
	case "WaiverFinish":
		cmd.Type = market.CmdWaiverFinish
	case "ForceAllReady":
		cmd.Type = market.CmdForceAllReady
	case "ForceAcknowledgeAll":
		cmd.Type = market.CmdForceAcknowledgeAll
	case "BotNominate":
		cmd.Type = market.CmdBotNominate
	case "BotConfirmNomination":
		cmd.Type = market.CmdBotConfirmNomination
	case "BotBid":
		cmd.Type = market.CmdBotBid
	case "UpdateTimer":
		cmd.Type = market.CmdUpdateTimer
	case "CompleteAllSlots":
		cmd.Type = market.CmdCompleteAllSlots
	case "ResetFirstMarket":
		cmd.Type = market.CmdResetFirstMarket
	case "AdvancePhase":
		cmd.Type = market.CmdAdvancePhase
	default:
		return market.Command{}, false
	}
	return cmd, true
}
