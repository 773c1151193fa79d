package market

import (
	"encoding/json"
	"testing"
	"time"
)

var t0 = time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)

func at(seconds int) time.Time {
	return t0.Add(time.Duration(seconds) * time.Second)
}

func newFirstMarket() *Session {
	members := []*Member{
		{ID: "m1", UserID: "u1", Role: RoleAdmin, Status: MemberActive, Budget: 500},
		{ID: "m2", UserID: "u2", Role: RoleManager, Status: MemberActive, Budget: 500},
		{ID: "m3", UserID: "u3", Role: RoleManager, Status: MemberActive, Budget: 500},
	}
	players := []*Player{
		{ID: "gk1", Name: "Meret", Position: Goalkeeper, BasePrice: 1},
		{ID: "df1", Name: "Bastoni", Position: Defender, BasePrice: 1},
		{ID: "df2", Name: "Bremer", Position: Defender, BasePrice: 1},
		{ID: "mf1", Name: "Barella", Position: Midfielder, BasePrice: 1},
		{ID: "fw1", Name: "Lautaro", Position: Forward, BasePrice: 1},
		{ID: "fw2", Name: "Leao", Position: Forward, BasePrice: 1},
	}
	s := NewSession(NewSessionParams{
		ID:           "s1",
		LeagueID:     "lg1",
		Type:         FirstMarket,
		Members:      members,
		Players:      players,
		TimerSeconds: 30,
		OrderSeed:    7,
		Now:          t0,
	})
	// Fixed order so tests don't depend on the seed permutation.
	s.TurnOrder = []MemberID{"m1", "m2", "m3"}
	s.CurrentTurnIndex = 0
	return s
}

func mustApply(t *testing.T, s *Session, cmd Command) []Event {
	t.Helper()
	events, err := Apply(s, cmd)
	if err != nil {
		t.Fatalf("apply %s: unexpected err: %v", cmd.Type, err)
	}
	return events
}

// roundTrip persists a session through JSON the way the stores do and
// hands back the rehydrated copy.
func roundTrip(t *testing.T, s *Session) *Session {
	t.Helper()
	raw, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal session: %v", err)
	}
	var out Session
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal session: %v", err)
	}
	return &out
}

// runToAuction drives nominate -> confirm -> everyone ready so an auction
// for playerID is live at the given time.
func runToAuction(t *testing.T, s *Session, playerID PlayerID, when time.Time) {
	t.Helper()
	holder := s.CurrentTurnMember()
	mustApply(t, s, Command{Type: CmdNominate, ActorID: holder, PlayerID: playerID, At: when})
	mustApply(t, s, Command{Type: CmdConfirmNomination, ActorID: holder, At: when})
	for id, m := range s.Members {
		if id == holder || m.Status != MemberActive {
			continue
		}
		mustApply(t, s, Command{Type: CmdMarkReady, ActorID: id, At: when})
	}
	if s.Auction == nil {
		t.Fatalf("expected auction to start for %s", playerID)
	}
}
