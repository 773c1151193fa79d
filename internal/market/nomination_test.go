package market

import (
	"errors"
	"testing"
)

func TestNominate_OnlyTurnHolder(t *testing.T) {
	s := newFirstMarket()
	_, err := Apply(s, Command{Type: CmdNominate, ActorID: "m2", PlayerID: "fw1", At: at(0)})
	if !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("want ErrNotYourTurn, got %v", err)
	}
}

func TestNominate_PlayerValidation(t *testing.T) {
	cases := []struct {
		name     string
		playerID PlayerID
		setup    func(s *Session)
	}{
		{
			name:     "unknown player",
			playerID: "nope",
			setup:    func(s *Session) {},
		},
		{
			name:     "already rostered",
			playerID: "fw1",
			setup: func(s *Session) {
				s.Rostered["fw1"] = "m3"
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newFirstMarket()
			tc.setup(s)
			_, err := Apply(s, Command{Type: CmdNominate, ActorID: "m1", PlayerID: tc.playerID, At: at(0)})
			if !errors.Is(err, ErrPlayerUnavailable) {
				t.Fatalf("want ErrPlayerUnavailable, got %v", err)
			}
		})
	}
}

func TestNominate_RejectedWhileResultPending(t *testing.T) {
	s := newFirstMarket()
	runToAuction(t, s, "fw1", at(0))
	mustApply(t, s, Command{Type: CmdTimerFired, At: at(30)})

	_, err := Apply(s, Command{Type: CmdNominate, ActorID: "m1", PlayerID: "fw2", At: at(31)})
	if !errors.Is(err, ErrInvalidPhase) {
		t.Fatalf("want ErrInvalidPhase while ack pending, got %v", err)
	}
}

func TestConfirm_OnlyNominator(t *testing.T) {
	s := newFirstMarket()
	mustApply(t, s, Command{Type: CmdNominate, ActorID: "m1", PlayerID: "fw1", At: at(0)})
	_, err := Apply(s, Command{Type: CmdConfirmNomination, ActorID: "m2", At: at(1)})
	if !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("want ErrNotYourTurn, got %v", err)
	}
}

func TestReadyCheck_RemovedMemberCannotBlock(t *testing.T) {
	s := newFirstMarket()
	mustApply(t, s, Command{Type: CmdNominate, ActorID: "m1", PlayerID: "fw1", At: at(0)})
	mustApply(t, s, Command{Type: CmdConfirmNomination, ActorID: "m1", At: at(1)})

	// m3 disappears mid ready-check.
	s.Members["m3"].Status = MemberRemoved

	mustApply(t, s, Command{Type: CmdMarkReady, ActorID: "m2", At: at(2)})
	if s.Auction == nil {
		t.Fatalf("gate must satisfy from live membership; auction should have started")
	}
}

func TestReadyCheck_MarkingTwiceIsNoop(t *testing.T) {
	s := newFirstMarket()
	mustApply(t, s, Command{Type: CmdNominate, ActorID: "m1", PlayerID: "fw1", At: at(0)})
	mustApply(t, s, Command{Type: CmdConfirmNomination, ActorID: "m1", At: at(1)})
	mustApply(t, s, Command{Type: CmdMarkReady, ActorID: "m2", At: at(2)})

	version := s.Version
	events := mustApply(t, s, Command{Type: CmdMarkReady, ActorID: "m2", At: at(3)})
	if len(events) != 0 || s.Version != version {
		t.Fatalf("re-marking ready must be a no-op")
	}
}

func TestReadyCheck_TurnStableUntilAckComplete(t *testing.T) {
	s := newFirstMarket()
	runToAuction(t, s, "fw1", at(0))
	mustApply(t, s, Command{Type: CmdPlaceBid, ActorID: "m2", Amount: 3, At: at(5)})
	mustApply(t, s, Command{Type: CmdTimerFired, At: at(35)})

	if got := s.CurrentTurnMember(); got != "m1" {
		t.Fatalf("turn must not advance before acknowledgment, got %s", got)
	}
	for _, id := range []MemberID{"m1", "m2", "m3"} {
		mustApply(t, s, Command{Type: CmdAcknowledge, ActorID: id, At: at(36)})
	}
	if got := s.CurrentTurnMember(); got != "m2" {
		t.Fatalf("turn should advance after full acknowledgment, got %s", got)
	}
}
