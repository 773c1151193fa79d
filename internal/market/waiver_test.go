package market

import (
	"errors"
	"testing"
)

// newWaiverMarket builds a recurring session inside the waiver phase with
// fw1 already rostered by m3, everything else a free agent.
func newWaiverMarket(t *testing.T) *Session {
	t.Helper()
	s := newFirstMarket()
	s.Type = RecurringMarket
	if err := s.Commit("m3", "fw1", 0); err != nil {
		t.Fatalf("seed roster: %v", err)
	}
	s.CurrentPhase = PhaseWaiverAuction
	s.Waiver = &WaiverState{
		Order:           []MemberID{"m1", "m2", "m3"},
		PassedMembers:   map[MemberID]bool{},
		FinishedMembers: map[MemberID]bool{},
	}
	return s
}

func TestWaiverNominate_Validation(t *testing.T) {
	cases := []struct {
		name    string
		cmd     Command
		wantErr error
	}{
		{
			name:    "not the turn holder",
			cmd:     Command{Type: CmdWaiverNominate, ActorID: "m2", PlayerID: "df1", At: at(0)},
			wantErr: ErrNotYourTurn,
		},
		{
			name:    "rostered player is not a free agent",
			cmd:     Command{Type: CmdWaiverNominate, ActorID: "m1", PlayerID: "fw1", At: at(0)},
			wantErr: ErrPlayerUnavailable,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newWaiverMarket(t)
			_, err := Apply(s, tc.cmd)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("want %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestWaiver_FullAuctionFlow(t *testing.T) {
	s := newWaiverMarket(t)

	mustApply(t, s, Command{Type: CmdWaiverNominate, ActorID: "m1", PlayerID: "df1", At: at(0)})
	mustApply(t, s, Command{Type: CmdConfirmNomination, ActorID: "m1", At: at(1)})
	mustApply(t, s, Command{Type: CmdMarkReady, ActorID: "m2", At: at(2)})
	mustApply(t, s, Command{Type: CmdMarkReady, ActorID: "m3", At: at(3)})
	if s.Auction == nil {
		t.Fatalf("waiver auction should start after the ready-check")
	}

	mustApply(t, s, Command{Type: CmdPlaceBid, ActorID: "m2", Amount: 4, At: at(5)})
	mustApply(t, s, Command{Type: CmdTimerFired, At: at(35)})
	for _, id := range []MemberID{"m1", "m2", "m3"} {
		mustApply(t, s, Command{Type: CmdAcknowledge, ActorID: id, At: at(36)})
	}

	if s.Rostered["df1"] != "m2" {
		t.Fatalf("winner must roster the free agent")
	}
	if got := s.CurrentTurnMember(); got != "m2" {
		t.Fatalf("turn should move to the next member, got %s", got)
	}
}

func TestWaiver_PassSkipsForRestOfLap(t *testing.T) {
	s := newWaiverMarket(t)

	events := mustApply(t, s, Command{Type: CmdWaiverPass, ActorID: "m1", At: at(0)})
	if !ContainsEvent(events, EvtWaiverPassed) {
		t.Fatalf("want EvtWaiverPassed, got %+v", events)
	}
	if !s.Waiver.PassedMembers["m1"] {
		t.Fatalf("pass must be recorded")
	}
	if got := s.CurrentTurnMember(); got != "m2" {
		t.Fatalf("turn should advance, got %s", got)
	}
}

func TestWaiver_AllFinishedEndsPhase(t *testing.T) {
	s := newWaiverMarket(t)

	mustApply(t, s, Command{Type: CmdWaiverFinish, ActorID: "m1", At: at(0)})
	mustApply(t, s, Command{Type: CmdWaiverFinish, ActorID: "m2", At: at(1)})
	events := mustApply(t, s, Command{Type: CmdWaiverFinish, ActorID: "m3", At: at(2)})

	if !ContainsEvent(events, EvtPhaseAdvanced) {
		t.Fatalf("want phase advance when everyone finishes, got %+v", events)
	}
	if s.CurrentPhase != PhasePostWaiverOffers {
		t.Fatalf("want post-waiver offers, got %s", s.CurrentPhase)
	}
	if s.Waiver != nil {
		t.Fatalf("waiver state must clear when the phase ends")
	}
}

func TestWaiver_AllPassedInOneLapEndsPhase(t *testing.T) {
	s := newWaiverMarket(t)

	mustApply(t, s, Command{Type: CmdWaiverPass, ActorID: "m1", At: at(0)})
	mustApply(t, s, Command{Type: CmdWaiverPass, ActorID: "m2", At: at(1)})
	events := mustApply(t, s, Command{Type: CmdWaiverPass, ActorID: "m3", At: at(2)})

	if !ContainsEvent(events, EvtPhaseAdvanced) {
		t.Fatalf("a silent lap ends the phase, got %+v", events)
	}
}

func TestWaiver_FinishedMemberCannotNominate(t *testing.T) {
	s := newWaiverMarket(t)
	mustApply(t, s, Command{Type: CmdWaiverFinish, ActorID: "m1", At: at(0)})

	_, err := Apply(s, Command{Type: CmdWaiverNominate, ActorID: "m1", PlayerID: "df1", At: at(1)})
	if !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("finished member has no turn, got %v", err)
	}
}
