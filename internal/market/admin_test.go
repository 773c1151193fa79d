package market

import (
	"errors"
	"testing"
)

func TestAdmin_ManagerCannotUseOverrides(t *testing.T) {
	s := newFirstMarket()
	_, err := Apply(s, Command{Type: CmdForceAllReady, ActorID: "m2", At: at(0)})
	if !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("want ErrNotAdmin, got %v", err)
	}
}

// One of the members never readies up; the admin forces the gate and the
// auction starts with everyone counted.
func TestAdmin_ForceAllReadyStartsAuction(t *testing.T) {
	s := newFirstMarket()
	mustApply(t, s, Command{Type: CmdNominate, ActorID: "m1", PlayerID: "fw1", At: at(0)})
	mustApply(t, s, Command{Type: CmdConfirmNomination, ActorID: "m1", At: at(1)})
	mustApply(t, s, Command{Type: CmdMarkReady, ActorID: "m2", At: at(2)})

	mustApply(t, s, Command{Type: CmdForceAllReady, ActorID: "m1", At: at(3)})
	if s.Auction == nil {
		t.Fatalf("forced gate must start the auction")
	}
	snap := BuildSnapshot(s, at(3))
	if snap.Auction == nil || snap.Auction.RemainingSeconds != 30 {
		t.Fatalf("snapshot should show a fresh countdown, got %+v", snap.Auction)
	}
}

func TestAdmin_ForceAcknowledgeAll(t *testing.T) {
	s := newFirstMarket()
	runToAuction(t, s, "fw1", at(0))
	mustApply(t, s, Command{Type: CmdPlaceBid, ActorID: "m2", Amount: 3, At: at(5)})
	mustApply(t, s, Command{Type: CmdTimerFired, At: at(35)})

	events := mustApply(t, s, Command{Type: CmdForceAcknowledgeAll, ActorID: "m1", At: at(36)})
	if !ContainsEvent(events, EvtAckComplete) {
		t.Fatalf("want EvtAckComplete, got %+v", events)
	}
	if s.Ack != nil {
		t.Fatalf("ack record must clear")
	}
	if got := s.CurrentTurnMember(); got != "m2" {
		t.Fatalf("turn should advance after forced ack, got %s", got)
	}
}

func TestAdmin_BotNominateAndConfirm(t *testing.T) {
	s := newFirstMarket()

	events := mustApply(t, s, Command{Type: CmdBotNominate, ActorID: "m1", At: at(0)})
	if !ContainsEvent(events, EvtPlayerNominated) {
		t.Fatalf("want a nomination, got %+v", events)
	}
	if s.Nomination == nil || s.Nomination.NominatorID != "m1" {
		t.Fatalf("bot must nominate on behalf of the turn holder")
	}
	if s.Nomination.PlayerID != "df1" {
		t.Fatalf("autopilot picks the first free agent by ID, got %s", s.Nomination.PlayerID)
	}

	mustApply(t, s, Command{Type: CmdBotConfirmNomination, ActorID: "m1", At: at(1)})
	if !s.Nomination.Confirmed {
		t.Fatalf("bot confirm must behave like the nominator's own confirm")
	}
}

func TestAdmin_BotBidPlacesMinimumRaise(t *testing.T) {
	s := newFirstMarket()
	runToAuction(t, s, "fw1", at(0))

	mustApply(t, s, Command{Type: CmdBotBid, ActorID: "m1", TargetID: "m3", At: at(5)})
	if len(s.Auction.Bids) != 1 || s.Auction.Bids[0].BidderID != "m3" {
		t.Fatalf("bot bid must be attributed to the target member")
	}
	if s.Auction.CurrentPrice != 2 {
		t.Fatalf("want minimum raise to 2, got %d", s.Auction.CurrentPrice)
	}
}

func TestAdmin_UpdateTimerAppliesFromNextArm(t *testing.T) {
	s := newFirstMarket()
	runToAuction(t, s, "fw1", at(0))
	expiry := s.Auction.ExpiresAt()

	mustApply(t, s, Command{Type: CmdUpdateTimer, ActorID: "m1", Seconds: 60, At: at(5)})
	if !s.Auction.ExpiresAt().Equal(expiry) {
		t.Fatalf("running countdown must keep its armed expiry")
	}

	mustApply(t, s, Command{Type: CmdPlaceBid, ActorID: "m2", Amount: 2, At: at(10)})
	if s.Auction.TimerSeconds != 60 {
		t.Fatalf("next arm must use the new duration, got %d", s.Auction.TimerSeconds)
	}
}

func TestAdmin_CompleteAllSlotsEndsFirstMarket(t *testing.T) {
	s := newFirstMarket()
	runToAuction(t, s, "fw1", at(0))

	events := mustApply(t, s, Command{Type: CmdCompleteAllSlots, ActorID: "m1", At: at(5)})
	if !ContainsEvent(events, EvtSessionCompleted) {
		t.Fatalf("want session completion, got %+v", events)
	}
	if !s.microIdle() {
		t.Fatalf("pending micro-state must be discarded")
	}
}

func TestAdmin_ResetFirstMarket(t *testing.T) {
	s := newFirstMarket()
	runToAuction(t, s, "fw1", at(0))
	mustApply(t, s, Command{Type: CmdPlaceBid, ActorID: "m2", Amount: 5, At: at(5)})
	mustApply(t, s, Command{Type: CmdTimerFired, At: at(35)})
	mustApply(t, s, Command{Type: CmdCompleteAllSlots, ActorID: "m1", At: at(40)})

	mustApply(t, s, Command{Type: CmdResetFirstMarket, ActorID: "m1", At: at(50)})
	if s.Status != StatusActive || s.CurrentPhase != PhaseOpenAuction {
		t.Fatalf("reset must reopen the market")
	}
	m2 := s.Members["m2"]
	if m2.Budget != 500 || len(m2.Roster) != 0 || m2.Slots[Forward].Filled != 0 {
		t.Fatalf("reset must restore budget and empty rosters, got %+v", m2)
	}
	if len(s.Rostered) != 0 {
		t.Fatalf("ownership index must clear on reset")
	}
}

func TestAdmin_OverridesRespectPhaseValidity(t *testing.T) {
	s := newFirstMarket()
	_, err := Apply(s, Command{Type: CmdRubataPass, ActorID: "m1", At: at(0)})
	if !errors.Is(err, ErrInvalidPhase) {
		t.Fatalf("want ErrInvalidPhase outside steal, got %v", err)
	}
	_, err = Apply(s, Command{Type: CmdWaiverNominate, ActorID: "m1", PlayerID: "df1", At: at(0)})
	if !errors.Is(err, ErrInvalidPhase) {
		t.Fatalf("want ErrInvalidPhase outside waiver, got %v", err)
	}
}
