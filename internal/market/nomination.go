package market

import "time"

// microIdle reports whether the session is between auctions: no pending
// nomination, no running auction, no unacknowledged result.
func (s *Session) microIdle() bool {
	return s.Nomination == nil && s.Auction == nil && s.Ack == nil
}

// nominate proposes a player for open auction. Only the current
// turn-holder may nominate; asBot relaxes nothing except that the command
// was synthesized on the holder's behalf.
func (s *Session) nominate(actor MemberID, playerID PlayerID, asBot bool) ([]Event, error) {
	if !s.microIdle() {
		return nil, ErrInvalidPhase
	}
	m := s.member(actor)
	if m == nil || m.Status != MemberActive {
		return nil, ErrMemberNotActive
	}
	if actor != s.CurrentTurnMember() {
		return nil, ErrNotYourTurn
	}
	pl, ok := s.Players[playerID]
	if !ok {
		return nil, ErrPlayerUnavailable
	}
	if _, rostered := s.Rostered[playerID]; rostered {
		return nil, ErrPlayerUnavailable
	}
	base := pl.BasePrice
	if base < 1 {
		base = 1
	}
	s.Nomination = &Nomination{
		PlayerID:    playerID,
		NominatorID: actor,
		Ready:       NewGate(),
		OfferAmount: base,
	}
	return []Event{{Type: EvtPlayerNominated, MemberID: actor, PlayerID: playerID}}, nil
}

// confirmNomination locks the nominator in and opens the ready-check. The
// nominator counts as ready by confirming.
func (s *Session) confirmNomination(actor MemberID, cmd Command) ([]Event, error) {
	n := s.Nomination
	if n == nil || n.Confirmed {
		return nil, ErrInvalidPhase
	}
	if actor != n.NominatorID {
		return nil, ErrNotYourTurn
	}
	n.Confirmed = true
	n.Ready.Mark(actor)
	events := []Event{{Type: EvtNominationConfirmed, MemberID: actor, PlayerID: n.PlayerID}}
	return s.maybeStartAuction(events, cmd.At)
}

// markReady feeds the gate that is currently open: a confirmed
// nomination's ready-check, or the phase-exit vote of a window phase.
func (s *Session) markReady(cmd Command) ([]Event, error) {
	m := s.member(cmd.ActorID)
	if m == nil || m.Status != MemberActive {
		return nil, ErrMemberNotActive
	}

	if windowPhase(s.CurrentPhase) {
		if !s.PhaseReady.Mark(cmd.ActorID) {
			return nil, nil
		}
		events := []Event{{Type: EvtMemberReady, MemberID: cmd.ActorID}}
		if s.PhaseReady.Satisfied(s.Members) {
			events = append(events, s.advancePhase(cmd.At)...)
		}
		return events, nil
	}

	n := s.Nomination
	if n == nil || !n.Confirmed {
		return nil, ErrInvalidPhase
	}
	if !n.Ready.Mark(cmd.ActorID) {
		return nil, nil
	}
	events := []Event{{Type: EvtMemberReady, MemberID: cmd.ActorID}}
	return s.maybeStartAuction(events, cmd.At)
}

// maybeStartAuction starts the auction once the ready-check covers every
// active member. Steal offers enter the auction as the challenger's
// opening bid.
func (s *Session) maybeStartAuction(events []Event, at time.Time) ([]Event, error) {
	n := s.Nomination
	if !n.Ready.Satisfied(s.Members) {
		return events, nil
	}
	events = append(events, Event{Type: EvtReadyCheckComplete, PlayerID: n.PlayerID})

	var incumbent MemberID
	var firstBid *Bid
	if s.CurrentPhase == PhaseSteal {
		incumbent = s.Rostered[n.PlayerID]
		firstBid = &Bid{BidderID: n.NominatorID, Amount: n.OfferAmount, PlacedAt: at}
	}
	started := s.startAuction(n.PlayerID, n.OfferAmount, incumbent, firstBid, at)
	return append(events, started...), nil
}
