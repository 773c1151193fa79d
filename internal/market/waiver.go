package market

// The waiver ("svincolati") auction runs over free agents, turn by turn.
// A turn-holder nominates, passes (sitting out the rest of the lap), or
// finishes (opting out of the phase entirely).

func (s *Session) waiverNominate(cmd Command) ([]Event, error) {
	if !s.microIdle() {
		return nil, ErrInvalidPhase
	}
	m := s.member(cmd.ActorID)
	if m == nil || m.Status != MemberActive {
		return nil, ErrMemberNotActive
	}
	if cmd.ActorID != s.CurrentTurnMember() {
		return nil, ErrNotYourTurn
	}
	pl, ok := s.Players[cmd.PlayerID]
	if !ok {
		return nil, ErrPlayerUnavailable
	}
	if _, rostered := s.Rostered[cmd.PlayerID]; rostered {
		return nil, ErrPlayerUnavailable
	}
	if err := s.ReserveSlot(cmd.ActorID, pl.Position); err != nil {
		return nil, err
	}
	base := pl.BasePrice
	if base < 1 {
		base = 1
	}
	if !s.CanAfford(cmd.ActorID, base) {
		return nil, ErrInsufficientBudget
	}
	s.Nomination = &Nomination{
		PlayerID:    cmd.PlayerID,
		NominatorID: cmd.ActorID,
		Ready:       NewGate(),
		OfferAmount: base,
	}
	return []Event{{Type: EvtPlayerNominated, MemberID: cmd.ActorID, PlayerID: cmd.PlayerID}}, nil
}

func (s *Session) waiverPass(cmd Command) ([]Event, error) {
	return s.waiverOptOut(cmd, false)
}

func (s *Session) waiverFinish(cmd Command) ([]Event, error) {
	return s.waiverOptOut(cmd, true)
}

func (s *Session) waiverOptOut(cmd Command, finish bool) ([]Event, error) {
	if !s.microIdle() {
		return nil, ErrInvalidPhase
	}
	m := s.member(cmd.ActorID)
	if m == nil || m.Status != MemberActive {
		return nil, ErrMemberNotActive
	}
	if cmd.ActorID != s.CurrentTurnMember() {
		return nil, ErrNotYourTurn
	}
	var events []Event
	if finish {
		s.Waiver.FinishedMembers[cmd.ActorID] = true
		events = append(events, Event{Type: EvtWaiverFinished, MemberID: cmd.ActorID})
	} else {
		s.Waiver.PassedMembers[cmd.ActorID] = true
		events = append(events, Event{Type: EvtWaiverPassed, MemberID: cmd.ActorID})
	}
	if s.waiverDone() {
		return append(events, s.advancePhase(cmd.At)...), nil
	}
	s.advanceWaiverTurn()
	events = append(events, Event{Type: EvtTurnAdvanced, MemberID: s.CurrentTurnMember()})
	return events, nil
}
