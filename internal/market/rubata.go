package market

// The steal ("rubata") sub-game walks a fixed board of rostered players.
// Each entry belongs to one turn-holder, who either passes or opens a
// counter-auction against the incumbent owner.

func (s *Session) rubataPass(cmd Command) ([]Event, error) {
	if !s.microIdle() {
		return nil, ErrInvalidPhase
	}
	m := s.member(cmd.ActorID)
	if m == nil || m.Status != MemberActive {
		return nil, ErrMemberNotActive
	}
	if cmd.ActorID != s.Steal.holder() {
		return nil, ErrNotYourTurn
	}
	events := []Event{{Type: EvtStealPassed, MemberID: cmd.ActorID, PlayerID: s.Steal.Board[s.Steal.BoardIndex]}}
	s.Steal.BoardIndex++
	if s.Steal.BoardIndex >= len(s.Steal.Board) {
		return append(events, s.advancePhase(cmd.At)...), nil
	}
	events = append(events, Event{Type: EvtBoardAdvanced, MemberID: s.Steal.holder(), PlayerID: s.Steal.Board[s.Steal.BoardIndex]})
	return events, nil
}

// rubataCounterBid opens the counter-auction for the current board entry
// at the challenger's offer. The offer is validated like a bid (budget and
// slot), confirmed implicitly, and the usual ready-check gates the start.
func (s *Session) rubataCounterBid(cmd Command) ([]Event, error) {
	if !s.microIdle() {
		return nil, ErrInvalidPhase
	}
	m := s.member(cmd.ActorID)
	if m == nil || m.Status != MemberActive {
		return nil, ErrMemberNotActive
	}
	if cmd.ActorID != s.Steal.holder() {
		return nil, ErrNotYourTurn
	}
	playerID := s.Steal.Board[s.Steal.BoardIndex]
	incumbent := s.Rostered[playerID]
	if incumbent == "" || incumbent == cmd.ActorID {
		return nil, ErrPlayerUnavailable
	}
	if cmd.Amount < 1 {
		return nil, ErrBidTooLow
	}
	if !s.CanAfford(cmd.ActorID, cmd.Amount) {
		return nil, ErrInsufficientBudget
	}
	if err := s.ReserveSlot(cmd.ActorID, s.Players[playerID].Position); err != nil {
		return nil, err
	}
	n := &Nomination{
		PlayerID:    playerID,
		NominatorID: cmd.ActorID,
		Confirmed:   true,
		Ready:       NewGate(),
		OfferAmount: cmd.Amount,
	}
	n.Ready.Mark(cmd.ActorID)
	s.Nomination = n
	events := []Event{
		{Type: EvtPlayerNominated, MemberID: cmd.ActorID, PlayerID: playerID, Amount: cmd.Amount},
		{Type: EvtMemberReady, MemberID: cmd.ActorID},
	}
	return s.maybeStartAuction(events, cmd.At)
}
