package market

import "time"

// acknowledge records that a member has seen the pending auction result.
// Re-acknowledging is a no-op. When every active member has acknowledged,
// the result record clears and the phase moves on.
func (s *Session) acknowledge(cmd Command) ([]Event, error) {
	if s.Ack == nil {
		return nil, ErrInvalidPhase
	}
	m := s.member(cmd.ActorID)
	if m == nil || m.Status != MemberActive {
		return nil, ErrMemberNotActive
	}
	if !s.Ack.Acked.Mark(cmd.ActorID) {
		return nil, nil
	}
	events := []Event{{Type: EvtMemberAcknowledged, MemberID: cmd.ActorID}}
	if s.Ack.Acked.Satisfied(s.Members) {
		events = append(events, s.finishAck(cmd.At)...)
	}
	return events, nil
}

// finishAck clears the acknowledgment record and hands the turn onward.
// This is the only place the nomination turn advances: "whose turn is it"
// stays stable while a result is being confirmed.
func (s *Session) finishAck(at time.Time) []Event {
	s.Ack = nil
	events := []Event{{Type: EvtAckComplete}}

	switch s.CurrentPhase {
	case PhaseOpenAuction:
		if s.AllSlotsFilled() {
			return append(events, s.advancePhase(at)...)
		}
		s.advanceTurn()
		events = append(events, Event{Type: EvtTurnAdvanced, MemberID: s.CurrentTurnMember()})

	case PhaseSteal:
		s.Steal.BoardIndex++
		if s.Steal.BoardIndex >= len(s.Steal.Board) {
			return append(events, s.advancePhase(at)...)
		}
		events = append(events, Event{Type: EvtBoardAdvanced, MemberID: s.Steal.holder(), PlayerID: s.Steal.Board[s.Steal.BoardIndex]})

	case PhaseWaiverAuction:
		if s.waiverDone() {
			return append(events, s.advancePhase(at)...)
		}
		s.advanceWaiverTurn()
		events = append(events, Event{Type: EvtTurnAdvanced, MemberID: s.CurrentTurnMember()})
	}
	return events
}
