package market

import (
	"sort"
	"time"
)

func phaseSequence(t SessionType) []Phase {
	if t == FirstMarket {
		return []Phase{PhaseOpenAuction}
	}
	return []Phase{
		PhasePrizes,
		PhasePreRenewalOffers,
		PhaseContracts,
		PhaseSteal,
		PhaseWaiverAuction,
		PhasePostWaiverOffers,
	}
}

// windowPhase marks the phases that carry no sub-game: they are open
// windows (prize payout, offers, contract renewal) whose inner workings
// live outside the engine, gated only by an everyone-ready vote.
func windowPhase(p Phase) bool {
	switch p {
	case PhasePrizes, PhasePreRenewalOffers, PhaseContracts, PhasePostWaiverOffers:
		return true
	}
	return false
}

// advancePhase moves the session to the next phase in its sequence,
// clearing all micro-state, or completes the session at the end. A phase
// that is terminal on entry (empty steal board, exhausted waiver pool) is
// skipped over.
func (s *Session) advancePhase(at time.Time) []Event {
	s.Nomination = nil
	s.Auction = nil
	s.Ack = nil
	s.Steal = nil
	s.Waiver = nil
	s.PhaseReady = NewGate()

	seq := phaseSequence(s.Type)
	next := -1
	for i, p := range seq {
		if p == s.CurrentPhase {
			next = i + 1
			break
		}
	}
	if next < 0 || next >= len(seq) {
		s.Status = StatusCompleted
		return []Event{{Type: EvtSessionCompleted}}
	}

	s.CurrentPhase = seq[next]
	s.PhaseStartedAt = at
	events := []Event{{Type: EvtPhaseAdvanced, Phase: s.CurrentPhase}}

	switch s.CurrentPhase {
	case PhaseSteal:
		s.enterSteal()
		if len(s.Steal.Board) == 0 {
			return append(events, s.advancePhase(at)...)
		}
	case PhaseWaiverAuction:
		s.enterWaiver()
		if s.waiverDone() {
			return append(events, s.advancePhase(at)...)
		}
	}
	return events
}

// enterSteal builds the steal board: every rostered player, in a
// deterministic order so all processes derive the same board.
func (s *Session) enterSteal() {
	board := make([]PlayerID, 0, len(s.Rostered))
	for pid := range s.Rostered {
		board = append(board, pid)
	}
	sort.Slice(board, func(i, j int) bool { return board[i] < board[j] })
	order := make([]MemberID, 0, len(s.TurnOrder))
	for _, id := range s.TurnOrder {
		if m := s.member(id); m != nil && m.Status == MemberActive {
			order = append(order, id)
		}
	}
	s.Steal = &StealState{Order: order, Board: board}
}

func (s *Session) enterWaiver() {
	order := make([]MemberID, 0, len(s.TurnOrder))
	for _, id := range s.TurnOrder {
		if m := s.member(id); m != nil && m.Status == MemberActive {
			order = append(order, id)
		}
	}
	s.Waiver = &WaiverState{
		Order:           order,
		PassedMembers:   make(map[MemberID]bool),
		FinishedMembers: make(map[MemberID]bool),
	}
	// The first seat may already be ineligible (full roster).
	if len(order) > 0 && !s.waiverEligible(order[0]) {
		s.advanceWaiverTurn()
	}
}

// waiverDone reports the waiver phase exit condition: pool exhausted, or
// every active member is finished, passed this lap, or out of slots.
func (s *Session) waiverDone() bool {
	if len(s.FreeAgents()) == 0 {
		return true
	}
	w := s.Waiver
	for _, id := range w.Order {
		m := s.member(id)
		if m == nil || m.Status != MemberActive {
			continue
		}
		if !w.FinishedMembers[id] && !w.PassedMembers[id] && !rosterFull(m) {
			return false
		}
	}
	return true
}
