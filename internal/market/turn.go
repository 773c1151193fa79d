package market

import (
	"math/rand"
	"sort"
)

// DeriveOrder produces the turn order for a session: a seeded permutation
// of the active member IDs. The seed is persisted at session creation, so
// the order is stable across retries and process restarts.
func DeriveOrder(ids []MemberID, seed int64) []MemberID {
	out := make([]MemberID, len(ids))
	copy(out, ids)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// CurrentTurnMember resolves whose turn it is in the phase that is
// currently running. Empty outside turn-based phases.
func (s *Session) CurrentTurnMember() MemberID {
	switch s.CurrentPhase {
	case PhaseOpenAuction:
		if len(s.TurnOrder) == 0 {
			return ""
		}
		return s.TurnOrder[s.CurrentTurnIndex%len(s.TurnOrder)]
	case PhaseSteal:
		if s.Steal == nil {
			return ""
		}
		return s.Steal.holder()
	case PhaseWaiverAuction:
		if s.Waiver == nil || len(s.Waiver.Order) == 0 {
			return ""
		}
		return s.Waiver.Order[s.Waiver.CurrentTurnIndex%len(s.Waiver.Order)]
	default:
		return ""
	}
}

// advanceTurn moves the open-auction nomination turn, wrapping modulo the
// order length and skipping members no longer active.
func (s *Session) advanceTurn() {
	n := len(s.TurnOrder)
	if n == 0 {
		return
	}
	for i := 0; i < n; i++ {
		s.CurrentTurnIndex = (s.CurrentTurnIndex + 1) % n
		m := s.member(s.TurnOrder[s.CurrentTurnIndex])
		if m != nil && m.Status == MemberActive {
			return
		}
	}
}

// holder computes the owner of the current board entry snake-wise: the walk
// reverses direction every full lap of the order.
func (st *StealState) holder() MemberID {
	n := len(st.Order)
	if n == 0 || st.BoardIndex >= len(st.Board) {
		return ""
	}
	lap := st.BoardIndex / n
	pos := st.BoardIndex % n
	if lap%2 == 1 {
		pos = n - 1 - pos
	}
	return st.Order[pos]
}

// waiverEligible reports whether a member can still take waiver turns:
// active, not finished, not passed this lap, and with at least one open
// slot somewhere.
func (s *Session) waiverEligible(id MemberID) bool {
	m := s.member(id)
	if m == nil || m.Status != MemberActive {
		return false
	}
	w := s.Waiver
	if w.FinishedMembers[id] || w.PassedMembers[id] {
		return false
	}
	return !rosterFull(m)
}

// advanceWaiverTurn steps to the next eligible waiver member. Passed flags
// clear when the index wraps (a new lap). Returns false when no member is
// eligible, which is the phase's exit signal.
func (s *Session) advanceWaiverTurn() bool {
	w := s.Waiver
	n := len(w.Order)
	if n == 0 {
		return false
	}
	for i := 0; i < 2*n; i++ {
		w.CurrentTurnIndex = (w.CurrentTurnIndex + 1) % n
		if w.CurrentTurnIndex == 0 {
			// New lap: per-lap passes expire.
			w.PassedMembers = make(map[MemberID]bool)
		}
		if s.waiverEligible(w.Order[w.CurrentTurnIndex]) {
			return true
		}
	}
	return false
}
