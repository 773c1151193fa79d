package market

// Budget and slot arithmetic lives here and nowhere else. Checks never
// mutate; Commit mutates all-or-nothing after its own re-validation.

func (s *Session) CanAfford(id MemberID, amount int) bool {
	m := s.member(id)
	return m != nil && m.Budget >= amount
}

// ReserveSlot validates that a member could take one more player in the
// given position. It is a pure check: nothing is held or mutated.
func (s *Session) ReserveSlot(id MemberID, pos Position) error {
	m := s.member(id)
	if m == nil || m.Status != MemberActive {
		return ErrMemberNotActive
	}
	q := m.Slots[pos]
	if q.Filled >= q.Total {
		return ErrSlotFull
	}
	return nil
}

// Commit assigns a player to a member at the given price: budget down,
// slot filled, roster and ownership index updated. Never partially
// applied — both checks run before the first mutation.
func (s *Session) Commit(id MemberID, playerID PlayerID, amount int) error {
	m := s.member(id)
	if m == nil || m.Status != MemberActive {
		return ErrMemberNotActive
	}
	pos := s.Players[playerID].Position
	if !s.CanAfford(id, amount) {
		return ErrInsufficientBudget
	}
	if err := s.ReserveSlot(id, pos); err != nil {
		return err
	}
	m.Budget -= amount
	q := m.Slots[pos]
	q.Filled++
	m.Slots[pos] = q
	m.Roster = append(m.Roster, playerID)
	s.Rostered[playerID] = id
	return nil
}

// release undoes ownership for a stolen player: the incumbent's slot is
// freed and the final price credited as compensation.
func (s *Session) release(id MemberID, playerID PlayerID, compensation int) {
	m := s.member(id)
	if m == nil {
		return
	}
	pos := s.Players[playerID].Position
	q := m.Slots[pos]
	if q.Filled > 0 {
		q.Filled--
	}
	m.Slots[pos] = q
	for i, pid := range m.Roster {
		if pid == playerID {
			m.Roster = append(m.Roster[:i], m.Roster[i+1:]...)
			break
		}
	}
	m.Budget += compensation
	delete(s.Rostered, playerID)
}
