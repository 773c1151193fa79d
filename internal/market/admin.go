package market

// Admin overrides bypass consensus and turn ownership but still flow
// through Apply, so there is no second mutation path and every override
// respects phase validity.

// forceAllReady satisfies whichever ready gate is open: a nomination's
// ready-check, or a window phase's exit vote. Non-responding members are
// counted as participants.
func (s *Session) forceAllReady(cmd Command) ([]Event, error) {
	if windowPhase(s.CurrentPhase) {
		s.PhaseReady.ForceSatisfy(s.Members)
		events := []Event{{Type: EvtReadyCheckComplete}}
		return append(events, s.advancePhase(cmd.At)...), nil
	}
	n := s.Nomination
	if n == nil || !n.Confirmed {
		return nil, ErrInvalidPhase
	}
	n.Ready.ForceSatisfy(s.Members)
	return s.maybeStartAuction(nil, cmd.At)
}

func (s *Session) forceAcknowledgeAll(cmd Command) ([]Event, error) {
	if s.Ack == nil {
		return nil, ErrInvalidPhase
	}
	s.Ack.Acked.ForceSatisfy(s.Members)
	return s.finishAck(cmd.At), nil
}

// botNominate takes the current turn on behalf of its absent holder: a
// strategy-chosen nomination in the open auction, a pass in the steal and
// waiver phases.
func (s *Session) botNominate(cmd Command) ([]Event, error) {
	holder := s.CurrentTurnMember()
	if holder == "" {
		return nil, ErrInvalidPhase
	}
	proxy := cmd
	proxy.ActorID = holder
	switch s.CurrentPhase {
	case PhaseOpenAuction:
		playerID, ok := s.strategy().PickNomination(s, holder)
		if !ok {
			return nil, ErrPlayerUnavailable
		}
		return s.nominate(holder, playerID, true)
	case PhaseSteal:
		return s.rubataPass(proxy)
	default:
		return s.waiverPass(proxy)
	}
}

func (s *Session) botConfirmNomination(cmd Command) ([]Event, error) {
	n := s.Nomination
	if n == nil || n.Confirmed {
		return nil, ErrInvalidPhase
	}
	return s.confirmNomination(n.NominatorID, cmd)
}

// botBid places a minimum raise on behalf of the target member. The bid is
// validated exactly like a human one; budget and slot failures surface to
// the admin.
func (s *Session) botBid(cmd Command) ([]Event, error) {
	if cmd.TargetID == "" {
		return nil, ErrMemberNotActive
	}
	amount, ok := s.strategy().NextBid(s, cmd.TargetID)
	if !ok {
		return nil, ErrInvalidPhase
	}
	proxy := cmd
	proxy.ActorID = cmd.TargetID
	proxy.Amount = amount
	return s.placeBid(proxy)
}

// updateTimer changes the configured auction duration. A countdown already
// running keeps its armed expiry; the new duration applies from the next
// arm (next valid bid or auction start).
func (s *Session) updateTimer(cmd Command) ([]Event, error) {
	if cmd.Seconds < 1 {
		return nil, ErrUnsupportedCommand
	}
	s.AuctionTimerSeconds = cmd.Seconds
	return []Event{{Type: EvtTimerUpdated, Amount: cmd.Seconds}}, nil
}

// completeAllSlots is the explicit exit of the open-auction phase: any
// pending micro-state is discarded and the phase completes as if every
// roster were full.
func (s *Session) completeAllSlots(cmd Command) ([]Event, error) {
	return s.advancePhase(cmd.At), nil
}

func (s *Session) advancePhaseCmd(cmd Command) ([]Event, error) {
	return s.advancePhase(cmd.At), nil
}

// resetFirstMarket rewinds a first market to a clean slate: budgets
// restored, rosters emptied, turn order kept, phase reopened.
func (s *Session) resetFirstMarket(cmd Command) ([]Event, error) {
	if s.Type != FirstMarket {
		return nil, ErrInvalidPhase
	}
	for _, m := range s.Members {
		m.Budget = m.InitialBudget
		m.Roster = nil
		for pos, q := range m.Slots {
			q.Filled = 0
			m.Slots[pos] = q
		}
	}
	s.Rostered = make(map[PlayerID]MemberID)
	s.Status = StatusActive
	s.CurrentPhase = PhaseOpenAuction
	s.PhaseStartedAt = cmd.At
	s.CurrentTurnIndex = 0
	s.Nomination = nil
	s.Auction = nil
	s.Ack = nil
	s.Steal = nil
	s.Waiver = nil
	s.PhaseReady = NewGate()
	return []Event{{Type: EvtMarketReset, Phase: PhaseOpenAuction}}, nil
}
