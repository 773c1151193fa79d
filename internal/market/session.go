package market

// Apply is the single mutation entry point for a session. Commands are
// validated against the current phase and micro-state; on any error the
// session is unchanged. The caller (one goroutine per session) provides
// serialization; Apply itself never blocks, reads the clock, or does I/O.
func Apply(s *Session, cmd Command) ([]Event, error) {
	if s.Status == StatusCompleted {
		switch cmd.Type {
		case CmdTimerFired:
			return nil, nil
		case CmdResetFirstMarket:
			// The one command allowed to reopen a completed session.
		default:
			return nil, ErrSessionCompleted
		}
	}
	if err := s.checkPhase(cmd.Type); err != nil {
		return nil, err
	}
	if adminCommand(cmd.Type) {
		m := s.member(cmd.ActorID)
		if m == nil || m.Role != RoleAdmin {
			return nil, ErrNotAdmin
		}
	}

	events, err := s.dispatch(cmd)
	if err != nil {
		return nil, err
	}
	if len(events) > 0 {
		s.Version++
	}
	return events, nil
}

func (s *Session) dispatch(cmd Command) ([]Event, error) {
	switch cmd.Type {
	case CmdNominate:
		return s.nominate(cmd.ActorID, cmd.PlayerID, false)
	case CmdConfirmNomination:
		return s.confirmNomination(cmd.ActorID, cmd)
	case CmdMarkReady:
		return s.markReady(cmd)
	case CmdPlaceBid:
		return s.placeBid(cmd)
	case CmdAcknowledge:
		return s.acknowledge(cmd)
	case CmdRubataPass:
		return s.rubataPass(cmd)
	case CmdRubataCounterBid:
		return s.rubataCounterBid(cmd)
	case CmdWaiverNominate:
		return s.waiverNominate(cmd)
	case CmdWaiverPass:
		return s.waiverPass(cmd)
	case CmdWaiverFinish:
		return s.waiverFinish(cmd)
	case CmdTimerFired:
		return s.resolveAuction(cmd)

	case CmdForceAllReady:
		return s.forceAllReady(cmd)
	case CmdForceAcknowledgeAll:
		return s.forceAcknowledgeAll(cmd)
	case CmdBotNominate:
		return s.botNominate(cmd)
	case CmdBotConfirmNomination:
		return s.botConfirmNomination(cmd)
	case CmdBotBid:
		return s.botBid(cmd)
	case CmdUpdateTimer:
		return s.updateTimer(cmd)
	case CmdCompleteAllSlots:
		return s.completeAllSlots(cmd)
	case CmdResetFirstMarket:
		return s.resetFirstMarket(cmd)
	case CmdAdvancePhase:
		return s.advancePhaseCmd(cmd)
	default:
		return nil, ErrUnsupportedCommand
	}
}

// checkPhase rejects commands that can never be valid in the current
// phase. Micro-state validity (is a gate open, is an auction running) is
// checked by the handlers themselves.
func (s *Session) checkPhase(t CommandType) error {
	switch t {
	case CmdNominate:
		return s.requirePhase(PhaseOpenAuction)
	case CmdConfirmNomination, CmdBotConfirmNomination:
		return s.requirePhase(PhaseOpenAuction, PhaseWaiverAuction)
	case CmdPlaceBid, CmdAcknowledge, CmdBotBid, CmdForceAcknowledgeAll:
		return s.requirePhase(PhaseOpenAuction, PhaseSteal, PhaseWaiverAuction)
	case CmdRubataPass, CmdRubataCounterBid:
		return s.requirePhase(PhaseSteal)
	case CmdWaiverNominate, CmdWaiverPass, CmdWaiverFinish:
		return s.requirePhase(PhaseWaiverAuction)
	case CmdCompleteAllSlots:
		return s.requirePhase(PhaseOpenAuction)
	case CmdBotNominate:
		return s.requirePhase(PhaseOpenAuction, PhaseSteal, PhaseWaiverAuction)
	}
	return nil
}

func (s *Session) requirePhase(phases ...Phase) error {
	for _, p := range phases {
		if s.CurrentPhase == p {
			return nil
		}
	}
	return ErrInvalidPhase
}

func adminCommand(t CommandType) bool {
	switch t {
	case CmdForceAllReady, CmdForceAcknowledgeAll, CmdBotNominate,
		CmdBotConfirmNomination, CmdBotBid, CmdUpdateTimer,
		CmdCompleteAllSlots, CmdResetFirstMarket, CmdAdvancePhase:
		return true
	}
	return false
}
