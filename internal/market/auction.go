package market

import (
	"fmt"
	"time"
)

func (s *Session) startAuction(playerID PlayerID, basePrice int, incumbent MemberID, firstBid *Bid, at time.Time) []Event {
	a := &Auction{
		ID:             fmt.Sprintf("auc-%s-%d", s.ID, s.Version),
		PlayerID:       playerID,
		BasePrice:      basePrice,
		CurrentPrice:   basePrice,
		Status:         AuctionActive,
		TimerStartedAt: at,
		TimerSeconds:   s.AuctionTimerSeconds,
		IncumbentID:    incumbent,
	}
	if firstBid != nil {
		a.Bids = append(a.Bids, *firstBid)
	}
	s.Nomination = nil
	s.Auction = a
	events := []Event{{Type: EvtAuctionStarted, PlayerID: playerID, Amount: basePrice}}
	if firstBid != nil {
		events = append(events, Event{Type: EvtBidPlaced, MemberID: firstBid.BidderID, PlayerID: playerID, Amount: firstBid.Amount})
	}
	return events
}

func (s *Session) placeBid(cmd Command) ([]Event, error) {
	a := s.Auction
	if a == nil || a.Status != AuctionActive {
		return nil, ErrInvalidPhase
	}
	// Expiry is a wall-clock comparison, not a flag: a bid racing an
	// unprocessed timer fire still loses.
	if a.Expired(cmd.At) {
		return nil, ErrTimerExpired
	}
	m := s.member(cmd.ActorID)
	if m == nil || m.Status != MemberActive {
		return nil, ErrMemberNotActive
	}
	if cmd.Amount <= a.CurrentPrice {
		return nil, ErrBidTooLow
	}
	if !s.CanAfford(cmd.ActorID, cmd.Amount) {
		return nil, ErrInsufficientBudget
	}
	// The incumbent defends their own slot; everyone else needs a free one.
	if cmd.ActorID != a.IncumbentID {
		if err := s.ReserveSlot(cmd.ActorID, s.Players[a.PlayerID].Position); err != nil {
			return nil, err
		}
	}
	a.Bids = append(a.Bids, Bid{BidderID: cmd.ActorID, Amount: cmd.Amount, PlacedAt: cmd.At})
	a.CurrentPrice = cmd.Amount
	// Anti-snipe: every valid bid restarts the full countdown.
	a.TimerStartedAt = cmd.At
	a.TimerSeconds = s.AuctionTimerSeconds
	return []Event{{Type: EvtBidPlaced, MemberID: cmd.ActorID, PlayerID: a.PlayerID, Amount: cmd.Amount}}, nil
}

// resolveAuction settles the active auction if its timer has elapsed.
// Duplicate or stale fires are benign no-ops.
func (s *Session) resolveAuction(cmd Command) ([]Event, error) {
	a := s.Auction
	if a == nil || a.Status != AuctionActive {
		return nil, nil
	}
	if cmd.AuctionID != "" && cmd.AuctionID != a.ID {
		return nil, nil
	}
	if !a.Expired(cmd.At) {
		// A bid reset the countdown after this timer was armed.
		return nil, nil
	}
	return s.settleAuction()
}

// settleAuction resolves the active auction immediately, regardless of the
// timer. Callers decide when that is legitimate (expiry or admin force).
func (s *Session) settleAuction() ([]Event, error) {
	a := s.Auction
	winner, hasBids := a.Leader()
	var events []Event
	ack := &Acknowledgment{PlayerID: a.PlayerID, Acked: NewGate()}

	if !hasBids {
		a.Status = AuctionUnsold
		ack.Unsold = true
		events = append(events, Event{Type: EvtAuctionUnsold, PlayerID: a.PlayerID})
	} else {
		a.Status = AuctionCompleted
		price := winner.Amount
		if a.IncumbentID != "" && winner.BidderID == a.IncumbentID {
			// Defended: the incumbent pays the final price to keep the
			// player, roster untouched.
			s.member(a.IncumbentID).Budget -= price
		} else if err := s.Commit(winner.BidderID, a.PlayerID, price); err != nil {
			return nil, err
		} else if a.IncumbentID != "" {
			// Re-commit moved the ownership index; free the incumbent's
			// slot and compensate them.
			s.releaseStolen(a.IncumbentID, winner.BidderID, a.PlayerID, price)
		}
		ack.WinnerID = winner.BidderID
		ack.FinalPrice = price
		events = append(events, Event{Type: EvtAuctionCompleted, MemberID: winner.BidderID, PlayerID: a.PlayerID, Amount: price})
	}

	s.Auction = nil
	s.Ack = ack
	return events, nil
}

func (s *Session) releaseStolen(incumbent, winner MemberID, playerID PlayerID, price int) {
	s.release(incumbent, playerID, price)
	// release dropped the ownership index entry; the winner owns it now.
	s.Rostered[playerID] = winner
}
