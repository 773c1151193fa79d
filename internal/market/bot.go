package market

import "sort"

// Strategy decides what a bot stand-in does when the admin acts on behalf
// of an absent member. Implementations see the same session snapshot a
// human would; the chosen action flows through the exact same handlers.
type Strategy interface {
	// PickNomination chooses a player for the holder to nominate.
	PickNomination(s *Session, holder MemberID) (PlayerID, bool)
	// NextBid chooses a bid amount for the member, or declines.
	NextBid(s *Session, bidder MemberID) (int, bool)
}

// AutoPilot is the default stand-in: nominate the first free agent (by ID,
// so every process agrees), bid the minimum raise.
type AutoPilot struct{}

func (AutoPilot) PickNomination(s *Session, holder MemberID) (PlayerID, bool) {
	free := s.FreeAgents()
	if len(free) == 0 {
		return "", false
	}
	sort.Slice(free, func(i, j int) bool { return free[i] < free[j] })
	return free[0], true
}

func (AutoPilot) NextBid(s *Session, bidder MemberID) (int, bool) {
	if s.Auction == nil {
		return 0, false
	}
	return s.Auction.CurrentPrice + 1, true
}

// SetStrategy swaps the bot strategy. Nil restores AutoPilot.
func (s *Session) SetStrategy(b Strategy) { s.bot = b }

func (s *Session) strategy() Strategy {
	if s.bot == nil {
		return AutoPilot{}
	}
	return s.bot
}
