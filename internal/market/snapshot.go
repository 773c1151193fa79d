package market

import (
	"sort"
	"time"
)

// Snapshot is the full broadcast view of a session: everything a dashboard
// needs, nothing mutable. Remaining auction time is computed from the
// persisted start, never from an in-memory countdown.
type Snapshot struct {
	SessionID        string          `json:"session_id"`
	LeagueID         string          `json:"league_id"`
	Type             SessionType     `json:"type"`
	Status           Status          `json:"status"`
	CurrentPhase     Phase           `json:"current_phase"`
	TurnOrder        []MemberID      `json:"turn_order"`
	CurrentTurn      MemberID        `json:"current_turn,omitempty"`
	Version          int             `json:"version"`
	Members          []MemberView    `json:"members"`
	Nomination       *NominationView `json:"nomination,omitempty"`
	Auction          *AuctionView    `json:"auction,omitempty"`
	Ack              *AckView        `json:"ack,omitempty"`
	Steal            *StealView      `json:"steal,omitempty"`
	Waiver           *WaiverView     `json:"waiver,omitempty"`
	PhaseReady       []MemberID      `json:"phase_ready,omitempty"`
	TimerSeconds     int             `json:"timer_seconds"`
}

type MemberView struct {
	ID     MemberID               `json:"id"`
	Role   Role                   `json:"role"`
	Status MemberStatus           `json:"status"`
	Budget int                    `json:"budget"`
	Slots  map[Position]SlotQuota `json:"slots"`
	Roster []PlayerID             `json:"roster"`
}

type NominationView struct {
	PlayerID    PlayerID   `json:"player_id"`
	NominatorID MemberID   `json:"nominator_id"`
	Confirmed   bool       `json:"confirmed"`
	Ready       []MemberID `json:"ready"`
	OfferAmount int        `json:"offer_amount"`
}

type AuctionView struct {
	ID               string   `json:"id"`
	PlayerID         PlayerID `json:"player_id"`
	BasePrice        int      `json:"base_price"`
	CurrentPrice     int      `json:"current_price"`
	Bids             []Bid    `json:"bids"`
	RemainingSeconds int      `json:"remaining_seconds"`
	IncumbentID      MemberID `json:"incumbent_id,omitempty"`
}

type AckView struct {
	PlayerID   PlayerID   `json:"player_id"`
	WinnerID   MemberID   `json:"winner_id,omitempty"`
	FinalPrice int        `json:"final_price"`
	Unsold     bool       `json:"unsold"`
	Acked      []MemberID `json:"acked"`
}

type StealView struct {
	Order      []MemberID `json:"order"`
	Board      []PlayerID `json:"board"`
	BoardIndex int        `json:"board_index"`
}

type WaiverView struct {
	Order    []MemberID `json:"order"`
	Passed   []MemberID `json:"passed"`
	Finished []MemberID `json:"finished"`
}

func BuildSnapshot(s *Session, now time.Time) *Snapshot {
	snap := &Snapshot{
		SessionID:    s.ID,
		LeagueID:     s.LeagueID,
		Type:         s.Type,
		Status:       s.Status,
		CurrentPhase: s.CurrentPhase,
		TurnOrder:    s.TurnOrder,
		CurrentTurn:  s.CurrentTurnMember(),
		Version:      s.Version,
		TimerSeconds: s.AuctionTimerSeconds,
		PhaseReady:   sortedIDs(s.PhaseReady.Members()),
	}
	snap.TurnOrder = append([]MemberID(nil), s.TurnOrder...)
	// Everything that leaves the actor goroutine is copied: subscribers
	// marshal snapshots concurrently with later mutations.
	for _, id := range sortedMemberIDs(s.Members) {
		m := s.Members[id]
		slots := make(map[Position]SlotQuota, len(m.Slots))
		for pos, q := range m.Slots {
			slots[pos] = q
		}
		snap.Members = append(snap.Members, MemberView{
			ID:     m.ID,
			Role:   m.Role,
			Status: m.Status,
			Budget: m.Budget,
			Slots:  slots,
			Roster: append([]PlayerID(nil), m.Roster...),
		})
	}
	if n := s.Nomination; n != nil {
		snap.Nomination = &NominationView{
			PlayerID:    n.PlayerID,
			NominatorID: n.NominatorID,
			Confirmed:   n.Confirmed,
			Ready:       sortedIDs(n.Ready.Members()),
			OfferAmount: n.OfferAmount,
		}
	}
	if a := s.Auction; a != nil {
		remaining := int(a.ExpiresAt().Sub(now).Round(time.Second) / time.Second)
		if remaining < 0 {
			remaining = 0
		}
		snap.Auction = &AuctionView{
			ID:               a.ID,
			PlayerID:         a.PlayerID,
			BasePrice:        a.BasePrice,
			CurrentPrice:     a.CurrentPrice,
			Bids:             append([]Bid(nil), a.Bids...),
			RemainingSeconds: remaining,
			IncumbentID:      a.IncumbentID,
		}
	}
	if k := s.Ack; k != nil {
		snap.Ack = &AckView{
			PlayerID:   k.PlayerID,
			WinnerID:   k.WinnerID,
			FinalPrice: k.FinalPrice,
			Unsold:     k.Unsold,
			Acked:      sortedIDs(k.Acked.Members()),
		}
	}
	if st := s.Steal; st != nil {
		snap.Steal = &StealView{
			Order:      append([]MemberID(nil), st.Order...),
			Board:      append([]PlayerID(nil), st.Board...),
			BoardIndex: st.BoardIndex,
		}
	}
	if w := s.Waiver; w != nil {
		snap.Waiver = &WaiverView{
			Order:    append([]MemberID(nil), w.Order...),
			Passed:   sortedIDs(keys(w.PassedMembers)),
			Finished: sortedIDs(keys(w.FinishedMembers)),
		}
	}
	return snap
}

func sortedIDs(ids []MemberID) []MemberID {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sortedMemberIDs(members map[MemberID]*Member) []MemberID {
	ids := make([]MemberID, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	return sortedIDs(ids)
}

func keys(m map[MemberID]bool) []MemberID {
	out := make([]MemberID, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	return out
}
