package market

import "time"

type MemberID string
type PlayerID string

type SessionType string

const (
	FirstMarket     SessionType = "first_market"
	RecurringMarket SessionType = "recurring_market"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

type Phase string

const (
	PhaseOpenAuction      Phase = "open_auction"
	PhasePrizes           Phase = "prizes"
	PhasePreRenewalOffers Phase = "pre_renewal_offers"
	PhaseContracts        Phase = "contracts"
	PhaseSteal            Phase = "steal"
	PhaseWaiverAuction    Phase = "waiver_auction"
	PhasePostWaiverOffers Phase = "post_waiver_offers"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
)

type MemberStatus string

const (
	MemberActive  MemberStatus = "active"
	MemberPending MemberStatus = "pending"
	MemberRemoved MemberStatus = "removed"
)

// Position follows the classic fantacalcio split: goalkeeper, defender,
// midfielder, forward.
type Position string

const (
	Goalkeeper Position = "P"
	Defender   Position = "D"
	Midfielder Position = "C"
	Forward    Position = "A"
)

type SlotQuota struct {
	Filled int `json:"filled"`
	Total  int `json:"total"`
}

type Member struct {
	ID            MemberID               `json:"id"`
	UserID        string                 `json:"user_id"`
	Role          Role                   `json:"role"`
	Status        MemberStatus           `json:"status"`
	Budget        int                    `json:"budget"`
	InitialBudget int                    `json:"initial_budget"`
	Slots         map[Position]SlotQuota `json:"slots"`
	Roster        []PlayerID             `json:"roster"`
}

type Player struct {
	ID        PlayerID `json:"id"`
	Name      string   `json:"name"`
	Position  Position `json:"position"`
	BasePrice int      `json:"base_price"`
}

type AuctionStatus string

const (
	AuctionActive    AuctionStatus = "active"
	AuctionCompleted AuctionStatus = "completed"
	AuctionUnsold    AuctionStatus = "unsold"
)

type Bid struct {
	BidderID MemberID  `json:"bidder_id"`
	Amount   int       `json:"amount"`
	PlacedAt time.Time `json:"placed_at"`
}

type Auction struct {
	ID             string        `json:"id"`
	PlayerID       PlayerID      `json:"player_id"`
	BasePrice      int           `json:"base_price"`
	CurrentPrice   int           `json:"current_price"`
	Status         AuctionStatus `json:"status"`
	Bids           []Bid         `json:"bids"`
	TimerStartedAt time.Time     `json:"timer_started_at"`
	TimerSeconds   int           `json:"timer_seconds"`
	// IncumbentID is set only for steal counter-auctions: the member whose
	// roster the player is contested from.
	IncumbentID MemberID `json:"incumbent_id,omitempty"`
}

func (a *Auction) ExpiresAt() time.Time {
	return a.TimerStartedAt.Add(time.Duration(a.TimerSeconds) * time.Second)
}

func (a *Auction) Expired(at time.Time) bool {
	return !at.Before(a.ExpiresAt())
}

// Leader returns the winning bid so far: highest amount, earliest placed on
// a tie. Bids are appended in arrival order, so strictly-greater keeps the
// earlier of two equal bids.
func (a *Auction) Leader() (Bid, bool) {
	var best Bid
	found := false
	for _, b := range a.Bids {
		if !found || b.Amount > best.Amount {
			best = b
			found = true
		}
	}
	return best, found
}

// Nomination is the pending proposal of a player for auction: nominated,
// optionally confirmed by the nominator, then gated by a ready-check.
type Nomination struct {
	PlayerID    PlayerID `json:"player_id"`
	NominatorID MemberID `json:"nominator_id"`
	Confirmed   bool     `json:"confirmed"`
	Ready       Gate     `json:"ready"`
	// OfferAmount is the opening price. Steal offers start at the
	// challenger's offer; elsewhere it is the player's base price.
	OfferAmount int `json:"offer_amount"`
}

// Acknowledgment holds a resolved auction result until every active member
// has seen it.
type Acknowledgment struct {
	PlayerID   PlayerID `json:"player_id"`
	WinnerID   MemberID `json:"winner_id,omitempty"`
	FinalPrice int      `json:"final_price"`
	Unsold     bool     `json:"unsold"`
	Acked      Gate     `json:"acked"`
}

// StealState exists only while CurrentPhase == PhaseSteal.
type StealState struct {
	Order      []MemberID `json:"order"`
	Board      []PlayerID `json:"board"`
	BoardIndex int        `json:"board_index"`
}

// WaiverState exists only while CurrentPhase == PhaseWaiverAuction.
type WaiverState struct {
	Order            []MemberID        `json:"order"`
	CurrentTurnIndex int               `json:"current_turn_index"`
	PassedMembers    map[MemberID]bool `json:"passed_members"`
	FinishedMembers  map[MemberID]bool `json:"finished_members"`
}

// Session is the full persisted state of one market session. Apply is the
// only mutation path; everything else reads snapshots.
type Session struct {
	ID                  string    `json:"id"`
	LeagueID            string    `json:"league_id"`
	Type                SessionType `json:"type"`
	Status              Status    `json:"status"`
	CurrentPhase        Phase     `json:"current_phase"`
	PhaseStartedAt      time.Time `json:"phase_started_at"`
	TurnOrder           []MemberID `json:"turn_order"`
	CurrentTurnIndex    int       `json:"current_turn_index"`
	AuctionTimerSeconds int       `json:"auction_timer_seconds"`
	OrderSeed           int64     `json:"order_seed"`

	Members  map[MemberID]*Member  `json:"members"`
	Players  map[PlayerID]*Player  `json:"players"`
	Rostered map[PlayerID]MemberID `json:"rostered"`

	// Micro-state: at most one of Nomination, Auction, Ack is non-nil.
	Nomination *Nomination     `json:"nomination,omitempty"`
	Auction    *Auction        `json:"auction,omitempty"`
	Ack        *Acknowledgment `json:"ack,omitempty"`

	Steal  *StealState  `json:"steal,omitempty"`
	Waiver *WaiverState `json:"waiver,omitempty"`

	// PhaseReady gates progress out of the offer/contract/prize windows.
	PhaseReady Gate `json:"phase_ready"`

	Version int `json:"version"`

	bot Strategy
}

type NewSessionParams struct {
	ID           string
	LeagueID     string
	Type         SessionType
	Members      []*Member
	Players      []*Player
	TimerSeconds int
	OrderSeed    int64
	Now          time.Time
}

func NewSession(p NewSessionParams) *Session {
	s := &Session{
		ID:                  p.ID,
		LeagueID:            p.LeagueID,
		Type:                p.Type,
		Status:              StatusActive,
		PhaseStartedAt:      p.Now,
		AuctionTimerSeconds: p.TimerSeconds,
		OrderSeed:           p.OrderSeed,
		Members:             make(map[MemberID]*Member, len(p.Members)),
		Players:             make(map[PlayerID]*Player, len(p.Players)),
		Rostered:            make(map[PlayerID]MemberID),
		PhaseReady:          NewGate(),
	}
	for _, m := range p.Members {
		if m.Slots == nil {
			m.Slots = DefaultSlots()
		}
		if m.InitialBudget == 0 {
			m.InitialBudget = m.Budget
		}
		s.Members[m.ID] = m
		for _, pid := range m.Roster {
			s.Rostered[pid] = m.ID
			q := m.Slots[s.positionOf(pid, p.Players)]
			q.Filled++
			m.Slots[s.positionOf(pid, p.Players)] = q
		}
	}
	for _, pl := range p.Players {
		s.Players[pl.ID] = pl
	}
	s.TurnOrder = DeriveOrder(s.activeMemberIDs(), p.OrderSeed)
	s.CurrentPhase = phaseSequence(p.Type)[0]
	if s.CurrentPhase == PhaseSteal {
		s.enterSteal()
	}
	return s
}

// DefaultSlots is the classic 25-man fantacalcio roster: 3 goalkeepers,
// 8 defenders, 8 midfielders, 6 forwards.
func DefaultSlots() map[Position]SlotQuota {
	return map[Position]SlotQuota{
		Goalkeeper: {Total: 3},
		Defender:   {Total: 8},
		Midfielder: {Total: 8},
		Forward:    {Total: 6},
	}
}

func (s *Session) positionOf(id PlayerID, players []*Player) Position {
	for _, pl := range players {
		if pl.ID == id {
			return pl.Position
		}
	}
	return ""
}

func (s *Session) member(id MemberID) *Member {
	return s.Members[id]
}

func (s *Session) activeMemberIDs() []MemberID {
	ids := make([]MemberID, 0, len(s.Members))
	for id, m := range s.Members {
		if m.Status == MemberActive {
			ids = append(ids, id)
		}
	}
	return ids
}

// AllSlotsFilled reports whether every active member's roster is complete —
// the exit condition of the open-auction phase.
func (s *Session) AllSlotsFilled() bool {
	for _, m := range s.Members {
		if m.Status != MemberActive {
			continue
		}
		if !rosterFull(m) {
			return false
		}
	}
	return true
}

func rosterFull(m *Member) bool {
	for _, q := range m.Slots {
		if q.Filled < q.Total {
			return false
		}
	}
	return true
}

// FreeAgents returns the unrostered player pool, unordered.
func (s *Session) FreeAgents() []PlayerID {
	var out []PlayerID
	for id := range s.Players {
		if _, taken := s.Rostered[id]; !taken {
			out = append(out, id)
		}
	}
	return out
}
