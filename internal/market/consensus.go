package market

// Gate is the N-of-N consensus primitive behind ready-checks, result
// acknowledgments and phase-exit votes. It only records who has marked;
// the required set is recomputed from live membership at evaluation time,
// so a member removed mid-check can never wedge the gate.
type Gate struct {
	Marked map[MemberID]bool `json:"marked"`
}

func NewGate() Gate {
	return Gate{Marked: make(map[MemberID]bool)}
}

// Mark records a member. Re-marking is a no-op; the returned bool reports
// whether anything changed.
func (g *Gate) Mark(id MemberID) bool {
	if g.Marked == nil {
		g.Marked = make(map[MemberID]bool)
	}
	if g.Marked[id] {
		return false
	}
	g.Marked[id] = true
	return true
}

// Satisfied reports whether every member currently ACTIVE has marked.
func (g Gate) Satisfied(members map[MemberID]*Member) bool {
	for id, m := range members {
		if m.Status != MemberActive {
			continue
		}
		if !g.Marked[id] {
			return false
		}
	}
	return true
}

// ForceSatisfy marks every active member at once. Admin override path.
func (g *Gate) ForceSatisfy(members map[MemberID]*Member) {
	for id, m := range members {
		if m.Status == MemberActive {
			g.Mark(id)
		}
	}
}

func (g Gate) Members() []MemberID {
	out := make([]MemberID, 0, len(g.Marked))
	for id := range g.Marked {
		out = append(out, id)
	}
	return out
}
