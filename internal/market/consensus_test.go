package market

import "testing"

func TestGate_SatisfiedOnlyByActiveMembers(t *testing.T) {
	members := map[MemberID]*Member{
		"m1": {ID: "m1", Status: MemberActive},
		"m2": {ID: "m2", Status: MemberActive},
		"m3": {ID: "m3", Status: MemberPending},
		"m4": {ID: "m4", Status: MemberRemoved},
	}
	g := NewGate()
	g.Mark("m1")
	if g.Satisfied(members) {
		t.Fatalf("gate satisfied with an active member missing")
	}
	g.Mark("m2")
	if !g.Satisfied(members) {
		t.Fatalf("pending/removed members must not be required")
	}
}

func TestGate_MemberRemovalNeverPreventsSatisfaction(t *testing.T) {
	members := map[MemberID]*Member{
		"m1": {ID: "m1", Status: MemberActive},
		"m2": {ID: "m2", Status: MemberActive},
	}
	g := NewGate()
	g.Mark("m1")
	if g.Satisfied(members) {
		t.Fatalf("not satisfied yet")
	}
	// m2 leaves: the required set is live, so the gate resolves.
	members["m2"].Status = MemberRemoved
	if !g.Satisfied(members) {
		t.Fatalf("removing a member must never block the gate")
	}
}

func TestGate_MarkIsIdempotent(t *testing.T) {
	g := NewGate()
	if !g.Mark("m1") {
		t.Fatalf("first mark should report a change")
	}
	if g.Mark("m1") {
		t.Fatalf("second mark should be a no-op")
	}
}

func TestGate_ForceSatisfyCountsEveryActiveMember(t *testing.T) {
	members := map[MemberID]*Member{
		"m1": {ID: "m1", Status: MemberActive},
		"m2": {ID: "m2", Status: MemberActive},
		"m3": {ID: "m3", Status: MemberRemoved},
	}
	g := NewGate()
	g.ForceSatisfy(members)
	if !g.Satisfied(members) {
		t.Fatalf("forced gate must satisfy")
	}
	if len(g.Members()) != 2 {
		t.Fatalf("forced gate should count the active members, got %v", g.Members())
	}
}
