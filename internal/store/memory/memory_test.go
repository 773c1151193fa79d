package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fantalega/market-backend/internal/market"
	"github.com/fantalega/market-backend/internal/store"
)

func TestStore_RoundTrip(t *testing.T) {
	st := New()
	ctx := context.Background()

	if _, err := st.Load(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	sess := market.NewSession(market.NewSessionParams{
		ID:       "s1",
		LeagueID: "lg1",
		Type:     market.FirstMarket,
		Members: []*market.Member{
			{ID: "m1", UserID: "u1", Role: market.RoleAdmin, Status: market.MemberActive, Budget: 500},
		},
		Players: []*market.Player{
			{ID: "fw1", Name: "Lautaro", Position: market.Forward, BasePrice: 1},
		},
		TimerSeconds: 30,
		OrderSeed:    1,
		Now:          time.Now(),
	})
	if err := st.Save(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := st.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.ID != "s1" || got.CurrentPhase != market.PhaseOpenAuction {
		t.Fatalf("round trip lost state: %+v", got)
	}
	if got.Members["m1"].Budget != 500 {
		t.Fatalf("member state lost in round trip")
	}

	// Stored bytes are a snapshot: later in-memory mutation must not leak.
	sess.Members["m1"].Budget = 1
	got2, err := st.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got2.Members["m1"].Budget != 500 {
		t.Fatalf("store must not alias live state")
	}
}
