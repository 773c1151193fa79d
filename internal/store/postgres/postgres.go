package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fantalega/market-backend/internal/market"
	"github.com/fantalega/market-backend/internal/store"
)

// sessionRow is the persisted shape: one JSONB document per session plus
// the columns the platform queries on. The document alone reconstructs the
// full engine state after a redeploy.
type sessionRow struct {
	ID        string `gorm:"primaryKey"`
	LeagueID  string `gorm:"index"`
	Type      string
	Status    string
	Phase     string
	State     json.RawMessage `gorm:"type:jsonb"`
	UpdatedAt time.Time
}

func (sessionRow) TableName() string { return "market_sessions" }

type Store struct {
	db *gorm.DB
}

func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&sessionRow{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Save(ctx context.Context, sess *market.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	row := sessionRow{
		ID:       sess.ID,
		LeagueID: sess.LeagueID,
		Type:     string(sess.Type),
		Status:   string(sess.Status),
		Phase:    string(sess.CurrentPhase),
		State:    raw,
	}
	return s.db.WithContext(ctx).Save(&row).Error
}

func (s *Store) Load(ctx context.Context, id string) (*market.Session, error) {
	var row sessionRow
	err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var sess market.Session
	if err := json.Unmarshal(row.State, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}
