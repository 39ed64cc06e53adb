package storage

import (
	"context"

	"burger-blog/pkg/models"

	"github.com/jmoiron/sqlx"
)

// ProfileStore persists the identity of signed-in users so comments can be
// joined against a display name and avatar.
type ProfileStore struct {
	db *sqlx.DB
}

func NewProfileStore(db *sqlx.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// Upsert creates or refreshes a profile row on sign-in.
func (s *ProfileStore) Upsert(ctx context.Context, profile models.Profile) error {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	_, err = conn.ExecContext(ctx,
		`INSERT INTO profiles (id, name, avatar_url)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, avatar_url = EXCLUDED.avatar_url`,
		profile.ID,
		profile.Name,
		profile.AvatarURL,
	)
	return err
}
