package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"eduvid/internal/domain"
	"eduvid/internal/sqlinline"
)

// CreatorRepositoryPG resolves creator records for authenticated users.
type CreatorRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewCreatorRepository constructs a new creator repository instance.
func NewCreatorRepository(pool *pgxpool.Pool) *CreatorRepositoryPG {
	return &CreatorRepositoryPG{pool: pool}
}

// GetOrCreateByUserID returns the creator owned by the user, lazily creating
// one on first use. The pipeline only ever sees the resulting creator ID.
func (r *CreatorRepositoryPG) GetOrCreateByUserID(ctx context.Context, userID, username string) (*domain.Creator, error) {
	creator, err := r.getByUserID(ctx, userID)
	if err == nil {
		return creator, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	name := username
	if name == "" {
		name = "AI Content Creator"
		username = fmt.Sprintf("ai_creator_%s", userID)
	}
	creator = &domain.Creator{
		ID:       uuid.NewString(),
		UserID:   userID,
		Name:     name,
		Username: username,
		Bio:      "AI-powered educational content creator",
		Verified: true,
	}
	row := r.pool.QueryRow(ctx, sqlinline.QUpsertCreator,
		creator.ID, creator.UserID, creator.Name, creator.Username,
		creator.Bio, creator.AvatarURL, creator.Verified,
	)
	if err := row.Scan(&creator.ID, &creator.CreatedAt); err != nil {
		return nil, err
	}
	return creator, nil
}

func (r *CreatorRepositoryPG) getByUserID(ctx context.Context, userID string) (*domain.Creator, error) {
	var c domain.Creator
	row := r.pool.QueryRow(ctx, sqlinline.QGetCreatorByUserID, userID)
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Username, &c.Bio, &c.AvatarURL, &c.Verified, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
