package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ahsasnagar11/typeshit3/internal/domain/model"
)

type MatchRepo struct {
	pool *pgxpool.Pool
}

func NewMatchRepo(pool *pgxpool.Pool) *MatchRepo {
	return &MatchRepo{pool: pool}
}

// CreateEdge inserts the normalized match row for the pair. The pair is
// ordered so one row covers both directions; repeated calls are
// idempotent.
func (r *MatchRepo) CreateEdge(ctx context.Context, tx pgx.Tx, userID, targetID string) (bool, error) {
	if tx == nil {
		return false, fmt.Errorf("transaction is required")
	}
	if userID == "" || targetID == "" || userID == targetID {
		return false, fmt.Errorf("invalid match payload")
	}

	userA, userB := orderPair(userID, targetID)

	var one int
	err := tx.QueryRow(ctx, `
INSERT INTO matches (
	user_a_id,
	user_b_id,
	created_at
) VALUES ($1, $2, NOW())
ON CONFLICT (user_a_id, user_b_id) DO NOTHING
RETURNING 1
`, userA, userB).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("create match: %w", err)
	}

	return true, nil
}

func (r *MatchRepo) ListMatchedProfiles(ctx context.Context, userID string) ([]model.PublicProfile, error) {
	if r.pool == nil {
		return []model.PublicProfile{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	u.id,
	COALESCE(u.full_name, ''),
	COALESCE(u.profile_photos, '{}'),
	COALESCE(u.introduction, ''),
	COALESCE(u.gender, ''),
	COALESCE(u.date_of_birth, ''),
	COALESCE(u.orientation, '')
FROM matches m
JOIN users u ON u.id = CASE WHEN m.user_a_id = $1 THEN m.user_b_id ELSE m.user_a_id END
WHERE m.user_a_id = $1 OR m.user_b_id = $1
ORDER BY m.created_at DESC
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list matched profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]model.PublicProfile, 0, 16)
	for rows.Next() {
		var p model.PublicProfile
		if err := rows.Scan(
			&p.ID,
			&p.FullName,
			&p.ProfilePhotos,
			&p.Introduction,
			&p.Gender,
			&p.DateOfBirth,
			&p.Orientation,
		); err != nil {
			return nil, fmt.Errorf("scan matched profile: %w", err)
		}
		profiles = append(profiles, p)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate matched profiles: %w", rows.Err())
	}

	return profiles, nil
}

func orderPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}
