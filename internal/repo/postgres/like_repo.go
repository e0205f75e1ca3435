package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LikeRepo struct {
	pool *pgxpool.Pool
}

func NewLikeRepo(pool *pgxpool.Pool) *LikeRepo {
	return &LikeRepo{pool: pool}
}

// ReceivedLikeRecord is a received-like row joined with the liking
// user's public profile fields.
type ReceivedLikeRecord struct {
	FromUserID    string
	Image         string
	Comment       string
	CreatedAt     time.Time
	FullName      string
	ProfilePhotos []string
	Introduction  string
	Gender        string
	DateOfBirth   string
	Orientation   string
}

func (r *LikeRepo) InsertReceived(ctx context.Context, tx pgx.Tx, recipientID, fromUserID, image, comment string) error {
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}
	if recipientID == "" || fromUserID == "" {
		return fmt.Errorf("invalid received like payload")
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO received_likes (
	user_id,
	from_user_id,
	image,
	comment,
	created_at
) VALUES ($1, $2, $3, $4, NOW())
`, recipientID, fromUserID, image, comment); err != nil {
		return fmt.Errorf("insert received like: %w", err)
	}

	return nil
}

func (r *LikeRepo) InsertOutbound(ctx context.Context, tx pgx.Tx, userID, likedUserID string) error {
	if tx == nil {
		return fmt.Errorf("transaction is required")
	}
	if userID == "" || likedUserID == "" {
		return fmt.Errorf("invalid outbound like payload")
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO liked_profiles (
	user_id,
	liked_user_id,
	created_at
) VALUES ($1, $2, NOW())
ON CONFLICT (user_id, liked_user_id) DO NOTHING
`, userID, likedUserID); err != nil {
		return fmt.Errorf("insert outbound like: %w", err)
	}

	return nil
}

func (r *LikeRepo) ListReceivedWithProfiles(ctx context.Context, userID string) ([]ReceivedLikeRecord, error) {
	if r.pool == nil {
		return []ReceivedLikeRecord{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	rl.from_user_id,
	rl.image,
	COALESCE(rl.comment, ''),
	rl.created_at,
	COALESCE(u.full_name, ''),
	COALESCE(u.profile_photos, '{}'),
	COALESCE(u.introduction, ''),
	COALESCE(u.gender, ''),
	COALESCE(u.date_of_birth, ''),
	COALESCE(u.orientation, '')
FROM received_likes rl
JOIN users u ON u.id = rl.from_user_id
WHERE rl.user_id = $1
ORDER BY rl.created_at ASC, rl.id ASC
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list received likes: %w", err)
	}
	defer rows.Close()

	records := make([]ReceivedLikeRecord, 0, 16)
	for rows.Next() {
		var rec ReceivedLikeRecord
		if err := rows.Scan(
			&rec.FromUserID,
			&rec.Image,
			&rec.Comment,
			&rec.CreatedAt,
			&rec.FullName,
			&rec.ProfilePhotos,
			&rec.Introduction,
			&rec.Gender,
			&rec.DateOfBirth,
			&rec.Orientation,
		); err != nil {
			return nil, fmt.Errorf("scan received like: %w", err)
		}
		records = append(records, rec)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate received likes: %w", rows.Err())
	}

	return records, nil
}

// DeleteReceived removes the received-like entries on userID that were
// sent by fromUserID. Called when a match is created or declined.
func (r *LikeRepo) DeleteReceived(ctx context.Context, tx pgx.Tx, userID, fromUserID string) (bool, error) {
	if tx == nil {
		return false, fmt.Errorf("transaction is required")
	}
	if userID == "" || fromUserID == "" {
		return false, fmt.Errorf("invalid received like delete payload")
	}

	result, err := tx.Exec(ctx, `
DELETE FROM received_likes
WHERE user_id = $1 AND from_user_id = $2
`, userID, fromUserID)
	if err != nil {
		return false, fmt.Errorf("delete received like: %w", err)
	}

	return result.RowsAffected() > 0, nil
}
