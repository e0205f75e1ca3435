package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ahsasnagar11/typeshit3/internal/domain/model"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

const uniqueViolationCode = "23505"

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// UserUpdate carries a partial profile update. Nil fields are left
// untouched.
type UserUpdate struct {
	FullName          *string
	DateOfBirth       *string
	Gender            *string
	Orientation       *string
	DatingPreferences *[]string
	Location          *string
	Introduction      *string
	Photos            *[]string
	ProfilePhotos     *[]string
}

func (r *UserRepo) Create(ctx context.Context, user model.User) (model.User, error) {
	if r.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(user.ID) == "" || strings.TrimSpace(user.Email) == "" {
		return model.User{}, fmt.Errorf("invalid user payload")
	}

	err := r.pool.QueryRow(ctx, `
INSERT INTO users (
	id,
	full_name,
	email,
	date_of_birth,
	gender,
	orientation,
	dating_preferences,
	location,
	introduction,
	photos,
	profile_photos,
	created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
RETURNING created_at
`,
		user.ID,
		user.FullName,
		strings.ToLower(strings.TrimSpace(user.Email)),
		user.DateOfBirth,
		user.Gender,
		user.Orientation,
		user.DatingPreferences,
		user.Location,
		user.Introduction,
		user.Photos,
		user.ProfilePhotos,
	).Scan(&user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return model.User{}, ErrEmailTaken
		}
		return model.User{}, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

func (r *UserRepo) GetByID(ctx context.Context, userID string) (model.User, error) {
	if r.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}

	user, err := scanUser(r.pool.QueryRow(ctx, selectUserColumns+`
FROM users
WHERE id = $1
`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("find user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	if r.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}

	user, err := scanUser(r.pool.QueryRow(ctx, selectUserColumns+`
FROM users
WHERE email = $1
`, strings.ToLower(strings.TrimSpace(email))))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("find user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepo) Update(ctx context.Context, userID string, update UserUpdate) (model.User, error) {
	if r.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}

	user, err := scanUser(r.pool.QueryRow(ctx, `
UPDATE users SET
	full_name = COALESCE($2, full_name),
	date_of_birth = COALESCE($3, date_of_birth),
	gender = COALESCE($4, gender),
	orientation = COALESCE($5, orientation),
	dating_preferences = COALESCE($6, dating_preferences),
	location = COALESCE($7, location),
	introduction = COALESCE($8, introduction),
	photos = COALESCE($9, photos),
	profile_photos = COALESCE($10, profile_photos)
WHERE id = $1
RETURNING id, full_name, email, date_of_birth, gender, orientation,
	dating_preferences, location, introduction, photos, profile_photos, created_at
`,
		userID,
		update.FullName,
		update.DateOfBirth,
		update.Gender,
		update.Orientation,
		update.DatingPreferences,
		update.Location,
		update.Introduction,
		update.Photos,
		update.ProfilePhotos,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("update user: %w", err)
	}

	return user, nil
}

func (r *UserRepo) AppendProfilePhoto(ctx context.Context, userID, url string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(url) == "" {
		return fmt.Errorf("photo url is required")
	}

	result, err := r.pool.Exec(ctx, `
UPDATE users
SET profile_photos = array_append(profile_photos, $2)
WHERE id = $1
`, userID, url)
	if err != nil {
		return fmt.Errorf("append profile photo: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *UserRepo) Exists(ctx context.Context, userID string) (bool, error) {
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}

	var one int
	err := r.pool.QueryRow(ctx, `
SELECT 1
FROM users
WHERE id = $1
`, userID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lookup user: %w", err)
	}

	return true, nil
}

func (r *UserRepo) ExistsTx(ctx context.Context, tx pgx.Tx, userID string) (bool, error) {
	if tx == nil {
		return false, fmt.Errorf("transaction is required")
	}

	var one int
	err := tx.QueryRow(ctx, `
SELECT 1
FROM users
WHERE id = $1
`, userID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lookup user in tx: %w", err)
	}

	return true, nil
}

// ListCandidates returns every user except the given one. A flat
// exclude-self scan: no preference, block-list or distance filtering.
func (r *UserRepo) ListCandidates(ctx context.Context, excludeUserID string) ([]model.User, error) {
	if r.pool == nil {
		return []model.User{}, nil
	}

	rows, err := r.pool.Query(ctx, selectUserColumns+`
FROM users
WHERE id <> $1
ORDER BY created_at DESC
`, excludeUserID)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0, 64)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		users = append(users, user)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate candidates: %w", rows.Err())
	}

	return users, nil
}

const selectUserColumns = `
SELECT id, full_name, email, date_of_birth, gender, orientation,
	dating_preferences, location, introduction, photos, profile_photos, created_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.DateOfBirth,
		&user.Gender,
		&user.Orientation,
		&user.DatingPreferences,
		&user.Location,
		&user.Introduction,
		&user.Photos,
		&user.ProfilePhotos,
		&user.CreatedAt,
	)
	return user, err
}
