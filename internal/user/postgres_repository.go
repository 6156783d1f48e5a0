package user

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/ulavalmarket/marketplace-api/internal/apperrors"
	"github.com/ulavalmarket/marketplace-api/internal/database"
)

// PostgresRepository persists users in the users table through Bun.
type PostgresRepository struct {
	db *bun.DB
}

func NewPostgresRepository(db *bun.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByID(ctx context.Context, userID string) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Where("user_id = ?", userID).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, apperrors.NewDatabaseError("user find by id", err)
	}

	return mapDBUserToEntity(dbUser), nil
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Where("lower(email) = ?", strings.ToLower(email)).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, apperrors.NewDatabaseError("user find by email", err)
	}

	return mapDBUserToEntity(dbUser), nil
}

func (r *PostgresRepository) FindByIDUL(ctx context.Context, idul string) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Where("idul = ?", idul).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, apperrors.NewDatabaseError("user find by idul", err)
	}

	return mapDBUserToEntity(dbUser), nil
}

// Save upserts by existence check: the row is inserted when the user id
// is unknown and updated otherwise, inside one transaction so a failed
// write leaves prior state unchanged. The unique index on email turns
// concurrent duplicate registrations into ErrDuplicateEmail.
func (r *PostgresRepository) Save(ctx context.Context, u *User) error {
	err := r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*database.User)(nil)).
			Where("user_id = ?", u.UserID).
			Exists(ctx)
		if err != nil {
			return err
		}

		if !exists {
			dbUser := &database.User{
				UserID:       u.UserID,
				IDUL:         u.IDUL,
				Email:        u.Email,
				PasswordHash: u.PasswordHash,
				IsVerified:   u.IsVerified,
				IsActive:     u.IsActive,
			}
			_, err = tx.NewInsert().Model(dbUser).Exec(ctx)
			return err
		}

		_, err = tx.NewUpdate().
			Model((*database.User)(nil)).
			Set("idul = ?", u.IDUL).
			Set("email = ?", u.Email).
			Set("password_hash = ?", u.PasswordHash).
			Set("is_verified = ?", u.IsVerified).
			Set("is_active = ?", u.IsActive).
			Set("updated_at = ?", time.Now()).
			Where("user_id = ?", u.UserID).
			Exec(ctx)
		return err
	})

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return ErrDuplicateEmail
		}
		return apperrors.NewDatabaseError("user save", err)
	}

	return nil
}

func (r *PostgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*database.User)(nil)).
		Where("lower(email) = ?", strings.ToLower(email)).
		Exists(ctx)
	if err != nil {
		return false, apperrors.NewDatabaseError("user exists by email", err)
	}

	return exists, nil
}

func mapDBUserToEntity(dbu *database.User) *User {
	return &User{
		UserID:       dbu.UserID,
		IDUL:         dbu.IDUL,
		Email:        dbu.Email,
		PasswordHash: dbu.PasswordHash,
		IsVerified:   dbu.IsVerified,
		IsActive:     dbu.IsActive,
	}
}
