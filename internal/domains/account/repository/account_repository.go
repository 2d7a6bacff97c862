package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bookstore-api/internal/domains/account"
	"bookstore-api/internal/domains/account/model"
	"bookstore-api/pkg/database"
)

// sqlRepository là implementation của account.Repository trên database.DB
type sqlRepository struct {
	db     database.DB
	hasher account.PasswordHasher
	now    func() time.Time
}

func NewSQLRepository(db database.DB, hasher account.PasswordHasher) account.Repository {
	return &sqlRepository{
		db:     db,
		hasher: hasher,
		now:    time.Now,
	}
}

// ph returns the n-th placeholder for the current driver
func (r *sqlRepository) ph(n int) string {
	return r.db.Dialect().Placeholder(n)
}

func (r *sqlRepository) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	query := fmt.Sprintf(`
		SELECT id, email, password_hash, created_at
		FROM accounts
		WHERE email = %s`, r.ph(1))

	var a model.Account
	err := r.db.QueryRow(ctx, query, model.NormalizeEmail(email)).
		Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, database.ErrNoRows) {
		return nil, model.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find account by email: %w", err)
	}

	roles, err := r.ListRoles(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	a.Roles = roles
	return &a, nil
}

func (r *sqlRepository) Create(ctx context.Context, email, rawPassword string) (*model.Account, error) {
	hash, err := r.hasher.Hash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	a := &model.Account{
		ID:           uuid.NewString(),
		Email:        model.NormalizeEmail(email),
		PasswordHash: hash,
		Roles:        []model.Role{},
		CreatedAt:    r.now().UTC(),
	}

	query := fmt.Sprintf(`
		INSERT INTO accounts (id, email, password_hash, created_at)
		VALUES (%s, %s, %s, %s)`, r.ph(1), r.ph(2), r.ph(3), r.ph(4))

	if _, err := r.db.Exec(ctx, query, a.ID, a.Email, a.PasswordHash, a.CreatedAt); err != nil {
		if errors.Is(err, database.ErrUniqueViolation) {
			return nil, model.ErrDuplicateAccount
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return a, nil
}

func (r *sqlRepository) ListRoles(ctx context.Context, accountID string) ([]model.Role, error) {
	query := fmt.Sprintf(`
		SELECT role FROM account_roles
		WHERE account_id = %s
		ORDER BY role`, r.ph(1))

	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	roles := make([]model.Role, 0, 2)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, model.Role(name))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}

// AssignRoles grants every role in one transaction
func (r *sqlRepository) AssignRoles(ctx context.Context, accountID string, roles ...model.Role) error {
	if len(roles) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO account_roles (account_id, role)
		VALUES (%s, %s)
		ON CONFLICT DO NOTHING`, r.ph(1), r.ph(2))

	err := r.db.InTx(ctx, func(q database.Querier) error {
		for _, role := range roles {
			if _, err := model.ParseRole(string(role)); err != nil {
				return err
			}
			if _, err := q.Exec(ctx, query, accountID, string(role)); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, database.ErrForeignKeyViolation) {
		return model.ErrAccountNotFound
	}
	if err != nil {
		return fmt.Errorf("assign roles: %w", err)
	}
	return nil
}
