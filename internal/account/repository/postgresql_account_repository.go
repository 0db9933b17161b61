// Package repository provides data persistence implementations for account entities.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/restboard/restboard/internal/account/domain"
	"github.com/restboard/restboard/internal/database"

	apperrors "github.com/restboard/restboard/internal/errors"
)

// accountColumns is the select list shared by all account queries.
const accountColumns = "id, username, password, nickname, api_key, avatar_url, created_at, updated_at"

// PostgreSQLAccountRepository handles account persistence for PostgreSQL.
type PostgreSQLAccountRepository struct {
	db *sql.DB
}

// NewPostgreSQLAccountRepository creates a new PostgreSQLAccountRepository.
func NewPostgreSQLAccountRepository(db *sql.DB) *PostgreSQLAccountRepository {
	return &PostgreSQLAccountRepository{
		db: db,
	}
}

// Create inserts a new account and fills in its generated id.
func (r *PostgreSQLAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO accounts (username, password, nickname, api_key, avatar_url, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			  RETURNING id`

	err := querier.QueryRowContext(
		ctx, query,
		account.Username, account.Password, account.Nickname, account.APIKey, account.AvatarURL,
	).Scan(&account.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAccountAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create account")
	}
	return nil
}

// Update persists the mutable account fields.
func (r *PostgreSQLAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE accounts
			  SET nickname = $1, avatar_url = $2, api_key = $3, updated_at = NOW()
			  WHERE id = $4`

	result, err := querier.ExecContext(ctx, query, account.Nickname, account.AvatarURL, account.APIKey, account.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update account")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check account update result")
	}
	if rows == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// GetByID retrieves an account by id.
func (r *PostgreSQLAccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByUsername retrieves an account by its unique username.
func (r *PostgreSQLAccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1`
	return r.getOne(ctx, query, username)
}

// GetByAPIKey retrieves an account by its unique long-lived API key.
func (r *PostgreSQLAccountRepository) GetByAPIKey(ctx context.Context, apiKey string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE api_key = $1`
	return r.getOne(ctx, query, apiKey)
}

// Count returns the number of stored accounts.
func (r *PostgreSQLAccountRepository) Count(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	var count int64
	if err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count accounts")
	}
	return count, nil
}

// getOne runs a single-row account query.
func (r *PostgreSQLAccountRepository) getOne(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var account domain.Account
	querier := database.GetTx(ctx, r.db)

	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&account.ID,
		&account.Username,
		&account.Password,
		&account.Nickname,
		&account.APIKey,
		&account.AvatarURL,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get account")
	}

	return &account, nil
}

// isUniqueViolation checks if the error is a unique constraint violation.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint"
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint") ||
		strings.Contains(errMsg, "duplicate entry")
}
