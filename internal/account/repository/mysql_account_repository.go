package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/restboard/restboard/internal/account/domain"
	"github.com/restboard/restboard/internal/database"

	apperrors "github.com/restboard/restboard/internal/errors"
)

// MySQLAccountRepository handles account persistence for MySQL.
type MySQLAccountRepository struct {
	db *sql.DB
}

// NewMySQLAccountRepository creates a new MySQLAccountRepository.
func NewMySQLAccountRepository(db *sql.DB) *MySQLAccountRepository {
	return &MySQLAccountRepository{
		db: db,
	}
}

// Create inserts a new account and fills in its generated id.
func (r *MySQLAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO accounts (username, password, nickname, api_key, avatar_url, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, NOW(), NOW())`

	result, err := querier.ExecContext(
		ctx, query,
		account.Username, account.Password, account.Nickname, account.APIKey, account.AvatarURL,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAccountAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create account")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to read generated account id")
	}
	account.ID = id
	return nil
}

// Update persists the mutable account fields.
func (r *MySQLAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE accounts
			  SET nickname = ?, avatar_url = ?, api_key = ?, updated_at = NOW()
			  WHERE id = ?`

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
func (r *MySQLAccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = ?`
	return r.getOne(ctx, query, id)
}

// GetByUsername retrieves an account by its unique username.
func (r *MySQLAccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username = ?`
	return r.getOne(ctx, query, username)
}

// GetByAPIKey retrieves an account by its unique long-lived API key.
func (r *MySQLAccountRepository) GetByAPIKey(ctx context.Context, apiKey string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE api_key = ?`
	return r.getOne(ctx, query, apiKey)
}

// Count returns the number of stored accounts.
func (r *MySQLAccountRepository) Count(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	var count int64
	if err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count accounts")
	}
	return count, nil
}

// getOne runs a single-row account query.
func (r *MySQLAccountRepository) getOne(ctx context.Context, query string, arg any) (*domain.Account, error) {
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
