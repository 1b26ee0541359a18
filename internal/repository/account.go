package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kitucode/banking-service/internal/models"
	"github.com/kitucode/banking-service/internal/pagination"
)

// AccountFilter holds the optional exact-match constraints for account
// listing.
type AccountFilter struct {
	IBAN      string
	BicSwift  string
	AccountID int64
}

// CreateAccount creates a new account in the database
func (r *Repository) CreateAccount(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO tbl_accounts (iban, bic_swift, customer_id, created_on)
		VALUES ($1, $2, $3, $4)
		RETURNING account_id`
	err := r.db.QueryRowContext(ctx, query,
		account.IBAN, account.BicSwift, account.CustomerID, account.CreatedOn).
		Scan(&account.AccountID)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// AccountExistsByIBAN reports whether any account already carries the
// given IBAN.
func (r *Repository) AccountExistsByIBAN(ctx context.Context, iban string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS (SELECT 1 FROM tbl_accounts WHERE iban = $1)"
	if err := r.db.QueryRowContext(ctx, query, iban).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check iban existence: %w", err)
	}
	return exists, nil
}

// FindAccountByID retrieves an account by id, returning nil when absent.
func (r *Repository) FindAccountByID(ctx context.Context, id int64) (*models.Account, error) {
	account := &models.Account{}
	var updatedOn sql.NullTime
	query := `
		SELECT account_id, iban, bic_swift, customer_id, created_on, updated_on
		FROM tbl_accounts
		WHERE account_id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&account.AccountID,
		&account.IBAN,
		&account.BicSwift,
		&account.CustomerID,
		&account.CreatedOn,
		&updatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	account.UpdatedOn = datePtr(updatedOn)
	return account, nil
}

// FindAccounts lists accounts matching all provided filter fields.
func (r *Repository) FindAccounts(ctx context.Context, filter AccountFilter, p pagination.Pageable) (pagination.Page[models.Account], error) {
	page := pagination.Page[models.Account]{
		Content: []models.Account{},
		Number:  p.Page,
		Size:    p.Size,
	}

	f := &filterBuilder{}
	f.eqString("iban", filter.IBAN)
	f.eqString("bic_swift", filter.BicSwift)
	f.eqInt64("account_id", filter.AccountID)
	where := f.whereClause()

	countQuery := "SELECT COUNT(*) FROM tbl_accounts" + where
	if err := r.db.QueryRowContext(ctx, countQuery, f.args...).Scan(&page.TotalElements); err != nil {
		return page, fmt.Errorf("failed to count accounts: %w", err)
	}

	query := `
		SELECT account_id, iban, bic_swift, customer_id, created_on, updated_on
		FROM tbl_accounts` + where +
		" ORDER BY account_id LIMIT " + f.bind(p.Size) + " OFFSET " + f.bind(p.Offset())
	rows, err := r.db.QueryContext(ctx, query, f.args...)
	if err != nil {
		return page, fmt.Errorf("failed to find accounts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var account models.Account
		var updatedOn sql.NullTime
		if err := rows.Scan(
			&account.AccountID,
			&account.IBAN,
			&account.BicSwift,
			&account.CustomerID,
			&account.CreatedOn,
			&updatedOn,
		); err != nil {
			return page, fmt.Errorf("failed to scan account: %w", err)
		}
		account.UpdatedOn = datePtr(updatedOn)
		page.Content = append(page.Content, account)
	}
	if err := rows.Err(); err != nil {
		return page, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return page, nil
}

// DeleteAccount removes an account by id without cascading to cards.
func (r *Repository) DeleteAccount(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM tbl_accounts WHERE account_id = $1", id); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}
