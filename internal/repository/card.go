package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kitucode/banking-service/internal/models"
	"github.com/kitucode/banking-service/internal/pagination"
)

// CardFilter holds the optional exact-match constraints for card listing.
type CardFilter struct {
	CardAlias string
	CardType  models.CardType
	PAN       string
}

// CreateCard creates a new card in the database
func (r *Repository) CreateCard(ctx context.Context, card *models.Card) error {
	query := `
		INSERT INTO tbl_cards (card_alias, account_id, card_type, pan, cvv, created_on)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING card_id`
	err := r.db.QueryRowContext(ctx, query,
		card.CardAlias, card.AccountID, string(card.CardType), card.PAN, card.CVV, card.CreatedOn).
		Scan(&card.CardID)
	if err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}
	return nil
}

// FindCardByID retrieves a card by id, returning nil when absent.
func (r *Repository) FindCardByID(ctx context.Context, id int64) (*models.Card, error) {
	query := `
		SELECT card_id, card_alias, account_id, card_type, pan, cvv, created_on, updated_on
		FROM tbl_cards
		WHERE card_id = $1`
	return r.scanCard(r.db.QueryRowContext(ctx, query, id))
}

// FindCardByTypeAndAccount retrieves the card of the given type on the
// given account, returning nil when none exists.
func (r *Repository) FindCardByTypeAndAccount(ctx context.Context, cardType models.CardType, accountID int64) (*models.Card, error) {
	query := `
		SELECT card_id, card_alias, account_id, card_type, pan, cvv, created_on, updated_on
		FROM tbl_cards
		WHERE card_type = $1 AND account_id = $2`
	return r.scanCard(r.db.QueryRowContext(ctx, query, string(cardType), accountID))
}

// CountCardsByAccount counts all cards issued against an account
// regardless of type.
func (r *Repository) CountCardsByAccount(ctx context.Context, accountID int64) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM tbl_cards WHERE account_id = $1"
	if err := r.db.QueryRowContext(ctx, query, accountID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cards: %w", err)
	}
	return count, nil
}

// CardExistsByPAN reports whether any card already carries the given PAN.
func (r *Repository) CardExistsByPAN(ctx context.Context, pan string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS (SELECT 1 FROM tbl_cards WHERE pan = $1)"
	if err := r.db.QueryRowContext(ctx, query, pan).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check pan existence: %w", err)
	}
	return exists, nil
}

// FindCards lists cards matching all provided filter fields.
func (r *Repository) FindCards(ctx context.Context, filter CardFilter, p pagination.Pageable) (pagination.Page[models.Card], error) {
	page := pagination.Page[models.Card]{
		Content: []models.Card{},
		Number:  p.Page,
		Size:    p.Size,
	}

	f := &filterBuilder{}
	f.eqString("card_alias", filter.CardAlias)
	f.eqString("card_type", string(filter.CardType))
	f.eqString("pan", filter.PAN)
	where := f.whereClause()

	countQuery := "SELECT COUNT(*) FROM tbl_cards" + where
	if err := r.db.QueryRowContext(ctx, countQuery, f.args...).Scan(&page.TotalElements); err != nil {
		return page, fmt.Errorf("failed to count cards: %w", err)
	}

	query := `
		SELECT card_id, card_alias, account_id, card_type, pan, cvv, created_on, updated_on
		FROM tbl_cards` + where +
		" ORDER BY card_id LIMIT " + f.bind(p.Size) + " OFFSET " + f.bind(p.Offset())
	rows, err := r.db.QueryContext(ctx, query, f.args...)
	if err != nil {
		return page, fmt.Errorf("failed to find cards: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var card models.Card
		var updatedOn sql.NullTime
		if err := rows.Scan(
			&card.CardID,
			&card.CardAlias,
			&card.AccountID,
			&card.CardType,
			&card.PAN,
			&card.CVV,
			&card.CreatedOn,
			&updatedOn,
		); err != nil {
			return page, fmt.Errorf("failed to scan card: %w", err)
		}
		card.UpdatedOn = datePtr(updatedOn)
		page.Content = append(page.Content, card)
	}
	if err := rows.Err(); err != nil {
		return page, fmt.Errorf("failed to iterate cards: %w", err)
	}

	return page, nil
}

// UpdateCardAlias updates the only mutable card field, reporting whether
// a row was actually updated.
func (r *Repository) UpdateCardAlias(ctx context.Context, cardID int64, alias string, updatedOn models.Date) (bool, error) {
	query := "UPDATE tbl_cards SET card_alias = $1, updated_on = $2 WHERE card_id = $3"
	res, err := r.db.ExecContext(ctx, query, alias, updatedOn, cardID)
	if err != nil {
		return false, fmt.Errorf("failed to update card: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to update card: %w", err)
	}
	return affected > 0, nil
}

// DeleteCard removes a card by id.
func (r *Repository) DeleteCard(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM tbl_cards WHERE card_id = $1", id); err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	return nil
}

func (r *Repository) scanCard(row *sql.Row) (*models.Card, error) {
	card := &models.Card{}
	var updatedOn sql.NullTime
	err := row.Scan(
		&card.CardID,
		&card.CardAlias,
		&card.AccountID,
		&card.CardType,
		&card.PAN,
		&card.CVV,
		&card.CreatedOn,
		&updatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan card: %w", err)
	}
	card.UpdatedOn = datePtr(updatedOn)
	return card, nil
}
