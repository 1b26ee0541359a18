package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kitucode/banking-service/internal/models"
	"github.com/kitucode/banking-service/internal/pagination"
)

// CustomerFilter holds the optional exact-match and date-range
// constraints for customer listing.
type CustomerFilter struct {
	FirstName string
	LastName  string
	OtherName string
	StartDate *models.Date
	EndDate   *models.Date
}

// CreateCustomer creates a new customer in the database
func (r *Repository) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	query := `
		INSERT INTO tbl_customers (first_name, last_name, other_name, created_on)
		VALUES ($1, $2, $3, $4)
		RETURNING customer_id`
	err := r.db.QueryRowContext(ctx, query,
		customer.FirstName, customer.LastName, customer.OtherName, customer.CreatedOn).
		Scan(&customer.CustomerID)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

// FindCustomerByID retrieves a customer by id, returning nil when absent.
func (r *Repository) FindCustomerByID(ctx context.Context, id int64) (*models.Customer, error) {
	customer := &models.Customer{}
	var updatedOn sql.NullTime
	query := `
		SELECT customer_id, first_name, last_name, other_name, created_on, updated_on
		FROM tbl_customers
		WHERE customer_id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&customer.CustomerID,
		&customer.FirstName,
		&customer.LastName,
		&customer.OtherName,
		&customer.CreatedOn,
		&updatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	customer.UpdatedOn = datePtr(updatedOn)
	return customer, nil
}

// FindCustomers lists customers matching all provided filter fields.
func (r *Repository) FindCustomers(ctx context.Context, filter CustomerFilter, p pagination.Pageable) (pagination.Page[models.Customer], error) {
	page := pagination.Page[models.Customer]{
		Content: []models.Customer{},
		Number:  p.Page,
		Size:    p.Size,
	}

	f := &filterBuilder{}
	f.eqString("first_name", filter.FirstName)
	f.eqString("last_name", filter.LastName)
	f.eqString("other_name", filter.OtherName)
	f.dateRange("created_on", filter.StartDate, filter.EndDate)
	where := f.whereClause()

	countQuery := "SELECT COUNT(*) FROM tbl_customers" + where
	if err := r.db.QueryRowContext(ctx, countQuery, f.args...).Scan(&page.TotalElements); err != nil {
		return page, fmt.Errorf("failed to count customers: %w", err)
	}

	query := `
		SELECT customer_id, first_name, last_name, other_name, created_on, updated_on
		FROM tbl_customers` + where +
		" ORDER BY customer_id LIMIT " + f.bind(p.Size) + " OFFSET " + f.bind(p.Offset())
	rows, err := r.db.QueryContext(ctx, query, f.args...)
	if err != nil {
		return page, fmt.Errorf("failed to find customers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var customer models.Customer
		var updatedOn sql.NullTime
		if err := rows.Scan(
			&customer.CustomerID,
			&customer.FirstName,
			&customer.LastName,
			&customer.OtherName,
			&customer.CreatedOn,
			&updatedOn,
		); err != nil {
			return page, fmt.Errorf("failed to scan customer: %w", err)
		}
		customer.UpdatedOn = datePtr(updatedOn)
		page.Content = append(page.Content, customer)
	}
	if err := rows.Err(); err != nil {
		return page, fmt.Errorf("failed to iterate customers: %w", err)
	}

	return page, nil
}

// UpdateCustomer rewrites the mutable customer fields, reporting whether
// a row was actually updated.
func (r *Repository) UpdateCustomer(ctx context.Context, customer *models.Customer) (bool, error) {
	query := `
		UPDATE tbl_customers
		SET first_name = $1, last_name = $2, other_name = $3, updated_on = $4
		WHERE customer_id = $5`
	res, err := r.db.ExecContext(ctx, query,
		customer.FirstName, customer.LastName, customer.OtherName, customer.UpdatedOn, customer.CustomerID)
	if err != nil {
		return false, fmt.Errorf("failed to update customer: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to update customer: %w", err)
	}
	return affected > 0, nil
}

// DeleteCustomer removes a customer by id. Deleting an absent id is not
// an error.
func (r *Repository) DeleteCustomer(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM tbl_customers WHERE customer_id = $1", id); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}
