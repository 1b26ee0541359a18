package service

import (
	"context"
	"strings"

	"github.com/kitucode/banking-service/internal/errs"
	"github.com/kitucode/banking-service/internal/models"
	"github.com/kitucode/banking-service/internal/pagination"
	"github.com/kitucode/banking-service/internal/repository"
	"github.com/sirupsen/logrus"
)

// CustomerRepository is the storage surface the customer service needs.
type CustomerRepository interface {
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	FindCustomerByID(ctx context.Context, id int64) (*models.Customer, error)
	FindCustomers(ctx context.Context, filter repository.CustomerFilter, p pagination.Pageable) (pagination.Page[models.Customer], error)
	UpdateCustomer(ctx context.Context, customer *models.Customer) (bool, error)
	DeleteCustomer(ctx context.Context, id int64) error
}

// CustomerService handles customer business logic
type CustomerService struct {
	repo CustomerRepository
	log  *logrus.Logger
}

// NewCustomerService initializes a new customer service
func NewCustomerService(repo CustomerRepository, log *logrus.Logger) *CustomerService {
	return &CustomerService{repo: repo, log: log}
}

// Save validates and persists a new customer.
func (s *CustomerService) Save(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	s.log.Debugf("Request to save customer: %+v", customer)

	if err := validateCustomer(customer); err != nil {
		return nil, err
	}

	customer.CreatedOn = models.Today()
	if err := s.repo.CreateCustomer(ctx, customer); err != nil {
		return nil, err
	}

	s.log.Infof("Customer created with id %d", customer.CustomerID)
	return customer, nil
}

// FindAll lists customers. The free-text name parameter is split on
// whitespace into up to three positional tokens (first, last, other
// name); tokens past the third are ignored.
func (s *CustomerService) FindAll(ctx context.Context, name string, startDate, endDate *models.Date, p pagination.Pageable) (pagination.Page[models.Customer], error) {
	filter := repository.CustomerFilter{
		StartDate: startDate,
		EndDate:   endDate,
	}

	tokens := strings.Fields(name)
	if len(tokens) > 0 {
		filter.FirstName = tokens[0]
	}
	if len(tokens) > 1 {
		filter.LastName = tokens[1]
	}
	if len(tokens) > 2 {
		filter.OtherName = tokens[2]
	}

	s.log.Debugf("Request to find customers with firstName: %q, lastName: %q, otherName: %q, startDate: %v, endDate: %v",
		filter.FirstName, filter.LastName, filter.OtherName, startDate, endDate)

	return s.repo.FindCustomers(ctx, filter, p)
}

// FindOne retrieves a customer by id.
func (s *CustomerService) FindOne(ctx context.Context, id int64) (*models.Customer, error) {
	s.log.Debugf("Request to find customer with id: %d", id)

	customer, err := s.repo.FindCustomerByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, errs.NotFoundf("Customer with id %d not found", id)
	}
	return customer, nil
}

// Update rewrites the mutable fields of an existing customer.
func (s *CustomerService) Update(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	s.log.Debugf("Request to update customer: %+v", customer)

	if customer.CustomerID == 0 {
		return nil, errs.Validationf("customer id is required")
	}
	if err := validateCustomer(customer); err != nil {
		return nil, err
	}

	now := models.Today()
	customer.UpdatedOn = &now
	updated, err := s.repo.UpdateCustomer(ctx, customer)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, errs.NotFoundf("Customer with id %d not found", customer.CustomerID)
	}

	return s.repo.FindCustomerByID(ctx, customer.CustomerID)
}

// Delete removes a customer by id without cascading to accounts.
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	s.log.Debugf("Request to delete customer with id: %d", id)
	return s.repo.DeleteCustomer(ctx, id)
}

func validateCustomer(customer *models.Customer) error {
	if customer.FirstName == "" {
		return errs.Validationf("customer first name is required")
	}
	if customer.LastName == "" {
		return errs.Validationf("customer last name is required")
	}
	return nil
}
