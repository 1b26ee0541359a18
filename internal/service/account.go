package service

import (
	"context"
	"fmt"

	"github.com/kitucode/banking-service/internal/config"
	"github.com/kitucode/banking-service/internal/errs"
	"github.com/kitucode/banking-service/internal/models"
	"github.com/kitucode/banking-service/internal/pagination"
	"github.com/kitucode/banking-service/internal/repository"
	"github.com/kitucode/banking-service/internal/utils"
	"github.com/sirupsen/logrus"
)

// maxGenerateAttempts bounds the identifier generation loops. Collisions
// on a 10- or 16-digit random space are vanishingly rare, so exhausting
// the bound indicates something badly wrong rather than bad luck.
const maxGenerateAttempts = 10

// AccountRepository is the storage surface the account service needs.
type AccountRepository interface {
	CreateAccount(ctx context.Context, account *models.Account) error
	AccountExistsByIBAN(ctx context.Context, iban string) (bool, error)
	FindAccountByID(ctx context.Context, id int64) (*models.Account, error)
	FindAccounts(ctx context.Context, filter repository.AccountFilter, p pagination.Pageable) (pagination.Page[models.Account], error)
	DeleteAccount(ctx context.Context, id int64) error
}

// CustomerLookup is the slice of the customer repository the account
// service needs for referential validation.
type CustomerLookup interface {
	FindCustomerByID(ctx context.Context, id int64) (*models.Customer, error)
}

// Notifier delivers best-effort back-office notifications. Failures are
// logged and never fail the request.
type Notifier interface {
	AccountOpened(account *models.Account) error
	CardIssued(card *models.Card) error
}

// AccountService handles account business logic
type AccountService struct {
	repo      AccountRepository
	customers CustomerLookup
	cfg       *config.Config
	log       *logrus.Logger
	notifier  Notifier
}

// NewAccountService initializes a new account service. notifier may be
// nil when notifications are disabled.
func NewAccountService(repo AccountRepository, customers CustomerLookup, cfg *config.Config, log *logrus.Logger, notifier Notifier) *AccountService {
	return &AccountService{repo: repo, customers: customers, cfg: cfg, log: log, notifier: notifier}
}

// Save opens a new account for an existing customer. The IBAN is
// generated from the bank prefix, the branch code and a random 10-digit
// suffix, retried until unique.
func (s *AccountService) Save(ctx context.Context, customerID int64, branchCode string) (*models.Account, error) {
	s.log.Debugf("Request to save account for customer %d, branch %q", customerID, branchCode)

	customer, err := s.customers.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, errs.Validationf("Customer with the specified id : %d does not exist", customerID)
	}

	if branchCode == "" {
		return nil, errs.Validationf("Branch code cannot be null or empty")
	}

	account := &models.Account{
		BicSwift:   s.generateBicSwift(branchCode),
		CustomerID: customerID,
		CreatedOn:  models.Today(),
	}

	for attempt := 1; attempt <= maxGenerateAttempts; attempt++ {
		suffix, err := utils.GenerateAccountNumber()
		if err != nil {
			return nil, err
		}
		iban := s.cfg.IBANPrefix + branchCode + suffix

		exists, err := s.repo.AccountExistsByIBAN(ctx, iban)
		if err != nil {
			return nil, err
		}
		if exists {
			s.log.Debugf("Generated iban %s already exists, regenerating (attempt %d)", iban, attempt)
			continue
		}

		account.IBAN = iban
		err = s.repo.CreateAccount(ctx, account)
		if repository.IsUniqueViolation(err) {
			// lost the check-then-insert race, same as a pre-check collision
			s.log.Debugf("Insert of iban %s hit a unique violation, regenerating (attempt %d)", iban, attempt)
			continue
		}
		if err != nil {
			return nil, err
		}

		s.log.Infof("Account %d created with iban %s for customer %d", account.AccountID, account.IBAN, customerID)
		s.notifyOpened(account)
		return account, nil
	}

	return nil, fmt.Errorf("could not generate a unique iban after %d attempts", maxGenerateAttempts)
}

// FindAll lists accounts matching the provided filter fields.
func (s *AccountService) FindAll(ctx context.Context, filter repository.AccountFilter, p pagination.Pageable) (pagination.Page[models.Account], error) {
	s.log.Debugf("Request to find accounts by iban: %q, bicSwift: %q, accountId: %d", filter.IBAN, filter.BicSwift, filter.AccountID)
	return s.repo.FindAccounts(ctx, filter, p)
}

// FindByID retrieves an account by id.
func (s *AccountService) FindByID(ctx context.Context, id int64) (*models.Account, error) {
	s.log.Debugf("Request to find account by id: %d", id)

	account, err := s.repo.FindAccountByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, errs.NotFoundf("Account with id: %d does not exist", id)
	}
	return account, nil
}

// Delete removes an account by id without cascading to cards.
func (s *AccountService) Delete(ctx context.Context, id int64) error {
	s.log.Debugf("Request to delete account by id : %d", id)
	return s.repo.DeleteAccount(ctx, id)
}

func (s *AccountService) generateBicSwift(branchCode string) string {
	return s.cfg.IBANPrefix + branchCode
}

func (s *AccountService) notifyOpened(account *models.Account) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.AccountOpened(account); err != nil {
		s.log.Errorf("Failed to send account-opened notification for account %d: %v", account.AccountID, err)
	}
}
