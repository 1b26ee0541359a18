package service

import (
	"context"
	"sort"

	"github.com/kitucode/banking-service/internal/models"
	"github.com/kitucode/banking-service/internal/pagination"
	"github.com/kitucode/banking-service/internal/repository"
	"github.com/lib/pq"
)

// uniqueViolation mimics the error the postgres driver surfaces when an
// insert loses a uniqueness race.
func uniqueViolation() error {
	return &pq.Error{Code: "23505"}
}

type fakeCustomerRepo struct {
	seq   int64
	items map[int64]models.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{items: map[int64]models.Customer{}}
}

func (f *fakeCustomerRepo) CreateCustomer(_ context.Context, customer *models.Customer) error {
	f.seq++
	customer.CustomerID = f.seq
	f.items[f.seq] = *customer
	return nil
}

func (f *fakeCustomerRepo) FindCustomerByID(_ context.Context, id int64) (*models.Customer, error) {
	if c, ok := f.items[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (f *fakeCustomerRepo) FindCustomers(_ context.Context, filter repository.CustomerFilter, p pagination.Pageable) (pagination.Page[models.Customer], error) {
	var matched []models.Customer
	for _, c := range f.items {
		if filter.FirstName != "" && c.FirstName != filter.FirstName {
			continue
		}
		if filter.LastName != "" && c.LastName != filter.LastName {
			continue
		}
		if filter.OtherName != "" && c.OtherName != filter.OtherName {
			continue
		}
		if filter.StartDate != nil && c.CreatedOn.Before(filter.StartDate.Time) {
			continue
		}
		if filter.EndDate != nil && c.CreatedOn.After(filter.EndDate.Time) {
			continue
		}
		matched = append(matched, c)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CustomerID < matched[j].CustomerID })
	return paginate(matched, p), nil
}

func (f *fakeCustomerRepo) UpdateCustomer(_ context.Context, customer *models.Customer) (bool, error) {
	existing, ok := f.items[customer.CustomerID]
	if !ok {
		return false, nil
	}
	existing.FirstName = customer.FirstName
	existing.LastName = customer.LastName
	existing.OtherName = customer.OtherName
	existing.UpdatedOn = customer.UpdatedOn
	f.items[customer.CustomerID] = existing
	return true, nil
}

func (f *fakeCustomerRepo) DeleteCustomer(_ context.Context, id int64) error {
	delete(f.items, id)
	return nil
}

type fakeAccountRepo struct {
	seq   int64
	items map[int64]models.Account

	// collideChecks forces the pre-insert existence check to report a
	// collision for the first n calls.
	collideChecks int
	// failInserts makes the first n inserts fail with a unique violation.
	failInserts int
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{items: map[int64]models.Account{}}
}

func (f *fakeAccountRepo) CreateAccount(_ context.Context, account *models.Account) error {
	if f.failInserts > 0 {
		f.failInserts--
		return uniqueViolation()
	}
	for _, a := range f.items {
		if a.IBAN == account.IBAN {
			return uniqueViolation()
		}
	}
	f.seq++
	account.AccountID = f.seq
	f.items[f.seq] = *account
	return nil
}

func (f *fakeAccountRepo) AccountExistsByIBAN(_ context.Context, iban string) (bool, error) {
	if f.collideChecks > 0 {
		f.collideChecks--
		return true, nil
	}
	for _, a := range f.items {
		if a.IBAN == iban {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAccountRepo) FindAccountByID(_ context.Context, id int64) (*models.Account, error) {
	if a, ok := f.items[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (f *fakeAccountRepo) FindAccounts(_ context.Context, filter repository.AccountFilter, p pagination.Pageable) (pagination.Page[models.Account], error) {
	var matched []models.Account
	for _, a := range f.items {
		if filter.IBAN != "" && a.IBAN != filter.IBAN {
			continue
		}
		if filter.BicSwift != "" && a.BicSwift != filter.BicSwift {
			continue
		}
		if filter.AccountID != 0 && a.AccountID != filter.AccountID {
			continue
		}
		matched = append(matched, a)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].AccountID < matched[j].AccountID })
	return paginate(matched, p), nil
}

func (f *fakeAccountRepo) DeleteAccount(_ context.Context, id int64) error {
	delete(f.items, id)
	return nil
}

type fakeCardRepo struct {
	seq   int64
	items map[int64]models.Card

	// collidePANChecks forces the pre-insert PAN check to report a
	// collision for the first n calls.
	collidePANChecks int
	failInserts      int
}

func newFakeCardRepo() *fakeCardRepo {
	return &fakeCardRepo{items: map[int64]models.Card{}}
}

func (f *fakeCardRepo) CreateCard(_ context.Context, card *models.Card) error {
	if f.failInserts > 0 {
		f.failInserts--
		return uniqueViolation()
	}
	for _, c := range f.items {
		if c.PAN == card.PAN {
			return uniqueViolation()
		}
		if c.AccountID == card.AccountID && c.CardType == card.CardType {
			return uniqueViolation()
		}
	}
	f.seq++
	card.CardID = f.seq
	f.items[f.seq] = *card
	return nil
}

func (f *fakeCardRepo) FindCardByID(_ context.Context, id int64) (*models.Card, error) {
	if c, ok := f.items[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (f *fakeCardRepo) FindCardByTypeAndAccount(_ context.Context, cardType models.CardType, accountID int64) (*models.Card, error) {
	for _, c := range f.items {
		if c.CardType == cardType && c.AccountID == accountID {
			card := c
			return &card, nil
		}
	}
	return nil, nil
}

func (f *fakeCardRepo) CountCardsByAccount(_ context.Context, accountID int64) (int, error) {
	count := 0
	for _, c := range f.items {
		if c.AccountID == accountID {
			count++
		}
	}
	return count, nil
}

func (f *fakeCardRepo) CardExistsByPAN(_ context.Context, pan string) (bool, error) {
	if f.collidePANChecks > 0 {
		f.collidePANChecks--
		return true, nil
	}
	for _, c := range f.items {
		if c.PAN == pan {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCardRepo) FindCards(_ context.Context, filter repository.CardFilter, p pagination.Pageable) (pagination.Page[models.Card], error) {
	var matched []models.Card
	for _, c := range f.items {
		if filter.CardAlias != "" && c.CardAlias != filter.CardAlias {
			continue
		}
		if filter.CardType != "" && c.CardType != filter.CardType {
			continue
		}
		if filter.PAN != "" && c.PAN != filter.PAN {
			continue
		}
		matched = append(matched, c)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CardID < matched[j].CardID })
	return paginate(matched, p), nil
}

func (f *fakeCardRepo) UpdateCardAlias(_ context.Context, cardID int64, alias string, updatedOn models.Date) (bool, error) {
	existing, ok := f.items[cardID]
	if !ok {
		return false, nil
	}
	existing.CardAlias = alias
	existing.UpdatedOn = &updatedOn
	f.items[cardID] = existing
	return true, nil
}

func (f *fakeCardRepo) DeleteCard(_ context.Context, id int64) error {
	delete(f.items, id)
	return nil
}

func paginate[T any](matched []T, p pagination.Pageable) pagination.Page[T] {
	page := pagination.Page[T]{
		Content:       []T{},
		Number:        p.Page,
		Size:          p.Size,
		TotalElements: int64(len(matched)),
	}
	start := p.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + p.Size
	if end > len(matched) {
		end = len(matched)
	}
	page.Content = append(page.Content, matched[start:end]...)
	return page
}
