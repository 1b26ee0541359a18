package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/kitucode/banking-service/internal/config"
	"github.com/kitucode/banking-service/internal/errs"
	"github.com/kitucode/banking-service/internal/models"
	"github.com/kitucode/banking-service/internal/pagination"
	"github.com/kitucode/banking-service/internal/repository"
	"github.com/kitucode/banking-service/internal/utils"
	"github.com/sirupsen/logrus"
)

const cvvMask = "***"

// CardRepository is the storage surface the card service needs.
type CardRepository interface {
	CreateCard(ctx context.Context, card *models.Card) error
	FindCardByID(ctx context.Context, id int64) (*models.Card, error)
	FindCardByTypeAndAccount(ctx context.Context, cardType models.CardType, accountID int64) (*models.Card, error)
	CountCardsByAccount(ctx context.Context, accountID int64) (int, error)
	CardExistsByPAN(ctx context.Context, pan string) (bool, error)
	FindCards(ctx context.Context, filter repository.CardFilter, p pagination.Pageable) (pagination.Page[models.Card], error)
	UpdateCardAlias(ctx context.Context, cardID int64, alias string, updatedOn models.Date) (bool, error)
	DeleteCard(ctx context.Context, id int64) error
}

// CreateCardRequest carries the client-supplied fields of a card
// creation. PAN and CVV are always generated, never accepted.
type CreateCardRequest struct {
	CardAlias string          `json:"cardAlias"`
	AccountID int64           `json:"accountId"`
	CardType  models.CardType `json:"cardType"`
}

// CardService handles card business logic
type CardService struct {
	repo     CardRepository
	cfg      *config.Config
	log      *logrus.Logger
	notifier Notifier
}

// NewCardService initializes a new card service. notifier may be nil
// when notifications are disabled.
func NewCardService(repo CardRepository, cfg *config.Config, log *logrus.Logger, notifier Notifier) *CardService {
	return &CardService{repo: repo, cfg: cfg, log: log, notifier: notifier}
}

// Save issues a new card. An account carries at most one card per type
// and at most MaxCardsPerAccount cards in total. The response is always
// masked.
func (s *CardService) Save(ctx context.Context, req CreateCardRequest) (*models.Card, error) {
	s.log.Debugf("Request to create card : %+v", req)

	if err := validateCardCreation(req); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindCardByTypeAndAccount(ctx, req.CardType, req.AccountID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.Validationf("Card of type: %s and account id: %d already exists", req.CardType, req.AccountID)
	}

	count, err := s.repo.CountCardsByAccount(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if count >= s.cfg.MaxCardsPerAccount {
		return nil, errs.Validationf("A maximum of %d cards is allowed for each account.", s.cfg.MaxCardsPerAccount)
	}

	cvv, err := utils.GenerateCVV()
	if err != nil {
		return nil, err
	}

	card := &models.Card{
		CardAlias: req.CardAlias,
		AccountID: req.AccountID,
		CardType:  req.CardType,
		CVV:       cvv,
		CreatedOn: models.Today(),
	}

	for attempt := 1; attempt <= maxGenerateAttempts; attempt++ {
		pan, err := utils.GeneratePAN()
		if err != nil {
			return nil, err
		}

		exists, err := s.repo.CardExistsByPAN(ctx, pan)
		if err != nil {
			return nil, err
		}
		if exists {
			s.log.Debugf("Generated pan already exists, regenerating (attempt %d)", attempt)
			continue
		}

		card.PAN = pan
		err = s.repo.CreateCard(ctx, card)
		if repository.IsUniqueViolation(err) {
			s.log.Debugf("Card insert hit a unique violation, regenerating (attempt %d)", attempt)
			continue
		}
		if err != nil {
			return nil, err
		}

		s.log.Infof("Card %d of type %s created for account %d", card.CardID, card.CardType, card.AccountID)
		masked := maskCardDetails(*card)
		s.notifyIssued(&masked)
		return &masked, nil
	}

	return nil, fmt.Errorf("could not generate a unique pan after %d attempts", maxGenerateAttempts)
}

// FindAll lists cards matching the provided filter fields, masked per
// the flag.
func (s *CardService) FindAll(ctx context.Context, filter repository.CardFilter, masked bool, p pagination.Pageable) (pagination.Page[models.Card], error) {
	s.log.Debugf("Request to find cards by cardAlias: %q, cardType: %q, pan: %q", filter.CardAlias, filter.CardType, filter.PAN)

	page, err := s.repo.FindCards(ctx, filter, p)
	if err != nil {
		return page, err
	}
	if masked {
		for i := range page.Content {
			page.Content[i] = maskCardDetails(page.Content[i])
		}
	}
	return page, nil
}

// FindByID retrieves a card by id, masked per the flag.
func (s *CardService) FindByID(ctx context.Context, id int64, masked bool) (*models.Card, error) {
	s.log.Debugf("Request to find card by id : %d", id)

	card, err := s.repo.FindCardByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, errs.NotFoundf("Card with id: %d does not exist", id)
	}
	if masked {
		m := maskCardDetails(*card)
		return &m, nil
	}
	return card, nil
}

// Update changes a card's alias, the only mutable field. An empty alias
// is a valid no-op returning the unchanged masked record.
func (s *CardService) Update(ctx context.Context, cardID int64, alias string) (*models.Card, error) {
	s.log.Debugf("Request to update card %d with alias %q", cardID, alias)

	card, err := s.repo.FindCardByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, errs.NotFoundf("Card with id %d not found", cardID)
	}

	if alias != "" {
		now := models.Today()
		if _, err := s.repo.UpdateCardAlias(ctx, cardID, alias, now); err != nil {
			return nil, err
		}
		card.CardAlias = alias
		card.UpdatedOn = &now
	}

	masked := maskCardDetails(*card)
	return &masked, nil
}

// Delete removes a card by id.
func (s *CardService) Delete(ctx context.Context, id int64) error {
	s.log.Debugf("Request to delete card by id : %d", id)
	return s.repo.DeleteCard(ctx, id)
}

func (s *CardService) notifyIssued(masked *models.Card) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.CardIssued(masked); err != nil {
		s.log.Errorf("Failed to send card-issued notification for card %d: %v", masked.CardID, err)
	}
}

func validateCardCreation(req CreateCardRequest) error {
	if req.AccountID == 0 {
		return errs.Validationf("Account id is required")
	}
	if req.CardAlias == "" {
		return errs.Validationf("Card alias is required")
	}
	if req.CardType == "" {
		return errs.Validationf("Card Type is required")
	}
	if _, err := models.ParseCardType(string(req.CardType)); err != nil {
		return errs.Validationf("%v", err)
	}
	return nil
}

// maskCardDetails redacts the sensitive card fields for an outbound
// representation: the CVV entirely, and the PAN down to its first six
// and last four digits. It never touches storage and is idempotent.
func maskCardDetails(card models.Card) models.Card {
	card.CVV = cvvMask
	card.PAN = maskPAN(card.PAN)
	return card
}

func maskPAN(pan string) string {
	if len(pan) < 10 {
		return pan
	}
	firstSix := pan[:6]
	lastFour := pan[len(pan)-4:]
	return firstSix + strings.Repeat("*", len(pan)-10) + lastFour
}
