package models

import "fmt"

// CardType enumerates the supported card products.
type CardType string

const (
	CardTypeVirtual  CardType = "VIRTUAL"
	CardTypePhysical CardType = "PHYSICAL"
)

// ParseCardType validates a card type supplied by a client.
func ParseCardType(s string) (CardType, error) {
	switch CardType(s) {
	case CardTypeVirtual, CardTypePhysical:
		return CardType(s), nil
	}
	return "", fmt.Errorf("invalid card type: %s", s)
}

// Card represents a bank card. PAN and CVV are stored in the clear;
// masking happens on the outbound representation only.
type Card struct {
	CardID    int64    `json:"cardId"`
	CardAlias string   `json:"cardAlias"`
	AccountID int64    `json:"accountId"`
	CardType  CardType `json:"cardType"`
	PAN       string   `json:"pan"`
	CVV       string   `json:"cvv"`
	CreatedOn Date     `json:"createdOn"`
	UpdatedOn *Date    `json:"updatedOn,omitempty"`
}
