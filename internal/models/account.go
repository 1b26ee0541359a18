package models

// Account represents a customer bank account
type Account struct {
	AccountID  int64  `json:"accountId"`
	IBAN       string `json:"iban"`
	BicSwift   string `json:"bicSwift"`
	CustomerID int64  `json:"customerId"`
	CreatedOn  Date   `json:"createdOn"`
	UpdatedOn  *Date  `json:"updatedOn,omitempty"`
}
