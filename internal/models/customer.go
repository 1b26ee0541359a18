package models

// Customer represents a bank customer
type Customer struct {
	CustomerID int64  `json:"customerId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	OtherName  string `json:"otherName,omitempty"`
	CreatedOn  Date   `json:"createdOn"`
	UpdatedOn  *Date  `json:"updatedOn,omitempty"`
}
