package handler

import (
	"encoding/json"
	"net/http"

	"github.com/kitucode/banking-service/internal/errs"
	"github.com/kitucode/banking-service/internal/models"
	"github.com/kitucode/banking-service/internal/pagination"
)

const customersBaseURL = "/api/customers"

// CreateCustomer handles POST /api/customers
func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var customer models.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		h.writeError(w, errs.Validationf("invalid request body: %v", err))
		return
	}

	h.log.Infof("REST request to create customer : %s %s", customer.FirstName, customer.LastName)
	saved, err := h.customers.Save(r.Context(), &customer)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, saved)
}

// FindCustomers handles GET /api/customers
func (h *Handler) FindCustomers(w http.ResponseWriter, r *http.Request) {
	h.log.Infof("REST request to find all customers")

	startDate, err := dateParam(r, "startDate")
	if err != nil {
		h.writeError(w, err)
		return
	}
	endDate, err := dateParam(r, "endDate")
	if err != nil {
		h.writeError(w, err)
		return
	}

	name := r.URL.Query().Get("name")
	p := pagination.FromRequest(r)

	page, err := h.customers.FindAll(r.Context(), name, startDate, endDate, p)
	if err != nil {
		h.writeError(w, err)
		return
	}

	pagination.WriteHeaders(w, page, customersBaseURL)
	h.writeJSON(w, http.StatusOK, page.Content)
}

// FindCustomer handles GET /api/customers/{id}
func (h *Handler) FindCustomer(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	h.log.Infof("REST request to find customer by customer id: %d", id)

	customer, err := h.customers.FindOne(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, customer)
}

// UpdateCustomer handles PUT /api/customers
func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var customer models.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		h.writeError(w, errs.Validationf("invalid request body: %v", err))
		return
	}

	h.log.Infof("REST request to update customer : %d", customer.CustomerID)
	updated, err := h.customers.Update(r.Context(), &customer)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, updated)
}

// DeleteCustomer handles DELETE /api/customers/{id}
func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	h.log.Infof("REST request to delete customer with id : %d", id)

	if err := h.customers.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// dateParam parses an optional 2006-01-02 query parameter.
func dateParam(r *http.Request, name string) (*models.Date, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	d, err := models.ParseDate(v)
	if err != nil {
		return nil, errs.Validationf("%v", err)
	}
	return &d, nil
}
