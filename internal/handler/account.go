package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/kitucode/banking-service/internal/errs"
	"github.com/kitucode/banking-service/internal/pagination"
	"github.com/kitucode/banking-service/internal/repository"
)

const accountsBaseURL = "/api/accounts"

// CreateAccountRequest carries the client-supplied fields of an account
// creation. IBAN and BIC/SWIFT are always derived server-side.
type CreateAccountRequest struct {
	CustomerID int64  `json:"customerId"`
	BranchCode string `json:"branchCode"`
}

// CreateAccount handles POST /api/accounts
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, errs.Validationf("invalid request body: %v", err))
		return
	}

	h.log.Infof("REST request to save account for customer: %d", req.CustomerID)
	account, err := h.accounts.Save(r.Context(), req.CustomerID, req.BranchCode)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, account)
}

// FindAccounts handles GET /api/accounts
func (h *Handler) FindAccounts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := repository.AccountFilter{
		IBAN:     query.Get("iban"),
		BicSwift: query.Get("bicSwift"),
	}
	if v := query.Get("accountId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			h.writeError(w, errs.Validationf("invalid accountId: %s", v))
			return
		}
		filter.AccountID = id
	}

	h.log.Infof("REST request to find accounts by iban: %q, bicSwift: %q, accountId: %d", filter.IBAN, filter.BicSwift, filter.AccountID)

	page, err := h.accounts.FindAll(r.Context(), filter, pagination.FromRequest(r))
	if err != nil {
		h.writeError(w, err)
		return
	}

	pagination.WriteHeaders(w, page, accountsBaseURL)
	h.writeJSON(w, http.StatusOK, page.Content)
}

// FindAccount handles GET /api/accounts/{id}
func (h *Handler) FindAccount(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	h.log.Infof("REST request to find account by id : %d", id)

	account, err := h.accounts.FindByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, account)
}

// UpdateAccount handles PUT /api/accounts. Account update is reserved
// for future use and deliberately answers 501 without mutating anything.
func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	h.log.Infof("REST request to update account")
	h.writeJSON(w, http.StatusNotImplemented, ErrorResponse{Code: http.StatusNotImplemented, Message: "Nothing to update"})
}

// DeleteAccount handles DELETE /api/accounts/{id}
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	h.log.Infof("REST request to delete account with id: %d", id)

	if err := h.accounts.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
