package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/kitucode/banking-service/internal/errs"
	"github.com/kitucode/banking-service/internal/service"
	"github.com/sirupsen/logrus"
)

// Handler exposes the REST surface over the entity services.
type Handler struct {
	customers *service.CustomerService
	accounts  *service.AccountService
	cards     *service.CardService
	log       *logrus.Logger
}

// NewHandler initializes a new handler
func NewHandler(customers *service.CustomerService, accounts *service.AccountService, cards *service.CardService, log *logrus.Logger) *Handler {
	return &Handler{customers: customers, accounts: accounts, cards: cards, log: log}
}

// SetRoutes registers all routes on the router.
func (h *Handler) SetRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.Health).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/customers", h.CreateCustomer).Methods("POST")
	api.HandleFunc("/customers", h.FindCustomers).Methods("GET")
	api.HandleFunc("/customers/{id:[0-9]+}", h.FindCustomer).Methods("GET")
	api.HandleFunc("/customers", h.UpdateCustomer).Methods("PUT")
	api.HandleFunc("/customers/{id:[0-9]+}", h.DeleteCustomer).Methods("DELETE")

	api.HandleFunc("/accounts", h.CreateAccount).Methods("POST")
	api.HandleFunc("/accounts", h.FindAccounts).Methods("GET")
	api.HandleFunc("/accounts/{id:[0-9]+}", h.FindAccount).Methods("GET")
	api.HandleFunc("/accounts", h.UpdateAccount).Methods("PUT")
	api.HandleFunc("/accounts/{id:[0-9]+}", h.DeleteAccount).Methods("DELETE")

	api.HandleFunc("/cards", h.CreateCard).Methods("POST")
	api.HandleFunc("/cards", h.FindCards).Methods("GET")
	api.HandleFunc("/cards/{id:[0-9]+}", h.FindCard).Methods("GET")
	api.HandleFunc("/cards", h.UpdateCard).Methods("PUT")
	api.HandleFunc("/cards/{id:[0-9]+}", h.DeleteCard).Methods("DELETE")
}

// Health reports service liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "UP"})
}

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var validationErr *errs.ValidationError
	if errors.As(err, &validationErr) {
		h.writeJSON(w, http.StatusBadRequest, ErrorResponse{Code: http.StatusBadRequest, Message: validationErr.Message})
		return
	}

	var notFoundErr *errs.NotFoundError
	if errors.As(err, &notFoundErr) {
		h.writeJSON(w, http.StatusNotFound, ErrorResponse{Code: http.StatusNotFound, Message: notFoundErr.Message})
		return
	}

	h.log.Errorf("Request failed: %v", err)
	h.writeJSON(w, http.StatusInternalServerError, ErrorResponse{Code: http.StatusInternalServerError, Message: "internal server error"})
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

// maskedParam reads the masked query flag, defaulting to true when
// unspecified or unparseable.
func maskedParam(r *http.Request) bool {
	v := r.URL.Query().Get("masked")
	if v == "" {
		return true
	}
	masked, err := strconv.ParseBool(v)
	if err != nil {
		return true
	}
	return masked
}
