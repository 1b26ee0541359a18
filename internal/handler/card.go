package handler

import (
	"encoding/json"
	"net/http"

	"github.com/kitucode/banking-service/internal/errs"
	"github.com/kitucode/banking-service/internal/models"
	"github.com/kitucode/banking-service/internal/pagination"
	"github.com/kitucode/banking-service/internal/repository"
	"github.com/kitucode/banking-service/internal/service"
)

const cardsBaseURL = "/api/cards"

// UpdateCardRequest carries a card alias update. Only the alias is
// mutable; an absent alias makes the update a no-op.
type UpdateCardRequest struct {
	CardID    int64  `json:"cardId"`
	CardAlias string `json:"cardAlias"`
}

// CreateCard handles POST /api/cards
func (h *Handler) CreateCard(w http.ResponseWriter, r *http.Request) {
	var req service.CreateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, errs.Validationf("invalid request body: %v", err))
		return
	}

	h.log.Infof("REST request to create card for account: %d", req.AccountID)
	card, err := h.cards.Save(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, card)
}

// FindCards handles GET /api/cards
func (h *Handler) FindCards(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := repository.CardFilter{
		CardAlias: query.Get("cardAlias"),
		PAN:       query.Get("pan"),
	}
	if v := query.Get("cardType"); v != "" {
		cardType, err := models.ParseCardType(v)
		if err != nil {
			h.writeError(w, errs.Validationf("%v", err))
			return
		}
		filter.CardType = cardType
	}

	h.log.Infof("REST request to find cards by cardAlias: %q, cardType: %q, pan: %q", filter.CardAlias, filter.CardType, filter.PAN)

	page, err := h.cards.FindAll(r.Context(), filter, maskedParam(r), pagination.FromRequest(r))
	if err != nil {
		h.writeError(w, err)
		return
	}

	pagination.WriteHeaders(w, page, cardsBaseURL)
	h.writeJSON(w, http.StatusOK, page.Content)
}

// FindCard handles GET /api/cards/{id}
func (h *Handler) FindCard(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	h.log.Infof("REST request to find card by id : %d", id)

	card, err := h.cards.FindByID(r.Context(), id, maskedParam(r))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, card)
}

// UpdateCard handles PUT /api/cards
func (h *Handler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	var req UpdateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, errs.Validationf("invalid request body: %v", err))
		return
	}

	h.log.Infof("REST request to update card : %d", req.CardID)
	card, err := h.cards.Update(r.Context(), req.CardID, req.CardAlias)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, card)
}

// DeleteCard handles DELETE /api/cards/{id}
func (h *Handler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	h.log.Infof("REST request to delete card with id: %d", id)

	if err := h.cards.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
