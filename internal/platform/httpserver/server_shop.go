package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	shoperrors "warden/contexts/community-economy/shop-service/domain/errors"
	shophttp "warden/contexts/community-economy/shop-service/transport/http"
)

func (s *Server) handleCreateShopItem(w http.ResponseWriter, r *http.Request) {
	if !isAdministrator(r) {
		writeShopError(w, http.StatusForbidden, "permission_denied", "administrator capability required")
		return
	}

	var req shophttp.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeShopError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.shop.Handler.CreateItemHandler(r.Context(), req)
	if err != nil {
		writeShopDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleDeleteShopItem(w http.ResponseWriter, r *http.Request) {
	if !isAdministrator(r) {
		writeShopError(w, http.StatusForbidden, "permission_denied", "administrator capability required")
		return
	}

	if err := s.shop.Handler.DeleteItemHandler(r.Context(), r.PathValue("item_id")); err != nil {
		writeShopDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (s *Server) handleListShopItems(w http.ResponseWriter, r *http.Request) {
	resp, err := s.shop.Handler.ListItemsHandler(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeShopDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePurchase(w http.ResponseWriter, r *http.Request) {
	userID := resolveUserID(r)
	if userID == "" {
		writeShopError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	resp, err := s.shop.Handler.PurchaseHandler(r.Context(), userID, r.PathValue("item_id"))
	if err != nil {
		writeShopDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeShopDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shoperrors.ErrItemNotFound):
		writeShopError(w, http.StatusNotFound, "item_not_found", err.Error())
	case errors.Is(err, shoperrors.ErrSoldOut):
		writeShopError(w, http.StatusConflict, "sold_out", err.Error())
	case errors.Is(err, shoperrors.ErrAlreadyOwned):
		writeShopError(w, http.StatusConflict, "already_owned", err.Error())
	case errors.Is(err, shoperrors.ErrInsufficientFunds):
		writeShopError(w, http.StatusPaymentRequired, "insufficient_funds", err.Error())
	case errors.Is(err, shoperrors.ErrInvalidCategory):
		writeShopError(w, http.StatusBadRequest, "invalid_category", err.Error())
	case errors.Is(err, shoperrors.ErrInvalidRequest):
		writeShopError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeShopError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeShopError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, shophttp.ErrorResponse{Code: code, Message: message})
}
