package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"posture-backend-go/internal/models"
	"posture-backend-go/internal/services"
	"posture-backend-go/internal/store"
)

type AccountCreateRequest struct {
	AccountName string `json:"accountName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Plan        string `json:"plan"`
}

type AccountUpdateRequest struct {
	AccountName *string `json:"accountName"`
	Email       *string `json:"email"`
	Plan        *string `json:"plan"`
}

type PasswordUpdateRequest struct {
	Password string `json:"password"`
}

func (s *Server) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req AccountCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	account, err := services.CreateAccount(s.Stores, services.AccountInput{
		AccountName: req.AccountName,
		Email:       req.Email,
		Password:    req.Password,
		Plan:        req.Plan,
	})
	if err != nil {
		WriteFailure(w, err, "Error creating account")
		return
	}
	WriteData(w, http.StatusCreated, account)
}

func (s *Server) ListAccounts(w http.ResponseWriter, r *http.Request) {
	page := parseInt(r.URL.Query().Get("page"), 1)
	limit := parseInt(r.URL.Query().Get("limit"), 20)
	if limit > 100 {
		limit = 100
	}
	accounts, total, err := s.Stores.Accounts.List(page, limit)
	if err != nil {
		WriteFailure(w, err, "Error listing accounts")
		return
	}
	WriteList(w, accounts, Meta{Total: total, Page: page, Limit: limit})
}

func (s *Server) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := entityID(w, r)
	if !ok {
		return
	}
	account, err := s.Stores.Accounts.GetByID(id)
	if errors.Is(err, store.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "Account not found")
		return
	}
	if err != nil {
		WriteFailure(w, err, "Error fetching account")
		return
	}
	WriteData(w, http.StatusOK, account)
}

func (s *Server) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := entityID(w, r)
	if !ok {
		return
	}
	var req AccountUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.Plan != nil && !models.ValidPlan(*req.Plan) {
		WriteError(w, http.StatusBadRequest, "plan must be one of free, premium, enterprise")
		return
	}
	account, err := s.Stores.Accounts.Update(id, req.AccountName, req.Email, req.Plan)
	if errors.Is(err, store.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "Account not found")
		return
	}
	if errors.Is(err, store.ErrDuplicate) {
		WriteError(w, http.StatusConflict, "email already exists")
		return
	}
	if err != nil {
		WriteFailure(w, err, "Error updating account")
		return
	}
	WriteData(w, http.StatusOK, account)
}

func (s *Server) UpdateAccountPassword(w http.ResponseWriter, r *http.Request) {
	id, ok := entityID(w, r)
	if !ok {
		return
	}
	var req PasswordUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if err := services.ChangePassword(s.Stores, id, req.Password); err != nil {
		WriteFailure(w, err, "Error updating password")
		return
	}
	WriteMessage(w, http.StatusOK, "Password updated")
}

func (s *Server) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := entityID(w, r)
	if !ok {
		return
	}
	err := s.Stores.Accounts.Delete(id)
	if errors.Is(err, store.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "Account not found")
		return
	}
	if err != nil {
		WriteFailure(w, err, "Error deleting account")
		return
	}
	WriteMessage(w, http.StatusOK, "Account deleted")
}
