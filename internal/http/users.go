package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"posture-backend-go/internal/services"
	"posture-backend-go/internal/store"
)

type UserCreateRequest struct {
	AccountID  string   `json:"idAccount"`
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	NationalID *int64   `json:"national_id"`
	HeightCM   *float64 `json:"height_cm"`
	WeightKG   *float64 `json:"weight_kg"`
	Country    string   `json:"country"`
}

type UserUpdateRequest struct {
	FirstName *string  `json:"first_name"`
	LastName  *string  `json:"last_name"`
	HeightCM  *float64 `json:"height_cm"`
	WeightKG  *float64 `json:"weight_kg"`
	Country   *string  `json:"country"`
}

func (s *Server) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req UserCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.AccountID == "" || req.FirstName == "" || req.LastName == "" ||
		req.NationalID == nil || req.HeightCM == nil || req.WeightKG == nil || req.Country == "" {
		WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	user, err := services.CreateUser(s.Stores, services.UserInput{
		AccountID:  req.AccountID,
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		NationalID: *req.NationalID,
		HeightCM:   *req.HeightCM,
		WeightKG:   *req.WeightKG,
		Country:    req.Country,
	})
	if err != nil {
		WriteFailure(w, err, "Error creating user")
		return
	}
	WriteData(w, http.StatusCreated, user)
}

func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	page := parseInt(r.URL.Query().Get("page"), 1)
	limit := parseInt(r.URL.Query().Get("limit"), 20)
	if limit > 100 {
		limit = 100
	}
	accountID := strings.TrimSpace(r.URL.Query().Get("accountId"))
	users, total, err := s.Stores.Users.List(accountID, page, limit)
	if err != nil {
		WriteFailure(w, err, "Error listing users")
		return
	}
	WriteList(w, users, Meta{Total: total, Page: page, Limit: limit})
}

func (s *Server) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := entityID(w, r)
	if !ok {
		return
	}
	user, err := s.Stores.Users.GetByID(id)
	if errors.Is(err, store.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		WriteFailure(w, err, "Error fetching user")
		return
	}
	WriteData(w, http.StatusOK, user)
}

func (s *Server) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := entityID(w, r)
	if !ok {
		return
	}
	var req UserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.HeightCM != nil && (*req.HeightCM < 30 || *req.HeightCM > 300) {
		WriteError(w, http.StatusBadRequest, "height_cm must be between 30 and 300")
		return
	}
	if req.WeightKG != nil && (*req.WeightKG < 1 || *req.WeightKG > 500) {
		WriteError(w, http.StatusBadRequest, "weight_kg must be between 1 and 500")
		return
	}
	user, err := s.Stores.Users.Update(id, store.UserPatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		HeightCM:  req.HeightCM,
		WeightKG:  req.WeightKG,
		Country:   req.Country,
	})
	if errors.Is(err, store.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		WriteFailure(w, err, "Error updating user")
		return
	}
	WriteData(w, http.StatusOK, user)
}

func (s *Server) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := entityID(w, r)
	if !ok {
		return
	}
	err := s.Stores.Users.Delete(id)
	if errors.Is(err, store.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		WriteFailure(w, err, "Error deleting user")
		return
	}
	WriteMessage(w, http.StatusOK, "User deleted")
}

func (s *Server) TiltAverage(w http.ResponseWriter, r *http.Request) {
	id, ok := entityID(w, r)
	if !ok {
		return
	}
	limit := parseInt(r.URL.Query().Get("limit"), services.DefaultTiltLimit)
	var hours *int
	if raw := strings.TrimSpace(r.URL.Query().Get("hours")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 {
			WriteError(w, http.StatusBadRequest, "hours must be a positive integer")
			return
		}
		hours = &value
	}
	result, err := services.TiltAverage(s.Stores, id, limit, hours)
	if err != nil {
		WriteFailure(w, err, "Error computing tilt average")
		return
	}
	WriteData(w, http.StatusOK, result)
}
