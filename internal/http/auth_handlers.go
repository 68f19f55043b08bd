package httpapi

import (
	"encoding/json"
	"net/http"

	"posture-backend-go/internal/services"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AccountSummary struct {
	ID          string `json:"id"`
	AccountName string `json:"accountName"`
	Plan        string `json:"plan"`
}

type LoginData struct {
	Token     string         `json:"token"`
	ExpiresAt int64          `json:"expiresAt"`
	Account   AccountSummary `json:"account"`
	UserID    *string        `json:"userId"`
}

type DeviceLoginRequest struct {
	SerialNumber string `json:"serialNumber"`
	Password     string `json:"password"`
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	result, err := services.Login(s.Stores, s.Tokens, req.Email, req.Password)
	if err != nil {
		WriteFailure(w, err, "Login failed")
		return
	}
	WriteJSON(w, http.StatusOK, Envelope{
		OK:      true,
		Message: "Login successful",
		Data: LoginData{
			Token:     result.Token,
			ExpiresAt: result.ExpiresAt,
			Account: AccountSummary{
				ID:          result.Account.ID,
				AccountName: result.Account.AccountName,
				Plan:        result.Account.Plan,
			},
			UserID: result.UserID,
		},
	})
}

func (s *Server) DeviceLogin(w http.ResponseWriter, r *http.Request) {
	var req DeviceLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	result, err := services.DeviceLogin(s.Stores, s.Tokens, s.Config.DeviceKey, req.SerialNumber, req.Password)
	if err != nil {
		WriteFailure(w, err, "Device login failed")
		return
	}
	WriteData(w, http.StatusOK, map[string]interface{}{
		"token":     result.Token,
		"expiresAt": result.ExpiresAt,
	})
}

// Protected echoes the decoded principal; a capability-check smoke test.
func (s *Server) Protected(w http.ResponseWriter, r *http.Request) {
	principal, ok := CurrentPrincipal(r)
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	WriteJSON(w, http.StatusOK, Envelope{OK: true, Message: "Access granted", Data: principal})
}
