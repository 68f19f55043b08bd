package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and verifies the two token shapes over one HS256
// signing mechanism. Expiry is the embedded exp claim; there is no
// server-side revocation, so a leaked token stays valid until it expires.
type TokenService struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

type PrincipalKind string

const (
	PrincipalAccount PrincipalKind = "account"
	PrincipalDevice  PrincipalKind = "device"
)

type AccountClaims struct {
	AccountID string `json:"accountId"`
	Email     string `json:"email"`
	Plan      string `json:"plan"`
}

type DeviceClaims struct {
	DeviceID     string `json:"deviceId"`
	SerialNumber string `json:"serial"`
}

// Principal is the tagged actor identity produced once at verification time.
// Exactly one of Account/Device is set, matching Kind; handlers switch on the
// kind instead of probing claim fields.
type Principal struct {
	Kind    PrincipalKind  `json:"kind"`
	Account *AccountClaims `json:"account,omitempty"`
	Device  *DeviceClaims  `json:"device,omitempty"`
}

var errUnknownTokenShape = errors.New("unknown token shape")

func (t TokenService) CreateAccountToken(accountID, email, plan string) (string, int64, error) {
	now := time.Now().UTC()
	exp := now.Add(t.TTL)
	claims := jwt.MapClaims{
		"iss":   t.Issuer,
		"sub":   accountID,
		"typ":   string(PrincipalAccount),
		"email": email,
		"plan":  plan,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.Secret)
	return signed, exp.Unix(), err
}

func (t TokenService) CreateDeviceToken(deviceID, serialNumber string) (string, int64, error) {
	now := time.Now().UTC()
	exp := now.Add(t.TTL)
	claims := jwt.MapClaims{
		"iss":    t.Issuer,
		"sub":    deviceID,
		"typ":    string(PrincipalDevice),
		"serial": serialNumber,
		"iat":    now.Unix(),
		"exp":    exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.Secret)
	return signed, exp.Unix(), err
}

// ParsePrincipal verifies signature, issuer and expiry, and tags the actor
// kind from the typ claim. Any failure is reported as an invalid token; the
// caller decides the transport mapping.
func (t TokenService) ParsePrincipal(tokenStr string) (Principal, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return t.Secret, nil
	}, jwt.WithIssuer(t.Issuer), jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		if err == nil {
			err = jwt.ErrTokenUnverifiable
		}
		return Principal{}, err
	}
	sub, _ := claims["sub"].(string)
	switch claims["typ"] {
	case string(PrincipalAccount):
		email, _ := claims["email"].(string)
		plan, _ := claims["plan"].(string)
		return Principal{
			Kind:    PrincipalAccount,
			Account: &AccountClaims{AccountID: sub, Email: email, Plan: plan},
		}, nil
	case string(PrincipalDevice):
		serial, _ := claims["serial"].(string)
		return Principal{
			Kind:   PrincipalDevice,
			Device: &DeviceClaims{DeviceID: sub, SerialNumber: serial},
		}, nil
	}
	return Principal{}, errUnknownTokenShape
}
