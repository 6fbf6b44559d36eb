// Package auth provides the credentials the game is launched with.
// Obtaining tokens (OAuth flows) is not part of this package, tokens are only stored and handed out.
package auth

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

var (
	// ErrNoCredentials is returned when nobody is logged in
	ErrNoCredentials = errors.New("no credentials stored. use `minelaunch login` first")
	// ErrExpired is returned when the stored token expired
	ErrExpired = errors.New("stored credentials expired. please login again")
)

// Credentials are the values substituted into the game arguments
type Credentials struct {
	PlayerName  string `json:"playerName"`
	UUID        string `json:"uuid"`
	AccessToken string `json:"accessToken"`
	XUID        string `json:"xuid,omitempty"`
	ClientID    string `json:"clientId,omitempty"`
	// UserType is "msa", "mojang" or "legacy" (offline)
	UserType string `json:"userType"`
}

// Provider returns credentials for a launch
type Provider interface {
	Credentials(ctx context.Context) (*Credentials, error)
}

// PersistentCredentials are stored credentials of any provider
type PersistentCredentials struct {
	Provider string
	Data     json.RawMessage
}
