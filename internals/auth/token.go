package auth

import (
	"context"
	"time"

	"golang.org/x/oauth2"
)

// Token uses a Minecraft access token obtained elsewhere
type Token struct {
	Token      *oauth2.Token `json:"token"`
	PlayerName string        `json:"playerName"`
	UUID       string        `json:"uuid"`
	XUID       string        `json:"xuid,omitempty"`
	ClientID   string        `json:"clientId,omitempty"`
}

// Credentials implements Provider
func (t *Token) Credentials(ctx context.Context) (*Credentials, error) {
	if t.Token == nil || t.Token.AccessToken == "" {
		return nil, ErrNoCredentials
	}
	// a token without expiry is always valid
	if !t.Token.Expiry.IsZero() && !t.Token.Valid() {
		return nil, ErrExpired
	}
	return &Credentials{
		PlayerName:  t.PlayerName,
		UUID:        t.UUID,
		AccessToken: t.Token.AccessToken,
		XUID:        t.XUID,
		ClientID:    t.ClientID,
		UserType:    "msa",
	}, nil
}

// ExpiresIn returns the remaining lifetime of the token (0 if unknown)
func (t *Token) ExpiresIn() time.Duration {
	if t.Token == nil || t.Token.Expiry.IsZero() {
		return 0
	}
	return time.Until(t.Token.Expiry)
}
