package auth

import (
	"context"
	"crypto/md5"
	"fmt"

	"github.com/dchest/uniuri"
)

// Offline launches without an account. Servers in online mode will reject the player
type Offline struct {
	PlayerName string `json:"playerName"`
	// ClientToken is generated once and stored with the name
	ClientToken string `json:"clientToken"`
}

// NewOffline returns an Offline provider with a new client token
func NewOffline(name string) *Offline {
	return &Offline{PlayerName: name, ClientToken: uniuri.NewLen(32)}
}

// Credentials implements Provider
func (o *Offline) Credentials(ctx context.Context) (*Credentials, error) {
	if o.PlayerName == "" {
		return nil, ErrNoCredentials
	}
	return &Credentials{
		PlayerName:  o.PlayerName,
		UUID:        OfflineUUID(o.PlayerName),
		AccessToken: "0",
		ClientID:    o.ClientToken,
		UserType:    "legacy",
	}, nil
}

// OfflineUUID returns the name based (version 3) uuid of "OfflinePlayer:<name>",
// the same one servers in offline mode use
func OfflineUUID(name string) string {
	sum := md5.Sum([]byte("OfflinePlayer:" + name))
	sum[6] = (sum[6] & 0x0f) | 0x30
	sum[8] = (sum[8] & 0x3f) | 0x80
	return fmt.Sprintf("%x-%x-%x-%x-%x", sum[0:4], sum[4:6], sum[6:8], sum[8:10], sum[10:16])
}
