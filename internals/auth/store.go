package auth

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/zalando/go-keyring"
)

var (
	keyringService = "minelaunch"
	keyringUser    = "launch_credentials"

	credentialsFile = "credentials.json"
)

// Store persists credentials in the system keyring. If no keyring is available
// a file in Dir is used instead
type Store struct {
	Dir           string
	NoKeyRingMode bool
}

// NewStore returns a Store using dir as the file fallback
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// Load returns the stored credentials. ErrNoCredentials is returned if there are none
func (s *Store) Load() (*PersistentCredentials, error) {
	var raw []byte
	if !s.NoKeyRingMode {
		secret, err := keyring.Get(keyringService, keyringUser)
		switch err {
		case nil:
			raw = []byte(secret)
		case keyring.ErrNotFound:
			return nil, ErrNoCredentials
		default:
			s.NoKeyRingMode = true
		}
	}

	if s.NoKeyRingMode {
		content, err := os.ReadFile(filepath.Join(s.Dir, credentialsFile))
		switch {
		case os.IsNotExist(err):
			return nil, ErrNoCredentials
		case err != nil:
			return nil, err
		}
		raw = content
	}

	creds := &PersistentCredentials{}
	if err := json.Unmarshal(raw, creds); err != nil {
		return nil, errors.Wrap(err, "stored credentials are corrupt")
	}
	return creds, nil
}

// Save stores the credentials of a provider
func (s *Store) Save(provider string, data interface{}) error {
	blob, err := json.Marshal(data)
	if err != nil {
		return err
	}
	creds, err := json.Marshal(PersistentCredentials{Provider: provider, Data: blob})
	if err != nil {
		return err
	}

	if !s.NoKeyRingMode {
		err := keyring.Set(keyringService, keyringUser, string(creds))
		if err == nil {
			return nil
		}
		s.NoKeyRingMode = true
	}

	if err := os.MkdirAll(s.Dir, os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.Dir, credentialsFile), creds, 0600)
}

// Delete removes stored credentials
func (s *Store) Delete() error {
	if !s.NoKeyRingMode {
		if err := keyring.Delete(keyringService, keyringUser); err != nil && err != keyring.ErrNotFound {
			return err
		}
	}
	err := os.Remove(filepath.Join(s.Dir, credentialsFile))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Provider returns the provider of the stored credentials
func (s *Store) Provider() (Provider, error) {
	creds, err := s.Load()
	if err != nil {
		return nil, err
	}

	switch creds.Provider {
	case "offline":
		o := &Offline{}
		if err := json.Unmarshal(creds.Data, o); err != nil {
			return nil, err
		}
		return o, nil
	case "token":
		t := &Token{}
		if err := json.Unmarshal(creds.Data, t); err != nil {
			return nil, err
		}
		return t, nil
	}
	return nil, errors.Errorf("unknown credential provider %q", creds.Provider)
}
