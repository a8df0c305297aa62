// Package keys provides the snapshot encryption key from the environment
// or the OS keyring.
package keys

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/99designs/keyring"

	"github.com/runoshun/todo/internal/domain"
	"github.com/runoshun/todo/internal/infra/crypto"
)

// EnvKey names the environment variable that overrides the keyring.
const EnvKey = "TODO_ENCRYPTION_KEY"

// OpenKeyring returns the OS keyring, falling back to an encrypted file
// under dataDir when no system backend is available.
func OpenKeyring(dataDir string) (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: domain.AppName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  filepath.Join(dataDir, "keys"),
		FilePasswordFunc:         keyring.FixedStringPrompt(domain.AppName + "-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// Provider resolves the encryption key.
type Provider struct {
	ring   keyring.Keyring
	getenv func(string) string
	name   string
}

// NewProvider returns a Provider reading the keyring entry name.
// ring may be nil, in which case only the environment is consulted.
func NewProvider(ring keyring.Keyring, name string) *Provider {
	return &Provider{ring: ring, name: name, getenv: os.Getenv}
}

// Key returns the hex key. $TODO_ENCRYPTION_KEY wins; otherwise the keyring
// entry is used, and generated and stored there on first use.
func (p *Provider) Key() (key string, created bool, err error) {
	if k := p.getenv(EnvKey); k != "" {
		return k, false, nil
	}
	if p.ring == nil {
		return "", false, domain.ErrNoEncryptionKey
	}

	item, err := p.ring.Get(p.name)
	if err == nil {
		return string(item.Data), false, nil
	}
	if !errors.Is(err, keyring.ErrKeyNotFound) {
		return "", false, fmt.Errorf("getting key %q: %w", p.name, err)
	}

	key, err = crypto.GenerateKey()
	if err != nil {
		return "", false, err
	}
	err = p.ring.Set(keyring.Item{
		Key:         p.name,
		Data:        []byte(key),
		Label:       domain.AppName + " snapshot key",
		Description: "AES-256 key sealing the task snapshot",
	})
	if err != nil {
		return "", false, fmt.Errorf("storing key %q: %w", p.name, err)
	}
	return key, true, nil
}

// Encryptor resolves the key and builds an Encryptor from it.
func (p *Provider) Encryptor() (*crypto.Encryptor, bool, error) {
	key, created, err := p.Key()
	if err != nil {
		return nil, false, err
	}
	enc, err := crypto.NewEncryptor(key)
	if err != nil {
		return nil, false, fmt.Errorf("key %q: %w", p.name, err)
	}
	return enc, created, nil
}
