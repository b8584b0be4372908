package credentials

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/MKhiriev/go-rpa-cadastro/internal/logger"
)

// KeyringService is the service name under which the master passphrase is
// kept in the OS keyring.
const KeyringService = "go-rpa-cadastro"

// MasterKeyProvider is one place the master passphrase may come from.
// MasterKey reports found=false when the provider simply has nothing; an
// error means the provider itself is broken.
type MasterKeyProvider interface {
	Name() string
	MasterKey() (passphrase string, found bool, err error)
}

// MasterKeyChain asks each provider in order and returns the first hit.
type MasterKeyChain struct {
	providers []MasterKeyProvider
	logger    *logger.Logger
}

// NewMasterKeyChain builds a chain. Typical order: environment, OS keyring,
// legacy configuration field.
func NewMasterKeyChain(log *logger.Logger, providers ...MasterKeyProvider) *MasterKeyChain {
	return &MasterKeyChain{providers: providers, logger: log}
}

func (c *MasterKeyChain) Name() string { return "chain" }

// MasterKey implements [MasterKeyProvider]. A broken provider is logged and
// skipped so that an unavailable keyring on a headless host does not hide a
// passphrase supplied through the environment or the file.
func (c *MasterKeyChain) MasterKey() (string, bool, error) {
	for _, p := range c.providers {
		passphrase, found, err := p.MasterKey()
		if err != nil {
			c.logger.Warn().Err(err).Str("provider", p.Name()).Msg("master key provider failed, trying next")
			continue
		}
		if found {
			c.logger.Info().Str("provider", p.Name()).Msg("master key loaded")
			return passphrase, true, nil
		}
	}
	return "", false, nil
}

// EnvMasterKey wraps a passphrase already read from the environment by the
// config loader.
type EnvMasterKey string

func (e EnvMasterKey) Name() string { return "env" }

func (e EnvMasterKey) MasterKey() (string, bool, error) {
	return string(e), e != "", nil
}

// KeyringMasterKey reads the passphrase from the OS keyring.
type KeyringMasterKey struct {
	// User is the keyring account, normally the robot's dashboard login.
	User string
}

func (k KeyringMasterKey) Name() string { return "keyring" }

func (k KeyringMasterKey) MasterKey() (string, bool, error) {
	passphrase, err := keyring.Get(KeyringService, k.User)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read keyring: %w", err)
	}
	return passphrase, passphrase != "", nil
}

// StoreInKeyring saves the passphrase for user in the OS keyring.
func StoreInKeyring(user, passphrase string) error {
	if err := keyring.Set(KeyringService, user, passphrase); err != nil {
		return fmt.Errorf("write keyring: %w", err)
	}
	return nil
}

// SourceMasterKey reads the legacy chave_mestra field. Keeping the
// passphrase next to the tokens it protects defeats the encryption, so every
// use is logged as a warning.
type SourceMasterKey struct {
	Source Source
	Logger *logger.Logger
}

func (s SourceMasterKey) Name() string { return "config-file" }

func (s SourceMasterKey) MasterKey() (string, bool, error) {
	v, ok := s.Source.Value(SectionCredentials, KeyMasterKey)
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return "", false, nil
	}
	s.Logger.Warn().
		Str("section", SectionCredentials).
		Str("key", KeyMasterKey).
		Msg("master key read from the configuration file; move it to RPA_MASTER_KEY or the OS keyring")
	return v, true, nil
}
