// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package credentials turns the encrypted passwords stored in the robot's
// configuration file back into plaintext for the duration of one run.
//
// One salt and one master passphrase serve every credential of a
// configuration file: the key is derived once per Load and used for both the
// dashboard and the e-mail password.
package credentials

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-rpa-cadastro/internal/crypto"
	"github.com/MKhiriev/go-rpa-cadastro/internal/logger"
)

// Configuration layout inherited from the robot's config.ini.
const (
	SectionCredentials = "CREDENCIAS_APP"
	SectionEmail       = "EMAIL"

	KeySalt       = "salt"
	KeyAppToken   = "senha_criptografada"
	KeyEmailToken = "email_senha_criptografada"
	KeyMasterKey  = "chave_mestra"
)

// Source is a configuration file with named sections of string fields.
type Source interface {
	Value(section, key string) (string, bool)
}

// MapSource is an in-memory [Source], keyed by section then field.
type MapSource map[string]map[string]string

func (m MapSource) Value(section, key string) (string, bool) {
	fields, ok := m[section]
	if !ok {
		return "", false
	}
	v, ok := fields[key]
	return v, ok
}

type field struct {
	section string
	key     string
}

func (f field) String() string { return "[" + f.section + "] " + f.key }

var (
	fieldSalt       = field{SectionCredentials, KeySalt}
	fieldAppToken   = field{SectionCredentials, KeyAppToken}
	fieldEmailToken = field{SectionEmail, KeyEmailToken}
)

// Store composes key derivation and decryption over a [Source].
type Store struct {
	source    Source
	masterKey MasterKeyProvider
	keyChain  crypto.KeyChainService
	logger    *logger.Logger
}

// NewStore constructs a [Store].
func NewStore(source Source, masterKey MasterKeyProvider, keyChain crypto.KeyChainService, log *logger.Logger) *Store {
	return &Store{
		source:    source,
		masterKey: masterKey,
		keyChain:  keyChain,
		logger:    log,
	}
}

// Load decrypts the dashboard and e-mail passwords.
//
// Every required field is checked before any cryptography runs, so a missing
// salt is reported as [ErrConfiguration] rather than a decryption failure.
// Decryption failures wrap [crypto.ErrDecryption].
func (s *Store) Load() (Secrets, error) {
	secrets, err := s.decrypt(fieldAppToken, fieldEmailToken)
	if err != nil {
		return Secrets{}, err
	}

	s.logger.Info().Msg("credentials decrypted")
	return Secrets{App: secrets[0], Email: secrets[1]}, nil
}

// decrypt opens the tokens stored at fields with one key derived from the
// shared salt and master passphrase.
func (s *Store) decrypt(fields ...field) ([]Secret, error) {
	values, err := s.require(append([]field{fieldSalt}, fields...)...)
	if err != nil {
		return nil, err
	}

	key, err := s.deriveKey(values[fieldSalt])
	if err != nil {
		return nil, err
	}

	secrets := make([]Secret, 0, len(fields))
	for _, f := range fields {
		secret, err := s.open(f, values[f], key)
		if err != nil {
			return nil, err
		}
		secrets = append(secrets, secret)
	}
	return secrets, nil
}

func (s *Store) require(fields ...field) (map[field]string, error) {
	values := make(map[field]string, len(fields))
	for _, f := range fields {
		v, ok := s.source.Value(f.section, f.key)
		v = strings.TrimSpace(v)
		if !ok || v == "" {
			return nil, fmt.Errorf("%w: missing %s", ErrConfiguration, f)
		}
		values[f] = v
	}
	return values, nil
}

func (s *Store) deriveKey(saltText string) (crypto.Key, error) {
	salt, err := decodeSalt(saltText)
	if err != nil {
		return crypto.Key{}, err
	}

	passphrase, found, err := s.masterKey.MasterKey()
	if err != nil {
		return crypto.Key{}, fmt.Errorf("%w: master key: %w", ErrConfiguration, err)
	}
	if !found {
		return crypto.Key{}, fmt.Errorf("%w: no master key in environment, keyring or %s", ErrConfiguration, field{SectionCredentials, KeyMasterKey})
	}

	key, err := s.keyChain.DeriveKey(salt, passphrase)
	if err != nil {
		return crypto.Key{}, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	return key, nil
}

func (s *Store) open(f field, token string, key crypto.Key) (Secret, error) {
	plain, err := s.keyChain.Decrypt(crypto.CipherToken(token), key)
	if err != nil {
		s.logger.Error().Str("field", f.String()).Msg("decryption failed, check master key and salt")
		return "", fmt.Errorf("%s: %w", f, err)
	}
	return Secret(plain), nil
}

// decodeSalt accepts the standard alphabet written by the provisioning tool
// and the URL-safe alphabet of older configuration files.
func decodeSalt(text string) ([]byte, error) {
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.URLEncoding} {
		salt, err := enc.DecodeString(text)
		if err != nil {
			continue
		}
		if len(salt) != crypto.SaltSize {
			return nil, fmt.Errorf("%w: %s must decode to %d bytes, got %d", ErrConfiguration, fieldSalt, crypto.SaltSize, len(salt))
		}
		return salt, nil
	}
	return nil, fmt.Errorf("%w: %s is not base64", ErrConfiguration, fieldSalt)
}
