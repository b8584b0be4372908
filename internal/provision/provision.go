// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package provision produces the encrypted credential fields of config.ini.
//
// The operator types the master passphrase and the two plaintext passwords
// into a terminal form. A fresh salt is generated, the key is derived from
// the passphrase and both passwords are encrypted under it. The result is
// rendered as an INI snippet to paste into config.ini; the passphrase itself
// never appears in it.
package provision

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"

	"gopkg.in/ini.v1"

	"github.com/MKhiriev/go-rpa-cadastro/internal/credentials"
	"github.com/MKhiriev/go-rpa-cadastro/internal/crypto"
)

var (
	ErrEmptyPassphrase    = errors.New("master passphrase is required")
	ErrPassphraseMismatch = errors.New("passphrases do not match")
	ErrEmptyPassword      = errors.New("application and e-mail passwords are required")
)

// Request holds what the operator typed.
type Request struct {
	Passphrase    string
	AppPassword   string
	EmailPassword string
}

// Result holds the fields to store in config.ini.
type Result struct {
	// Salt is standard base64 of the random salt.
	Salt       string
	AppToken   crypto.CipherToken
	EmailToken crypto.CipherToken
}

// Generator encrypts provisioning requests.
type Generator struct {
	keyChain crypto.KeyChainService
}

func NewGenerator(keyChain crypto.KeyChainService) *Generator {
	return &Generator{keyChain: keyChain}
}

// Generate draws a fresh salt and encrypts both passwords under the key
// derived from the passphrase.
func (g *Generator) Generate(req Request) (Result, error) {
	if req.Passphrase == "" {
		return Result{}, ErrEmptyPassphrase
	}
	if req.AppPassword == "" || req.EmailPassword == "" {
		return Result{}, ErrEmptyPassword
	}

	salt, err := g.keyChain.GenerateSalt()
	if err != nil {
		return Result{}, fmt.Errorf("generate salt: %w", err)
	}
	key, err := g.keyChain.DeriveKey(salt, req.Passphrase)
	if err != nil {
		return Result{}, fmt.Errorf("derive key: %w", err)
	}

	appToken, err := g.keyChain.Encrypt([]byte(req.AppPassword), key)
	if err != nil {
		return Result{}, fmt.Errorf("encrypt application password: %w", err)
	}
	emailToken, err := g.keyChain.Encrypt([]byte(req.EmailPassword), key)
	if err != nil {
		return Result{}, fmt.Errorf("encrypt e-mail password: %w", err)
	}

	return Result{
		Salt:       base64.StdEncoding.EncodeToString(salt),
		AppToken:   appToken,
		EmailToken: emailToken,
	}, nil
}

// Snippet renders r as the config.ini sections it belongs to.
func (r Result) Snippet() (string, error) {
	f := ini.Empty()

	creds := f.Section(credentials.SectionCredentials)
	if _, err := creds.NewKey(credentials.KeySalt, r.Salt); err != nil {
		return "", err
	}
	if _, err := creds.NewKey(credentials.KeyAppToken, string(r.AppToken)); err != nil {
		return "", err
	}

	email := f.Section(credentials.SectionEmail)
	if _, err := email.NewKey(credentials.KeyEmailToken, string(r.EmailToken)); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return "", fmt.Errorf("render snippet: %w", err)
	}
	return buf.String(), nil
}
