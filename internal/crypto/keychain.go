// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/fernet/fernet-go"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the length of the per-deployment salt in bytes.
	SaltSize = 16
	// KeySize is the length of the derived key in bytes.
	KeySize = 32

	// pbkdf2Iterations must stay in sync with tokens already provisioned:
	// changing it invalidates every stored credential.
	pbkdf2Iterations = 100_000

	fernetVersion = 0x80
	// version(1) ‖ timestamp(8) ‖ iv(16) ‖ hmac(32); the ciphertext adds at
	// least one AES block on top.
	fernetOverhead  = 1 + 8 + 16 + 32
	fernetBlockSize = 16

	// fernet-go skips the timestamp check for a negative ttl.
	noTTL = -1
)

// Key is a derived 256-bit key in the layout Fernet expects: the first half
// signs, the second half encrypts.
type Key [KeySize]byte

// Encode returns the URL-safe base64 form of the key, the text format used
// by Fernet implementations.
func (k Key) Encode() string {
	return base64.URLEncoding.EncodeToString(k[:])
}

// ParseKey decodes a URL-safe base64 Fernet key.
func ParseKey(s string) (Key, error) {
	var k Key
	raw, err := base64.URLEncoding.DecodeString(s)
	if err != nil || len(raw) != KeySize {
		return k, fmt.Errorf("%w: key must be %d bytes of url-safe base64", ErrInvalidInput, KeySize)
	}
	copy(k[:], raw)
	return k, nil
}

// CipherToken is the URL-safe base64 text of a Fernet token. It is opaque to
// callers and safe to store in configuration files.
type CipherToken string

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct {
	iterations int
	random     io.Reader
}

// NewKeyChainService constructs a [KeyChainService] using PBKDF2-HMAC-SHA256
// with 100 000 iterations and the OS CSPRNG.
func NewKeyChainService() KeyChainService {
	return &keyChainService{
		iterations: pbkdf2Iterations,
		random:     rand.Reader,
	}
}

// GenerateSalt implements [KeyChainService].
func (k *keyChainService) GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(k.random, salt); err != nil {
		return nil, fmt.Errorf("read random salt: %w", err)
	}
	return salt, nil
}

// DeriveKey implements [KeyChainService]. The same salt and passphrase
// always produce the same key.
func (k *keyChainService) DeriveKey(salt []byte, passphrase string) (Key, error) {
	var key Key

	if len(salt) != SaltSize {
		return key, fmt.Errorf("%w: salt must be %d bytes, got %d", ErrInvalidInput, SaltSize, len(salt))
	}
	if passphrase == "" {
		return key, fmt.Errorf("%w: empty master passphrase", ErrInvalidInput)
	}

	copy(key[:], pbkdf2.Key([]byte(passphrase), salt, k.iterations, KeySize, sha256.New))
	return key, nil
}

// Encrypt implements [KeyChainService]. The token embeds the current time,
// a random IV, the AES-128-CBC ciphertext and an HMAC-SHA256 tag.
func (k *keyChainService) Encrypt(plaintext []byte, key Key) (CipherToken, error) {
	if len(plaintext) == 0 {
		return "", fmt.Errorf("%w: nothing to encrypt", ErrInvalidInput)
	}

	fk := fernet.Key(key)
	tok, err := fernet.EncryptAndSign(plaintext, &fk)
	if err != nil {
		return "", fmt.Errorf("seal token: %w", err)
	}

	return CipherToken(tok), nil
}

// Decrypt implements [KeyChainService]. The token must be canonical URL-safe
// base64 so that every changed character changes the decoded bytes and is
// caught by the HMAC check.
func (k *keyChainService) Decrypt(token CipherToken, key Key) ([]byte, error) {
	raw, err := base64.URLEncoding.Strict().DecodeString(string(token))
	if err != nil || base64.URLEncoding.EncodeToString(raw) != string(token) {
		return nil, ErrDecryption
	}
	if !wellFormed(raw) {
		return nil, ErrDecryption
	}

	fk := fernet.Key(key)
	plaintext := fernet.VerifyAndDecrypt([]byte(token), noTTL, []*fernet.Key{&fk})
	if plaintext == nil {
		return nil, ErrDecryption
	}

	return plaintext, nil
}

func wellFormed(raw []byte) bool {
	if len(raw) < fernetOverhead+fernetBlockSize {
		return false
	}
	if (len(raw)-fernetOverhead)%fernetBlockSize != 0 {
		return false
	}
	return raw[0] == fernetVersion
}
