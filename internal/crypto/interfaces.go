// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_service_mock.go -package=mock

// KeyChainService owns every cryptographic operation on the robot's stored
// credentials. It knows nothing about configuration files, browsers or mail.
//
// Flow:
//
//	Salt  = GenerateSalt()                    (provisioning, once per credential set)
//	Key   = DeriveKey(salt, passphrase)       (every run, never persisted)
//	Token = Encrypt(secret, Key)              (provisioning only)
//	Plain = Decrypt(Token, Key)               (every run)
type KeyChainService interface {
	// GenerateSalt returns 16 fresh random bytes from the OS CSPRNG.
	// The salt is not secret; it is stored next to the tokens.
	GenerateSalt() ([]byte, error)

	// DeriveKey stretches the master passphrase with PBKDF2-HMAC-SHA256.
	// Returns ErrInvalidInput for a salt that is not 16 bytes long or an
	// empty passphrase.
	DeriveKey(salt []byte, passphrase string) (Key, error)

	// Encrypt seals plaintext into a Fernet token. Used by the provisioning
	// tool only.
	Encrypt(plaintext []byte, key Key) (CipherToken, error)

	// Decrypt opens a token produced by Encrypt. Any tampering, truncation or
	// wrong key yields ErrDecryption and nothing else.
	Decrypt(token CipherToken, key Key) ([]byte, error)
}
