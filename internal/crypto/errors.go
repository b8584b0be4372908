package crypto

import "errors"

var (
	// ErrInvalidInput is a precondition violation by the caller: wrong salt
	// length, empty passphrase or empty plaintext.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDecryption covers a bad integrity tag, a malformed token and a key
	// derived from the wrong passphrase or salt. The causes are deliberately
	// not distinguished.
	ErrDecryption = errors.New("decryption failed: wrong credentials or corrupted token")
)
