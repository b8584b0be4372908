package credentials

import (
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"
)

const mask = "********"

// Secret holds a decrypted credential. Every formatting path (fmt verbs,
// JSON, zerolog) prints a mask; only Reveal returns the plaintext.
type Secret string

// Reveal returns the plaintext. Call it at the point of use only.
func (s Secret) Reveal() string { return string(s) }

// IsZero reports whether the secret is empty.
func (s Secret) IsZero() bool { return s == "" }

func (s Secret) String() string   { return mask }
func (s Secret) GoString() string { return mask }

func (s Secret) MarshalJSON() ([]byte, error) { return json.Marshal(mask) }

// MarshalZerologObject lets the secret sit in a log event without leaking.
func (s Secret) MarshalZerologObject(e *zerolog.Event) {
	e.Bool("set", !s.IsZero())
}

// Secrets are the plaintext credentials of one run.
type Secrets struct {
	// App is the dashboard login password.
	App Secret
	// Email is the SMTP password of the status mailbox.
	Email Secret
}

// Redact masks every occurrence of a loaded secret in msg. Use it on any
// text that leaves the process (status e-mail, run journal).
func (s Secrets) Redact(msg string) string {
	for _, secret := range []Secret{s.App, s.Email} {
		if secret.IsZero() {
			continue
		}
		msg = strings.ReplaceAll(msg, secret.Reveal(), mask)
	}
	return msg
}
