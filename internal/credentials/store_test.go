package credentials_test

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-rpa-cadastro/internal/credentials"
	"github.com/MKhiriev/go-rpa-cadastro/internal/crypto"
	"github.com/MKhiriev/go-rpa-cadastro/internal/logger"
	"github.com/MKhiriev/go-rpa-cadastro/internal/mock"
)

const testPassphrase = "TESTERPA"

func testSalt() []byte {
	salt := make([]byte, crypto.SaltSize)
	for i := range salt {
		salt[i] = byte(i * 7)
	}
	return salt
}

// newProvisionedSource encrypts appPassword and emailPassword the way the
// provisioning tool does and lays them out like config.ini.
func newProvisionedSource(t *testing.T, passphrase, appPassword, emailPassword string) credentials.MapSource {
	t.Helper()
	kc := crypto.NewKeyChainService()

	key, err := kc.DeriveKey(testSalt(), passphrase)
	require.NoError(t, err)

	appToken, err := kc.Encrypt([]byte(appPassword), key)
	require.NoError(t, err)
	emailToken, err := kc.Encrypt([]byte(emailPassword), key)
	require.NoError(t, err)

	return credentials.MapSource{
		credentials.SectionCredentials: {
			"usuario":   "robo",
			credentials.KeySalt:     base64.StdEncoding.EncodeToString(testSalt()),
			credentials.KeyAppToken: string(appToken),
		},
		credentials.SectionEmail: {
			credentials.KeyEmailToken: string(emailToken),
		},
	}
}

func newTestStore(source credentials.Source, masterKey string) *credentials.Store {
	return credentials.NewStore(source, credentials.EnvMasterKey(masterKey), crypto.NewKeyChainService(), logger.Nop())
}

func TestStore_Load_Success(t *testing.T) {
	source := newProvisionedSource(t, testPassphrase, "SENHA_APP", "SENHA_EMAIL")

	secrets, err := newTestStore(source, testPassphrase).Load()
	require.NoError(t, err)

	assert.Equal(t, "SENHA_APP", secrets.App.Reveal())
	assert.Equal(t, "SENHA_EMAIL", secrets.Email.Reveal())
}

func TestStore_Load_MissingFieldsAreConfigurationErrors(t *testing.T) {
	tests := []struct {
		name    string
		section string
		key     string
		blank   bool
	}{
		{name: "missing salt", section: credentials.SectionCredentials, key: credentials.KeySalt},
		{name: "blank salt", section: credentials.SectionCredentials, key: credentials.KeySalt, blank: true},
		{name: "missing app token", section: credentials.SectionCredentials, key: credentials.KeyAppToken},
		{name: "blank email token", section: credentials.SectionEmail, key: credentials.KeyEmailToken, blank: true},
		{name: "missing email token", section: credentials.SectionEmail, key: credentials.KeyEmailToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := newProvisionedSource(t, testPassphrase, "SENHA_APP", "SENHA_EMAIL")
			if tt.blank {
				source[tt.section][tt.key] = "   "
			} else {
				delete(source[tt.section], tt.key)
			}

			_, err := newTestStore(source, testPassphrase).Load()
			require.Error(t, err)
			assert.ErrorIs(t, err, credentials.ErrConfiguration)
			assert.NotErrorIs(t, err, crypto.ErrDecryption)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestStore_Load_MissingSectionIsConfigurationError(t *testing.T) {
	source := newProvisionedSource(t, testPassphrase, "SENHA_APP", "SENHA_EMAIL")
	delete(source, credentials.SectionEmail)

	_, err := newTestStore(source, testPassphrase).Load()
	assert.ErrorIs(t, err, credentials.ErrConfiguration)
}

// A missing field must be reported before any key derivation happens.
func TestStore_Load_MissingSaltNeverReachesCrypto(t *testing.T) {
	ctrl := gomock.NewController(t)
	keyChain := mock.NewMockKeyChainService(ctrl)

	source := credentials.MapSource{
		credentials.SectionCredentials: {credentials.KeyAppToken: "token"},
		credentials.SectionEmail:       {credentials.KeyEmailToken: "token"},
	}

	store := credentials.NewStore(source, credentials.EnvMasterKey(testPassphrase), keyChain, logger.Nop())
	_, err := store.Load()
	assert.ErrorIs(t, err, credentials.ErrConfiguration)
}

func TestStore_Load_DerivesKeyOnceForAllCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	keyChain := mock.NewMockKeyChainService(ctrl)

	source := credentials.MapSource{
		credentials.SectionCredentials: {credentials.KeySalt: base64.StdEncoding.EncodeToString(testSalt()), credentials.KeyAppToken: "app-token"},
		credentials.SectionEmail:       {credentials.KeyEmailToken: "email-token"},
	}
	key := crypto.Key{9}

	gomock.InOrder(
		keyChain.EXPECT().DeriveKey(testSalt(), testPassphrase).Return(key, nil).Times(1),
		keyChain.EXPECT().Decrypt(crypto.CipherToken("app-token"), key).Return([]byte("a"), nil),
		keyChain.EXPECT().Decrypt(crypto.CipherToken("email-token"), key).Return([]byte("e"), nil),
	)

	secrets, err := credentials.NewStore(source, credentials.EnvMasterKey(testPassphrase), keyChain, logger.Nop()).Load()
	require.NoError(t, err)
	assert.Equal(t, "a", secrets.App.Reveal())
	assert.Equal(t, "e", secrets.Email.Reveal())
}

func TestStore_Load_MalformedSalt(t *testing.T) {
	tests := map[string]string{
		"not base64":   "###",
		"too short":    base64.StdEncoding.EncodeToString(make([]byte, 8)),
		"too long":     base64.StdEncoding.EncodeToString(make([]byte, 32)),
		"empty decode": "====",
	}

	for name, salt := range tests {
		t.Run(name, func(t *testing.T) {
			source := newProvisionedSource(t, testPassphrase, "SENHA_APP", "SENHA_EMAIL")
			source[credentials.SectionCredentials][credentials.KeySalt] = salt

			_, err := newTestStore(source, testPassphrase).Load()
			assert.ErrorIs(t, err, credentials.ErrConfiguration)
		})
	}
}

func TestStore_Load_AcceptsURLSafeSalt(t *testing.T) {
	source := newProvisionedSource(t, testPassphrase, "SENHA_APP", "SENHA_EMAIL")
	source[credentials.SectionCredentials][credentials.KeySalt] = base64.URLEncoding.EncodeToString(testSalt())

	secrets, err := newTestStore(source, testPassphrase).Load()
	require.NoError(t, err)
	assert.Equal(t, "SENHA_APP", secrets.App.Reveal())
}

func TestStore_Load_NoMasterKey(t *testing.T) {
	source := newProvisionedSource(t, testPassphrase, "SENHA_APP", "SENHA_EMAIL")

	_, err := newTestStore(source, "").Load()
	assert.ErrorIs(t, err, credentials.ErrConfiguration)
}

func TestStore_Load_TokenFromAnotherPassphrase(t *testing.T) {
	source := newProvisionedSource(t, "OUTRA_CHAVE", "SENHA_APP", "SENHA_EMAIL")

	_, err := newTestStore(source, testPassphrase).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, crypto.ErrDecryption)
	assert.NotErrorIs(t, err, credentials.ErrConfiguration)
	assert.NotContains(t, err.Error(), testPassphrase)
	assert.NotContains(t, err.Error(), "SENHA_APP")
}

func TestStore_Load_CorruptedEmailToken(t *testing.T) {
	source := newProvisionedSource(t, testPassphrase, "SENHA_APP", "SENHA_EMAIL")
	source[credentials.SectionEmail][credentials.KeyEmailToken] = source[credentials.SectionEmail][credentials.KeyEmailToken][:40]

	_, err := newTestStore(source, testPassphrase).Load()
	assert.ErrorIs(t, err, crypto.ErrDecryption)
	assert.Contains(t, err.Error(), credentials.KeyEmailToken)
}

func TestStore_Load_LegacyMasterKeyFromFile(t *testing.T) {
	source := newProvisionedSource(t, testPassphrase, "SENHA_APP", "SENHA_EMAIL")
	source[credentials.SectionCredentials][credentials.KeyMasterKey] = testPassphrase

	chain := credentials.NewMasterKeyChain(logger.Nop(), credentials.EnvMasterKey(""), credentials.SourceMasterKey{Source: source, Logger: logger.Nop()})
	store := credentials.NewStore(source, chain, crypto.NewKeyChainService(), logger.Nop())

	secrets, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "SENHA_EMAIL", secrets.Email.Reveal())
}

func TestStore_Load_MasterKeyProviderError(t *testing.T) {
	source := newProvisionedSource(t, testPassphrase, "SENHA_APP", "SENHA_EMAIL")

	store := credentials.NewStore(source, failingProvider{}, crypto.NewKeyChainService(), logger.Nop())
	_, err := store.Load()
	assert.ErrorIs(t, err, credentials.ErrConfiguration)
}

type failingProvider struct{}

func (failingProvider) Name() string { return "failing" }
func (failingProvider) MasterKey() (string, bool, error) {
	return "", false, errors.New("provider unavailable")
}
