package provision

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gopkg.in/ini.v1"

	"github.com/MKhiriev/go-rpa-cadastro/internal/credentials"
	"github.com/MKhiriev/go-rpa-cadastro/internal/crypto"
	"github.com/MKhiriev/go-rpa-cadastro/internal/logger"
	"github.com/MKhiriev/go-rpa-cadastro/internal/mock"
)

// sourceFromSnippet parses a rendered snippet the way config.ini is read.
func sourceFromSnippet(t *testing.T, snippet string) credentials.MapSource {
	t.Helper()
	f, err := ini.Load([]byte(snippet))
	require.NoError(t, err)

	src := credentials.MapSource{}
	for _, sec := range f.Sections() {
		src[sec.Name()] = sec.KeysHash()
	}
	return src
}

func TestGenerator_SnippetDecryptsWithSamePassphrase(t *testing.T) {
	g := NewGenerator(crypto.NewKeyChainService())

	res, err := g.Generate(Request{
		Passphrase:    "TESTERPA",
		AppPassword:   "SENHA_APP",
		EmailPassword: "SENHA_EMAIL",
	})
	require.NoError(t, err)

	salt, err := base64.StdEncoding.DecodeString(res.Salt)
	require.NoError(t, err)
	assert.Len(t, salt, crypto.SaltSize)

	snippet, err := res.Snippet()
	require.NoError(t, err)
	assert.Contains(t, snippet, "["+credentials.SectionCredentials+"]")
	assert.Contains(t, snippet, "["+credentials.SectionEmail+"]")
	assert.NotContains(t, snippet, "TESTERPA")
	assert.NotContains(t, snippet, "SENHA_APP")
	assert.NotContains(t, snippet, credentials.KeyMasterKey)

	store := credentials.NewStore(
		sourceFromSnippet(t, snippet),
		credentials.EnvMasterKey("TESTERPA"),
		crypto.NewKeyChainService(),
		logger.Nop(),
	)
	secrets, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "SENHA_APP", secrets.App.Reveal())
	assert.Equal(t, "SENHA_EMAIL", secrets.Email.Reveal())
}

func TestGenerator_FreshSaltEveryTime(t *testing.T) {
	g := NewGenerator(crypto.NewKeyChainService())
	req := Request{Passphrase: "TESTERPA", AppPassword: "a", EmailPassword: "b"}

	first, err := g.Generate(req)
	require.NoError(t, err)
	second, err := g.Generate(req)
	require.NoError(t, err)

	assert.NotEqual(t, first.Salt, second.Salt)
	assert.NotEqual(t, first.AppToken, second.AppToken)
}

func TestGenerator_InvalidRequest(t *testing.T) {
	g := NewGenerator(crypto.NewKeyChainService())

	tests := []struct {
		name string
		req  Request
		want error
	}{
		{name: "no passphrase", req: Request{AppPassword: "a", EmailPassword: "b"}, want: ErrEmptyPassphrase},
		{name: "no app password", req: Request{Passphrase: "p", EmailPassword: "b"}, want: ErrEmptyPassword},
		{name: "no e-mail password", req: Request{Passphrase: "p", AppPassword: "a"}, want: ErrEmptyPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.Generate(tt.req)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGenerator_SaltFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	kc := mock.NewMockKeyChainService(ctrl)
	kc.EXPECT().GenerateSalt().Return(nil, errors.New("entropy exhausted"))

	_, err := NewGenerator(kc).Generate(Request{Passphrase: "p", AppPassword: "a", EmailPassword: "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate salt")
}

func TestGenerator_EncryptFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	kc := mock.NewMockKeyChainService(ctrl)
	salt := make([]byte, crypto.SaltSize)

	gomock.InOrder(
		kc.EXPECT().GenerateSalt().Return(salt, nil),
		kc.EXPECT().DeriveKey(salt, "p").Return(crypto.Key{}, nil),
		kc.EXPECT().Encrypt([]byte("a"), crypto.Key{}).Return(crypto.CipherToken(""), crypto.ErrInvalidInput),
	)

	_, err := NewGenerator(kc).Generate(Request{Passphrase: "p", AppPassword: "a", EmailPassword: "b"})
	require.ErrorIs(t, err, crypto.ErrInvalidInput)
}
