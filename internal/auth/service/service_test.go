package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/antonybholmes/go-auth/internal/auth/domain"
	"github.com/antonybholmes/go-auth/internal/auth/notify"
	"github.com/antonybholmes/go-auth/internal/auth/store/drivers/sqlite"
	"github.com/antonybholmes/go-auth/pkg/cryptox"
	"github.com/antonybholmes/go-auth/pkg/jwtx"
)

// mailRecorder captures outbound notifications instead of delivering them.
type mailRecorder struct {
	mu    sync.Mutex
	sends []recordedMail
}

type recordedMail struct {
	User    domain.User
	Purpose domain.TokenPurpose
	Token   string
}

func (r *mailRecorder) Send(_ context.Context, user domain.User, purpose domain.TokenPurpose, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sends = append(r.sends, recordedMail{User: user, Purpose: purpose, Token: token})
	return nil
}

func (r *mailRecorder) last(t *testing.T) recordedMail {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.sends, "expected a notification to have been sent")
	return r.sends[len(r.sends)-1]
}

var _ notify.Notifier = (*mailRecorder)(nil)

type fixture struct {
	store    *sqlite.Store
	tokens   *TokenService
	creds    *CredentialService
	accounts *AccountService
	mails    *mailRecorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSigner(pemKey)
	require.NoError(t, err)

	tokens := &TokenService{
		Signer:   signer,
		Verifier: jwtx.NewVerifierForKey(signer.PublicKey()),
		Store:    st,
		Policy:   domain.DefaultPolicy(),
	}

	mails := &mailRecorder{}

	return &fixture{
		store:  st,
		tokens: tokens,
		creds:  &CredentialService{Store: st},
		accounts: &AccountService{
			Tokens:   tokens,
			Store:    st,
			Notifier: mails,
		},
		mails: mails,
	}
}

func (f *fixture) register(t *testing.T, username, email, password string) domain.User {
	t.Helper()

	user, err := f.creds.Register(context.Background(), RegisterParams{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return user
}
