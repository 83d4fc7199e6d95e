package gateway_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oidcvault/oidcvault/internal/config"
	"github.com/oidcvault/oidcvault/internal/crypt"
	"github.com/oidcvault/oidcvault/internal/fileio"
	"github.com/oidcvault/oidcvault/internal/gateway"
	"github.com/oidcvault/oidcvault/internal/models"
	"github.com/oidcvault/oidcvault/internal/passwd"
	"github.com/oidcvault/oidcvault/internal/secret"
	"github.com/oidcvault/oidcvault/internal/vaultdir"
)

type fixture struct {
	gw       *gateway.Gateway
	store    *vaultdir.Store
	prompter *passwd.MockPrompter
	dir      string
}

func newFixture(t *testing.T, passwords ...string) *fixture {
	t.Helper()

	home := t.TempDir()
	fs := fileio.New(nil)
	store := vaultdir.New(config.StoreConfig{
		CandidateDirs: []string{".config/oidcvault", ".oidcvault"},
		SeedFile:      "issuer.config",
	}, home, fs, nil)
	dir, err := store.Init()
	require.NoError(t, err)

	prompter := &passwd.MockPrompter{Passwords: passwords}
	resolver := passwd.NewResolver(config.PasswordConfig{MaxAttempts: 3}, prompter, nil)

	return &fixture{
		gw:       gateway.New(fs, crypt.New(), resolver, nil),
		store:    store,
		prompter: prompter,
		dir:      dir,
	}
}

func (f *fixture) target(name string) gateway.Target {
	return gateway.StoreTarget{Store: f.store, Name: name}
}

func TestEncryptDecryptRoundTripViaStore(t *testing.T) {
	f := newFixture(t, "pw", "pw")
	ctx := context.Background()

	err := f.gw.EncryptAndWrite(ctx, f.target("alice"), []byte("credentials"), "alice", gateway.PasswordOptions{})
	require.NoError(t, err)

	plaintext, err := f.gw.Decrypt(ctx, f.target("alice"), "")
	require.NoError(t, err)
	defer plaintext.Wipe()

	assert.Equal(t, "credentials", string(plaintext.Bytes()))
	assert.Equal(t, 2, f.prompter.Calls)
}

func TestEncryptDecryptRoundTripViaPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	path := filepath.Join(f.dir, "external")

	err := f.gw.EncryptAndWrite(ctx, gateway.PathTarget(path), []byte("data"), "backup",
		gateway.PasswordOptions{Suggested: secret.FromString("pw")})
	require.NoError(t, err)

	plaintext, password, err := f.gw.DecryptWithPassword(ctx, gateway.PathTarget(path), "echo pw")
	require.NoError(t, err)
	defer plaintext.Wipe()
	defer password.Wipe()

	assert.Equal(t, "data", string(plaintext.Bytes()))
	assert.Zero(t, f.prompter.Calls, "suggested value and command cover both operations")
}

func TestEncryptArgumentErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		run  func() error
	}{
		{"nil target", func() error {
			return f.gw.EncryptAndWrite(ctx, nil, []byte("x"), "hint", gateway.PasswordOptions{})
		}},
		{"nil plaintext", func() error {
			return f.gw.EncryptAndWrite(ctx, f.target("a"), nil, "hint", gateway.PasswordOptions{})
		}},
		{"empty hint", func() error {
			return f.gw.EncryptAndWrite(ctx, f.target("a"), []byte("x"), "", gateway.PasswordOptions{})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			assert.ErrorIs(t, err, models.ErrMissingArgument)
			assert.Zero(t, f.prompter.Calls, "argument errors precede any password strategy")

			exists, _ := f.store.FileExists("a")
			assert.False(t, exists, "argument errors perform no I/O")
		})
	}
}

func TestEncryptArgumentErrorWipesSuggested(t *testing.T) {
	f := newFixture(t)

	var wipes int
	prev := secret.SetWipeObserver(func() { wipes++ })
	defer secret.SetWipeObserver(prev)

	suggested := secret.FromString("pw")
	err := f.gw.EncryptAndWrite(context.Background(), nil, []byte("x"), "hint",
		gateway.PasswordOptions{Suggested: suggested})

	assert.ErrorIs(t, err, models.ErrMissingArgument)
	assert.Equal(t, 1, wipes, "the suggested password must not outlive the failed call")
	assert.Nil(t, suggested.Bytes())
}

func TestDecryptMissingFileSkipsPasswordResolution(t *testing.T) {
	f := newFixture(t, "never-used")

	_, _, err := f.gw.DecryptWithPassword(context.Background(), f.target("missing.file"), "")
	assert.ErrorIs(t, err, models.ErrFileNotFound)
	assert.Zero(t, f.prompter.Calls, "no prompting for a missing target")
}

func TestDecryptRetriesThenSucceeds(t *testing.T) {
	f := newFixture(t, "right", "wrong", "also-wrong", "right")
	ctx := context.Background()

	require.NoError(t, f.gw.EncryptAndWrite(ctx, f.target("alice"), []byte("data"), "alice", gateway.PasswordOptions{}))

	plaintext, password, err := f.gw.DecryptWithPassword(ctx, f.target("alice"), "")
	require.NoError(t, err)
	defer plaintext.Wipe()

	assert.Equal(t, "data", string(plaintext.Bytes()))
	assert.Equal(t, "right", string(password.Bytes()),
		"the succeeding password is returned for reuse")
	password.Wipe()

	// 1 for encryption + 3 decryption attempts.
	assert.Equal(t, 4, f.prompter.Calls)
}

func TestDecryptExhaustsRetryLimit(t *testing.T) {
	// Limit is 3; a fourth, correct candidate must never be asked for.
	f := newFixture(t, "right", "wrong1", "wrong2", "wrong3", "right")
	ctx := context.Background()

	require.NoError(t, f.gw.EncryptAndWrite(ctx, f.target("alice"), []byte("data"), "alice", gateway.PasswordOptions{}))

	_, _, err := f.gw.DecryptWithPassword(ctx, f.target("alice"), "")
	assert.ErrorIs(t, err, models.ErrPasswordExhausted)
	assert.Equal(t, 4, f.prompter.Calls, "1 encrypt prompt + exactly 3 decrypt attempts")
}

func TestDecryptCancelledPrompt(t *testing.T) {
	f := newFixture(t, "pw")
	ctx := context.Background()

	require.NoError(t, f.gw.EncryptAndWrite(ctx, f.target("alice"), []byte("data"), "alice", gateway.PasswordOptions{}))

	// The prompter's scripted passwords are used up; the next read
	// reports cancellation.
	_, _, err := f.gw.DecryptWithPassword(ctx, f.target("alice"), "")
	assert.ErrorIs(t, err, models.ErrPromptCancelled)
}

func TestPasswordReuseForReencryption(t *testing.T) {
	f := newFixture(t, "pw", "pw")
	ctx := context.Background()

	require.NoError(t, f.gw.EncryptAndWrite(ctx, f.target("alice"), []byte("v1"), "alice", gateway.PasswordOptions{}))

	plaintext, password, err := f.gw.DecryptWithPassword(ctx, f.target("alice"), "")
	require.NoError(t, err)

	// Re-encrypt modified content under the returned password; no
	// further prompting.
	err = f.gw.EncryptAndWrite(ctx, f.target("alice"), []byte("v2"), "alice",
		gateway.PasswordOptions{Suggested: password})
	require.NoError(t, err)
	plaintext.Wipe()

	assert.Equal(t, 2, f.prompter.Calls)

	got, err := f.gw.Decrypt(ctx, f.target("alice"), "")
	require.NoError(t, err)
	defer got.Wipe()
	assert.Equal(t, "v2", string(got.Bytes()))
}

func TestSecureErasureAccounting(t *testing.T) {
	f := newFixture(t, "right", "wrong", "wrong", "wrong")
	ctx := context.Background()

	require.NoError(t, f.gw.EncryptAndWrite(ctx, f.target("alice"), []byte("data"), "alice", gateway.PasswordOptions{}))

	var wipes int
	prev := secret.SetWipeObserver(func() { wipes++ })
	defer secret.SetWipeObserver(prev)

	_, _, err := f.gw.DecryptWithPassword(ctx, f.target("alice"), "")
	require.ErrorIs(t, err, models.ErrPasswordExhausted)

	// Each of the three rejected candidates was wiped before the
	// next attempt; nothing else sensitive was created.
	assert.Equal(t, 3, wipes)
}

func TestDecryptConvenienceWipesPassword(t *testing.T) {
	f := newFixture(t, "pw", "pw")
	ctx := context.Background()

	require.NoError(t, f.gw.EncryptAndWrite(ctx, f.target("alice"), []byte("data"), "alice", gateway.PasswordOptions{}))

	var wipes int
	prev := secret.SetWipeObserver(func() { wipes++ })
	defer secret.SetWipeObserver(prev)

	plaintext, err := f.gw.Decrypt(ctx, f.target("alice"), "")
	require.NoError(t, err)

	assert.Equal(t, 1, wipes, "the succeeding password is wiped internally")

	plaintext.Wipe()
	assert.Equal(t, 2, wipes)
}

func TestPathTargetEmpty(t *testing.T) {
	f := newFixture(t)

	err := f.gw.EncryptAndWrite(context.Background(), gateway.PathTarget(""), []byte("x"), "hint", gateway.PasswordOptions{})
	assert.ErrorIs(t, err, models.ErrMissingArgument)
}

func TestDecryptCorruptFileIsNotRetried(t *testing.T) {
	f := newFixture(t, "pw")
	ctx := context.Background()

	require.NoError(t, f.store.WriteFile("garbage", []byte("not ciphertext at all")))

	_, _, err := f.gw.DecryptWithPassword(ctx, f.target("garbage"), "")
	assert.ErrorIs(t, err, crypt.ErrInvalidCiphertext)
	assert.Equal(t, 1, f.prompter.Calls, "a malformed file fails on the first attempt")
}
