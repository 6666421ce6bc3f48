package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenPurpose_Valid(t *testing.T) {
	for _, p := range []TokenPurpose{
		PurposeAccess, PurposeRefresh, PurposePasswordless, PurposeVerifyEmail, PurposeResetPassword,
	} {
		require.True(t, p.Valid(), p.String())
	}

	require.False(t, TokenPurpose("").Valid())
	require.False(t, TokenPurpose("admin").Valid())
	require.False(t, TokenPurpose("Access").Valid(), "purposes are case sensitive")
}

func TestTokenPurpose_RequiresProof(t *testing.T) {
	tests := []struct {
		purpose TokenPurpose
		want    bool
	}{
		{PurposeAccess, false},
		{PurposeRefresh, false},
		{PurposePasswordless, true},
		{PurposeVerifyEmail, true},
		{PurposeResetPassword, true},
	}

	for _, tt := range tests {
		t.Run(tt.purpose.String(), func(t *testing.T) {
			require.Equal(t, tt.want, tt.purpose.RequiresProof())
		})
	}
}

func TestDefaultPolicy_TTLs(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		purpose TokenPurpose
		want    time.Duration
	}{
		{PurposeAccess, time.Hour},
		{PurposeRefresh, 24 * time.Hour},
		{PurposePasswordless, 10 * time.Minute},
		{PurposeVerifyEmail, 10 * time.Minute},
		{PurposeResetPassword, 10 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.purpose.String(), func(t *testing.T) {
			ttl, err := p.TTL(tt.purpose)
			require.NoError(t, err)
			require.Equal(t, tt.want, ttl)
		})
	}
}

func TestPolicy_TTL_UnknownPurpose(t *testing.T) {
	_, err := DefaultPolicy().TTL(TokenPurpose("mystery"))
	require.Error(t, err)
}

func TestPolicy_WithTTL(t *testing.T) {
	base := DefaultPolicy()
	custom := base.WithTTL(PurposeAccess, 15*time.Minute)

	got, err := custom.TTL(PurposeAccess)
	require.NoError(t, err)
	require.Equal(t, 15*time.Minute, got)

	t.Run("original unchanged", func(t *testing.T) {
		got, err := base.TTL(PurposeAccess)
		require.NoError(t, err)
		require.Equal(t, time.Hour, got)
	})

	t.Run("other purposes unchanged", func(t *testing.T) {
		got, err := custom.TTL(PurposeRefresh)
		require.NoError(t, err)
		require.Equal(t, 24*time.Hour, got)
	})

	t.Run("non-positive ttl ignored", func(t *testing.T) {
		p := base.WithTTL(PurposeAccess, 0)
		got, err := p.TTL(PurposeAccess)
		require.NoError(t, err)
		require.Equal(t, time.Hour, got)
	})

	t.Run("unknown purpose ignored", func(t *testing.T) {
		p := base.WithTTL(TokenPurpose("mystery"), time.Minute)
		_, err := p.TTL(TokenPurpose("mystery"))
		require.Error(t, err)
	})
}
