package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUser_Fingerprint(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 30, 45, 0, time.UTC)

	t.Run("formats as RFC3339", func(t *testing.T) {
		u := User{UpdatedAt: base}
		require.Equal(t, "2024-05-01T10:30:45Z", u.Fingerprint())
	})

	t.Run("sub-second noise is dropped", func(t *testing.T) {
		u1 := User{UpdatedAt: base.Add(100 * time.Millisecond)}
		u2 := User{UpdatedAt: base.Add(900 * time.Millisecond)}
		require.Equal(t, u1.Fingerprint(), u2.Fingerprint())
	})

	t.Run("a full second moves it", func(t *testing.T) {
		u1 := User{UpdatedAt: base}
		u2 := User{UpdatedAt: base.Add(time.Second)}
		require.NotEqual(t, u1.Fingerprint(), u2.Fingerprint())
	})

	t.Run("normalized to UTC", func(t *testing.T) {
		east := time.FixedZone("UTC+10", 10*3600)
		u1 := User{UpdatedAt: base}
		u2 := User{UpdatedAt: base.In(east)}
		require.Equal(t, u1.Fingerprint(), u2.Fingerprint())
	})
}

func TestUser_Verified(t *testing.T) {
	require.False(t, User{}.Verified())

	now := time.Now()
	require.True(t, User{EmailVerifiedAt: &now}.Verified())
}
