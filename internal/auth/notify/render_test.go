package notify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/antonybholmes/go-auth/internal/auth/domain"
)

func TestRenderMail(t *testing.T) {
	data := mailData{
		Name:    "Alice",
		Link:    "https://app.example.com/reset?token=abc123",
		Expires: "10 minutes",
	}

	for _, purpose := range []domain.TokenPurpose{
		domain.PurposePasswordless,
		domain.PurposeVerifyEmail,
		domain.PurposeResetPassword,
	} {
		t.Run(purpose.String(), func(t *testing.T) {
			body, err := renderMail(purpose, data)
			require.NoError(t, err)
			require.Contains(t, body, "Alice")
			require.Contains(t, body, data.Link)
			require.Contains(t, body, "10 minutes")
		})
	}
}

func TestRenderMail_UnknownPurpose(t *testing.T) {
	_, err := renderMail(domain.PurposeAccess, mailData{})
	require.Error(t, err)
}

func TestRenderMail_EscapesHTML(t *testing.T) {
	body, err := renderMail(domain.PurposePasswordless, mailData{
		Name: "<script>alert(1)</script>",
		Link: "https://app.example.com/signin?token=t",
	})
	require.NoError(t, err)
	require.NotContains(t, body, "<script>")
}
