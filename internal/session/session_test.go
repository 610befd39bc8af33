package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gokeyring "github.com/zalando/go-keyring"

	bujoerrors "github.com/julianstephens/bujo/internal/errors"
	"github.com/julianstephens/bujo/internal/keyring"
	"github.com/julianstephens/bujo/internal/models"
)

func fixedSource(token string) TokenSource {
	return func() (string, error) { return token, nil }
}

func testUser() models.User {
	return models.User{
		ID:    "user-1",
		Email: "ana@example.com",
		Metadata: models.UserMetadata{
			FullName:  "Ana Lima",
			AvatarURL: "https://example.com/a.png",
		},
	}
}

func TestIssueAndVerify(t *testing.T) {
	m := NewManager([]byte("secret"), time.Hour, nil)

	token, err := m.Issue(testUser())
	require.NoError(t, err)

	user, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, testUser(), user)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := NewManager([]byte("one"), time.Hour, nil).Issue(testUser())
	require.NoError(t, err)

	_, err = NewManager([]byte("two"), time.Hour, nil).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	m := NewManager([]byte("secret"), time.Minute, nil)
	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issued }

	token, err := m.Issue(testUser())
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestIssue_RequiresSecretAndSubject(t *testing.T) {
	_, err := NewManager(nil, time.Hour, nil).Issue(testUser())
	assert.ErrorIs(t, err, ErrNoSecret)

	_, err = NewManager([]byte("secret"), time.Hour, nil).Issue(models.User{})
	assert.ErrorIs(t, err, ErrMissingClaim)
}

func TestCurrentUser(t *testing.T) {
	signer := NewManager([]byte("secret"), time.Hour, nil)
	token, err := signer.Issue(testUser())
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		m := NewManager([]byte("secret"), time.Hour, fixedSource(token))
		user, err := m.CurrentUser(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
		assert.Equal(t, "Ana Lima", user.Metadata.FullName)
	})

	t.Run("no token", func(t *testing.T) {
		m := NewManager([]byte("secret"), time.Hour, fixedSource(""))
		_, err := m.CurrentUser(context.Background())
		assert.ErrorIs(t, err, bujoerrors.ErrNotAuthenticated)
	})

	t.Run("garbage token", func(t *testing.T) {
		m := NewManager([]byte("secret"), time.Hour, fixedSource("not-a-jwt"))
		_, err := m.CurrentUser(context.Background())
		assert.ErrorIs(t, err, bujoerrors.ErrNotAuthenticated)
	})

	t.Run("source failure", func(t *testing.T) {
		m := NewManager([]byte("secret"), time.Hour, func() (string, error) {
			return "", errors.New("keyring locked")
		})
		_, err := m.CurrentUser(context.Background())
		require.Error(t, err)
		assert.NotErrorIs(t, err, bujoerrors.ErrNotAuthenticated)
	})
}

func TestStatic(t *testing.T) {
	_, err := Static{}.CurrentUser(context.Background())
	assert.ErrorIs(t, err, bujoerrors.ErrNotAuthenticated)

	u := testUser()
	user, err := Static{User: &u}.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, u.ID, user.ID)
}

func TestResolveSecret(t *testing.T) {
	gokeyring.MockInit()

	secret, err := ResolveSecret("configured")
	require.NoError(t, err)
	assert.Equal(t, []byte("configured"), secret)

	_, err = keyring.GetSessionSecret()
	assert.ErrorIs(t, err, keyring.ErrNotFound, "configured secret must not touch the keyring")

	first, err := ResolveSecret("")
	require.NoError(t, err)
	assert.Len(t, first, 64)

	second, err := ResolveSecret("")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDefaultTokenSource(t *testing.T) {
	gokeyring.MockInit()
	t.Setenv("BUJO_SESSION_TOKEN", "")

	token, err := DefaultTokenSource()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, keyring.SetSessionToken("from-keyring"))
	token, err = DefaultTokenSource()
	require.NoError(t, err)
	assert.Equal(t, "from-keyring", token)

	t.Setenv("BUJO_SESSION_TOKEN", "from-env")
	token, err = DefaultTokenSource()
	require.NoError(t, err)
	assert.Equal(t, "from-env", token)
}
