package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abiwaumi/tablewater/internal/domain/models"
	"github.com/abiwaumi/tablewater/internal/repository/memory"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.SeedDemoUsers())
	return NewService(store, "test-secret", nil)
}

func TestSignInAndCurrentUser(t *testing.T) {
	svc := newTestService(t)

	user, token, err := svc.SignIn(context.Background(), "staff@abiwaumi.com", memory.DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, user.Role)
	require.NotEmpty(t, token)

	resolved, err := svc.CurrentUser(token)
	require.NoError(t, err)
	assert.Equal(t, user.Email, resolved.Email)
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	svc := newTestService(t)
	var aerr *models.AuthenticationError

	_, _, err := svc.SignIn(context.Background(), "staff@abiwaumi.com", "wrong")
	require.ErrorAs(t, err, &aerr)

	_, _, err = svc.SignIn(context.Background(), "ghost@abiwaumi.com", memory.DemoPassword)
	require.ErrorAs(t, err, &aerr)
}

func TestSignOutRevokesTokenAndIsIdempotent(t *testing.T) {
	svc := newTestService(t)

	_, token, err := svc.SignIn(context.Background(), "admin@abiwaumi.com", memory.DemoPassword)
	require.NoError(t, err)

	svc.SignOut(token)
	svc.SignOut(token)

	_, err = svc.CurrentUser(token)
	var aerr *models.AuthenticationError
	assert.ErrorAs(t, err, &aerr)
}

func TestCurrentUserRejectsForgedToken(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CurrentUser("not-a-jwt")
	var aerr *models.AuthenticationError
	assert.ErrorAs(t, err, &aerr)

	other := NewService(nil, "other-secret", nil)
	_, foreignToken, signErr := newTestServiceToken(t, other)
	require.NoError(t, signErr)

	_, err = svc.CurrentUser(foreignToken)
	assert.ErrorAs(t, err, &aerr)
}

func newTestServiceToken(t *testing.T, svc *Service) (models.User, string, error) {
	t.Helper()
	user := models.User{ID: "x", Email: "x@abiwaumi.com", Role: models.RoleAdmin}
	token, err := svc.createToken(user)
	return user, token, err
}

func TestSubscribeNotifiesOnSessionChanges(t *testing.T) {
	svc := newTestService(t)

	var events []*models.User
	unsubscribe := svc.Subscribe(func(user *models.User) {
		events = append(events, user)
	})

	_, token, err := svc.SignIn(context.Background(), "viewer@abiwaumi.com", memory.DemoPassword)
	require.NoError(t, err)
	svc.SignOut(token)

	require.Len(t, events, 2)
	require.NotNil(t, events[0])
	assert.Equal(t, models.RoleViewer, events[0].Role)
	assert.Nil(t, events[1])

	unsubscribe()
	svc.SignOut(token)
	assert.Len(t, events, 2)
}
