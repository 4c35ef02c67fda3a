package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamevault/backend/internal/apperror"
	"gamevault/backend/internal/models"
	"gamevault/backend/internal/repository"
	"gamevault/backend/internal/service"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	auth := service.NewAuthService(repository.NewMemoryRepository())

	user, err := auth.Register("Thorke", "cLQ^C#oFXloS")
	require.NoError(t, err)
	assert.Equal(t, "thorke", user.Username)
	assert.Equal(t, "Thorke", user.DisplayName)
	assert.NotEqual(t, "cLQ^C#oFXloS", user.PasswordHash, "password must be stored hashed")

	got, err := auth.Authenticate("Thorke", "cLQ^C#oFXloS")
	require.NoError(t, err)
	assert.Equal(t, user.Username, got.Username)
}

func TestRegisterDuplicateUsernameDifferentCase(t *testing.T) {
	auth := service.NewAuthService(repository.NewMemoryRepository())

	_, err := auth.Register("Thorke", "cLQ^C#oFXloS")
	require.NoError(t, err)

	_, err = auth.Register("THORKE", "anotherPass1")
	assert.True(t, apperror.IsConflict(err), "expected conflict, got %v", err)
}

func TestRegisterRejectsWeakInput(t *testing.T) {
	auth := service.NewAuthService(repository.NewMemoryRepository())

	_, err := auth.Register("", "longenough1")
	assert.True(t, apperror.IsValidation(err))

	_, err = auth.Register("someone", "short")
	assert.True(t, apperror.IsValidation(err))
}

func TestAuthenticateUnknownUser(t *testing.T) {
	auth := service.NewAuthService(repository.NewMemoryRepository())

	_, err := auth.Authenticate("nobody", "whatever1")
	assert.True(t, apperror.IsAuth(err), "expected auth failure, got %v", err)
}

func TestAuthenticateBadPassword(t *testing.T) {
	auth := service.NewAuthService(repository.NewMemoryRepository())

	_, err := auth.Register("Thorke", "cLQ^C#oFXloS")
	require.NoError(t, err)

	_, err = auth.Authenticate("thorke", "wrongpassword")
	assert.True(t, apperror.IsAuth(err), "expected auth failure, got %v", err)
}

// seedLibrary fills a memory repository with a small catalogue for the
// service tests.
func seedLibrary(t *testing.T, repo repository.Repository) {
	t.Helper()

	action := &models.Genre{Name: "Action"}
	indie := &models.Genre{Name: "Indie"}
	require.NoError(t, repo.AddGenres([]*models.Genre{action, indie}))

	meat := &models.Publisher{Name: "Team Meat"}
	valve := &models.Publisher{Name: "Valve"}
	require.NoError(t, repo.AddPublishers([]*models.Publisher{meat, valve}))

	games := []*models.Game{
		{ID: 70, Title: "Half-Life", ReleaseDate: time.Date(1998, time.November, 8, 0, 0, 0, 0, time.UTC), PublisherName: "Valve", Genres: []*models.Genre{action}},
		{ID: 220, Title: "Half-Life 2", ReleaseDate: time.Date(2004, time.November, 16, 0, 0, 0, 0, time.UTC), PublisherName: "Valve", Genres: []*models.Genre{action}},
		{ID: 40800, Title: "Super Meat Boy", Description: "The infamous, tough-as-nails platformer", ReleaseDate: time.Date(2010, time.October, 21, 0, 0, 0, 0, time.UTC), PublisherName: "Team Meat", Genres: []*models.Genre{indie}},
	}
	require.NoError(t, repo.AddGames(games))
}
