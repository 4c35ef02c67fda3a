package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamevault/backend/internal/repository"
	"gamevault/backend/internal/service"
)

func newLibraryFixture(t *testing.T) *service.LibraryService {
	t.Helper()
	repo := repository.NewMemoryRepository()
	seedLibrary(t, repo)
	return service.NewLibraryService(repo)
}

func TestGamesPagination(t *testing.T) {
	library := newLibraryFixture(t)

	page1, total, err := library.Games(1, 2, repository.SortOldest)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page1, 2)
	assert.Equal(t, "Half-Life", page1[0].Title)
	assert.Equal(t, "Half-Life 2", page1[1].Title)

	page2, _, err := library.Games(2, 2, repository.SortOldest)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, "Super Meat Boy", page2[0].Title)

	page3, _, err := library.Games(3, 2, repository.SortOldest)
	require.NoError(t, err)
	assert.Empty(t, page3)
}

func TestGamesNewestFirst(t *testing.T) {
	library := newLibraryFixture(t)

	games, _, err := library.Games(1, 10, repository.SortNewest)
	require.NoError(t, err)
	require.Len(t, games, 3)
	assert.Equal(t, "Super Meat Boy", games[0].Title)
	assert.Equal(t, "Half-Life", games[2].Title)
}

func TestGamesByGenre(t *testing.T) {
	library := newLibraryFixture(t)

	games, total, err := library.GamesByGenre(1, 10, "Action")
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, games, 2)

	games, total, err = library.GamesByGenre(1, 10, "Strategy")
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, games)
}

func TestSearchByTitle(t *testing.T) {
	library := newLibraryFixture(t)

	games, err := library.Search("super meat boy", repository.FieldTitle)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "Super Meat Boy", games[0].Title)
}

func TestSearchByDescriptionAndPublisher(t *testing.T) {
	library := newLibraryFixture(t)

	games, err := library.Search("tough-as-nails", repository.FieldDescription)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "Super Meat Boy", games[0].Title)

	games, err = library.Search("valve", repository.FieldPublisher)
	require.NoError(t, err)
	assert.Len(t, games, 2)
}
