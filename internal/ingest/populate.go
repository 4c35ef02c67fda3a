package ingest

import (
	"fmt"

	"github.com/rs/zerolog"

	"gamevault/backend/internal/repository"
)

// Populate reads the catalogue at path and loads it into repo. Genres and
// publishers go in first so the games' associations resolve against existing
// rows in the persistent backend.
func Populate(repo repository.Repository, path string, log zerolog.Logger) error {
	reader := NewCSVReader(log)
	if err := reader.ReadFile(path); err != nil {
		return err
	}

	if err := repo.AddGenres(reader.Genres()); err != nil {
		return fmt.Errorf("populate genres: %w", err)
	}
	if err := repo.AddPublishers(reader.Publishers()); err != nil {
		return fmt.Errorf("populate publishers: %w", err)
	}
	if err := repo.AddGames(reader.Games()); err != nil {
		return fmt.Errorf("populate games: %w", err)
	}

	log.Info().
		Int("games", len(reader.Games())).
		Int("genres", len(reader.Genres())).
		Int("publishers", len(reader.Publishers())).
		Msg("catalogue loaded")
	return nil
}
