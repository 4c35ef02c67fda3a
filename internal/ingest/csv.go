// Package ingest loads the game catalogue from the tabular dataset into a
// repository.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"gamevault/backend/internal/models"
)

// releaseDateLayout matches the dataset's "Oct 21, 2008" format.
const releaseDateLayout = "Jan 2, 2006"

// CSVReader parses the game catalogue CSV. One row per game; publishers and
// genres are deduplicated across rows. Malformed rows are skipped with a
// warning, never fatal.
type CSVReader struct {
	log zerolog.Logger

	games      []*models.Game
	publishers map[string]*models.Publisher
	genres     map[string]*models.Genre
}

// NewCSVReader creates a reader that logs row-level warnings to log.
func NewCSVReader(log zerolog.Logger) *CSVReader {
	return &CSVReader{
		log:        log,
		publishers: make(map[string]*models.Publisher),
		genres:     make(map[string]*models.Genre),
	}
}

// ReadFile opens and parses the CSV at path.
func (r *CSVReader) ReadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open games csv: %w", err)
	}
	defer f.Close()
	return r.Read(f)
}

// Read parses CSV data from src. The first record is the header; every column
// is looked up by name so column order does not matter.
func (r *CSVReader) Read(src io.Reader) error {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return fmt.Errorf("read csv header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		// Strip a UTF-8 BOM if the export carries one.
		cols[strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")] = i
	}

	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			r.log.Warn().Err(err).Int("line", line).Msg("skipping malformed csv record")
			continue
		}
		if err := r.readRow(record, cols); err != nil {
			r.log.Warn().Err(err).Int("line", line).Msg("skipping row with invalid data")
		}
	}
	return nil
}

func (r *CSVReader) readRow(record []string, cols map[string]int) error {
	field := func(name string) (string, error) {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return "", fmt.Errorf("missing column %q", name)
		}
		return record[i], nil
	}

	rawID, err := field("AppID")
	if err != nil {
		return err
	}
	id, err := strconv.ParseUint(strings.TrimSpace(rawID), 10, 32)
	if err != nil {
		return fmt.Errorf("invalid AppID %q: %w", rawID, err)
	}

	title, err := field("Name")
	if err != nil {
		return err
	}

	rawDate, err := field("Release date")
	if err != nil {
		return err
	}
	releaseDate, err := time.Parse(releaseDateLayout, strings.TrimSpace(rawDate))
	if err != nil {
		return fmt.Errorf("invalid release date %q: %w", rawDate, err)
	}

	rawPrice, err := field("Price")
	if err != nil {
		return err
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(rawPrice), 64)
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", rawPrice, err)
	}

	description, _ := field("About the game")
	imageURL, _ := field("Header image")
	websiteURL, _ := field("Website")
	windows, _ := field("Windows")
	mac, _ := field("Mac")
	linux, _ := field("Linux")

	publisherName, err := field("Publishers")
	if err != nil {
		return err
	}
	publisher, ok := r.publishers[publisherName]
	if !ok {
		publisher = &models.Publisher{Name: publisherName}
		r.publishers[publisherName] = publisher
	}

	game := &models.Game{
		ID:              uint(id),
		Title:           title,
		Price:           price,
		ReleaseDate:     releaseDate,
		Description:     description,
		ImageURL:        imageURL,
		WebsiteURL:      websiteURL,
		SupportsWindows: parseFlag(windows),
		SupportsMac:     parseFlag(mac),
		SupportsLinux:   parseFlag(linux),
		PublisherName:   publisher.Name,
	}

	rawGenres, err := field("Genres")
	if err != nil {
		return err
	}
	for _, name := range strings.Split(rawGenres, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		genre, ok := r.genres[name]
		if !ok {
			genre = &models.Genre{Name: name}
			r.genres[name] = genre
		}
		game.Genres = append(game.Genres, genre)
	}

	r.games = append(r.games, game)
	return nil
}

func parseFlag(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "TRUE")
}

// Games returns the parsed games in file order.
func (r *CSVReader) Games() []*models.Game {
	return r.games
}

// Publishers returns the deduplicated publishers.
func (r *CSVReader) Publishers() []*models.Publisher {
	ps := make([]*models.Publisher, 0, len(r.publishers))
	for _, p := range r.publishers {
		ps = append(ps, p)
	}
	return ps
}

// Genres returns the deduplicated genres.
func (r *CSVReader) Genres() []*models.Genre {
	gs := make([]*models.Genre, 0, len(r.genres))
	for _, g := range r.genres {
		gs = append(gs, g)
	}
	return gs
}
