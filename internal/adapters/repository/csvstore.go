package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/eventure/rankd/internal/domain/model"
	"github.com/eventure/rankd/pkg/logger"
)

// Batch column names, in output order.
var columns = []string{
	"contentId", "title", "description", "location", "start",
	"source", "type", "currencyCode", "amount", "url", "distance",
}

// Accepted timestamp layouts, tried in order. Anything else is coerced to
// missing and later dropped by the validity filter.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// CSVStore implements Store over a directory of {userID}.csv files.
type CSVStore struct {
	dir               string
	writeScoreColumns bool
	log               logger.Logger
}

// Option applies a configuration option to the CSVStore.
type Option func(*CSVStore)

// WithContentDir sets the batch directory.
func WithContentDir(dir string) Option {
	return func(s *CSVStore) {
		if dir != "" {
			s.dir = dir
		}
	}
}

// WithScoreColumns appends rank and finalScore columns to saved output.
func WithScoreColumns(enabled bool) Option {
	return func(s *CSVStore) {
		s.writeScoreColumns = enabled
	}
}

// WithLogger sets the store logger.
func WithLogger(log logger.Logger) Option {
	return func(s *CSVStore) {
		if log != nil {
			s.log = log
		}
	}
}

// NewCSVStore creates a CSV-backed batch store.
func NewCSVStore(opts ...Option) *CSVStore {
	s := &CSVStore{
		dir: "content",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadBatch reads {dir}/{userID}.csv into events. A missing required
// column or an unparseable row is fatal for the whole batch; a malformed
// field inside a well-formed row is coerced to missing and left to the
// validity filter. The second return counts rows skipped for an unusable
// contentId.
func (s *CSVStore) LoadBatch(ctx context.Context, userID int) ([]model.Event, int, error) {
	path := filepath.Join(s.dir, fmt.Sprintf("%d.csv", userID))
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, fmt.Errorf("%w: user %d", ErrBatchNotFound, userID)
		}
		return nil, 0, fmt.Errorf("open batch for user %d: %w", userID, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // row width validated against the header below

	header, err := r.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrMalformedBatch, err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, required := range columns {
		if _, ok := index[required]; !ok {
			return nil, 0, fmt.Errorf("%w: %q", ErrMissingColumn, required)
		}
	}

	var events []model.Event
	skipped := 0
	for line := 2; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Truncating here would silently rank a partial batch.
			return nil, 0, fmt.Errorf("%w: line %d: %w", ErrMalformedBatch, line, err)
		}
		field := func(name string) string {
			i := index[name]
			if i >= len(record) {
				return ""
			}
			return record[i]
		}

		id, err := strconv.Atoi(field("contentId"))
		if err != nil {
			skipped++
			if s.log != nil {
				s.log.Warn(ctx, "skipping row with unusable contentId",
					logger.Int("line", line),
					logger.String("contentId", field("contentId")),
				)
			}
			continue
		}

		events = append(events, model.Event{
			ContentID:    id,
			Title:        field("title"),
			Description:  field("description"),
			Location:     field("location"),
			Start:        parseTimestamp(field("start")),
			Source:       field("source"),
			Type:         field("type"),
			CurrencyCode: field("currencyCode"),
			Amount:       parseFloat(field("amount")),
			URL:          field("url"),
			Distance:     parseFloat(field("distance")),
		})
	}
	return events, skipped, nil
}

// SaveRanked writes the ranked batch to {dir}/{userID}.csv in rank order.
func (s *CSVStore) SaveRanked(ctx context.Context, userID int, ranked []model.RankedEvent) error {
	w, f, err := s.openBatchWriter(userID)
	if err != nil {
		return err
	}
	defer f.Close()

	header := columns
	if s.writeScoreColumns {
		header = append(append([]string{}, columns...), "rank", "finalScore")
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, re := range ranked {
		row := eventRow(re.Event)
		if s.writeScoreColumns {
			row = append(row,
				strconv.Itoa(re.Rank),
				strconv.FormatFloat(re.Score, 'f', 2, 64),
			)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush ranked batch: %w", err)
	}
	return nil
}

// WriteBatch writes an unranked batch to {dir}/{userID}.csv. Used by the
// batch generator and by tests seeding fixtures.
func (s *CSVStore) WriteBatch(ctx context.Context, userID int, events []model.Event) error {
	w, f, err := s.openBatchWriter(userID)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := w.Write(columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, e := range events {
		if err := w.Write(eventRow(e)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush batch: %w", err)
	}
	return nil
}

// openBatchWriter creates {dir}/{userID}.csv, making the directory first.
func (s *CSVStore) openBatchWriter(userID int) (*csv.Writer, *os.File, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create content dir: %w", err)
	}
	path := filepath.Join(s.dir, fmt.Sprintf("%d.csv", userID))
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create batch for user %d: %w", userID, err)
	}
	return csv.NewWriter(f), f, nil
}

// eventRow renders one event in output column order.
func eventRow(e model.Event) []string {
	return []string{
		strconv.Itoa(e.ContentID),
		e.Title,
		e.Description,
		e.Location,
		formatTimestamp(e.Start),
		e.Source,
		e.Type,
		e.CurrencyCode,
		formatFloat(e.Amount),
		e.URL,
		formatFloat(e.Distance),
	}
}

// parseTimestamp coerces unparseable values to the zero time.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// parseFloat coerces empty or unparseable values to NaN.
func parseFloat(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// formatFloat renders NaN as an empty field.
func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatTimestamp renders the zero time as an empty field.
func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
