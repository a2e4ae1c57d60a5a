package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/skitownrace/racereg/internal/models"
)

const eventColumns = `id, name, event_date, competitor_count, location, city,
	state, zip, venue, division, discipline, creator_id, fee, url`

// CreateEvent validates the params and inserts a new event owned by creatorID.
func (s *SQLiteStore) CreateEvent(ctx context.Context, params *models.EventParams, creatorID int64) (int64, error) {
	if err := params.Validate(); err != nil {
		return 0, err
	}
	if creatorID == 0 {
		return 0, &models.ValidationError{Fields: []string{"creator"}}
	}

	query := `
		INSERT INTO events (name, event_date, location, city, state, zip,
		                    venue, division, discipline, creator_id, fee, url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := s.db.ExecContext(ctx, query,
		params.Name,
		params.Date.Format(dateFormat),
		params.OptionalLocation(),
		params.City,
		params.State,
		params.Zip,
		params.Venue,
		params.Division,
		params.Discipline,
		creatorID,
		params.Fee,
		params.OptionalURL(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create event: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read event id: %w", err)
	}
	return id, nil
}

// UpdateEvent overwrites every mutable field of the event. The creator and
// competitor count are never touched here; ownership checks are the
// caller's responsibility.
func (s *SQLiteStore) UpdateEvent(ctx context.Context, eventID int64, params *models.EventParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE events
		SET name = ?, event_date = ?, location = ?, city = ?, state = ?,
		    zip = ?, venue = ?, division = ?, discipline = ?, fee = ?, url = ?
		WHERE id = ?
	`

	_, err := s.db.ExecContext(ctx, query,
		params.Name,
		params.Date.Format(dateFormat),
		params.OptionalLocation(),
		params.City,
		params.State,
		params.Zip,
		params.Venue,
		params.Division,
		params.Discipline,
		params.Fee,
		params.OptionalURL(),
		eventID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

// DeleteEvent removes the event's ledger rows and then the event itself.
// Both deletes run in one transaction; no foreign-key cascade is relied upon.
func (s *SQLiteStore) DeleteEvent(ctx context.Context, eventID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM event_registrations WHERE event_id = ?", eventID); err != nil {
		return fmt.Errorf("failed to delete event registrations: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM events WHERE id = ?", eventID); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetEvent retrieves an event by id. A miss returns (nil, nil).
func (s *SQLiteStore) GetEvent(ctx context.Context, eventID int64) (*models.Event, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE id = ?", eventID)

	event, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil // event not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

// IsEventCreator reports whether accountID created the event.
func (s *SQLiteStore) IsEventCreator(ctx context.Context, eventID, accountID int64) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM events WHERE id = ? AND creator_id = ?",
		eventID, accountID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check event creator: %w", err)
	}
	return count > 0, nil
}

// ListEvents returns events matching the filter, ordered by event date
// ascending. Each optional filter contributes exactly one predicate.
func (s *SQLiteStore) ListEvents(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	var predicates []string
	var args []interface{}

	if term := strings.TrimSpace(filter.Search); term != "" {
		predicates = append(predicates,
			"(LOWER(name) LIKE ? OR LOWER(city) LIKE ? OR LOWER(venue) LIKE ?)")
		pattern := "%" + strings.ToLower(term) + "%"
		args = append(args, pattern, pattern, pattern)
	}
	if filter.State != "" {
		predicates = append(predicates, "state = ?")
		args = append(args, filter.State)
	}
	if filter.Discipline != "" {
		predicates = append(predicates, "discipline = ?")
		args = append(args, filter.Discipline)
	}

	query := "SELECT " + eventColumns + " FROM events"
	if len(predicates) > 0 {
		query += " WHERE " + strings.Join(predicates, " AND ")
	}
	query += " ORDER BY event_date"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*models.Event, error) {
	event := &models.Event{}
	var date string
	var location, url sql.NullString
	var creatorID sql.NullInt64
	var fee sql.NullFloat64

	err := row.Scan(
		&event.ID,
		&event.Name,
		&date,
		&event.CompetitorCount,
		&location,
		&event.City,
		&event.State,
		&event.Zip,
		&event.Venue,
		&event.Division,
		&event.Discipline,
		&creatorID,
		&fee,
		&url,
	)
	if err != nil {
		return nil, err
	}

	if event.Date, err = parseDate(date); err != nil {
		return nil, err
	}
	if location.Valid {
		event.Location = &location.String
	}
	if url.Valid {
		event.URL = &url.String
	}
	if creatorID.Valid {
		event.CreatorID = creatorID.Int64
	}
	if fee.Valid {
		event.Fee = &fee.Float64
	}

	return event, nil
}
