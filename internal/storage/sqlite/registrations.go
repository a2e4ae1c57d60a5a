package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/skitownrace/racereg/internal/models"
	"github.com/skitownrace/racereg/internal/storage"
)

// maxBibAttempts bounds the retries when concurrent registrations race on
// the same bib number.
const maxBibAttempts = 3

// RegisterForEvent assigns the next bib number, inserts the ledger row and
// recomputes the event's competitor count, all in one transaction.
//
// The bib number is one more than the highest bib already issued for the
// event (1 when none). Two writers computing the same bib race on the
// (event_id, bib_number) uniqueness constraint; the loser recomputes and
// reinserts. A duplicate (event_id, account_id) pair is not retryable and
// maps to storage.ErrAlreadyRegistered.
func (s *SQLiteStore) RegisterForEvent(ctx context.Context, eventID, accountID int64) (*models.Registration, error) {
	for attempt := 1; ; attempt++ {
		reg, err := s.registerOnce(ctx, eventID, accountID)
		if err == nil {
			return reg, nil
		}
		if isUniqueViolation(err, "event_registrations.event_id, event_registrations.account_id") {
			return nil, storage.ErrAlreadyRegistered
		}
		if isUniqueViolation(err, "event_registrations.event_id, event_registrations.bib_number") && attempt < maxBibAttempts {
			continue // lost a bib race; recompute and reinsert
		}
		return nil, fmt.Errorf("failed to register for event: %w", err)
	}
}

func (s *SQLiteStore) registerOnce(ctx context.Context, eventID, accountID int64) (*models.Registration, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var nextBib int
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(bib_number), 0) + 1
		FROM event_registrations
		WHERE event_id = ?
	`, eventID).Scan(&nextBib)
	if err != nil {
		return nil, err
	}

	registeredAt := time.Now().UTC()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO event_registrations (event_id, account_id, bib_number, registered_at)
		VALUES (?, ?, ?, ?)
	`, eventID, accountID, nextBib, registeredAt.Unix())
	if err != nil {
		return nil, err
	}

	if err := recomputeCompetitorCount(ctx, tx, eventID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	id, _ := res.LastInsertId()
	return &models.Registration{
		ID:           id,
		EventID:      eventID,
		AccountID:    accountID,
		BibNumber:    nextBib,
		RegisteredAt: registeredAt,
	}, nil
}

// UnregisterFromEvent deletes the matching ledger row and recomputes the
// competitor count in the same transaction. Deleting an absent row is a
// no-op, not an error.
func (s *SQLiteStore) UnregisterFromEvent(ctx context.Context, eventID, accountID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM event_registrations
		WHERE event_id = ? AND account_id = ?
	`, eventID, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}

	if err := recomputeCompetitorCount(ctx, tx, eventID); err != nil {
		return fmt.Errorf("failed to update competitor count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// recomputeCompetitorCount rewrites the event's denormalized count from the
// live ledger. Always called inside the same transaction as the ledger
// mutation so a partial write is never observable.
func recomputeCompetitorCount(ctx context.Context, tx *sql.Tx, eventID int64) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE events
		SET competitor_count = (
			SELECT COUNT(*)
			FROM event_registrations
			WHERE event_id = ?
		)
		WHERE id = ?
	`, eventID, eventID)
	return err
}

// ListAccountEvents returns the events the account is registered for, with
// the account's bib number and registration timestamp, ordered by event
// date ascending.
func (s *SQLiteStore) ListAccountEvents(ctx context.Context, accountID int64) ([]models.EventWithRegistration, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.name, e.event_date, e.competitor_count, e.location,
		       e.city, e.state, e.zip, e.venue, e.division, e.discipline,
		       e.creator_id, e.fee, e.url,
		       er.bib_number, er.registered_at
		FROM events e
		JOIN event_registrations er ON e.id = er.event_id
		WHERE er.account_id = ?
		ORDER BY e.event_date
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list account events: %w", err)
	}
	defer rows.Close()

	results := []models.EventWithRegistration{}
	for rows.Next() {
		var row models.EventWithRegistration
		var date string
		var location, url sql.NullString
		var creatorID sql.NullInt64
		var fee sql.NullFloat64
		var registeredAt int64

		err := rows.Scan(
			&row.ID,
			&row.Name,
			&date,
			&row.CompetitorCount,
			&location,
			&row.City,
			&row.State,
			&row.Zip,
			&row.Venue,
			&row.Division,
			&row.Discipline,
			&creatorID,
			&fee,
			&url,
			&row.BibNumber,
			&registeredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account event: %w", err)
		}

		if row.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		if location.Valid {
			row.Location = &location.String
		}
		if url.Valid {
			row.URL = &url.String
		}
		if creatorID.Valid {
			row.CreatorID = creatorID.Int64
		}
		if fee.Valid {
			row.Fee = &fee.Float64
		}
		row.RegisteredAt = time.Unix(registeredAt, 0).UTC()
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate account events: %w", err)
	}

	return results, nil
}
