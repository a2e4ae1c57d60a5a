package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/skitownrace/racereg/internal/models"
	"github.com/skitownrace/racereg/internal/storage"
)

// CreateAccount inserts a new account and returns its assigned id.
// The id is read back by the unique email since the insert does not
// report it directly.
func (s *SQLiteStore) CreateAccount(ctx context.Context, account *models.Account) (int64, error) {
	query := `
		INSERT INTO accounts (us_ski_id, fis_id, email, password_hash, first_name,
		                      last_name, full_name, dob, division, team, discipline)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var discipline interface{}
	if len(account.Disciplines) > 0 {
		discipline = models.JoinDisciplines(account.Disciplines)
	}

	_, err := s.db.ExecContext(ctx, query,
		account.USSkiID,
		account.FISID,
		account.Email,
		account.PasswordHash,
		account.FirstName,
		account.LastName,
		account.FullName,
		account.DOB.Format(dateFormat),
		account.Division,
		account.Team,
		discipline,
	)
	if isUniqueViolation(err, "accounts.email") {
		return 0, storage.ErrDuplicateEmail
	}
	if err != nil {
		return 0, fmt.Errorf("failed to create account: %w", err)
	}

	id, err := s.LookupAccountID(ctx, account.Email)
	if err != nil {
		return 0, err
	}
	account.ID = id
	return id, nil
}

// GetAccountByEmail retrieves an account by exact email match.
// A miss returns (nil, nil).
func (s *SQLiteStore) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	return s.getAccount(ctx, "email = ?", email)
}

// GetAccountByID retrieves an account by id. A miss returns (nil, nil).
func (s *SQLiteStore) GetAccountByID(ctx context.Context, id int64) (*models.Account, error) {
	return s.getAccount(ctx, "id = ?", id)
}

func (s *SQLiteStore) getAccount(ctx context.Context, where string, arg interface{}) (*models.Account, error) {
	query := `
		SELECT id, us_ski_id, fis_id, email, password_hash, first_name,
		       last_name, full_name, dob, division, team, discipline
		FROM accounts
		WHERE ` + where

	account := &models.Account{}
	var usSkiID, fisID, team, discipline sql.NullString
	var dob string

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&account.ID,
		&usSkiID,
		&fisID,
		&account.Email,
		&account.PasswordHash,
		&account.FirstName,
		&account.LastName,
		&account.FullName,
		&dob,
		&account.Division,
		&team,
		&discipline,
	)
	if err == sql.ErrNoRows {
		return nil, nil // account not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if account.DOB, err = parseDate(dob); err != nil {
		return nil, err
	}
	if usSkiID.Valid {
		account.USSkiID = &usSkiID.String
	}
	if fisID.Valid {
		account.FISID = &fisID.String
	}
	if team.Valid {
		account.Team = &team.String
	}
	if discipline.Valid {
		account.Disciplines = models.SplitDisciplines(discipline.String)
	}

	return account, nil
}

// LookupAccountID resolves an email to an account id. A miss returns (0, nil).
func (s *SQLiteStore) LookupAccountID(ctx context.Context, email string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, "SELECT id FROM accounts WHERE email = ?", email).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up account id: %w", err)
	}
	return id, nil
}
