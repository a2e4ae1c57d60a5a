package models

import (
	"strings"
	"time"
)

// Account represents a registered racer.
type Account struct {
	// ID is the surrogate primary key assigned by the database.
	ID int64

	// USSkiID and FISID are optional external ranking identifiers.
	USSkiID *string
	FISID   *string

	// Email is the login identifier (unique).
	Email string

	// PasswordHash is the bcrypt hash of the account password.
	PasswordHash string

	FirstName string
	LastName  string

	// FullName is derived from first and last name at registration.
	FullName string

	// DOB is the racer's date of birth.
	DOB time.Time

	// Division is one of the nine geographic divisions, see Divisions.
	Division string

	// Team is the optional team name.
	Team *string

	// Disciplines are the disciplines the racer competes in, see Disciplines.
	Disciplines []string
}

// Profile is the subset of account data shown to the account owner.
type Profile struct {
	MemberID    int64
	Email       string
	Name        string
	DOB         time.Time
	Team        *string
	Division    string
	Disciplines []string
}

// RegisterAccountParams carries the input for creating an account.
// Whitespace-only optional fields are treated as absent.
type RegisterAccountParams struct {
	USSkiID     string
	FISID       string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	DOB         time.Time
	Division    string
	Team        string
	Disciplines []string
}

// Normalize trims surrounding whitespace from every text field and drops
// empty disciplines.
func (p *RegisterAccountParams) Normalize() {
	p.USSkiID = strings.TrimSpace(p.USSkiID)
	p.FISID = strings.TrimSpace(p.FISID)
	p.Email = strings.TrimSpace(p.Email)
	p.Password = strings.TrimSpace(p.Password)
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.Division = strings.TrimSpace(p.Division)
	p.Team = strings.TrimSpace(p.Team)

	disciplines := p.Disciplines[:0]
	for _, d := range p.Disciplines {
		if d = strings.TrimSpace(d); d != "" {
			disciplines = append(disciplines, d)
		}
	}
	p.Disciplines = disciplines
}

// Validate normalizes the params and reports every missing or invalid
// required field as a single ValidationError.
func (p *RegisterAccountParams) Validate() error {
	p.Normalize()

	var missing []string
	if p.Email == "" {
		missing = append(missing, "email")
	}
	if p.Password == "" {
		missing = append(missing, "password")
	}
	if p.FirstName == "" {
		missing = append(missing, "first_name")
	}
	if p.LastName == "" {
		missing = append(missing, "last_name")
	}
	if p.DOB.IsZero() {
		missing = append(missing, "dob")
	}
	if p.Division == "" || !IsDivision(p.Division) {
		missing = append(missing, "division")
	}
	if len(p.Disciplines) == 0 {
		missing = append(missing, "discipline")
	}
	for _, d := range p.Disciplines {
		if !IsDiscipline(d) {
			missing = append(missing, "discipline")
			break
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// OptionalUSSkiID returns the external US id, or nil when absent.
func (p *RegisterAccountParams) OptionalUSSkiID() *string { return optional(p.USSkiID) }

// OptionalFISID returns the FIS id, or nil when absent.
func (p *RegisterAccountParams) OptionalFISID() *string { return optional(p.FISID) }

// OptionalTeam returns the team name, or nil when absent.
func (p *RegisterAccountParams) OptionalTeam() *string { return optional(p.Team) }

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
