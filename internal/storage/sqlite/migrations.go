package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist; existing data is untouched.
// IMPORTANT: accounts must be created BEFORE events and event_registrations
// due to foreign key constraints.
//
// Dates (dob, event_date) are stored as ISO-8601 text so lexicographic
// ORDER BY matches chronological order; timestamps are Unix seconds.
const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    us_ski_id TEXT,
    fis_id TEXT,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    full_name TEXT NOT NULL,
    dob TEXT NOT NULL,
    division TEXT NOT NULL,
    team TEXT,
    discipline TEXT
);

CREATE TABLE IF NOT EXISTS events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    event_date TEXT NOT NULL,
    competitor_count INTEGER NOT NULL DEFAULT 0,
    location TEXT,
    city TEXT NOT NULL,
    state TEXT NOT NULL,
    zip TEXT NOT NULL,
    venue TEXT NOT NULL,
    division TEXT NOT NULL,
    discipline TEXT NOT NULL,
    creator_id INTEGER,
    fee REAL,
    url TEXT,
    FOREIGN KEY (creator_id) REFERENCES accounts(id)
);

CREATE TABLE IF NOT EXISTS event_registrations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    event_id INTEGER NOT NULL,
    account_id INTEGER NOT NULL,
    bib_number INTEGER,
    registered_at INTEGER NOT NULL,
    FOREIGN KEY (event_id) REFERENCES events(id),
    FOREIGN KEY (account_id) REFERENCES accounts(id),
    UNIQUE (event_id, account_id),
    UNIQUE (event_id, bib_number)
);

CREATE TABLE IF NOT EXISTS chat_messages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    account_id INTEGER,
    message_text TEXT NOT NULL,
    from_assistant INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (account_id) REFERENCES accounts(id)
);

CREATE TABLE IF NOT EXISTS documents (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    filename TEXT NOT NULL,
    content TEXT,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_events_creator_id ON events(creator_id);
CREATE INDEX IF NOT EXISTS idx_event_registrations_account_id ON event_registrations(account_id);
CREATE INDEX IF NOT EXISTS idx_chat_messages_account_id ON chat_messages(account_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
