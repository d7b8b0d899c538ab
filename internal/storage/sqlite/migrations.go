package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
const schema = `
CREATE TABLE IF NOT EXISTS groups (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    participants INTEGER NOT NULL,
    passphrase_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS participant_names (
    group_id TEXT NOT NULL,
    participant INTEGER NOT NULL,
    name TEXT NOT NULL,
    PRIMARY KEY (group_id, participant),
    FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS pair_amounts (
    group_id TEXT NOT NULL,
    low INTEGER NOT NULL,
    high INTEGER NOT NULL,
    amount INTEGER NOT NULL,
    PRIMARY KEY (group_id, low, high),
    CHECK (low < high),
    FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS plans (
    id TEXT PRIMARY KEY,
    group_id TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS plan_transfers (
    plan_id TEXT NOT NULL,
    seq INTEGER NOT NULL,
    from_participant INTEGER NOT NULL,
    to_participant INTEGER NOT NULL,
    amount INTEGER NOT NULL,
    PRIMARY KEY (plan_id, seq),
    FOREIGN KEY (plan_id) REFERENCES plans(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_pair_amounts_group_id ON pair_amounts(group_id);
CREATE INDEX IF NOT EXISTS idx_plans_group_id ON plans(group_id);
CREATE INDEX IF NOT EXISTS idx_plan_transfers_plan_id ON plan_transfers(plan_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
