package journal

const Schema = `
CREATE TABLE IF NOT EXISTS tickets (
	ticket_id TEXT PRIMARY KEY,
	account_id TEXT NOT NULL,
	submitted_at DATETIME NOT NULL,
	cash_before REAL NOT NULL,
	cash_after REAL NOT NULL,
	margin_before REAL NOT NULL,
	margin_after REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS ticket_legs (
	ticket_id TEXT NOT NULL REFERENCES tickets(ticket_id),
	leg_index INTEGER NOT NULL,
	quantity TEXT NOT NULL,
	side TEXT NOT NULL,
	symbol TEXT NOT NULL,
	PRIMARY KEY (ticket_id, leg_index)
);

CREATE INDEX IF NOT EXISTS idx_tickets_account ON tickets(account_id, submitted_at);
`
