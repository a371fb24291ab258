package db

import (
	"context"
	"fmt"
)

// SchemaSQL contains the catalog schema initialization SQL. The assistant only
// reads these tables; the marketplace backend owns writes. Kept here so fresh
// environments and integration tests can bootstrap themselves.
const SchemaSQL = `
	CREATE TABLE IF NOT EXISTS users (
		user_id  SERIAL PRIMARY KEY,
		username TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS courses (
		course_id     SERIAL PRIMARY KEY,
		title         TEXT NOT NULL,
		category      TEXT NOT NULL,
		price         NUMERIC(10,2),
		duration      INTEGER NOT NULL DEFAULT 0,
		description   TEXT NOT NULL DEFAULT '',
		instructor_id INTEGER REFERENCES users(user_id)
	);

	CREATE INDEX IF NOT EXISTS courses_category_idx ON courses (category);
`

// InitSchema creates the catalog tables if they do not exist.
func (c *Client) InitSchema(ctx context.Context) error {
	c.logger.Info("initializing catalog schema")
	if _, err := c.pool.Exec(ctx, SchemaSQL); err != nil {
		return fmt.Errorf("init schema: %w", wrapQueryError(err))
	}
	return nil
}
