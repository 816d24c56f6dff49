package db

import (
	"context"
	"database/sql"
)

const schemaMigration = `
CREATE TABLE IF NOT EXISTS posts (
    id TEXT PRIMARY KEY,
    slug TEXT,
    title TEXT NOT NULL,
    summary TEXT,
    content TEXT,
    tags JSONB NOT NULL DEFAULT '[]'::jsonb,
    status TEXT NOT NULL DEFAULT 'draft',
    visibility TEXT NOT NULL DEFAULT 'public',
    publish_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS posts_publish_idx ON posts (publish_at);
CREATE INDEX IF NOT EXISTS posts_status_idx ON posts (status, visibility);

CREATE TABLE IF NOT EXISTS about (
    id INT PRIMARY KEY DEFAULT 1,
    content TEXT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS friend_links (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    url TEXT NOT NULL,
    note TEXT,
    sort_order INT NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS friend_links_order_idx
ON friend_links (sort_order DESC, created_at DESC);

CREATE TABLE IF NOT EXISTS travel_marks (
    adcode INT PRIMARY KEY,
    name TEXT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

const seedAbout = `
INSERT INTO about (id, content) VALUES (1, '# About me')
ON CONFLICT (id) DO NOTHING
`

// RunMigration creates the blog schema if it does not exist yet.
// Idempotent by construction; safe to run on every startup.
func RunMigration(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaMigration); err != nil {
		return err
	}
	_, err := db.ExecContext(ctx, seedAbout)
	return err
}
