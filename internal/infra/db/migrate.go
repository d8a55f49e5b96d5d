package db

import (
	"database/sql"
	"fmt"

	"newsdesk/internal/domain/entity"
)

// MigrateUp creates the schema if it does not exist. Statements are
// idempotent so the routine is safe to run on every startup.
func MigrateUp(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS roles (
    name TEXT PRIMARY KEY
)`,
		`CREATE TABLE IF NOT EXISTS users (
    id            SERIAL PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL REFERENCES roles(name),
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE TABLE IF NOT EXISTS publishers (
    id          SERIAL PRIMARY KEY,
    name        TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE TABLE IF NOT EXISTS publisher_editors (
    publisher_id INTEGER NOT NULL REFERENCES publishers(id) ON DELETE CASCADE,
    user_id      INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    PRIMARY KEY (publisher_id, user_id)
)`,
		`CREATE TABLE IF NOT EXISTS publisher_journalists (
    publisher_id INTEGER NOT NULL REFERENCES publishers(id) ON DELETE CASCADE,
    user_id      INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    PRIMARY KEY (publisher_id, user_id)
)`,
		`CREATE TABLE IF NOT EXISTS articles (
    id           SERIAL PRIMARY KEY,
    title        TEXT NOT NULL,
    content      TEXT NOT NULL,
    author_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    publisher_id INTEGER REFERENCES publishers(id) ON DELETE SET NULL,
    approved     BOOLEAN NOT NULL DEFAULT FALSE,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE TABLE IF NOT EXISTS newsletters (
    id          SERIAL PRIMARY KEY,
    title       TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    author_id   INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE TABLE IF NOT EXISTS newsletter_articles (
    newsletter_id INTEGER NOT NULL REFERENCES newsletters(id) ON DELETE CASCADE,
    article_id    INTEGER NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
    attached_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (newsletter_id, article_id)
)`,
		`CREATE TABLE IF NOT EXISTS journalist_subscriptions (
    id            SERIAL PRIMARY KEY,
    reader_id     INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    journalist_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (reader_id, journalist_id)
)`,
		`CREATE TABLE IF NOT EXISTS newsletter_subscriptions (
    id            SERIAL PRIMARY KEY,
    reader_id     INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    newsletter_id INTEGER NOT NULL REFERENCES newsletters(id) ON DELETE CASCADE,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (reader_id, newsletter_id)
)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	indexes := []string{
		// Reader listings filter on approved and sort by created_at.
		`CREATE INDEX IF NOT EXISTS idx_articles_approved_created_at ON articles(approved, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_author_id ON articles(author_id)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_publisher_id ON articles(publisher_id)`,
		// Audience resolution scans by journalist / newsletter.
		`CREATE INDEX IF NOT EXISTS idx_journalist_subs_journalist ON journalist_subscriptions(journalist_id)`,
		`CREATE INDEX IF NOT EXISTS idx_newsletter_subs_newsletter ON newsletter_subscriptions(newsletter_id)`,
		`CREATE INDEX IF NOT EXISTS idx_newsletter_articles_article ON newsletter_articles(article_id)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return fmt.Errorf("migrate: index: %w", err)
		}
	}

	return nil
}

// SeedRoles inserts the closed role set into the roles lookup table.
// It is an explicit, idempotent bootstrap routine invoked at process start
// rather than a hook tied to a schema-migration event.
func SeedRoles(db *sql.DB) error {
	for _, role := range entity.Roles {
		if _, err := db.Exec(
			`INSERT INTO roles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
			string(role),
		); err != nil {
			return fmt.Errorf("seed role %q: %w", role, err)
		}
	}
	return nil
}
