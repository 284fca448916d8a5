// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles the database connection, schema and the submission store.

# Connection

Open picks the driver from the configured type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

  - sqlite: modernc.org/sqlite (default, in-memory unless a file URL is given)
  - postgres: github.com/lib/pq

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - submission: finished mission captures, including the image bytes

Dashboard engagement (likes, comments, votes) is not stored here. It lives
in each viewer's workspace and is gone when they sign out.

# Submissions

SubmissionStore implements capture.Submitter. It also answers the
per-mission counts shown on the missions page and lists a viewer's own
submissions.
*/
package db
