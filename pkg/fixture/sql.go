package fixture

import (
	"context"
	"database/sql"
	"fmt"
)

// SetupSchema creates the fixture tables in the provided database. It is
// idempotent and safe to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {

	const (
		schemaCharacters = `
CREATE TABLE IF NOT EXISTS cj_characters (
    position INTEGER PRIMARY KEY,
    character_id TEXT NOT NULL,
    name TEXT NOT NULL,
    title TEXT NOT NULL,
    avatar TEXT NOT NULL,
    avatar_color TEXT NOT NULL
);
`
		schemaPosts = `
CREATE TABLE IF NOT EXISTS cj_posts (
    position INTEGER PRIMARY KEY,
    post_id TEXT NOT NULL,
    author TEXT NOT NULL,
    post_type TEXT NOT NULL,
    body TEXT NOT NULL,
    headline TEXT NOT NULL,
    excerpt TEXT NOT NULL,
    created TEXT NOT NULL,
    likes INTEGER NOT NULL DEFAULT 0,
    has_comments INTEGER NOT NULL DEFAULT 0
);
`
		schemaComments = `
CREATE TABLE IF NOT EXISTS cj_comments (
    post_position INTEGER NOT NULL,
    position INTEGER NOT NULL,
    author TEXT NOT NULL,
    body TEXT NOT NULL,
    PRIMARY KEY (post_position, position)
);
`
	)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaCharacters); err != nil {
		return fmt.Errorf("could not create characters schema: %w", err)
	}
	if _, err = tx.Exec(schemaPosts); err != nil {
		return fmt.Errorf("could not create posts schema: %w", err)
	}
	if _, err = tx.Exec(schemaComments); err != nil {
		return fmt.Errorf("could not create comments schema: %w", err)
	}

	return tx.Commit()
}

// ImportDataset replaces the stored dataset with ds inside a single transaction.
// Rows are keyed by fixture position, not id, so a fixture with repeated ids
// imports the same way it loads from a file.
func ImportDataset(ctx context.Context, db *sql.DB, ds *Dataset) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	for _, table := range []string{"cj_comments", "cj_posts", "cj_characters"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i, c := range ds.Characters {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO cj_characters (position, character_id, name, title, avatar, avatar_color) VALUES (?, ?, ?, ?, ?, ?)",
			i, c.ID, c.Name, c.Title, c.Avatar, c.AvatarColor)
		if err != nil {
			return fmt.Errorf("failed to insert character %q: %w", c.ID, err)
		}
	}

	for i, p := range ds.Posts {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO cj_posts (position, post_id, author, post_type, body, headline, excerpt, created, likes, has_comments) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			i, p.ID, p.Author, p.Type, p.Text, p.Headline, p.Excerpt, p.Date, p.Likes, p.Comments != nil)
		if err != nil {
			return fmt.Errorf("failed to insert post %q: %w", p.ID, err)
		}
		for j, c := range p.Comments {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO cj_comments (post_position, position, author, body) VALUES (?, ?, ?, ?)",
				i, j, c.Author, c.Text)
			if err != nil {
				return fmt.Errorf("failed to insert comment %d of post %q: %w", j, p.ID, err)
			}
		}
	}

	return tx.Commit()
}

// SQLSource reads the dataset from a database prepared with SetupSchema.
type SQLSource struct {
	DB    *sql.DB
	Label string
}

func (s SQLSource) Name() string { return "sqlite:" + s.Label }

func (s SQLSource) Fetch(ctx context.Context) (*Dataset, error) {
	ds := &Dataset{Characters: []Character{}}

	rows, err := s.DB.QueryContext(ctx, "SELECT character_id, name, title, avatar, avatar_color FROM cj_characters ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query characters: %w", err)
	}
	for rows.Next() {
		var c Character
		if err = rows.Scan(&c.ID, &c.Name, &c.Title, &c.Avatar, &c.AvatarColor); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan character: %w", err)
		}
		ds.Characters = append(ds.Characters, c)
	}
	_ = rows.Close()
	if err = rows.Err(); err != nil {
		return nil, err
	}

	comments, err := s.fetchComments(ctx)
	if err != nil {
		return nil, err
	}

	rows, err = s.DB.QueryContext(ctx, "SELECT position, post_id, author, post_type, body, headline, excerpt, created, likes, has_comments FROM cj_posts ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)
	for rows.Next() {
		var p Post
		var position int
		var hasComments bool
		if err = rows.Scan(&position, &p.ID, &p.Author, &p.Type, &p.Text, &p.Headline, &p.Excerpt, &p.Date, &p.Likes, &hasComments); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		if hasComments {
			p.Comments = comments[position]
			if p.Comments == nil {
				p.Comments = []Comment{}
			}
		}
		ds.Posts = append(ds.Posts, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return ds, nil
}

func (s SQLSource) fetchComments(ctx context.Context) (map[int][]Comment, error) {
	rows, err := s.DB.QueryContext(ctx, "SELECT post_position, author, body FROM cj_comments ORDER BY post_position, position")
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	comments := make(map[int][]Comment)
	for rows.Next() {
		var post int
		var c Comment
		if err = rows.Scan(&post, &c.Author, &c.Text); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments[post] = append(comments[post], c)
	}
	return comments, rows.Err()
}
