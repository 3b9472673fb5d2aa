package catalog

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore snapshots catalogs into a local SQLite file and loads them
// back. The CLI ingest command writes snapshots; the "sqlite" catalog source
// reads them at startup. Session state is never stored here.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (creating if needed) a catalog snapshot database.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	// SQLite handles one writer at a time.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	const schema = `
CREATE TABLE IF NOT EXISTS catalog_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	domain TEXT NOT NULL,
	position INTEGER NOT NULL,
	title TEXT NOT NULL,
	genre TEXT NOT NULL DEFAULT '',
	mood TEXT NOT NULL DEFAULT '',
	keywords TEXT NOT NULL DEFAULT '',
	rating REAL NOT NULL DEFAULT 0,
	description TEXT NOT NULL DEFAULT '',
	artist TEXT NOT NULL DEFAULT '',
	album TEXT NOT NULL DEFAULT '',
	year TEXT NOT NULL DEFAULT '',
	instrumentation TEXT NOT NULL DEFAULT '',
	lyrics TEXT NOT NULL DEFAULT '',
	author TEXT NOT NULL DEFAULT '',
	director TEXT NOT NULL DEFAULT '',
	cast_list TEXT NOT NULL DEFAULT '',
	creator TEXT NOT NULL DEFAULT '',
	setting TEXT NOT NULL DEFAULT '',
	time_period TEXT NOT NULL DEFAULT '',
	cuisine TEXT NOT NULL DEFAULT '',
	ingredients TEXT NOT NULL DEFAULT '',
	meal_type TEXT NOT NULL DEFAULT '',
	dish_type TEXT NOT NULL DEFAULT '',
	tags TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	cooking_time TEXT NOT NULL DEFAULT '',
	difficulty TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_catalog_items_domain ON catalog_items(domain, position);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("migrate catalog schema: %w", err)
	}
	return nil
}

// Save replaces the stored snapshot for every domain in corpora.
func (s *SQLiteStore) Save(ctx context.Context, corpora map[Domain]*Corpus) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer tx.Rollback()

	const insert = `
INSERT INTO catalog_items (
	domain, position, title, genre, mood, keywords, rating, description,
	artist, album, year, instrumentation, lyrics, author,
	director, cast_list, creator, setting, time_period,
	cuisine, ingredients, meal_type, dish_type, tags, category, cooking_time, difficulty
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, domain := range Domains {
		corpus, ok := corpora[domain]
		if !ok {
			continue
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM catalog_items WHERE domain = ?`, string(domain)); err != nil {
			return fmt.Errorf("clear %s snapshot: %w", domain, err)
		}

		for pos, it := range corpus.Items {
			_, err := stmt.ExecContext(ctx,
				string(domain), pos, it.Title, it.Genre, it.Mood, it.Keywords, it.Rating, it.Description,
				it.Artist, it.Album, it.Year, it.Instrumentation, it.Lyrics, it.Author,
				it.Director, it.Cast, it.Creator, it.Setting, it.TimePeriod,
				it.Cuisine, it.Ingredients, it.MealType, it.DishType, it.Tags, it.Category, it.CookingTime, it.Difficulty,
			)
			if err != nil {
				return fmt.Errorf("insert %s item %q: %w", domain, it.Title, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// Corpora loads the stored snapshot, preserving catalog order per domain.
// Domains without stored rows are omitted. Implements Provider.
func (s *SQLiteStore) Corpora(ctx context.Context) (map[Domain]*Corpus, error) {
	const query = `
SELECT domain, title, genre, mood, keywords, rating, description,
	artist, album, year, instrumentation, lyrics, author,
	director, cast_list, creator, setting, time_period,
	cuisine, ingredients, meal_type, dish_type, tags, category, cooking_time, difficulty
FROM catalog_items
ORDER BY domain, position`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	defer rows.Close()

	itemsByDomain := make(map[Domain][]Item)
	for rows.Next() {
		var domain string
		var it Item
		err := rows.Scan(
			&domain, &it.Title, &it.Genre, &it.Mood, &it.Keywords, &it.Rating, &it.Description,
			&it.Artist, &it.Album, &it.Year, &it.Instrumentation, &it.Lyrics, &it.Author,
			&it.Director, &it.Cast, &it.Creator, &it.Setting, &it.TimePeriod,
			&it.Cuisine, &it.Ingredients, &it.MealType, &it.DishType, &it.Tags, &it.Category, &it.CookingTime, &it.Difficulty,
		)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		itemsByDomain[Domain(domain)] = append(itemsByDomain[Domain(domain)], it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot: %w", err)
	}

	corpora := make(map[Domain]*Corpus, len(itemsByDomain))
	for domain, items := range itemsByDomain {
		corpora[domain] = NewCorpus(domain, items)
	}
	if len(corpora) == 0 {
		return nil, fmt.Errorf("catalog snapshot is empty")
	}
	return corpora, nil
}
