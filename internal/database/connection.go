package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// Connect establishes a connection to the database.
// DB_TYPE selects the driver ("sqlite" by default, "postgres" with
// DATABASE_URL); sqlite databases live under DB_PATH (default data/narrvoca.db).
func Connect() error {
	dbType := os.Getenv("DB_TYPE")
	if dbType == "" {
		dbType = "sqlite"
	}

	if dbType == "postgres" {
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			return fmt.Errorf("DATABASE_URL environment variable is not set")
		}
		db, err := sqlx.Connect("postgres", dsn)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %v", err)
		}
		DB = db
		// Postgres schemas are managed externally; bootstrap only applies to sqlite.
		return nil
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dataDir := "data"
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %v", err)
		}
		dbPath = filepath.Join(dataDir, "narrvoca.db")
	}

	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %v", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	DB = db

	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	statements := []struct {
		name string
		sql  string
	}{
		{"stories", `
			CREATE TABLE IF NOT EXISTS stories (
				story_id INTEGER PRIMARY KEY AUTOINCREMENT,
				title TEXT NOT NULL,
				target_language TEXT NOT NULL,
				difficulty_level TEXT,
				genre TEXT,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)
		`},
		{"story_nodes", `
			CREATE TABLE IF NOT EXISTS story_nodes (
				node_id INTEGER PRIMARY KEY AUTOINCREMENT,
				story_id INTEGER NOT NULL,
				sequence_order INTEGER NOT NULL,
				is_checkpoint BOOLEAN DEFAULT false,
				context_description TEXT,
				FOREIGN KEY (story_id) REFERENCES stories(story_id),
				UNIQUE(story_id, sequence_order)
			)
		`},
		{"node_text", `
			CREATE TABLE IF NOT EXISTS node_text (
				node_text_id INTEGER PRIMARY KEY AUTOINCREMENT,
				node_id INTEGER NOT NULL,
				language_code TEXT NOT NULL,
				speaker TEXT,
				text_type TEXT NOT NULL,
				text_content TEXT NOT NULL,
				display_order INTEGER NOT NULL,
				FOREIGN KEY (node_id) REFERENCES story_nodes(node_id)
			)
		`},
		{"branching_logic", `
			CREATE TABLE IF NOT EXISTS branching_logic (
				branch_id INTEGER PRIMARY KEY AUTOINCREMENT,
				node_id INTEGER NOT NULL,
				condition_type TEXT NOT NULL,
				condition_value TEXT,
				next_node_id INTEGER NOT NULL,
				FOREIGN KEY (node_id) REFERENCES story_nodes(node_id)
			)
		`},
		{"vocabulary", `
			CREATE TABLE IF NOT EXISTS vocabulary (
				vocab_id INTEGER PRIMARY KEY AUTOINCREMENT,
				language_code TEXT NOT NULL,
				term TEXT NOT NULL,
				translation_en TEXT NOT NULL,
				example_sentence TEXT,
				difficulty_score REAL,
				UNIQUE(language_code, term)
			)
		`},
		{"node_vocabulary", `
			CREATE TABLE IF NOT EXISTS node_vocabulary (
				node_id INTEGER NOT NULL,
				vocab_id INTEGER NOT NULL,
				is_target BOOLEAN DEFAULT false,
				FOREIGN KEY (node_id) REFERENCES story_nodes(node_id),
				FOREIGN KEY (vocab_id) REFERENCES vocabulary(vocab_id),
				UNIQUE(node_id, vocab_id)
			)
		`},
		{"grammar_points", `
			CREATE TABLE IF NOT EXISTS grammar_points (
				grammar_id INTEGER PRIMARY KEY AUTOINCREMENT,
				language_code TEXT NOT NULL,
				rule_name TEXT NOT NULL,
				explanation_en TEXT NOT NULL,
				example_sentence TEXT
			)
		`},
		{"node_grammar", `
			CREATE TABLE IF NOT EXISTS node_grammar (
				node_id INTEGER NOT NULL,
				grammar_id INTEGER NOT NULL,
				FOREIGN KEY (node_id) REFERENCES story_nodes(node_id),
				FOREIGN KEY (grammar_id) REFERENCES grammar_points(grammar_id),
				UNIQUE(node_id, grammar_id)
			)
		`},
		{"user_node_progress", `
			CREATE TABLE IF NOT EXISTS user_node_progress (
				uid TEXT NOT NULL,
				node_id INTEGER NOT NULL,
				status TEXT NOT NULL DEFAULT 'not_started',
				best_score REAL,
				completed_at TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (node_id) REFERENCES story_nodes(node_id),
				UNIQUE(uid, node_id)
			)
		`},
		{"user_vocab_mastery", `
			CREATE TABLE IF NOT EXISTS user_vocab_mastery (
				uid TEXT NOT NULL,
				vocab_id INTEGER NOT NULL,
				mastery_score REAL NOT NULL,
				next_review_at TIMESTAMP NOT NULL,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (vocab_id) REFERENCES vocabulary(vocab_id),
				UNIQUE(uid, vocab_id)
			)
		`},
		{"interaction_log", `
			CREATE TABLE IF NOT EXISTS interaction_log (
				interaction_id INTEGER PRIMARY KEY AUTOINCREMENT,
				uid TEXT NOT NULL,
				node_id INTEGER NOT NULL,
				user_input TEXT NOT NULL,
				llm_feedback TEXT,
				accuracy_score REAL NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)
		`},
		{"vocab_words", `
			CREATE TABLE IF NOT EXISTS vocab_words (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				uid TEXT NOT NULL,
				word TEXT NOT NULL,
				language TEXT NOT NULL
			)
		`},
	}

	for _, stmt := range statements {
		if _, err := DB.Exec(stmt.sql); err != nil {
			return fmt.Errorf("failed to create %s table: %v", stmt.name, err)
		}
	}

	return nil
}
