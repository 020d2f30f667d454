package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"plant-care-service/config"

	_ "github.com/go-sql-driver/mysql"
)

// Database represents the database connection
type Database struct {
	db *sql.DB
}

// NewDatabase creates a new database connection
func NewDatabase(cfg *config.Config) (*Database, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection with exponential backoff retry
	var waitInterval time.Duration = 1 * time.Second
	for {
		if err := db.Ping(); err == nil {
			break // Connection successful
		} else {
			log.Printf("Database connection failed, retrying in %v: %v", waitInterval, err)
		}
		time.Sleep(waitInterval)
		waitInterval *= 2 // Exponential backoff: 1s, 2s, 4s, 8s, ...
	}

	// Set connection pool settings
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &Database{db: db}, nil
}

// NewDatabaseFromDB wraps an existing connection; used by tests.
func NewDatabaseFromDB(db *sql.DB) *Database {
	return &Database{db: db}
}

// Close closes the database connection
func (d *Database) Close() error {
	return d.db.Close()
}

// GetDB returns the underlying sql.DB for direct queries
func (d *Database) GetDB() *sql.DB {
	return d.db
}

// CreateTables creates the catalog and account tables if they don't exist
func (d *Database) CreateTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			slug VARCHAR(255) NOT NULL,
			description TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE INDEX idx_categories_slug (slug)
		)`,
		`CREATE TABLE IF NOT EXISTS plants (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			slug VARCHAR(255) NOT NULL,
			description TEXT,
			image_url VARCHAR(1024),
			price DECIMAL(10,2) NOT NULL DEFAULT 0.00,
			category_id VARCHAR(36),
			stock_quantity INT NOT NULL DEFAULT 0,
			care_level VARCHAR(32) DEFAULT 'easy',
			light_requirements VARCHAR(64) DEFAULT '',
			water_frequency VARCHAR(64) DEFAULT '',
			pet_friendly BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE INDEX idx_plants_slug (slug),
			INDEX idx_plants_category_id (category_id)
		)`,
		`CREATE TABLE IF NOT EXISTS user_profiles (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			email VARCHAR(255) NOT NULL,
			full_name VARCHAR(255) DEFAULT '',
			avatar_url VARCHAR(1024) DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE INDEX idx_user_profiles_email (email)
		)`,
		`CREATE TABLE IF NOT EXISTS chat_messages (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			session_id VARCHAR(64) NOT NULL,
			user_id VARCHAR(36) NOT NULL,
			role ENUM('user', 'assistant') NOT NULL,
			content TEXT NOT NULL,
			image_url VARCHAR(1024) DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_chat_messages_session (session_id),
			INDEX idx_chat_messages_user (user_id)
		)`,
	}

	for _, query := range queries {
		if _, err := d.db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	log.Println("catalog tables created/verified successfully")
	return nil
}

// columnExists checks if a column exists in a table
func (d *Database) columnExists(tableName, columnName string) (bool, error) {
	query := `
	SELECT COUNT(*)
	FROM INFORMATION_SCHEMA.COLUMNS
	WHERE TABLE_SCHEMA = DATABASE()
	AND TABLE_NAME = ?
	AND COLUMN_NAME = ?`

	var count int
	err := d.db.QueryRow(query, tableName, columnName).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check if column exists: %w", err)
	}

	return count > 0, nil
}

// indexExists checks if an index exists in a table
func (d *Database) indexExists(tableName, indexName string) (bool, error) {
	query := `
	SELECT COUNT(*)
	FROM INFORMATION_SCHEMA.STATISTICS
	WHERE TABLE_SCHEMA = DATABASE()
	AND TABLE_NAME = ?
	AND INDEX_NAME = ?`

	var count int
	err := d.db.QueryRow(query, tableName, indexName).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check if index exists: %w", err)
	}

	return count > 0, nil
}

// MigrateTables applies in-place schema upgrades for columns and indexes
// added after the initial deployment.
func (d *Database) MigrateTables() error {
	// Check and add pet_friendly column
	exists, err := d.columnExists("plants", "pet_friendly")
	if err != nil {
		return fmt.Errorf("failed to check if pet_friendly column exists: %w", err)
	}

	if !exists {
		log.Printf("Adding pet_friendly column to plants table...")
		query := "ALTER TABLE plants ADD COLUMN pet_friendly BOOLEAN DEFAULT FALSE"
		_, err = d.db.Exec(query)
		if err != nil {
			return fmt.Errorf("failed to add pet_friendly column: %w", err)
		}
		log.Printf("Successfully added pet_friendly column to plants table")
	} else {
		log.Printf("pet_friendly column already exists in plants table, skipping migration")
	}

	// Check and add water_frequency column
	exists, err = d.columnExists("plants", "water_frequency")
	if err != nil {
		return fmt.Errorf("failed to check if water_frequency column exists: %w", err)
	}

	if !exists {
		log.Printf("Adding water_frequency column to plants table...")
		query := "ALTER TABLE plants ADD COLUMN water_frequency VARCHAR(64) DEFAULT ''"
		_, err = d.db.Exec(query)
		if err != nil {
			return fmt.Errorf("failed to add water_frequency column: %w", err)
		}
		log.Printf("Successfully added water_frequency column to plants table")
	} else {
		log.Printf("water_frequency column already exists in plants table, skipping migration")
	}

	// Check and add image_url column on chat_messages
	exists, err = d.columnExists("chat_messages", "image_url")
	if err != nil {
		return fmt.Errorf("failed to check if image_url column exists: %w", err)
	}

	if !exists {
		log.Printf("Adding image_url column to chat_messages table...")
		query := "ALTER TABLE chat_messages ADD COLUMN image_url VARCHAR(1024) DEFAULT ''"
		_, err = d.db.Exec(query)
		if err != nil {
			return fmt.Errorf("failed to add image_url column: %w", err)
		}
		log.Printf("Successfully added image_url column to chat_messages table")
	} else {
		log.Printf("image_url column already exists in chat_messages table, skipping migration")
	}

	// Add index on plants.pet_friendly
	indexName := "idx_plants_pet_friendly"
	exists, err = d.indexExists("plants", indexName)
	if err != nil {
		return fmt.Errorf("failed to check if %s index exists: %w", indexName, err)
	}

	if !exists {
		log.Printf("Adding %s index to plants table...", indexName)
		query := fmt.Sprintf("ALTER TABLE plants ADD INDEX %s (pet_friendly)", indexName)
		_, err = d.db.Exec(query)
		if err != nil {
			return fmt.Errorf("failed to add %s index: %w", indexName, err)
		}
		log.Printf("Successfully added %s index to plants table", indexName)
	} else {
		log.Printf("%s index already exists in plants table, skipping migration", indexName)
	}

	return nil
}
