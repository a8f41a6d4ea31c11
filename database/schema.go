package database

import (
	"context"
	"fmt"

	"recipe-service/config"

	"github.com/jmoiron/sqlx"
)

// ratings.recipe_id cascades on delete; difficulty and rating ranges are
// enforced by CHECK constraints as a second line behind service validation.
var schemas = map[string][]string{
	config.DriverSQLite: {
		`CREATE TABLE IF NOT EXISTS recipes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			recipe_name VARCHAR(255) NOT NULL,
			prep_time INT NOT NULL,
			difficulty TINYINT NOT NULL CHECK (difficulty BETWEEN 1 AND 3),
			vegetarian BOOLEAN NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS ratings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			recipe_id INTEGER NOT NULL,
			rating TINYINT NOT NULL CHECK (rating BETWEEN 1 AND 5),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (recipe_id) REFERENCES recipes(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ratings_recipe_id ON ratings (recipe_id)`,
	},
	config.DriverMySQL: {
		`CREATE TABLE IF NOT EXISTS recipes (
			id INT AUTO_INCREMENT PRIMARY KEY,
			recipe_name VARCHAR(255) NOT NULL,
			prep_time INT NOT NULL,
			difficulty TINYINT NOT NULL CHECK (difficulty BETWEEN 1 AND 3),
			vegetarian BOOLEAN NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		) ENGINE=InnoDB`,
		`CREATE TABLE IF NOT EXISTS ratings (
			id INT AUTO_INCREMENT PRIMARY KEY,
			recipe_id INT NOT NULL,
			rating TINYINT NOT NULL CHECK (rating BETWEEN 1 AND 5),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (recipe_id) REFERENCES recipes(id) ON DELETE CASCADE
		) ENGINE=InnoDB`,
	},
}

// EnsureSchema creates the recipes and ratings tables if they do not exist
func EnsureSchema(ctx context.Context, dbConn *sqlx.DB) error {
	statements, ok := schemas[dbConn.DriverName()]
	if !ok {
		return fmt.Errorf("no schema for driver %q", dbConn.DriverName())
	}

	for _, stmt := range statements {
		if _, err := dbConn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating tables: %w", err)
		}
	}
	return nil
}
