package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"recipe-service/models"

	"github.com/jmoiron/sqlx"
)

const recipeColumns = "id, recipe_name, prep_time, difficulty, vegetarian, created_at"

// RecipeService validates and persists recipes and their ratings
type RecipeService struct {
	db *sqlx.DB
}

// NewRecipeService creates a new recipe service
func NewRecipeService(db *sqlx.DB) *RecipeService {
	return &RecipeService{db: db}
}

// List returns every recipe in table order
func (s *RecipeService) List(ctx context.Context) ([]models.Recipe, error) {
	recipes := []models.Recipe{}
	err := s.db.SelectContext(ctx, &recipes, "SELECT "+recipeColumns+" FROM recipes ORDER BY id")
	if err != nil {
		return nil, persistence(err)
	}
	return recipes, nil
}

// Get looks a recipe up by primary key
func (s *RecipeService) Get(ctx context.Context, id int) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.GetContext(ctx, &recipe, "SELECT "+recipeColumns+" FROM recipes WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(msgRecipeNotFound)
	}
	if err != nil {
		return nil, persistence(err)
	}
	return &recipe, nil
}

// Create validates a full payload and inserts one recipe, returning its id
func (s *RecipeService) Create(ctx context.Context, in models.RecipeInput) (int64, error) {
	if err := requireAll(in); err != nil {
		return 0, err
	}

	patch, err := validateRecipe(in)
	if err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO recipes (recipe_name, prep_time, difficulty, vegetarian) VALUES (?, ?, ?, ?)",
		*patch.RecipeName, *patch.PrepTime, *patch.Difficulty, *patch.Vegetarian)
	if err != nil {
		return 0, persistence(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, persistence(err)
	}
	return id, nil
}

// Update applies a partial payload; only supplied fields are written
func (s *RecipeService) Update(ctx context.Context, id int, in models.RecipeInput) error {
	if in.IsEmpty() {
		return badRequest(msgNoUpdateData)
	}

	patch, err := validateRecipe(in)
	if err != nil {
		return err
	}

	// Build update query dynamically
	setParts := []string{}
	args := []interface{}{}

	if patch.RecipeName != nil {
		setParts = append(setParts, "recipe_name = ?")
		args = append(args, *patch.RecipeName)
	}
	if patch.PrepTime != nil {
		setParts = append(setParts, "prep_time = ?")
		args = append(args, *patch.PrepTime)
	}
	if patch.Difficulty != nil {
		setParts = append(setParts, "difficulty = ?")
		args = append(args, *patch.Difficulty)
	}
	if patch.Vegetarian != nil {
		setParts = append(setParts, "vegetarian = ?")
		args = append(args, *patch.Vegetarian)
	}
	args = append(args, id)

	query := "UPDATE recipes SET " + strings.Join(setParts, ", ") + " WHERE id = ?"
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return persistence(err)
	}

	// MySQL reports zero affected rows when values are unchanged, so confirm
	// the row is really missing before answering 404.
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		if _, err := s.Get(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a recipe and its ratings in one transaction
func (s *RecipeService) Delete(ctx context.Context, id int) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return persistence(err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM ratings WHERE recipe_id = ?", id); err != nil {
		return persistence(err)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM recipes WHERE id = ?", id)
	if err != nil {
		return persistence(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return persistence(err)
	}
	if rows == 0 {
		return notFound(msgRecipeNotFound)
	}

	if err := tx.Commit(); err != nil {
		return persistence(err)
	}
	return nil
}

// Rate records a 1-5 score for an existing recipe
func (s *RecipeService) Rate(ctx context.Context, id int, value interface{}) error {
	rating := toInt(value)
	if value == nil || rating < 1 || rating > 5 {
		return invalid(msgRatingRange)
	}

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, "INSERT INTO ratings (recipe_id, rating) VALUES (?, ?)", id, rating)
	if err != nil {
		return persistence(err)
	}
	return nil
}

// Ratings lists the scores recorded for a recipe
func (s *RecipeService) Ratings(ctx context.Context, id int) ([]models.Rating, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	ratings := []models.Rating{}
	err := s.db.SelectContext(ctx, &ratings,
		"SELECT id, recipe_id, rating, created_at FROM ratings WHERE recipe_id = ? ORDER BY id", id)
	if err != nil {
		return nil, persistence(err)
	}
	return ratings, nil
}

// Search does a partial match on recipe_name; case sensitivity follows the
// database collation
func (s *RecipeService) Search(ctx context.Context, query string) ([]models.Recipe, error) {
	recipes := []models.Recipe{}
	err := s.db.SelectContext(ctx, &recipes,
		"SELECT "+recipeColumns+" FROM recipes WHERE recipe_name LIKE ? ORDER BY id", "%"+query+"%")
	if err != nil {
		return nil, persistence(err)
	}
	return recipes, nil
}
