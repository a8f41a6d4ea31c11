package models

import "time"

// Recipe represents a row in the recipes table
type Recipe struct {
	ID         int       `json:"id" db:"id"`
	RecipeName string    `json:"recipe_name" db:"recipe_name"`
	PrepTime   int       `json:"prep_time" db:"prep_time"`   // minutes
	Difficulty int       `json:"difficulty" db:"difficulty"` // 1..3
	Vegetarian bool      `json:"vegetarian" db:"vegetarian"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// RecipeInput is the body of POST /recipes and PUT|PATCH /recipes/{id}.
// Fields are left untyped so clients may send "30" as well as 30;
// a nil field means the client did not supply it.
type RecipeInput struct {
	RecipeName interface{} `json:"recipe_name"`
	PrepTime   interface{} `json:"prep_time"`
	Difficulty interface{} `json:"difficulty"`
	Vegetarian interface{} `json:"vegetarian"`
}

// IsEmpty reports whether no recognised field was supplied
func (in RecipeInput) IsEmpty() bool {
	return in.RecipeName == nil && in.PrepTime == nil && in.Difficulty == nil && in.Vegetarian == nil
}

// RecipePatch holds validated values; nil pointers are left untouched on update
type RecipePatch struct {
	RecipeName *string
	PrepTime   *int
	Difficulty *int
	Vegetarian *bool
}

// CreateRecipeResponse is returned by POST /recipes
type CreateRecipeResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}
