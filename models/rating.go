package models

import "time"

// Rating represents a 1-5 score attached to a recipe
type Rating struct {
	ID        int       `json:"id" db:"id"`
	RecipeID  int       `json:"recipe_id" db:"recipe_id"`
	Rating    int       `json:"rating" db:"rating"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// RatingInput is the body of POST /recipes/{id}/rating
type RatingInput struct {
	Rating interface{} `json:"rating"`
}
