package handlers

import (
	"context"
	"net/http"
	"strconv"

	"recipe-service/models"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// RecipeStore is the persistence contract the recipe routes depend on
type RecipeStore interface {
	List(ctx context.Context) ([]models.Recipe, error)
	Get(ctx context.Context, id int) (*models.Recipe, error)
	Create(ctx context.Context, in models.RecipeInput) (int64, error)
	Update(ctx context.Context, id int, in models.RecipeInput) error
	Delete(ctx context.Context, id int) error
	Rate(ctx context.Context, id int, value interface{}) error
	Ratings(ctx context.Context, id int) ([]models.Rating, error)
	Search(ctx context.Context, query string) ([]models.Recipe, error)
}

// RecipeHandler handles recipe and rating routes
type RecipeHandler struct {
	store RecipeStore
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(store RecipeStore) *RecipeHandler {
	return &RecipeHandler{store: store}
}

// recipeID parses the {id} path variable, answering 400 when it is not a positive integer
func recipeID(ctx context.Context, w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		logRequest(ctx, "info", "Invalid recipe ID", zap.String("id", idStr))
		writeError(w, http.StatusBadRequest, "Invalid recipe ID")
		return 0, false
	}
	return id, true
}

// ListRecipes handles GET /recipes, and GET /recipes?search=term
func (h *RecipeHandler) ListRecipes(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	var (
		recipes []models.Recipe
		err     error
	)

	if query, ok := r.URL.Query()["search"]; ok {
		logRequest(ctx, "info", "Searching recipes", zap.String("query", query[0]))
		recipes, err = h.store.Search(ctx, query[0])
	} else {
		logRequest(ctx, "info", "Listing recipes")
		recipes, err = h.store.List(ctx)
	}
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	logRequest(ctx, "info", "Recipes retrieved successfully", zap.Int("count", len(recipes)))
	writeJSON(w, http.StatusOK, recipes)
}

// GetRecipe handles GET /recipes/{id}
func (h *RecipeHandler) GetRecipe(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(ctx, w, r)
	if !ok {
		return
	}

	recipe, err := h.store.Get(ctx, id)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusOK, recipe)
}

// CreateRecipe handles POST /recipes
func (h *RecipeHandler) CreateRecipe(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	var req models.RecipeInput
	if err := decodeJSON(w, r, &req); err != nil {
		logRequest(ctx, "info", "Invalid request body", zap.Error(err))
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	id, err := h.store.Create(ctx, req)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	logRequest(ctx, "info", "Recipe created successfully", zap.Int64("recipe_id", id))
	writeJSON(w, http.StatusCreated, models.CreateRecipeResponse{
		Message: "Recipe created successfully",
		ID:      id,
	})
}

// UpdateRecipe handles PUT and PATCH /recipes/{id}; both accept partial payloads
func (h *RecipeHandler) UpdateRecipe(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(ctx, w, r)
	if !ok {
		return
	}

	var req models.RecipeInput
	if err := decodeJSON(w, r, &req); err != nil {
		logRequest(ctx, "info", "Invalid request body", zap.Error(err))
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	if err := h.store.Update(ctx, id, req); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	logRequest(ctx, "info", "Recipe updated successfully", zap.Int("recipe_id", id))
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Recipe updated successfully"})
}

// DeleteRecipe handles DELETE /recipes/{id}
func (h *RecipeHandler) DeleteRecipe(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(ctx, w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(ctx, id); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	logRequest(ctx, "info", "Recipe deleted", zap.Int("recipe_id", id))
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Recipe deleted"})
}

// RateRecipe handles POST /recipes/{id}/rating
func (h *RecipeHandler) RateRecipe(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(ctx, w, r)
	if !ok {
		return
	}

	var req models.RatingInput
	if err := decodeJSON(w, r, &req); err != nil {
		logRequest(ctx, "info", "Invalid request body", zap.Error(err))
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	if err := h.store.Rate(ctx, id, req.Rating); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	logRequest(ctx, "info", "Rating submitted", zap.Int("recipe_id", id))
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Rating submitted"})
}

// ListRatings handles GET /recipes/{id}/rating
func (h *RecipeHandler) ListRatings(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(ctx, w, r)
	if !ok {
		return
	}

	ratings, err := h.store.Ratings(ctx, id)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusOK, ratings)
}

// MissingRecipeID answers PUT, PATCH and DELETE on the collection path
func MissingRecipeID(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	logRequest(ctx, "info", "Missing Recipe ID")
	writeError(w, http.StatusBadRequest, "Missing Recipe ID")
}
