package services

import (
	"context"
	"strings"
	"testing"

	"recipe-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paneerMasala() models.RecipeInput {
	return models.RecipeInput{
		RecipeName: "Paneer Masala",
		PrepTime:   float64(30),
		Difficulty: float64(2),
		Vegetarian: true,
	}
}

func TestRecipeService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc := NewRecipeService(newTestDB(t))

	id, err := svc.Create(ctx, paneerMasala())
	require.NoError(t, err)
	assert.Positive(t, id)

	recipe, err := svc.Get(ctx, int(id))
	require.NoError(t, err)
	assert.Equal(t, int(id), recipe.ID)
	assert.Equal(t, "Paneer Masala", recipe.RecipeName)
	assert.Equal(t, 30, recipe.PrepTime)
	assert.Equal(t, 2, recipe.Difficulty)
	assert.True(t, recipe.Vegetarian)
	assert.False(t, recipe.CreatedAt.IsZero())
}

func TestRecipeService_CreateMissingField(t *testing.T) {
	ctx := context.Background()
	svc := NewRecipeService(newTestDB(t))

	tests := []struct {
		name    string
		mutate  func(*models.RecipeInput)
		message string
	}{
		{"name", func(in *models.RecipeInput) { in.RecipeName = nil }, "Recipe Name is required"},
		{"prep time", func(in *models.RecipeInput) { in.PrepTime = nil }, "Preparation time is required"},
		{"difficulty", func(in *models.RecipeInput) { in.Difficulty = nil }, "Difficulty is required"},
		{"vegetarian", func(in *models.RecipeInput) { in.Vegetarian = nil }, "Vegetarian is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := paneerMasala()
			tt.mutate(&in)

			_, err := svc.Create(ctx, in)
			require.Error(t, err)
			assert.Equal(t, KindBadRequest, KindOf(err))
			assert.Equal(t, tt.message, err.Error())
		})
	}

	recipes, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, recipes, "no row may be inserted for an incomplete payload")
}

func TestRecipeService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewRecipeService(newTestDB(t))

	tests := []struct {
		name    string
		mutate  func(*models.RecipeInput)
		message string
	}{
		{"blank name", func(in *models.RecipeInput) { in.RecipeName = "   " }, msgNameEmpty},
		{"long name", func(in *models.RecipeInput) { in.RecipeName = strings.Repeat("a", 256) }, msgNameTooLong},
		{"zero prep", func(in *models.RecipeInput) { in.PrepTime = float64(0) }, msgPrepTime},
		{"negative prep", func(in *models.RecipeInput) { in.PrepTime = "-5" }, msgPrepTime},
		{"text prep", func(in *models.RecipeInput) { in.PrepTime = "soon" }, msgPrepTime},
		{"difficulty low", func(in *models.RecipeInput) { in.Difficulty = float64(0) }, msgDifficulty},
		{"difficulty high", func(in *models.RecipeInput) { in.Difficulty = "4" }, msgDifficulty},
		{"vegetarian word", func(in *models.RecipeInput) { in.Vegetarian = "maybe" }, msgVegetarian},
		{"vegetarian number", func(in *models.RecipeInput) { in.Vegetarian = float64(2) }, msgVegetarian},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := paneerMasala()
			tt.mutate(&in)

			_, err := svc.Create(ctx, in)
			require.Error(t, err)
			assert.Equal(t, KindValidation, KindOf(err))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestRecipeService_CreateCoercesValues(t *testing.T) {
	ctx := context.Background()
	svc := NewRecipeService(newTestDB(t))

	id, err := svc.Create(ctx, models.RecipeInput{
		RecipeName: "  Dal Tadka  ",
		PrepTime:   "25",
		Difficulty: "1",
		Vegetarian: "yes",
	})
	require.NoError(t, err)

	recipe, err := svc.Get(ctx, int(id))
	require.NoError(t, err)
	assert.Equal(t, "Dal Tadka", recipe.RecipeName)
	assert.Equal(t, 25, recipe.PrepTime)
	assert.Equal(t, 1, recipe.Difficulty)
	assert.True(t, recipe.Vegetarian)
}

func TestRecipeService_CreateParsesDecimalStrings(t *testing.T) {
	ctx := context.Background()
	svc := NewRecipeService(newTestDB(t))

	id, err := svc.Create(ctx, models.RecipeInput{
		RecipeName: "Rajma",
		PrepTime:   "010",
		Difficulty: "2.9",
		Vegetarian: true,
	})
	require.NoError(t, err)

	recipe, err := svc.Get(ctx, int(id))
	require.NoError(t, err)
	assert.Equal(t, 10, recipe.PrepTime)
	assert.Equal(t, 2, recipe.Difficulty)

	for _, prep := range []string{"0x1E", "0b11", "0o17", "1_0", "NaN", "Inf"} {
		_, err := svc.Create(ctx, models.RecipeInput{
			RecipeName: "Rajma",
			PrepTime:   prep,
			Difficulty: 1,
			Vegetarian: true,
		})
		require.Error(t, err, prep)
		assert.Equal(t, KindValidation, KindOf(err), prep)
		assert.Equal(t, msgPrepTime, err.Error(), prep)
	}
}

func TestRecipeService_GetNotFound(t *testing.T) {
	svc := NewRecipeService(newTestDB(t))

	_, err := svc.Get(context.Background(), 999)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "Recipe not found", err.Error())
}

func TestRecipeService_ListEmpty(t *testing.T) {
	svc := NewRecipeService(newTestDB(t))

	recipes, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, recipes)
	assert.Empty(t, recipes)
}

func TestRecipeService_UpdatePartial(t *testing.T) {
	ctx := context.Background()
	svc := NewRecipeService(newTestDB(t))

	id, err := svc.Create(ctx, paneerMasala())
	require.NoError(t, err)

	err = svc.Update(ctx, int(id), models.RecipeInput{PrepTime: float64(45), Vegetarian: "false"})
	require.NoError(t, err)

	recipe, err := svc.Get(ctx, int(id))
	require.NoError(t, err)
	assert.Equal(t, "Paneer Masala", recipe.RecipeName)
	assert.Equal(t, 45, recipe.PrepTime)
	assert.Equal(t, 2, recipe.Difficulty)
	assert.False(t, recipe.Vegetarian)
}

func TestRecipeService_UpdateErrors(t *testing.T) {
	ctx := context.Background()
	svc := NewRecipeService(newTestDB(t))

	id, err := svc.Create(ctx, paneerMasala())
	require.NoError(t, err)

	err = svc.Update(ctx, int(id), models.RecipeInput{})
	assert.Equal(t, KindBadRequest, KindOf(err))
	assert.Equal(t, "No data provided for the update", err.Error())

	err = svc.Update(ctx, int(id), models.RecipeInput{Difficulty: float64(7)})
	assert.Equal(t, KindValidation, KindOf(err))

	err = svc.Update(ctx, 999, models.RecipeInput{PrepTime: float64(10)})
	assert.Equal(t, KindNotFound, KindOf(err))

	recipe, err := svc.Get(ctx, int(id))
	require.NoError(t, err)
	assert.Equal(t, 2, recipe.Difficulty, "rejected update must not be applied")
}

func TestRecipeService_DeleteCascadesRatings(t *testing.T) {
	ctx := context.Background()
	dbConn := newTestDB(t)
	svc := NewRecipeService(dbConn)

	id, err := svc.Create(ctx, paneerMasala())
	require.NoError(t, err)
	require.NoError(t, svc.Rate(ctx, int(id), float64(5)))
	require.NoError(t, svc.Rate(ctx, int(id), "3"))

	ratings, err := svc.Ratings(ctx, int(id))
	require.NoError(t, err)
	assert.Len(t, ratings, 2)

	require.NoError(t, svc.Delete(ctx, int(id)))

	var orphans int
	require.NoError(t, dbConn.GetContext(ctx, &orphans, "SELECT COUNT(*) FROM ratings WHERE recipe_id = ?", id))
	assert.Zero(t, orphans)

	_, err = svc.Get(ctx, int(id))
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestRecipeService_DeleteNotFound(t *testing.T) {
	svc := NewRecipeService(newTestDB(t))

	err := svc.Delete(context.Background(), 42)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestRecipeService_Rate(t *testing.T) {
	ctx := context.Background()
	svc := NewRecipeService(newTestDB(t))

	id, err := svc.Create(ctx, paneerMasala())
	require.NoError(t, err)

	for _, bad := range []interface{}{nil, float64(0), float64(6), "abc", "-1"} {
		err := svc.Rate(ctx, int(id), bad)
		assert.Equal(t, KindValidation, KindOf(err), "value %v", bad)
		assert.Equal(t, "Rating must be between 1 and 5", err.Error())
	}

	// range check happens before the lookup
	err = svc.Rate(ctx, 999, float64(9))
	assert.Equal(t, KindValidation, KindOf(err))

	err = svc.Rate(ctx, 999, float64(4))
	assert.Equal(t, KindNotFound, KindOf(err))

	require.NoError(t, svc.Rate(ctx, int(id), float64(4)))

	ratings, err := svc.Ratings(ctx, int(id))
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, 4, ratings[0].Rating)
	assert.Equal(t, int(id), ratings[0].RecipeID)
}

func TestRecipeService_Search(t *testing.T) {
	ctx := context.Background()
	svc := NewRecipeService(newTestDB(t))

	for _, name := range []string{"Paneer Masala", "Chana Masala", "Aloo Gobi"} {
		in := paneerMasala()
		in.RecipeName = name
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}

	found, err := svc.Search(ctx, "masala")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Paneer Masala", found[0].RecipeName)
	assert.Equal(t, "Chana Masala", found[1].RecipeName)

	found, err = svc.Search(ctx, "biryani")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestRecipeService_PersistenceError(t *testing.T) {
	dbConn := newTestDB(t)
	svc := NewRecipeService(dbConn)
	require.NoError(t, dbConn.Close())

	_, err := svc.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindPersistence, KindOf(err))
	assert.True(t, strings.HasPrefix(err.Error(), "Database error: "))
}
