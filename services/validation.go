package services

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"recipe-service/models"

	"github.com/spf13/cast"
)

const maxRecipeNameLength = 255

// Validation messages
const (
	msgNameEmpty      = "Recipe Name cannot be empty"
	msgNameTooLong    = "Recipe Name cannot exceed 255 characters"
	msgPrepTime       = "Preparation time should be greater than zero minutes"
	msgDifficulty     = "Difficulty must be between 1 and 3"
	msgVegetarian     = "Invalid value for vegetarian"
	msgRatingRange    = "Rating must be between 1 and 5"
	msgNoUpdateData   = "No data provided for the update"
	msgRecipeNotFound = "Recipe not found"
	msgNameRequired   = "Recipe Name is required"
	msgPrepRequired   = "Preparation time is required"
	msgDiffRequired   = "Difficulty is required"
	msgVegRequired    = "Vegetarian is required"
)

// requireAll reports the first field missing from a create payload
func requireAll(in models.RecipeInput) error {
	switch {
	case in.RecipeName == nil:
		return badRequest(msgNameRequired)
	case in.PrepTime == nil:
		return badRequest(msgPrepRequired)
	case in.Difficulty == nil:
		return badRequest(msgDiffRequired)
	case in.Vegetarian == nil:
		return badRequest(msgVegRequired)
	}
	return nil
}

// validateRecipe coerces and range-checks every supplied field.
// Absent fields stay nil in the patch.
func validateRecipe(in models.RecipeInput) (models.RecipePatch, error) {
	var patch models.RecipePatch

	if in.RecipeName != nil {
		name, err := cast.ToStringE(in.RecipeName)
		if err != nil {
			return patch, invalid(msgNameEmpty)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return patch, invalid(msgNameEmpty)
		}
		if utf8.RuneCountInString(name) > maxRecipeNameLength {
			return patch, invalid(msgNameTooLong)
		}
		patch.RecipeName = &name
	}

	if in.PrepTime != nil {
		prep := toInt(in.PrepTime)
		if prep <= 0 {
			return patch, invalid(msgPrepTime)
		}
		patch.PrepTime = &prep
	}

	if in.Difficulty != nil {
		difficulty := toInt(in.Difficulty)
		if difficulty < 1 || difficulty > 3 {
			return patch, invalid(msgDifficulty)
		}
		patch.Difficulty = &difficulty
	}

	if in.Vegetarian != nil {
		veg, ok := toBool(in.Vegetarian)
		if !ok {
			return patch, invalid(msgVegetarian)
		}
		patch.Vegetarian = &veg
	}

	return patch, nil
}

// toInt coerces numbers and base-10 numeric strings; anything else becomes 0.
// "010" is ten, and hex or octal prefixes are not numbers.
func toInt(v interface{}) int {
	s, ok := v.(string)
	if !ok {
		if n, err := cast.ToIntE(v); err == nil {
			return n
		}
		return 0
	}

	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return int(n)
	}
	if strings.ContainsAny(s, "xXpP") {
		return 0
	}
	f, err := cast.ToFloat64E(s)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}

// toBool accepts the usual spellings of a boolean; ok is false when v is none of them
func toBool(v interface{}) (value bool, ok bool) {
	if b, isBool := v.(bool); isBool {
		return b, true
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return false, false
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "on", "yes":
		return true, true
	case "0", "false", "off", "no", "":
		return false, true
	}
	return false, false
}
