package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tillpoint/models"
)

func TestCalculateSellable_NoRecipe(t *testing.T) {
	assert.Nil(t, CalculateSellable(nil))
	assert.Nil(t, CalculateSellable([]models.RecipeEntry{}))
}

func TestCalculateSellable_SingleEntry(t *testing.T) {
	entries := []models.RecipeEntry{
		{IngredientID: "beans", Quantity: 2, Stock: 10},
	}

	sellable := CalculateSellable(entries)
	if assert.NotNil(t, sellable) {
		assert.Equal(t, 5, *sellable)
	}
}

func TestCalculateSellable_MostConstrainedIngredientWins(t *testing.T) {
	entries := []models.RecipeEntry{
		{IngredientID: "beans", Quantity: 2, Stock: 10},  // 5 units
		{IngredientID: "milk", Quantity: 0.2, Stock: 0.5}, // 2 units
	}

	sellable := CalculateSellable(entries)
	if assert.NotNil(t, sellable) {
		assert.Equal(t, 2, *sellable)
	}
}

func TestCalculateSellable_FractionalRatioTruncates(t *testing.T) {
	entries := []models.RecipeEntry{
		{IngredientID: "beans", Quantity: 3, Stock: 10},
	}

	sellable := CalculateSellable(entries)
	if assert.NotNil(t, sellable) {
		assert.Equal(t, 3, *sellable)
	}
}

func TestCalculateSellable_ZeroQuantityEntryIsNonLimiting(t *testing.T) {
	entries := []models.RecipeEntry{
		{IngredientID: "beans", Quantity: 2, Stock: 10},
		{IngredientID: "garnish", Quantity: 0, Stock: 0},
	}

	sellable := CalculateSellable(entries)
	if assert.NotNil(t, sellable) {
		assert.Equal(t, 5, *sellable)
	}
}

func TestCalculateSellable_OnlyZeroQuantityEntries(t *testing.T) {
	entries := []models.RecipeEntry{
		{IngredientID: "garnish", Quantity: 0, Stock: 100},
	}

	sellable := CalculateSellable(entries)
	if assert.NotNil(t, sellable) {
		assert.Equal(t, 0, *sellable)
	}
}

func TestCalculateSellable_NegativeStockClampsToZero(t *testing.T) {
	entries := []models.RecipeEntry{
		{IngredientID: "beans", Quantity: 2, Stock: -4},
	}

	sellable := CalculateSellable(entries)
	if assert.NotNil(t, sellable) {
		assert.Equal(t, 0, *sellable)
	}
}

func TestAnnotateAvailability(t *testing.T) {
	withRecipe := &models.Product{
		Stock: 99,
		Ingredients: []models.RecipeEntry{
			{IngredientID: "beans", Quantity: 2, Stock: 10},
		},
	}
	AnnotateAvailability(withRecipe)
	assert.True(t, withRecipe.HasIngredients)
	if assert.NotNil(t, withRecipe.CalculatedStock) {
		assert.Equal(t, 5, *withRecipe.CalculatedStock)
	}

	withoutRecipe := &models.Product{Stock: 7}
	AnnotateAvailability(withoutRecipe)
	assert.False(t, withoutRecipe.HasIngredients)
	assert.Nil(t, withoutRecipe.CalculatedStock)
}
