package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"tillpoint/models"
	"tillpoint/pkg/apperr"
)

func newProductFixture() (*ProductService, *fakeStore) {
	store := newFakeStore()
	productRepo := &fakeProductRepo{store: store}
	ingredientRepo := &fakeIngredientRepo{store: store}
	svc := NewProductService(productRepo, ingredientRepo, nil, testLogger())
	return svc, store
}

func TestCreateProduct_ResolvesRecipeFromIngredients(t *testing.T) {
	svc, store := newProductFixture()
	store.addIngredient(testOwner, "beans", "Coffee Beans", "g", 90)

	product, err := svc.CreateProduct(context.Background(), testOwner, ProductRequest{
		Name:  "Espresso",
		Price: 700,
		Ingredients: []RecipeEntryRequest{
			{IngredientID: "beans", Quantity: 18},
		},
	})

	assert.NoError(t, err)
	if assert.Len(t, product.Ingredients, 1) {
		// Name, unit and stock come from the stored ingredient, not the request.
		assert.Equal(t, "Coffee Beans", product.Ingredients[0].IngredientName)
		assert.Equal(t, "g", product.Ingredients[0].Unit)
		assert.InDelta(t, 90.0, product.Ingredients[0].Stock, 1e-9)
	}

	assert.True(t, product.HasIngredients)
	if assert.NotNil(t, product.CalculatedStock) {
		assert.Equal(t, 5, *product.CalculatedStock)
	}
	assert.True(t, product.Available)
}

func TestCreateProduct_Validation(t *testing.T) {
	svc, store := newProductFixture()
	store.addIngredient(testOwner, "beans", "Coffee Beans", "g", 90)

	cases := []struct {
		name string
		req  ProductRequest
	}{
		{"missing name", ProductRequest{Price: 100}},
		{"negative price", ProductRequest{Name: "Latte", Price: -1}},
		{"negative stock", ProductRequest{Name: "Latte", Stock: -1}},
		{"recipe entry without id", ProductRequest{
			Name: "Latte", Ingredients: []RecipeEntryRequest{{Quantity: 1}},
		}},
		{"negative recipe quantity", ProductRequest{
			Name: "Latte", Ingredients: []RecipeEntryRequest{{IngredientID: "beans", Quantity: -1}},
		}},
		{"duplicate recipe ingredient", ProductRequest{
			Name: "Latte",
			Ingredients: []RecipeEntryRequest{
				{IngredientID: "beans", Quantity: 1},
				{IngredientID: "beans", Quantity: 2},
			},
		}},
		{"unknown recipe ingredient", ProductRequest{
			Name: "Latte", Ingredients: []RecipeEntryRequest{{IngredientID: "ghost", Quantity: 1}},
		}},
	}

	for _, tc := range cases {
		_, err := svc.CreateProduct(context.Background(), testOwner, tc.req)
		assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err), tc.name)
	}

	assert.Empty(t, store.products)
}

func TestCreateProduct_CannotUseOtherTenantsIngredient(t *testing.T) {
	svc, store := newProductFixture()
	store.addIngredient("someone-else", "beans", "Coffee Beans", "g", 90)

	_, err := svc.CreateProduct(context.Background(), testOwner, ProductRequest{
		Name:  "Espresso",
		Price: 700,
		Ingredients: []RecipeEntryRequest{
			{IngredientID: "beans", Quantity: 18},
		},
	})

	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}

func TestGetAllProducts_AnnotatesAvailability(t *testing.T) {
	svc, store := newProductFixture()
	store.addIngredient(testOwner, "beans", "Coffee Beans", "g", 36)
	store.addProduct(testOwner, "espresso", "Espresso", 700, 0, []models.RecipeEntry{
		{IngredientID: "beans", Quantity: 18, Stock: 36},
	})
	store.addProduct(testOwner, "cookie", "Cookie", 600, 12, nil)

	products, err := svc.GetAllProducts(context.Background(), testOwner)
	assert.NoError(t, err)
	assert.Len(t, products, 2)

	byID := map[string]*models.Product{}
	for _, product := range products {
		byID[product.ID] = product
	}

	espresso := byID["espresso"]
	assert.True(t, espresso.HasIngredients)
	if assert.NotNil(t, espresso.CalculatedStock) {
		assert.Equal(t, 2, *espresso.CalculatedStock)
	}

	cookie := byID["cookie"]
	assert.False(t, cookie.HasIngredients)
	assert.Nil(t, cookie.CalculatedStock)
	assert.Equal(t, 12, cookie.Stock)
}

func TestSetProductStock(t *testing.T) {
	svc, store := newProductFixture()
	store.addProduct(testOwner, "cookie", "Cookie", 600, 3, nil)

	assert.NoError(t, svc.SetProductStock(context.Background(), testOwner, "cookie", 40))
	assert.Equal(t, 40, store.products["cookie"].Stock)

	err := svc.SetProductStock(context.Background(), testOwner, "cookie", -1)
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))

	err = svc.SetProductStock(context.Background(), testOwner, "missing", 5)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUpdateProduct_RewritesRecipe(t *testing.T) {
	svc, store := newProductFixture()
	store.addIngredient(testOwner, "beans", "Coffee Beans", "g", 90)
	store.addIngredient(testOwner, "milk", "Milk", "l", 10)
	store.addProduct(testOwner, "espresso", "Espresso", 700, 5, []models.RecipeEntry{
		{IngredientID: "beans", Quantity: 18},
	})

	updated, err := svc.UpdateProduct(context.Background(), testOwner, "espresso", ProductRequest{
		Name:  "Latte",
		Price: 1200,
		Ingredients: []RecipeEntryRequest{
			{IngredientID: "beans", Quantity: 18},
			{IngredientID: "milk", Quantity: 0.2},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, "Latte", updated.Name)
	assert.Len(t, updated.Ingredients, 2)
}

func TestDeleteProduct_Unknown(t *testing.T) {
	svc, _ := newProductFixture()

	err := svc.DeleteProduct(context.Background(), testOwner, "missing")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
