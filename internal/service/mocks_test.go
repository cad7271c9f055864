package service

import (
	"tillpoint/internal/repositories"
	"tillpoint/models"
	"tillpoint/pkg/apperr"
	"tillpoint/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Output: "discard"})
}

// fakeStore is an in-memory stand-in for the database shared by the fake
// repositories, so stock movements made through one repository are visible
// through the others, mirroring how the SQL tables behave.
type fakeStore struct {
	products    map[string]*models.Product
	ingredients map[string]*models.Ingredient
	orders      map[string]*models.Order
	purchases   map[string]*models.Purchase

	// order/purchase numbers already taken; inserts against these fail
	// with ErrDuplicateNumber, like the unique index would.
	takenNumbers map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:     map[string]*models.Product{},
		ingredients:  map[string]*models.Ingredient{},
		orders:       map[string]*models.Order{},
		purchases:    map[string]*models.Purchase{},
		takenNumbers: map[string]bool{},
	}
}

func (s *fakeStore) addProduct(ownerID, id, name string, price float64, stock int, recipe []models.RecipeEntry) {
	s.products[id] = &models.Product{
		ID:          id,
		OwnerID:     ownerID,
		Name:        name,
		Price:       price,
		Stock:       stock,
		Available:   true,
		Ingredients: recipe,
	}
}

func (s *fakeStore) addIngredient(ownerID, id, name, unit string, stock float64) {
	s.ingredients[id] = &models.Ingredient{
		ID:      id,
		OwnerID: ownerID,
		Name:    name,
		Unit:    unit,
		Stock:   stock,
	}
}

func (s *fakeStore) applyProductMoves(moves []models.ProductStockMove, sign int) {
	for _, move := range moves {
		if product, ok := s.products[move.ProductID]; ok {
			product.Stock += sign * move.Quantity
		}
	}
}

func (s *fakeStore) applyIngredientMoves(moves []models.IngredientStockMove, sign float64) {
	for _, move := range moves {
		if ingredient, ok := s.ingredients[move.IngredientID]; ok {
			ingredient.Stock += sign * move.Amount
		}
	}
}

// fakeProductRepo

type fakeProductRepo struct {
	store *fakeStore
}

var _ repositories.ProductRepositoryInterface = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) GetAll(ownerID string) ([]*models.Product, error) {
	products := []*models.Product{}
	for _, product := range r.store.products {
		if product.OwnerID == ownerID {
			products = append(products, product)
		}
	}
	return products, nil
}

func (r *fakeProductRepo) GetByID(ownerID, id string) (*models.Product, error) {
	product, ok := r.store.products[id]
	if !ok || product.OwnerID != ownerID {
		return nil, apperr.NotFound("product %s not found", id)
	}
	return product, nil
}

func (r *fakeProductRepo) GetRecipe(ownerID, productID string) ([]models.RecipeEntry, error) {
	product, ok := r.store.products[productID]
	if !ok || product.OwnerID != ownerID {
		return []models.RecipeEntry{}, nil
	}

	// Mirror the SQL join: recipe entries carry current ingredient stock.
	entries := make([]models.RecipeEntry, 0, len(product.Ingredients))
	for _, entry := range product.Ingredients {
		if ingredient, ok := r.store.ingredients[entry.IngredientID]; ok {
			entry.Stock = ingredient.Stock
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *fakeProductRepo) Create(ownerID string, product *models.Product) error {
	product.OwnerID = ownerID
	if product.ID == "" {
		product.ID = "product-" + product.Name
	}
	r.store.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Update(ownerID, id string, product *models.Product) error {
	existing, ok := r.store.products[id]
	if !ok || existing.OwnerID != ownerID {
		return apperr.NotFound("product %s not found", id)
	}
	existing.CategoryID = product.CategoryID
	existing.Name = product.Name
	existing.Price = product.Price
	existing.Available = product.Available
	existing.Ingredients = product.Ingredients
	return nil
}

func (r *fakeProductRepo) SetStock(ownerID, id string, stock int) error {
	product, ok := r.store.products[id]
	if !ok || product.OwnerID != ownerID {
		return apperr.NotFound("product %s not found", id)
	}
	product.Stock = stock
	return nil
}

func (r *fakeProductRepo) Delete(ownerID, id string) error {
	product, ok := r.store.products[id]
	if !ok || product.OwnerID != ownerID {
		return apperr.NotFound("product %s not found", id)
	}
	delete(r.store.products, id)
	return nil
}

// fakeIngredientRepo

type fakeIngredientRepo struct {
	store *fakeStore
}

var _ repositories.IngredientRepositoryInterface = (*fakeIngredientRepo)(nil)

func (r *fakeIngredientRepo) GetAll(ownerID string) ([]*models.Ingredient, error) {
	ingredients := []*models.Ingredient{}
	for _, ingredient := range r.store.ingredients {
		if ingredient.OwnerID == ownerID {
			ingredients = append(ingredients, ingredient)
		}
	}
	return ingredients, nil
}

func (r *fakeIngredientRepo) GetByID(ownerID, id string) (*models.Ingredient, error) {
	ingredient, ok := r.store.ingredients[id]
	if !ok || ingredient.OwnerID != ownerID {
		return nil, apperr.NotFound("ingredient %s not found", id)
	}
	return ingredient, nil
}

func (r *fakeIngredientRepo) Create(ownerID string, ingredient *models.Ingredient) error {
	ingredient.OwnerID = ownerID
	if ingredient.ID == "" {
		ingredient.ID = "ingredient-" + ingredient.Name
	}
	r.store.ingredients[ingredient.ID] = ingredient
	return nil
}

func (r *fakeIngredientRepo) Update(ownerID, id string, ingredient *models.Ingredient) error {
	existing, ok := r.store.ingredients[id]
	if !ok || existing.OwnerID != ownerID {
		return apperr.NotFound("ingredient %s not found", id)
	}
	existing.Name = ingredient.Name
	existing.Unit = ingredient.Unit
	existing.Stock = ingredient.Stock
	return nil
}

func (r *fakeIngredientRepo) SetStock(ownerID, id string, stock float64) error {
	ingredient, ok := r.store.ingredients[id]
	if !ok || ingredient.OwnerID != ownerID {
		return apperr.NotFound("ingredient %s not found", id)
	}
	ingredient.Stock = stock
	return nil
}

func (r *fakeIngredientRepo) Delete(ownerID, id string) error {
	ingredient, ok := r.store.ingredients[id]
	if !ok || ingredient.OwnerID != ownerID {
		return apperr.NotFound("ingredient %s not found", id)
	}
	delete(r.store.ingredients, id)
	return nil
}

// fakeOrderRepo

type fakeOrderRepo struct {
	store         *fakeStore
	createCalls   int
	forcedDupes   int
	lastProductMv []models.ProductStockMove
	lastIngrMv    []models.IngredientStockMove
}

var _ repositories.OrderRepositoryInterface = (*fakeOrderRepo)(nil)

// failNextCreates makes the next n Create calls fail as number collisions,
// regardless of the generated number.
func (r *fakeOrderRepo) failNextCreates(n int) {
	r.forcedDupes = n
}

func (r *fakeOrderRepo) Create(ownerID string, order *models.Order, productMoves []models.ProductStockMove, ingredientMoves []models.IngredientStockMove) error {
	r.createCalls++
	if r.forcedDupes > 0 {
		r.forcedDupes--
		return repositories.ErrDuplicateNumber
	}
	if r.store.takenNumbers[order.OrderNumber] {
		return repositories.ErrDuplicateNumber
	}

	order.OwnerID = ownerID
	r.store.takenNumbers[order.OrderNumber] = true
	r.store.orders[order.ID] = order
	r.store.applyProductMoves(productMoves, -1)
	r.store.applyIngredientMoves(ingredientMoves, -1)
	r.lastProductMv = productMoves
	r.lastIngrMv = ingredientMoves
	return nil
}

func (r *fakeOrderRepo) GetAll(ownerID string) ([]*models.Order, error) {
	orders := []*models.Order{}
	for _, order := range r.store.orders {
		if order.OwnerID == ownerID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (r *fakeOrderRepo) GetToday(ownerID string) ([]*models.Order, error) {
	return r.GetAll(ownerID)
}

func (r *fakeOrderRepo) GetByID(ownerID, id string) (*models.Order, error) {
	order, ok := r.store.orders[id]
	if !ok || order.OwnerID != ownerID {
		return nil, apperr.NotFound("order %s not found", id)
	}
	return order, nil
}

func (r *fakeOrderRepo) Cancel(ownerID, id string, productMoves []models.ProductStockMove, ingredientMoves []models.IngredientStockMove) error {
	order, ok := r.store.orders[id]
	if !ok || order.OwnerID != ownerID {
		return apperr.NotFound("order %s not found", id)
	}
	if order.Status == models.OrderStatusCancelled {
		return apperr.Conflict("order %s is already cancelled", id)
	}

	order.Status = models.OrderStatusCancelled
	order.PaymentStatus = models.PaymentStatusCancelled
	r.store.applyProductMoves(productMoves, 1)
	r.store.applyIngredientMoves(ingredientMoves, 1)
	return nil
}

// fakePurchaseRepo

type fakePurchaseRepo struct {
	store       *fakeStore
	createCalls int
	forcedDupes int
}

var _ repositories.PurchaseRepositoryInterface = (*fakePurchaseRepo)(nil)

// failNextCreates makes the next n CreateBatch calls fail as number
// collisions, regardless of the generated numbers.
func (r *fakePurchaseRepo) failNextCreates(n int) {
	r.forcedDupes = n
}

func (r *fakePurchaseRepo) CreateBatch(ownerID string, purchases []*models.Purchase, credits []models.IngredientStockMove) error {
	r.createCalls++
	if r.forcedDupes > 0 {
		r.forcedDupes--
		return repositories.ErrDuplicateNumber
	}

	// The unique index sees rows from this batch too, not just rows
	// committed earlier.
	inBatch := map[string]bool{}
	for _, purchase := range purchases {
		if r.store.takenNumbers[purchase.PurchaseNumber] || inBatch[purchase.PurchaseNumber] {
			return repositories.ErrDuplicateNumber
		}
		inBatch[purchase.PurchaseNumber] = true
	}

	for _, purchase := range purchases {
		purchase.OwnerID = ownerID
		r.store.takenNumbers[purchase.PurchaseNumber] = true
		r.store.purchases[purchase.ID] = purchase
	}
	r.store.applyIngredientMoves(credits, 1)
	return nil
}

func (r *fakePurchaseRepo) GetAll(ownerID string) ([]*models.Purchase, error) {
	purchases := []*models.Purchase{}
	for _, purchase := range r.store.purchases {
		if purchase.OwnerID == ownerID {
			purchases = append(purchases, purchase)
		}
	}
	return purchases, nil
}

func (r *fakePurchaseRepo) GetByID(ownerID, id string) (*models.Purchase, error) {
	purchase, ok := r.store.purchases[id]
	if !ok || purchase.OwnerID != ownerID {
		return nil, apperr.NotFound("purchase %s not found", id)
	}
	return purchase, nil
}

func (r *fakePurchaseRepo) Delete(ownerID string, purchase *models.Purchase) error {
	stored, ok := r.store.purchases[purchase.ID]
	if !ok || stored.OwnerID != ownerID {
		return apperr.NotFound("purchase %s not found", purchase.ID)
	}

	if purchase.IngredientID != "" {
		if ingredient, ok := r.store.ingredients[purchase.IngredientID]; ok {
			ingredient.Stock -= purchase.Quantity
			if ingredient.Stock < 0 {
				ingredient.Stock = 0
			}
		}
	}
	delete(r.store.purchases, purchase.ID)
	return nil
}

// fakeUserRepo

type fakeUserRepo struct {
	users map[string]*models.User // keyed by username
}

var _ repositories.UserRepositoryInterface = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	if _, taken := r.users[user.Username]; taken {
		return apperr.Conflict("username %s is already taken", user.Username)
	}
	user.ID = "user-" + user.Username
	r.users[user.Username] = user
	return nil
}

func (r *fakeUserRepo) GetByUsername(username string) (*models.User, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, apperr.NotFound("user %s not found", username)
	}
	return user, nil
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperr.NotFound("user %s not found", id)
}
