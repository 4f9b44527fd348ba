package store

import (
	"context"
	"path/filepath"
	"testing"

	"restaurant-admin/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	models.PasswordCost = bcrypt.MinCost

	dsn := filepath.Join(t.TempDir(), "store.db") + "?_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.SessionToken{}, &models.Restaurant{}, &models.Ingredient{},
		&models.Recipe{}, &models.RecipeIngredient{}, &models.MenuCard{}, &models.MenuCardRecipe{},
	))
	return New(db)
}

// fixture is a user owning one restaurant with a recipe on a menu card.
type fixture struct {
	user       *models.User
	restaurant *models.Restaurant
	ingredient *models.Ingredient
	recipe     *models.Recipe
	link       *models.RecipeIngredient
	menu       *models.MenuCard
	menuRecipe *models.MenuCardRecipe
}

func seed(t *testing.T, s *Store) fixture {
	t.Helper()
	ctx := context.Background()
	var f fixture
	var err error

	f.user, err = models.NewUser("alice", "alice@example.com", "", false)
	require.NoError(t, err)
	require.NoError(t, s.Create(ctx, f.user))

	f.restaurant = models.NewRestaurant(f.user.ID, "Spice", models.RestaurantAddress{
		Address: "1 Main St", Branch: "north", City: "Pune", ZipCode: "411001",
	}, "")
	require.NoError(t, s.Create(ctx, f.restaurant))

	f.ingredient = models.NewIngredient("Paneer", models.Nutrition{Calories: 265, Protein: 18})
	require.NoError(t, s.Create(ctx, f.ingredient))

	f.recipe = models.NewRecipe(f.restaurant.ID, "Paneer Tikka", "starter", "indian",
		models.Serving{Size: 1, Unit: "plate"}, []string{"dairy"}, models.Nutrition{Calories: 320})
	require.NoError(t, s.Create(ctx, f.recipe))

	f.link = models.NewRecipeIngredient(f.recipe.ID, f.ingredient.ID)
	require.NoError(t, s.Create(ctx, f.link))

	f.menu = models.NewMenuCard("Dinner", f.restaurant.ID)
	require.NoError(t, s.Create(ctx, f.menu))

	f.menuRecipe = models.NewMenuCardRecipe(f.menu.ID, f.recipe.ID)
	require.NoError(t, s.Create(ctx, f.menuRecipe))
	return f
}

func count(t *testing.T, s *Store, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.DB().Model(model).Count(&n).Error)
	return n
}

func TestCreateAndGet(t *testing.T) {
	s := newTestStore(t)
	f := seed(t, s)

	var got models.Recipe
	require.NoError(t, s.Get(context.Background(), &got, f.recipe.ID))
	assert.Equal(t, "Paneer Tikka", got.Name)
	assert.Equal(t, []string{"dairy"}, []string(got.AllergyTags))
	assert.InDelta(t, 320.0, got.Calories, 0.001)
	assert.Zero(t, got.Sodium)

	var r models.Restaurant
	require.NoError(t, s.Get(context.Background(), &r, f.restaurant.ID))
	assert.Equal(t, "411001", r.ZipCode)
}

func TestGetMissing(t *testing.T) {
	s := newTestStore(t)
	err := s.Get(context.Background(), &models.Ingredient{}, 42)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUniqueness(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	f := seed(t, s)

	dup, err := models.NewUser("alice", "other@example.com", "", false)
	require.NoError(t, err)
	err = s.Create(ctx, dup)
	require.ErrorIs(t, err, models.ErrUniquenessViolation)
	assert.Contains(t, models.FieldMessages(err), "username")
	assert.EqualValues(t, 1, count(t, s, &models.User{}))

	dupEmail, err := models.NewUser("alice2", "ALICE@example.com", "", false)
	require.NoError(t, err)
	err = s.Create(ctx, dupEmail)
	require.ErrorIs(t, err, models.ErrUniquenessViolation)
	assert.Contains(t, models.FieldMessages(err), "email")

	second := models.NewRestaurant(f.user.ID, "Spice", models.RestaurantAddress{
		Address: "2 Side St", Branch: "south", City: "Pune", ZipCode: "411002",
	}, "")
	err = s.Create(ctx, second)
	require.ErrorIs(t, err, models.ErrUniquenessViolation)
	assert.Equal(t, map[string]string{"name": `name "Spice" already exists`}, models.FieldMessages(err))
	assert.EqualValues(t, 1, count(t, s, &models.Restaurant{}))
}

func TestReferenceMustResolve(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	f := seed(t, s)

	orphan := models.NewRecipe(999, "Ghost Curry", "main", "indian", models.Serving{Unit: "bowl"}, nil, models.Nutrition{})
	err := s.Create(ctx, orphan)
	require.ErrorIs(t, err, models.ErrReference)
	assert.Contains(t, models.FieldMessages(err), "restaurant_id")
	assert.EqualValues(t, 1, count(t, s, &models.Recipe{}))

	err = s.Create(ctx, models.NewRecipeIngredient(f.recipe.ID, 999))
	require.ErrorIs(t, err, models.ErrReference)
	assert.Contains(t, models.FieldMessages(err), "ingredient_id")
	assert.EqualValues(t, 1, count(t, s, &models.RecipeIngredient{}))

	err = s.Create(ctx, models.NewMenuCardRecipe(999, 1))
	require.ErrorIs(t, err, models.ErrReference)
	assert.Contains(t, models.FieldMessages(err), "menu_id")
}

func TestValidation(t *testing.T) {
	s := newTestStore(t)
	u := &models.User{Email: "not-an-email"}
	err := s.Create(context.Background(), u)
	require.ErrorIs(t, err, models.ErrValidation)

	fields := models.FieldMessages(err)
	assert.Equal(t, "this field is required", fields["username"])
	assert.Equal(t, "invalid email address", fields["email"])
	assert.EqualValues(t, 0, count(t, s, &models.User{}))
}

func TestUpdateChecksOnlyChangedColumns(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	f := seed(t, s)

	f.recipe.Cuisine = "punjabi"
	require.NoError(t, s.Update(ctx, f.recipe), "unchanged unique name must not collide with itself")

	other := models.NewRecipe(f.restaurant.ID, "Dal", "main", "indian", models.Serving{Unit: "bowl"}, nil, models.Nutrition{})
	require.NoError(t, s.Create(ctx, other))

	other.Name = "Paneer Tikka"
	err := s.Update(ctx, other)
	require.ErrorIs(t, err, models.ErrUniquenessViolation)

	var stored models.Recipe
	require.NoError(t, s.Get(ctx, &stored, other.ID))
	assert.Equal(t, "Dal", stored.Name)

	other.Name = "Dal"
	other.RestaurantID = 999
	require.ErrorIs(t, s.Update(ctx, other), models.ErrReference)

	require.ErrorIs(t, s.Update(ctx, &models.Recipe{Name: "x"}), models.ErrNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	f := seed(t, s)
	require.NoError(t, s.DB().Create(&models.SessionToken{UserID: f.user.ID, Token: "t1"}).Error)

	require.NoError(t, s.Delete(ctx, &models.User{}, f.user.ID))

	for _, m := range []any{
		&models.User{}, &models.SessionToken{}, &models.Restaurant{}, &models.Recipe{},
		&models.RecipeIngredient{}, &models.MenuCard{}, &models.MenuCardRecipe{},
	} {
		assert.EqualValues(t, 0, count(t, s, m), "%T rows left", m)
	}
	assert.EqualValues(t, 1, count(t, s, &models.Ingredient{}), "ingredients are not owned by users")
}

func TestDeleteRestaurantCascades(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	f := seed(t, s)

	var deleted models.Restaurant
	require.NoError(t, s.Delete(ctx, &deleted, f.restaurant.ID))
	assert.Equal(t, "Spice", deleted.Name)

	for _, m := range []any{
		&models.Restaurant{}, &models.Recipe{}, &models.RecipeIngredient{},
		&models.MenuCard{}, &models.MenuCardRecipe{},
	} {
		assert.EqualValues(t, 0, count(t, s, m), "%T rows left", m)
	}
	assert.EqualValues(t, 1, count(t, s, &models.User{}))
	assert.EqualValues(t, 1, count(t, s, &models.Ingredient{}))
}

func TestDeleteIngredientRemovesLinks(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	f := seed(t, s)

	require.NoError(t, s.Delete(ctx, &models.Ingredient{}, f.ingredient.ID))
	assert.EqualValues(t, 0, count(t, s, &models.RecipeIngredient{}))
	assert.EqualValues(t, 1, count(t, s, &models.Recipe{}))
}

func TestDeleteRecipeRemovesJoinRows(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	f := seed(t, s)

	require.NoError(t, s.Delete(ctx, &models.Recipe{}, f.recipe.ID))
	assert.EqualValues(t, 0, count(t, s, &models.RecipeIngredient{}))
	assert.EqualValues(t, 0, count(t, s, &models.MenuCardRecipe{}))
	assert.EqualValues(t, 1, count(t, s, &models.MenuCard{}))
	assert.EqualValues(t, 1, count(t, s, &models.Ingredient{}))
}

func TestDeleteMenuCardRemovesJoinRows(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	f := seed(t, s)

	require.NoError(t, s.Delete(ctx, &models.MenuCard{}, f.menu.ID))
	assert.EqualValues(t, 0, count(t, s, &models.MenuCardRecipe{}))
	assert.EqualValues(t, 1, count(t, s, &models.Recipe{}))
}

func TestDeleteMissing(t *testing.T) {
	s := newTestStore(t)
	assert.ErrorIs(t, s.Delete(context.Background(), &models.MenuCard{}, 7), models.ErrNotFound)
}

func TestListPaginatesAndScopes(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	for _, name := range []string{"Salt", "Pepper", "Cumin", "Ginger", "Garlic"} {
		require.NoError(t, s.Create(ctx, models.NewIngredient(name, models.Nutrition{})))
	}

	var page []*models.Ingredient
	total, err := s.List(ctx, &models.Ingredient{}, &page, ListOptions{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, "Cumin", page[0].Name)

	var scoped []*models.Ingredient
	total, err = s.List(ctx, &models.Ingredient{}, &scoped, ListOptions{
		Scope: func(db *gorm.DB) *gorm.DB { return db.Where("name LIKE ?", "G%") },
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, scoped, 2)
}

func TestUserByUsername(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seed(t, s)

	u, err := s.UserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)

	_, err = s.UserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestWritesAreNormalized(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	f := seed(t, s)

	raw := &models.User{Username: " carol ", Email: "Carol@Example.COM", PasswordHash: "x"}
	require.NoError(t, s.Create(ctx, raw))
	got, err := s.UserByUsername(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, "carol@example.com", got.Email)

	err = s.Create(ctx, &models.User{Username: "dave", Email: " ALICE@example.com", PasswordHash: "x"})
	require.ErrorIs(t, err, models.ErrUniquenessViolation)
	assert.Contains(t, models.FieldMessages(err), "email")

	err = s.Create(ctx, &models.Ingredient{Name: "Paneer "})
	require.ErrorIs(t, err, models.ErrUniquenessViolation)

	f.menu.Name = " Dinner  "
	require.NoError(t, s.Update(ctx, f.menu), "trimmed name matches the row's own value")
	f.recipe.AllergyTags = []string{"", " nuts "}
	require.NoError(t, s.Update(ctx, f.recipe))

	var stored models.Recipe
	require.NoError(t, s.Get(ctx, &stored, f.recipe.ID))
	assert.Equal(t, []string{"nuts"}, []string(stored.AllergyTags))
}
