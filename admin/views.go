package admin

import (
	"fmt"

	"restaurant-admin/access"
	"restaurant-admin/models"
)

// DefaultViews returns the views of every managed entity in menu order.
func DefaultViews() []*View {
	return []*View{
		UserView(),
		{
			Name:            "Restaurant",
			Endpoint:        "restaurant",
			New:             func() models.Entity { return &models.Restaurant{} },
			EditableColumns: []string{"user_id", "name", "address", "landmark"},
			FormExcluded:    []string{"recipes", "menu_card"},
			CanCreate:       true,
			CanEdit:         true,
			CanDelete:       true,
			Permission:      access.Authenticated,
			OnModelChange:   defaultOwner,
		},
		{
			Name:         "Ingredients",
			Endpoint:     "ingredients",
			New:          func() models.Entity { return &models.Ingredient{} },
			FormExcluded: []string{"recipe_ingredient"},
			CanCreate:    true,
			CanEdit:      true,
			CanDelete:    true,
			Permission:   access.Authenticated,
		},
		{
			Name:         "Recipes",
			Endpoint:     "recipes",
			New:          func() models.Entity { return &models.Recipe{} },
			FormExcluded: []string{"recipe_ingredient", "menu_card_recipes"},
			CanCreate:    true,
			CanEdit:      true,
			CanDelete:    true,
			Permission:   access.Authenticated,
		},
		{
			Name:       "Recipe Ingredient",
			Endpoint:   "recipeingredient",
			New:        func() models.Entity { return &models.RecipeIngredient{} },
			CanCreate:  true,
			CanEdit:    true,
			CanDelete:  true,
			Permission: access.Authenticated,
		},
		{
			Name:         "Menu Card",
			Endpoint:     "menucard",
			New:          func() models.Entity { return &models.MenuCard{} },
			FormExcluded: []string{"menu_card_recipes"},
			CanCreate:    true,
			CanEdit:      true,
			CanDelete:    true,
			Permission:   access.Authenticated,
		},
		{
			Name:       "Menu Card Recipes",
			Endpoint:   "menucardrecipes",
			New:        func() models.Entity { return &models.MenuCardRecipe{} },
			CanCreate:  true,
			CanEdit:    true,
			CanDelete:  true,
			Permission: access.Authenticated,
		},
	}
}

// UserView manages accounts. The plaintext password field is hashed on save
// and never stored.
func UserView() *View {
	return &View{
		Name:         "User",
		Endpoint:     "user",
		New:          func() models.Entity { return &models.User{} },
		ColumnList:   []string{"username", "email", "admin"},
		FormExcluded: []string{"password_hash", "token"},
		CanCreate:    true,
		CanEdit:      true,
		CanDelete:    true,
		CanExport:    true,
		PageSize:     20,
		Permission:   access.UserPolicy,
		Scope:        access.UserScope,
		OnModelChange: func(c access.Caller, form map[string]any, e models.Entity, created bool) error {
			u := e.(*models.User)
			// Non-admins only reach their own row, which is not an admin row.
			if _, ok := form["admin"]; ok && !c.IsAdmin() && u.Admin {
				return &models.FieldError{Field: "admin", Err: models.ErrAuthorizationFailure, Message: "only admins may change the admin flag"}
			}
			pw, _ := form["password"].(string)
			if pw == "" && created {
				pw = models.DefaultPassword
			}
			if pw == "" {
				return nil
			}
			return u.SetPassword(pw)
		},
	}
}

// defaultOwner assigns new restaurants to the caller unless a user_id was
// submitted.
func defaultOwner(c access.Caller, _ map[string]any, e models.Entity, created bool) error {
	r, ok := e.(*models.Restaurant)
	if !ok {
		return fmt.Errorf("restaurant view got %T", e)
	}
	if created && r.UserID == 0 && c.Authenticated() {
		r.UserID = c.User.ID
	}
	return nil
}
