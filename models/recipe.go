package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

type Recipe struct {
	ID           uint                        `json:"recipe_id" gorm:"column:recipe_id;primaryKey;autoIncrement"`
	RestaurantID uint                        `json:"restaurant_id" gorm:"not null;index" validate:"required"`
	Name         string                      `json:"name" gorm:"size:120;uniqueIndex;not null" validate:"required,max=120"`
	ImageString  string                      `json:"image_string" gorm:"size:1024" validate:"max=1024"`
	Type         string                      `json:"type" gorm:"size:120;index;not null" validate:"required,max=120"`
	ServingSize  float64                     `json:"serving_size" gorm:"default:0"`
	ServingUnit  string                      `json:"serving_unit" gorm:"size:120;not null" validate:"required,max=120"`
	Cuisine      string                      `json:"cuisine" gorm:"size:120;not null" validate:"required,max=120"`
	AllergyTags  datatypes.JSONSlice[string] `json:"allergy_tag" gorm:"column:allergy_tag"`
	Nutrition
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	RecipeIngredients []RecipeIngredient `json:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	MenuCardRecipes   []MenuCardRecipe   `json:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

// Serving describes the portion a recipe's nutrition values refer to.
type Serving struct {
	Size float64
	Unit string
}

func NewRecipe(restaurantID uint, name, kind, cuisine string, serving Serving, allergyTags []string, n Nutrition) *Recipe {
	r := &Recipe{
		RestaurantID: restaurantID,
		Name:         name,
		Type:         kind,
		ServingSize:  serving.Size,
		ServingUnit:  serving.Unit,
		Cuisine:      cuisine,
		AllergyTags:  datatypes.NewJSONSlice(allergyTags),
		Nutrition:    n,
	}
	r.Normalize()
	return r
}

func (Recipe) TableName() string  { return "recipes" }
func (Recipe) PrimaryKey() string { return "recipe_id" }
func (r *Recipe) EntityID() uint  { return r.ID }
func (r *Recipe) String() string  { return r.Name }

// Normalize trims the name and drops blank allergy tags.
func (r *Recipe) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	tags := make([]string, 0, len(r.AllergyTags))
	for _, t := range r.AllergyTags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	r.AllergyTags = datatypes.NewJSONSlice(tags)
}

func (r *Recipe) UniqueFields() []UniqueField {
	return []UniqueField{{Column: "name", Value: r.Name}}
}

func (r *Recipe) References() []Reference {
	return []Reference{{Column: "restaurant_id", Table: "restaurants", Key: "restaurant_id", ID: r.RestaurantID}}
}

// RecipeIngredient links one recipe to one ingredient.
type RecipeIngredient struct {
	ID           uint `json:"recipe_ingredient_id" gorm:"column:recipe_ingredient_id;primaryKey;autoIncrement"`
	RecipeID     uint `json:"recipe_id" gorm:"not null;index" validate:"required"`
	IngredientID uint `json:"ingredient_id" gorm:"not null;index" validate:"required"`
}

func NewRecipeIngredient(recipeID, ingredientID uint) *RecipeIngredient {
	return &RecipeIngredient{RecipeID: recipeID, IngredientID: ingredientID}
}

func (RecipeIngredient) TableName() string               { return "recipe_ingredients" }
func (RecipeIngredient) PrimaryKey() string              { return "recipe_ingredient_id" }
func (ri *RecipeIngredient) EntityID() uint              { return ri.ID }
func (ri *RecipeIngredient) UniqueFields() []UniqueField { return nil }
func (ri *RecipeIngredient) Normalize()                  {}

func (ri *RecipeIngredient) References() []Reference {
	return []Reference{
		{Column: "recipe_id", Table: "recipes", Key: "recipe_id", ID: ri.RecipeID},
		{Column: "ingredient_id", Table: "ingredients", Key: "ingredient_id", ID: ri.IngredientID},
	}
}
