package models

import (
	"strings"
	"time"
)

// Nutrition is the nutritional block shared by ingredients and recipes.
// Every value defaults to 0.
type Nutrition struct {
	Quantity          float64 `json:"quantity" gorm:"default:0"`
	Calories          float64 `json:"calories" gorm:"default:0"`
	TotalFat          float64 `json:"total_fat" gorm:"default:0"`
	SaturatedFat      float64 `json:"saturated_fat" gorm:"default:0"`
	TransFat          float64 `json:"trans_fat" gorm:"default:0"`
	Cholesterol       float64 `json:"cholesterol" gorm:"default:0"`
	Sodium            float64 `json:"sodium" gorm:"default:0"`
	TotalCarbohydrate float64 `json:"total_carbohydrate" gorm:"default:0"`
	DietaryFiber      float64 `json:"dietary_fiber" gorm:"default:0"`
	TotalSugars       float64 `json:"total_sugars" gorm:"default:0"`
	Protein           float64 `json:"protein" gorm:"default:0"`
	VitaminD          float64 `json:"vitamin_d" gorm:"default:0"`
	Calcium           float64 `json:"calcium" gorm:"default:0"`
	Iron              float64 `json:"iron" gorm:"default:0"`
	Potassium         float64 `json:"potassium" gorm:"default:0"`
}

type Ingredient struct {
	ID   uint   `json:"ingredient_id" gorm:"column:ingredient_id;primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:120;uniqueIndex;not null" validate:"required,max=120"`
	Nutrition
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	RecipeIngredients []RecipeIngredient `json:"-" gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
}

func NewIngredient(name string, n Nutrition) *Ingredient {
	i := &Ingredient{Name: name, Nutrition: n}
	i.Normalize()
	return i
}

func (Ingredient) TableName() string          { return "ingredients" }
func (Ingredient) PrimaryKey() string         { return "ingredient_id" }
func (i *Ingredient) EntityID() uint          { return i.ID }
func (i *Ingredient) String() string          { return i.Name }
func (i *Ingredient) References() []Reference { return nil }
func (i *Ingredient) Normalize()              { i.Name = strings.TrimSpace(i.Name) }

func (i *Ingredient) UniqueFields() []UniqueField {
	return []UniqueField{{Column: "name", Value: i.Name}}
}
