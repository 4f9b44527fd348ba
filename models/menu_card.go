package models

import (
	"strings"
	"time"
)

type MenuCard struct {
	ID           uint      `json:"menu_id" gorm:"column:menu_id;primaryKey;autoIncrement"`
	Name         string    `json:"name" gorm:"size:120;uniqueIndex;not null" validate:"required,max=120"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;index" validate:"required"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	MenuCardRecipes []MenuCardRecipe `json:"-" gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE"`
}

func NewMenuCard(name string, restaurantID uint) *MenuCard {
	m := &MenuCard{Name: name, RestaurantID: restaurantID}
	m.Normalize()
	return m
}

func (MenuCard) TableName() string  { return "menu_cards" }
func (MenuCard) PrimaryKey() string { return "menu_id" }
func (m *MenuCard) EntityID() uint  { return m.ID }
func (m *MenuCard) String() string  { return m.Name }

func (m *MenuCard) Normalize() { m.Name = strings.TrimSpace(m.Name) }

func (m *MenuCard) UniqueFields() []UniqueField {
	return []UniqueField{{Column: "name", Value: m.Name}}
}

func (m *MenuCard) References() []Reference {
	return []Reference{{Column: "restaurant_id", Table: "restaurants", Key: "restaurant_id", ID: m.RestaurantID}}
}

// MenuCardRecipe places one recipe on one menu card.
type MenuCardRecipe struct {
	ID       uint `json:"menu_recipe_id" gorm:"column:menu_recipe_id;primaryKey;autoIncrement"`
	MenuID   uint `json:"menu_id" gorm:"not null;index" validate:"required"`
	RecipeID uint `json:"recipe_id" gorm:"not null;index" validate:"required"`
}

func NewMenuCardRecipe(menuID, recipeID uint) *MenuCardRecipe {
	return &MenuCardRecipe{MenuID: menuID, RecipeID: recipeID}
}

func (MenuCardRecipe) TableName() string               { return "menu_card_recipes" }
func (MenuCardRecipe) PrimaryKey() string              { return "menu_recipe_id" }
func (mr *MenuCardRecipe) EntityID() uint              { return mr.ID }
func (mr *MenuCardRecipe) UniqueFields() []UniqueField { return nil }
func (mr *MenuCardRecipe) Normalize()                  {}

func (mr *MenuCardRecipe) References() []Reference {
	return []Reference{
		{Column: "menu_id", Table: "menu_cards", Key: "menu_id", ID: mr.MenuID},
		{Column: "recipe_id", Table: "recipes", Key: "recipe_id", ID: mr.RecipeID},
	}
}
