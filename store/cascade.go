package store

import (
	"restaurant-admin/models"

	"gorm.io/gorm"
)

// cascadeDelete removes e together with every row that references it.
// Children go first so the result does not depend on the database enforcing
// ON DELETE CASCADE.
func cascadeDelete(tx *gorm.DB, e models.Entity) error {
	switch v := e.(type) {
	case *models.User:
		return deleteUser(tx, v.ID)
	case *models.Restaurant:
		return deleteRestaurants(tx, []uint{v.ID})
	case *models.Recipe:
		return deleteRecipes(tx, []uint{v.ID})
	case *models.Ingredient:
		if err := tx.Where("ingredient_id = ?", v.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Ingredient{}, v.ID).Error
	case *models.MenuCard:
		return deleteMenuCards(tx, []uint{v.ID})
	}
	return tx.Delete(e).Error
}

func deleteUser(tx *gorm.DB, id uint) error {
	var restaurantIDs []uint
	if err := tx.Model(&models.Restaurant{}).Where("user_id = ?", id).Pluck("restaurant_id", &restaurantIDs).Error; err != nil {
		return err
	}
	if err := deleteRestaurants(tx, restaurantIDs); err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", id).Delete(&models.SessionToken{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.User{}, id).Error
}

func deleteRestaurants(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	var recipeIDs, menuIDs []uint
	if err := tx.Model(&models.Recipe{}).Where("restaurant_id IN ?", ids).Pluck("recipe_id", &recipeIDs).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.MenuCard{}).Where("restaurant_id IN ?", ids).Pluck("menu_id", &menuIDs).Error; err != nil {
		return err
	}
	if err := deleteMenuCards(tx, menuIDs); err != nil {
		return err
	}
	if err := deleteRecipes(tx, recipeIDs); err != nil {
		return err
	}
	return tx.Where("restaurant_id IN ?", ids).Delete(&models.Restaurant{}).Error
}

func deleteRecipes(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("recipe_id IN ?", ids).Delete(&models.RecipeIngredient{}).Error; err != nil {
		return err
	}
	if err := tx.Where("recipe_id IN ?", ids).Delete(&models.MenuCardRecipe{}).Error; err != nil {
		return err
	}
	return tx.Where("recipe_id IN ?", ids).Delete(&models.Recipe{}).Error
}

func deleteMenuCards(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("menu_id IN ?", ids).Delete(&models.MenuCardRecipe{}).Error; err != nil {
		return err
	}
	return tx.Where("menu_id IN ?", ids).Delete(&models.MenuCard{}).Error
}
