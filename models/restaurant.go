package models

import (
	"strings"
	"time"
)

type Restaurant struct {
	ID           uint      `json:"restaurant_id" gorm:"column:restaurant_id;primaryKey;autoIncrement"`
	UserID       uint      `json:"user_id" gorm:"not null;index" validate:"required"`
	Name         string    `json:"name" gorm:"size:120;uniqueIndex;not null" validate:"required,max=120"`
	ProfileImage string    `json:"profile_image" gorm:"size:1024" validate:"max=1024"`
	Address      string    `json:"address" gorm:"size:512;not null" validate:"required,max=512"`
	Branch       string    `json:"branch" gorm:"size:64;not null" validate:"required,max=64"`
	City         string    `json:"city" gorm:"size:64;not null" validate:"required,max=64"`
	ZipCode      string    `json:"zip_code" gorm:"size:16;not null" validate:"required,max=16"`
	Landmark     string    `json:"landmark" gorm:"size:128" validate:"max=128"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Recipes   []Recipe   `json:"-" gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
	MenuCards []MenuCard `json:"-" gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
}

// RestaurantAddress groups the location fields of a restaurant.
type RestaurantAddress struct {
	Address  string
	Branch   string
	City     string
	ZipCode  string
	Landmark string
}

func NewRestaurant(userID uint, name string, addr RestaurantAddress, profileImage string) *Restaurant {
	r := &Restaurant{
		UserID:       userID,
		Name:         name,
		ProfileImage: profileImage,
		Address:      addr.Address,
		Branch:       addr.Branch,
		City:         addr.City,
		ZipCode:      addr.ZipCode,
		Landmark:     addr.Landmark,
	}
	r.Normalize()
	return r
}

func (Restaurant) TableName() string  { return "restaurants" }
func (Restaurant) PrimaryKey() string { return "restaurant_id" }
func (r *Restaurant) EntityID() uint  { return r.ID }
func (r *Restaurant) String() string  { return r.Name }

// OwnerID is the user that owns the restaurant.
func (r *Restaurant) OwnerID() uint { return r.UserID }

func (r *Restaurant) Normalize() { r.Name = strings.TrimSpace(r.Name) }

func (r *Restaurant) UniqueFields() []UniqueField {
	return []UniqueField{{Column: "name", Value: r.Name}}
}

func (r *Restaurant) References() []Reference {
	return []Reference{{Column: "user_id", Table: "users", Key: "id", ID: r.UserID}}
}
