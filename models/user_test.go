package models

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	PasswordCost = bcrypt.MinCost
}

func TestNewUserDefaultPassword(t *testing.T) {
	u, err := NewUser(" alice ", "Alice@Example.com", "", false)
	require.NoError(t, err)

	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.True(t, u.CheckPassword("Test@123"))
	assert.False(t, u.IsAdmin())
}

func TestCheckPassword(t *testing.T) {
	u, err := NewUser("alice", "alice@example.com", "Secret1", false)
	require.NoError(t, err)
	assert.True(t, u.CheckPassword("Secret1"))
	assert.False(t, u.CheckPassword("wrong"))
	assert.False(t, u.CheckPassword("secret1"))
}

func TestSetPasswordReplacesHash(t *testing.T) {
	u, err := NewUser("bob", "bob@example.com", "first", true)
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())

	old := u.PasswordHash
	require.NoError(t, u.SetPassword("second"))
	assert.NotEqual(t, old, u.PasswordHash)
	assert.False(t, u.CheckPassword("first"))
	assert.True(t, u.CheckPassword("second"))
	assert.False(t, strings.Contains(u.PasswordHash, "second"))
}

func TestSamePasswordIsSalted(t *testing.T) {
	a, err := NewUser("a", "a@example.com", "same", false)
	require.NoError(t, err)
	b, err := NewUser("b", "b@example.com", "same", false)
	require.NoError(t, err)
	assert.NotEqual(t, a.PasswordHash, b.PasswordHash)
}

func TestCheckPasswordWithoutHash(t *testing.T) {
	assert.False(t, (&User{}).CheckPassword(""))
}

func TestAvatar(t *testing.T) {
	u := &User{Email: "MyEmailAddress@example.com"}
	assert.Equal(t,
		"https://www.gravatar.com/avatar/0bc83cb571cd1c50ba6f3e8a78ef1346?d=identicon&s=80",
		u.Avatar(80))
}

func TestFieldMessages(t *testing.T) {
	ferr := &FieldError{Field: "name", Err: ErrUniquenessViolation, Message: "taken"}
	wrapped := fmt.Errorf("restaurants: %w", ferr)
	assert.True(t, errors.Is(wrapped, ErrUniquenessViolation))
	assert.Equal(t, map[string]string{"name": "taken"}, FieldMessages(wrapped))

	verr := &ValidationError{Fields: []*FieldError{
		{Field: "email", Err: ErrValidation, Message: "invalid email address"},
		{Field: "username", Err: ErrValidation, Message: "this field is required"},
	}}
	assert.ErrorIs(t, verr, ErrValidation)
	assert.Len(t, FieldMessages(verr), 2)

	assert.Nil(t, FieldMessages(ErrNotFound))
}

func TestRecipeConstructorDefaults(t *testing.T) {
	r := NewRecipe(1, " Paneer Tikka ", "starter", "indian", Serving{Unit: "plate"}, []string{" dairy ", ""}, Nutrition{})
	assert.Equal(t, "Paneer Tikka", r.Name)
	assert.Equal(t, []string{"dairy"}, []string(r.AllergyTags))
	assert.Zero(t, r.ServingSize)
	assert.Zero(t, r.Calories)

	empty := NewRecipe(1, "Rice", "main", "indian", Serving{Size: 1, Unit: "bowl"}, nil, Nutrition{})
	assert.NotNil(t, empty.AllergyTags)
	assert.Empty(t, empty.AllergyTags)
}

func TestRestaurantKeepsZipCode(t *testing.T) {
	r := NewRestaurant(1, "Spice", RestaurantAddress{Address: "1 Main St", Branch: "north", City: "Pune", ZipCode: "411001"}, "")
	assert.Equal(t, "411001", r.ZipCode)
	assert.Equal(t, uint(1), r.OwnerID())
	assert.Equal(t, []Reference{{Column: "user_id", Table: "users", Key: "id", ID: 1}}, r.References())
}
