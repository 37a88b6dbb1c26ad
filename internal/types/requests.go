package types

// TokenRequest is the credential payload for issuing a bearer token
type TokenRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the payload for creating a user account
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=254"`
	Username  string `json:"username" binding:"required,max=150"`
	FirstName string `json:"first_name" binding:"required,max=150"`
	LastName  string `json:"last_name" binding:"required,max=150"`
	Password  string `json:"password" binding:"required,max=150"`
}

// PasswordChangeRequest is the payload for /users/set_password
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,max=150"`
}

// RecipeIngredientInput references a catalog ingredient with a quantity
type RecipeIngredientInput struct {
	ID     uint `json:"id" binding:"required"`
	Amount int  `json:"amount" binding:"required"`
}

// RecipeInput is the write payload for creating or updating a recipe.
// Image is a base64 data URI; on update an empty image keeps the stored one.
type RecipeInput struct {
	Name        string                  `json:"name" binding:"required,max=200"`
	Text        string                  `json:"text" binding:"required"`
	CookingTime int                     `json:"cooking_time" binding:"required"`
	Image       string                  `json:"image"`
	Tags        []uint                  `json:"tags"`
	Ingredients []RecipeIngredientInput `json:"ingredients"`
}
