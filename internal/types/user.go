package types

// UserProfile is the user representation returned by user endpoints.
// IsSubscribed is computed relative to the requesting viewer and is
// always false for anonymous requests.
type UserProfile struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// UserWithRecipes extends UserProfile for subscription listings: the
// author's recipes (optionally capped by recipes_limit) plus a total count.
type UserWithRecipes struct {
	UserProfile
	Recipes      []RecipeSummary `json:"recipes"`
	RecipesCount int64           `json:"recipes_count"`
}
