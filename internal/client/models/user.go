// Package models defines the wire and in-memory types shared by the API
// client, the session store and the profile services.
package models

// UserProfile is the full profile object issued by the backend on login.
// Field names follow the backend's JSON contract ("_id" included).
type UserProfile struct {
	ID                       string             `json:"_id"`
	FirstName                string             `json:"first_name"`
	LastName                 string             `json:"last_name"`
	Username                 string             `json:"username"`
	PhoneNumber              string             `json:"phone_number"`
	Birthday                 string             `json:"birthday"`
	VendorAccountInitialized bool               `json:"vendor_account_initialized"`
	LikedArticles            Optional[[]string] `json:"liked_articles"`
	SavedArticles            Optional[[]string] `json:"saved_articles"`
}

// SessionBootstrap is the normalized record a successful login produces.
// It carries everything required to populate the session store.
type SessionBootstrap struct {
	User        UserProfile `json:"user"`
	AccountType string      `json:"account_type"`
}

// EditableFields is the subset of profile fields the user may change from
// the profile screen. Exactly these keys are sent on a profile update.
type EditableFields struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Username    string `json:"username"`
	Birthday    string `json:"birthday"`
	PhoneNumber string `json:"phone_number"`
}
