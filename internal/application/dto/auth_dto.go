package dto

// LoginURLResponse carries the identity provider's authorization URL.
type LoginURLResponse struct {
	AuthURL string `json:"auth_url"`
}

// CallbackResponse is returned after the OAuth code exchange: the provider
// token plus a session token for the dashboard.
type CallbackResponse struct {
	AccessToken  string       `json:"access_token"`
	SessionToken string       `json:"session_token"`
	User         CallbackUser `json:"user"`
}

// CallbackUser identifies the authenticated account.
type CallbackUser struct {
	PlatformID string `json:"facebook_id"`
	Role       string `json:"user_role"`
}

// StaffResponse is one staff account in management listings.
type StaffResponse struct {
	PlatformID string `json:"facebook_id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Status     string `json:"status,omitempty"`
}

// AddStaffRequest attaches a staff account to the calling owner.
type AddStaffRequest struct {
	PlatformID string `json:"facebook_id"`
}
