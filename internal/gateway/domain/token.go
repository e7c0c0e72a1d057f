package domain

// TokenPair is what login and registration hand back: a short-lived access
// token and a longer-lived refresh token, both signed JWTs. The revocation
// set is keyed by bare jti strings; there is no richer model for it.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
