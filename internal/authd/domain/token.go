package domain

// TokenPair is what a successful login produces: the access token goes into
// the response body, the refresh token travels only in a protected cookie.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
