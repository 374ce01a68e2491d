package service

import "errors"

var (
	// ErrInvalidCredentials covers both unknown-username and wrong-password.
	// Callers must never be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrInvalidRefresh means the presented refresh token failed signature or
	// expiry checks.
	ErrInvalidRefresh = errors.New("invalid_refresh_token")

	// ErrWrongTokenType means a syntactically valid token of the wrong class
	// was presented, e.g. an access token at the refresh endpoint.
	ErrWrongTokenType = errors.New("wrong_token_type")

	// ErrUnknownSubject means the token verified but its subject no longer
	// exists in the credential store.
	ErrUnknownSubject = errors.New("unknown_subject")
)
