package model

import "errors"

var (
	// Auth related errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account locked")
	ErrRateLimited        = errors.New("rate limited")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrForbidden          = errors.New("insufficient permissions")

	// Entity related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrBlogNotFound       = errors.New("blog not found")
	ErrServiceNotFound    = errors.New("service not found")
	ErrMemberNotFound     = errors.New("team member not found")
	ErrPageNotFound       = errors.New("page not found")
	ErrInquiryNotFound    = errors.New("inquiry not found")
	ErrSubscriberNotFound = errors.New("subscriber not found")
	ErrSlugTaken          = errors.New("slug already in use")

	// Persistence errors
	ErrStoreUnavailable = errors.New("store unavailable")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
