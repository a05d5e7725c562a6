package models

import "errors"

// Стандартные ошибки приложения
var (
	// Common Resource/DB Errors
	ErrNotFound             = errors.New("resource not found") // General not found
	ErrStoryNotFound        = errors.New("story not found")
	ErrCharacterNotFound    = errors.New("character not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrTimelineNotFound     = errors.New("timeline not found")
	ErrLocationNotFound     = errors.New("location not found")
	ErrStoryContentNotFound = errors.New("story content not found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrToolNotFound         = errors.New("tool not found")

	// User & Authentication Errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user with this username already exists")
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmailNotVerified   = errors.New("email address is not verified")
	ErrUnauthorized       = errors.New("unauthorized")

	// Token Errors
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")

	// Email Verification Errors
	ErrVerificationTokenInvalid = errors.New("verification token is invalid")
	ErrVerificationTokenExpired = errors.New("verification token has expired")
	ErrEmailAlreadyVerified     = errors.New("email is already verified")

	// Session Log Errors
	ErrSessionClosed         = errors.New("session is not active")
	ErrToolAlreadyExists     = errors.New("tool with this name already exists")
	ErrTimelineAlreadyExists = errors.New("story already has a timeline")

	// Generation & Delivery Errors
	ErrGenerationFailed   = errors.New("ai generation failed")
	ErrMailDeliveryFailed = errors.New("failed to deliver email")

	// General Request/Server Errors
	ErrInternalServer = errors.New("internal server error")
	ErrBadRequest     = errors.New("bad request")
	ErrInvalidInput   = errors.New("invalid input data")
)
