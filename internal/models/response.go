package models

// Коды ошибок для API ответов.
const (
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeDuplicateUser    = "DUPLICATE_USERNAME"
	ErrCodeDuplicateEmail   = "DUPLICATE_EMAIL"
	ErrCodeWrongCredentials = "WRONG_CREDENTIALS"
	ErrCodeEmailNotVerified = "EMAIL_NOT_VERIFIED"
	ErrCodeTokenInvalid     = "TOKEN_INVALID"
	ErrCodeTokenExpired     = "TOKEN_EXPIRED"
	ErrCodeGeneration       = "GENERATION_FAILED"
	ErrCodeMailDelivery     = "MAIL_DELIVERY_FAILED"
	ErrCodeConflict         = "CONFLICT"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

// ErrorResponse - стандартная структура для ответа об ошибке в формате JSON.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse - стандартный ответ с одним текстовым сообщением.
type MessageResponse struct {
	Message string `json:"message"`
}
