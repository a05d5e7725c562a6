package interfaces

import "context"

// Mailer отправляет письма верификации. Единственный потребитель - регистрация
// и повторная отправка токена; реализация - SMTP либо логирующий симулятор.
type Mailer interface {
	// SendVerificationMail sends the verification link built from the frontend
	// base URL and the one-time token. Returns models.ErrMailDeliveryFailed
	// (wrapped) when delivery fails.
	SendVerificationMail(ctx context.Context, email, token string) error
}
