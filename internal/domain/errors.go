package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnauthenticated - запрос пришёл без bearer-токена.
	ErrUnauthenticated = errors.New("access token required")
	// ErrInvalidCredential - токен повреждён, просрочен или не прошёл проверку подписи.
	ErrInvalidCredential = errors.New("invalid or expired token")
	// ErrInvalidRequest - в запросе нет обязательных полей или они некорректны.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInternal - непредвиденная ошибка; наружу отдаётся без деталей.
	ErrInternal = errors.New("internal server error")
	// ErrNotificationUndeliverable - уведомление не доставлено. Только логируется.
	ErrNotificationUndeliverable = errors.New("notification undeliverable")

	// Ошибка отсутствующего идентификатора заказа.
	ErrOrderIDRequired = errors.New("order id is required")
	// Ошибка отсутствующего владельца заказа.
	ErrOwnerRequired = errors.New("order owner is required")
	// Ошибка при количестве <= 0.
	ErrQuantityInvalid = errors.New("quantity must be greater than zero")
	// Ошибка отрицательной цены.
	ErrPriceNegative = errors.New("price must be non-negative")
	// Ошибка несоответствия суммы заказа и price * qty.
	ErrAmountMismatch = errors.New("order total does not match price * quantity")
	// ErrDuplicateOrder - в журнале уже есть заказ с таким ID.
	ErrDuplicateOrder = errors.New("order already exists")

	// ErrUserExists - пользователь с таким именем уже зарегистрирован.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound - пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrBadCredentials - неверная пара логин/пароль.
	ErrBadCredentials = errors.New("invalid credentials")

	// ErrProductNotFound - товара нет в каталоге.
	ErrProductNotFound = errors.New("product not found")
)

// InvalidRequest оборачивает ErrInvalidRequest причиной, пригодной для ответа клиенту.
func InvalidRequest(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, reason)
}

// Reason возвращает короткую причину ошибки для тела ответа.
// Для обёрнутых ErrInvalidRequest это текст после двоеточия.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrInvalidRequest) {
		return strings.TrimPrefix(err.Error(), ErrInvalidRequest.Error()+": ")
	}
	return err.Error()
}
