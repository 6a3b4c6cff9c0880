package domain

import "time"

// Identity - проверенное утверждение о пользователе, извлечённое из bearer-токена.
// Живёт в рамках одного запроса и нигде не сохраняется.
type Identity struct {
	SubjectID   string
	DisplayName string
}

// User - зарегистрированный пользователь auth-сервиса.
type User struct {
	ID           string
	Username     string
	PasswordHash []byte
	CreatedAt    time.Time
}
