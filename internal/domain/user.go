package domain

// User представляет зарегистрированный аккаунт
type User struct {
	UserID       int64  `json:"user_id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// Claims описывает данные авторизованного пользователя, извлеченные из токена
type Claims struct {
	UserID int64
	Email  string
}
