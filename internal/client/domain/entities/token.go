package entities

// TokenPair хранит пару учетных данных bearer: access и refresh токены.
// Токены непрозрачны для клиента; их содержимое не валидируется.
type TokenPair struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

// IsZero сообщает, что пара пуста (пользователь не вошел в систему).
func (p TokenPair) IsZero() bool {
	return p.AccessToken == "" && p.RefreshToken == ""
}

// Valid проверяет инвариант пары: оба токена присутствуют.
func (p TokenPair) Valid() bool {
	return p.AccessToken != "" && p.RefreshToken != ""
}
