package models

// Credentials — пара API-ключей биржи. Живёт до конца процесса
// или до явной перезаписи; в логи в открытом виде не попадает.
type Credentials struct {
	ExchangeID string
	APIKey     string
	APISecret  string
}

func (c Credentials) Valid() bool {
	return c.APIKey != "" && c.APISecret != ""
}
