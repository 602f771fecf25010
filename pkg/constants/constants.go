package constants

//============== ENTITY TYPES ==============

// Значения entity_type в журнале действий.
const (
	EntityServiceOrder = "ServiceOrder"
	EntityUser         = "User"
	EntityReport       = "Report"
)

//============== CACHE KEYS ==============

// Префиксы для ключей в Redis/кеше. Email в ключах всегда в нижнем регистре.
const (
	// Ключ, указывающий, что вход заблокирован из-за неудачных попыток.
	// Формат: lockout:<email> -> "locked"
	CacheKeyLockout = "lockout:%s"

	// Ключ для подсчета неудачных попыток входа.
	// Формат: login_attempts:<email> -> count
	CacheKeyLoginAttempts = "login_attempts:%s"
)
