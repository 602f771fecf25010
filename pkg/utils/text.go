package utils

import "strings"

// CountWords - число слов, разделённых пробельными символами.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// ContainsFold - регистронезависимый поиск подстроки. Пустая подстрока совпадает всегда.
func ContainsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// MatchesAny - совпадает ли запрос хотя бы с одним из полей.
func MatchesAny(query string, fields ...string) bool {
	if strings.TrimSpace(query) == "" {
		return true
	}
	for _, f := range fields {
		if ContainsFold(f, query) {
			return true
		}
	}
	return false
}
