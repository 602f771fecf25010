package utils

import "github.com/aarondl/null/v8"

// NullString - пустая строка означает отсутствие значения.
func NullString(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}

func NullStringFromPtr(s *string) null.String {
	if s == nil {
		return null.String{}
	}
	return NullString(*s)
}
