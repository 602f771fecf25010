package contextkeys

type contextKey string

const (
	UserKey   contextKey = "User"
	RequestIP contextKey = "RequestIP"
)
