package utils

import (
	"context"

	"os-manager/internal/entities"
	"os-manager/pkg/contextkeys"
)

// WithActor кладёт в контекст пользователя, выполняющего запрос.
func WithActor(ctx context.Context, user *entities.User) context.Context {
	return context.WithValue(ctx, contextkeys.UserKey, user)
}

func GetActorFromCtx(ctx context.Context) (*entities.User, bool) {
	user, ok := ctx.Value(contextkeys.UserKey).(*entities.User)
	return user, ok && user != nil
}

func WithRequestIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, contextkeys.RequestIP, ip)
}

func GetRequestIPFromCtx(ctx context.Context) string {
	ip, _ := ctx.Value(contextkeys.RequestIP).(string)
	return ip
}
