package services

import (
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
)

const (
	HasherBcrypt   = "bcrypt"
	HasherArgon2id = "argon2id"
)

var argon2Params = &argon2id.Params{
	Memory:      64 * 1024,
	Iterations:  3,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

// PasswordHasher хеширует новым алгоритмом, а проверяет хеш любого из поддерживаемых,
// так что смена AUTH_PASSWORD_HASHER не ломает вход по старым паролям.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

type passwordHasher struct {
	algorithm string
}

func NewPasswordHasher(algorithm string) (PasswordHasher, error) {
	switch algorithm {
	case "", HasherBcrypt:
		return &passwordHasher{algorithm: HasherBcrypt}, nil
	case HasherArgon2id:
		return &passwordHasher{algorithm: HasherArgon2id}, nil
	}
	return nil, fmt.Errorf("неизвестный алгоритм хеширования паролей: %q", algorithm)
}

func (h *passwordHasher) Hash(password string) (string, error) {
	if h.algorithm == HasherArgon2id {
		hash, err := argon2id.CreateHash(password, argon2Params)
		if err != nil {
			return "", fmt.Errorf("не удалось хешировать пароль: %w", err)
		}
		return hash, nil
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("не удалось хешировать пароль: %w", err)
	}
	return string(bytes), nil
}

// Verify - пустой или неизвестный хеш никогда не совпадает.
func (h *passwordHasher) Verify(hash, password string) bool {
	switch {
	case hash == "":
		return false
	case strings.HasPrefix(hash, "$argon2id$"):
		ok, err := argon2id.ComparePasswordAndHash(password, hash)
		return err == nil && ok
	case strings.HasPrefix(hash, "$2"):
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}
	return false
}
