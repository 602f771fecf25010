package main

import (
	"flag"
	"fmt"
	"log"

	"os-manager/internal/services"
	"os-manager/pkg/config"
)

// Печатает хеш пароля тем алгоритмом, который настроен в AUTH_PASSWORD_HASHER.
func main() {
	algorithm := flag.String("algo", "", "bcrypt | argon2id (по умолчанию из конфигурации)")
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("использование: hashpassword [-algo bcrypt|argon2id] <пароль>")
	}

	if *algorithm == "" {
		*algorithm = config.New().Auth.PasswordHasher
	}
	hasher, err := services.NewPasswordHasher(*algorithm)
	if err != nil {
		log.Fatalf("Ошибка: %v", err)
	}
	hash, err := hasher.Hash(flag.Arg(0))
	if err != nil {
		log.Fatalf("Ошибка при генерации хеша: %v", err)
	}
	fmt.Println(hash)
}
