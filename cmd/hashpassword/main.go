// Команда hashpassword печатает bcrypt-хеш пароля для переменной UPLOAD_PASSWORD_HASH.
//
//	go run ./cmd/hashpassword 'секрет'
package main

import (
	"fmt"
	"log"
	"os"

	"mediagallery/internal/auth"
)

func main() {
	if len(os.Args) != 2 || os.Args[1] == "" {
		fmt.Fprintln(os.Stderr, "использование: hashpassword <пароль>")
		os.Exit(2)
	}

	hash, err := auth.HashPassword(os.Args[1])
	if err != nil {
		log.Fatalf("Ошибка хеширования: %v", err)
	}
	fmt.Println(hash)
}
