package main

import (
	"log"

	"remit-transfer/internal/app"
)

func main() {
	app, err := app.NewNotifierApp()
	if err != nil {
		log.Fatalf("не удалось создать приложение: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Fatalf("ошибка при запуске приложения: %v", err)
	}
}
