package main

import (
	"log"

	"remit-transfer/internal/app"
)

// @title           Remit Transfer API
// @version         1.0
// @description     API перевода средств между счетами с уведомлением получателя

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app, err := app.NewTransferApp()
	if err != nil {
		log.Fatalf("Ошибка создания приложения: %v", err)
	}

	app.BuildTransferLayer()

	if err := app.Run(); err != nil {
		log.Fatalf("Ошибка при работе приложения: %v", err)
	}
}
