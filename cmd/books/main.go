package main

import (
	stdLog "log"
	"time"

	"github.com/joho/godotenv"

	"github.com/Astemirdum/books-service/books/app"
	"github.com/Astemirdum/books-service/books/config"
)

// @title Books API
// @version 1.0
// @description CRUD over the books catalogue.
// @BasePath /
func main() {
	// real environment wins, .env only fills the gaps
	if err := godotenv.Load(); err != nil {
		stdLog.Println("no .env file loaded:", err)
	}
	cfg, err := config.NewConfig(
		config.WithWriteTimeout(time.Minute),
	)
	if err != nil {
		stdLog.Fatal("config ", err)
	}

	if err := app.Run(cfg); err != nil {
		stdLog.Fatal("run ", err)
	}
}
