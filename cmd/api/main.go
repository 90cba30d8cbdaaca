package main

import (
	"github.com/joho/godotenv"

	"voicehub/go_backend/internal/app"
)

func main() {
	_ = godotenv.Load()
	app.Run()
}
