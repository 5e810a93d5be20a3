package main

import (
	"catalog-backend/cmd/catalog/cmd"

	"github.com/joho/godotenv"
)

func main() {
	// .env.local is loaded first so that it wins, neither file is required
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	cmd.Execute()
}
