package main

import (
	"log"

	"github.com/Kevin-innovation/dlab-dashboard/app/config"
	"github.com/Kevin-innovation/dlab-dashboard/app/database"
)

func main() {
	config.LoadEnv()
	config.InitDB()

	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatalf("Migrations failed: %v", err)
	}
	log.Println("Migrations applied")
}
