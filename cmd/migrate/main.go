// Command migrate applies the schema to the configured database.
package main

import (
	"log"

	"myboard/internal/config"
	"myboard/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	if err := db.AutoMigrate(database.PersistentModels()...); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("schema applied")
}
