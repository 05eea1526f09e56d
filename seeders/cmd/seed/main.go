package main

import (
	"flag"
	"log"

	"roombook/pkg/config"
	"roombook/pkg/database/postgresql"
	"roombook/seeders"
)

func main() {
	runRooms := flag.Bool("rooms", false, "seed rooms and their fixed equipment")
	runEquipment := flag.Bool("equipment", false, "seed the equipment catalog")
	runUsers := flag.Bool("users", false, "seed demo users")
	runAll := flag.Bool("all", false, "run every seeder")
	flag.Parse()

	if !*runRooms && !*runEquipment && !*runUsers && !*runAll {
		log.Println("no seeder selected")
		flag.PrintDefaults()
		return
	}

	cfg := config.New()
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	// Equipment first: rooms reference it by name.
	if *runAll || *runEquipment {
		if err := seeders.SeedEquipments(dbPool); err != nil {
			log.Fatalf("equipment seeder failed: %v", err)
		}
	}
	if *runAll || *runRooms {
		if err := seeders.SeedRooms(dbPool); err != nil {
			log.Fatalf("rooms seeder failed: %v", err)
		}
	}
	if *runAll || *runUsers {
		if err := seeders.SeedUsers(dbPool); err != nil {
			log.Fatalf("users seeder failed: %v", err)
		}
	}

	log.Println("seeding finished")
}
