package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"service-desk/pkg/config"
	"service-desk/pkg/database/postgresql"
	"service-desk/seeders"
)

func main() {
	runCatalog := flag.Bool("catalog", false, "seed the default catalog (areas, defects, request types)")
	runUsers := flag.Bool("users", false, "seed the admin and demo technicians")
	runAll := flag.Bool("all", false, "run every seeder")
	flag.Parse()

	if !*runCatalog && !*runUsers && !*runAll {
		log.Println("no seeder selected, available flags:")
		flag.PrintDefaults()
		log.Println("example: go run ./seeders/cmd/seed -all")
		return
	}

	ctx := context.Background()
	cfg := config.New()

	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, zap.NewNop())
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer dbPool.Close()

	if err := postgresql.Migrate(ctx, dbPool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	if *runAll || *runCatalog {
		if err := seeders.SeedCatalog(ctx, dbPool); err != nil {
			log.Fatalf("catalog seeder: %v", err)
		}
	}
	if *runAll || *runUsers {
		if err := seeders.SeedUsers(ctx, dbPool, cfg.Seeder); err != nil {
			log.Fatalf("user seeder: %v", err)
		}
	}
	log.Println("seeding finished")
}
