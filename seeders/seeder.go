package seeders

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"service-desk/internal/entities"
	"service-desk/internal/repositories"
	"service-desk/pkg/config"
	"service-desk/pkg/constants"
	"service-desk/pkg/utils"
)

// SeedCatalog upserts the default catalog values. Existing pairs are left
// untouched, so the seeder can run on every deploy.
func SeedCatalog(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - seeding catalog...")
	repo := repositories.NewCatalogRepository(db)
	txManager := repositories.NewTxManager(db)

	categories := make([]string, 0, len(catalogData))
	for c := range catalogData {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	inserted := 0
	err := txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		for _, category := range categories {
			for _, value := range catalogData[category] {
				ok, err := repo.Upsert(ctx, tx, entities.CatalogEntry{Category: category, Value: value})
				if err != nil {
					return fmt.Errorf("upsert %s/%s: %w", category, value, err)
				}
				if ok {
					inserted++
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Printf("    catalog: %d new entries", inserted)
	return nil
}

// SeedUsers creates the admin from SEED_ADMIN_* and the demo technicians when
// a technician password is configured. Existing logins are skipped.
func SeedUsers(ctx context.Context, db *pgxpool.Pool, cfg config.SeederConfig) error {
	log.Println("  - seeding users...")

	var users []entities.User
	if cfg.AdminLogin != "" && cfg.AdminPassword != "" {
		users = append(users, entities.User{Name: cfg.AdminName, Login: cfg.AdminLogin, Role: constants.RoleAdmin})
	} else {
		log.Println("    SEED_ADMIN_LOGIN or SEED_ADMIN_PASSWORD not set, skipping admin")
	}
	if cfg.TechnicianPassword != "" {
		for _, t := range technicianData {
			users = append(users, entities.User{Name: t.Name, Login: t.Login, Role: t.Role})
		}
	}
	if len(users) == 0 {
		return nil
	}

	repo := repositories.NewUserRepository(db)
	txManager := repositories.NewTxManager(db)

	return txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		for _, u := range users {
			password := cfg.TechnicianPassword
			if u.Role == constants.RoleAdmin {
				password = cfg.AdminPassword
			}
			hash, err := utils.HashPassword(password)
			if err != nil {
				return err
			}
			u.PasswordHash = hash

			created, err := repo.UpsertUser(ctx, tx, u)
			if err != nil {
				return fmt.Errorf("upsert user %s: %w", u.Login, err)
			}
			if created {
				log.Printf("    user %s (%s) created", u.Login, u.Role)
			} else {
				log.Printf("    user %s already exists", u.Login)
			}
		}
		return nil
	})
}
