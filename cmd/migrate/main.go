// cmd/migrate/main.go
//
// Schema migration runner.  Reads the same conf/global.yaml (+ Vault
// reference for the password) as cmd/web, then applies the embedded
// migrations forward.  `migrate force <version>` recovers from a dirty
// state.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/joho/godotenv"

	"github.com/converta/converta/internal/config"
	"github.com/converta/converta/internal/database"
	"github.com/converta/converta/internal/vault"
	"github.com/converta/converta/migrations"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	password := cfg.Database.Password
	if vault.IsRef(password) {
		vc, err := vault.New(ctx, log.Printf)
		if err != nil {
			log.Fatalf("vault connect: %v", err)
		}
		if password, err = vc.Resolve(ctx, password); err != nil {
			log.Fatalf("resolve database password: %v", err)
		}
	}

	db, err := sql.Open("mysql", database.BuildDSN(cfg.Database.DSN, password))
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("ping db: %v", err)
	}

	dbDriver, err := mysql.WithInstance(db, &mysql.Config{})
	if err != nil {
		log.Fatalf("db driver: %v", err)
	}

	srcDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		log.Fatalf("source driver: %v", err)
	}

	m, err := migrate.NewWithInstance("iofs", srcDriver, "mysql", dbDriver)
	if err != nil {
		log.Fatalf("create migrator: %v", err)
	}
	defer func() { _, _ = m.Close() }()

	// `migrate force <version>` clears a dirty flag after a failed run.
	if len(os.Args) >= 3 && os.Args[1] == "force" {
		version, err := strconv.Atoi(os.Args[2])
		if err != nil {
			log.Fatalf("invalid version: %v", err)
		}
		if err := m.Force(version); err != nil {
			log.Fatalf("force version: %v", err)
		}
		fmt.Printf("forced version to %d\n", version)
		return
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("migrate up: %v", err)
	}

	fmt.Println("migrations complete")
}
