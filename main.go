package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/csrf"
	"github.com/rakhshan/go-storefront/app/cmd"
	"github.com/rakhshan/go-storefront/app/configs"
	"github.com/rakhshan/go-storefront/app/db/seeders"
	"github.com/rakhshan/go-storefront/app/models/migrations"
	"github.com/rakhshan/go-storefront/app/routes"
)

func main() {

	env := configs.LoadENV
	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	if err := os.MkdirAll(env.UploadDir, 0o755); err != nil {
		log.Fatalf("failed to create upload directory %q: %v", env.UploadDir, err)
	}

	db, err := configs.OpenConnection()
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	log.Println("Database connected.")

	if err := migrations.AutoMigrate(db); err != nil {
		log.Fatal("Migration failed:", err)
	}
	if err := seeders.DBSeed(db); err != nil {
		log.Fatal("Seeding failed:", err)
	}

	sessionKeys, err := configs.LoadSessionKeys()
	if err != nil {
		log.Fatal("Failed to load session keys:", err)
	}

	router := routes.NewRouter(db, sessionKeys, env.UploadDir)
	csrfProtect := csrf.Protect(sessionKeys.AuthKey, csrf.Secure(false))

	server := http.Server{
		Addr:    ":" + env.Port,
		Handler: csrfProtect(router),
	}

	log.Printf("Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatal("server stopped:", err)
	}
}
