package main

import (
	"flag"
	"log"

	"github.com/Kevin-innovation/dlab-dashboard/app/config"
	"github.com/Kevin-innovation/dlab-dashboard/app/database"
	"github.com/Kevin-innovation/dlab-dashboard/app/routes/auth"
)

// Creates a teacher account from the command line:
//
//	go run ./app/cmd/add_user -email teacher@dlab.kr -name "김선생" -password secret
func main() {
	email := flag.String("email", "", "login email")
	name := flag.String("name", "", "display name")
	password := flag.String("password", "", "initial password")
	flag.Parse()

	if *email == "" || *name == "" || *password == "" {
		log.Fatal("Usage: add_user -email <email> -name <name> -password <password>")
	}

	config.LoadEnv()
	config.InitDB()

	hashed, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user, err := database.CreateUser(config.GetDB(), *email, hashed, *name)
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}
	log.Printf("Created user %s (%s)", user.Email, user.ID)
}
