package main

import (
	"flag"
	"fmt"
	"os"

	"banrai-schools/app/config"
	"banrai-schools/app/database"
	"banrai-schools/app/routes/auth"
)

func main() {
	email := flag.String("email", "", "operator email")
	password := flag.String("password", "", "operator password")
	name := flag.String("name", "", "operator display name")
	flag.Parse()

	if *email == "" || *password == "" || *name == "" {
		fmt.Println("Usage: add_operator -email ... -password ... -name ...")
		os.Exit(1)
	}

	// Initialize database connection
	config.InitDB()
	db := config.GetDB()
	if db == nil {
		fmt.Println("Failed to connect to database")
		os.Exit(1)
	}

	hashed, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Printf("Error hashing password: %v\n", err)
		os.Exit(1)
	}

	if err := database.CreateOperator(db, *email, hashed, *name); err != nil {
		fmt.Printf("Error creating operator: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Operator created successfully: %s (%s)\n", *name, *email)
}
