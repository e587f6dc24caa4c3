// Command adminctl creates an admin account against the configured
// database. The password is prompted without echo so it never lands in
// shell history.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/dmitrijs2005/taskvault/internal/server/config"
	"github.com/dmitrijs2005/taskvault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskvault/internal/server/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func promptLine(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword() (string, error) {
	fmt.Print("Enter password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer db.Close()

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)

	username, err := promptLine(reader, "Username: ")
	if err != nil {
		log.Fatalf("read username: %v", err)
	}
	email, err := promptLine(reader, "Email: ")
	if err != nil {
		log.Fatalf("read email: %v", err)
	}
	password, err := promptPassword()
	if err != nil {
		log.Fatalf("read password: %v", err)
	}

	us := services.NewUserService(db, m, cfg)
	user, err := us.Register(ctx, services.RegisterParams{
		Username: username,
		Email:    email,
		Password: password,
		Role:     "admin",
	})
	if err != nil {
		log.Fatalf("create admin: %v", err)
	}

	fmt.Printf("admin %q created with id %d\n", user.Username, user.ID)
}
