// Command useradd creates a login account in the configured database.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/config"
	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/database"
	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/dto"
	"github.com/ahmetcoskunkizilkaya/pickup-ledger/internal/services"
)

func main() {
	_ = godotenv.Load()

	if err := run(os.Args[1:], config.Load(), os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "useradd:", err)
		os.Exit(1)
	}
}

func run(args []string, cfg *config.Config, stdin *os.File, stdout io.Writer) error {
	fs := flag.NewFlagSet("useradd", flag.ContinueOnError)
	username := fs.String("username", "", "login name (required)")
	role := fs.String("role", "user", "role claim stored on the account")
	password := fs.String("password", "", "password; prompted for when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" {
		return errors.New("-username is required")
	}

	if *password == "" {
		p, err := readPassword(stdin, stdout)
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		*password = p
	}

	db, err := database.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := database.MigrateShared(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// Token issuance is never used here, but AuthService needs an issuer.
	tokens, err := services.NewTokenIssuer([]byte("useradd"))
	if err != nil {
		return err
	}
	auth := services.NewAuthService(
		services.NewUserStore(db),
		services.NewPasswordHasher(cfg.BcryptCost),
		tokens,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, err := auth.CreateUser(ctx, &dto.CreateUserRequest{
		Username: *username,
		Password: *password,
		Role:     *role,
	})
	if errors.Is(err, services.ErrConflict) {
		return fmt.Errorf("user %q already exists", *username)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "created user %s (%s) id=%s\n", user.Username, user.Role, user.ID)
	return nil
}

// readPassword prompts without echo on a terminal and reads one line otherwise.
func readPassword(stdin *os.File, stdout io.Writer) (string, error) {
	fd := int(stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(stdout, "Password: ")
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(stdout)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
