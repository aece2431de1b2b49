package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"bookingportal/internal/auth"
	"bookingportal/internal/user"
	"bookingportal/pkg/config"
	"bookingportal/pkg/db"
)

// Bootstraps the first superuser account. Credentials come from flags or env,
// never from source, and an existing profile is promoted in place.
func main() {
	var (
		email    = flag.String("email", os.Getenv("SEED_SUPERUSER_EMAIL"), "superuser email")
		password = flag.String("password", os.Getenv("SEED_SUPERUSER_PASSWORD"), "superuser password (only used when the account does not exist yet)")
		nome     = flag.String("nome", "Super", "first name for a newly created profile")
		cognome  = flag.String("cognome", "User", "last name for a newly created profile")
	)
	flag.Parse()

	if strings.TrimSpace(*email) == "" {
		fmt.Fprintln(os.Stderr, "missing -email (or SEED_SUPERUSER_EMAIL)")
		os.Exit(2)
	}

	cfg := config.Load()
	ctx := context.Background()

	pool, err := db.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "db open failed: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	principals := auth.NewRepository(pool)
	addr := strings.ToLower(strings.TrimSpace(*email))

	err = db.WithTx(ctx, pool, func(tx pgx.Tx) error {
		principal, err := principals.FindByEmail(ctx, addr)
		if err != nil {
			if strings.TrimSpace(*password) == "" {
				return fmt.Errorf("account %s does not exist; pass -password to create it", addr)
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			principal, err = auth.InsertPrincipal(ctx, tx, addr, string(hash))
			if err != nil {
				return err
			}
			if _, err := user.InsertTx(ctx, tx, user.NewProfile{
				PrincipalID: principal.ID,
				Nome:        *nome,
				Cognome:     *cognome,
				Email:       addr,
			}); err != nil {
				return err
			}
		}

		const q = `UPDATE users SET role = 'superuser', approved = TRUE WHERE principal_id = $1`
		tag, err := tx.Exec(ctx, q, principal.ID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("no profile for principal %s", principal.ID)
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("superuser ready: %s\n", addr)
}
