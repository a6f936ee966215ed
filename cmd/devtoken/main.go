// Command devtoken signs a bearer token for local testing against AUTH_JWT_SECRET.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/riskibarqy/transfer-market/internal/domain/user"
	"github.com/riskibarqy/transfer-market/internal/infrastructure/account/jwtauth"
)

func main() {
	subject := flag.String("sub", "dev-user", "token subject (user id)")
	email := flag.String("email", "", "email claim")
	role := flag.String("role", string(user.RoleClubManager), "role: admin, clubManager, agent, scout or player")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	secret := strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET"))
	if secret == "" {
		fmt.Fprintln(os.Stderr, "AUTH_JWT_SECRET is required")
		os.Exit(2)
	}

	parsedRole, ok := user.ParseRole(*role)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown role %q\n", *role)
		os.Exit(2)
	}

	token, err := jwtauth.Issue(secret, strings.TrimSpace(os.Getenv("AUTH_JWT_ISSUER")), user.Principal{
		UserID: strings.TrimSpace(*subject),
		Email:  strings.TrimSpace(*email),
		Role:   parsedRole,
	}, *ttl, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "issue token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
