// Command token mints a session token for local development and scripted
// testing. The login flow lives outside this service.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/hr-portal/internal/config"
	"github.com/cmlabs-hris/hr-portal/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal/internal/pkg/jwt"
)

func main() {
	employeeID := flag.Int64("employee", 0, "employee id the token is issued for")
	role := flag.String("role", string(user.RoleEmployee), "role claim: employee, hr or admin")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error building jwt service:", err)
		os.Exit(1)
	}

	token, csrf, expiresAt, err := JWTService.GenerateAccessToken(*employeeID, user.Role(*role))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error minting token:", err)
		os.Exit(2)
	}

	fmt.Printf("Authorization: Bearer %s\n", token)
	fmt.Printf("X-CSRF-Token: %s\n", csrf)
	fmt.Printf("Expires: %s\n", time.Unix(expiresAt, 0).Format(time.RFC3339))
}
