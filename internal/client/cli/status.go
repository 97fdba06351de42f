package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Status prints the persisted session. When the stored token is a parseable
// JWT, its expiry is shown as well; signature verification is the backend's
// job, the client only inspects the claims.
func (a *App) Status(ctx context.Context) error {
	sess, err := a.authService.CurrentSession(ctx)
	if err != nil {
		return err
	}
	if sess == nil {
		fmt.Println("Not logged in.")
		return nil
	}

	fmt.Printf("User:    %s (%s)\n", sess.Name, sess.UserName)
	fmt.Printf("Company: %s (id %s)\n", sess.CompanyName, sess.CompanyID)
	fmt.Printf("Branch:  %s (id %s)\n", sess.BranchName, sess.BranchID)
	fmt.Printf("Role:    %s (id %s)\n", sess.UserType, sess.UserTypeID)
	fmt.Printf("Backend: %s\n", sess.WebAPI)
	if a.mode != "" {
		fmt.Printf("State:   %s\n", a.mode)
	}

	if exp, ok := tokenExpiry(sess.Token); ok {
		fmt.Printf("Token expires: %s\n", exp.Format(time.RFC1123))
	} else {
		fmt.Println("Token: opaque (no expiry information)")
	}
	return nil
}

// tokenExpiry extracts the exp claim from a JWT without verifying it.
// Returns ok=false for opaque tokens or tokens without an expiry.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
