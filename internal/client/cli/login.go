package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/dmravi/erpcli/internal/client/models"
	"github.com/dmravi/erpcli/internal/common"
)

// getSimpleText and getPassword are indirections over the interactive input
// helpers, swappable in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// The login wizard is a closed set of states. Moving through them is the
// only way to reach a password prompt, so submitting without a selected
// account is unrepresentable.
type wizardStep interface{ isWizardStep() }

type stepEnterUsername struct{}

type stepSelectAccount struct {
	accounts []models.Account
	selected *models.Account
}

func (stepEnterUsername) isWizardStep()  {}
func (*stepSelectAccount) isWizardStep() {}

// beginLogin resolves the username's accounts and decides the next wizard
// step:
//   - resolution failure: stay at the username step, error carries the
//     server's message;
//   - exactly one account: advance with it pre-selected;
//   - several accounts: advance with no selection.
func (a *App) beginLogin(ctx context.Context, username string) (wizardStep, error) {
	accounts, err := a.authService.ResolveAccounts(ctx, username)
	if err != nil {
		return stepEnterUsername{}, err
	}

	step := &stepSelectAccount{accounts: accounts}
	if len(accounts) == 1 {
		step.selected = &accounts[0]
	}
	return step, nil
}

// Login walks the user through the two-step wizard: username first, then
// company selection (when more than one) and password. Failures print the
// server's message and leave the user where they were; only a completed
// sequence changes the logged-in state.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	step, err := a.beginLogin(ctx, username)
	if err != nil {
		log.Printf("%s", err.Error())
		return nil
	}

	sel, ok := step.(*stepSelectAccount)
	if !ok {
		return nil
	}

	if sel.selected == nil {
		account, err := a.chooseAccount(sel.accounts)
		if err != nil {
			return err
		}
		if account == nil {
			log.Println("Login cancelled")
			return nil
		}
		sel.selected = account
	} else {
		log.Printf("Company: %s\n", sel.selected.CompanyName)
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, sel.selected, username, password); err != nil {
		log.Printf("Login failed: %s", err.Error())
		return nil
	}

	sess, err := a.authService.CurrentSession(ctx)
	if err != nil {
		return err
	}
	a.session = sess
	a.setMode(ModeOnline)
	log.Printf("Logged in as %s (%s)\n", sess.Name, sess.CompanyName)
	return nil
}

// chooseAccount shows a numbered company menu and reads a selection. An
// empty line cancels and returns (nil, nil).
func (a *App) chooseAccount(accounts []models.Account) (*models.Account, error) {
	fmt.Println("Select a company:")
	for i, acc := range accounts {
		fmt.Printf("  %d. %s\n", i+1, acc.CompanyName)
	}

	for {
		choice, err := getSimpleText(a.reader, "Company number (empty to cancel)", os.Stdout)
		if err != nil {
			return nil, err
		}
		if choice == "" {
			return nil, nil
		}

		n, err := strconv.Atoi(choice)
		if err != nil || n < 1 || n > len(accounts) {
			fmt.Printf("Please enter a number between 1 and %d\n", len(accounts))
			continue
		}
		return &accounts[n-1], nil
	}
}

// Logout wipes the persisted session and the in-memory copy.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.session = nil
	a.mode = ""
	log.Println("Logged out")
	return nil
}
