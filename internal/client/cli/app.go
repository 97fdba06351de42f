package cli

import (
	"bufio"
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/dmravi/erpcli/internal/client/api"
	"github.com/dmravi/erpcli/internal/client/config"
	"github.com/dmravi/erpcli/internal/client/models"
	"github.com/dmravi/erpcli/internal/client/services"
	"github.com/dmravi/erpcli/internal/client/store"
	"github.com/dmravi/erpcli/internal/logging"

	_ "modernc.org/sqlite"
)

// Mode describes what the background watcher currently knows about the
// session. Advisory UI state only.
type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
	ModeExpired Mode = "expired"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	session     *models.Session
	mode        Mode
	reader      *bufio.Reader
	log         logging.Logger
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := store.Open(ctx, c.SessionDBPath)
	if err != nil {
		logger.Error(ctx, "error initializing session database", "error", err)
		return nil, err
	}

	deviceID, err := services.EnsureDeviceID(ctx, db)
	if err != nil {
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.BaseURL, c.HTTPTimeout, deviceID, c.RequestsPerSec, c.RequestBurst)
	as := services.NewAuthService(apiClient, db, logger, c.SplashMinDelay)

	return &App{
		config:      c,
		authService: as,
		reader:      bufio.NewReader(os.Stdin),
		log:         logger,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) setMode(mode Mode) {
	if a.mode != mode {
		a.mode = mode
		log.Printf("Session is now %s\n", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.authService.Close(ctx)

	if route := a.authService.Bootstrap(ctx); route == services.RouteAuthenticated {
		sess, err := a.authService.CurrentSession(ctx)
		if err == nil && sess != nil {
			a.session = sess
			a.mode = ModeOnline
			log.Printf("Welcome back, %s (%s)\n", sess.Name, sess.CompanyName)
		}
	}

	go a.StartSessionWatcher(ctx, a.config.ValidateInterval)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// StartSessionWatcher periodically re-validates the stored token against the
// backend and updates the advisory Mode. It never logs the user out by
// itself; an expired session just changes the prompt.
func (a *App) StartSessionWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !a.isLoggedIn() {
				continue
			}

			checkCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.authService.ValidateSession(checkCtx)
			cancel()

			var rejected *api.RejectedError
			switch {
			case err == nil:
				a.setMode(ModeOnline)
			case errors.As(err, &rejected):
				a.setMode(ModeExpired)
			default:
				a.setMode(ModeOffline)
			}

		case <-ctx.Done():
			return
		}
	}
}
