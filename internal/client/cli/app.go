package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/verdantly/verdantly/internal/client/api"
	"github.com/verdantly/verdantly/internal/client/assets"
	"github.com/verdantly/verdantly/internal/client/config"
	"github.com/verdantly/verdantly/internal/client/services"
	"github.com/verdantly/verdantly/internal/client/session"
	"github.com/verdantly/verdantly/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config         *config.Config
	authService    services.AuthService
	profileService *services.ProfileService
	store          *session.Store
	log            logging.Logger
	reader         *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	docDir, err := assets.DefaultDocDir()
	if err != nil {
		return nil, fmt.Errorf("document area: %w", err)
	}

	db, err := assets.InitDatabase(ctx, filepath.Join(docDir, "catalog.db"))
	if err != nil {
		return nil, fmt.Errorf("asset catalog: %w", err)
	}

	store := session.NewStore()
	assetStore := assets.NewStore(docDir, db, log)

	// The avatar persisted on a previous run is device state, not session
	// state; resolve it up front so the profile screen can render it.
	if avatar, err := assetStore.ResolveAvatar(ctx); err == nil && avatar != "" {
		store.SetAvatarPath(avatar)
	}

	apiClient := api.NewHTTPClient(c.BackendAddr, c.RequestTimeout)

	return &App{
		config:         c,
		authService:    services.NewAuthService(apiClient, store, log),
		profileService: services.NewProfileService(apiClient, assetStore, store, log),
		store:          store,
		log:            log,
		reader:         bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.authService.Close(ctx)
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.store.Logged()
}

func (a *App) getStatus() string {
	s := ""
	if a.store.Logged() {
		p := a.store.Profile()
		s = p.Username
		if s == "" {
			s = a.store.UserID()
		}
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
