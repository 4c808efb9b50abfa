package app

import (
	"context"
	"fmt"
	"time"

	"daily-planner-go/internal/apiclient"
	"daily-planner-go/internal/config"
	"daily-planner-go/internal/domain/admin"
	"daily-planner-go/internal/domain/expenses"
	"daily-planner-go/internal/domain/notify"
	"daily-planner-go/internal/domain/plans"
	"daily-planner-go/internal/domain/prefs"
	"daily-planner-go/internal/domain/reminders"
	"daily-planner-go/internal/domain/session"
	"daily-planner-go/internal/domain/water"
	"daily-planner-go/internal/tokenstore"
	"daily-planner-go/pkg/logger"
)

// Services is every view-model of one user session, wired over a single
// preferences store. Both the gateway and the CLI build one.
type Services struct {
	Tokens      *tokenstore.Store
	AdminTokens *tokenstore.Store
	Client      *apiclient.Client
	AdminClient *apiclient.Client

	Session   *session.Manager
	Plans     *plans.ViewModel
	Expenses  *expenses.ViewModel
	Water     *water.ViewModel
	Reminders *reminders.ViewModel
	Admin     *admin.Console
}

func NewServices(cfg config.Config, store prefs.Store, scheduler notify.Scheduler, log logger.Logger) (*Services, error) {
	var storeOpts []tokenstore.Option
	storeOpts = append(storeOpts, tokenstore.WithLogger(log))
	if cfg.Session.TokenSecret != "" {
		sealer, err := tokenstore.NewSealer(cfg.Session.TokenSecret)
		if err != nil {
			return nil, fmt.Errorf("token sealer: %w", err)
		}
		storeOpts = append(storeOpts, tokenstore.WithSealer(sealer))
	}

	tokens := tokenstore.New(store, cfg.Session.TokenKey, storeOpts...)
	adminTokens := tokenstore.New(store, cfg.Session.AdminTokenKey, storeOpts...)

	client := apiclient.New(cfg.API.BaseURL, cfg.API.Timeout, tokens, apiclient.WithLogger(log.With("client", "app")))
	adminClient := apiclient.New(cfg.API.AdminBaseURL, cfg.API.Timeout, adminTokens, apiclient.WithLogger(log.With("client", "admin")))

	stale := cfg.Session.DiscardStaleLoads
	s := &Services{
		Tokens:      tokens,
		AdminTokens: adminTokens,
		Client:      client,
		AdminClient: adminClient,
		Session:     session.NewManager(client, tokens, log),
		Plans:       plans.NewViewModel(client, log, stale, time.Now),
		Expenses:    expenses.NewViewModel(client, log, stale),
		Water:       water.NewViewModel(store, scheduler, log, time.Now),
		Reminders:   reminders.NewViewModel(client, scheduler, log, stale),
		Admin:       admin.NewConsole(adminClient, adminTokens, store, log),
	}

	// Server-backed collections belong to one user. The water log is
	// device-local and outlives sessions.
	s.Session.OnSessionEnd(s.Plans.Reset)
	s.Session.OnSessionEnd(s.Expenses.Reset)
	s.Session.OnSessionEnd(s.Reminders.Reset)
	return s, nil
}

// Bootstrap restores persisted sessions. A stored user token is verified
// against the API; the admin identity is only read back from storage.
func (s *Services) Bootstrap(ctx context.Context) session.State {
	s.Admin.Restore(ctx)
	return s.Session.CheckAuth(ctx)
}
