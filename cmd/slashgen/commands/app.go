package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/slashgen-ai/slashgen/internal/config"
	"github.com/slashgen-ai/slashgen/internal/event"
	"github.com/slashgen-ai/slashgen/internal/generate"
	"github.com/slashgen-ai/slashgen/internal/persona"
	"github.com/slashgen-ai/slashgen/internal/provider"
	"github.com/slashgen-ai/slashgen/internal/session"
	"github.com/slashgen-ai/slashgen/pkg/types"
)

// app bundles the wired pipeline components shared by the commands.
type app struct {
	config    *types.Config
	bus       *event.Bus
	sessions  *session.Manager
	personas  *persona.Registry
	providers *provider.Registry
	generator *generate.Service
}

// newApp loads configuration and wires the pipeline.
func newApp(ctx context.Context) (*app, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(workDir)
	if err != nil {
		return nil, err
	}

	personas := persona.NewRegistry()
	if cfg.PersonaCatalog != "" {
		profiles, err := persona.LoadCatalog(cfg.PersonaCatalog)
		if err != nil {
			return nil, fmt.Errorf("loading persona catalog: %w", err)
		}
		personas = persona.NewRegistryWithProfiles(profiles)
	}

	providers, err := provider.InitializeProviders(ctx, cfg)
	if err != nil {
		return nil, err
	}

	bus := event.NewBus()
	sessions := session.NewManager(session.NewStore(), bus, cfg.Session)
	generator := generate.NewService(providers, personas, sessions, bus, cfg.Generation)

	return &app{
		config:    cfg,
		bus:       bus,
		sessions:  sessions,
		personas:  personas,
		providers: providers,
		generator: generator,
	}, nil
}

// Close releases the app's resources.
func (a *app) Close() {
	a.sessions.StopCleanup()
	a.bus.Close()
}
