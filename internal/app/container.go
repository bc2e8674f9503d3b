// Package app provides the dependency injection container for tasktree.
package app

import (
	"path/filepath"

	"github.com/tasktree/tasktree/internal/domain"
	"github.com/tasktree/tasktree/internal/infra/config"
	"github.com/tasktree/tasktree/internal/infra/logging"
	"github.com/tasktree/tasktree/internal/infra/treestore"
)

// Container wires ports to their implementations. Project-scoped
// collaborators (store, logger) are opened per call through Projects,
// since every tool invocation may target a different project directory.
type Container struct {
	Projects domain.ProjectOpener
	Clock    domain.Clock
	Version  string
}

// New creates a Container.
func New(version string) *Container {
	return &Container{
		Projects: &opener{loader: config.NewLoader()},
		Clock:    domain.RealClock{},
		Version:  version,
	}
}

// opener implements domain.ProjectOpener backed by the file store.
type opener struct {
	loader *config.Loader
}

// Ensure opener implements ProjectOpener.
var _ domain.ProjectOpener = (*opener)(nil)

// Open prepares the store and logger for a project directory.
func (o *opener) Open(projectDir string) (*domain.Project, error) {
	if projectDir == "" {
		return nil, domain.ErrEmptyProjectDir
	}

	cfg, err := o.loader.Load(projectDir)
	if err != nil {
		return nil, err
	}

	store, err := treestore.Open(projectDir, treestore.WithLockTimeout(cfg.LockTimeout))
	if err != nil {
		return nil, err
	}

	logger := logging.New(filepath.Join(projectDir, ".tasktree"), logging.ParseLevel(cfg.LogLevel))

	return &domain.Project{
		Dir:   projectDir,
		Store: store,
		Log:   logger,
	}, nil
}
