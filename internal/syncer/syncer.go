// internal/syncer/syncer.go
package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"golang.org/x/sync/errgroup"

	"mosaic-service/internal/database"
	apperrors "mosaic-service/internal/errors"
	"mosaic-service/internal/model"
	"mosaic-service/internal/mosaic"
)

// Syncer reconciles the projects table with the set of eligible repositories
// that currently carry a resolvable mosaic config.
type Syncer struct {
	db          database.Querier
	gateway     mosaic.Gateway
	resolver    *mosaic.Resolver
	excludes    *mosaic.ExclusionLoader
	logger      *slog.Logger
	interval    time.Duration
	concurrency int
}

// resolution pairs a repository with its successfully resolved config.
type resolution struct {
	repo   model.RepoSummary
	config *mosaic.ResolvedConfig
}

// NewSyncer creates a new Syncer instance. concurrency bounds the number of
// config resolutions in flight at once.
func NewSyncer(db database.Querier, gateway mosaic.Gateway, resolver *mosaic.Resolver, excludes *mosaic.ExclusionLoader, logger *slog.Logger, interval time.Duration, concurrency int) *Syncer {
	return &Syncer{
		db:          db,
		gateway:     gateway,
		resolver:    resolver,
		excludes:    excludes,
		logger:      logger,
		interval:    interval,
		concurrency: concurrency,
	}
}

// Start begins the continuous synchronization process. An initial cycle runs
// immediately, then one per interval until ctx is cancelled.
func (s *Syncer) Start(ctx context.Context) {
	s.logger.Info("Starting syncer", "interval", s.interval.String(), "concurrency", s.concurrency)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runCycle(ctx)

	for {
		select {
		case <-ticker.C:
			s.runCycle(ctx)
		case <-ctx.Done():
			s.logger.Info("Syncer shutting down", "reason", ctx.Err())
			return
		}
	}
}

func (s *Syncer) runCycle(ctx context.Context) {
	if err := s.RunCycle(ctx); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("Sync cycle failed", "error", err)
	}
}

// RunCycle performs one full synchronization pass. A repository list or
// exclusion list failure aborts the whole run; per-repository resolution and
// upsert failures do not.
func (s *Syncer) RunCycle(ctx context.Context) error {
	s.logger.Info("Starting new sync cycle")

	repos, err := s.gateway.ListUserRepositories(ctx)
	if err != nil {
		return err
	}

	excluded, err := s.excludes.Load(ctx)
	if err != nil {
		return err
	}

	eligible := mosaic.FilterRepositories(repos, excluded)
	s.logger.Info("Filtered repositories", "total", len(repos), "eligible", len(eligible))

	withConfig := s.resolveAll(ctx, eligible)
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(withConfig) == 0 {
		// Deleting here would wipe the whole store on an upstream outage.
		s.logger.Warn("No repository resolved a config, skipping reconciliation")
		return nil
	}

	if err := s.reconcile(ctx, withConfig); err != nil {
		return err
	}

	s.logger.Info("Sync cycle finished", "projects", len(withConfig))
	return nil
}

// resolveAll resolves configs for all eligible repositories concurrently and
// returns the ones that produced a usable config. Repositories whose config
// is absent, malformed, ignored, or workspace-enabled are left out.
func (s *Syncer) resolveAll(ctx context.Context, eligible []model.RepoSummary) []resolution {
	var mu sync.Mutex
	var withConfig []resolution

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, repo := range eligible {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}

			owner, name, _ := strings.Cut(repo.NameWithOwner, "/")
			resolved, err := s.resolver.Resolve(gctx, owner, name)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					s.logger.Debug("Repository has no config", "repository", repo.NameWithOwner)
				} else if !errors.Is(err, context.Canceled) {
					s.logger.Error("Failed to resolve config", "repository", repo.NameWithOwner, "error", err)
				}
				return nil
			}

			if resolved.Content.IsWorkspace() {
				s.logger.Error("Workspace repositories are not supported, skipping", "repository", repo.NameWithOwner)
				return nil
			}
			if resolved.Content.Project.Ignore {
				s.logger.Debug("Config marks project as ignored, skipping", "repository", repo.NameWithOwner)
				return nil
			}

			mu.Lock()
			withConfig = append(withConfig, resolution{repo: repo, config: resolved})
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	return withConfig
}

// reconcile makes the store's project set exactly match withConfig: one bulk
// delete of stale rows, then per-item upserts. A delete failure is fatal;
// upsert failures are collected and logged without aborting siblings.
func (s *Syncer) reconcile(ctx context.Context, withConfig []resolution) error {
	ids := make([]int64, len(withConfig))
	for i, item := range withConfig {
		ids[i] = item.repo.GithubID
	}

	deleted, err := s.db.DeleteProjectsNotIn(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to delete stale projects: %w", err)
	}
	if deleted > 0 {
		s.logger.Info("Deleted stale projects", "count", deleted)
	}

	var failed []error
	for _, item := range withConfig {
		if err := s.upsertProject(ctx, item); err != nil {
			s.logger.Error("Failed to upsert project", "repository", item.repo.NameWithOwner, "error", err)
			failed = append(failed, fmt.Errorf("%s: %w", item.repo.NameWithOwner, err))
		}
	}
	if len(failed) > 0 {
		s.logger.Warn("Sync cycle completed with upsert failures", "failed", len(failed), "total", len(withConfig))
	}
	return nil
}

// upsertProject inserts the project or updates it in place, keyed by the
// stable GitHub identifier.
func (s *Syncer) upsertProject(ctx context.Context, item resolution) error {
	raw, err := json.Marshal(item.config)
	if err != nil {
		return err
	}

	_, err = s.db.GetProjectByGithubID(ctx, item.repo.GithubID)
	if errors.Is(err, pgx.ErrNoRows) {
		s.logger.Info("Project not found in DB, creating new entry", "repository", item.repo.NameWithOwner)
		_, err = s.db.CreateProject(ctx, database.CreateProjectParams{
			GithubID:      item.repo.GithubID,
			Name:          item.repo.Name,
			NameWithOwner: item.repo.NameWithOwner,
			Description:   toPgText(item.repo.Description),
			Url:           item.repo.URL,
			Config:        raw,
		})
		return err
	} else if err != nil {
		return err
	}

	_, err = s.db.UpdateProject(ctx, database.UpdateProjectParams{
		GithubID:      item.repo.GithubID,
		Name:          item.repo.Name,
		NameWithOwner: item.repo.NameWithOwner,
		Description:   toPgText(item.repo.Description),
		Url:           item.repo.URL,
		Config:        raw,
	})
	return err
}

func toPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}
