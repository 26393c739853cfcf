// internal/mosaic/resolver.go
package mosaic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	apperrors "mosaic-service/internal/errors"
	"mosaic-service/internal/model"
)

// Gateway is the capability set the resolver and sync job need from the
// remote platform. The concrete implementation lives in internal/github;
// tests inject doubles.
type Gateway interface {
	ListUserRepositories(ctx context.Context) ([]model.RepoSummary, error)
	FetchContent(ctx context.Context, owner, repo, path string) (string, error)
	ListLanguages(ctx context.Context, owner, repo string) (map[string]int, error)
}

// Resolver locates, fetches, and parses the mosaic config for a single
// (owner, repository) pair. Configs for repositories not owned by the
// delegate owner live centrally in the delegate's own repository under an
// override path.
type Resolver struct {
	gateway  Gateway
	delegate string
	logger   *slog.Logger
}

// NewResolver creates a Resolver. delegateOwner is the account whose
// repository hosts override configs for external repositories.
func NewResolver(gateway Gateway, delegateOwner string, logger *slog.Logger) *Resolver {
	return &Resolver{
		gateway:  gateway,
		delegate: delegateOwner,
		logger:   logger,
	}
}

// Resolve determines the config path for (owner, repository), fetches and
// parses it. A missing file or unparsable content yields a
// *apperrors.ResolveConfigError; other fetch errors propagate as-is.
//
// The resolver never evaluates project.ignore. Even an ignored project is
// returned as parsed; honoring the flag is the caller's responsibility.
func (r *Resolver) Resolve(ctx context.Context, owner, repository string) (*ResolvedConfig, error) {
	external := false
	path := ".github/mosaic.toml"
	fetchOwner, fetchRepo := owner, repository

	if owner != r.delegate {
		external = true
		path = fmt.Sprintf(".github/mosaic/%s/%s.toml", owner, repository)
		fetchOwner, fetchRepo = r.delegate, r.delegate
	}

	content, err := r.gateway.FetchContent(ctx, fetchOwner, fetchRepo, path)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.ResolveConfigError{Reason: "not found", Err: err}
		}
		r.logger.Error("Failed to fetch config content", "owner", owner, "repo", repository, "path", path, "error", err)
		return nil, err
	}

	cfg, err := ParseConfig(content)
	if err != nil {
		return nil, &apperrors.ResolveConfigError{Reason: err.Error(), Err: err}
	}

	return &ResolvedConfig{Content: cfg, External: external}, nil
}
