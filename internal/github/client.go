// internal/github/client.go
package github

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	apperrors "mosaic-service/internal/errors"
	"mosaic-service/internal/model"
)

const reposPerPage = 100

// Client is a wrapper around the go-github client. It exposes the three
// capabilities the rest of the service consumes: the authenticated user's
// repository list, raw file content by path, and per-repository language
// byte counts.
type Client struct {
	gh     *github.Client
	logger *slog.Logger
}

// NewClient creates and configures a new Client instance.
// The provided token is used to create an authenticated http.Client.
func NewClient(token string, logger *slog.Logger) *Client {
	ctx := context.Background()
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	return &Client{
		gh:     github.NewClient(tc),
		logger: logger,
	}
}

// SetBaseURL points the underlying client at a different API root. Used by
// tests to target a local fake server.
func (c *Client) SetBaseURL(rawURL string) error {
	gh, err := c.gh.WithEnterpriseURLs(rawURL, rawURL)
	if err != nil {
		return err
	}
	c.gh = gh
	return nil
}

// ListUserRepositories fetches the repositories owned by the authenticated
// user and translates them to our internal model. Only the first page (up to
// 100 repositories) is fetched; accounts past that size need pagination here.
func (c *Client) ListUserRepositories(ctx context.Context) ([]model.RepoSummary, error) {
	opts := &github.RepositoryListByAuthenticatedUserOptions{
		Type:        "owner",
		ListOptions: github.ListOptions{PerPage: reposPerPage},
	}

	repos, _, err := c.gh.Repositories.ListByAuthenticatedUser(ctx, opts)
	if err != nil {
		return nil, &apperrors.FetchError{Resource: "repository list", Err: err}
	}

	summaries := make([]model.RepoSummary, 0, len(repos))
	for _, repo := range repos {
		summaries = append(summaries, toRepoSummary(repo))
	}
	return summaries, nil
}

// FetchContent fetches the raw file at path and returns its decoded text.
// A missing file yields apperrors.ErrNotFound.
func (c *Client) FetchContent(ctx context.Context, owner, repo, path string) (string, error) {
	c.logger.Debug("Fetching repository content", "owner", owner, "repo", repo, "path", path)

	fileContent, _, resp, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return "", apperrors.ErrNotFound
		}
		return "", err
	}
	if fileContent == nil || fileContent.Content == nil {
		return "", apperrors.ErrNotFound
	}

	return decodeContent(*fileContent.Content)
}

// ListLanguages fetches the language byte counts for a repository.
func (c *Client) ListLanguages(ctx context.Context, owner, repo string) (map[string]int, error) {
	languages, resp, err := c.gh.Repositories.ListLanguages(ctx, owner, repo)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return languages, nil
}

// decodeContent decodes the base64 payload the contents API returns. The
// payload contains embedded whitespace, so all ASCII whitespace bytes are
// stripped before decoding. Invalid UTF-8 sequences in the decoded bytes are
// replaced rather than rejected.
func decodeContent(raw string) (string, error) {
	stripped := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case ' ', '\n', '\t', '\r', '\v', '\f':
		default:
			stripped = append(stripped, raw[i])
		}
	}

	decoded, err := base64.StdEncoding.DecodeString(string(stripped))
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(decoded), "�"), nil
}

// toRepoSummary translates a github.Repository object to our internal model.
func toRepoSummary(r *github.Repository) model.RepoSummary {
	return model.RepoSummary{
		GithubID:      r.GetID(),
		Name:          r.GetName(),
		NameWithOwner: r.GetFullName(),
		Description:   r.Description,
		URL:           r.GetHTMLURL(),
		IsFork:        r.GetFork(),
		IsArchived:    r.GetArchived(),
	}
}
