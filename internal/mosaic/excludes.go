// internal/mosaic/excludes.go
package mosaic

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	apperrors "mosaic-service/internal/errors"
)

// ExclusionLoader fetches the newline-delimited exclusion list and parses it
// into a set of excluded identifiers (repository full names or short names).
type ExclusionLoader struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// NewExclusionLoader creates a loader for the given list URL.
func NewExclusionLoader(url string, logger *slog.Logger) *ExclusionLoader {
	return &ExclusionLoader{
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

// Load fetches the exclusion list. A single attempt is made; any transport
// failure or non-2xx status yields a *apperrors.FetchError, which the sync
// job treats as fatal for the run.
//
// A line is kept when it is non-empty or starts with "#", so comment lines
// land in the set verbatim. Kept lines are inserted without trimming.
func (l *ExclusionLoader) Load(ctx context.Context) (map[string]struct{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, &apperrors.FetchError{Resource: "exclusion list", Err: err}
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &apperrors.FetchError{Resource: "exclusion list", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &apperrors.FetchError{Resource: "exclusion list", StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperrors.FetchError{Resource: "exclusion list", Err: err}
	}

	excluded := make(map[string]struct{})
	for _, line := range strings.Split(string(body), "\n") {
		if line != "" || strings.HasPrefix(line, "#") {
			excluded[line] = struct{}{}
		}
	}

	l.logger.Debug("Loaded exclusion list", "entries", len(excluded))
	return excluded, nil
}
