// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5"

	"mosaic-service/internal/database"
	apperrors "mosaic-service/internal/errors"
	"mosaic-service/internal/mosaic"
)

// Handler is the container for API dependencies.
type Handler struct {
	db       database.Querier
	resolver *mosaic.Resolver
	gateway  mosaic.Gateway
	logger   *slog.Logger
}

// NewRouter creates and configures a new chi router with all API routes.
func NewRouter(db database.Querier, resolver *mosaic.Resolver, gateway mosaic.Gateway, logger *slog.Logger) http.Handler {
	h := &Handler{
		db:       db,
		resolver: resolver,
		gateway:  gateway,
		logger:   logger,
	}

	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// API Routes
	r.Get("/health", h.healthCheck)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/projects", h.listProjects)
		r.Get("/projects/{owner}/{name}", h.getProject)
		r.Get("/mosaic/{owner}/{name}", h.resolveConfig)
		r.Get("/mosaic/{owner}/{name}/languages", h.getLanguages)
	})

	return r
}

// projectResponse is the JSON shape of a persisted project.
type projectResponse struct {
	ID            int64           `json:"id"`
	GithubID      int64           `json:"github_id"`
	Name          string          `json:"name"`
	NameWithOwner string          `json:"name_with_owner"`
	Description   *string         `json:"description"`
	URL           string          `json:"url"`
	Config        json.RawMessage `json:"config"`
	LastUpdated   *time.Time      `json:"last_updated"`
}

func toProjectResponse(p database.Project) projectResponse {
	resp := projectResponse{
		ID:            p.ID,
		GithubID:      p.GithubID,
		Name:          p.Name,
		NameWithOwner: p.NameWithOwner,
		URL:           p.Url,
		Config:        p.Config,
	}
	if p.Description.Valid {
		resp.Description = &p.Description.String
	}
	if p.LastUpdated.Valid {
		resp.LastUpdated = &p.LastUpdated.Time
	}
	return resp
}

// healthCheck is a simple health endpoint.
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// listProjects returns every persisted project.
// GET /v1/projects
func (h *Handler) listProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.db.ListProjects(r.Context())
	if err != nil {
		h.logger.Error("Failed to list projects", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	out := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectResponse(p))
	}
	respondWithJSON(w, http.StatusOK, out)
}

// getProject returns one persisted project by owner-qualified name.
// GET /v1/projects/{owner}/{name}
func (h *Handler) getProject(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")
	name := chi.URLParam(r, "name")

	project, err := h.db.GetProjectByNameWithOwner(r.Context(), owner+"/"+name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondWithError(w, http.StatusNotFound, "Project not found")
			return
		}
		h.logger.Error("Failed to get project", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, toProjectResponse(project))
}

// resolveConfig resolves a repository's mosaic config on demand, with the
// same semantics as the sync path. Ignored projects are rejected here, not in
// the resolver.
// GET /v1/mosaic/{owner}/{name}
func (h *Handler) resolveConfig(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")
	name := chi.URLParam(r, "name")

	resolved, err := h.resolver.Resolve(r.Context(), owner, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Config not found")
			return
		}
		h.logger.Error("Failed to resolve config", "owner", owner, "repo", name, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if resolved.Content.Project.Ignore {
		respondWithError(w, http.StatusForbidden, apperrors.ErrIgnoredProject.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, resolved)
}

// getLanguages returns the language byte counts for a repository.
// GET /v1/mosaic/{owner}/{name}/languages
func (h *Handler) getLanguages(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")
	name := chi.URLParam(r, "name")

	languages, err := h.gateway.ListLanguages(r.Context(), owner, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Repository not found")
			return
		}
		h.logger.Error("Failed to list languages", "owner", owner, "repo", name, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, languages)
}

func respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

func respondWithError(w http.ResponseWriter, status int, message string) {
	respondWithJSON(w, status, map[string]string{"error": message})
}
