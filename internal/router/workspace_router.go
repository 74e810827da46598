// Package router exposes the evaluation workspace over HTTP.
package router

import (
	"fmt"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/evalstudio/eval-studio/internal/apperr"
	"github.com/evalstudio/eval-studio/internal/domain"
	"github.com/evalstudio/eval-studio/internal/export"
	"github.com/evalstudio/eval-studio/internal/judge"
	"github.com/evalstudio/eval-studio/internal/store/persist"
	"github.com/evalstudio/eval-studio/internal/workspace"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RootOpener grants access to a user-selected directory tree. A nil opener
// means the capability is unavailable in this environment.
type RootOpener func(path string) (fs.FS, error)

type Deps struct {
	// Samples supplies the static dataset for a fresh session.
	Samples   func() []domain.Sample
	Persister persist.Persister
	Fetcher   *judge.Fetcher
	OpenRoot  RootOpener
}

// WorkspaceRouter keeps one workspace per active session. Switching users
// is delete-then-create: a new session reinitializes all in-memory state.
type WorkspaceRouter struct {
	e    *echo.Echo
	deps Deps

	mu       sync.Mutex
	sessions map[uuid.UUID]*workspace.Workspace
}

func NewWorkspaceRouter(e *echo.Echo, deps Deps) *WorkspaceRouter {
	return &WorkspaceRouter{
		e:        e,
		deps:     deps,
		sessions: make(map[uuid.UUID]*workspace.Workspace),
	}
}

func (r *WorkspaceRouter) Bind() {
	r.e.POST("/sessions", r.createSession)
	r.e.DELETE("/sessions/:id", r.deleteSession)
	r.e.GET("/sessions/:id/samples", r.listSamples)
	r.e.GET("/sessions/:id/current", r.currentView)
	r.e.PUT("/sessions/:id/evaluation", r.submitEvaluation)
	r.e.POST("/sessions/:id/next", r.next)
	r.e.POST("/sessions/:id/prev", r.prev)
	r.e.PUT("/sessions/:id/sample/:idx", r.selectSample)
	r.e.PUT("/sessions/:id/candidate/:idx", r.selectCandidate)
	r.e.POST("/sessions/:id/dataset/local", r.loadLocalDataset)
	r.e.GET("/sessions/:id/export/csv", r.exportCSV)
	r.e.GET("/sessions/:id/export/json", r.exportJSON)
}

type createSessionRequest struct {
	Name string `json:"name"`
}

type sessionResponse struct {
	SessionID uuid.UUID `json:"sessionId"`
	User      string    `json:"user"`
	Samples   int       `json:"samples"`
}

func (r *WorkspaceRouter) createSession(c echo.Context) error {
	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return apperr.NewValidation("name is required")
	}

	w, err := workspace.New(c.Request().Context(), name, r.deps.Samples(), r.deps.Persister, r.deps.Fetcher)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.sessions[w.ID()] = w
	r.mu.Unlock()

	return c.JSON(http.StatusCreated, sessionResponse{
		SessionID: w.ID(),
		User:      w.User(),
		Samples:   len(w.Samples()),
	})
}

func (r *WorkspaceRouter) deleteSession(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NewValidation("invalid session id")
	}

	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()

	return c.NoContent(http.StatusNoContent)
}

func (r *WorkspaceRouter) listSamples(c echo.Context) error {
	w, err := r.session(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, w.Samples())
}

func (r *WorkspaceRouter) currentView(c echo.Context) error {
	w, err := r.session(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, w.Current(c.Request().Context()))
}

type submitEvaluationRequest struct {
	SampleID    int                   `json:"sampleId"`
	CandidateID int                   `json:"candidateId"`
	Evaluation  domain.UserEvaluation `json:"evaluation"`
}

func (r *WorkspaceRouter) submitEvaluation(c echo.Context) error {
	w, err := r.session(c)
	if err != nil {
		return err
	}

	var req submitEvaluationRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	if err := w.SubmitEvaluation(c.Request().Context(), req.SampleID, req.CandidateID, req.Evaluation); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (r *WorkspaceRouter) next(c echo.Context) error {
	w, err := r.session(c)
	if err != nil {
		return err
	}
	w.Next()
	return c.JSON(http.StatusOK, w.Current(c.Request().Context()))
}

func (r *WorkspaceRouter) prev(c echo.Context) error {
	w, err := r.session(c)
	if err != nil {
		return err
	}
	w.Prev()
	return c.JSON(http.StatusOK, w.Current(c.Request().Context()))
}

func (r *WorkspaceRouter) selectSample(c echo.Context) error {
	w, err := r.session(c)
	if err != nil {
		return err
	}
	idx, err := strconv.Atoi(c.Param("idx"))
	if err != nil {
		return apperr.NewValidation("sample index must be a number")
	}
	if err := w.SelectSample(idx); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, w.Current(c.Request().Context()))
}

func (r *WorkspaceRouter) selectCandidate(c echo.Context) error {
	w, err := r.session(c)
	if err != nil {
		return err
	}
	idx, err := strconv.Atoi(c.Param("idx"))
	if err != nil {
		return apperr.NewValidation("candidate index must be a number")
	}
	if err := w.SelectCandidate(idx); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, w.Current(c.Request().Context()))
}

type loadLocalRequest struct {
	Path string `json:"path"`
}

func (r *WorkspaceRouter) loadLocalDataset(c echo.Context) error {
	w, err := r.session(c)
	if err != nil {
		return err
	}
	if r.deps.OpenRoot == nil {
		return apperr.NewValidation("directory access is not available in this environment")
	}

	var req loadLocalRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}
	if req.Path == "" {
		return apperr.NewValidation("path is required")
	}

	fsys, err := r.deps.OpenRoot(req.Path)
	if err != nil {
		return apperr.NewValidationWrap("could not open directory", err)
	}

	n, err := w.LoadLocalDataset(fsys)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int{"samples": n})
}

func (r *WorkspaceRouter) exportCSV(c echo.Context) error {
	w, err := r.session(c)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", export.CSVFilename(w.User())))
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return w.ExportCSV(c.Response())
}

func (r *WorkspaceRouter) exportJSON(c echo.Context) error {
	w, err := r.session(c)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", export.JSONFilename(w.User())))
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c.Response().WriteHeader(http.StatusOK)
	return w.ExportJSON(c.Response())
}

func (r *WorkspaceRouter) session(c echo.Context) (*workspace.Workspace, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, apperr.NewValidation("invalid session id")
	}

	r.mu.Lock()
	w, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return nil, apperr.NewNotFound("session not found")
	}
	return w, nil
}
