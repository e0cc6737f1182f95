// Package api serves projections, markers and assets to chart and UI
// collaborators, plus the sweep, link and sync triggers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/projection"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Services groups the use cases the handlers call. Sync may be nil when no
// remote is configured.
type Services struct {
	Records    service.RecordService
	Projection service.ProjectionService
	Links      service.LinkService
	Trigger    service.TriggerService
	Sync       service.SyncService
}

// Server routes HTTP requests onto Services.
type Server struct {
	svc            Services
	defaultHorizon int
	clock          func() time.Time
	logger         logrus.FieldLogger
}

// NewServer returns a Server. A nil clock means time.Now in UTC.
func NewServer(svc Services, defaultHorizon int, clock func() time.Time, logger logrus.FieldLogger) *Server {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Server{svc: svc, defaultHorizon: defaultHorizon, clock: clock, logger: logger}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(WithRequestLogging(s.logger))

	r.HandleFunc("/projection", s.handleProjection).Methods(http.MethodGet)
	r.HandleFunc("/projection/{month}", s.handleDetail).Methods(http.MethodGet)
	r.HandleFunc("/markers", s.handleMarkers).Methods(http.MethodGet)
	r.HandleFunc("/assets", s.handleAssets).Methods(http.MethodGet)
	r.HandleFunc("/sweep", s.handleSweep).Methods(http.MethodPost)
	r.HandleFunc("/links", s.handleLink).Methods(http.MethodPost)
	r.HandleFunc("/links/{expenseId}", s.handleUnlink).Methods(http.MethodDelete)
	r.HandleFunc("/expenses/{id}/date", s.handleSetExpenseDate).Methods(http.MethodPut)
	r.HandleFunc("/sync", s.handleSyncStatus).Methods(http.MethodGet)
	r.HandleFunc("/sync/push", s.handleSyncPush).Methods(http.MethodPost)
	r.HandleFunc("/sync/pull", s.handleSyncPull).Methods(http.MethodPost)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeErr(w, notFound("not found"))
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeErr(w, &apiErr{Status: http.StatusMethodNotAllowed, Message: "method not allowed"})
	})
	return r
}

// HTTPServer wraps the router in an http.Server bound to addr.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := s.HTTPServer(addr)
	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func (s *Server) horizonParam(r *http.Request) (int, *apiErr) {
	raw := r.URL.Query().Get("months")
	if raw == "" {
		return s.defaultHorizon, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > projection.MaxHorizon {
		return 0, badRequest("months must be an integer between 0 and "+strconv.Itoa(projection.MaxHorizon), nil)
	}
	return n, nil
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	horizon, aerr := s.horizonParam(r)
	if aerr != nil {
		writeErr(w, aerr)
		return
	}
	p, err := s.svc.Projection.Project(r.Context(), horizon)
	if err != nil {
		writeErr(w, fromServiceError(s.logger, "projection failed", err))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleMarkers(w http.ResponseWriter, r *http.Request) {
	horizon, aerr := s.horizonParam(r)
	if aerr != nil {
		writeErr(w, aerr)
		return
	}
	markers, err := s.svc.Projection.Markers(r.Context(), horizon)
	if err != nil {
		writeErr(w, fromServiceError(s.logger, "markers failed", err))
		return
	}
	if markers == nil {
		markers = []projection.MarkerEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"horizon": horizon, "markers": markers})
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	month, err := strconv.Atoi(mux.Vars(r)["month"])
	if err != nil {
		writeErr(w, badRequest("month must be an integer", nil))
		return
	}
	detail, err := s.svc.Projection.Detail(r.Context(), month)
	if err != nil {
		writeErr(w, fromServiceError(s.logger, "detail failed", err))
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := s.svc.Records.Assets(r.Context())
	if err != nil {
		writeErr(w, fromServiceError(s.logger, "listing assets failed", err))
		return
	}
	writeJSON(w, http.StatusOK, assets)
}

func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.Trigger.Sweep(r.Context(), s.clock())
	if err != nil && res == nil {
		writeErr(w, fromServiceError(s.logger, "sweep failed", err))
		return
	}
	if err != nil {
		// Transitions are committed; only the notification failed.
		s.logger.WithError(err).Warn("sweep notification failed")
	}
	writeJSON(w, http.StatusOK, res)
}

type linkRequest struct {
	ExpenseID string `json:"expenseId"`
	AssetID   string `json:"assetId"`
}

func (s *Server) handleLink(w http.ResponseWriter, r *http.Request) {
	var req linkRequest
	if aerr := readJSON(r, &req); aerr != nil {
		writeErr(w, aerr)
		return
	}
	if req.ExpenseID == "" || req.AssetID == "" {
		writeErr(w, badRequest("expenseId and assetId are required", nil))
		return
	}
	res, err := s.svc.Links.Link(r.Context(), req.ExpenseID, req.AssetID)
	if err != nil {
		writeErr(w, fromServiceError(s.logger, "link failed", err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleUnlink(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.Links.Unlink(r.Context(), mux.Vars(r)["expenseId"])
	if err != nil {
		writeErr(w, fromServiceError(s.logger, "unlink failed", err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type dateRequest struct {
	Date string `json:"date"`
}

func (s *Server) handleSetExpenseDate(w http.ResponseWriter, r *http.Request) {
	var req dateRequest
	if aerr := readJSON(r, &req); aerr != nil {
		writeErr(w, aerr)
		return
	}
	res, err := s.svc.Links.SetExpenseDate(r.Context(), mux.Vars(r)["id"], req.Date)
	if err != nil {
		writeErr(w, fromServiceError(s.logger, "setting expense date failed", err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) syncOrUnavailable(w http.ResponseWriter) bool {
	if s.svc.Sync == nil {
		writeErr(w, unavailable("cloud sync is not configured"))
		return false
	}
	return true
}

func (s *Server) handleSyncStatus(w http.ResponseWriter, r *http.Request) {
	if !s.syncOrUnavailable(w) {
		return
	}
	st, err := s.svc.Sync.Status(r.Context())
	if err != nil {
		writeErr(w, fromServiceError(s.logger, "sync status failed", err))
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleSyncPush(w http.ResponseWriter, r *http.Request) {
	if !s.syncOrUnavailable(w) {
		return
	}
	ts, err := s.svc.Sync.Push(r.Context())
	if err != nil {
		writeErr(w, fromServiceError(s.logger, "sync push failed", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"lastSync": ts})
}

func (s *Server) handleSyncPull(w http.ResponseWriter, r *http.Request) {
	if !s.syncOrUnavailable(w) {
		return
	}
	data, err := s.svc.Sync.Pull(r.Context())
	if err != nil {
		writeErr(w, fromServiceError(s.logger, "sync pull failed", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": data.RecordCount(), "lastSync": data.LastSync})
}
