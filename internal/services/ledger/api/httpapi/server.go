// Package httpapi serves read-only JSON views of the ledger over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	apperrors "github.com/louisbranch/taxledger/internal/platform/errors"
	errori18n "github.com/louisbranch/taxledger/internal/platform/errors/i18n"
	i18ncatalog "github.com/louisbranch/taxledger/internal/platform/i18n/catalog"
	"github.com/louisbranch/taxledger/internal/services/ledger/domain/access"
	"github.com/louisbranch/taxledger/internal/services/ledger/domain/event"
	"github.com/louisbranch/taxledger/internal/services/ledger/domain/filing"
	"github.com/louisbranch/taxledger/internal/services/ledger/engine"
	"github.com/louisbranch/taxledger/internal/services/ledger/observability/audit"
	"github.com/louisbranch/taxledger/internal/services/ledger/observability/audit/events"
	"github.com/louisbranch/taxledger/internal/services/ledger/storage"
	"google.golang.org/grpc/codes"
)

// Handler is the HTTP read gateway.
type Handler struct {
	engine  *engine.Engine
	audits  storage.AuditEventReader
	emitter *audit.Emitter
	router  chi.Router
}

// NewHandler builds the gateway router over eng. A nil auditLog disables
// audit records and the /v1/audit route.
func NewHandler(eng *engine.Engine, auditLog storage.AuditLog) *Handler {
	h := &Handler{engine: eng}
	if auditLog != nil {
		h.audits = auditLog
		h.emitter = audit.NewEmitter(auditLog)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.auditRequests)
	r.Route("/v1", func(api chi.Router) {
		api.Get("/seasons", h.listSeasons)
		api.Get("/seasons/status", h.seasonStatus)
		api.Get("/seasons/{year}", h.getSeason)
		api.Get("/seasons/{year}/open", h.isSeasonOpen)
		api.Get("/filings/status", h.filingStatus)
		api.Get("/filings/{id}", h.getFiling)
		api.Get("/filings/{id}/history", h.filingHistory)
		api.Get("/taxpayers/{taxpayer}/filings/{year}", h.filingByTaxpayerYear)
		api.Get("/events", h.listEvents)
		if h.audits != nil {
			api.Get("/audit", h.listAuditEvents)
		}
	})
	h.router = r
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Locale  string `json:"locale,omitempty"`
}

type seasonOpenBody struct {
	Year   uint32 `json:"year"`
	Height uint64 `json:"height"`
	Open   bool   `json:"open"`
}

type historyBody struct {
	FilingID uint64                `json:"filing_id"`
	Entries  []filing.HistoryEntry `json:"entries"`
	Final    bool                  `json:"final"`
}

type eventsBody struct {
	Events       []event.Event `json:"events"`
	NextAfterSeq uint64        `json:"next_after_seq,omitempty"`
}

type auditBody struct {
	Events []audit.Record `json:"events"`
}

type statusBody struct {
	Status access.Status `json:"status"`
}

var errInvalidArgument = apperrors.New(apperrors.CodeLedgerInvalidArgument, "invalid request parameter")

func (h *Handler) listSeasons(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"seasons": h.engine.ListSeasons()})
}

func (h *Handler) seasonStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusBody{Status: h.engine.SeasonStatus()})
}

func (h *Handler) getSeason(w http.ResponseWriter, r *http.Request) {
	year, ok := parseYear(w, r, chi.URLParam(r, "year"))
	if !ok {
		return
	}
	s, err := h.engine.GetSeason(year)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *Handler) isSeasonOpen(w http.ResponseWriter, r *http.Request) {
	year, ok := parseYear(w, r, chi.URLParam(r, "year"))
	if !ok {
		return
	}
	height, err := strconv.ParseUint(r.URL.Query().Get("height"), 10, 64)
	if err != nil {
		writeError(w, r, errInvalidArgument.With(map[string]string{"param": "height"}))
		return
	}
	writeJSON(w, http.StatusOK, seasonOpenBody{Year: year, Height: height, Open: h.engine.IsSeasonOpen(year, height)})
}

func (h *Handler) filingStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": h.engine.FilingStatus()})
}

func (h *Handler) getFiling(w http.ResponseWriter, r *http.Request) {
	id, ok := parseFilingID(w, r)
	if !ok {
		return
	}
	f, err := h.engine.GetFiling(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (h *Handler) filingHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseFilingID(w, r)
	if !ok {
		return
	}
	entries, err := h.engine.FilingHistory(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, historyBody{FilingID: id, Entries: entries, Final: filing.Final(entries)})
}

func (h *Handler) filingByTaxpayerYear(w http.ResponseWriter, r *http.Request) {
	year, ok := parseYear(w, r, chi.URLParam(r, "year"))
	if !ok {
		return
	}
	f, err := h.engine.GetFilingByTaxpayerYear(chi.URLParam(r, "taxpayer"), year)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) {
	query := storage.EventQuery{Filter: r.URL.Query().Get("filter")}
	if raw := r.URL.Query().Get("after_seq"); raw != "" {
		afterSeq, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeError(w, r, errInvalidArgument.With(map[string]string{"param": "after_seq"}))
			return
		}
		query.AfterSeq = afterSeq
	}
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 0 {
			writeError(w, r, errInvalidArgument.With(map[string]string{"param": "page_size"}))
			return
		}
		query.PageSize = size
	}
	page, err := h.engine.ListEvents(r.Context(), query)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidFilter) {
			err = apperrors.Wrap(apperrors.CodeLedgerInvalidArgument, err.Error(), err)
		}
		writeError(w, r, err)
		return
	}
	if page.Events == nil {
		page.Events = []event.Event{}
	}
	writeJSON(w, http.StatusOK, eventsBody{Events: page.Events, NextAfterSeq: page.NextAfterSeq})
}

func (h *Handler) listAuditEvents(w http.ResponseWriter, r *http.Request) {
	var limit int
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, r, errInvalidArgument.With(map[string]string{"param": "limit"}))
			return
		}
		limit = parsed
	}
	evts, err := h.audits.ListAuditEvents(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, auditBody{Events: audit.Records(evts)})
}

func parseYear(w http.ResponseWriter, r *http.Request, raw string) (uint32, bool) {
	year, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		writeError(w, r, errInvalidArgument.With(map[string]string{"param": "year"}))
		return 0, false
	}
	return uint32(year), true
}

func parseFilingID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, r, errInvalidArgument.With(map[string]string{"param": "id"}))
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("http write response: %v", err)
	}
}

// writeError renders err as {code, message}. Ledger errors are localized from
// Accept-Language; anything else is reported as an internal error.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		log.Printf("http internal error %s: %v", r.URL.Path, err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Code: string(apperrors.CodeUnknown), Message: "internal error"})
		return
	}
	locale := i18ncatalog.Default().Match(r.Header.Get("Accept-Language"))
	resolved, message := errori18n.Localize(locale, appErr)
	writeJSON(w, HTTPStatus(appErr.Code.GRPCCode()), errorBody{
		Code:    string(appErr.Code),
		Message: message,
		Locale:  resolved,
	})
}

// HTTPStatus maps a gRPC code to the matching HTTP status.
func HTTPStatus(code codes.Code) int {
	switch code {
	case codes.OK:
		return http.StatusOK
	case codes.InvalidArgument, codes.OutOfRange:
		return http.StatusBadRequest
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	case codes.AlreadyExists, codes.Aborted:
		return http.StatusConflict
	case codes.FailedPrecondition:
		return http.StatusPreconditionFailed
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	case codes.Unimplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// auditRequests records one audit event per request when an audit store is
// configured.
func (h *Handler) auditRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.emitter == nil {
			next.ServeHTTP(w, r)
			return
		}
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()
		next.ServeHTTP(ww, r)

		statusCode := ww.Status()
		if statusCode == 0 {
			statusCode = http.StatusOK
		}
		severity := audit.SeverityInfo
		if statusCode >= http.StatusInternalServerError {
			severity = audit.SeverityError
		} else if statusCode >= http.StatusBadRequest {
			severity = audit.SeverityWarn
		}
		err := h.emitter.Emit(r.Context(), storage.AuditEvent{
			EventName:  events.HTTPRead,
			Severity:   string(severity),
			Method:     r.Method + " " + r.URL.Path,
			RequestID:  middleware.GetReqID(r.Context()),
			StatusCode: strconv.Itoa(statusCode),
			Attributes: map[string]any{
				"duration_ms": time.Since(started).Milliseconds(),
			},
		})
		if err != nil {
			log.Printf("audit emit %s: %v", r.URL.Path, err)
		}
	})
}
