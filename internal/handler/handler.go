package handler

import (
	"bytes"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"aging-dashboard/internal/engine"
	"aging-dashboard/internal/loader"
	"aging-dashboard/internal/metrics"
	"aging-dashboard/internal/model"
	"aging-dashboard/internal/page"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json"
)

type Handler struct {
	loader   *loader.Loader
	snapshot []byte
	logger   *zap.Logger
	metrics  *metrics.Metrics
	prom     fasthttp.RequestHandler
}

func New(l *loader.Loader, snapshot []byte, logger *zap.Logger, m *metrics.Metrics, gatherer prometheus.Gatherer) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Handler{
		loader:   l,
		snapshot: snapshot,
		logger:   logger,
		metrics:  m,
		prom:     fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})),
	}
}

func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	requestID := uuid.New().String()
	ctx.Response.Header.Set("X-Request-ID", requestID)

	if !ctx.IsGet() && !ctx.IsHead() {
		writeError(ctx, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	switch string(ctx.Path()) {
	case "/":
		h.handlePage(ctx, requestID)
	case loader.DataPath:
		ctx.SetContentType(contentTypeJSON)
		ctx.SetBody(h.snapshot)
	case "/api/view":
		h.handleView(ctx, requestID)
	case "/healthz":
		writeJSON(ctx, http.StatusOK, model.HealthResponse{Status: "ok"})
	case "/metrics":
		h.prom(ctx)
	default:
		writeError(ctx, http.StatusNotFound, "Not found")
	}
}

func (h *Handler) handlePage(ctx *fasthttp.RequestCtx, requestID string) {
	log := h.logger.With(zap.String("request_id", requestID), zap.String("path", "/"))

	view, status, err := h.activate(ctx)
	if err != nil {
		log.Error("derive view failed", zap.Error(err))
		h.writeStatus(ctx, http.StatusInternalServerError, page.Failed)
		return
	}
	if view == nil {
		h.writeStatus(ctx, http.StatusOK, status)
		return
	}

	var buf bytes.Buffer
	if err := page.Render(&buf, view); err != nil {
		log.Error("render page failed", zap.Error(err))
		h.writeStatus(ctx, http.StatusInternalServerError, page.Failed)
		return
	}
	h.metrics.IncrementRenders(model.OutcomeSuccess)
	ctx.SetContentType(contentTypeHTML)
	ctx.SetBody(buf.Bytes())
}

func (h *Handler) handleView(ctx *fasthttp.RequestCtx, requestID string) {
	view, _, err := h.activate(ctx)
	if err != nil {
		h.logger.Error("derive view failed", zap.String("request_id", requestID), zap.Error(err))
		writeError(ctx, http.StatusInternalServerError, "Snapshot is incomplete")
		return
	}
	if view == nil {
		writeError(ctx, http.StatusBadGateway, "Snapshot unavailable")
		return
	}
	writeJSON(ctx, http.StatusOK, view)
}

// activate loads the snapshot and derives the view. A nil view with a nil
// error means the loader did not reach the ready state.
func (h *Handler) activate(ctx *fasthttp.RequestCtx) (*model.View, page.Status, error) {
	a := h.loader.Activate(ctx)
	switch a.State() {
	case loader.StateReady:
	case loader.StateLoading:
		return nil, page.Loading, nil
	default:
		return nil, page.Failed, nil
	}
	view, err := engine.Derive(a.Snapshot())
	if err != nil {
		return nil, page.Failed, err
	}
	return view, "", nil
}

func (h *Handler) writeStatus(ctx *fasthttp.RequestCtx, code int, status page.Status) {
	h.metrics.IncrementRenders(model.OutcomeFailure)
	var buf bytes.Buffer
	if err := page.RenderStatus(&buf, status); err != nil {
		h.logger.Error("render status view failed", zap.Error(err))
		writeError(ctx, http.StatusInternalServerError, "Internal error")
		return
	}
	ctx.SetStatusCode(code)
	ctx.SetContentType(contentTypeHTML)
	ctx.SetBody(buf.Bytes())
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	ctx.SetContentType(contentTypeJSON)
	ctx.SetStatusCode(status)
	json.NewEncoder(ctx).Encode(v)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, model.ErrorResponse{
		Status:  status,
		Message: message,
	})
}
