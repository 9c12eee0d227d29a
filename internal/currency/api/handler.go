package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/carlosfiori/conversor-clima/internal/currency"
	"github.com/carlosfiori/conversor-clima/internal/fetch"
	"github.com/carlosfiori/conversor-clima/internal/httpx"
)

type Handler struct {
	Converter *currency.Converter
	Logger    *zap.Logger
}

func NewHandler(converter *currency.Converter, logger *zap.Logger) *Handler {
	return &Handler{Converter: converter, Logger: logger}
}

// HandleIndex renders the converter form with the current state.
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, newPageData(h.Converter.Form(), h.Converter.State())); err != nil {
		h.Logger.Error("Error rendering page", zap.Error(err))
	}
}

// HandleConvert accepts a JSON body or a form post. Form posts are
// redirected back to the page once the conversion resolves.
func (h *Handler) HandleConvert(w http.ResponseWriter, r *http.Request) {
	tracer := otel.Tracer("currency")
	ctx, span := tracer.Start(r.Context(), "currency: handle-convert")
	defer span.End()

	var req ConvertRequest
	isForm := !strings.Contains(r.Header.Get("Content-Type"), "application/json")
	if isForm {
		if err := r.ParseForm(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "invalid form")
			httpx.WriteError(w, h.Logger, "invalid request", http.StatusBadRequest)
			return
		}
		req = ConvertRequest{
			Amount: r.FormValue("amount"),
			From:   r.FormValue("from"),
			To:     r.FormValue("to"),
		}
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request body")
		httpx.WriteError(w, h.Logger, "invalid request", http.StatusBadRequest)
		return
	}

	span.SetAttributes(
		attribute.String("currency.amount", req.Amount),
		attribute.String("currency.from", req.From),
		attribute.String("currency.to", req.To),
	)
	h.Logger.Info("Processing conversion",
		zap.String("amount", req.Amount), zap.String("from", req.From), zap.String("to", req.To))

	state := h.Converter.Submit(ctx, req)

	if isForm {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if state.Status == fetch.StatusError {
		span.SetStatus(codes.Error, state.Error)
		httpx.WriteError(w, h.Logger, state.Error, httpx.StatusFor(state.ErrorKind))
		return
	}
	if state.Result == nil {
		// A newer request superseded this one and is still in flight.
		httpx.WriteJSON(w, h.Logger, newStateResponse(state), http.StatusAccepted)
		return
	}

	span.SetStatus(codes.Ok, "")
	httpx.WriteJSON(w, h.Logger, newConversionResponse(*state.Result), http.StatusOK)
}

func (h *Handler) HandleState(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, h.Logger, newStateResponse(h.Converter.State()), http.StatusOK)
}

func SetupRouter(h *Handler) http.Handler {
	r := httpx.NewRouter(h.Logger)

	r.Get("/", h.HandleIndex)
	r.Post("/convert", h.HandleConvert)
	r.Get("/state", h.HandleState)

	return httpx.Instrument(r, "currency-server")
}
