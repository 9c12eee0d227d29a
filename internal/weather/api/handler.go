package api

import (
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/carlosfiori/conversor-clima/internal/fetch"
	"github.com/carlosfiori/conversor-clima/internal/httpx"
	"github.com/carlosfiori/conversor-clima/internal/weather"
)

type Handler struct {
	Lookup *weather.Lookup
	Logger *zap.Logger
	// Clock defaults to time.Now when nil.
	Clock func() time.Time
}

func NewHandler(lookup *weather.Lookup, logger *zap.Logger) *Handler {
	return &Handler{Lookup: lookup, Logger: logger}
}

// HandleIndex renders the widget. A city query parameter submits a search
// before rendering.
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	state := h.Lookup.State()
	if city := strings.TrimSpace(r.URL.Query().Get("city")); city != "" {
		state = h.search(r, city)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, pageData{View: h.view(state)}); err != nil {
		h.Logger.Error("Error rendering page", zap.Error(err))
	}
}

func (h *Handler) HandleWeather(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(r.URL.Query().Get("city"))
	if city == "" {
		httpx.WriteJSON(w, h.Logger, h.view(h.Lookup.State()), http.StatusOK)
		return
	}

	state := h.search(r, city)
	switch {
	case state.Status == fetch.StatusError:
		httpx.WriteError(w, h.Logger, state.Error, httpx.StatusFor(state.ErrorKind))
	case state.Result == nil:
		httpx.WriteJSON(w, h.Logger, h.view(state), http.StatusAccepted)
	default:
		httpx.WriteJSON(w, h.Logger, h.view(state), http.StatusOK)
	}
}

func (h *Handler) HandleState(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, h.Logger, h.view(h.Lookup.State()), http.StatusOK)
}

func (h *Handler) search(r *http.Request, city string) weather.State {
	tracer := otel.Tracer("weather")
	ctx, span := tracer.Start(r.Context(), "weather: handle-search")
	defer span.End()

	span.SetAttributes(attribute.String("weather.city", city))
	h.Logger.Info("Processing weather lookup", zap.String("city", city), zap.String("remote", r.RemoteAddr))

	state := h.Lookup.Search(ctx, city)
	if state.Status == fetch.StatusError {
		span.SetStatus(codes.Error, state.Error)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	return state
}

func SetupRouter(h *Handler) http.Handler {
	r := httpx.NewRouter(h.Logger)

	r.Get("/", h.HandleIndex)
	r.Get("/weather", h.HandleWeather)
	r.Get("/state", h.HandleState)

	return httpx.Instrument(r, "weather-server")
}

func (h *Handler) view(s weather.State) WeatherResponse {
	return weather.NewView(h.Lookup.Query(), s, h.now())
}

func (h *Handler) now() time.Time {
	if h.Clock != nil {
		return h.Clock()
	}
	return time.Now()
}
