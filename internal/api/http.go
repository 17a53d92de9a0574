package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aifuge/freightquote/internal/api/swagger"
	"github.com/aifuge/freightquote/internal/cron"
	"github.com/aifuge/freightquote/internal/metrics"
	"github.com/aifuge/freightquote/internal/quote"
	"github.com/aifuge/freightquote/internal/refdata"
)

// QuoteRequestBody is the POST /quote payload: a quote request plus optional
// parameter overrides merged over the loaded defaults.
type QuoteRequestBody struct {
	quote.Request
	Params *refdata.Overrides `json:"params,omitempty"`
}

// QuoteResponseBody wraps the engine response with a request id for log
// correlation.
type QuoteResponseBody struct {
	ID string `json:"id"`
	quote.Response
}

// NewMux constructs the HTTP mux, wiring in the quote service, metrics,
// swagger and health endpoints. The store must already be loaded.
func NewMux(store *refdata.Store, src refdata.Source) *http.ServeMux {
	svc := quote.NewService(store)

	mux := http.NewServeMux()

	// Metrics endpoint.
	mux.Handle("/metrics", promhttp.Handler())

	// Health / readiness / liveness.
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := src.Ping(r.Context()); err != nil {
			log.Printf("readyz: source ping failed: %v", err)
			http.Error(w, "data source not ready", http.StatusServiceUnavailable)
			return
		}
		if store.Snapshot() == nil {
			http.Error(w, "reference data not loaded", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	mux.HandleFunc("/livez", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("live"))
	})

	// Quote API.
	mux.HandleFunc("/quote", handleQuote(svc))
	mux.HandleFunc("/carriers", handleCarriers)
	mux.HandleFunc("/admin/reload", handleReload(store))

	// API docs.
	mux.Handle("/swagger/", http.StripPrefix("/swagger", swagger.Handler()))

	return mux
}

// handleQuote serves POST /quote. Per-carrier not-found conditions are part
// of a 200 response; only malformed payloads are client errors.
func handleQuote(svc *quote.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const path = "/quote"
		start := time.Now()
		defer func() {
			metrics.QuoteDurationSeconds.WithLabelValues(path).Observe(time.Since(start).Seconds())
		}()

		if r.Method != http.MethodPost {
			metrics.RequestErrorsTotal.WithLabelValues(path, "405").Inc()
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var body QuoteRequestBody
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&body); err != nil {
			metrics.RequestErrorsTotal.WithLabelValues(path, "400").Inc()
			http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}

		params := svc.Params()
		if body.Params != nil {
			params = body.Params.Apply(params)
		}

		resp, err := svc.Quote(r.Context(), body.Request, params)
		if err != nil {
			log.Printf("quote failed: %v", err)
			metrics.RequestErrorsTotal.WithLabelValues(path, "500").Inc()
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		recordOutcome(quote.CarrierParcel, resp.Parcel)
		recordOutcome(quote.CarrierLTL, resp.LTL)

		writeJSON(w, path, QuoteResponseBody{ID: uuid.NewString(), Response: resp})
	}
}

func recordOutcome(carrier string, res quote.Result) {
	outcome := "ok"
	if !res.OK() {
		outcome = string(res.Failure.Reason)
	}
	metrics.QuotesTotal.WithLabelValues(carrier, outcome).Inc()
}

func handleCarriers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, "/carriers", quote.Carriers())
}

// handleReload re-reads reference data from the source. Used by operators
// after the data-preparation process publishes new tables.
func handleReload(store *refdata.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const path = "/admin/reload"
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		metrics.ReloadTotal.Inc()
		if err := store.Reload(r.Context()); err != nil {
			metrics.ReloadFailuresTotal.Inc()
			log.Printf("reload failed: %v", err)
			metrics.RequestErrorsTotal.WithLabelValues(path, "500").Inc()
			http.Error(w, "reload failed: "+err.Error(), http.StatusInternalServerError)
			return
		}
		metrics.ReloadLastSuccess.Set(float64(time.Now().Unix()))
		cron.RecordTableSizes(store.Snapshot())

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("reloaded"))
	}
}

func writeJSON(w http.ResponseWriter, path string, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response failed: %v", err)
		metrics.RequestErrorsTotal.WithLabelValues(path, "500").Inc()
	}
}
