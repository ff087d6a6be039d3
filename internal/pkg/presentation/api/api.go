package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"

	"github.com/diwise/smartbox-telemetry/internal/pkg/application/alerts"
	"github.com/diwise/smartbox-telemetry/internal/pkg/application/telemetry"
	"github.com/diwise/smartbox-telemetry/internal/pkg/application/webevents"
	"github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/logging"
	"github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/tracing"
	"github.com/diwise/smartbox-telemetry/pkg/types"
)

var tracer = otel.Tracer("smartbox-telemetry/api")

const maxBodySize int64 = 1 << 20

func RegisterHandlers(ctx context.Context, router *chi.Mux, svc telemetry.TelemetryService, alertSvc alerts.AlertService, ws webevents.WebEvents) *chi.Mux {
	log := logging.GetFromContext(ctx)

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Smart Box telemetry service is running"})
	})

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/boxes", func(r chi.Router) {
			r.Get("/", listBoxesHandler(log, svc))
			r.Post("/", registerBoxHandler(log, svc))
			r.Get("/{boxID}", getBoxHandler(log, svc))
			r.Patch("/{boxID}", patchBoxHandler(log, svc))
			r.Post("/{boxID}/readings", ingestReadingHandler(log, svc))
		})

		r.Route("/data/{boxID}", func(r chi.Router) {
			r.Get("/", getRecentReadingsHandler(log, svc))
			if ws != nil {
				r.Get("/ws", liveReadingsHandler(ws))
			}
		})

		r.Get("/dashboard", getDashboardHandler(log, svc))

		r.Route("/alerts", func(r chi.Router) {
			r.Get("/", queryAlertsHandler(log, alertSvc))
			r.Post("/", raiseAlertHandler(log, alertSvc))
			r.Get("/{alertID}", getAlertHandler(log, alertSvc))
			r.Patch("/{alertID}", acknowledgeAlertHandler(log, alertSvc))
		})
	})

	return router
}

func ingestReadingHandler(log zerolog.Logger, svc telemetry.TelemetryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "ingest-reading")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := tracing.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		boxID := chi.URLParam(r, "boxID")
		requestLogger = requestLogger.With().Str("box_id", boxID).Logger()

		payload := types.ReadingPayload{}
		err = decodeBody(r, &payload)
		if err != nil {
			requestLogger.Debug().Err(err).Msg("unable to decode reading")
			writeError(w, http.StatusBadRequest, err)
			return
		}

		result, err := svc.Ingest(ctx, boxID, payload)
		if err != nil {
			status := statusFor(err)
			if status >= http.StatusInternalServerError {
				requestLogger.Error().Err(err).Msg("unable to store reading")
			} else {
				requestLogger.Debug().Err(err).Msg("reading rejected")
			}
			writeError(w, status, err)
			return
		}

		writeJSON(w, http.StatusCreated, result)
	}
}

func getRecentReadingsHandler(log zerolog.Logger, svc telemetry.TelemetryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-recent-readings")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := tracing.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		boxID := chi.URLParam(r, "boxID")

		limit := telemetry.DefaultLimit
		if l := r.URL.Query().Get("limit"); l != "" {
			limit, err = strconv.Atoi(l)
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Errorf("%w: limit must be an integer", telemetry.ErrValidation))
				return
			}
		}

		readings, err := svc.GetRecent(ctx, boxID, limit)
		if err != nil {
			requestLogger.Error().Err(err).Str("box_id", boxID).Msg("unable to fetch readings")
			writeError(w, statusFor(err), err)
			return
		}

		writeJSON(w, http.StatusOK, readings)
	}
}

func liveReadingsHandler(ws webevents.WebEvents) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws.Serve(w, r, chi.URLParam(r, "boxID"))
	}
}

func getDashboardHandler(log zerolog.Logger, svc telemetry.TelemetryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-dashboard")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := tracing.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		dashboard, err := svc.GetDashboard(ctx)
		if err != nil {
			requestLogger.Error().Err(err).Msg("unable to build dashboard")
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, dashboard)
	}
}

func listBoxesHandler(log zerolog.Logger, svc telemetry.TelemetryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "list-boxes")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := tracing.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		boxes, err := svc.ListBoxes(ctx)
		if err != nil {
			requestLogger.Error().Err(err).Msg("unable to list boxes")
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, boxes)
	}
}

func getBoxHandler(log zerolog.Logger, svc telemetry.TelemetryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-box")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := tracing.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		boxID := chi.URLParam(r, "boxID")
		requestLogger = requestLogger.With().Str("box_id", boxID).Logger()

		box, err := svc.GetBox(ctx, boxID)
		if err != nil {
			if errors.Is(err, telemetry.ErrBoxNotFound) {
				requestLogger.Debug().Msg("box not found")
			} else {
				requestLogger.Error().Err(err).Msg("unable to fetch box")
			}
			writeError(w, statusFor(err), err)
			return
		}

		writeJSON(w, http.StatusOK, box)
	}
}

func registerBoxHandler(log zerolog.Logger, svc telemetry.TelemetryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "register-box")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := tracing.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		registration := types.BoxRegistration{}
		err = decodeBody(r, &registration)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		box, err := svc.RegisterBox(ctx, registration)
		if err != nil {
			requestLogger.Debug().Err(err).Str("box_id", registration.ID).Msg("unable to register box")
			writeError(w, statusFor(err), err)
			return
		}

		w.Header().Set("Location", "/api/v1/boxes/"+box.ID)
		writeJSON(w, http.StatusCreated, box)
	}
}

func patchBoxHandler(log zerolog.Logger, svc telemetry.TelemetryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "patch-box")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := tracing.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		boxID := chi.URLParam(r, "boxID")

		update := types.BoxUpdate{}
		err = decodeBody(r, &update)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		box, err := svc.UpdateBox(ctx, boxID, update)
		if err != nil {
			requestLogger.Debug().Err(err).Str("box_id", boxID).Msg("unable to update box")
			writeError(w, statusFor(err), err)
			return
		}

		writeJSON(w, http.StatusOK, box)
	}
}

func queryAlertsHandler(log zerolog.Logger, svc alerts.AlertService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "query-alerts")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := tracing.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		q := r.URL.Query()

		found, err := svc.Query(ctx, q.Get("boxId"), q.Get("state"))
		if err != nil {
			requestLogger.Debug().Err(err).Msg("unable to query alerts")
			writeError(w, statusFor(err), err)
			return
		}

		writeJSON(w, http.StatusOK, found)
	}
}

func getAlertHandler(log zerolog.Logger, svc alerts.AlertService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-alert")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := tracing.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		alertID := chi.URLParam(r, "alertID")

		alert, err := svc.GetByID(ctx, alertID)
		if err != nil {
			requestLogger.Debug().Err(err).Str("alert_id", alertID).Msg("unable to fetch alert")
			writeError(w, statusFor(err), err)
			return
		}

		writeJSON(w, http.StatusOK, alert)
	}
}

func raiseAlertHandler(log zerolog.Logger, svc alerts.AlertService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "raise-alert")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := tracing.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		operatorAlert := types.OperatorAlert{}
		err = decodeBody(r, &operatorAlert)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		alert, err := svc.Raise(ctx, operatorAlert)
		if err != nil {
			requestLogger.Debug().Err(err).Str("box_id", operatorAlert.BoxID).Msg("unable to raise alert")
			writeError(w, statusFor(err), err)
			return
		}

		requestLogger.Info().Str("alert_id", alert.ID).Str("box_id", alert.BoxID).Msg("operator alert raised")

		writeJSON(w, http.StatusCreated, alert)
	}
}

func acknowledgeAlertHandler(log zerolog.Logger, svc alerts.AlertService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "acknowledge-alert")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := tracing.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		alertID := chi.URLParam(r, "alertID")

		ack := types.Acknowledgement{}
		err = decodeBody(r, &ack)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		alert, err := svc.Acknowledge(ctx, alertID, ack.AcknowledgedBy)
		if err != nil {
			requestLogger.Debug().Err(err).Str("alert_id", alertID).Msg("unable to acknowledge alert")
			writeError(w, statusFor(err), err)
			return
		}

		writeJSON(w, http.StatusOK, alert)
	}
}

func decodeBody(r *http.Request, v any) error {
	b, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: unable to read body", telemetry.ErrValidation)
	}

	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("%w: %s", telemetry.ErrValidation, err.Error())
	}

	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, telemetry.ErrValidation), errors.Is(err, alerts.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, telemetry.ErrBoxNotFound), errors.Is(err, alerts.ErrAlertNotFound):
		return http.StatusNotFound
	case errors.Is(err, telemetry.ErrBoxAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, types.ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}
