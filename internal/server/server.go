// Package server exposes the schedule engine over HTTP: a config upload
// endpoint returning the computed schedule, plus version metadata.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/finance-tools/loan-schedule/internal/config"
	"github.com/finance-tools/loan-schedule/pkg/constants"
	"github.com/finance-tools/loan-schedule/pkg/memo"
	"github.com/finance-tools/loan-schedule/pkg/output"
	"github.com/finance-tools/loan-schedule/pkg/schedule"
	"go.uber.org/zap"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	engine        *schedule.Engine
	cache         memo.Cache
}

// NewHandler constructs the HTTP handler that serves the schedule API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
		engine:        schedule.NewEngine(logger),
	}

	mux := http.NewServeMux()

	// Schedule API endpoint (YAML upload or JSON body)
	mux.HandleFunc("/api/schedule", h.handleSchedule)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type scheduleResponse struct {
	Currency   string                `json:"currency"`
	Rows       []schedule.Row        `json:"rows"`
	PlanErrors []*schedule.PlanError `json:"planErrors,omitempty"`
	Warnings   []string              `json:"warnings,omitempty"`
	CSV        string                `json:"csv"`
	Duration   string                `json:"duration"`
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	raw, err := h.readConfigPayload(w, r)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize))
			return
		}
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	conf, err := config.ParseConfiguration(raw)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(conf.Plans) == 0 {
		h.respondError(w, http.StatusBadRequest, "configuration declares no plans")
		return
	}
	if err := conf.Normalize(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	warnings := conf.ValidateConfiguration()

	// Same CPI provisioning as the CLI path: the inline series, optionally
	// behind the configured redis cache.
	source, err := conf.CPISource(h.logger)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	series, err := source.Load()
	if err != nil {
		h.respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	in := conf.ToEngineInput(series, nil)
	result := h.cache.Compute(in, "", func() *schedule.Result {
		return h.engine.Compute(in)
	})

	response := scheduleResponse{
		Currency:   result.Currency,
		Rows:       result.Rows,
		PlanErrors: result.PlanErrors,
		Warnings:   warnings,
		CSV:        output.CsvString(result),
		Duration:   time.Since(start).String(),
	}
	h.respondJSON(w, http.StatusOK, response)
}

// readConfigPayload accepts either a multipart upload with a "file" field or
// a raw YAML/JSON request body.
func (h *handler) readConfigPayload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
			return nil, fmt.Errorf("failed to parse upload: %w", err)
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("missing configuration file")
		}
		defer func() {
			if closeErr := file.Close(); closeErr != nil {
				h.logger.Warn("failed to close uploaded file",
					zap.String("op", "server.readConfigPayload"),
					zap.Error(closeErr),
				)
			}
		}()
		return io.ReadAll(file)
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty request body")
	}
	return raw, nil
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

func (h *handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Warn("failed to encode response",
			zap.String("op", "server.respondJSON"),
			zap.Error(err),
		)
	}
}

func (h *handler) respondError(w http.ResponseWriter, status int, message string) {
	h.logger.Debug("rejecting request",
		zap.String("op", "server.respondError"),
		zap.Int("status", status),
		zap.String("reason", message),
	)
	h.respondJSON(w, status, map[string]string{"error": message})
}
