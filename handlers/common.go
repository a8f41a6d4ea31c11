package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"recipe-service/models"
	"recipe-service/services"

	logger "github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

const msgInvalidJSON = "Invalid JSON"

var errInvalidJSON = errors.New("invalid JSON body")

// logRequest logs with the route, method, path, request ID and user
// of the current request attached
func logRequest(ctx context.Context, level string, message string, fields ...zap.Field) {
	info := getRequestInfo(ctx)

	logMsg := info.Route + " - " + info.Method + " - " + info.Path
	if info.UserID != 0 {
		logMsg += " - user:" + strconv.Itoa(info.UserID)
	}
	if message != "" {
		logMsg += " - " + message
	}

	allFields := append([]zap.Field{
		zap.String("request_id", info.ID),
		zap.String("route", info.Route),
		zap.String("method", info.Method),
		zap.String("path", info.Path),
	}, fields...)

	switch level {
	case "info":
		logger.Info(logMsg, allFields...)
	case "error":
		logger.Error(logMsg, allFields...)
	case "debug":
		logger.Debug(logMsg, allFields...)
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Error: message})
}

// statusFor maps a service error kind to its HTTP status
func statusFor(err error) int {
	switch services.KindOf(err) {
	case services.KindBadRequest:
		return http.StatusBadRequest
	case services.KindValidation:
		return http.StatusUnprocessableEntity
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError is the only place service errors become HTTP responses
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logRequest(ctx, "error", "Request failed", zap.Error(err), zap.Int("status", status))
	} else {
		logRequest(ctx, "info", "Request rejected", zap.String("reason", err.Error()), zap.Int("status", status))
	}
	writeError(w, status, err.Error())
}

// decodeJSON reads a JSON body into dst. An empty body leaves dst untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return errInvalidJSON
}
