package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const (
	maxBodyBytes        = 1 << 20
	msgInternalError    = "внутренняя ошибка сервера"
	msgRouteNotFound    = "маршрут не найден"
	msgMethodNotAllowed = "метод не поддерживается"
)

// Машиночитаемые коды ошибок
const (
	CodeBadRequest       = "bad_request"
	CodeNotFound         = "not_found"
	CodeMethodNotAllowed = "method_not_allowed"
	CodeInternalError    = "internal_error"
	CodeTooManyRequests  = "too_many_requests"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondErrorCode отправляет ошибку с машиночитаемым кодом
func RespondErrorCode(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// RespondBadRequest 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondErrorCode(w, http.StatusBadRequest, CodeBadRequest, message)
}

// RespondNotFound 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondErrorCode(w, http.StatusNotFound, CodeNotFound, message)
}

// RespondInternalError 500 без деталей
func RespondInternalError(w http.ResponseWriter) {
	RespondErrorCode(w, http.StatusInternalServerError, CodeInternalError, msgInternalError)
}

// NotFound обработчик неизвестных маршрутов роутера
func NotFound(w http.ResponseWriter, _ *http.Request) {
	RespondNotFound(w, msgRouteNotFound)
}

// MethodNotAllowed обработчик маршрутов с неподдерживаемым методом
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	RespondErrorCode(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, msgMethodNotAllowed)
}

// DecodeJSON декодирует тело запроса, неизвестные поля запрещены
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	if decoder.More() {
		return errors.New("request body must contain a single JSON object")
	}

	return nil
}
