package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNetworkUnreachable - запрос не дошел до бэкенда или ответ не был получен
	ErrNetworkUnreachable = errors.New("network unreachable")
	// ErrNonSuccessStatus - бэкенд ответил статусом вне диапазона 2xx
	ErrNonSuccessStatus = errors.New("non-success status")
	// ErrMalformedResponse - тело ответа не соответствует ожидаемой форме
	ErrMalformedResponse = errors.New("malformed response")
	// ErrUnsupportedInput - входные данные отклонены до отправки
	ErrUnsupportedInput = errors.New("unsupported input")
)

// StatusError описывает ответ бэкенда со статусом вне 2xx
type StatusError struct {
	Op         string
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("gateway: %s: backend returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("gateway: %s: backend returned status %d: %s", e.Op, e.StatusCode, e.Detail)
}

func (e *StatusError) Unwrap() error {
	return ErrNonSuccessStatus
}

// parseDetail извлекает поле detail из тела ошибки FastAPI. Detail может быть строкой или списком.
func parseDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return strings.TrimSpace(string(body))
	}
	var s string
	if err := json.Unmarshal(payload.Detail, &s); err == nil {
		return s
	}
	return string(payload.Detail)
}

func unsupported(op, format string, args ...any) error {
	return fmt.Errorf("gateway: %s: %w: %s", op, ErrUnsupportedInput, fmt.Sprintf(format, args...))
}
