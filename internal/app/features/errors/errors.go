// internal/app/features/errors/errors.go
package errors

import (
	"fmt"
	"net/http"

	"github.com/MarceloDTavares01/ProjetoFinal-Dash-Cessionarios/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ErrorLogger wraps the zap logger for error logging.
type ErrorLogger struct {
	logger *zap.Logger
}

// NewErrorLogger creates a new ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{logger: logger}
}

// Log logs an error with the given message and error.
func (e *ErrorLogger) Log(r *http.Request, msg string, err error) {
	e.logger.Error(msg,
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
	)
}

// LogWithFields logs an error with additional fields.
func (e *ErrorLogger) LogWithFields(r *http.Request, msg string, err error, fields ...zap.Field) {
	allFields := append([]zap.Field{
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
	}, fields...)
	e.logger.Error(msg, allFields...)
}

// Handler provides error page handlers.
type Handler struct{}

// NewHandler creates a new error Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// blockingVM is the view model of the blocking message page.
type blockingVM struct {
	viewdata.BaseVM
	Heading string
	Message string
	BackURL string
}

// NotFound renders the 404 not found page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	vm := viewdata.New(r)
	vm.Title = "Not Found"

	w.WriteHeader(http.StatusNotFound)
	templates.Render(w, r, "errors/not_found", vm)
}

// InternalError renders the 500 internal server error page.
func (h *Handler) InternalError(w http.ResponseWriter, r *http.Request) {
	vm := viewdata.New(r)
	vm.Title = "Server Error"

	w.WriteHeader(http.StatusInternalServerError)
	templates.Render(w, r, "errors/internal", vm)
}

// Recover is middleware that turns a handler panic into the 500 page.
// http.ErrAbortHandler is re-raised so the server can abort the response.
func (h *Handler) Recover(errLog *ErrorLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				errLog.Log(r, "panic recovered", fmt.Errorf("%v", rec))
				h.InternalError(w, r)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Blocking renders a page that stops the current view with a message.
// backURL may be empty when there is nowhere useful to go.
func Blocking(w http.ResponseWriter, r *http.Request, status int, heading, message, backURL string) {
	vm := blockingVM{
		BaseVM:  viewdata.New(r),
		Heading: heading,
		Message: message,
		BackURL: backURL,
	}
	vm.Title = heading

	w.WriteHeader(status)
	templates.Render(w, r, "errors/blocking", vm)
}
