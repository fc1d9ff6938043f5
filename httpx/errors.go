package httpx

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/mbolis/platform-pulse/log"
	"github.com/mbolis/platform-pulse/model"
)

// Will send a JSON error response with the given status and message
func Error(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, model.ErrorResponse{Error: msg})
}

// Will log an error, and send a JSON error response with status 500
// carrying the raw error text
func LogInternalError(w http.ResponseWriter, r *http.Request, code string, err error) {
	log.Errorf("%s: %s", code, err)
	Error(w, r, http.StatusInternalServerError, err.Error())
}

// Will log a debug message, and send a JSON error response with status 404
func LogNotFound(w http.ResponseWriter, r *http.Request, code string, id any, msg string) {
	log.Debugf("%s: not found (%v)", code, id)
	Error(w, r, http.StatusNotFound, msg)
}

// Will log an error code and message at the given level,
// and send a JSON error response with the given status and message
func LogStatusMsg(w http.ResponseWriter, r *http.Request, status int, level log.Level, code string, msg string) {
	log.Log(level, code+":", msg)
	Error(w, r, status, msg)
}
