package server

import (
	"devicehub/internal/service"
	"encoding/json"
	"github.com/pkg/errors"
	"net/http"
)

type msgResponse struct {
	Msg string `json:"msg"`
}

type errorsResponse struct {
	Errors []fieldError `json:"errors"`
}

func (s Server) writeJsonResponse(w http.ResponseWriter, response any, statusCode int) {
	if resp, err := json.Marshal(response); err != nil {
		s.Logger.Errorf("Error encoding response: %+v, err: %v", response, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	} else {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(statusCode)
		if _, err = w.Write(resp); err != nil {
			s.Logger.Errorf("Error writing JSON response: %s, err: %v", resp, err)
		}
	}
}

// writeServiceError maps service errors to responses. Anything unclassified
// is logged and answered with a bare 500.
func (s Server) writeServiceError(w http.ResponseWriter, handler string, tid string, err error) {
	var nf *service.NotFoundError
	switch {
	case errors.Is(err, service.ErrNotOwner):
		s.Logger.Warnf("%s: Ownership check failed, err: %v, TraceID: %s", handler, err, tid)
		s.writeJsonResponse(w, msgResponse{Msg: "Invalid"}, http.StatusNotFound)
	case errors.As(err, &nf):
		s.Logger.Debugf("%s: %s, ID: %s, TraceID: %s", handler, nf.Error(), nf.ID, tid)
		s.writeJsonResponse(w, msgResponse{Msg: nf.Error()}, http.StatusNotFound)
	case errors.Is(err, service.ErrUserExists):
		s.writeJsonResponse(w, errorsResponse{Errors: []fieldError{{Msg: "User already exists"}}}, http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidCredentials):
		s.writeJsonResponse(w, errorsResponse{Errors: []fieldError{{Msg: "Invalid Credentials"}}}, http.StatusBadRequest)
	default:
		s.Logger.Errorf("%s: Unexpected error, err: %v, TraceID: %s", handler, err, tid)
		s.writeJsonResponse(w, msgResponse{Msg: "Server error"}, http.StatusInternalServerError)
	}
}

func (s Server) index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, err := w.Write([]byte("Index page")); err != nil {
			s.Logger.Errorf("index: Error writing response, err: %v, TraceID: %s", err, getTraceContext(r.Context()).traceID)
		}
	}
}

func (s Server) notFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tc := getTraceContext(r.Context())
		s.Logger.Debugf("notFoundHandler: Requested resource not found %s %s, TraceID: %s", r.Method, r.URL.Path, tc.traceID)
		s.writeJsonResponse(w, msgResponse{Msg: "Not found"}, http.StatusNotFound)
	}
}
