package server

import (
	"net/http"
)

type tokenResponse struct {
	Token string `json:"token"`
}

func (s Server) userRegister() http.HandlerFunc {
	type request struct {
		CompanyName string `json:"companyName" validate:"required"`
		Email       string `json:"email" validate:"required,email"`
		Password    string `json:"password" validate:"required,min=6"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		tid := getTraceContext(r.Context()).traceID
		req := request{}
		if !s.decodeBody(w, r, "userRegister", &req) {
			return
		}

		u, err := s.Users.Register(r.Context(), req.CompanyName, req.Email, req.Password)
		if err != nil {
			s.Logger.Debugf("userRegister: Error registering User with email: %s, err: %v, TraceID: %s", req.Email, err, tid)
			s.writeServiceError(w, "userRegister", tid, err)
			return
		}

		lt, err := s.createToken(u.ID.Hex())
		if err != nil {
			s.Logger.Errorf("userRegister: Error creating login token for UserID: %s, err: %v, TraceID: %s", u.ID.Hex(), err, tid)
			s.writeJsonResponse(w, msgResponse{Msg: "Server error"}, http.StatusInternalServerError)
			return
		}
		s.Logger.Infof("userRegister: Registered UserID: %s, TraceID: %s", u.ID.Hex(), tid)
		s.writeJsonResponse(w, tokenResponse{Token: lt}, http.StatusOK)
	}
}

func (s Server) userLogin() http.HandlerFunc {
	type request struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		tid := getTraceContext(r.Context()).traceID
		req := request{}
		if !s.decodeBody(w, r, "userLogin", &req) {
			return
		}

		u, err := s.Users.Authenticate(r.Context(), req.Email, req.Password)
		if err != nil {
			s.Logger.Debugf("userLogin: Error authenticating User with email: %s, err: %v, TraceID: %s", req.Email, err, tid)
			s.writeServiceError(w, "userLogin", tid, err)
			return
		}

		lt, err := s.createToken(u.ID.Hex())
		if err != nil {
			s.Logger.Errorf("userLogin: Error creating login token for UserID: %s, err: %v, TraceID: %s", u.ID.Hex(), err, tid)
			s.writeJsonResponse(w, msgResponse{Msg: "Server error"}, http.StatusInternalServerError)
			return
		}
		s.writeJsonResponse(w, tokenResponse{Token: lt}, http.StatusOK)
	}
}

func (s Server) userGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tid := getTraceContext(r.Context()).traceID
		uc, err := getUserContext(r.Context())
		if err != nil {
			s.Logger.Errorf("userGet: Error getting userContext, err: %v, TraceID: %s", err, tid)
			s.writeJsonResponse(w, msgResponse{Msg: "Server error"}, http.StatusInternalServerError)
			return
		}

		u, err := s.Users.Get(r.Context(), uc.userID)
		if err != nil {
			s.writeServiceError(w, "userGet", tid, err)
			return
		}
		s.writeJsonResponse(w, u, http.StatusOK)
	}
}
