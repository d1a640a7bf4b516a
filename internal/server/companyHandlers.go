package server

import (
	"devicehub/internal/model"
	"github.com/gorilla/mux"
	"net/http"
)

func (s Server) companiesList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tid := getTraceContext(r.Context()).traceID
		cs, err := s.Companies.List(r.Context())
		if err != nil {
			s.writeServiceError(w, "companiesList", tid, err)
			return
		}
		s.writeJsonResponse(w, cs, http.StatusOK)
	}
}

// companyUpsert names the caller's company after the companyName given at
// registration, creating the company on first use.
func (s Server) companyUpsert() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tid := getTraceContext(r.Context()).traceID
		uc, err := getUserContext(r.Context())
		if err != nil {
			s.Logger.Errorf("companyUpsert: Error getting userContext, err: %v, TraceID: %s", err, tid)
			s.writeJsonResponse(w, msgResponse{Msg: "Server error"}, http.StatusInternalServerError)
			return
		}

		u, err := s.Users.Get(r.Context(), uc.userID)
		if err != nil {
			s.writeServiceError(w, "companyUpsert", tid, err)
			return
		}

		c, err := s.Companies.UpsertForUser(r.Context(), uc.userID, u.CompanyName)
		if err != nil {
			s.writeServiceError(w, "companyUpsert", tid, err)
			return
		}
		s.Logger.Debugf("companyUpsert: CompanyID: %s, UserID: %s, TraceID: %s", c.ID.Hex(), uc.userID, tid)
		s.writeJsonResponse(w, c, http.StatusOK)
	}
}

func (s Server) companyGetByUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tid := getTraceContext(r.Context()).traceID
		c, err := s.Companies.GetByUser(r.Context(), mux.Vars(r)["user_id"])
		if err != nil {
			s.writeServiceError(w, "companyGetByUser", tid, err)
			return
		}
		s.writeJsonResponse(w, c, http.StatusOK)
	}
}

func (s Server) companyAddressAdd() http.HandlerFunc {
	type request struct {
		Country    string     `json:"country" validate:"required"`
		City       string     `json:"city" validate:"required"`
		Street     string     `json:"street" validate:"required"`
		PostalCode flexString `json:"postal_code" validate:"required,number"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		tid := getTraceContext(r.Context()).traceID
		uc, err := getUserContext(r.Context())
		if err != nil {
			s.Logger.Errorf("companyAddressAdd: Error getting userContext, err: %v, TraceID: %s", err, tid)
			s.writeJsonResponse(w, msgResponse{Msg: "Server error"}, http.StatusInternalServerError)
			return
		}

		req := request{}
		if !s.decodeBody(w, r, "companyAddressAdd", &req) {
			return
		}

		c, err := s.Companies.AddAddress(r.Context(), uc.userID, model.Address{
			Country:    req.Country,
			City:       req.City,
			Street:     req.Street,
			PostalCode: string(req.PostalCode),
		})
		if err != nil {
			s.writeServiceError(w, "companyAddressAdd", tid, err)
			return
		}
		s.writeJsonResponse(w, c, http.StatusOK)
	}
}

func (s Server) companyContactAdd() http.HandlerFunc {
	type request struct {
		Name  string `json:"contact_name" validate:"required"`
		Email string `json:"contact_email" validate:"required,email"`
		Phone string `json:"contact_phone" validate:"required"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		tid := getTraceContext(r.Context()).traceID
		uc, err := getUserContext(r.Context())
		if err != nil {
			s.Logger.Errorf("companyContactAdd: Error getting userContext, err: %v, TraceID: %s", err, tid)
			s.writeJsonResponse(w, msgResponse{Msg: "Server error"}, http.StatusInternalServerError)
			return
		}

		req := request{}
		if !s.decodeBody(w, r, "companyContactAdd", &req) {
			return
		}

		c, err := s.Companies.AddContact(r.Context(), uc.userID, model.Contact{
			Name:  req.Name,
			Email: req.Email,
			Phone: req.Phone,
		})
		if err != nil {
			s.writeServiceError(w, "companyContactAdd", tid, err)
			return
		}
		s.writeJsonResponse(w, c, http.StatusOK)
	}
}
