package server

import (
	"devicehub/internal/model"
	"github.com/gorilla/mux"
	"net/http"
)

func (s Server) productCreate() http.HandlerFunc {
	type specification struct {
		Price    flexString `json:"price" validate:"required"`
		Category string     `json:"category" validate:"required"`
		Weight   flexString `json:"weight" validate:"required"`
	}
	type request struct {
		ProductName   string        `json:"productName" validate:"required"`
		Specification specification `json:"specification"`
	}
	type existsResponse struct {
		Msg     string        `json:"msg"`
		Product model.Product `json:"product"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		tid := getTraceContext(r.Context()).traceID
		uc, err := getUserContext(r.Context())
		if err != nil {
			s.Logger.Errorf("productCreate: Error getting userContext, err: %v, TraceID: %s", err, tid)
			s.writeJsonResponse(w, msgResponse{Msg: "Server error"}, http.StatusInternalServerError)
			return
		}

		req := request{}
		if !s.decodeBody(w, r, "productCreate", &req) {
			return
		}

		p, created, err := s.Products.Create(r.Context(), uc.userID, mux.Vars(r)["comp_id"], req.ProductName, model.Specification{
			Price:    string(req.Specification.Price),
			Category: req.Specification.Category,
			Weight:   string(req.Specification.Weight),
		})
		if err != nil {
			s.writeServiceError(w, "productCreate", tid, err)
			return
		}
		if !created {
			s.Logger.Debugf("productCreate: Product already exists, ProductID: %s, TraceID: %s", p.ID.Hex(), tid)
			s.writeJsonResponse(w, existsResponse{Msg: "This exact product already exists", Product: p}, http.StatusOK)
			return
		}
		s.writeJsonResponse(w, p, http.StatusCreated)
	}
}

func (s Server) productsList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tid := getTraceContext(r.Context()).traceID
		uc, err := getUserContext(r.Context())
		if err != nil {
			s.Logger.Errorf("productsList: Error getting userContext, err: %v, TraceID: %s", err, tid)
			s.writeJsonResponse(w, msgResponse{Msg: "Server error"}, http.StatusInternalServerError)
			return
		}

		ps, err := s.Products.ListByCompany(r.Context(), uc.userID, mux.Vars(r)["comp_id"])
		if err != nil {
			s.writeServiceError(w, "productsList", tid, err)
			return
		}
		s.writeJsonResponse(w, ps, http.StatusOK)
	}
}

func (s Server) productGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tid := getTraceContext(r.Context()).traceID
		uc, err := getUserContext(r.Context())
		if err != nil {
			s.Logger.Errorf("productGet: Error getting userContext, err: %v, TraceID: %s", err, tid)
			s.writeJsonResponse(w, msgResponse{Msg: "Server error"}, http.StatusInternalServerError)
			return
		}

		vars := mux.Vars(r)
		p, err := s.Products.Get(r.Context(), uc.userID, vars["comp_id"], vars["prod_id"])
		if err != nil {
			s.writeServiceError(w, "productGet", tid, err)
			return
		}
		s.writeJsonResponse(w, p, http.StatusOK)
	}
}
