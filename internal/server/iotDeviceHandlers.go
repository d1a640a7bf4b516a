package server

import (
	"devicehub/internal/misc"
	"devicehub/internal/model"
	"github.com/gorilla/mux"
	"net/http"
	"strconv"
	"time"
)

func (s Server) iotDeviceCreate() http.HandlerFunc {
	type address struct {
		Country    string     `json:"country" validate:"required"`
		City       string     `json:"city" validate:"required"`
		Street     string     `json:"street" validate:"required"`
		PostalCode flexString `json:"postal_code" validate:"required,number"`
	}
	type payment struct {
		CreditCard     flexString `json:"credit_card" validate:"required"`
		ExpirationDate string     `json:"expiration_date" validate:"required"`
		CVV            flexString `json:"cvv" validate:"required,number"`
	}
	type owner struct {
		Name    string  `json:"name" validate:"required"`
		Email   string  `json:"email" validate:"required"`
		Phone   string  `json:"phone" validate:"required"`
		Address address `json:"address"`
		Payment payment `json:"payment"`
	}
	type request struct {
		Owner owner `json:"owner"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		tid := getTraceContext(r.Context()).traceID
		uc, err := getUserContext(r.Context())
		if err != nil {
			s.Logger.Errorf("iotDeviceCreate: Error getting userContext, err: %v, TraceID: %s", err, tid)
			s.writeJsonResponse(w, msgResponse{Msg: "Server error"}, http.StatusInternalServerError)
			return
		}

		req := request{}
		if !s.decodeBody(w, r, "iotDeviceCreate", &req) {
			return
		}

		vars := mux.Vars(r)
		d, err := s.Devices.Create(r.Context(), uc.userID, vars["comp_id"], vars["prod_id"], model.Owner{
			Name:  req.Owner.Name,
			Email: req.Owner.Email,
			Phone: req.Owner.Phone,
			Address: model.Address{
				Country:    req.Owner.Address.Country,
				City:       req.Owner.Address.City,
				Street:     req.Owner.Address.Street,
				PostalCode: string(req.Owner.Address.PostalCode),
			},
			Payment: model.Payment{
				CreditCard:     string(req.Owner.Payment.CreditCard),
				ExpirationDate: req.Owner.Payment.ExpirationDate,
				CVV:            string(req.Owner.Payment.CVV),
			},
		})
		if err != nil {
			s.writeServiceError(w, "iotDeviceCreate", tid, err)
			return
		}
		s.Logger.Debugf("iotDeviceCreate: IoTDeviceID: %s, ProductID: %s, TraceID: %s", d.ID.Hex(), d.ProductID.Hex(), tid)
		s.writeJsonResponse(w, d.Redacted(), http.StatusCreated)
	}
}

func (s Server) iotDevicesList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tid := getTraceContext(r.Context()).traceID
		uc, err := getUserContext(r.Context())
		if err != nil {
			s.Logger.Errorf("iotDevicesList: Error getting userContext, err: %v, TraceID: %s", err, tid)
			s.writeJsonResponse(w, msgResponse{Msg: "Server error"}, http.StatusInternalServerError)
			return
		}

		vars := mux.Vars(r)
		ds, err := s.Devices.ListByProduct(r.Context(), uc.userID, vars["comp_id"], vars["prod_id"])
		if err != nil {
			s.writeServiceError(w, "iotDevicesList", tid, err)
			return
		}
		resp := make([]model.IoTDevice, 0, len(ds))
		for _, d := range ds {
			resp = append(resp, d.Redacted())
		}
		s.writeJsonResponse(w, resp, http.StatusOK)
	}
}

func (s Server) iotDeviceGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tid := getTraceContext(r.Context()).traceID
		uc, err := getUserContext(r.Context())
		if err != nil {
			s.Logger.Errorf("iotDeviceGet: Error getting userContext, err: %v, TraceID: %s", err, tid)
			s.writeJsonResponse(w, msgResponse{Msg: "Server error"}, http.StatusInternalServerError)
			return
		}

		vars := mux.Vars(r)
		d, err := s.Devices.Get(r.Context(), uc.userID, vars["comp_id"], vars["prod_id"], vars["iot_id"])
		if err != nil {
			s.writeServiceError(w, "iotDeviceGet", tid, err)
			return
		}
		s.writeJsonResponse(w, d.Redacted(), http.StatusOK)
	}
}

func (s Server) iotUpdateAdd() http.HandlerFunc {
	type request struct {
		Data      string   `json:"data" validate:"required"`
		TimeStamp flexTime `json:"timeStamp" validate:"omitempty,timestamp"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		tid := getTraceContext(r.Context()).traceID
		uc, err := getUserContext(r.Context())
		if err != nil {
			s.Logger.Errorf("iotUpdateAdd: Error getting userContext, err: %v, TraceID: %s", err, tid)
			s.writeJsonResponse(w, msgResponse{Msg: "Server error"}, http.StatusInternalServerError)
			return
		}

		req := request{}
		if !s.decodeBody(w, r, "iotUpdateAdd", &req) {
			return
		}

		var reportedAt *time.Time
		if t, ok := req.TimeStamp.Time(); ok {
			reportedAt = &t
		}

		vars := mux.Vars(r)
		s.Logger.Debugf("iotUpdateAdd: IoTDeviceID: %s, data: %q, TraceID: %s", vars["iot_id"], misc.StringLimit(req.Data, 64), tid)
		d, err := s.Updates.Append(r.Context(), uc.userID, vars["comp_id"], vars["prod_id"], vars["iot_id"], req.Data, reportedAt)
		if err != nil {
			s.writeServiceError(w, "iotUpdateAdd", tid, err)
			return
		}
		s.writeJsonResponse(w, d.Redacted(), http.StatusOK)
	}
}

func (s Server) iotUpdatesRecent() http.HandlerFunc {
	type response struct {
		Updates []model.Update `json:"updates"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		tid := getTraceContext(r.Context()).traceID
		uc, err := getUserContext(r.Context())
		if err != nil {
			s.Logger.Errorf("iotUpdatesRecent: Error getting userContext, err: %v, TraceID: %s", err, tid)
			s.writeJsonResponse(w, msgResponse{Msg: "Server error"}, http.StatusInternalServerError)
			return
		}

		vars := mux.Vars(r)
		n, err := strconv.Atoi(vars["num_of_updates"])
		if err != nil || n < 0 {
			s.Logger.Debugf("iotUpdatesRecent: Invalid num_of_updates: %q, TraceID: %s", vars["num_of_updates"], tid)
			s.writeJsonResponse(w, errorsResponse{Errors: []fieldError{{
				Param:    "num_of_updates",
				Msg:      "Number of updates must be a non-negative integer",
				Location: "params",
			}}}, http.StatusBadRequest)
			return
		}

		us, err := s.Updates.Recent(r.Context(), uc.userID, vars["comp_id"], vars["prod_id"], vars["iot_id"], n)
		if err != nil {
			s.writeServiceError(w, "iotUpdatesRecent", tid, err)
			return
		}
		if us == nil {
			us = []model.Update{}
		}
		s.writeJsonResponse(w, response{Updates: us}, http.StatusOK)
	}
}
