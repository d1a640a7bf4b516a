package server

import (
	"github.com/gorilla/mux"
	"net/http"
)

func (s Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.loggingMw, s.maxBytesMw)
	r.NotFoundHandler = s.loggingMw(s.notFoundHandler())

	r.HandleFunc("/", s.index()).Methods(http.MethodGet)

	r.HandleFunc("/users", s.userRegister()).Methods(http.MethodPost)
	r.HandleFunc("/login", s.userLogin()).Methods(http.MethodPost)
	r.Handle("/login", s.authMw(s.userGet())).Methods(http.MethodGet)

	r.HandleFunc("/companies", s.companiesList()).Methods(http.MethodGet)
	r.Handle("/companies", s.authMw(s.companyUpsert())).Methods(http.MethodPost)
	r.Handle("/companies/address", s.authMw(s.companyAddressAdd())).Methods(http.MethodPut)
	r.Handle("/companies/contacts", s.authMw(s.companyContactAdd())).Methods(http.MethodPut)
	r.HandleFunc("/companies/{user_id}", s.companyGetByUser()).Methods(http.MethodGet)

	productAPI := r.PathPrefix("/companies/{comp_id}/products").Subrouter()
	productAPI.Use(s.authMw)
	productAPI.HandleFunc("", s.productCreate()).Methods(http.MethodPost)
	productAPI.HandleFunc("", s.productsList()).Methods(http.MethodGet)
	productAPI.HandleFunc("/{prod_id}", s.productGet()).Methods(http.MethodGet)

	deviceAPI := productAPI.PathPrefix("/{prod_id}/iotDevices").Subrouter()
	deviceAPI.HandleFunc("", s.iotDeviceCreate()).Methods(http.MethodPost)
	deviceAPI.HandleFunc("", s.iotDevicesList()).Methods(http.MethodGet)
	deviceAPI.HandleFunc("/{iot_id}", s.iotDeviceGet()).Methods(http.MethodGet)
	deviceAPI.HandleFunc("/{iot_id}/iotUpdates", s.iotUpdateAdd()).Methods(http.MethodPut)
	deviceAPI.HandleFunc("/{iot_id}/iotUpdates/{num_of_updates}", s.iotUpdatesRecent()).Methods(http.MethodGet)

	return r
}
