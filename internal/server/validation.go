package server

import (
	"encoding/json"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"
)

type fieldError struct {
	Param    string `json:"param,omitempty"`
	Msg      string `json:"msg"`
	Location string `json:"location,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("timestamp", func(fl validator.FieldLevel) bool {
		_, ok := flexTime(fl.Field().String()).Time()
		return ok
	}); err != nil {
		panic(err)
	}
	return v
}

// fieldMessages holds the client facing message per body field, keyed by
// JSON path.
var fieldMessages = map[string]string{
	"companyName":                   "Company name is required",
	"email":                         "Please include a valid email",
	"password":                      "Please enter a password with 6 or more characters",
	"country":                       "Country is required",
	"city":                          "City is required",
	"street":                        "Street is required",
	"postal_code":                   "Postal code is required and must be numeric",
	"contact_name":                  "Name is required",
	"contact_email":                 "A valid email is required",
	"contact_phone":                 "Phone number is required",
	"productName":                   "Product name is required",
	"specification.price":           "Price is required",
	"specification.category":        "Category is required",
	"specification.weight":          "Weight is required",
	"owner.name":                    "Owner name is required",
	"owner.email":                   "Owner email is required",
	"owner.phone":                   "Owner phone is required",
	"owner.address.country":         "Country is required",
	"owner.address.city":            "City is required",
	"owner.address.street":          "Street is required",
	"owner.address.postal_code":     "Postal code is required and must be numeric",
	"owner.payment.credit_card":     "Credit card is required",
	"owner.payment.expiration_date": "Expiration date is required",
	"owner.payment.cvv":             "CVV is required and must be numeric",
	"data":                          "Data is required",
	"timeStamp":                     "Time stamp must be an RFC 3339 time, a YYYY-MM-DD date or epoch milliseconds",
}

// flexString accepts a JSON string or a JSON number, so numeric fields such
// as postal codes can be sent either way.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.Errorf("expected string or number, got %s", b)
	}
	*f = flexString(n.String())
	return nil
}

// flexTime holds a client supplied time as sent: a string, or the literal
// text of any other JSON value. Time parses it; values it cannot parse are
// reported by the "timestamp" validation instead of failing the decode.
type flexTime string

func (f *flexTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexTime(s)
		return nil
	}
	*f = flexTime(strings.TrimSpace(string(b)))
	return nil
}

var flexTimeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// Time accepts epoch milliseconds, RFC 3339 and date-only forms.
func (f flexTime) Time() (time.Time, bool) {
	s := strings.TrimSpace(string(f))
	if s == "" {
		return time.Time{}, false
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), true
	}
	for _, layout := range flexTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// validationErrors renders v's failed constraints as field errors. It
// returns nil when v is valid.
func validationErrors(v any) []fieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return []fieldError{{Msg: err.Error(), Location: "body"}}
	}
	fes := make([]fieldError, 0, len(ves))
	for _, fe := range ves {
		param := fe.Namespace()
		if i := strings.IndexByte(param, '.'); i >= 0 {
			param = param[i+1:]
		}
		msg, ok := fieldMessages[param]
		if !ok {
			msg = param + " is invalid"
		}
		fes = append(fes, fieldError{Param: param, Msg: msg, Location: "body"})
	}
	return fes
}

// decodeBody reads a JSON body into req and validates it, writing the 400
// response itself when either step fails. An empty body decodes as {} so
// missing fields are reported one by one.
func (s Server) decodeBody(w http.ResponseWriter, r *http.Request, handler string, req any) bool {
	tid := getTraceContext(r.Context()).traceID
	if err := json.NewDecoder(r.Body).Decode(req); err != nil && !errors.Is(err, io.EOF) {
		s.Logger.Debugf("%s: Error decoding JSON, err: %v, TraceID: %s", handler, err, tid)
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			s.writeJsonResponse(w, msgResponse{Msg: "Request body too large"}, http.StatusRequestEntityTooLarge)
			return false
		}
		s.writeJsonResponse(w, errorsResponse{Errors: []fieldError{{Msg: "Invalid JSON body", Location: "body"}}}, http.StatusBadRequest)
		return false
	}
	if fes := validationErrors(req); fes != nil {
		s.Logger.Debugf("%s: Validation failed, errors: %+v, TraceID: %s", handler, fes, tid)
		s.writeJsonResponse(w, errorsResponse{Errors: fes}, http.StatusBadRequest)
		return false
	}
	return true
}
