package server

import (
	"context"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/pkg/errors"
	"net/http"
	"runtime/debug"
	"strings"
	"time"
)

const maxRequestBodyBytes = 1 << 16

type userContextKey struct{}
type userContext struct {
	userID string
}

type traceContextKey struct{}
type traceContext struct {
	traceID string
}

func setUserContext(ctx context.Context, uc userContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, uc)
}
func getUserContext(ctx context.Context) (userContext, error) {
	uc, ok := ctx.Value(userContextKey{}).(userContext)
	if !ok {
		return uc, errors.New("failed to get UserContext")
	}
	return uc, nil
}

func setTraceContext(ctx context.Context, tc traceContext) context.Context {
	return context.WithValue(ctx, traceContextKey{}, tc)
}
func getTraceContext(ctx context.Context) traceContext {
	tc, _ := ctx.Value(traceContextKey{}).(traceContext)
	return tc
}

func (s Server) maxBytesMw(next http.Handler) http.Handler {
	return http.MaxBytesHandler(next, maxRequestBodyBytes)
}

func (s Server) loggingMw(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		traceID := uuid.NewString()
		s.Logger.Debugf("loggingMw: New incoming request %s %s from %s, UA: %s, TraceID: %s",
			r.Method, r.URL.Path, r.RemoteAddr, r.UserAgent(), traceID)

		defer func() {
			if re := recover(); re != nil {
				s.Logger.Errorf("loggingMw: Handler crashed, err: %v, TraceID: %s, stack trace:\n%s", re, traceID, debug.Stack())
				s.writeJsonResponse(w, msgResponse{Msg: "Server error"}, http.StatusInternalServerError)
			}
		}()

		tc := traceContext{traceID: traceID}
		next.ServeHTTP(w, r.WithContext(setTraceContext(r.Context(), tc)))

		s.Logger.Tracef("loggingMw: Incoming request %s %s took %dms, TraceID: %s",
			r.Method, r.URL.Path, time.Since(start).Milliseconds(), traceID)
	})
}

// requestToken takes the token from "Authorization: Bearer" or, failing
// that, from the x-auth-token header.
func requestToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return strings.TrimSpace(r.Header.Get("x-auth-token"))
}

func (s Server) authMw(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tid := getTraceContext(r.Context()).traceID
		lt := requestToken(r)
		if lt == "" {
			s.Logger.Debugf("authMw: No token in request, TraceID: %s", tid)
			s.writeJsonResponse(w, msgResponse{Msg: "No token, authorization denied"}, http.StatusUnauthorized)
			return
		}

		userID, err := s.parseToken(lt)
		if err != nil {
			s.Logger.Debugf("authMw: Failed to validate login token, err: %v, TraceID: %s", err, tid)
			s.writeJsonResponse(w, msgResponse{Msg: "Token is not valid"}, http.StatusUnauthorized)
			return
		}

		s.Logger.Debugf("authMw: UserID: %s, TraceID: %s", userID, tid)
		next.ServeHTTP(w, r.WithContext(setUserContext(r.Context(), userContext{userID: userID})))
	})
}

// createToken issues an HS256 token carrying {"user":{"id":userID}}.
func (s Server) createToken(userID string) (string, error) {
	now := time.Now()
	t, err := jwt.NewBuilder().
		Issuer("devicehub").
		Subject(userID).
		IssuedAt(now).
		Expiration(now.Add(s.TokenTTL)).
		Claim("user", map[string]string{"id": userID}).
		Build()
	if err != nil {
		return "", errors.Wrapf(err, "error creating login token for UserID: %s", userID)
	}
	lt, err := jwt.Sign(t, jwt.WithKey(jwa.HS256, s.AuthSecretKey))
	if err != nil {
		return "", errors.Wrapf(err, "error signing login token for UserID: %s", userID)
	}
	return string(lt), nil
}

func (s Server) parseToken(lt string) (string, error) {
	token, err := jwt.Parse([]byte(lt), jwt.WithKey(jwa.HS256, s.AuthSecretKey), jwt.WithValidate(true))
	if err != nil {
		return "", err
	}
	claim, ok := token.Get("user")
	if !ok {
		return "", errors.New("token has no user claim")
	}
	user, ok := claim.(map[string]any)
	if !ok {
		return "", errors.Errorf("token user claim has unexpected type %T", claim)
	}
	id, ok := user["id"].(string)
	if !ok || id == "" {
		return "", errors.New("token user claim has no id")
	}
	return id, nil
}
