package server

import (
	"context"
	applog "devicehub/internal/logger"
	"devicehub/internal/model"
	"devicehub/internal/service"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUsers struct {
	mu       sync.Mutex
	users    map[string]model.User
	password map[string]string
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[string]model.User{}, password: map[string]string{}}
}

func (f *fakeUsers) Register(_ context.Context, companyName string, email string, password string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return model.User{}, service.ErrUserExists
		}
	}
	u := model.User{
		ID:          primitive.NewObjectID(),
		CompanyName: companyName,
		Email:       email,
		Password:    []byte("$2a$10$hash"),
	}
	f.users[u.ID.Hex()] = u
	f.password[u.ID.Hex()] = password
	return u, nil
}

func (f *fakeUsers) Authenticate(_ context.Context, email string, password string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, u := range f.users {
		if u.Email == email && f.password[id] == password {
			return u, nil
		}
	}
	return model.User{}, service.ErrInvalidCredentials
}

func (f *fakeUsers) Get(_ context.Context, userID string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return model.User{}, &service.NotFoundError{Entity: "User", ID: userID}
	}
	return u, nil
}

type fakeCompanies struct {
	mu        sync.Mutex
	companies map[string]model.Company
	err       error
}

func newFakeCompanies() *fakeCompanies {
	return &fakeCompanies{companies: map[string]model.Company{}}
}

func (f *fakeCompanies) UpsertForUser(_ context.Context, userID string, name string) (model.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return model.Company{}, f.err
	}
	c, ok := f.companies[userID]
	if !ok {
		uid, _ := primitive.ObjectIDFromHex(userID)
		c = model.Company{ID: primitive.NewObjectID(), User: uid, Address: []model.Address{}, Contacts: []model.Contact{}}
	}
	c.Company = name
	f.companies[userID] = c
	return c, nil
}

func (f *fakeCompanies) List(context.Context) ([]model.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	cs := []model.Company{}
	for _, c := range f.companies {
		cs = append(cs, c)
	}
	return cs, nil
}

func (f *fakeCompanies) GetByUser(_ context.Context, userID string) (model.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.companies[userID]
	if !ok {
		return model.Company{}, &service.NotFoundError{Entity: "Company", ID: userID}
	}
	return c, nil
}

func (f *fakeCompanies) AddAddress(_ context.Context, userID string, a model.Address) (model.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.companies[userID]
	if !ok {
		return model.Company{}, &service.NotFoundError{Entity: "Company", ID: userID}
	}
	c.Address = append([]model.Address{a}, c.Address...)
	f.companies[userID] = c
	return c, nil
}

func (f *fakeCompanies) AddContact(_ context.Context, userID string, ct model.Contact) (model.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.companies[userID]
	if !ok {
		return model.Company{}, &service.NotFoundError{Entity: "Company", ID: userID}
	}
	c.Contacts = append([]model.Contact{ct}, c.Contacts...)
	f.companies[userID] = c
	return c, nil
}

type fakeProducts struct {
	product   model.Product
	created   bool
	err       error
	companyID string
	spec      model.Specification
}

func (f *fakeProducts) Create(
	_ context.Context, _ string, companyID string, name string, spec model.Specification,
) (model.Product, bool, error) {
	f.companyID = companyID
	f.spec = spec
	if f.err != nil {
		return model.Product{}, false, f.err
	}
	p := f.product
	p.ProductName = name
	p.Specification = spec
	return p, f.created, nil
}

func (f *fakeProducts) ListByCompany(_ context.Context, _ string, companyID string) ([]model.Product, error) {
	f.companyID = companyID
	if f.err != nil {
		return nil, f.err
	}
	return []model.Product{f.product}, nil
}

func (f *fakeProducts) Get(_ context.Context, _ string, companyID string, _ string) (model.Product, error) {
	f.companyID = companyID
	if f.err != nil {
		return model.Product{}, f.err
	}
	return f.product, nil
}

type fakeDevices struct {
	device model.IoTDevice
	owner  model.Owner
	err    error
	panics bool
}

func (f *fakeDevices) Create(_ context.Context, _ string, _ string, _ string, owner model.Owner) (model.IoTDevice, error) {
	f.owner = owner
	if f.err != nil {
		return model.IoTDevice{}, f.err
	}
	d := f.device
	d.Owner = owner
	return d, nil
}

func (f *fakeDevices) ListByProduct(context.Context, string, string, string) ([]model.IoTDevice, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []model.IoTDevice{f.device}, nil
}

func (f *fakeDevices) Get(context.Context, string, string, string, string) (model.IoTDevice, error) {
	if f.panics {
		panic("device store exploded")
	}
	if f.err != nil {
		return model.IoTDevice{}, f.err
	}
	return f.device, nil
}

type fakeUpdates struct {
	device     model.IoTDevice
	updates    []model.Update
	err        error
	data       string
	reportedAt *time.Time
	count      int
}

func (f *fakeUpdates) Append(
	_ context.Context, _ string, _ string, _ string, _ string, data string, reportedAt *time.Time,
) (model.IoTDevice, error) {
	f.data = data
	f.reportedAt = reportedAt
	if f.err != nil {
		return model.IoTDevice{}, f.err
	}
	return f.device, nil
}

func (f *fakeUpdates) Recent(_ context.Context, _ string, _ string, _ string, _ string, count int) ([]model.Update, error) {
	f.count = count
	if f.err != nil {
		return nil, f.err
	}
	if count > len(f.updates) {
		count = len(f.updates)
	}
	return f.updates[:count], nil
}

type testEnv struct {
	srv       Server
	handler   http.Handler
	users     *fakeUsers
	companies *fakeCompanies
	products  *fakeProducts
	devices   *fakeDevices
	updates   *fakeUpdates
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	key, err := jwk.FromRaw([]byte("test-secret"))
	require.NoError(t, err)

	env := &testEnv{
		users:     newFakeUsers(),
		companies: newFakeCompanies(),
		products:  &fakeProducts{},
		devices:   &fakeDevices{},
		updates:   &fakeUpdates{},
	}
	env.srv = Server{
		Users:         env.users,
		Companies:     env.companies,
		Products:      env.products,
		Devices:       env.devices,
		Updates:       env.updates,
		Logger:        applog.NewLogger(applog.LevelOff, io.Discard, io.Discard),
		AuthSecretKey: key,
		TokenTTL:      time.Hour,
	}
	env.handler = env.srv.Router()
	return env
}

// registered creates a user and returns its id and a valid token.
func (env *testEnv) registered(t *testing.T) (string, string) {
	t.Helper()
	u, err := env.users.Register(context.Background(), "Acme", "a@b.com", "secret1")
	require.NoError(t, err)
	lt, err := env.srv.createToken(u.ID.Hex())
	require.NoError(t, err)
	return u.ID.Hex(), lt
}

func (env *testEnv) do(t *testing.T, method string, path string, body string, token string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	return rec
}
