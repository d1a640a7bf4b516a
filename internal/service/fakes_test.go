package service

import (
	"context"
	"devicehub/internal/locker"
	"devicehub/internal/model"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var errDuplicateKey = mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}}}

// memStore is an in-memory stand-in for database.Database.
type memStore struct {
	mu        sync.Mutex
	users     []model.User
	companies []model.Company
	products  []model.Product
	devices   []model.IoTDevice
}

func newMemStore() *memStore {
	return &memStore{}
}

func cloneCompany(c model.Company) model.Company {
	c.Address = append([]model.Address{}, c.Address...)
	c.Contacts = append([]model.Contact{}, c.Contacts...)
	return c
}

func cloneDevice(d model.IoTDevice) model.IoTDevice {
	d.Updates = append([]model.Update{}, d.Updates...)
	return d
}

func (m *memStore) UserInsert(_ context.Context, u model.User) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return model.User{}, errDuplicateKey
		}
	}
	u.ID = primitive.NewObjectID()
	u.Date = primitive.NewDateTimeFromTime(fixedNow)
	m.users = append(m.users, u)
	return u, nil
}

func (m *memStore) UserFindByEmail(_ context.Context, email string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, errors.Wrapf(mongo.ErrNoDocuments, "error finding User with email: %s", email)
}

func (m *memStore) UserFindByID(_ context.Context, id primitive.ObjectID) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, errors.Wrapf(mongo.ErrNoDocuments, "error finding User with ID: %s", id.Hex())
}

func (m *memStore) CompaniesFindAll(context.Context) ([]model.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cs := []model.Company{}
	for _, c := range m.companies {
		cs = append(cs, cloneCompany(c))
	}
	return cs, nil
}

func (m *memStore) companyIndex(userID primitive.ObjectID) int {
	for i, c := range m.companies {
		if c.User == userID {
			return i
		}
	}
	return -1
}

func (m *memStore) CompanyFindByUser(_ context.Context, userID primitive.ObjectID) (model.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.companyIndex(userID)
	if i < 0 {
		return model.Company{}, errors.Wrapf(mongo.ErrNoDocuments, "error finding Company for UserID: %s", userID.Hex())
	}
	return cloneCompany(m.companies[i]), nil
}

func (m *memStore) CompanyUpsert(_ context.Context, userID primitive.ObjectID, name string) (model.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.companyIndex(userID)
	if i < 0 {
		m.companies = append(m.companies, model.Company{
			ID:       primitive.NewObjectID(),
			User:     userID,
			Address:  []model.Address{},
			Contacts: []model.Contact{},
		})
		i = len(m.companies) - 1
	}
	m.companies[i].Company = name
	return cloneCompany(m.companies[i]), nil
}

func (m *memStore) CompanyAddressAdd(_ context.Context, userID primitive.ObjectID, a model.Address) (model.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.companyIndex(userID)
	if i < 0 {
		return model.Company{}, errors.Wrapf(mongo.ErrNoDocuments, "error adding Address to Company for UserID: %s", userID.Hex())
	}
	m.companies[i].Address = append([]model.Address{a}, m.companies[i].Address...)
	return cloneCompany(m.companies[i]), nil
}

func (m *memStore) CompanyContactAdd(_ context.Context, userID primitive.ObjectID, ct model.Contact) (model.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.companyIndex(userID)
	if i < 0 {
		return model.Company{}, errors.Wrapf(mongo.ErrNoDocuments, "error adding Contact to Company for UserID: %s", userID.Hex())
	}
	m.companies[i].Contacts = append([]model.Contact{ct}, m.companies[i].Contacts...)
	return cloneCompany(m.companies[i]), nil
}

func sameProduct(a, b model.Product) bool {
	return a.ProductName == b.ProductName && a.Specification == b.Specification && a.Company == b.Company
}

func (m *memStore) ProductFindExisting(_ context.Context, p model.Product) (model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.products {
		if sameProduct(existing, p) {
			return existing, nil
		}
	}
	return model.Product{}, errors.Wrapf(mongo.ErrNoDocuments, "error finding existing Product: %+v", p)
}

func (m *memStore) ProductInsert(_ context.Context, p model.Product) (model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.products {
		if sameProduct(existing, p) {
			return model.Product{}, errDuplicateKey
		}
	}
	p.ID = primitive.NewObjectID()
	m.products = append(m.products, p)
	return p, nil
}

func (m *memStore) ProductsFindByCompany(_ context.Context, companyID primitive.ObjectID) ([]model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ps := []model.Product{}
	for _, p := range m.products {
		if p.Company == companyID {
			ps = append(ps, p)
		}
	}
	return ps, nil
}

func (m *memStore) ProductFindByID(_ context.Context, id primitive.ObjectID) (model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, errors.Wrapf(mongo.ErrNoDocuments, "error finding Product with ID: %s", id.Hex())
}

func (m *memStore) IoTDeviceInsert(_ context.Context, d model.IoTDevice) (model.IoTDevice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.ID = primitive.NewObjectID()
	if d.Updates == nil {
		d.Updates = []model.Update{}
	}
	m.devices = append(m.devices, cloneDevice(d))
	return d, nil
}

func (m *memStore) IoTDevicesFindByProduct(_ context.Context, productID primitive.ObjectID) ([]model.IoTDevice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ds := []model.IoTDevice{}
	for _, d := range m.devices {
		if d.ProductID == productID {
			ds = append(ds, cloneDevice(d))
		}
	}
	return ds, nil
}

func (m *memStore) IoTDeviceFindByID(_ context.Context, id primitive.ObjectID) (model.IoTDevice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.devices {
		if d.ID == id {
			return cloneDevice(d), nil
		}
	}
	return model.IoTDevice{}, errors.Wrapf(mongo.ErrNoDocuments, "error finding IoTDevice with ID: %s", id.Hex())
}

func (m *memStore) IoTDeviceUpdateAdd(_ context.Context, id primitive.ObjectID, u model.Update) (model.IoTDevice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, d := range m.devices {
		if d.ID == id {
			m.devices[i].Updates = append([]model.Update{u}, d.Updates...)
			return cloneDevice(m.devices[i]), nil
		}
	}
	return model.IoTDevice{}, errors.Wrapf(mongo.ErrNoDocuments, "error adding Update to IoTDevice with ID: %s", id.Hex())
}

func (m *memStore) companyCount(userID primitive.ObjectID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.companies {
		if c.User == userID {
			n++
		}
	}
	return n
}

func (m *memStore) productCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.products)
}

type recordingLocker struct {
	mu       sync.Mutex
	keys     []string
	released int
}

func (l *recordingLocker) Lock(_ context.Context, key string) (locker.Unlock, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.keys = append(l.keys, key)
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.released++
	}, nil
}

// fixture is a user who administers a company, plus a second, unrelated
// company owned by someone else.
type fixture struct {
	store        *memStore
	ownership    Ownership
	userID       string
	company      model.Company
	otherUserID  string
	otherCompany model.Company
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := newMemStore()

	user, err := store.UserInsert(ctx, model.User{CompanyName: "Acme", Email: "a@b.com"})
	require.NoError(t, err)
	company, err := store.CompanyUpsert(ctx, user.ID, "Acme")
	require.NoError(t, err)

	other, err := store.UserInsert(ctx, model.User{CompanyName: "Globex", Email: "g@x.com"})
	require.NoError(t, err)
	otherCompany, err := store.CompanyUpsert(ctx, other.ID, "Globex")
	require.NoError(t, err)

	return &fixture{
		store:        store,
		ownership:    Ownership{Companies: store, Products: store, Devices: store},
		userID:       user.ID.Hex(),
		company:      company,
		otherUserID:  other.ID.Hex(),
		otherCompany: otherCompany,
	}
}

func (f *fixture) addProduct(t *testing.T, companyID primitive.ObjectID, name string) model.Product {
	t.Helper()
	p, err := f.store.ProductInsert(context.Background(), model.Product{
		ProductName:   name,
		Specification: model.Specification{Price: "10", Category: "sensor", Weight: "0.2"},
		Company:       companyID,
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) addDevice(t *testing.T, productID primitive.ObjectID, updates ...model.Update) model.IoTDevice {
	t.Helper()
	d, err := f.store.IoTDeviceInsert(context.Background(), model.IoTDevice{
		ProductID: productID,
		Owner:     testOwner(),
		Updates:   updates,
	})
	require.NoError(t, err)
	return d
}

func testOwner() model.Owner {
	return model.Owner{
		Name:  "Jane Doe",
		Email: "jane@example.com",
		Phone: "555-0100",
		Address: model.Address{
			Country:    "US",
			City:       "NYC",
			Street:     "5th Ave",
			PostalCode: "10001",
		},
		Payment: model.Payment{
			CreditCard:     "4111111111111111",
			ExpirationDate: "12/29",
			CVV:            "123",
		},
	}
}
