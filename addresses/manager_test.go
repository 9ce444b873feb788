package addresses

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pizzeria-go/models"
	"pizzeria-go/remote"
)

// fakeService is an in-memory AddressService preserving insertion order.
type fakeService struct {
	addrs []models.Address
}

func (f *fakeService) ListByUser(_ context.Context, userID string) ([]models.Address, error) {
	var out []models.Address
	for _, a := range f.addrs {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeService) Insert(_ context.Context, addr models.Address) (models.Address, error) {
	addr.ID = primitive.NewObjectID()
	f.addrs = append(f.addrs, addr)
	return addr, nil
}

func (f *fakeService) Update(_ context.Context, addr models.Address) error {
	for i := range f.addrs {
		if f.addrs[i].ID == addr.ID {
			isDefault := f.addrs[i].IsDefault
			f.addrs[i] = addr
			f.addrs[i].IsDefault = isDefault
			return nil
		}
	}
	return remote.ErrNotFound
}

func (f *fakeService) Delete(_ context.Context, addressID string) error {
	for i := range f.addrs {
		if f.addrs[i].ID.Hex() == addressID {
			f.addrs = append(f.addrs[:i], f.addrs[i+1:]...)
			return nil
		}
	}
	return remote.ErrNotFound
}

func (f *fakeService) ClearDefaults(_ context.Context, userID string) error {
	for i := range f.addrs {
		if f.addrs[i].UserID == userID {
			f.addrs[i].IsDefault = false
		}
	}
	return nil
}

func (f *fakeService) MarkDefault(_ context.Context, addressID string) error {
	for i := range f.addrs {
		if f.addrs[i].ID.Hex() == addressID {
			f.addrs[i].IsDefault = true
			return nil
		}
	}
	return remote.ErrNotFound
}

func validAddress(userID string) models.Address {
	return models.Address{
		UserID:       userID,
		Neighborhood: "Valle del Lili",
		PropertyType: "Casa",
		Street:       "Calle 123 #45-67",
		Municipality: "Cali",
		City:         "Valle del Cauca",
		Phone:        "300 123 4567",
	}
}

func TestCreateValidation(t *testing.T) {
	m := NewManager(&fakeService{})

	tests := []struct {
		name   string
		mutate func(*models.Address)
		field  string
	}{
		{"missing city", func(a *models.Address) { a.City = "" }, "city"},
		{"missing municipality", func(a *models.Address) { a.Municipality = " " }, "municipality"},
		{"short phone", func(a *models.Address) { a.Phone = "123 456" }, "phone"},
		{"short street", func(a *models.Address) { a.Street = "Cll 1" }, "address"},
		{"missing neighborhood", func(a *models.Address) { a.Neighborhood = "" }, "neighborhood"},
		{"missing property type", func(a *models.Address) { a.PropertyType = "" }, "property_type"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			addr := validAddress("u1")
			tc.mutate(&addr)
			_, err := m.Create(context.Background(), addr)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestCreateFirstAddressBecomesDefault(t *testing.T) {
	svc := &fakeService{}
	m := NewManager(svc)

	first, err := m.Create(context.Background(), validAddress("u1"))
	require.NoError(t, err)
	assert.True(t, first.IsDefault)

	second, err := m.Create(context.Background(), validAddress("u1"))
	require.NoError(t, err)
	assert.False(t, second.IsDefault)
}

func TestCreateExplicitDefaultDisplacesCurrent(t *testing.T) {
	svc := &fakeService{}
	m := NewManager(svc)

	first, err := m.Create(context.Background(), validAddress("u1"))
	require.NoError(t, err)

	requested := validAddress("u1")
	requested.IsDefault = true
	second, err := m.Create(context.Background(), requested)
	require.NoError(t, err)

	defaults := 0
	for _, a := range svc.addrs {
		if a.IsDefault {
			defaults++
			assert.Equal(t, second.ID, a.ID)
		}
	}
	assert.Equal(t, 1, defaults)
	_ = first
}

func TestSetDefaultKeepsSingleDefault(t *testing.T) {
	svc := &fakeService{}
	m := NewManager(svc)

	a, err := m.Create(context.Background(), validAddress("u1"))
	require.NoError(t, err)
	b, err := m.Create(context.Background(), validAddress("u1"))
	require.NoError(t, err)

	require.NoError(t, m.SetDefault(context.Background(), "u1", b.ID.Hex()))

	defaults := 0
	for _, addr := range svc.addrs {
		if addr.IsDefault {
			defaults++
			assert.Equal(t, b.ID, addr.ID)
		}
	}
	assert.Equal(t, 1, defaults)
	_ = a
}

func TestDelete(t *testing.T) {
	svc := &fakeService{}
	m := NewManager(svc)

	a, err := m.Create(context.Background(), validAddress("u1"))
	require.NoError(t, err)
	require.NoError(t, m.Delete(context.Background(), a.ID.Hex()))
	assert.ErrorIs(t, m.Delete(context.Background(), a.ID.Hex()), remote.ErrNotFound)
}

func TestTemporaryAddressIsTagged(t *testing.T) {
	tmp := Temporary(models.Session{UserID: "u1", Phone: "300 123 4567"})
	assert.True(t, strings.HasPrefix(tmp.ID, "temp-"))
	assert.Equal(t, "300 123 4567", tmp.Phone)
}
