package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/deppfellow/ads-api/internal/errs"
	"github.com/deppfellow/ads-api/internal/mocks"
	"github.com/deppfellow/ads-api/internal/model"
	"github.com/deppfellow/ads-api/internal/sqlerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adFixture struct {
	svc   *AdvertisementService
	users *mocks.UserStore
	ads   *mocks.AdvertisementStore
	owner int64
}

func newAdFixture(t *testing.T) adFixture {
	t.Helper()

	users := mocks.NewUserStore()
	owner := &model.User{Username: "user3", Email: "user3@mail.com", Password: "hash"}
	require.NoError(t, users.Create(context.Background(), nil, owner))

	ads := mocks.NewAdvertisementStore(users)
	ads.Now = func() time.Time { return time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC) }

	return adFixture{
		svc:   NewAdvertisementService(&mocks.Transactor{}, ads),
		users: users,
		ads:   ads,
		owner: owner.ID,
	}
}

func (f adFixture) create(t *testing.T) int64 {
	t.Helper()
	res, err := f.svc.CreateAdvertisement(context.Background(), &model.CreateAdvertisementPayload{
		Header:      "Bike",
		Description: "Red, barely used",
		Owner:       ptr(f.owner),
	})
	require.NoError(t, err)
	return res.ID
}

func TestCreateAdvertisement_RoundTrip(t *testing.T) {
	f := newAdFixture(t)

	id := f.create(t)

	got, err := f.svc.GetAdvertisement(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, &model.AdvertisementResponse{
		Header:           "Bike",
		RegistrationTime: "2024-03-01T10:20:30Z",
		Description:      "Red, barely used",
		Owner:            ptr(f.owner),
	}, got)
}

func TestCreateAdvertisement_UnknownOwnerIsServerError(t *testing.T) {
	f := newAdFixture(t)

	_, err := f.svc.CreateAdvertisement(context.Background(), &model.CreateAdvertisementPayload{
		Header:      "Bike",
		Description: "Red",
		Owner:       ptr(int64(404)),
	})

	require.Error(t, err)
	var httpErr *errs.HTTPError
	assert.False(t, errors.As(err, &httpErr))
	assert.Equal(t, sqlerr.ForeignKeyViolation, sqlerr.ErrCode(err))
}

func TestGetAdvertisement_NotFound(t *testing.T) {
	f := newAdFixture(t)

	_, err := f.svc.GetAdvertisement(context.Background(), 77)

	requireHTTPError(t, err, http.StatusNotFound, "Advertisement does not exist")
}

func TestUpdateAdvertisement(t *testing.T) {
	f := newAdFixture(t)
	id := f.create(t)

	_, err := f.svc.UpdateAdvertisement(context.Background(), &model.UpdateAdvertisementPayload{
		ID:               id,
		Header:           ptr("Car"),
		Description:      ptr(""),
		RegistrationTime: ptr("2025-01-02T03:04:05Z"),
	})
	require.NoError(t, err)

	got, err := f.svc.GetAdvertisement(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Car", got.Header)
	assert.Equal(t, "Red, barely used", got.Description)
	assert.Equal(t, "2025-01-02T03:04:05Z", got.RegistrationTime)
	assert.Equal(t, f.owner, *got.Owner)
}

func TestUpdateAdvertisement_NotFound(t *testing.T) {
	f := newAdFixture(t)

	_, err := f.svc.UpdateAdvertisement(context.Background(), &model.UpdateAdvertisementPayload{ID: 5, Header: ptr("Car")})

	requireHTTPError(t, err, http.StatusNotFound, "Advertisement does not exist")
}

func TestDeleteAdvertisement(t *testing.T) {
	f := newAdFixture(t)
	id := f.create(t)

	_, err := f.svc.DeleteAdvertisement(context.Background(), id)
	require.NoError(t, err)

	_, err = f.svc.DeleteAdvertisement(context.Background(), id)
	requireHTTPError(t, err, http.StatusNotFound, "Advertisement does not exist")
}

func TestDeleteUser_OwningAdvertisementsIsServerError(t *testing.T) {
	f := newAdFixture(t)
	f.create(t)

	users := NewUserService(&mocks.Transactor{}, f.users, nil, nil)
	_, err := users.DeleteUser(context.Background(), f.owner)

	require.Error(t, err)
	var httpErr *errs.HTTPError
	assert.False(t, errors.As(err, &httpErr))
	assert.Equal(t, sqlerr.ForeignKeyViolation, sqlerr.ErrCode(err))
	assert.True(t, f.users.Exists(f.owner))
}
