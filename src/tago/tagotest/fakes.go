// Package tagotest provides recording doubles for the platform clients.
package tagotest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/maddiesch/tago-user-manager/src/tago"
)

// ValidAccountToken is shaped like a real account token.
const ValidAccountToken = "3293db09-5e26-4313-b95a-5cef9a4cc8c8"

// Edit records an EditUser call.
type Edit struct {
	UserID string
	Update tago.UserUpdate
}

// FakeAccount is an in-memory account API. Users is the remote user store.
type FakeAccount struct {
	Profile  tago.AccountInfo
	Users    []*tago.User
	Tokens   map[string]string
	NoCreate bool

	// CreateCommits stores the user even when CreateErr is returned.
	CreateCommits bool

	InfoErr   error
	ListErr   error
	CreateErr error
	EditErr   error
	DeleteErr error

	Calls   []string
	Queries []tago.UserQuery
	Created []*tago.User
	Edits   []Edit
	Deleted []string

	nextID int
}

// NewFakeAccount returns an account that knows a single device token.
func NewFakeAccount(deviceID, deviceToken string) *FakeAccount {
	return &FakeAccount{
		Profile: tago.AccountInfo{ID: "acc-1", Name: "Test Account", Timezone: "America/Sao_Paulo"},
		Tokens:  map[string]string{deviceID: deviceToken},
	}
}

func (a *FakeAccount) Info(ctx context.Context) (*tago.AccountInfo, error) {
	a.Calls = append(a.Calls, "Info")
	if a.InfoErr != nil {
		return nil, a.InfoErr
	}
	info := a.Profile
	return &info, nil
}

func (a *FakeAccount) ListUsers(ctx context.Context, query tago.UserQuery) ([]*tago.User, error) {
	a.Calls = append(a.Calls, "ListUsers")
	a.Queries = append(a.Queries, query)
	if a.ListErr != nil {
		return nil, a.ListErr
	}

	matches := []*tago.User{}
	for _, u := range a.Users {
		if matchesFilter(u, query.Filter) {
			matches = append(matches, u)
		}
	}
	return matches, nil
}

func matchesFilter(u *tago.User, filter map[string]string) bool {
	for field, value := range filter {
		switch field {
		case "id":
			if u.ID != value {
				return false
			}
		case "email":
			if u.Email != value {
				return false
			}
		case "name":
			if u.Name != value {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func (a *FakeAccount) CreateUser(ctx context.Context, user *tago.User) error {
	a.Calls = append(a.Calls, "CreateUser")
	c := *user
	a.Created = append(a.Created, &c)
	if a.CreateErr != nil && !a.CreateCommits {
		return a.CreateErr
	}
	if a.NoCreate {
		return a.CreateErr
	}
	a.nextID++
	c.ID = fmt.Sprintf("u%d", a.nextID)
	a.Users = append(a.Users, &c)
	return a.CreateErr
}

func (a *FakeAccount) EditUser(ctx context.Context, userID string, update tago.UserUpdate) error {
	a.Calls = append(a.Calls, "EditUser")
	a.Edits = append(a.Edits, Edit{UserID: userID, Update: update})
	return a.EditErr
}

func (a *FakeAccount) DeleteUser(ctx context.Context, userID string) error {
	a.Calls = append(a.Calls, "DeleteUser")
	a.Deleted = append(a.Deleted, userID)
	return a.DeleteErr
}

func (a *FakeAccount) TokenByName(ctx context.Context, deviceID string, names ...string) (string, error) {
	a.Calls = append(a.Calls, "TokenByName")
	token, ok := a.Tokens[deviceID]
	if !ok {
		return "", tago.ErrRecordNotFound
	}
	return token, nil
}

// FakeDevice records every SendData call.
type FakeDevice struct {
	Sent    [][]*tago.Data
	SendErr error
}

func (d *FakeDevice) SendData(ctx context.Context, data ...*tago.Data) error {
	d.Sent = append(d.Sent, data)
	return d.SendErr
}

// FakeConnector hands out the same fakes and remembers the tokens it was given.
type FakeConnector struct {
	FakeAccount *FakeAccount
	FakeDevice  *FakeDevice

	AccountTokens []string
	DeviceTokens  []string
}

func (c *FakeConnector) Account(token string) tago.AccountSession {
	c.AccountTokens = append(c.AccountTokens, token)
	return c.FakeAccount
}

func (c *FakeConnector) Device(token string) tago.DeviceAPI {
	c.DeviceTokens = append(c.DeviceTokens, token)
	return c.FakeDevice
}

// RemoteCalls is the number of calls made against either fake.
func (c *FakeConnector) RemoteCalls() int {
	return len(c.FakeAccount.Calls) + len(c.FakeDevice.Sent)
}

// NewServer starts a stub platform and returns a config pointing at it.
func NewServer(t *testing.T, handler http.HandlerFunc) tago.Config {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return tago.Config{
		APIURL:      server.URL,
		HTTPTimeout: tago.LoadConfig().HTTPTimeout,
	}
}
