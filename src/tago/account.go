package tago

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// DefaultTokenNames are the names the platform gives tokens created alongside a device.
var DefaultTokenNames = []string{"Default", "Generic", "Token #1", "Token #2"}

// AccountAPI is the part of the account API the widget handlers consume.
type AccountAPI interface {
	Info(ctx context.Context) (*AccountInfo, error)
	ListUsers(ctx context.Context, query UserQuery) ([]*User, error)
	CreateUser(ctx context.Context, user *User) error
	EditUser(ctx context.Context, userID string, update UserUpdate) error
	DeleteUser(ctx context.Context, userID string) error
}

// DeviceTokenFinder resolves device tokens through the account.
type DeviceTokenFinder interface {
	TokenByName(ctx context.Context, deviceID string, names ...string) (string, error)
}

// Account is an account API client bound to an account token.
type Account struct {
	token string
	base  string
	http  *httpStack
}

// NewAccount returns an account client. A nil client uses a fresh http.Client
// with the configured timeout.
func NewAccount(cfg Config, token string, client *http.Client) *Account {
	return &Account{
		token: token,
		base:  cfg.APIURL,
		http:  newHTTPStack(client, cfg.HTTPTimeout),
	}
}

// Info returns the account profile.
func (a *Account) Info(ctx context.Context) (*AccountInfo, error) {
	request, err := a.http.newRequest(ctx, "GET", APIURL(a.base, "/info"), a.token, nil)
	if err != nil {
		return nil, err
	}

	info := &AccountInfo{}
	if err := a.http.do(request, info); err != nil {
		return nil, err
	}
	return info, nil
}

// ListUsers returns the run users matching query. No match is an empty slice, not an error.
func (a *Account) ListUsers(ctx context.Context, query UserQuery) ([]*User, error) {
	uri := APIURL(a.base, "/run/users")
	values := url.Values{}
	for field, value := range query.Filter {
		values.Set(fmt.Sprintf("filter[%s]", field), value)
	}
	for _, field := range query.Fields {
		values.Add("fields[]", field)
	}
	if query.Page > 0 {
		values.Set("page", strconv.Itoa(query.Page))
	}
	if query.Amount > 0 {
		values.Set("amount", strconv.Itoa(query.Amount))
	}
	uri.RawQuery = values.Encode()

	request, err := a.http.newRequest(ctx, "GET", uri, a.token, nil)
	if err != nil {
		return nil, err
	}

	users := []*User{}
	if err := a.http.do(request, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser creates a run user.
func (a *Account) CreateUser(ctx context.Context, user *User) error {
	request, err := a.http.newRequest(ctx, "POST", APIURL(a.base, "/run/users"), a.token, user)
	if err != nil {
		return err
	}
	return a.http.do(request, nil)
}

// EditUser overwrites the fields set in update.
func (a *Account) EditUser(ctx context.Context, userID string, update UserUpdate) error {
	request, err := a.http.newRequest(ctx, "PUT", APIURL(a.base, "/run/users/"+url.PathEscape(userID)), a.token, update)
	if err != nil {
		return err
	}
	return a.http.do(request, nil)
}

// DeleteUser removes a run user.
func (a *Account) DeleteUser(ctx context.Context, userID string) error {
	request, err := a.http.newRequest(ctx, "DELETE", APIURL(a.base, "/run/users/"+url.PathEscape(userID)), a.token, nil)
	if err != nil {
		return err
	}
	return a.http.do(request, nil)
}

// DeviceTokens lists the tokens of a device.
func (a *Account) DeviceTokens(ctx context.Context, deviceID string) ([]*DeviceToken, error) {
	uri := APIURL(a.base, "/device/token/"+url.PathEscape(deviceID))
	values := url.Values{}
	values.Set("page", "1")
	values.Set("amount", "10")
	for _, field := range []string{"name", "token", "permission"} {
		values.Add("fields[]", field)
	}
	uri.RawQuery = values.Encode()

	request, err := a.http.newRequest(ctx, "GET", uri, a.token, nil)
	if err != nil {
		return nil, err
	}

	tokens := []*DeviceToken{}
	if err := a.http.do(request, &tokens); err != nil {
		return nil, err
	}
	return tokens, nil
}

// TokenByName returns the device token with the first matching name, falling
// back to the first token the device has.
func (a *Account) TokenByName(ctx context.Context, deviceID string, names ...string) (string, error) {
	tokens, err := a.DeviceTokens(ctx, deviceID)
	if err != nil {
		return "", err
	}
	if len(tokens) == 0 {
		return "", ErrRecordNotFound
	}
	if len(names) == 0 {
		names = DefaultTokenNames
	}

	for _, name := range names {
		for _, t := range tokens {
			if t.Name == name {
				return t.Token, nil
			}
		}
	}

	return tokens[0].Token, nil
}
