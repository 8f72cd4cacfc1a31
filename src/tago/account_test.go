package tago

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testingAccountToken   = "3293db09-5e26-4313-b95a-5cef9a4cc8c8"
	testingResponseInfo   = `{"status":true,"result":{"id":"5f5931ddd70605002e41a649","name":"Testy","email":"test@email.test","timezone":"America/New_York","language":"en"}}`
	testingResponseUsers  = `{"status":true,"result":[{"id":"6011a8f6ac5e3b0011e2ee2c","name":"Ann","email":"ann@x.com","timezone":"America/New_York","active":true}]}`
	testingResponseTokens = `{"status":true,"result":[{"name":"Custom","token":"c0ffee00-0000-0000-0000-000000000001","permission":"full"},{"name":"Default","token":"c0ffee00-0000-0000-0000-000000000002","permission":"full"}]}`
	testingResponseOK     = `{"status":true,"result":"Successfully Updated"}`
	testingResponseDenied = `{"status":false,"message":"Authorization denied"}`
)

func newMockedAccount() (*Account, *httpmock.MockTransport) {
	transport := httpmock.NewMockTransport()
	cfg := Config{APIURL: "https://api.tago.test", HTTPTimeout: defaultHTTPTimeout}
	return NewAccount(cfg, testingAccountToken, &http.Client{Transport: transport}), transport
}

func TestAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("Info", func(t *testing.T) {
		account, transport := newMockedAccount()
		transport.RegisterResponder("GET", "https://api.tago.test/info", func(r *http.Request) (*http.Response, error) {
			assert.Equal(t, testingAccountToken, r.Header.Get("Authorization"))
			return httpmock.NewStringResponse(http.StatusOK, testingResponseInfo), nil
		})

		info, err := account.Info(ctx)

		require.NoError(t, err)
		assert.Equal(t, "America/New_York", info.Timezone)
	})

	t.Run("ListUsers", func(t *testing.T) {
		t.Run("golden path", func(t *testing.T) {
			account, transport := newMockedAccount()
			transport.RegisterResponder("GET", "https://api.tago.test/run/users", func(r *http.Request) (*http.Response, error) {
				assert.Equal(t, "ann@x.com", r.URL.Query().Get("filter[email]"))
				assert.Equal(t, "1", r.URL.Query().Get("page"))
				assert.Contains(t, r.URL.Query()["fields[]"], "id")
				return httpmock.NewStringResponse(http.StatusOK, testingResponseUsers), nil
			})

			users, err := account.ListUsers(ctx, UserQueryByField("email", "ann@x.com"))

			require.NoError(t, err)
			require.Len(t, users, 1)
			assert.Equal(t, "6011a8f6ac5e3b0011e2ee2c", users[0].ID)
			assert.True(t, users[0].Active)
		})

		t.Run("no match", func(t *testing.T) {
			account, transport := newMockedAccount()
			transport.RegisterResponder("GET", "https://api.tago.test/run/users", httpmock.NewStringResponder(http.StatusOK, `{"status":true,"result":[]}`))

			users, err := account.ListUsers(ctx, UserQueryByField("id", "nope"))

			require.NoError(t, err)
			assert.Empty(t, users)
		})

		t.Run("rejected", func(t *testing.T) {
			account, transport := newMockedAccount()
			transport.RegisterResponder("GET", "https://api.tago.test/run/users", httpmock.NewStringResponder(http.StatusUnauthorized, testingResponseDenied))

			_, err := account.ListUsers(ctx, UserQueryByField("id", "u1"))

			require.Error(t, err)
			apiErr, ok := err.(*APIError)
			require.True(t, ok)
			assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
			assert.Equal(t, "Authorization denied", apiErr.Message)
		})

		t.Run("status false with a 200", func(t *testing.T) {
			account, transport := newMockedAccount()
			transport.RegisterResponder("GET", "https://api.tago.test/run/users", httpmock.NewStringResponder(http.StatusOK, testingResponseDenied))

			_, err := account.ListUsers(ctx, UserQueryByField("id", "u1"))

			assert.Error(t, err)
		})
	})

	t.Run("CreateUser", func(t *testing.T) {
		account, transport := newMockedAccount()
		var body map[string]interface{}
		transport.RegisterResponder("POST", "https://api.tago.test/run/users", func(r *http.Request) (*http.Response, error) {
			data, _ := ioutil.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(data, &body))
			return httpmock.NewStringResponse(http.StatusOK, `{"status":true,"result":{"user":"u1"}}`), nil
		})

		err := account.CreateUser(ctx, &User{Name: "Ann", Email: "ann@x.com", Password: "pw", Timezone: "UTC", Active: true})

		require.NoError(t, err)
		assert.Equal(t, "Ann", body["name"])
		assert.Equal(t, true, body["active"])
		assert.NotContains(t, body, "id")
		assert.NotContains(t, body, "company")
		assert.NotContains(t, body, "tags")
	})

	t.Run("EditUser", func(t *testing.T) {
		account, transport := newMockedAccount()
		var raw string
		transport.RegisterResponder("PUT", "https://api.tago.test/run/users/u1", func(r *http.Request) (*http.Response, error) {
			data, _ := ioutil.ReadAll(r.Body)
			raw = string(data)
			return httpmock.NewStringResponse(http.StatusOK, testingResponseOK), nil
		})

		err := account.EditUser(ctx, "u1", UserUpdate{Email: "annie@x.com"})

		require.NoError(t, err)
		assert.JSONEq(t, `{"email":"annie@x.com"}`, raw)
	})

	t.Run("DeleteUser", func(t *testing.T) {
		account, transport := newMockedAccount()
		calls := 0
		transport.RegisterResponder("DELETE", "https://api.tago.test/run/users/u1", func(r *http.Request) (*http.Response, error) {
			calls++
			return httpmock.NewStringResponse(http.StatusOK, testingResponseOK), nil
		})

		err := account.DeleteUser(ctx, "u1")

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("TokenByName", func(t *testing.T) {
		t.Run("prefers the default names", func(t *testing.T) {
			account, transport := newMockedAccount()
			transport.RegisterResponder("GET", "https://api.tago.test/device/token/d1", httpmock.NewStringResponder(http.StatusOK, testingResponseTokens))

			token, err := account.TokenByName(ctx, "d1")

			require.NoError(t, err)
			assert.Equal(t, "c0ffee00-0000-0000-0000-000000000002", token)
		})

		t.Run("falls back to the first token", func(t *testing.T) {
			account, transport := newMockedAccount()
			transport.RegisterResponder("GET", "https://api.tago.test/device/token/d1", httpmock.NewStringResponder(http.StatusOK, testingResponseTokens))

			token, err := account.TokenByName(ctx, "d1", "Missing")

			require.NoError(t, err)
			assert.Equal(t, "c0ffee00-0000-0000-0000-000000000001", token)
		})

		t.Run("device without tokens", func(t *testing.T) {
			account, transport := newMockedAccount()
			transport.RegisterResponder("GET", "https://api.tago.test/device/token/d1", httpmock.NewStringResponder(http.StatusOK, `{"status":true,"result":[]}`))

			_, err := account.TokenByName(ctx, "d1")

			assert.Equal(t, ErrRecordNotFound, err)
		})
	})
}
