package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"log"
	"os"
	"testing"

	"github.com/maddiesch/serverless"
	"github.com/maddiesch/tago-user-manager/src/tago"
	"github.com/maddiesch/tago-user-manager/src/tago/tagotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	serverless.GetLogger().SetOutput(ioutil.Discard)
	os.Setenv("AUTO_TEST", "true")

	os.Exit(m.Run())
}

const insertEvent = `{
	"environment": [
		{"key": "account_token", "value": "3293db09-5e26-4313-b95a-5cef9a4cc8c8"},
		{"key": "_widget_exec", "value": "insert"}
	],
	"data": [
		{"variable": "user_name", "value": "Ann", "origin": "d1"},
		{"variable": "user_email", "value": "ann@x.com", "origin": "d1"},
		{"variable": "user_password", "value": "pw", "origin": "d1"}
	]
}`

func TestHandler(t *testing.T) {
	t.Run("golden path", func(t *testing.T) {
		connector := &tagotest.FakeConnector{
			FakeAccount: tagotest.NewFakeAccount("d1", "device-token"),
			FakeDevice:  &tagotest.FakeDevice{},
		}
		logs := &bytes.Buffer{}

		event := tago.Invocation{}
		require.NoError(t, json.Unmarshal([]byte(insertEvent), &event))

		err := handler(tago.NewRouter(connector, nil, log.New(logs, "", 0)))(context.Background(), event)

		assert.NoError(t, err)
		assert.Len(t, connector.FakeAccount.Created, 1)
		require.Len(t, connector.FakeDevice.Sent, 1)
		assert.Equal(t, "u1", connector.FakeDevice.Sent[0][0].Metadata["user_id"])
		assert.Contains(t, logs.String(), "Script end.")
	})

	t.Run("bad configuration still succeeds", func(t *testing.T) {
		connector := &tagotest.FakeConnector{
			FakeAccount: tagotest.NewFakeAccount("d1", "device-token"),
			FakeDevice:  &tagotest.FakeDevice{},
		}

		event := tago.Invocation{}
		require.NoError(t, json.Unmarshal([]byte(insertEvent), &event))
		event.Environment = event.Environment[1:]

		err := handler(tago.NewRouter(connector, nil, log.New(ioutil.Discard, "", 0)))(context.Background(), event)

		assert.NoError(t, err)
		assert.Equal(t, 0, connector.RemoteCalls())
	})
}
