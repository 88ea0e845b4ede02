package apiclient_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/inputtrack/apiclient"
	"github.com/Alia5/inputtrack/apitypes"
)

func testClient(responses map[string]string, err error) *apiclient.Client {
	return apiclient.WithTransport(apiclient.NewMockTransport(func(path string, payload any, params map[string]string) (string, error) {
		if err != nil {
			return "", err
		}
		return responses[path], nil
	}))
}

func TestClientParsing(t *testing.T) {
	c := testClient(map[string]string{
		"ping":         `{"server":"inputtrack","version":"1.2.3"}`,
		"keys/list":    `{"keys":[{"index":0,"code":"Backspace"}]}`,
		"buttons/list": `{"buttons":[{"index":2,"name":"RIGHT"}]}`,
		"threshold":    `{"thresholdMs":250}`,
		"session/list": `{"sessions":["a","b"]}`,
		"session/{id}": `{"status":404,"title":"Not Found","detail":"session x not found"}`,
	}, nil)

	ping, err := c.Ping()
	require.NoError(t, err)
	assert.Equal(t, &apitypes.PingResponse{Server: "inputtrack", Version: "1.2.3"}, ping)

	keys, err := c.Keys()
	require.NoError(t, err)
	assert.Equal(t, []apitypes.KeyInfo{{Index: 0, Code: "Backspace"}}, keys.Keys)

	buttons, err := c.Buttons()
	require.NoError(t, err)
	assert.Equal(t, "RIGHT", buttons.Buttons[0].Name)

	th, err := c.Threshold()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, th)

	sessions, err := c.Sessions()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, sessions.Sessions)

	_, err = c.Session("x")
	var apiErr *apitypes.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
}

func TestClientErrors(t *testing.T) {
	_, err := testClient(map[string]string{}, nil).Ping()
	assert.EqualError(t, err, "empty response")

	_, err = testClient(map[string]string{"ping": "{not json"}, nil).Ping()
	assert.ErrorContains(t, err, "decode")

	_, err = testClient(nil, errors.New("dial fail")).Ping()
	assert.EqualError(t, err, "dial fail")

	_, err = testClient(nil, nil).SetThreshold(-time.Second)
	assert.Error(t, err)
}

func TestOpenSessionNotSupportedWithMockTransport(t *testing.T) {
	_, err := testClient(nil, nil).OpenSession(context.Background())
	assert.ErrorContains(t, err, "not supported with mock transport")
}
