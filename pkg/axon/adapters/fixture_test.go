package adapters

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toyz/axonbase/pkg/axon"
)

type greeter interface {
	Greet(name string) (string, error)
	Wave()
}

// greeterBase has the shape of a generated base
type greeterBase struct {
	greeter
}

func (greeterBase) Greet(name string) (string, error) {
	return "", axon.ErrNotImplemented("Greeter", "Greet")
}

func (greeterBase) Wave() {
	panic(axon.ErrNotImplemented("Greeter", "Wave"))
}

type partialGreeter struct {
	greeterBase
}

func (partialGreeter) Greet(name string) (string, error) {
	return "hello " + name, nil
}

type errorBody struct {
	StatusCode int                        `json:"status_code"`
	Message    string                     `json:"message"`
	Details    axon.NotImplementedDetails `json:"details"`
}

func serve(h http.Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func decodeError(t *testing.T, body []byte) errorBody {
	t.Helper()
	var decoded errorBody
	require.NoError(t, json.Unmarshal(body, &decoded))
	return decoded
}
