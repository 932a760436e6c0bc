package httputil_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/limbo/starboard/pkg/httputil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSONResponse(t *testing.T) {
	rr := httptest.NewRecorder()
	httputil.WriteJSONResponse(rr, http.StatusOK, []string{"a"})
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var env map[string]any
	require.NoError(t, sonic.ConfigDefault.NewDecoder(rr.Body).Decode(&env))
	assert.Equal(t, float64(0), env["code"])
	assert.Equal(t, []any{"a"}, env["data"])
	assert.NotContains(t, env, "message")
}

func TestWriteErrorResponse(t *testing.T) {
	rr := httptest.NewRecorder()
	httputil.WriteErrorResponse(rr, http.StatusInternalServerError, "listing tasks failed", errors.New("timeout"))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var env httputil.Envelope
	require.NoError(t, sonic.ConfigDefault.NewDecoder(rr.Body).Decode(&env))
	assert.Equal(t, httputil.CodeError, env.Code)
	assert.Equal(t, "listing tasks failed: timeout", env.Message)
	assert.Nil(t, env.Data)
}
