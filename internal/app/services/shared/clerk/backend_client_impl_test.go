package clerk

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestBackendClient_CreateSignInToken(t *testing.T) {
	t.Run("creates a sign in token for the user", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/sign_in_tokens", r.URL.Path)
			assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
			body, _ := io.ReadAll(r.Body)
			assert.Equal(t, "user_42", gjson.GetBytes(body, "user_id").String())
			w.Write([]byte(`{"object":"sign_in_token","token":"tok_1","url":"https://clerk/accept?t=tok_1","user_id":"user_42"}`))
		}))
		defer server.Close()

		token, err := NewBackendClient(server.URL, "sk_test").CreateSignInToken(context.Background(), "user_42")

		require.NoError(t, err)
		assert.Equal(t, "tok_1", token.Token)
		assert.Equal(t, "user_42", token.UserID)
	})

	t.Run("API errors are surfaced", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"errors":[{"long_message":"user not found"}]}`))
		}))
		defer server.Close()

		_, err := NewBackendClient(server.URL, "sk_test").CreateSignInToken(context.Background(), "user_x")

		assert.ErrorContains(t, err, "user not found")
	})
}
