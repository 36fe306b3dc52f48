package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/oauth2"
)

// newTestConfig points the exchange at a local token endpoint.
func newTestConfig(t *testing.T) *oauth2.Config {
	t.Helper()
	tokens := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"at-123","token_type":"Bearer","expires_in":3600}`)
	}))
	t.Cleanup(tokens.Close)

	return &oauth2.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		Endpoint:     oauth2.Endpoint{TokenURL: tokens.URL + "/token"},
	}
}

func TestOAuthHandler(t *testing.T) {
	t.Run("exchanges the code and delivers the token", func(t *testing.T) {
		h := NewOAuthHandler(newTestConfig(t), "s1")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "/callback?state=s1&code=abc", nil))

		result := <-h.Result()
		if result.Error() != nil {
			t.Fatalf("expected no error, got %v", result.Error())
		}
		if result.Token == nil || result.Token.AccessToken != "at-123" {
			t.Errorf("expected exchanged token, got %+v", result.Token)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Authorization Successful") {
			t.Errorf("expected success page, got %q", rec.Body.String())
		}
	})

	t.Run("rejects a mismatched state", func(t *testing.T) {
		h := NewOAuthHandler(newTestConfig(t), "s1")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "/callback?state=evil&code=abc", nil))

		result := <-h.Result()
		if result.Error() == nil {
			t.Fatal("expected state error")
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("surfaces provider errors", func(t *testing.T) {
		h := NewOAuthHandler(newTestConfig(t), "s1")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", "/callback?state=s1&error=access_denied&error_description=user+said+no", nil))

		result := <-h.Result()
		if result.Error() == nil || !strings.Contains(result.Error().Error(), "access_denied") {
			t.Fatalf("expected provider error, got %v", result.Error())
		}
	})

	t.Run("handles the callback only once", func(t *testing.T) {
		h := NewOAuthHandler(newTestConfig(t), "s1")

		first := httptest.NewRecorder()
		h.ServeHTTP(first, httptest.NewRequest("GET", "/callback?state=s1&code=abc", nil))
		<-h.Result()

		second := httptest.NewRecorder()
		h.ServeHTTP(second, httptest.NewRequest("GET", "/callback?state=s1&code=abc", nil))
		if second.Code != http.StatusBadRequest {
			t.Errorf("expected 400 on repeat callback, got %d", second.Code)
		}
	})
}
