package chatgpt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/ethix-logistics/internal/domain/advisor"
)

func TestCompleterSendsJSONRequest(t *testing.T) {
	var (
		got        ChatCompletionRequest
		path, auth string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path, auth = r.URL.Path, r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  {\"medicalUrgency\":0.9}  "}}]}`))
	}))
	defer srv.Close()

	client, err := NewClient("sk-test", srv.URL+"/")
	require.NoError(t, err)
	reply, err := NewCompleter(client, "gpt-4o-mini", 0.2).Complete(context.Background(), advisor.Prompt{System: "sys", User: "usr"})
	require.NoError(t, err)

	require.Equal(t, `{"medicalUrgency":0.9}`, reply)
	require.Equal(t, "/chat/completions", path)
	require.Equal(t, "Bearer sk-test", auth)
	require.Equal(t, "gpt-4o-mini", got.Model)
	require.Len(t, got.Messages, 2)
	require.Equal(t, "system", got.Messages[0].Role)
	require.Equal(t, "usr", got.Messages[1].Content)
	require.NotNil(t, got.ResponseFormat)
	require.Equal(t, "json_object", got.ResponseFormat.Type)
}

func TestCompleterSurfacesFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client, err := NewClient("sk-test", srv.URL)
	require.NoError(t, err)
	_, err = NewCompleter(client, "m", 0).Complete(context.Background(), advisor.Prompt{})
	require.ErrorContains(t, err, "status=429")
}

func TestCompleterRejectsEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client, err := NewClient("sk-test", srv.URL)
	require.NoError(t, err)
	_, err = NewCompleter(client, "m", 0).Complete(context.Background(), advisor.Prompt{})
	require.ErrorContains(t, err, "no choices")
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient("  ", "")
	require.Error(t, err)
}
