package submit

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSubmit(t *testing.T) {
	ctx := context.Background()
	payload := Payload{
		RequestID: "SASPA-AB2CD",
		Kind:      "application",
		Values:    map[string]string{"icName": "John Doe"},
		Text:      "【ЗАЯВКА НА ВСТУПЛЕНИЕ】\nID: SASPA-AB2CD",
	}

	t.Run("posts the payload as json", func(t *testing.T) {
		var got Payload
		var contentType string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			contentType = r.Header.Get("Content-Type")
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, &got))
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		require.NoError(t, NewHTTP(srv.URL).Submit(ctx, payload))
		assert.Equal(t, "application/json", contentType)
		assert.Equal(t, payload, got)
	})

	t.Run("non-2xx carries the endpoint body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			io.WriteString(w, "intake closed for the season")
		}))
		defer srv.Close()

		err := NewHTTP(srv.URL).Submit(ctx, payload)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "intake closed for the season")
	})

	t.Run("non-2xx without a body reports the status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		err := NewHTTP(srv.URL).Submit(ctx, payload)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 502")
	})

	t.Run("unreachable endpoint errors", func(t *testing.T) {
		err := NewHTTP("http://127.0.0.1:1/intake").Submit(ctx, payload)
		assert.Error(t, err)
	})
}

func TestKafkaRecord(t *testing.T) {
	k := &Kafka{topic: "curator.requests"}
	rec, err := k.record(Payload{
		RequestID: "SASPA-EF3GH",
		Kind:      "complaint",
		Values:    map[string]string{"summary": "late to shift"},
		Text:      "【ЖАЛОБА】\nID: SASPA-EF3GH",
	})
	require.NoError(t, err)

	assert.Equal(t, "curator.requests", rec.Topic)
	assert.Equal(t, []byte("SASPA-EF3GH"), rec.Key)

	var got Payload
	require.NoError(t, json.Unmarshal(rec.Value, &got))
	assert.Equal(t, "complaint", got.Kind)
	assert.Equal(t, "late to shift", got.Values["summary"])
}

func TestPayloadWireShape(t *testing.T) {
	body, err := json.Marshal(Payload{RequestID: "SASPA-JK4MN", Kind: "application"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"requestId":"SASPA-JK4MN","kind":"application","values":null,"text":""}`, string(body))
}
