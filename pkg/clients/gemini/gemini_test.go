package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client := NewClientWithConfig(Config{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Model:   "gemini-test",
	})
	return client, srv
}

func candidateResponse(text string) string {
	payload := map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	}
	out, _ := json.Marshal(payload)
	return string(out)
}

func TestExtractRecords(t *testing.T) {
	items := `[{"productName":"Dell XPS 13","quantity":50,"price":1200,"category":"Electronics"}]`

	var gotPath string
	var gotBody generateRequest

	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, candidateResponse(items))
	})

	got, err := client.ExtractRecords(context.Background(), "50 Dell XPS 13 laptops at $1200")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Dell XPS 13", got[0].ProductName)
	assert.Equal(t, float64(50), got[0].Quantity)
	assert.Equal(t, float64(1200), got[0].Price)
	assert.Equal(t, "Electronics", got[0].Category)
	assert.Empty(t, got[0].Status)

	assert.Equal(t, "/models/gemini-test:generateContent", gotPath)
	assert.Equal(t, "application/json", gotBody.GenerationConfig.ResponseMIMEType)
	require.NotNil(t, gotBody.GenerationConfig.ResponseSchema)
	assert.Equal(t, "ARRAY", gotBody.GenerationConfig.ResponseSchema.Type)
	assert.Contains(t, gotBody.GenerationConfig.ResponseSchema.Items.Required, "productName")
}

func TestExtractRecordsStripsCodeFences(t *testing.T) {
	fenced := "```json\n[{\"productName\":\"Stapler\",\"quantity\":3,\"price\":9.5,\"category\":\"Office Supplies\"}]\n```"

	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, candidateResponse(fenced))
	})

	got, err := client.ExtractRecords(context.Background(), "three staplers")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Stapler", got[0].ProductName)
}

func TestExtractRecordsEmptyResponseIsNotAnError(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates":[]}`)
	})

	got, err := client.ExtractRecords(context.Background(), "nothing useful here")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExtractRecordsMalformedJSONIsSurfaced(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, candidateResponse("this is not json"))
	})

	_, err := client.ExtractRecords(context.Background(), "some text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}

func TestExtractRecordsAPIError(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"quota exceeded"}}`)
	})

	_, err := client.ExtractRecords(context.Background(), "some text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini api error")
}
