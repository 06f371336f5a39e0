package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jroosing/dyndns/internal/api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Lookup Endpoint Tests
// ============================================================================

func TestLookup_BaseApexSOA(t *testing.T) {
	env := newTestEnv(t, true)

	w := performRequest(env.router, http.MethodGet, "/pdns/lookup/example.com./soa", "")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.LookupResponse](t, w)
	require.Len(t, resp.Result, 1)
	assert.Equal(t, models.LookupRecord{
		QType:   "SOA",
		QName:   "example.com",
		Content: "example.com hostmaster.example.com 1 3600 1800 1209600 3600",
		TTL:     3600,
	}, resp.Result[0])
}

func TestLookup_NoMatchIsEmptyArray(t *testing.T) {
	env := newTestEnv(t, true)

	w := performRequest(env.router, http.MethodGet, "/pdns/lookup/missing.example.com/A", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"result":[]}`, w.Body.String())
}

func TestLookup_UserSubdomainAfterUpdate(t *testing.T) {
	env := newTestEnv(t, true)

	w := performRequest(env.router, http.MethodGet, "/pdns/lookup/home.example.com/A", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"result":[]}`, w.Body.String())

	w = performRequest(env.router, http.MethodGet, "/update?domains=home&token="+userToken+"&ip=192.0.2.8", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = performRequest(env.router, http.MethodGet, "/pdns/lookup/home.example.com/A", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"result":[{"qtype":"A","qname":"home.example.com","content":"192.0.2.8","ttl":60}]}`, w.Body.String())

	w = performRequest(env.router, http.MethodGet, "/pdns/lookup/home.example.com/ANY", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.LookupResponse](t, w)
	require.Len(t, resp.Result, 1)
	assert.Equal(t, "A", resp.Result[0].QType)
}

func TestLookup_MalformedPath(t *testing.T) {
	env := newTestEnv(t, true)

	for _, path := range []string{"/pdns/lookup/example.com", "/pdns/lookup/a/b/c", "/pdns/lookup/"} {
		w := performRequest(env.router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.JSONEq(t, `{"result":[],"message":"Invalid URL format"}`, w.Body.String(), path)
	}
}

func TestLookup_BeforeSetup(t *testing.T) {
	env := newTestEnv(t, false)

	w := performRequest(env.router, http.MethodGet, "/pdns/lookup/example.com/A", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"result":[],"message":"An error occurred during lookup"}`, w.Body.String())
}

func TestLookup_WildcardAfterUpdate(t *testing.T) {
	env := newTestEnv(t, true)

	w := performRequest(env.router, http.MethodGet, "/update?domains=home&token="+userToken+"&txt=challenge", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = performRequest(env.router, http.MethodGet, "/pdns/lookup/*.home.example.com/TXT", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.LookupResponse](t, w)
	require.Len(t, resp.Result, 1)
	assert.Equal(t, "home.example.com", resp.Result[0].QName)
	assert.Equal(t, "challenge", resp.Result[0].Content)

	w = performRequest(env.router, http.MethodGet, "/pdns/lookup/*.home.example.com/A", "")
	assert.JSONEq(t, `{"result":[]}`, w.Body.String())
}

func TestLookup_AdditionalZoneApex(t *testing.T) {
	env := newTestEnv(t, true)
	_, err := env.zones.AddAdditional(context.Background(), "other.org", []string{"ns1.other.org"})
	require.NoError(t, err)

	w := performRequest(env.router, http.MethodGet, "/pdns/lookup/other.org/NS", "")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.LookupResponse](t, w)
	require.Len(t, resp.Result, 1)
	assert.Equal(t, "ns1.other.org", resp.Result[0].Content)
	assert.Equal(t, "other.org", resp.Result[0].QName)
}

// ============================================================================
// Zone Listing Endpoint Tests
// ============================================================================

func TestGetAllDomains(t *testing.T) {
	env := newTestEnv(t, true)
	_, err := env.zones.AddAdditional(context.Background(), "other.org", []string{"ns1.other.org"})
	require.NoError(t, err)

	w := performRequest(env.router, http.MethodGet, "/pdns/getAllDomains", "")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.DomainInfoResponse](t, w)
	require.Len(t, resp.Result, 2)
	assert.Equal(t, 1, resp.Result[0].ID)
	assert.Equal(t, "example.com", resp.Result[0].Zone)
	assert.Equal(t, 2, resp.Result[1].ID)
	assert.Equal(t, "other.org", resp.Result[1].Zone)
	for _, d := range resp.Result {
		assert.Equal(t, "native", d.Kind)
		assert.Equal(t, []string{}, d.Masters)
		assert.Equal(t, 1, d.Serial)
		assert.Equal(t, 1, d.NotifiedSerial)
	}
	assert.Contains(t, w.Body.String(), `"masters":[]`)
}

func TestGetAllDomains_BeforeSetup(t *testing.T) {
	env := newTestEnv(t, false)

	w := performRequest(env.router, http.MethodGet, "/pdns/getAllDomains", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

// ============================================================================
// Metadata Endpoint Tests
// ============================================================================

func TestGetAllDomainMetadata(t *testing.T) {
	env := newTestEnv(t, true)

	tests := []struct {
		name string
		want int
	}{
		{"example.com", http.StatusOK},
		{"home.example.com", http.StatusOK},
		{"nobody.example.com", http.StatusNotFound},
		{"elsewhere.net", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(env.router, http.MethodGet, "/pdns/getAllDomainMetadata/"+tt.name, "")
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.JSONEq(t, `{"result":{"PRESIGNED":["0"]}}`, w.Body.String())
			}
		})
	}
}
