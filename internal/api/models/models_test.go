// Package models_test provides behavior tests for the API models package.
package models_test

import (
	"encoding/json"
	"testing"

	"github.com/jroosing/dyndns/internal/api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Lookup Protocol Models Tests
// ============================================================================

func TestLookupResponse_EmptyResultIsArray(t *testing.T) {
	data, err := json.Marshal(models.LookupResponse{Result: []models.LookupRecord{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"result":[]}`, string(data))
}

func TestLookupResponse_MessageOnFailure(t *testing.T) {
	data, err := json.Marshal(models.LookupResponse{
		Result:  []models.LookupRecord{},
		Message: "Invalid URL format",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"result":[],"message":"Invalid URL format"}`, string(data))
}

func TestLookupRecord_FieldNames(t *testing.T) {
	data, err := json.Marshal(models.LookupRecord{QType: "A", QName: "home.example.com", Content: "1.2.3.4", TTL: 60})
	require.NoError(t, err)
	assert.JSONEq(t, `{"qtype":"A","qname":"home.example.com","content":"1.2.3.4","ttl":60}`, string(data))
}

func TestDomainInfo_FieldNames(t *testing.T) {
	data, err := json.Marshal(models.DomainInfo{
		ID: 1, Zone: "example.com", Masters: []string{},
		NotifiedSerial: 1, Serial: 1, LastCheck: 1700000000, Kind: "native",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"zone":"example.com","masters":[],"notified_serial":1,"serial":1,"last_check":1700000000,"kind":"native"}`, string(data))
}

// ============================================================================
// Advanced Record Models Tests
// ============================================================================

func TestAdvancedAddRequest_Decode(t *testing.T) {
	var req models.AdvancedAddRequest
	err := json.Unmarshal([]byte(`{"zone":"example.com","name":"www","record_type":"A","ttl":300,"content":"1.1.1.1,2.2.2.2"}`), &req)
	require.NoError(t, err)
	assert.Equal(t, "A", req.RecordType)
	assert.Equal(t, 300, req.TTL)
	assert.Equal(t, "1.1.1.1,2.2.2.2", req.Content)
}

func TestAdvancedDeleteRequest_OptionalSelectors(t *testing.T) {
	var req models.AdvancedDeleteRequest
	err := json.Unmarshal([]byte(`{"zone":"example.com","name":"@","type":"MX","ttl":3600,"ids":[4,7]}`), &req)
	require.NoError(t, err)
	assert.Empty(t, req.Content)
	assert.Equal(t, []int64{4, 7}, req.IDs)
}

// ============================================================================
// Zone Models Tests
// ============================================================================

func TestZoneSummary_OmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(models.ZoneSummary{Name: "example.com", Base: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"example.com","base":true}`, string(data))
}

func TestSuccessResponse_JSON(t *testing.T) {
	data, err := json.Marshal(models.SuccessResponse{Success: true, Message: "DNS record added successfully"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"message":"DNS record added successfully"}`, string(data))
}
