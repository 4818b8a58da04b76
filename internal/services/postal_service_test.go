package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupAddressIndia(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pincode/110001", r.URL.Path)
		w.Write([]byte(`[{"Message":"Number of pincode(s) found:1","Status":"Success","PostOffice":[{"State":"Delhi","District":"Central Delhi","Country":"India"}]}]`))
	}))
	defer upstream.Close()

	orig := indiaPostalBaseURL
	indiaPostalBaseURL = upstream.URL
	defer func() { indiaPostalBaseURL = orig }()

	addr, err := LookupAddress("110001", "India")
	require.NoError(t, err)
	assert.Equal(t, &Address{State: "Delhi", District: "Central Delhi", Country: "India"}, addr)
}

func TestLookupAddressIndiaNoMatch(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"Message":"No records found","Status":"Error","PostOffice":null}]`))
	}))
	defer upstream.Close()

	orig := indiaPostalBaseURL
	indiaPostalBaseURL = upstream.URL
	defer func() { indiaPostalBaseURL = orig }()

	_, err := LookupAddress("999999", "India")
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestLookupAddressMalaysia(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/MY/24000", r.URL.Path)
		w.Write([]byte(`{"post code":"24000","country":"Malaysia","places":[{"place name":"Kemaman","state":"Terengganu"}]}`))
	}))
	defer upstream.Close()

	orig := malaysiaPostalBaseURL
	malaysiaPostalBaseURL = upstream.URL
	defer func() { malaysiaPostalBaseURL = orig }()

	addr, err := LookupAddress("24000", "Malaysia")
	require.NoError(t, err)
	assert.Equal(t, &Address{State: "Terengganu", District: "Kemaman", Country: "Malaysia"}, addr)
}

func TestLookupAddressMalaysiaNotFound(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer upstream.Close()

	orig := malaysiaPostalBaseURL
	malaysiaPostalBaseURL = upstream.URL
	defer func() { malaysiaPostalBaseURL = orig }()

	_, err := LookupAddress("00000", "Malaysia")
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestLookupAddressUnsupportedCountry(t *testing.T) {
	_, err := LookupAddress("75001", "France")
	assert.ErrorIs(t, err, ErrUnsupportedCountry)
}
