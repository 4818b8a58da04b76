package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

var (
	// ErrUnsupportedCountry is returned for countries without an
	// auto-fill upstream. Callers fall back to manual entry.
	ErrUnsupportedCountry = errors.New("postal: auto-fill not supported for this country")
	// ErrAddressNotFound is returned when the upstream knows the
	// country but not the code.
	ErrAddressNotFound = errors.New("postal: no address found for postal code")
)

var (
	postalHTTPClient = &http.Client{Timeout: 15 * time.Second}

	// Overridable in tests.
	indiaPostalBaseURL    = "https://api.postalpincode.in"
	malaysiaPostalBaseURL = "https://api.zippopotam.us"
)

// Address is the auto-fill result for a postal code.
type Address struct {
	State    string `json:"state"`
	District string `json:"district"`
	Country  string `json:"country"`
}

// LookupAddress resolves a postal code through the country's upstream.
// The two supported upstreams return entirely different shapes, so each
// gets its own decoder.
func LookupAddress(code, country string) (*Address, error) {
	switch country {
	case "India":
		return lookupIndia(code)
	case "Malaysia":
		return lookupMalaysia(code)
	}
	return nil, ErrUnsupportedCountry
}

type indiaPostOffice struct {
	State    string `json:"State"`
	District string `json:"District"`
	Country  string `json:"Country"`
}

type indiaPincodeResponse struct {
	Message    string            `json:"Message"`
	Status     string            `json:"Status"`
	PostOffice []indiaPostOffice `json:"PostOffice"`
}

func lookupIndia(code string) (*Address, error) {
	body, status, err := postalGet(indiaPostalBaseURL + "/pincode/" + url.PathEscape(code))
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("postal: india lookup: status %d", status)
	}

	// The upstream wraps the result in a single-element array.
	var results []indiaPincodeResponse
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("postal: india lookup unmarshal: %w", err)
	}
	if len(results) == 0 || results[0].Status != "Success" || len(results[0].PostOffice) == 0 {
		return nil, ErrAddressNotFound
	}

	po := results[0].PostOffice[0]
	return &Address{State: po.State, District: po.District, Country: po.Country}, nil
}

type malaysiaPlace struct {
	PlaceName string `json:"place name"`
	State     string `json:"state"`
}

type malaysiaResponse struct {
	Country string          `json:"country"`
	Places  []malaysiaPlace `json:"places"`
}

func lookupMalaysia(code string) (*Address, error) {
	body, status, err := postalGet(malaysiaPostalBaseURL + "/MY/" + url.PathEscape(code))
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, ErrAddressNotFound
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("postal: malaysia lookup: status %d", status)
	}

	var result malaysiaResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("postal: malaysia lookup unmarshal: %w", err)
	}
	if len(result.Places) == 0 {
		return nil, ErrAddressNotFound
	}

	place := result.Places[0]
	return &Address{State: place.State, District: place.PlaceName, Country: result.Country}, nil
}

func postalGet(endpoint string) ([]byte, int, error) {
	resp, err := postalHTTPClient.Get(endpoint)
	if err != nil {
		return nil, 0, fmt.Errorf("postal: request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("postal: read response: %w", err)
	}
	return body, resp.StatusCode, nil
}
