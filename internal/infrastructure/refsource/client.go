// Package refsource fetches reference-value lists from the platform's
// catalog endpoints, one GET per categorical attribute. Response shapes
// vary slightly per endpoint but all carry {name} records, normalized here
// to id/name pairs.
package refsource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"audiens/internal/core/apperror"
	"audiens/internal/domain/filter"
	"audiens/internal/domain/refdata"
)

// defaultPaths maps attribute ids to their upstream endpoints.
var defaultPaths = map[string]string{
	filter.AttrFunctionalArea:  "/FunctionalArea/GetFunctionalAreas",
	filter.AttrDepartment:      "/Department/GetDepartments",
	filter.AttrProject:         "/Project/GetProjects",
	filter.AttrDivision:        "/Division/GetDivisions",
	filter.AttrSubDivision:     "/SubDivision/GetSubDivisions",
	filter.AttrPosition:        "/Position/GetPositions",
	filter.AttrPositionGroup:   "/PositionGroup/GetPositionGroups",
	filter.AttrManagerialLevel: "/ManagerialLevel/GetManagerialLevels",
	filter.AttrResidentalArea:  "/ResidentalArea/GetResidentalAreas",
	filter.AttrGender:          "/Gender/GetGenders",
	filter.AttrRole:            "/Role/GetRoles",
}

// Config holds client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Paths overrides individual attribute endpoints.
	Paths map[string]string
}

// Client fetches reference values over HTTP. Implements refdata.Source.
type Client struct {
	baseURL string
	paths   map[string]string
	http    *http.Client
}

// New creates a reference-value client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	paths := make(map[string]string, len(defaultPaths))
	for attrID, path := range defaultPaths {
		paths[attrID] = path
	}
	for attrID, path := range cfg.Paths {
		paths[attrID] = path
	}
	return &Client{
		baseURL: cfg.BaseURL,
		paths:   paths,
		http:    &http.Client{Timeout: timeout},
	}
}

// FetchValues performs one GET for the attribute's value list. No retries;
// the caller treats any error as a soft failure.
func (c *Client) FetchValues(ctx context.Context, attributeID string) ([]refdata.Value, error) {
	path, ok := c.paths[attributeID]
	if !ok {
		return nil, apperror.NewReferenceFetch(attributeID,
			fmt.Errorf("no endpoint configured for attribute %q", attributeID))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, apperror.NewReferenceFetch(attributeID, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperror.NewReferenceFetch(attributeID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperror.NewReferenceFetch(attributeID,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var records []struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, apperror.NewReferenceFetch(attributeID, err)
	}

	values := make([]refdata.Value, 0, len(records))
	for _, r := range records {
		if r.Name == "" {
			continue
		}
		values = append(values, refdata.Value{ID: r.Name, Name: r.Name})
	}
	return values, nil
}

var _ refdata.Source = (*Client)(nil)
