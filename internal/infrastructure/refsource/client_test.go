package refsource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audiens/internal/core/apperror"
	"audiens/internal/domain/filter"
	"audiens/internal/domain/refdata"
)

func TestFetchValues_NormalizesNameRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Department/GetDepartments", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"name":"Engineering"},{"name":""},{"name":"Sales"}]`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	values, err := c.FetchValues(context.Background(), filter.AttrDepartment)
	require.NoError(t, err)

	// empty names are dropped, id mirrors name
	assert.Equal(t, []refdata.Value{
		{ID: "Engineering", Name: "Engineering"},
		{ID: "Sales", Name: "Sales"},
	}, values)
}

func TestFetchValues_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	_, err := c.FetchValues(context.Background(), filter.AttrGender)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeReferenceFetch, appErr.Code)
	assert.Equal(t, filter.AttrGender, appErr.Details["attribute"])
}

func TestFetchValues_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"not":"a list"}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	_, err := c.FetchValues(context.Background(), filter.AttrRole)
	assert.Error(t, err)
}

func TestFetchValues_UnknownAttribute(t *testing.T) {
	c := New(Config{BaseURL: "http://localhost:0"})
	_, err := c.FetchValues(context.Background(), "age")
	assert.Error(t, err)
}

func TestNew_PathOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/custom/roles", r.URL.Path)
		w.Write([]byte(`[{"name":"Manager"}]`))
	}))
	defer srv.Close()

	c := New(Config{
		BaseURL: srv.URL,
		Paths:   map[string]string{filter.AttrRole: "/custom/roles"},
	})
	values, err := c.FetchValues(context.Background(), filter.AttrRole)
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, "Manager", values[0].Name)
}
