package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/sports-facility-reservation/internal/model"
)

func testContext() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestCurrentUserIDClaimTypes(t *testing.T) {
	c := testContext()

	// JWT claims decode JSON numbers as float64.
	c.Set("user_id", float64(17))
	id, ok := currentUserID(c)
	require.True(t, ok)
	require.EqualValues(t, 17, id)

	c.Set("user_id", uint64(9))
	id, ok = currentUserID(c)
	require.True(t, ok)
	require.EqualValues(t, 9, id)

	c.Set("user_id", "23")
	id, ok = currentUserID(c)
	require.True(t, ok)
	require.EqualValues(t, 23, id)

	c.Set("user_id", "nope")
	_, ok = currentUserID(c)
	require.False(t, ok)
}

func TestCurrentUserIDMissing(t *testing.T) {
	_, ok := currentUserID(testContext())
	require.False(t, ok)
}

func TestIsAdmin(t *testing.T) {
	c := testContext()
	require.False(t, isAdmin(c))

	c.Set("role", model.RoleCustomer)
	require.False(t, isAdmin(c))

	c.Set("role", model.RoleAdmin)
	require.True(t, isAdmin(c))
}

func TestPathID(t *testing.T) {
	c := testContext()
	c.SetParamNames("id")
	c.SetParamValues("15")
	id, err := pathID(c)
	require.NoError(t, err)
	require.EqualValues(t, 15, id)

	for _, bad := range []string{"0", "-4", "abc", ""} {
		c.SetParamValues(bad)
		_, err := pathID(c)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		require.Equal(t, http.StatusBadRequest, he.Code)
	}
}
