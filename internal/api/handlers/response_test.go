package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondConflict(rec, "slot taken")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"slot taken"}`, rec.Body.String())
}

func TestRespondInternalError_HidesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondInternalError(rec)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Phone string `json:"phone"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"phone":"0888"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "0888", dst.Phone)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"phone":"0888","admin":true}`))
	assert.Error(t, DecodeJSON(r, &dst))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"phone":"1"} {"phone":"2"}`))
	assert.Error(t, DecodeJSON(r, &dst))
}

func TestParseIDs(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "0", "-1", "abc"} {
		_, err := ParseID(raw)
		assert.Error(t, err, raw)
	}

	opt, err := ParseOptionalID("")
	require.NoError(t, err)
	assert.Nil(t, opt)

	opt, err = ParseOptionalID("7")
	require.NoError(t, err)
	require.NotNil(t, opt)
	assert.Equal(t, int64(7), *opt)
}

func TestParseDate(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Sofia")
	require.NoError(t, err)

	d, err := ParseDate("2024-06-11", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 11, 0, 0, 0, 0, loc), d)

	_, err = ParseDate("11.06.2024", loc)
	assert.Error(t, err)
}
