package apperr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindInvalidInput, KindOf(InvalidInput("bad field")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("missing %s", "thing")))
	assert.Equal(t, KindConflict, KindOf(Conflict("already done")))
	assert.Equal(t, KindStorage, KindOf(Storage("query failed", errors.New("boom"))))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestKindOf_Wrapped(t *testing.T) {
	inner := NotFound("product %s not found", "x")
	wrapped := Storage("lookup failed", inner)

	// errors.As finds the outermost taxonomy error.
	assert.Equal(t, KindStorage, KindOf(wrapped))
	assert.True(t, errors.Is(wrapped, wrapped))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "product x not found", NotFound("product %s not found", "x").Error())

	wrapped := Storage("query failed", errors.New("connection reset"))
	assert.Equal(t, "query failed: connection reset", wrapped.Error())
	assert.Equal(t, "connection reset", errors.Unwrap(wrapped).Error())
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(InvalidInput("bad")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Conflict("conflict")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("missing")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(Storage("db", errors.New("boom"))))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
}
