package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/bookmarks/internal/errs"
)

type samplePayload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`

	validateErr error
}

func (p *samplePayload) Validate() error { return p.validateErr }

func newContext(body string) echo.Context {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func requireStatus(t *testing.T, err error, status int) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	require.Equal(t, status, httpErr.Status)
	return httpErr
}

func TestFirstMissing(t *testing.T) {
	t.Parallel()

	rules := []Rule[*samplePayload]{
		{Field: "name", Present: func(p *samplePayload) bool { return p.Name != "" }},
		{Field: "count", Present: func(p *samplePayload) bool { return p.Count != 0 }},
	}

	err := FirstMissing(&samplePayload{}, rules)
	require.Equal(t, "Missing 'name' in request body", requireStatus(t, err, http.StatusBadRequest).Message)

	err = FirstMissing(&samplePayload{Name: "x"}, rules)
	require.Equal(t, "Missing 'count' in request body", requireStatus(t, err, http.StatusBadRequest).Message)

	require.NoError(t, FirstMissing(&samplePayload{Name: "x", Count: 1}, rules))
}

func TestBindAndValidate(t *testing.T) {
	t.Parallel()

	t.Run("ok", func(t *testing.T) {
		t.Parallel()

		var p samplePayload
		require.NoError(t, BindAndValidate(newContext(`{"name":"a","count":2}`), &p))
		require.Equal(t, "a", p.Name)
		require.Equal(t, 2, p.Count)
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()

		var p samplePayload
		requireStatus(t, BindAndValidate(newContext(`{"name":`), &p), http.StatusBadRequest)
	})

	t.Run("type mismatch", func(t *testing.T) {
		t.Parallel()

		var p samplePayload
		requireStatus(t, BindAndValidate(newContext(`{"count":"many"}`), &p), http.StatusBadRequest)
	})

	t.Run("http error passes through", func(t *testing.T) {
		t.Parallel()

		want := errs.NewMissingFieldError("name")
		p := samplePayload{validateErr: want}
		require.Same(t, want, BindAndValidate(newContext(`{}`), &p))
	})

	t.Run("plain error is wrapped", func(t *testing.T) {
		t.Parallel()

		p := samplePayload{validateErr: errors.New("name too long")}
		httpErr := requireStatus(t, BindAndValidate(newContext(`{}`), &p), http.StatusBadRequest)
		require.Equal(t, "Validation failed: name too long", httpErr.Message)
	})
}
