package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/bookmarks/internal/config"
	"github.com/deppfellow/bookmarks/internal/middleware"
	"github.com/deppfellow/bookmarks/internal/model"
	"github.com/deppfellow/bookmarks/internal/server"
)

func newTestHandler(out *bytes.Buffer) Handler {
	log := zerolog.New(out)
	return NewHandler(server.NewWithDatabase(&config.Config{}, &log, nil))
}

func TestHandler_Logger(t *testing.T) {
	t.Parallel()

	var serverOut, requestOut bytes.Buffer
	h := newTestHandler(&serverOut)

	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	h.logger(c).Info().Msg("server")

	requestLog := zerolog.New(&requestOut)
	c.Set(middleware.LoggerKey, &requestLog)
	h.logger(c).Info().Msg("request")

	require.Contains(t, serverOut.String(), `"message":"server"`)
	require.NotContains(t, serverOut.String(), `"message":"request"`)
	require.Contains(t, requestOut.String(), `"message":"request"`)

	// a bare Handler still yields a usable logger
	require.NotPanics(t, func() { Handler{}.logger(c).Info().Msg("ok") })
}

func TestHandle_ValidationFailureLogged(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	h := newTestHandler(&out)

	called := false
	fn := Handle[model.CreateBookmarkPayload](h,
		func(c echo.Context, req *model.CreateBookmarkPayload) (*model.Bookmark, error) {
			called = true
			return nil, nil
		}, http.StatusCreated)

	req := httptest.NewRequest(http.MethodPost, "/bookmark", strings.NewReader(`{"url":"u","rating":1}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := echo.New().NewContext(req, httptest.NewRecorder())

	require.Error(t, fn(c))
	require.False(t, called)
	require.Contains(t, out.String(), `"message":"request validation failed"`)
}

func TestHandleNoContent(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	h := newTestHandler(&out)

	fn := HandleNoContent[model.DeleteBookmarkPayload](h,
		func(c echo.Context, req *model.DeleteBookmarkPayload) error { return nil },
		http.StatusNoContent)

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodDelete, "/bookmark/1", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, fn(c))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.String())
}
