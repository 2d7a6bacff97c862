package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authorHandler "bookstore-api/internal/domains/author/handler"
	authorModel "bookstore-api/internal/domains/author/model"
	"bookstore-api/internal/domains/book/model"
	"bookstore-api/internal/repository"
	"bookstore-api/internal/shared/response"
	"bookstore-api/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newRouter serves both catalog resources over one database, as the api does
func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	authors := repository.New(repository.NewSQLStore(db, authorModel.Table), authorModel.Table)
	books := repository.New(repository.NewSQLStore(db, model.Table), model.Table)

	ah := authorHandler.NewAuthorHandler(authors)
	bh := NewBookHandler(books, authors)

	r := gin.New()
	r.POST("/authors", ah.Create)
	r.DELETE("/authors/:id", ah.Delete)
	r.GET("/books", bh.List)
	r.GET("/books/:id", bh.Get)
	r.POST("/books", bh.Create)
	r.PUT("/books/:id", bh.Update)
	r.DELETE("/books/:id", bh.Delete)
	return r
}

func call(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *response.Error `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func seedAuthor(t *testing.T, r http.Handler) {
	t.Helper()
	rec := call(r, http.MethodPost, "/authors", `{"first_name":"Jane","last_name":"Doe"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestBookLifecycleWithAuthor(t *testing.T) {
	r := newRouter(t)
	seedAuthor(t, r)

	rec := call(r, http.MethodPost, "/books",
		`{"title":"First","isbn":"978-0","year":2001,"price":"12.50","summary":"short","author_id":1}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created model.BookDTO
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &created))
	assert.Equal(t, 1, created.ID)
	assert.Nil(t, created.Author)

	rec = call(r, http.MethodGet, "/books/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got model.BookDTO
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &got))
	assert.Equal(t, "First", got.Title)
	require.NotNil(t, got.Price)
	assert.Equal(t, "12.5", got.Price.String())
	require.NotNil(t, got.Author)
	assert.Equal(t, 1, got.Author.ID)
	assert.Equal(t, "Jane", got.Author.FirstName)

	rec = call(r, http.MethodGet, "/books", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []model.BookDTO
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &list))
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Author)
	assert.Equal(t, "Doe", list[0].Author.LastName)

	// referenced author cannot go while the book exists
	rec = call(r, http.MethodDelete, "/authors/1", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "FOREIGN KEY")

	assert.Equal(t, http.StatusNoContent, call(r, http.MethodDelete, "/books/1", "").Code)
	assert.Equal(t, http.StatusNotFound, call(r, http.MethodGet, "/books/1", "").Code)
	assert.Equal(t, http.StatusNoContent, call(r, http.MethodDelete, "/authors/1", "").Code)
}

func TestCreateBookValidation(t *testing.T) {
	r := newRouter(t)
	seedAuthor(t, r)

	long := strings.Repeat("x", model.MaxSummaryLength+1)
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing title", `{"isbn":"1","author_id":1}`, "title"},
		{"missing isbn", `{"title":"T","author_id":1}`, "isbn"},
		{"missing author", `{"title":"T","isbn":"1"}`, "author_id"},
		{"summary too long", `{"title":"T","isbn":"1","author_id":1,"summary":"` + long + `"}`, "summary"},
		{"negative price", `{"title":"T","isbn":"1","author_id":1,"price":"-1"}`, "price"},
		{"price with three decimals", `{"title":"T","isbn":"1","author_id":1,"price":"12.345"}`, "price"},
		{"price beyond column range", `{"title":"T","isbn":"1","author_id":1,"price":1e11}`, "price"},
		{"unknown author", `{"title":"T","isbn":"1","author_id":42}`, "author_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(r, http.MethodPost, "/books", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), `"field":"`+tt.field+`"`)
		})
	}

	// nothing was written
	var list []model.BookDTO
	require.NoError(t, json.Unmarshal(decode(t, call(r, http.MethodGet, "/books", "")).Data, &list))
	assert.Empty(t, list)
}

func TestSummaryAtLimitIsAccepted(t *testing.T) {
	r := newRouter(t)
	seedAuthor(t, r)

	summary := strings.Repeat("é", model.MaxSummaryLength)
	rec := call(r, http.MethodPost, "/books", `{"title":"T","isbn":"1","author_id":1,"summary":"`+summary+`"}`)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestUpdateBook(t *testing.T) {
	r := newRouter(t)
	seedAuthor(t, r)
	require.Equal(t, http.StatusCreated, call(r, http.MethodPost, "/books", `{"title":"T","isbn":"1","author_id":1}`).Code)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"id mismatch", "/books/1", `{"id":3,"title":"T","isbn":"1","author_id":1}`, http.StatusBadRequest},
		{"absent book with bad fields", "/books/9", `{"id":9}`, http.StatusNotFound},
		{"missing isbn", "/books/1", `{"id":1,"title":"T","author_id":1}`, http.StatusBadRequest},
		{"unknown author", "/books/1", `{"id":1,"title":"T","isbn":"1","author_id":5}`, http.StatusBadRequest},
		{"valid", "/books/1", `{"id":1,"title":"Renamed","isbn":"2","author_id":1}`, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(r, http.MethodPut, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}

	var got model.BookDTO
	require.NoError(t, json.Unmarshal(decode(t, call(r, http.MethodGet, "/books/1", "")).Data, &got))
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, "2", got.Isbn)
	assert.Nil(t, got.Price)
}

func TestBookNotFoundAndInvalidID(t *testing.T) {
	r := newRouter(t)

	assert.Equal(t, http.StatusNotFound, call(r, http.MethodGet, "/books/1", "").Code)
	assert.Equal(t, http.StatusNotFound, call(r, http.MethodDelete, "/books/1", "").Code)
	assert.Equal(t, http.StatusBadRequest, call(r, http.MethodGet, "/books/x", "").Code)
	assert.Equal(t, http.StatusBadRequest, call(r, http.MethodDelete, "/books/0", "").Code)
}
