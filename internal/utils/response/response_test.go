package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	require.NoError(t, WriteJSON(w, http.StatusCreated, map[string]int{"id": 1}))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "{\"id\":1}\n", w.Body.String())
}

func TestWritePrettyJSON(t *testing.T) {
	t.Run("indents two spaces", func(t *testing.T) {
		w := httptest.NewRecorder()
		require.NoError(t, WritePrettyJSON(w, http.StatusOK, []map[string]int{{"id": 1}}))

		assert.Equal(t, "[\n  {\n    \"id\": 1\n  }\n]\n", w.Body.String())
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	})

	t.Run("empty slice is an empty array", func(t *testing.T) {
		w := httptest.NewRecorder()
		require.NoError(t, WritePrettyJSON(w, http.StatusOK, []int{}))

		assert.Equal(t, "[]\n", w.Body.String())
	})
}

func TestGeneralError(t *testing.T) {
	got := GeneralError(errors.New("boom"))
	assert.Equal(t, Response{Status: StatusError, Error: "boom"}, got)
}

func TestValidationError(t *testing.T) {
	type query struct {
		Name string `validate:"required"`
		Sort string `validate:"oneof=field year"`
		Year string `validate:"number"`
		Age  int    `validate:"max=3"`
	}

	err := validator.New().Struct(query{Sort: "name", Year: "x", Age: 10})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	got := ValidationError(verrs)
	assert.Equal(t, StatusError, got.Status)
	assert.Equal(t,
		"field Name is required, field Sort must be one of: field year, "+
			"field Year must be a non-negative integer, field Age is invalid",
		got.Error)
}
