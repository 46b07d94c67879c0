package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"FirstName", []string{"first", "name"}},
		{"first_name", []string{"first", "name"}},
		{"OrderID", []string{"order", "id"}},
		{"HTTPStatus", []string{"http", "status"}},
		{"getHTTPResponse", []string{"get", "http", "response"}},
		{"price-cents", []string{"price", "cents"}},
		{"ID", []string{"id"}},
		{"", nil},
		{"__", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.in))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "firstname", Normalize("FirstName"))
	assert.Equal(t, "firstname", Normalize("first_name"))
	assert.Equal(t, "firstname", Normalize("FIRST_NAME"))
	assert.Equal(t, Normalize("UserID"), Normalize("user_id"))
	assert.Empty(t, Normalize(""))
}
