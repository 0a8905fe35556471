package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateISBN(t *testing.T) {
	type isbnReq struct {
		ISBN string `validate:"required,isbn"`
	}

	valid := []string{
		"9781617291784",
		"978-1-61729-178-4",
		"0136091814",
		"080442957X",
	}
	for _, isbn := range valid {
		assert.Nil(t, ValidateStruct(isbnReq{ISBN: isbn}), "expected %q to validate", isbn)
	}

	invalid := []string{
		"",
		"not-an-isbn",
		"12345",
		"97816172917840",
	}
	for _, isbn := range invalid {
		assert.NotNil(t, ValidateStruct(isbnReq{ISBN: isbn}), "expected %q to fail", isbn)
	}
}

func TestValidateStruct_Messages(t *testing.T) {
	errs := ValidateStruct(AddItemRequest{Price: -1})
	require.NotEmpty(t, errs)

	fields := make(map[string]string)
	for _, e := range errs {
		fields[e.Field] = e.Message
	}
	assert.Contains(t, fields, "iD")
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "price")
}
