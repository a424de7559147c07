package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Username   string   `json:"username" validate:"notblank"`
	Categories []string `json:"categories" validate:"min=1,dive,notblank"`
	Date       string   `json:"orderDate" validate:"omitempty,datetime=2006-01-02"`
}

func TestValidateStruct(t *testing.T) {
	errs := ValidateStruct(&sample{Username: "  ", Date: "19/10/2026"})

	require.Len(t, errs, 3)
	assert.Equal(t, "username", errs[0].FailedField)
	assert.Equal(t, "notblank", errs[0].Tag)
	assert.Equal(t, "categories", errs[1].FailedField)
	assert.Equal(t, "min", errs[1].Tag)
	assert.Equal(t, "orderDate", errs[2].FailedField)
}

func TestValidateStruct_OK(t *testing.T) {
	errs := ValidateStruct(&sample{Username: "somchai", Categories: []string{"Bags"}, Date: "2026-10-19"})
	assert.Empty(t, errs)
}
