package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tmeckel/m365-cli/internal/util"
)

func TestIsValidGUID(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"5d021339-4d62-4fe9-9d2a-c99bc56a157a", true},
		{"5D021339-4D62-4FE9-9D2A-C99BC56A157A", true},
		{"5d0213394d624fe99d2ac99bc56a157a", false},
		{"{5d021339-4d62-4fe9-9d2a-c99bc56a157a}", false},
		{"invalid", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, util.IsValidGUID(tt.value))
		})
	}
}
