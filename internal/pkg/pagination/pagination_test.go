package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name           string
		pageStr        string
		limitStr       string
		expectedPage   int
		expectedLimit  int
		expectedOffset int
		expectedError  error
	}{
		{name: "defaults", pageStr: "", limitStr: "", expectedPage: 1, expectedLimit: DefaultLimit, expectedOffset: 0},
		{name: "explicit values", pageStr: "3", limitStr: "20", expectedPage: 3, expectedLimit: 20, expectedOffset: 40},
		{name: "limit clamped to max", pageStr: "1", limitStr: "500", expectedPage: 1, expectedLimit: MaxLimit, expectedOffset: 0},
		{name: "zero page normalized", pageStr: "0", limitStr: "10", expectedPage: 1, expectedLimit: 10, expectedOffset: 0},
		{name: "negative limit normalized", pageStr: "1", limitStr: "-5", expectedPage: 1, expectedLimit: DefaultLimit, expectedOffset: 0},
		{name: "non-numeric page rejected", pageStr: "abc", limitStr: "", expectedError: ErrInvalidPage},
		{name: "non-numeric limit rejected", pageStr: "1", limitStr: "xyz", expectedError: ErrInvalidLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := Parse(tt.pageStr, tt.limitStr)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, params)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedPage, params.Page)
			assert.Equal(t, tt.expectedLimit, params.Limit)
			assert.Equal(t, tt.expectedOffset, params.Offset)
		})
	}
}
