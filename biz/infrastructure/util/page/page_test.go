package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkip(t *testing.T) {
	tests := []struct {
		name     string
		page     int64
		pageSize int64
		want     int64
	}{
		{name: "first page", page: 1, pageSize: 10, want: 0},
		{name: "third page", page: 3, pageSize: 20, want: 40},
		{name: "zero page", page: 0, pageSize: 20, want: 0},
		{name: "unlimited", page: 2, pageSize: 0, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Skip(tt.page, tt.pageSize))
		})
	}
}
