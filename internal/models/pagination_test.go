package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	tests := []struct {
		name              string
		total, page, size int
		wantPages         int
		wantNext          bool
	}{
		{name: "Empty listing", total: 0, page: 1, size: 25, wantPages: 0, wantNext: false},
		{name: "Exact fit", total: 50, page: 1, size: 25, wantPages: 2, wantNext: true},
		{name: "Partial last page", total: 51, page: 3, size: 25, wantPages: 3, wantNext: false},
		{name: "Page past the end", total: 10, page: 4, size: 25, wantPages: 1, wantNext: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPage([]string{}, tt.total, tt.page, tt.size)

			assert.Equal(t, tt.wantPages, got.TotalPages)
			assert.Equal(t, tt.wantNext, got.HasNext)
			assert.Equal(t, tt.total, got.Total)
		})
	}
}
