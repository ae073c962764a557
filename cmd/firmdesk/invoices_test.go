package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLineFlag(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantDesc  string
		wantQty   string
		wantPrice string
		wantErr   bool
	}{
		{
			name:      "simple line",
			raw:       "Audit fieldwork:10:25.00",
			wantDesc:  "Audit fieldwork",
			wantQty:   "10",
			wantPrice: "25",
		},
		{
			name:      "description containing colons",
			raw:       "Review: phase 2:1.5:150",
			wantDesc:  "Review: phase 2",
			wantQty:   "1.5",
			wantPrice: "150",
		},
		{
			name:    "too few segments",
			raw:     "just a description",
			wantErr: true,
		},
		{
			name:    "bad quantity",
			raw:     "Work:ten:25",
			wantErr: true,
		},
		{
			name:    "bad price",
			raw:     "Work:10:lots",
			wantErr: true,
		},
		{
			name:    "empty description",
			raw:     ":10:25",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := parseLineFlag(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDesc, line.Description)
			assert.Equal(t, tt.wantQty, line.Quantity.String())
			assert.Equal(t, tt.wantPrice, line.UnitPrice.String())
		})
	}
}
