package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr error
	}{
		{in: "12", want: 12},
		{in: " 7 ", want: 7},
		{in: "0", want: 0},
		{in: "", wantErr: ErrQuantityRequired},
		{in: "   ", wantErr: ErrQuantityRequired},
		{in: "abc", wantErr: ErrQuantityNotNumeric},
		{in: "1.5", wantErr: ErrQuantityNotNumeric},
		{in: "-3", wantErr: ErrQuantityNegative},
		{in: "2147483647", want: MaxQuantity},
		{in: "2147483648", wantErr: ErrQuantityTooLarge},
		{in: "3000000000", wantErr: ErrQuantityTooLarge},
		{in: "-3000000000", wantErr: ErrQuantityNegative},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseQuantity(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
