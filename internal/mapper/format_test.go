package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTokenAmount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "two fifty", raw: "2500000000000000000", want: "$2.50"},
		{name: "one dollar", raw: "1000000000000000000", want: "$1.00"},
		{name: "cents only", raw: "50000000000000000", want: "$0.05"},
		{name: "truncates sub-cent", raw: "1239000000000000000", want: "$1.23"},
		{name: "large", raw: "123450000000000000000", want: "$123.45"},
		{name: "zero", raw: "0", want: "$0.00"},
		{name: "empty", raw: "", want: "$0.00"},
		{name: "garbage", raw: "not-a-number", want: "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTokenAmount(tt.raw))
		})
	}
}
