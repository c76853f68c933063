package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"050-123-4567", "+972501234567"},
		{"0501234567", "+972501234567"},
		{"972501234567", "+972501234567"},
		{"+972 50 123 4567", "+972501234567"},
		{"(054) 111-2223", "+972541112223"},
		{"972541112223", "+972541112223"},
		{"0541112223", "+972541112223"},
	}
	for _, tc := range cases {
		got, err := NormalizePhone(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestNormalizePhoneSameAccountKey(t *testing.T) {
	a, err := NormalizePhone("0541112223")
	require.NoError(t, err)
	b, err := NormalizePhone("972541112223")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNormalizePhoneRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "12", "05"} {
		_, err := NormalizePhone(in)
		assert.ErrorIs(t, err, ErrBadPhone, "input %q", in)
	}
}

func TestNewVerificationCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := NewVerificationCode()
		require.NoError(t, err)
		require.Len(t, code, 4)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}
