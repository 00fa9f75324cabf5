// SPDX-License-Identifier: EPL-2.0

package ambisonic

import (
	"errors"
	"testing"
)

func TestChannelCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		order   int
		want    int
		wantErr bool
	}{
		{0, 1, false},
		{1, 4, false},
		{2, 9, false},
		{3, 16, false},
		{MaxOrder, 256, false},
		{-1, 0, true},
		{MaxOrder + 1, 0, true},
	}

	for _, tc := range tests {
		got, err := ChannelCount(tc.order)
		if tc.wantErr {
			if !errors.Is(err, ErrUnsupportedOrder) {
				t.Errorf("ChannelCount(%d) error = %v, want ErrUnsupportedOrder", tc.order, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ChannelCount(%d) unexpected error: %v", tc.order, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ChannelCount(%d) = %d, want %d", tc.order, got, tc.want)
		}
	}
}

func TestOrderFromChannels(t *testing.T) {
	t.Parallel()

	for order := 0; order <= MaxOrder; order++ {
		c, _ := ChannelCount(order)
		got, err := OrderFromChannels(c)
		if err != nil {
			t.Fatalf("OrderFromChannels(%d): %v", c, err)
		}
		if got != order {
			t.Errorf("OrderFromChannels(%d) = %d, want %d", c, got, order)
		}
	}

	for _, c := range []int{0, 2, 3, 5, 8, 10} {
		if _, err := OrderFromChannels(c); !errors.Is(err, ErrChannelMismatch) {
			t.Errorf("OrderFromChannels(%d) error = %v, want ErrChannelMismatch", c, err)
		}
	}
}

func TestDegreeACNRoundTrip(t *testing.T) {
	t.Parallel()

	acn := 0
	for l := 0; l <= 5; l++ {
		for m := -l; m <= l; m++ {
			if got := Index(l, m); got != acn {
				t.Errorf("Index(%d, %d) = %d, want %d", l, m, got, acn)
			}
			gl, gm := Degree(acn)
			if gl != l || gm != m {
				t.Errorf("Degree(%d) = (%d, %d), want (%d, %d)", acn, gl, gm, l, m)
			}
			acn++
		}
	}
}
