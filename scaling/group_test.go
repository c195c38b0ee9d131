package scaling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapacity_Double(t *testing.T) {
	tests := []struct {
		name    string
		in      Capacity
		want    Capacity
		wantErr bool
	}{
		{name: "typical", in: Capacity{Min: 1, Max: 3, Desired: 2}, want: Capacity{Min: 2, Max: 6, Desired: 4}},
		{name: "zero", in: Capacity{}, want: Capacity{}},
		{name: "largest doublable", in: Capacity{Max: math.MaxInt32 / 2}, want: Capacity{Max: math.MaxInt32 - 1}},
		{name: "overflow", in: Capacity{Max: math.MaxInt32/2 + 1}, wantErr: true},
		{name: "negative", in: Capacity{Min: -1, Max: 2, Desired: 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.Double()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCapacity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCapacity_String(t *testing.T) {
	assert.Equal(t, "min=1, max=3, desired=2", Capacity{Min: 1, Max: 3, Desired: 2}.String())
}

func TestGroup_InService(t *testing.T) {
	g := &Group{Instances: []Instance{
		{ID: "i-1", LifecycleState: "InService"},
		{ID: "i-2", LifecycleState: "Pending"},
		{ID: "i-3", LifecycleState: "Terminating"},
		{ID: "i-4", LifecycleState: "InService"},
	}}

	var ids []string
	for _, inst := range g.InService() {
		ids = append(ids, inst.ID)
	}
	assert.Equal(t, []string{"i-1", "i-4"}, ids)
}
