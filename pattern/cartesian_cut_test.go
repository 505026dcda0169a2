package pattern

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toposim/toposim/cartesian"
)

// With both the cut and remainder patterns set to Identity, CartesianCut
// must itself behave as the identity over the whole uncut range: every
// origin index maps straight through regardless of whether it falls
// inside or outside the cut block.
func TestCartesianCutWithIdentitySubpatternsIsIdentity(t *testing.T) {
	cc := &CartesianCut{
		uncutData:        cartesian.New([]int{6}),
		cutData:          cartesian.New([]int{2}),
		cutOffsets:       []int{0},
		cutStrides:       []int{1},
		cutPattern:       &Identity{},
		remainderPattern: &Identity{},
	}
	cc.Initialize(6, 6, nil, nil)
	for origin := 0; origin < 6; origin++ {
		require.Equal(t, origin, cc.GetDestination(origin, nil, nil))
	}
}
