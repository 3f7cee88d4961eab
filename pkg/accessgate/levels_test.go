package accessgate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessLevel_Ordering(t *testing.T) {
	assert.True(t, AccessBasic.Rank() < AccessLimited.Rank())
	assert.True(t, AccessLimited.Rank() < AccessPremium.Rank())

	assert.True(t, AccessPremium.AtLeast(AccessBasic))
	assert.True(t, AccessPremium.AtLeast(AccessPremium))
	assert.True(t, AccessLimited.AtLeast(AccessBasic))
	assert.False(t, AccessBasic.AtLeast(AccessLimited))
	assert.False(t, AccessBasic.AtLeast(AccessPremium))
}

func TestAccessLevel_Valid(t *testing.T) {
	assert.True(t, AccessBasic.Valid())
	assert.True(t, AccessLimited.Valid())
	assert.True(t, AccessPremium.Valid())
	assert.False(t, AccessLevel("admin").Valid())
	assert.False(t, AccessLevel("").Valid())
}

func TestParseAccessLevel(t *testing.T) {
	level, err := ParseAccessLevel("premium")
	require.NoError(t, err)
	assert.Equal(t, AccessPremium, level)

	_, err = ParseAccessLevel("root")
	assert.Error(t, err)
}
