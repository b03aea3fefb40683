package policy_test

import (
	"testing"

	"github.com/gnames/gnbirds/pkg/ent/policy"
	"github.com/gnames/gnbirds/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		input string
		res   policy.Policy
	}{
		{"ignore", policy.Ignore},
		{" WARN ", policy.Warn},
		{"Error", policy.Error},
	}
	for _, v := range tests {
		res, err := policy.New(v.input)
		require.NoError(t, err, v.input)
		assert.Equal(t, v.res, res, v.input)
		assert.Equal(t, res.String(), v.res.String())
	}

	_, err := policy.New("raise")
	require.Error(t, err)
	assert.Equal(t, errcode.UnknownPolicyError, errcode.Code(err))
	assert.True(t, errcode.IsInvalidArgument(err))
}
