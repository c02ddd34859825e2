package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
	assert.Contains(t, info.String(), "templechat v")
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate())

	orig := Version
	defer func() { Version = orig }()
	Version = "not-a-version"
	assert.Error(t, Validate())
}

func TestAtLeast(t *testing.T) {
	tests := []struct {
		name    string
		minimum string
		want    bool
	}{
		{name: "older minimum", minimum: "0.1.0", want: true},
		{name: "same version", minimum: Version, want: true},
		{name: "newer minimum", minimum: "99.0.0", want: false},
		{name: "invalid minimum", minimum: "garbage", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AtLeast(tt.minimum))
		})
	}
}
