package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/native/pkg/errors"
)

type quitOnly struct{}

func (quitOnly) Quit() {}

func TestRequireMissingCapability(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(*errors.Error)
		require.True(t, ok)
		assert.Equal(t, errors.KindInvariant, err.Kind)
		assert.Contains(t, err.Error(), "platform.GroupPlatform")
	}()
	Require[GroupPlatform](quitOnly{}, "build group")
}

func TestColorLerp(t *testing.T) {
	from := RGB(0, 100, 200)
	to := RGBA8(200, 100, 0, 0)

	assert.Equal(t, from, from.Lerp(to, 0))
	assert.Equal(t, to, from.Lerp(to, 1))
	assert.Equal(t, RGBA8(100, 100, 100, 128), from.Lerp(to, 0.5))
	assert.Equal(t, RGBA8(255, 100, 0, 0), from.Lerp(to, 2), "overshoot saturates")
}

func TestPressString(t *testing.T) {
	assert.Equal(t, "released", Released.String())
	assert.Equal(t, "#ff000000", ColorBlack.String())
}
