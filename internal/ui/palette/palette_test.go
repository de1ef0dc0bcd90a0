package palette

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
)

func TestPlaceholder_StableAndDark(t *testing.T) {
	a := Placeholder("a.jpg")
	assert.Equal(t, a, Placeholder("a.jpg"))
	assert.NotEqual(t, a, Placeholder("b.jpg"))

	for _, uri := range []string{"", "a.jpg", "https://jf/Items/x/Images/Primary"} {
		c, ok := colorful.MakeColor(Placeholder(uri))
		assert.True(t, ok)
		l, _, _ := c.Hcl()
		assert.Less(t, l, 0.5, "placeholders stay close to the surface")
	}
}

func TestSelection_Endpoints(t *testing.T) {
	assert.True(t, Selection(1).(colorful.Color).AlmostEqualRgb(primary))
	assert.True(t, Selection(0).(colorful.Color).AlmostEqualRgb(accent))
	assert.Equal(t, Selection(1), Selection(7))
}
