package initchecker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type provider interface {
	Name() string
}

type impl struct{}

func (*impl) Name() string { return "impl" }

func TestCheckInit(t *testing.T) {
	t.Run(`all dependencies set`, func(t *testing.T) {
		var p provider = &impl{}
		require.NotPanics(t, func() {
			CheckInit("provider", p, "value", 1)
		})
	})
	t.Run(`nil interface`, func(t *testing.T) {
		var p provider
		require.PanicsWithValue(t, "зависимость provider не инициализирована", func() {
			CheckInit("provider", p)
		})
	})
	t.Run(`typed nil`, func(t *testing.T) {
		var ptr *impl
		var p provider = ptr
		require.Panics(t, func() {
			CheckInit("provider", p)
		})
	})
	t.Run(`odd arguments`, func(t *testing.T) {
		require.Panics(t, func() {
			CheckInit("provider")
		})
	})
}
