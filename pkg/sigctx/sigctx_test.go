package sigctx_test

import (
	"context"
	"testing"

	"github.com/niksmo/storefront/pkg/sigctx"
	"github.com/stretchr/testify/assert"
)

func TestNotifyContext(t *testing.T) {
	t.Run("Parent canceled", func(t *testing.T) {
		parent, cancel := context.WithCancel(context.Background())
		ctx, stop := sigctx.NotifyContext(parent)
		defer stop()

		cancel()
		<-ctx.Done()
		assert.ErrorIs(t, ctx.Err(), context.Canceled)
	})

	t.Run("Stop", func(t *testing.T) {
		ctx, stop := sigctx.NotifyContext(context.Background())
		assert.NoError(t, ctx.Err())
		stop()
		assert.Error(t, ctx.Err())
	})
}
