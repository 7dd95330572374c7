package subscription

import (
	"context"

	"go.uber.org/fx"
)

// Module exposes the subscription service via Fx. Shutdown waits for pending
// audit log writes.
var Module = fx.Options(
	fx.Provide(NewService),
	fx.Invoke(func(lc fx.Lifecycle, s *Service) {
		lc.Append(fx.Hook{OnStop: func(context.Context) error {
			s.Wait()
			return nil
		}})
	}),
)
