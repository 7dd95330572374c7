package main

// @title           Subscription Console API
// @version         1.0
// @description     Billing console for multi-tenant storefronts: plans, tenants, GST invoices and site content.
// @termsOfService  http://example.com/terms/

// @contact.name   API Support
// @contact.url    http://www.example.com/support
// @contact.email  support@example.com

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8888
// @BasePath  /

import (
	"context"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/fatflowers/console/internal/app"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code. SIGINT/SIGTERM are handled by fx.
func run() int {
	a := fx.New(
		app.Module,
		// fx lifecycle events go through the service logger once it is built.
		fx.WithLogger(func(l *zap.SugaredLogger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Desugar().WithOptions(zap.IncreaseLevel(zap.WarnLevel))}
		}),
	)
	// Logging might not be ready when the graph fails to build.
	fallback := zap.NewExample().Sugar()

	startCtx, cancel := context.WithTimeout(context.Background(), app.DefaultStartTimeout)
	defer cancel()
	if err := a.Start(startCtx); err != nil {
		fallback.Errorf("failed to start app: %v", err)
		return 1
	}

	sig := <-a.Wait()

	stopCtx, cancelStop := context.WithTimeout(context.Background(), app.DefaultStopTimeout)
	defer cancelStop()
	if err := a.Stop(stopCtx); err != nil {
		fallback.Errorf("failed to stop app: %v", err)
		return 1
	}
	return sig.ExitCode
}
