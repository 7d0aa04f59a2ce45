package cli

import (
	"context"

	"go.uber.org/fx"

	"urlate.dev/backend/internal/app"
	"urlate.dev/backend/internal/app/appcontext"
)

// Start builds the app for a one-off command and starts it so module populates.
// The returned stop func releases every connection.
func Start(module fx.Option) (stop func(), err error) {
	a := app.New(appcontext.Declare(appcontext.EnvCLI), module)
	if err := a.Start(context.Background()); err != nil {
		return nil, err
	}
	return func() {
		_ = a.Stop(context.Background())
	}, nil
}
