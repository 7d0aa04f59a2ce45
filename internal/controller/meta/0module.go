package meta

import "go.uber.org/fx"

// Module registers the unversioned routes: the landing page, build info,
// health and the admin surface.
func Module() fx.Option {
	return fx.Module("controllers.meta", fx.Invoke(
		RegisterMeta,
		RegisterAdmin,
	))
}
