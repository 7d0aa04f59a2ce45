// Package appcontext tells shared wiring which entrypoint assembled the graph.
package appcontext

type Env int

const (
	// EnvServer is the long running HTTP process. It also hosts the workers.
	EnvServer Env = iota
	// EnvCLI is a one-shot command that exits after its action.
	EnvCLI
)

func (e Env) String() string {
	switch e {
	case EnvServer:
		return "server"
	case EnvCLI:
		return "cli"
	default:
		return "unknown"
	}
}

type Ctx struct {
	Env Env
}

func Declare(env Env) Ctx {
	return Ctx{Env: env}
}

// HostsWorkers reports whether background consumers and schedulers may be
// attached. One-shot commands never host them so they can exit promptly.
func (c Ctx) HostsWorkers() bool {
	return c.Env == EnvServer
}
