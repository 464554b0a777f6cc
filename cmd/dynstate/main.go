package main

import (
	"github.com/gogpu/dynstate/internal/cli"

	// Backends install themselves into the registry.
	_ "github.com/gogpu/dynstate/backend/softpipe"
	_ "github.com/gogpu/dynstate/backend/wgpu"
)

func main() {
	cli.Execute()
}
