// Command mcsim is the CLI front end for the DRAM-cache memory controller
// core: it resolves configuration and can run a monitored session against
// it, mirroring the teacher's akita/cmd tool's role as the project's CLI
// surface.
package main

import "github.com/sarchlab/dramcachectl/cmd/mcsim/cmd"

func main() {
	cmd.Execute()
}
