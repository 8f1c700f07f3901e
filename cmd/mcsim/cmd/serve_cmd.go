package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/sarchlab/dramcachectl/config"
	"github.com/sarchlab/dramcachectl/controller"
	"github.com/sarchlab/dramcachectl/core"
	"github.com/sarchlab/dramcachectl/internal/pagetable"
	"github.com/sarchlab/dramcachectl/monitoring"
	"github.com/sarchlab/dramcachectl/placement"
	"github.com/sarchlab/dramcachectl/timing"
)

var (
	servePort int
	serveOpen bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a controller against synthetic traffic and serve its live stats.",
	Run: func(_ *cobra.Command, _ []string) {
		loader := config.NewLoader()
		if envFile != "" {
			loader = loader.WithEnvFile(envFile)
		}

		cfg, err := loader.Load()
		if err != nil {
			log.Fatalf("mcsim: %v", err)
		}
		if cfg.Name == "" {
			cfg.WithName("mc0")
		}

		near := timing.NewDDRBackend(20, 80, 2, cfg.DRAMTimingScale)
		far := timing.SimpleBackend{Latency: 200}

		pt := pagetable.New(pagetable.PFN(cfg.MaxPFN))
		c := controller.New(cfg, near, far, placement.LRULinePolicy{},
			&placement.LRUPagePolicy{}, &placement.OSRemapPolicy{HotThreshold: 8}, pt)

		mon := monitoring.NewMonitor().WithPortNumber(servePort)
		mon.RegisterController(c)

		addr, err := mon.StartServer()
		if err != nil {
			log.Fatalf("mcsim: %v", err)
		}

		if serveOpen {
			if err := browser.OpenURL(addr); err != nil {
				fmt.Fprintf(os.Stderr, "mcsim: could not open browser: %v\n", err)
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		driveSyntheticTraffic(ctx, c)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to serve the monitor on (0: random)")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "open the monitor page in a browser")
	rootCmd.AddCommand(serveCmd)
}

// driveSyntheticTraffic issues a steady stream of requests over a small
// working set, purely so the monitor's live counters have something to
// show; mcsim is a demo/inspection harness, not a trace replayer (trace
// replay is out of this core's scope per spec.md §1).
func driveSyntheticTraffic(ctx context.Context, c *controller.MemoryController) {
	var addr core.LineAddr
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		req := &core.Request{LineAddress: addr % 4096, Kind: core.LoadShared, ArrivalCycle: 0}
		c.Access(req)
		addr++

		time.Sleep(time.Millisecond)
	}
}
