// Package config loads the configuration keys spec.md §6 recognises from
// the process environment (optionally overlaid from a .env file via
// joho/godotenv) and resolves them into a *controller.Config. It is the
// string-keyed front door; controller.Config is the already-resolved,
// in-memory configuration a MemoryController is built from.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/sarchlab/dramcachectl/controller"
	"github.com/sarchlab/dramcachectl/core"
)

// envPrefix namespaces every recognised key, e.g. DRAMCACHE_CACHE_SCHEME.
const envPrefix = "DRAMCACHE_"

// Loader resolves configuration from environment variables, with an
// optional .env overlay loaded first (godotenv.Load never overwrites a key
// already set in the real environment).
type Loader struct {
	envFile string
}

// NewLoader returns a Loader with no .env overlay.
func NewLoader() *Loader {
	return &Loader{}
}

// WithEnvFile sets a .env-format file to overlay onto the environment
// before resolution, mirroring the teacher's WithXxx builder idiom.
func (l *Loader) WithEnvFile(path string) *Loader {
	l.envFile = path
	return l
}

// Load resolves a *controller.Config from the environment. Unset keys fall
// back to controller.NewConfig()'s defaults.
func (l *Loader) Load() (*controller.Config, error) {
	if l.envFile != "" {
		if err := godotenv.Load(l.envFile); err != nil {
			return nil, fmt.Errorf("config: loading env file %q: %w", l.envFile, err)
		}
	}

	cfg := controller.NewConfig()

	if v, ok := lookup("NAME"); ok {
		cfg.WithName(v)
	}

	if v, ok := lookup("CACHE_SCHEME"); ok {
		scheme, err := parseScheme(v)
		if err != nil {
			return nil, err
		}
		cfg.WithScheme(scheme)
	}

	if v, ok := lookup("GRANULARITY"); ok {
		g, err := parseGranularity(v)
		if err != nil {
			return nil, err
		}
		cfg.WithGranularity(g)
	}

	if n, err := lookupInt("NUM_WAYS"); err != nil {
		return nil, err
	} else if n != nil {
		cfg.WithNumWays(*n)
	}

	if n, err := lookupInt("SIZE_MB"); err != nil {
		return nil, err
	} else if n != nil {
		cfg.WithSizeMiB(*n)
	}

	if n, err := lookupInt("FOOTPRINT_SIZE"); err != nil {
		return nil, err
	} else if n != nil {
		cfg.WithFootprintSize(*n)
	}

	if n, err := lookupInt("MCDRAM_PER_MC"); err != nil {
		return nil, err
	} else if n != nil {
		cfg.WithMcdramPerMC(*n)
	}

	if b, err := lookupBool("SRAM_TAG"); err != nil {
		return nil, err
	} else if b != nil {
		cfg.WithSRAMTag(*b)
	}

	if b, err := lookupBool("BW_BALANCE"); err != nil {
		return nil, err
	} else if b != nil {
		cfg.WithBWBalance(*b)
	}

	if b, err := lookupBool("IDEAL"); err != nil {
		return nil, err
	} else if b != nil {
		cfg.WithIdeal(*b)
	}

	if v, ok := lookup("TRACE_DIR"); ok {
		cfg.WithTrace(true, v)
	}

	if n, err := lookupInt("LLC_LATENCY"); err != nil {
		return nil, err
	} else if n != nil {
		cfg.WithLLCLatency(core.Cycle(*n))
	}

	if n, err := lookupInt("OS_QUANTUM"); err != nil {
		return nil, err
	} else if n != nil {
		cfg.WithOSQuantum(uint64(*n))
	}

	if n, err := lookupInt("MAX_PFN"); err != nil {
		return nil, err
	} else if n != nil {
		cfg.WithMaxPFN(uint32(*n))
	}

	tbSets, err := lookupInt("TAG_BUFFER_SETS")
	if err != nil {
		return nil, err
	}
	tbWays, err := lookupInt("TAG_BUFFER_WAYS")
	if err != nil {
		return nil, err
	}
	if tbSets != nil || tbWays != nil {
		sets, ways := cfg.TagBufferSets, cfg.TagBufferWays
		if tbSets != nil {
			sets = *tbSets
		}
		if tbWays != nil {
			ways = *tbWays
		}
		cfg.WithTagBufferSize(sets, ways)
	}

	return cfg, nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + key)
	return v, ok && v != ""
}

func lookupInt(key string) (*int, error) {
	v, ok := lookup(key)
	if !ok {
		return nil, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("config: %s%s: %w", envPrefix, key, err)
	}

	return &n, nil
}

func lookupBool(key string) (*bool, error) {
	v, ok := lookup(key)
	if !ok {
		return nil, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, fmt.Errorf("config: %s%s: %w", envPrefix, key, err)
	}

	return &b, nil
}

func parseScheme(v string) (controller.Scheme, error) {
	switch strings.ToLower(v) {
	case "nocache":
		return controller.SchemeNoCache, nil
	case "cacheonly":
		return controller.SchemeCacheOnly, nil
	case "alloycache":
		return controller.SchemeAlloyCache, nil
	case "unisoncache":
		return controller.SchemeUnisonCache, nil
	case "hybridcache":
		return controller.SchemeHybridCache, nil
	case "hma":
		return controller.SchemeHMA, nil
	case "tagless":
		return controller.SchemeTagless, nil
	case "basiccache":
		return controller.SchemeBasicCache, nil
	case "trimma":
		return controller.SchemeTrimma, nil
	case "sd", "sdcache":
		return controller.SchemeSD, nil
	default:
		return 0, fmt.Errorf("config: unrecognised cache_scheme %q", v)
	}
}

func parseGranularity(v string) (controller.Granularity, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: granularity %q: %w", v, err)
	}

	switch controller.Granularity(n) {
	case controller.Granularity64B, controller.Granularity4KiB, controller.Granularity2MiB:
		return controller.Granularity(n), nil
	default:
		return 0, fmt.Errorf("config: granularity must be 64, 4096 or 2097152, got %d", n)
	}
}
