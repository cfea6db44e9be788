package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"runtime/pprof"

	"github.com/akmistry/intervalmap/internal/app/ivbench"
)

var (
	backendFlag   = flag.String("backend", "btree", "Breakpoint store: btree, radix or bitmap")
	keysFlag      = flag.String("keys", "1M", "Size of the key space")
	opsFlag       = flag.Int("ops", 100000, "Number of operations")
	maxLengthFlag = flag.String("max-length", "4K", "Maximum length of a Set range")
	valuesFlag    = flag.Int("values", 8, "Number of distinct values")
	seedFlag      = flag.Int64("seed", 1, "Random seed")
	verifyFlag    = flag.Bool("verify", false, "Check every operation against a dense model")
	verboseFlag   = flag.Bool("verbose", false, "Verbose logging")

	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	if flag.NArg() != 0 {
		log.Print("Usage: ivbench [flags]")
		os.Exit(1)
	}

	if *verboseFlag {
		slog.SetDefault(slog.New(slog.NewTextHandler(
			os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	backend, err := ivbench.ParseBackend(*backendFlag)
	if err != nil {
		log.Print(err)
		os.Exit(1)
	}
	keys, err := ivbench.ParseKeyCount(*keysFlag)
	if err != nil || keys == 0 {
		log.Printf("Invalid keys flag: %s", *keysFlag)
		os.Exit(1)
	}
	maxLength, err := ivbench.ParseKeyCount(*maxLengthFlag)
	if err != nil || maxLength == 0 {
		log.Printf("Invalid max-length flag: %s", *maxLengthFlag)
		os.Exit(1)
	}
	if *opsFlag <= 0 || *valuesFlag <= 0 {
		log.Print("ops and values must be positive")
		os.Exit(1)
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		err = pprof.StartCPUProfile(f)
		if err != nil {
			log.Fatal(err)
		}
		defer pprof.StopCPUProfile()
	}

	opts := ivbench.Options{
		Keys:      keys,
		Ops:       *opsFlag,
		MaxLength: maxLength,
		Values:    *valuesFlag,
		Seed:      *seedFlag,
		Verify:    *verifyFlag,
	}
	slog.Info("Starting run", "backend", backend, "keys", keys, "ops", opts.Ops)

	m := ivbench.NewMap(backend, 0, keys)
	res, err := ivbench.Run(m, opts)
	if err != nil {
		log.Println("Run error: ", err)
		pprof.StopCPUProfile()
		os.Exit(1)
	}
	log.Printf("%s: %v", backend, res)
}
