package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/rl1809/rice-trace/internal/adapter/handler"
	"github.com/rl1809/rice-trace/internal/adapter/ledger"
	"github.com/rl1809/rice-trace/internal/config"
	"github.com/rl1809/rice-trace/internal/core/domain"
	"github.com/rl1809/rice-trace/internal/core/service"
)

// runner executes one action either in-process or through a remote server.
type runner func(ctx context.Context, action domain.Action, fields domain.Fields) (domain.Outcome, error)

func main() {
	var (
		actionName = flag.String("action", "", "action to run: "+actionList())
		grpcAddr   = flag.String("grpc", "", "run through a ricetrace gRPC server at this address")
		ledgerURL  = flag.String("ledger", "", "ledger service base URL (overrides config)")
		burst      = flag.Int("burst", 1, "number of concurrent invocations")
		asJSON     = flag.Bool("json", false, "print outcomes as JSON")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: ricectl -action <name> [flags] [field=value ...]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	action := domain.Action(*actionName)
	if !action.Valid() {
		flag.Usage()
		os.Exit(2)
	}

	fields, err := parseFields(flag.Args())
	if err != nil {
		log.Fatalf("invalid field: %v", err)
	}

	ctx := context.Background()

	var run runner
	if *grpcAddr != "" {
		conn, err := grpc.NewClient(*grpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			log.Fatalf("failed to connect grpc: %v", err)
		}
		defer conn.Close()
		run = handler.NewGRPCClient(conn).Run
	} else {
		baseURL := *ledgerURL
		if baseURL == "" {
			cfg, err := config.Load()
			if err != nil {
				log.Fatalf("failed to load config: %v", err)
			}
			baseURL = cfg.Ledger.BaseURL
		}
		svc := service.NewActionService(ledger.NewHTTPGateway(baseURL, nil), nil)
		run = func(ctx context.Context, action domain.Action, fields domain.Fields) (domain.Outcome, error) {
			return svc.Run(ctx, action, fields), nil
		}
	}

	if *burst <= 1 {
		out, err := run(ctx, action, fields)
		if err != nil {
			log.Fatalf("%s: %v", action, err)
		}
		printOutcome(out, *asJSON)
		if !out.OK() {
			os.Exit(1)
		}
		return
	}

	runBurst(ctx, run, action, fields, *burst)
}

// runBurst fires n independent invocations at once and prints a tally.
func runBurst(ctx context.Context, run runner, action domain.Action, fields domain.Fields, n int) {
	var successCount, validationCount, failCount atomic.Int32
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			out, err := run(ctx, action, fields)
			switch {
			case err != nil || out.Kind == domain.OutcomeFailure:
				failCount.Add(1)
			case out.Kind == domain.OutcomeValidation:
				validationCount.Add(1)
			default:
				successCount.Add(1)
			}
		}()
	}

	wg.Wait()
	elapsed := time.Since(start)

	fmt.Println("============ BURST RESULTS ============")
	fmt.Printf("Action:           %s\n", action)
	fmt.Printf("Invocations:      %d\n", n)
	fmt.Printf("Successful:       %d\n", successCount.Load())
	fmt.Printf("Validation:       %d\n", validationCount.Load())
	fmt.Printf("Failed:           %d\n", failCount.Load())
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("=======================================")

	if failCount.Load() > 0 {
		os.Exit(1)
	}
}

func parseFields(args []string) (domain.Fields, error) {
	fields := domain.Fields{}
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("%q is not name=value", arg)
		}
		fields[name] = value
	}
	return fields, nil
}

func printOutcome(out domain.Outcome, asJSON bool) {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(out)
		return
	}

	switch out.Kind {
	case domain.OutcomeValidation:
		fmt.Printf("%s (missing: %s)\n", out.Message, strings.Join(out.Missing, ", "))
	default:
		fmt.Println(out.Message)
	}
}

func actionList() string {
	names := make([]string, 0, len(domain.Actions))
	for _, a := range domain.Actions {
		required := service.Required(a)
		if len(required) == 0 {
			names = append(names, string(a))
			continue
		}
		names = append(names, fmt.Sprintf("%s(%s)", a, strings.Join(required, ",")))
	}
	return strings.Join(names, " ")
}
