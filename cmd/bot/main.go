package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"TradeSentinel/internal/config"
	"TradeSentinel/internal/evaluator"
	"TradeSentinel/internal/model"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:           "bot",
		Short:         "TradeSentinel trading signal bot",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBot(cmd.Context(), cfgPath)
		},
	}

	defaultPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", defaultPath, "path to the YAML config file")

	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Run the scheduler, Telegram polling and metrics server",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runBot(cmd.Context(), cfgPath)
			},
		},
		&cobra.Command{
			Use:   "once",
			Short: "Run a single cycle and print the evaluation as JSON",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runOnce(cmd.Context(), cfgPath, cmd.OutOrStdout())
			},
		},
		newEvaluateCmd(&cfgPath),
	)
	return root
}

func newEvaluateCmd(cfgPath *string) *cobra.Command {
	var contextFile, product string
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate a saved market context offline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			params := cfg.Strategy.Params()
			if err := params.Validate(); err != nil {
				return fmt.Errorf("strategy: %w", err)
			}
			if product == "" {
				product = cfg.Product
			}
			p, err := model.ParseProduct(product)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(contextFile)
			if err != nil {
				return fmt.Errorf("read context: %w", err)
			}
			var in model.Context
			if err := json.Unmarshal(data, &in); err != nil {
				return fmt.Errorf("parse context: %w", err)
			}

			ev := evaluator.New(params, cfg.Strategy.ROCLookback).Evaluate(p, &in)
			return printJSON(cmd.OutOrStdout(), ev)
		},
	}
	cmd.Flags().StringVar(&contextFile, "context", "", "JSON file holding the market context")
	cmd.Flags().StringVar(&product, "product", "", "product id, defaults to the configured product")
	_ = cmd.MarkFlagRequired("context")
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func runBot(parent context.Context, cfgPath string) error {
	log.Println("[INFO] TradeSentinel starting...")

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.sched.Register(cfg.Schedule.CycleCron); err != nil {
		return err
	}
	a.sched.Start()
	defer a.sched.Stop()

	if a.telegram != nil {
		go a.telegram.StartPolling(ctx, a.sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	if a.server != nil {
		a.server.Start()
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			if err := a.server.Stop(shutdownCtx); err != nil {
				log.Printf("[WARN] metrics server shutdown: %v", err)
			}
		}()
	}

	if cfg.RunOnStart {
		log.Println("[INFO] run_on_start enabled, executing cycle now")
		go a.sched.RunNow()
	}

	log.Printf("[INFO] TradeSentinel is running for %s (dry_run=%v). Press Ctrl+C to stop.", cfg.Product, cfg.DryRun)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
	case <-ctx.Done():
	}

	cancel()
	log.Println("[INFO] TradeSentinel stopped")
	return nil
}

func runOnce(parent context.Context, cfgPath string, w io.Writer) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	ctx, cancel := context.WithTimeout(parent, 2*time.Minute)
	defer cancel()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	ev, cycleErr := a.sched.RunCycle(ctx)
	if ev == nil {
		return cycleErr
	}
	if err := printJSON(w, ev); err != nil {
		return err
	}
	return cycleErr
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
