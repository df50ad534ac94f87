// Command memocalc evaluates "<a> <op> <b>" expressions through a memoized
// calculator. Expressions come from the arguments, or from stdin one per line.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/on-the-ground/memoize_ive_go/calc"
	"github.com/on-the-ground/memoize_ive_go/config"
	"github.com/on-the-ground/memoize_ive_go/config/configkeys"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const envPrefix = "MEMOCALC"

func main() {
	if err := newRootCmd(config.New(envPrefix)).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	var (
		configFile string
		showStats  bool
	)

	cmd := &cobra.Command{
		Use:   "memocalc [EXPRESSION...]",
		Short: "Evaluate arithmetic expressions through a memoizing cache",
		Example: `  memocalc "1 + 2" "1 + 2" --stats
  printf '6 * 7\n1 / 0\n' | memocalc --strategy lfu --max-size 2`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return config.ReadFile(v, configFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(v)
			if err != nil {
				return err
			}
			logger, err := settings.Logger()
			if err != nil {
				return fmt.Errorf("failed to build logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			calculator, err := calc.New(logger, config.Options[float64](settings)...)
			if err != nil {
				return err
			}
			logger.Debug("calculator ready",
				zap.Int("max_size", settings.MaxSize),
				zap.Stringer("strategy", settings.Strategy),
				zap.Duration("ttl", settings.TTL),
			)

			var src io.Reader = cmd.InOrStdin()
			if len(args) > 0 {
				src = strings.NewReader(strings.Join(args, "\n"))
			}
			if err := evaluate(calculator, src, cmd.OutOrStdout()); err != nil {
				return err
			}
			if showStats {
				printStats(cmd.OutOrStdout(), calculator)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configFile, "config", "c", "", "config file (yaml, json or toml)")
	flags.BoolVar(&showStats, "stats", false, "print cache statistics when done")
	flags.Int("max-size", 0, "maximum number of cached results (0 = unbounded)")
	flags.String("strategy", "recency", "eviction strategy: recency|age|frequency")
	flags.Duration("ttl", 0, "entries older than this are recomputed (0 = never)")
	flags.String("log-level", "info", "log level")

	_ = v.BindPFlag(configkeys.MemoizeMaxSize, flags.Lookup("max-size"))
	_ = v.BindPFlag(configkeys.MemoizeStrategy, flags.Lookup("strategy"))
	_ = v.BindPFlag(configkeys.MemoizeTTL, flags.Lookup("ttl"))
	_ = v.BindPFlag(configkeys.LogLevel, flags.Lookup("log-level"))

	return cmd
}

// evaluate prints one result per expression. Bad expressions are reported
// inline and do not stop the run.
func evaluate(calculator *calc.Calculator, src io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		expr := strings.TrimSpace(scanner.Text())
		if expr == "" {
			continue
		}
		result, err := calculator.Eval(expr)
		if err != nil {
			fmt.Fprintf(out, "%s = error: %v\n", expr, err)
			continue
		}
		fmt.Fprintf(out, "%s = %s\n", expr, humanize.Ftoa(result))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read expressions: %w", err)
	}
	return nil
}

func printStats(out io.Writer, calculator *calc.Calculator) {
	s := calculator.Stats()
	fmt.Fprintf(out, "cached: %s, hits: %s, misses: %s, evictions: %s, expirations: %s, failures: %s\n",
		humanize.Comma(int64(s.Len)),
		humanize.Comma(int64(s.Hits)),
		humanize.Comma(int64(s.Misses)),
		humanize.Comma(int64(s.Evictions)),
		humanize.Comma(int64(s.Expirations)),
		humanize.Comma(int64(s.Failures)),
	)
}
