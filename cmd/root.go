package cmd

import (
	"context"
	"etfoptimizer/internal"
	"etfoptimizer/internal/calculator"
	"etfoptimizer/internal/logger"
	"etfoptimizer/internal/service"
	treasury_client "etfoptimizer/pkg/treasury"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "etfoptimizer",
	Short:         "ETF price collection and portfolio optimization",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() error {
	return rootCmd.Execute()
}

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "serve the HTTP API",
	RunE: func(c *cobra.Command, args []string) error {
		port, err := c.Flags().GetInt("port")
		if err != nil {
			return err
		}
		deps, err := InitializeDependencies()
		if err != nil {
			return err
		}
		defer CloseDependencies(deps)
		return deps.ApiHandler.StartApi(port)
	},
}

var importEtfsCmd = &cobra.Command{
	Use:   "import-etfs <file>",
	Short: "import the security catalog from csv",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		deps, err := InitializeDependencies()
		if err != nil {
			return err
		}
		defer CloseDependencies(deps)

		n, err := deps.ImportService.ImportEtfs(cmdContext(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("imported %d securities\n", n)
		return nil
	},
}

var importHistoryCmd = &cobra.Command{
	Use:   "import-history <file>",
	Short: "import price history from csv",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		deps, err := InitializeDependencies()
		if err != nil {
			return err
		}
		defer CloseDependencies(deps)

		n, err := deps.ImportService.ImportHistory(cmdContext(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("imported %d price points\n", n)
		return nil
	},
}

var importCategoriesCmd = &cobra.Command{
	Use:   "import-categories <file>",
	Short: "import category assignments from csv",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		deps, err := InitializeDependencies()
		if err != nil {
			return err
		}
		defer CloseDependencies(deps)

		n, err := deps.ImportService.ImportCategories(cmdContext(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("assigned %d categories\n", n)
		return nil
	},
}

var ingestCmd = &cobra.Command{
	Use:   "ingest <isin=symbol> [...]",
	Short: "pull daily prices from Yahoo for the given isin/symbol pairs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		symbolsByIsin := map[string]string{}
		for _, arg := range args {
			isin, symbol, ok := strings.Cut(arg, "=")
			if !ok || isin == "" || symbol == "" {
				return fmt.Errorf("expected isin=symbol, got %q", arg)
			}
			symbolsByIsin[isin] = symbol
		}

		yearsBack, err := c.Flags().GetInt("years")
		if err != nil {
			return err
		}

		deps, err := InitializeDependencies()
		if err != nil {
			return err
		}
		defer CloseDependencies(deps)

		tx, err := deps.ApiHandler.Db.Begin()
		if err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}
		defer tx.Rollback()

		start := time.Now().UTC().AddDate(-yearsBack, 0, 0)
		err = deps.ApiHandler.IngestService.IngestMany(cmdContext(), tx, symbolsByIsin, start)
		if err != nil {
			return err
		}

		return tx.Commit()
	},
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "optimize a portfolio over the selected categories",
	RunE: func(c *cobra.Command, args []string) error {
		in, err := optimizeInputFromFlags(c)
		if err != nil {
			return err
		}

		deps, err := InitializeDependencies()
		if err != nil {
			return err
		}
		defer CloseDependencies(deps)

		result, err := deps.ApiHandler.OptimizationService.Optimize(cmdContext(), *in)
		if err != nil {
			return err
		}
		internal.Pprint(result)
		return nil
	},
}

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "rolling evaluation of the optimizer over historical windows",
	RunE: func(c *cobra.Command, args []string) error {
		in, err := optimizeInputFromFlags(c)
		if err != nil {
			return err
		}
		decisionYears, err := c.Flags().GetInt("decision-years")
		if err != nil {
			return err
		}
		replayYears, err := c.Flags().GetInt("replay-years")
		if err != nil {
			return err
		}

		deps, err := InitializeDependencies()
		if err != nil {
			return err
		}
		defer CloseDependencies(deps)

		result, err := deps.ApiHandler.BacktestService.RollingBacktest(cmdContext(), service.RollingBacktestInput{
			Optimization:  *in,
			DecisionYears: decisionYears,
			ReplayYears:   replayYears,
		})
		if err != nil {
			return err
		}
		if result.Metrics != nil {
			internal.Pprint(result.Metrics)
		}
		fmt.Printf("%d periods, terminal value %s\n",
			len(result.Periods), result.Curve[len(result.Curve)-1].Value.StringFixed(2))
		return nil
	},
}

func cmdContext() context.Context {
	return context.WithValue(context.Background(), logger.ContextKey, logger.New())
}

func optimizeInputFromFlags(c *cobra.Command) (*service.OptimizeInput, error) {
	flags := c.Flags()

	categoryIDs, err := flags.GetInt32Slice("categories")
	if err != nil {
		return nil, err
	}
	extraIsins, err := flags.GetStringSlice("isins")
	if err != nil {
		return nil, err
	}
	modelStr, err := flags.GetString("model")
	if err != nil {
		return nil, err
	}
	objectiveStr, err := flags.GetString("objective")
	if err != nil {
		return nil, err
	}
	strategyStr, err := flags.GetString("strategy")
	if err != nil {
		return nil, err
	}
	startStr, err := flags.GetString("start")
	if err != nil {
		return nil, err
	}
	endStr, err := flags.GetString("end")
	if err != nil {
		return nil, err
	}
	budget, err := flags.GetFloat64("budget")
	if err != nil {
		return nil, err
	}
	reinvest, err := flags.GetBool("reinvest")
	if err != nil {
		return nil, err
	}
	cutoff, err := flags.GetFloat64("cutoff")
	if err != nil {
		return nil, err
	}
	targetReturn, err := flags.GetFloat64("target-return")
	if err != nil {
		return nil, err
	}
	targetVolatility, err := flags.GetFloat64("target-volatility")
	if err != nil {
		return nil, err
	}
	riskFreeRate, err := flags.GetFloat64("risk-free-rate")
	if err != nil {
		return nil, err
	}

	start, err := time.Parse(time.DateOnly, startStr)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startStr, err)
	}
	end, err := time.Parse(time.DateOnly, endStr)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", endStr, err)
	}

	in := service.OptimizeInput{
		CategoryIDs:      categoryIDs,
		ExtraIsins:       extraIsins,
		TargetReturn:     targetReturn,
		TargetVolatility: targetVolatility,
		RiskFreeRate:     riskFreeRate,
		Start:            start,
		End:              end,
		Budget:           decimal.NewFromFloat(budget),
		Reinvest:         reinvest,
		WeightCutoff:     cutoff,
	}

	if modelStr != "" {
		in.Model, err = calculator.ParseReturnRiskModel(modelStr)
		if err != nil {
			return nil, err
		}
	}
	if objectiveStr != "" {
		in.Objective, err = service.ParseObjective(objectiveStr)
		if err != nil {
			return nil, err
		}
	}
	if strategyStr != "" {
		in.Strategy, err = calculator.ParseAllocationStrategy(strategyStr)
		if err != nil {
			return nil, err
		}
	}

	if !flags.Changed("risk-free-rate") {
		rate, err := treasury_client.RiskFreeRate(end)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch risk free rate: %w", err)
		}
		in.RiskFreeRate = rate
	}

	return &in, nil
}

func addOptimizeFlags(c *cobra.Command) {
	flags := c.Flags()
	flags.Int32Slice("categories", nil, "category ids to include")
	flags.StringSlice("isins", nil, "additional isins to include")
	flags.String("model", "mean_variance", "return/risk model")
	flags.String("objective", "max_sharpe", "optimization objective")
	flags.String("strategy", "greedy", "share allocation strategy")
	flags.String("start", "", "history start date (YYYY-MM-DD)")
	flags.String("end", "", "history end date (YYYY-MM-DD)")
	flags.Float64("budget", 10000, "investment budget")
	flags.Bool("reinvest", false, "spend leftover cash on additional shares")
	flags.Float64("cutoff", 0, "drop weights below this threshold")
	flags.Float64("target-return", 0, "target return for efficient_return")
	flags.Float64("target-volatility", 0, "target volatility for efficient_risk")
	flags.Float64("risk-free-rate", 0, "risk free rate; fetched from treasury data when unset")
}

func init() {
	apiCmd.Flags().Int("port", 3009, "port to serve on")
	ingestCmd.Flags().Int("years", 5, "years of history to pull")

	addOptimizeFlags(optimizeCmd)
	addOptimizeFlags(backtestCmd)
	backtestCmd.Flags().Int("decision-years", 3, "years of history per optimization")
	backtestCmd.Flags().Int("replay-years", 1, "years each allocation is held")

	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(importEtfsCmd)
	rootCmd.AddCommand(importHistoryCmd)
	rootCmd.AddCommand(importCategoriesCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(backtestCmd)
}
