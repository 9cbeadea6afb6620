package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var cfgFile string

func main() {
	// Local development keeps API keys in a .env file.
	_ = godotenv.Load()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "prospector",
		Short: "Find and rank outreach prospects from developer communities",
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")

	root.AddCommand(runPipelineCmd())
	root.AddCommand(prospectsCmd())
	root.AddCommand(runsCmd())
	root.AddCommand(outreachCmd())
	root.AddCommand(statsCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(daemonCmd())

	return root
}

func runPipelineCmd() *cobra.Command {
	var (
		adapters   []string
		campaign   string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch, score and rank prospects from all adapters",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(adapters, campaign, jsonOutput)
		},
	}

	cmd.Flags().StringSliceVar(&adapters, "adapters", nil, "specific adapters to run (e.g., github,hn,bootcamps)")
	cmd.Flags().StringVar(&campaign, "campaign", "", "campaign to run (memex or openarcade; default: from config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func prospectsCmd() *cobra.Command {
	var (
		jsonOutput bool
		source     string
		minScore   float64
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "prospects",
		Short: "Show ranked prospects across all runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProspects(jsonOutput, source, minScore, limit)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	cmd.Flags().StringVar(&source, "source", "", "filter by source (e.g., github)")
	cmd.Flags().Float64Var(&minScore, "min-score", 0, "minimum final score")
	cmd.Flags().IntVar(&limit, "limit", 20, "max prospects to show")
	return cmd
}

func runsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show pipeline run history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func outreachCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outreach <prospect-id>",
		Short: "Generate a personalized outreach message for a prospect",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOutreach(args[0])
		},
	}
	return cmd
}

func statsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show prospect analytics and growth metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "server port (default: from config)")
	return cmd
}

func daemonCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Start daemon with scheduler and HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "server port (default: from config)")
	return cmd
}
