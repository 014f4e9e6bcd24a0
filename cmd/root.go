package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mpakhapoca/mget/internal/output"
	"github.com/mpakhapoca/mget/internal/scheduler"
	"github.com/mpakhapoca/mget/internal/transfer"
	"github.com/mpakhapoca/mget/internal/utils"
	"github.com/spf13/cobra"
)

var (
	outputDir string
	chunkSize int
	prefix    string
	suffix    string
	decimals  int
	proxyURL  string
	debug     bool
)

var rootCmd = &cobra.Command{
	Use:     "mget [URL]",
	Short:   "wget clone that streams a single file to disk",
	Version: utils.MgetVersion,
	Args:    cobra.MaximumNArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		utils.InitLogger(debug)
	},
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("Program exit with code 0")
			return
		}
		cfg := buildConfig()
		req, err := utils.NewDownloadRequest(args[0], cfg.OutputDir, cfg.ChunkSize)
		if err != nil {
			output.PrintError(err.Error())
			os.Exit(1)
		}
		jobs := scheduler.BuildJobs([]utils.DownloadRequest{req})
		if err := scheduler.Run(jobs, newEngine(cfg, os.Stdout), os.Stdout); err != nil {
			os.Exit(1)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildConfig() utils.Config {
	cfg := utils.DefaultConfig()
	cfg.OutputDir = outputDir
	cfg.ChunkSize = chunkSize
	cfg.Prefix = prefix
	cfg.Suffix = suffix
	cfg.Decimals = decimals
	cfg.ProxyURL = proxyURL
	cfg.BarWidth = output.BarWidth(output.TerminalWidth(), cfg.BarWidth, cfg.Prefix, cfg.Suffix)
	return cfg
}

func newEngine(cfg utils.Config, progress io.Writer) *transfer.Engine {
	client := utils.NewMgetHTTPClient(utils.HTTPClientConfig{ProxyURL: cfg.ProxyURL})
	return transfer.NewEngine(client, progress, cfg)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "Output directory (defaults to the current directory)")
	rootCmd.PersistentFlags().IntVar(&chunkSize, "chunk_size", utils.DefaultChunkSize, "Chunk size of the binary output in bytes")
	rootCmd.PersistentFlags().StringVar(&prefix, "prefix", "", "Text shown before the progress bar")
	rootCmd.PersistentFlags().StringVar(&suffix, "suffix", "", "Text shown after the progress bar")
	rootCmd.PersistentFlags().IntVar(&decimals, "decimals", 0, "Decimal places of the progress percentage")
	rootCmd.PersistentFlags().StringVarP(&proxyURL, "proxy", "p", "", "HTTP/HTTPS proxy URL (e.g., proxy.example.com:8080)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newBatchCmd())
}
