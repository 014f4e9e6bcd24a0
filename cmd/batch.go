package cmd

import (
	"os"

	"github.com/mpakhapoca/mget/internal/output"
	"github.com/mpakhapoca/mget/internal/scheduler"
	"github.com/mpakhapoca/mget/internal/utils"
	"github.com/spf13/cobra"
)

func newBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch [YAML_FILE] [OPTIONS]",
		Short: "Download every link listed in a YAML file, one after another",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			entries, err := utils.ReadBatchFile(args[0])
			if err != nil {
				output.PrintError(err.Error())
				os.Exit(1)
			}
			cfg := buildConfig()
			requests, warnings := scheduler.BuildBatchRequests(entries, cfg)
			for _, warning := range warnings {
				output.PrintWarning("Skipping " + warning.Error())
			}
			if len(requests) == 0 {
				output.PrintError("No valid links found in the batch file")
				os.Exit(1)
			}
			if err := scheduler.Run(scheduler.BuildJobs(requests), newEngine(cfg, os.Stdout), os.Stdout); err != nil {
				os.Exit(1)
			}
		},
	}
}
