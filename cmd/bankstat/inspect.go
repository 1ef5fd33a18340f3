package main

import (
	"github.com/charmbracelet/log"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/bankstat/bankstat/pkg/config"
	"github.com/bankstat/bankstat/pkg/parser"
)

// inspectCmd dumps what the pipeline makes of a single file, for tuning
// keyword tables against a new bank's layout.
var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] <file.pdf>",
	Short: "Show the parsed records of one PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(log.DebugLevel)

		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		password, _ := cmd.Flags().GetString("password")

		res := newExtractor(cfg, logger).Lines(args[0], password)
		if res.Failed {
			logger.Error("extraction failed", "reason", res.Reason)
			return nil
		}

		sections := parser.Sections(res.Lines, cfg.SectionHeaders)
		records := parser.New(cfg, logger).File(sections, args[0])

		pp.Println(records)
		logger.Info("inspected", "lines", len(res.Lines), "records", len(records))
		return nil
	},
}

func init() {
	inspectCmd.Flags().String("password", "", "PDF password")
	inspectCmd.Flags().Bool("ocr", true, "OCR fallback for unreadable PDFs")
}
