package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bankstat/bankstat/pkg/config"
	"github.com/bankstat/bankstat/pkg/extract"
	"github.com/bankstat/bankstat/pkg/models"
	"github.com/bankstat/bankstat/pkg/service"
)

var (
	cfgFile      string
	manifestFile string
)

var rootCmd = &cobra.Command{
	Use:   "bankstat",
	Short: "Convert bank statement PDFs into a consolidated spreadsheet",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Show help when no subcommand is provided
		return cmd.Help()
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert [flags] <directory>",
	Short: "Extract transactions from every PDF in a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(log.InfoLevel)

		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		var manifest *models.Manifest
		if manifestFile != "" {
			manifest, err = models.LoadManifest(manifestFile)
			if err != nil {
				return err
			}
		}

		processor := service.NewProcessor(cfg, logger, newExtractor(cfg, logger), manifest, promptPassword)

		dir := args[0]
		agg, err := processor.ProcessDirectory(dir)
		if err != nil {
			return err
		}

		xlsxPath, csvPath, err := processor.WriteOutputs(dir, agg)
		if err != nil {
			return err
		}

		logger.Info("workbook saved", "path", xlsxPath)
		logger.Info("csv saved", "path", csvPath)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is bankstat.yaml)")

	convertCmd.Flags().StringVar(&manifestFile, "manifest", "", "YAML manifest with per-file passwords")
	convertCmd.Flags().Bool("ocr", true, "OCR fallback for unreadable PDFs")
	convertCmd.Flags().String("workbook", "", "Output workbook name")
	convertCmd.Flags().String("csv", "", "Output CSV name")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(inspectCmd)
}

func newLogger(level log.Level) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Prefix:          "bankstat",
		Level:           level,
	})
}

func newExtractor(cfg *config.Config, logger *log.Logger) *extract.Extractor {
	var ocr extract.OCREngine
	if cfg.OCREnabled {
		ocr = extract.NewTesseractOCR(logger)
	}
	return extract.New(logger, ocr)
}

// promptPassword reads a password without echo. Returns empty when stdin
// is not a terminal, so headless runs fall through to no password.
func promptPassword(filename string) string {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return ""
	}

	fmt.Fprintf(os.Stderr, "Password for %s: ", filename)
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return ""
	}
	return string(pw)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
