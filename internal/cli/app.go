package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"finvault/internal/core"
	"finvault/internal/insights"
	"finvault/internal/report"
	"finvault/internal/tax"
)

// App is the offline finvault command line: it evaluates tax profiles and
// ledgers from local TOML, YAML or JSON files without a server.
type App struct {
	rootCmd *cobra.Command
	console *report.Console
	now     func() time.Time
}

func NewApp(version string, out io.Writer) *App {
	app := &App{console: report.NewConsole(out), now: time.Now}

	rootCmd := &cobra.Command{
		Use:           "finvault",
		Short:         "Personal finance calculators on local files",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.PersistentFlags().StringP("input", "i", "", "Path to a TOML, YAML, or JSON input file")
	_ = rootCmd.MarkPersistentFlagRequired("input")

	taxCmd := &cobra.Command{
		Use:   "tax",
		Short: "Compare the old and new income tax regimes",
		RunE:  app.runTax,
	}
	taxCmd.Flags().String("pdf", "", "Also write the comparison to this PDF file")

	insightsCmd := &cobra.Command{
		Use:   "insights",
		Short: "Spending patterns, forecast and recommendations for a ledger",
		RunE:  app.runInsights,
	}
	insightsCmd.Flags().String("now", "", "Reference date (YYYY-MM-DD), default today")

	rootCmd.AddCommand(taxCmd, insightsCmd)
	app.rootCmd = rootCmd
	return app
}

// SetArgs overrides os.Args, for tests.
func (app *App) SetArgs(args []string) { app.rootCmd.SetArgs(args) }

func (app *App) Execute() error {
	return app.rootCmd.Execute()
}

func (app *App) runTax(cmd *cobra.Command, _ []string) error {
	input, _ := cmd.Flags().GetString("input")
	pdfPath, _ := cmd.Flags().GetString("pdf")

	in, err := report.LoadTaxInput(input)
	if err != nil {
		return err
	}
	profile := in.Profile()
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("invalid tax profile: %w", err)
	}

	res, err := tax.ComputeProfile(profile)
	if err != nil {
		return err
	}

	title := "Tax comparison FY " + profile.FinancialYear
	if in.Name != "" {
		title += " - " + in.Name
	}
	app.console.PrintTax(title, res)

	if pdfPath == "" {
		return nil
	}
	f, err := os.Create(pdfPath)
	if err != nil {
		return fmt.Errorf("create pdf: %w", err)
	}
	if err := report.WriteTaxPDF(f, title, profile, res, app.now()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close pdf: %w", err)
	}
	pterm.Success.WithWriter(cmd.OutOrStdout()).Printfln("PDF written to %s", pdfPath)
	return nil
}

func (app *App) runInsights(cmd *cobra.Command, _ []string) error {
	input, _ := cmd.Flags().GetString("input")
	nowFlag, _ := cmd.Flags().GetString("now")

	now := app.now()
	if nowFlag != "" {
		d, err := core.ParseDate(nowFlag)
		if err != nil {
			return fmt.Errorf("--now: %w", err)
		}
		now = d.Time
	}

	in, err := report.LoadLedgerInput(input)
	if err != nil {
		return err
	}
	txns, err := in.Ledger()
	if err != nil {
		return err
	}

	app.console.PrintInsights(
		insights.AnalyzePatterns(txns, now),
		insights.Forecast(txns, now),
		insights.Recommend(txns, now),
	)
	app.console.PrintCategories(insights.Summarize(txns, insights.LastMonths(now, insights.PatternWindowMonths)))
	return nil
}
