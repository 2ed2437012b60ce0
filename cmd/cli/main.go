package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"probcalc/adapters/excel"
	"probcalc/app"
	"probcalc/domain/distribution"
	"probcalc/internal"
	"probcalc/internal/render"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "probcalc-cli",
		Short:         "Evaluate binomial, Poisson, hypergeometric and normal probabilities",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "WARN", "Log level (ERROR, WARN, INFO, DEBUG, TRACE)")

	logger := func(cmd *cobra.Command) *internal.Logger {
		return internal.NewLoggerTo(cmd.ErrOrStderr(), internal.ParseLogLevel(logLevel))
	}

	for _, kind := range distribution.Kinds {
		rootCmd.AddCommand(newDistributionCmd(kind, logger))
	}
	rootCmd.AddCommand(newSampleCmd(logger), newDefaultsCmd())

	return rootCmd
}

// paramFlags registers one flag per distribution parameter, seeded with the
// canonical defaults
type paramFlags struct {
	ints   map[string]*int
	floats map[string]*float64
}

var paramUsage = map[string]string{
	"n":          "number of trials (binomial) or sample size (hypergeometric)",
	"x":          "number of successes",
	"p":          "probability of success",
	"lambda":     "average rate λ",
	"population": "population size N",
	"successes":  "successes in population K",
	"draws":      "sample size n",
	"mu":         "mean μ",
	"sigma":      "standard deviation σ",
	"a":          "lower bound, or the point for at_most and at_z",
	"b":          "upper bound, or the point for at_least",
}

func addParamFlags(cmd *cobra.Command, kind distribution.Kind) *paramFlags {
	pf := &paramFlags{ints: map[string]*int{}, floats: map[string]*float64{}}
	defaults := distribution.Defaults(kind).Params()
	if kind == distribution.KindNormal {
		// bounds default relative to the chosen mean, mode and deviation
		pf.floats["a"] = cmd.Flags().Float64("a", 0, paramUsage["a"]+" (default depends on --mode)")
		pf.floats["b"] = cmd.Flags().Float64("b", 0, paramUsage["b"]+" (default depends on --mode)")
		delete(defaults, "a")
		delete(defaults, "b")
	}
	for name, value := range defaults {
		switch name {
		case "n", "x", "population", "successes", "draws":
			pf.ints[name] = cmd.Flags().Int(name, int(value), paramUsage[name])
		default:
			pf.floats[name] = cmd.Flags().Float64(name, value, paramUsage[name])
		}
	}
	return pf
}

// values returns every parameter flag; Normal bounds only when set explicitly
func (pf *paramFlags) values(cmd *cobra.Command) map[string]float64 {
	params := make(map[string]float64, len(pf.ints)+len(pf.floats))
	for name, v := range pf.ints {
		params[name] = float64(*v)
	}
	for name, v := range pf.floats {
		if (name == "a" || name == "b") && !cmd.Flags().Changed(name) {
			continue
		}
		params[name] = *v
	}
	return params
}

func newDistributionCmd(kind distribution.Kind, logger func(*cobra.Command) *internal.Logger) *cobra.Command {
	var (
		steps  bool
		format string
		xlsx   string
		mode   string
	)

	cmd := &cobra.Command{
		Use:   string(kind),
		Short: fmt.Sprintf("Evaluate a %s probability", kind.Title()),
		Args:  cobra.NoArgs,
	}
	params := addParamFlags(cmd, kind)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		outFormat, err := render.ParseFormat(format)
		if err != nil {
			return err
		}

		service := app.NewCalculatorService(nil, logger(cmd))
		calc, err := service.Calculate(cmd.Context(), app.CalculationInput{
			Kind:   string(kind),
			Mode:   mode,
			Params: params.values(cmd),
			Steps:  steps || outFormat == render.FormatLaTeX,
			Sample: xlsx != "",
		})
		if err != nil {
			return err
		}

		if xlsx != "" {
			err := excel.WriteXLSX(xlsx, excel.Report{
				Request: calc.Request,
				Result:  calc.Result,
				Moments: calc.Moments,
				Samples: calc.Samples,
			})
			if err != nil {
				return err
			}
			logger(cmd).Info("wrote %s", xlsx)
		}

		return printCalculation(cmd.OutOrStdout(), calc, outFormat)
	}

	cmd.Flags().BoolVar(&steps, "steps", false, "Show the formula steps")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, latex, markdown or json")
	cmd.Flags().StringVar(&xlsx, "xlsx", "", "Also export the result and samples to this .xlsx file")
	if kind == distribution.KindNormal {
		cmd.Flags().StringVar(&mode, "mode", string(distribution.ModeAtMost), "Probability: at_most, at_least, between or at_z")
	}

	return cmd
}

func printCalculation(w io.Writer, calc *app.Calculation, format render.Format) error {
	switch format {
	case render.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Kind distribution.Kind `json:"kind"`
			*app.Calculation
		}{calc.Request.Kind(), calc})
	case render.FormatMarkdown:
		_, err := io.WriteString(w, render.Report(calc.Request, calc.Result, calc.Moments))
		return err
	case render.FormatLaTeX:
		return render.LaTeX(w, calc.Result.Steps)
	}

	if _, err := fmt.Fprintln(w, calc.Headline); err != nil {
		return err
	}
	if len(calc.Result.Steps) > 0 {
		fmt.Fprintln(w)
		return render.Text(w, calc.Result.Steps)
	}
	return nil
}

func newSampleCmd(logger func(*cobra.Command) *internal.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print the plotting points of a distribution",
	}

	for _, kind := range distribution.Kinds {
		var mode string
		sub := &cobra.Command{
			Use:   string(kind),
			Short: fmt.Sprintf("Sample the %s mass or density function", kind.Title()),
			Args:  cobra.NoArgs,
		}
		params := addParamFlags(sub, kind)
		sub.RunE = func(cmd *cobra.Command, args []string) error {
			service := app.NewCalculatorService(nil, logger(cmd))
			points, summary, err := service.Sample(app.CalculationInput{
				Kind:   string(kind),
				Mode:   mode,
				Params: params.values(cmd),
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-12s %-12s %s\n", "x", "density", "shaded")
			for _, p := range points {
				fmt.Fprintf(w, "%-12s %-12s %t\n",
					distribution.FormatValue(p.X, 4), distribution.FormatValue(p.Density, 6), p.Shaded)
			}
			fmt.Fprintf(w, "\n%d points, plotted mass %s, shaded mass %s\n",
				summary.Points, distribution.FormatValue(summary.Mass, 5), distribution.FormatValue(summary.ShadedMass, 5))
			return nil
		}
		if kind == distribution.KindNormal {
			sub.Flags().StringVar(&mode, "mode", string(distribution.ModeAtMost), "Probability: at_most, at_least, between or at_z")
		}
		cmd.AddCommand(sub)
	}
	return cmd
}

func newDefaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "List the default parameters of every distribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, kind := range distribution.Kinds {
				fmt.Fprintf(w, "%-16s %s\n", kind, distribution.Defaults(kind))
			}
			return nil
		},
	}
}
