// Command evaluate fits the models once and runs evaluations from the shell.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"mortgage/internal/app"
	"mortgage/internal/config"
	"mortgage/internal/handler"
	"mortgage/internal/model"
	"mortgage/internal/service"
	"mortgage/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
)

// Build-time variables (set via -ldflags).
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// session carries what PersistentPreRunE prepared for the subcommands
type session struct {
	cfg    *config.Config
	logger *utils.Logger
	bundle *service.ModelBundle
}

func (s *session) load(cmd *cobra.Command) error {
	if s.bundle != nil {
		return nil
	}
	bundle, err := app.LoadBundle(cmd.Context(), s.cfg, s.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize models: %w", err)
	}
	s.bundle = bundle
	return nil
}

func newRootCmd(out io.Writer) *cobra.Command {
	s := &session{}

	root := &cobra.Command{
		Use:           "evaluate",
		Short:         "Mortgage evaluation for one metropolitan submarket",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if path, _ := cmd.Flags().GetString("data"); path != "" {
				cfg.Dataset.Source = config.SourceCSV
				cfg.Dataset.Path = path
			}
			if cmd.Flags().Changed("seed") {
				cfg.Model.Seed, _ = cmd.Flags().GetInt64("seed")
				cfg.Model.SeedSet = true
			}

			level := cfg.Logging.Level
			if l, _ := cmd.Flags().GetString("log-level"); l != "" {
				level = l
			}
			s.cfg = cfg
			s.logger = utils.NewLoggerTo(cmd.ErrOrStderr(), utils.ParseLevel(level))
			return nil
		},
	}
	root.SetOut(out)

	root.PersistentFlags().String("data", "", "CSV dataset path (overrides DATASET_PATH and DATASET_SOURCE)")
	root.PersistentFlags().Int64("seed", 0, "seed for synthetic borrower attributes (overrides MODEL_SEED)")
	root.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newRunCmd(s))
	root.AddCommand(newDistrictsCmd(s))
	root.AddCommand(newModelCmd(s))
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "evaluate %s (commit %s)\n", Version, GitCommit)
		},
	}
}

func newRunCmd(s *session) *cobra.Command {
	defaults := handler.DefaultEvaluateRequest()
	req := defaults
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "run [district]",
		Short: "Estimate property value, loan-to-value and interest rate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.District = args[0]
			if err := validateRequest(req); err != nil {
				return err
			}
			if err := s.load(cmd); err != nil {
				return err
			}

			district, ok := s.bundle.ResolveDistrict(req.District)
			if !ok {
				return fmt.Errorf("unknown district %q (see the districts command)", req.District)
			}
			score, _ := s.bundle.LocationScore(district)

			result, err := s.bundle.Evaluator().Evaluate(model.EvaluationRequest{
				LocationScore: score,
				SizeSqft:      req.SizeSqft,
				NumRooms:      req.NumRooms,
				LoanAmount:    req.LoanAmount,
				CreditScore:   req.CreditScore,
				AnnualIncome:  req.AnnualIncome,
			})
			if err != nil {
				return err
			}

			resp := model.EvaluateResponse{
				District:      district,
				LocationScore: score,
				Result:        result,
				Display:       handler.Display(result),
			}
			return writeEvaluation(cmd.OutOrStdout(), resp, asJSON)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&req.SizeSqft, "size", defaults.SizeSqft, "property size in square feet (300-5000)")
	f.IntVar(&req.NumRooms, "rooms", defaults.NumRooms, "number of rooms (1-10)")
	f.Float64Var(&req.LoanAmount, "loan", defaults.LoanAmount, "loan amount in MYR (50000-3000000)")
	f.IntVar(&req.CreditScore, "credit", defaults.CreditScore, "credit score (300-850)")
	f.Float64Var(&req.AnnualIncome, "income", defaults.AnnualIncome, "annual income in MYR (20000-500000)")
	f.BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func newDistrictsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "districts",
		Short: "List the districts and their location scores",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.load(cmd); err != nil {
				return err
			}
			for _, d := range s.bundle.DistrictOptions() {
				fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s\n", d.LocationScore, d.District)
			}
			return nil
		},
	}
}

func newModelCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "model",
		Short: "Print the fitted model summary as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.load(cmd); err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(s.bundle.Describe())
		},
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}

// validateRequest applies the same range rules as the HTTP API
func validateRequest(req model.EvaluateRequest) error {
	err := validate.Struct(req)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fe := verrs[0]
	return fmt.Errorf("invalid %s: %v violates %s=%s", fe.Field(), fe.Value(), fe.Tag(), fe.Param())
}

func writeEvaluation(w io.Writer, resp model.EvaluateResponse, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	fmt.Fprintln(w, "Evaluation Complete")
	fmt.Fprintf(w, "  District:                  %s (score %d)\n", resp.District, resp.LocationScore)
	fmt.Fprintf(w, "  Estimated Property Value:  %s\n", resp.Display.EstimatedValue)
	fmt.Fprintf(w, "  Loan-to-Value Ratio:       %s\n", resp.Display.LTV)
	fmt.Fprintf(w, "  Recommended Interest Rate: %s%%\n", resp.Display.InterestRate)
	return nil
}
