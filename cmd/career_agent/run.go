package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/career-wizard/internal/config"
	"github.com/jonathan/career-wizard/internal/hierarchy"
	"github.com/jonathan/career-wizard/internal/llm"
	"github.com/jonathan/career-wizard/internal/materials"
	"github.com/jonathan/career-wizard/internal/observability"
	"github.com/jonathan/career-wizard/internal/wizard"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Walk the update wizard against a career transition node",
	Long: `Drives a full wizard session from a JSON answers file: selects activities,
fills each derived step, uploads brand building screenshots, and submits the
update. Configuration can be loaded from a JSON file using --config;
command-line arguments override config file values.`,
	RunE: runWizardCmd,
}

var (
	runConfigPath  string
	runServerURL   string
	runToken       string
	runNodeID      string
	runAnswersPath string
	runScreenshots []string
	runAPIKey      string
	runVerbose     bool
)

func init() {
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runServerURL, "server", "s", "", "Base URL of the career wizard API")
	runCommand.Flags().StringVar(&runToken, "token", "", "Bearer token for authenticated endpoints")
	runCommand.Flags().StringVarP(&runNodeID, "node", "n", "", "Career transition node UUID")
	runCommand.Flags().StringVarP(&runAnswersPath, "answers", "a", "", "Path to the JSON answers file")
	runCommand.Flags().StringSliceVar(&runScreenshots, "screenshot", nil, "Screenshot file to upload for brand building (repeatable)")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed progress information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key for the optional recap (defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(runCommand)
}

// answersFile is the wizard script: a data aggregate plus local screenshot
// paths to upload before the brand building step. Material entries, when
// given, are summarized into the application-materials payload.
type answersFile struct {
	wizard.Data
	Materials       []materials.Entry `json:"materials,omitempty"`
	ScreenshotPaths []string          `json:"screenshotPaths,omitempty"`
}

func loadAnswers(path string) (*answersFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers file %s: %w", path, err)
	}
	var ans answersFile
	if err := json.Unmarshal(data, &ans); err != nil {
		return nil, fmt.Errorf("failed to parse answers JSON: %w", err)
	}
	if ans.ApplicationMaterials && ans.ApplicationMaterialsData == nil && len(ans.Materials) > 0 {
		ans.ApplicationMaterialsData = materials.Summarize(ans.Materials).Meta()
	}
	return &ans, nil
}

// validateAnswers runs the per-entry validation each step would enforce.
func validateAnswers(ans *answersFile) error {
	if !ans.HasSelection() {
		return fmt.Errorf("answers must select at least one activity or provide notes")
	}
	for i := range ans.NetworkingData {
		if err := ans.NetworkingData[i].Validate(); err != nil {
			return fmt.Errorf("networking entry %d: %w", i+1, err)
		}
	}
	for platform, activities := range ans.BrandBuildingData {
		for i := range activities {
			if err := activities[i].Validate(); err != nil {
				return fmt.Errorf("%s entry %d: %w", platform, i+1, err)
			}
		}
	}
	return nil
}

// buildStepPatch returns the patch the answers file provides for a step.
// The activity selection step carries the flags and notes; each payload step
// carries its slot.
func buildStepPatch(step wizard.Step, ans *answersFile) wizard.Patch {
	switch step {
	case wizard.StepActivitySelection:
		return wizard.Patch{
			AppliedToJobs:        &ans.AppliedToJobs,
			ApplicationMaterials: &ans.ApplicationMaterials,
			Networking:           &ans.Networking,
			BrandBuilding:        &ans.BrandBuilding,
			Notes:                &ans.Notes,
		}
	case wizard.StepAppliedToJobs:
		return wizard.Patch{AppliedToJobsData: ans.AppliedToJobsData}
	case wizard.StepApplicationMaterials:
		return wizard.Patch{ApplicationMaterialsData: ans.ApplicationMaterialsData}
	case wizard.StepNetworking:
		return wizard.Patch{NetworkingData: ans.NetworkingData}
	case wizard.StepBrandBuilding:
		return wizard.Patch{BrandBuildingData: ans.BrandBuildingData}
	}
	return wizard.Patch{}
}

// driveWizard walks every derived step and submits on the final one.
func driveWizard(ctx context.Context, controller *wizard.Controller, ans *answersFile, printer *observability.Printer) (*wizard.Result, error) {
	for {
		snapshot := controller.Snapshot()
		if printer != nil {
			printer.PrintStepList(snapshot)
		}

		step := snapshot.Steps[snapshot.CurrentStep]
		result, err := controller.Next(ctx, buildStepPatch(step, ans))
		if err != nil {
			return nil, fmt.Errorf("step %s: %w", step, err)
		}
		if result != nil {
			return result, nil
		}
	}
}

func runWizardCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	var cfg config.Config
	if runConfigPath != "" {
		loaded, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	// CLI flags override config file values when explicitly set
	if cmd.Flags().Changed("server") {
		cfg.ServerURL = runServerURL
	}
	if cmd.Flags().Changed("token") {
		cfg.Token = runToken
	}
	if cmd.Flags().Changed("node") {
		cfg.NodeID = runNodeID
	}
	if cmd.Flags().Changed("answers") {
		cfg.Answers = runAnswersPath
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	if cfg.ServerURL == "" {
		return fmt.Errorf("--server is required")
	}
	if cfg.NodeID == "" {
		return fmt.Errorf("--node is required")
	}
	if cfg.Answers == "" {
		return fmt.Errorf("--answers is required")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	nodeID, err := uuid.Parse(cfg.NodeID)
	if err != nil {
		return fmt.Errorf("invalid node ID %q: %w", cfg.NodeID, err)
	}

	ans, err := loadAnswers(cfg.Answers)
	if err != nil {
		return err
	}
	if err := validateAnswers(ans); err != nil {
		return err
	}

	client := hierarchy.NewClient(cfg.ServerURL, &hierarchy.ClientOptions{
		Token:   cfg.Token,
		Timeout: 30 * time.Second,
	})

	if _, err := client.GetNode(ctx, nodeID); err != nil {
		return fmt.Errorf("failed to load node: %w", err)
	}

	var printer *observability.Printer
	if cfg.Verbose {
		printer = observability.NewPrinter(os.Stdout)
		printer.PrintSelection(ans.Data)
	}

	// Screenshots upload before the walk so brand activities can reference
	// them. Flag paths extend the ones listed in the answers file.
	paths := append(ans.ScreenshotPaths, runScreenshots...)
	if len(paths) > 0 {
		uploaded, err := client.UploadScreenshots(ctx, nodeID, paths)
		if err != nil {
			return fmt.Errorf("failed to upload screenshots: %w", err)
		}
		for platform, activities := range ans.BrandBuildingData {
			for i := range activities {
				if len(activities[i].Screenshots) == 0 {
					activities[i].Screenshots = uploaded
				}
			}
			ans.BrandBuildingData[platform] = activities
		}
	}

	controller := wizard.NewController(nodeID, client, client)
	result, err := driveWizard(ctx, controller, ans, printer)
	if err != nil {
		return err
	}

	if printer != nil {
		printer.PrintSubmitResult(result)
	} else {
		fmt.Printf("Update %s recorded on node %s\n", result.UpdateID, result.NodeID)
	}

	// The recap is best-effort: a failure never affects the recorded update.
	if cfg.APIKey != "" {
		recapClient, err := llm.NewGeminiClient(ctx, cfg.APIKey, llm.DefaultModel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "recap unavailable: %v\n", err)
			return nil
		}
		defer recapClient.Close()

		recap, err := llm.Recap(ctx, recapClient, ans.Data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "recap unavailable: %v\n", err)
			return nil
		}
		if printer != nil {
			printer.PrintRecap(recap)
		} else {
			fmt.Println(recap)
		}
	}

	return nil
}
