package cli

import (
	"context"
	"fmt"

	"github.com/credence0x/ctf-deploy/internal/app"
	"github.com/credence0x/ctf-deploy/internal/cli/render"
	"github.com/credence0x/ctf-deploy/internal/config"
	"github.com/spf13/cobra"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command. Running it without a subcommand
// deploys the challenge.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ctf-deploy",
		Short: "Deploy the Starknet CTF challenge contracts",
		Long: `ctf-deploy declares and deploys the CTF prize token, the donation token
and the three challenge stages from the scarb build output, funding each
stage with prize tokens.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			// Find project root
			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			// Set up viper
			v := config.SetupViper(projectRoot, cmd)

			// Initialize app with DI
			appInstance, err := app.InitApp(v, cmd.OutOrStdout())
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			// Store app in context
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			// Add timeout if configured
			cancel := context.CancelFunc(func() {})
			if appInstance.Config.Timeout > 0 {
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
			}
			// Released by App.Close
			appInstance.OnClose(cancel)

			cmd.SetContext(ctx)

			return nil
		},
		RunE: runDeploy,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to deploy to (devnet, sepolia, mainnet)")

	rootCmd.AddCommand(NewNetworksCmd())

	// Version command
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

func runDeploy(cmd *cobra.Command, args []string) error {
	appInstance, err := getApp(cmd)
	if err != nil {
		return err
	}
	defer appInstance.Close()

	appInstance.DeployRenderer.PrintBanner()

	result, err := appInstance.DeployChallenge.Run(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if failed := len(result.FailedFundings()); failed > 0 {
		fmt.Fprintln(out, render.FormatWarning(fmt.Sprintf("Challenge deployed on %s, %d stage(s) left unfunded", result.Network.Name, failed)))
		return nil
	}
	fmt.Fprintln(out, render.FormatSuccess(fmt.Sprintf("Challenge deployed on %s", result.Network.Name)))
	return nil
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
