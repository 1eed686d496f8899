package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/madHatter106/state-of-the-climate/internal/profile"
)

// profileCmd represents the profile command
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the resolved run profile",
	Long: `Prints the run profile used by run, serve and scheduler: the YAML file
named by SOC_PROFILE (or --file), else the profile built from environment
variables. The hash is recorded with every pipeline run.

Example:
  go run ./cmd/soc profile
  go run ./cmd/soc profile --file config/soc2017.yaml`,
	RunE: runProfile,
}

var profileFile string

func init() {
	rootCmd.AddCommand(profileCmd)

	profileCmd.Flags().StringVar(&profileFile, "file", "", "profile YAML to validate (default SOC_PROFILE)")
}

func runProfile(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}
	if profileFile != "" {
		cfg.ProfilePath = profileFile
	}

	prof, _, err := profile.Resolve(cfg)
	if err != nil {
		PrintError(err.Error())
		return err
	}

	hash, err := profile.Hash(prof)
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(prof)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	PrintHeader(fmt.Sprintf("Profile %s", prof.Meta.ProfileID))
	PrintKeyValue("Hash", hash, 6)
	PrintSeparator()
	fmt.Print(string(out))
	return nil
}
