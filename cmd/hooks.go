package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var hooksCmd = &cobra.Command{
	Use:   "hooks",
	Short: "Show or record git hook installation state",
}

var hooksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List hooks recorded as installed",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepo()
		if err != nil {
			return err
		}
		names := r.Config.InstalledHooks()
		if len(names) == 0 {
			fmt.Println("no hooks recorded as installed")
			return nil
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var hooksRecordCmd = &cobra.Command{
	Use:   "record <name> <template>",
	Short: "Record a hook template as installed (installation itself is out of scope)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepo()
		if err != nil {
			return err
		}
		r.Config.RecordHookInstalled(args[0], args[1])
		return r.Config.Save(filepath.Join(r.EmbrDir, "config"))
	},
}

func init() {
	hooksCmd.AddCommand(hooksListCmd, hooksRecordCmd)
	rootCmd.AddCommand(hooksCmd)
}
