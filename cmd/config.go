package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read or write .embr/config directly",
}

var configGetCmd = &cobra.Command{
	Use:   "get <section> <key>",
	Short: "Print a config value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepo()
		if err != nil {
			return err
		}
		value, ok := r.Config.RawINI().Section(args[0], "").Get(args[1])
		if !ok {
			return fmt.Errorf("no such key: [%s] %s", args[0], args[1])
		}
		fmt.Println(value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <section> <key> <value>",
	Short: "Set a config value",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRepo()
		if err != nil {
			return err
		}
		r.Config.RawINI().Section(args[0], "").Set(args[1], args[2])
		return r.Config.Save(filepath.Join(r.EmbrDir, "config"))
	},
}

func init() {
	configCmd.AddCommand(configGetCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}
