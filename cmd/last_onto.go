package cmd

import (
	"fmt"

	"github.com/compozy/tagmyrebase/internal/config"
	"github.com/spf13/cobra"
)

func newLastOntoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "last-onto [branch]",
		Short: "Print the commit the last finished rebase of a branch landed on",
		Long: `Reads the branch reflog and prints the commit named by the newest
"rebase finished: refs/heads/<branch> onto <commit>" entry. Defaults to the
current branch.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			c, err := newContainer(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = c.logger.Sync() }()
			branch := ""
			if len(args) == 1 {
				branch = args[0]
			}
			onto, err := c.lastRebaseOnto().Execute(cmd.Context(), branch)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), onto)
			return nil
		},
	}
}
