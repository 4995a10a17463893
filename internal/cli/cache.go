package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/strategos/pkg/cache"
	"github.com/matzehuels/strategos/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the render cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached render documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := c.Config.Cache
			if cc.Backend != config.BackendFile {
				printWarning("Cache backend is %s; only the file cache can be cleared", cc.Backend)
				return nil
			}
			if cc.Dir == "" {
				return fmt.Errorf("no cache directory configured")
			}

			fc, err := cache.NewFileCache(cc.Dir)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			count, err := fc.Clear()
			if err != nil {
				return err
			}

			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.Config.Cache.Dir == "" {
				return fmt.Errorf("no cache directory configured")
			}
			fmt.Println(c.Config.Cache.Dir)
			return nil
		},
	}
}
