package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/SourceControl/pkg/index"
	"github.com/utkarsh5026/SourceControl/pkg/status"
	"github.com/utkarsh5026/SourceControl/pkg/workspace"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the working directory status",
		Long: `Show the status of the working directory and staging area.
Displays which files are modified, staged, untracked, etc.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository()
			if err != nil {
				return err
			}

			repoRoot, err := repo.WorkingDirectory()
			if err != nil {
				return fmt.Errorf("failed to resolve working directory: %w", err)
			}

			indexMgr := index.NewManager(repoRoot)
			if err := indexMgr.Initialize(); err != nil {
				return fmt.Errorf("failed to load index: %w", err)
			}

			ws := workspace.New(repoRoot)
			engine := status.NewEngine(ws, indexMgr.GetIndex())
			result, err := engine.Scan()
			if err != nil {
				return fmt.Errorf("failed to scan status: %w", err)
			}

			if indexMgr.GetIndex().Dirty() {
				if err := indexMgr.Save(); err != nil {
					return fmt.Errorf("failed to refresh index stat cache: %w", err)
				}
			}

			branchName := "main" // Default branch name (branch.DefaultBranch)

			fmt.Println(renderHeader(" Repository Status "))
			fmt.Printf("%s %s\n\n", colorCyan(IconBranch), colorBlue("Branch: "+branchName))

			if result.Clean() {
				fmt.Println(colorGreen(fmt.Sprintf("  %s  Working tree clean - nothing to commit", IconCheck)))
				return nil
			}

			if len(result.Modified) > 0 {
				fmt.Println(renderSection("Changes not staged for commit:"))
				for _, path := range result.Modified {
					fmt.Println(formatModified(path))
				}
				fmt.Println()
			}

			if len(result.Deleted) > 0 {
				fmt.Println(renderSection("Deleted files:"))
				for _, path := range result.Deleted {
					fmt.Println(formatDeleted(path))
				}
				fmt.Println()
			}

			if len(result.Untracked) > 0 {
				fmt.Println(renderSection("Untracked files:"))
				for _, path := range result.Untracked {
					fmt.Println(formatUntracked(path))
				}
				fmt.Println()
			}

			fmt.Println(colorYellow("  💡 Use 'srcc add <file>' to stage changes for commit"))

			return nil
		},
	}

	return cmd
}
