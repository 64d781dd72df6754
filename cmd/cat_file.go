package cmd

import (
	"fmt"

	"github.com/KostasZigo/gogitstore/internal/inspect"
	"github.com/KostasZigo/gogitstore/internal/objects"
	"github.com/spf13/cobra"
)

var catFileCmd = &cobra.Command{
	Use:   "cat-file (-p | -t | -s) <object>",
	Short: "Show the content, kind or size of a stored object",
	Long: `Read an object from .gogit/objects by its 40-character hash.

Examples:
  # Print the payload (file content for blobs, raw entries for trees)
  gogit cat-file -p 3b18e512dba79e4c8300dd08aeb37f8e728b8dad

  # Print the object kind
  gogit cat-file -t 3b18e512dba79e4c8300dd08aeb37f8e728b8dad

  # Print the payload size in bytes
  gogit cat-file -s 3b18e512dba79e4c8300dd08aeb37f8e728b8dad`,
	SilenceUsage: true,
	Args:         exactArgs(1, "object"),
	RunE:         runCatFile,
}

var (
	prettyPrintFlag bool
	showKindFlag    bool
	showSizeFlag    bool
)

func init() {
	rootCmd.AddCommand(catFileCmd)

	catFileCmd.Flags().BoolVarP(&prettyPrintFlag, "pretty", "p", false, "Print the object payload")
	catFileCmd.Flags().BoolVarP(&showKindFlag, "type", "t", false, "Print the object kind")
	catFileCmd.Flags().BoolVarP(&showSizeFlag, "size", "s", false, "Print the object size")

	catFileCmd.MarkFlagsMutuallyExclusive("pretty", "type", "size")
	catFileCmd.MarkFlagsOneRequired("pretty", "type", "size")
}

// runCatFile validates the object id and prints the requested view of it.
func runCatFile(cmd *cobra.Command, args []string) error {
	id, err := objects.ParseObjectID(args[0])
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	inspector := inspect.New(store, inspect.WithLogger(log))

	switch {
	case showKindFlag:
		kind, err := inspector.Kind(id)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), kind)

	case showSizeFlag:
		size, err := inspector.Size(id)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), size)

	default:
		payload, err := inspector.ShowObject(id)
		if err != nil {
			return err
		}
		// Payload bytes are written verbatim
		if _, err := cmd.OutOrStdout().Write(payload); err != nil {
			return fmt.Errorf("failed to write object %s: %w", id, err)
		}
	}

	return nil
}
