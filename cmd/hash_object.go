package cmd

import (
	"fmt"

	"github.com/KostasZigo/gogitstore/internal/objects"
	"github.com/spf13/cobra"
)

var hashObjectCmd = &cobra.Command{
	Use:   "hash-object <filepath>",
	Short: "Compute object hash and optionally create and store a blob from a file",
	Long: `Compute the object hash (SHA-1 hash) for a file's content.
Optionally write the resulting object's blob into the objects folder.

Examples:
  # Compute hash without storing
  gogit hash-object myfile.txt

  # Compute hash and store in .gogit/objects
  gogit hash-object -w myfile.txt

  # Store without printing the hash
  gogit hash-object -w -q myfile.txt`,
	SilenceUsage: true,
	Args:         exactArgs(1, "filepath"),
	RunE:         runHashObject,
}

var (
	writeFlag     bool
	hashQuietFlag bool
)

func init() {
	rootCmd.AddCommand(hashObjectCmd)

	hashObjectCmd.Flags().BoolVarP(&writeFlag, "write", "w", false, "Write the object into the objects folder")
	hashObjectCmd.Flags().BoolVarP(&hashQuietFlag, "quiet", "q", false, "Do not print the object hash")
}

// runHashObject computes hash and optionally stores blob object.
func runHashObject(cmd *cobra.Command, args []string) error {
	// Create blob from file's contents
	blob, err := objects.NewBlobFromFile(args[0])
	if err != nil {
		return err
	}

	if writeFlag {
		store, err := openStore()
		if err != nil {
			return err
		}

		if err := store.Store(blob); err != nil {
			return fmt.Errorf("failed to store object: %w", err)
		}
	}

	if !hashQuietFlag {
		fmt.Fprintln(cmd.OutOrStdout(), blob.ID())
	}

	return nil
}
