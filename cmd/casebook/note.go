// Note commands mutate a document's note list through the codec's
// read-modify-write cycle.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/casebook/internal/paths"
	"github.com/mesh-intelligence/casebook/internal/xmlcodec"
	"github.com/mesh-intelligence/casebook/pkg/types"
)

var (
	noteText   string
	noteAuthor string
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage test-case notes",
}

var noteAddCmd = &cobra.Command{
	Use:   "add <module> <category> <id>",
	Short: "Append a note to a test case",
	Long: `Note add appends a note with the current timestamp.

Example:
  casebook note add alpha list II_EXF_01 --text "retested after firmware update"`,
	Args: cobra.ExactArgs(3),
	RunE: runNoteAdd,
}

var noteRemoveCmd = &cobra.Command{
	Use:   "remove <module> <category> <id> <index>",
	Short: "Remove the note at a zero-based index",
	Args:  cobra.ExactArgs(4),
	RunE:  runNoteRemove,
}

func init() {
	noteAddCmd.Flags().StringVar(&noteText, "text", "", "note text (required)")
	noteAddCmd.Flags().StringVar(&noteAuthor, "author", "", "note author")
	_ = noteAddCmd.MarkFlagRequired("text")

	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteRemoveCmd)
}

func runNoteAdd(cmd *cobra.Command, args []string) error {
	path := paths.TestcaseFile(instanceDir, args[0], args[1], args[2])
	tc, err := xmlcodec.LoadTestCase(path)
	if err != nil {
		return err
	}
	if err := tc.AddNote(types.Note{Text: noteText, Author: noteAuthor}); err != nil {
		return err
	}
	if err := xmlcodec.SaveTestCase(path, tc); err != nil {
		return err
	}
	fmt.Printf("Added note %d to %s\n", len(tc.Notes)-1, tc.ID)
	return nil
}

func runNoteRemove(cmd *cobra.Command, args []string) error {
	idx, err := strconv.Atoi(args[3])
	if err != nil {
		return &types.ValidationError{Message: fmt.Sprintf("invalid note index %q", args[3])}
	}
	path := paths.TestcaseFile(instanceDir, args[0], args[1], args[2])
	tc, err := xmlcodec.LoadTestCase(path)
	if err != nil {
		return err
	}
	if err := tc.RemoveNote(idx); err != nil {
		return err
	}
	if err := xmlcodec.SaveTestCase(path, tc); err != nil {
		return err
	}
	fmt.Printf("Removed note %d from %s\n", idx, tc.ID)
	return nil
}
