// Attach commands manage attachment payloads and their document metadata
// together: add stores the payload then records it, remove deletes the
// entry then the payload, get serves a payload the document lists.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/casebook/internal/attachments"
	"github.com/mesh-intelligence/casebook/internal/paths"
	"github.com/mesh-intelligence/casebook/internal/xmlcodec"
	"github.com/mesh-intelligence/casebook/pkg/types"
)

var attachDescription string

var attachCmd = &cobra.Command{
	Use:   "attach",
	Short: "Manage test-case attachments",
}

var attachAddCmd = &cobra.Command{
	Use:   "add <module> <category> <id> <file>",
	Short: "Attach a file to a test case",
	Args:  cobra.ExactArgs(4),
	RunE:  runAttachAdd,
}

var attachRemoveCmd = &cobra.Command{
	Use:   "remove <module> <category> <id> <storedFilename>",
	Short: "Remove an attachment and its payload",
	Args:  cobra.ExactArgs(4),
	RunE:  runAttachRemove,
}

var attachGetCmd = &cobra.Command{
	Use:   "get <module> <category> <id> <storedFilename>",
	Short: "Write an attachment payload to stdout or a file",
	Args:  cobra.ExactArgs(4),
	RunE:  runAttachGet,
}

var attachOutput string

func init() {
	attachAddCmd.Flags().StringVar(&attachDescription, "description", "", "attachment description")
	attachGetCmd.Flags().StringVar(&attachOutput, "output", "", "write the payload to this file instead of stdout")

	attachCmd.AddCommand(attachAddCmd)
	attachCmd.AddCommand(attachRemoveCmd)
	attachCmd.AddCommand(attachGetCmd)
}

func runAttachAdd(cmd *cobra.Command, args []string) error {
	docPath := paths.TestcaseFile(instanceDir, args[0], args[1], args[2])
	tc, err := xmlcodec.LoadTestCase(docPath)
	if err != nil {
		return err
	}

	f, err := os.Open(args[3])
	if err != nil {
		return fmt.Errorf("open attachment: %w", err)
	}
	defer f.Close()

	store := attachments.NewStore(instanceDir)
	att, err := store.Add(tc.ID, filepath.Base(args[3]), attachDescription, f)
	if err != nil {
		return err
	}

	tc.Attachments = append(tc.Attachments, att)
	if err := xmlcodec.SaveTestCase(docPath, tc); err != nil {
		// The payload is already on disk; roll it back so metadata and
		// files stay in step.
		_ = store.Remove(tc.ID, att.StoredFilename)
		return err
	}
	fmt.Printf("Attached %s to %s as %s\n", att.OriginalFilename, tc.ID, att.StoredFilename)
	return nil
}

func runAttachGet(cmd *cobra.Command, args []string) error {
	docPath := paths.TestcaseFile(instanceDir, args[0], args[1], args[2])
	tc, err := xmlcodec.LoadTestCase(docPath)
	if err != nil {
		return err
	}

	// The document entry is authoritative; an orphan payload is not served.
	stored := args[3]
	found := false
	for _, a := range tc.Attachments {
		if a.StoredFilename == stored {
			found = true
			break
		}
	}
	if !found {
		return &types.NotFoundError{Path: stored}
	}

	payload, err := attachments.NewStore(instanceDir).Open(tc.ID, stored)
	if err != nil {
		return err
	}
	defer payload.Close()

	out := os.Stdout
	if attachOutput != "" {
		f, err := os.Create(attachOutput)
		if err != nil {
			return fmt.Errorf("create %s: %w", attachOutput, err)
		}
		defer f.Close()
		out = f
	}
	_, err = io.Copy(out, payload)
	return err
}

func runAttachRemove(cmd *cobra.Command, args []string) error {
	docPath := paths.TestcaseFile(instanceDir, args[0], args[1], args[2])
	tc, err := xmlcodec.LoadTestCase(docPath)
	if err != nil {
		return err
	}

	stored := args[3]
	if !tc.RemoveAttachment(stored) {
		return &types.NotFoundError{Path: stored}
	}
	if err := xmlcodec.SaveTestCase(docPath, tc); err != nil {
		return err
	}

	// Deleting the entry must also delete the backing payload. A payload
	// already gone is fine; the entry was the source of truth.
	store := attachments.NewStore(instanceDir)
	if err := store.Remove(tc.ID, stored); err != nil && !isNotFound(err) {
		return err
	}
	fmt.Printf("Removed attachment %s from %s\n", stored, tc.ID)
	return nil
}
