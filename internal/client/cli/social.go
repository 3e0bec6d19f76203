package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/odysseyhq/odyssey-cli/internal/client/models"
	"github.com/odysseyhq/odyssey-cli/internal/client/upload"
)

// readImageFiles is a test seam for upload.ReadFiles.
var readImageFiles = upload.ReadFiles

func (a *App) commentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "comment <journal-id> [text...]",
		Short: "Comment on a journal entry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := strings.Join(args[1:], " ")
			if content == "" {
				var err error
				content, err = GetSimpleText(a.in, "Comment", a.out)
				if err != nil {
					return err
				}
			}
			_, err := a.journals.AddComment(cmd.Context(), args[0], content)
			return err
		},
	}
}

func (a *App) uncommentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uncomment <journal-id> <comment-id>",
		Short: "Delete a comment from a journal entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.journals.DeleteComment(cmd.Context(), args[0], args[1])
		},
	}
}

func (a *App) reactCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "react <journal-id> <kind>",
		Short:     "React to a journal entry",
		Long:      "React to a journal entry. Kinds: like, love, wow, globe.",
		Args:      cobra.ExactArgs(2),
		ValidArgs: reactionKinds(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.journals.AddReaction(cmd.Context(), args[0], models.ReactionKind(args[1]))
		},
	}
}

func (a *App) unreactCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unreact <journal-id> <kind>",
		Short: "Remove a reaction from a journal entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.journals.RemoveReaction(cmd.Context(), args[0], models.ReactionKind(args[1]))
		},
	}
}

func reactionKinds() []string {
	kinds := []models.ReactionKind{
		models.ReactionLike, models.ReactionLove, models.ReactionWow, models.ReactionGlobe,
	}
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}

func (a *App) uploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file...>",
		Short: "Upload images for use in journal entries",
		Long:  "Upload images and print their remote URIs. Pass the URIs to create/edit via --image.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := readImageFiles(args)
			if err != nil {
				return err
			}
			uris, err := a.api.UploadImages(cmd.Context(), files)
			if err != nil {
				return err
			}
			for _, uri := range uris {
				fmt.Fprintln(a.out, uri)
			}
			return nil
		},
	}
}
