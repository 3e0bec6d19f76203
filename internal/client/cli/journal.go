package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/odysseyhq/odyssey-cli/internal/client/models"
)

func (a *App) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List journals visible to you",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.journals.Refresh(cmd.Context()); err != nil {
				a.log.Warn(cmd.Context(), "refresh failed, showing cached entries", "error", err)
			}
			a.printEntryTable(a.journals.All())
			return nil
		},
	}
}

func (a *App) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <journal-id>",
		Short: "Show one journal with comments and reactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, ok := a.journals.GetByID(args[0])
			if !ok {
				fetched, err := a.journals.FetchByID(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				entry = *fetched
			}
			a.printEntry(entry)
			return nil
		},
	}
}

func (a *App) createCmd() *cobra.Command {
	var (
		title   string
		content string
		public  bool
		place   string
		images  []string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Write a new journal entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if title == "" {
				if title, err = GetSimpleText(a.in, "Title", a.out); err != nil {
					return err
				}
			}
			if content == "" {
				if content, err = GetMultiline(a.in, "Tell the story", a.out); err != nil {
					return err
				}
			}

			draft := models.JournalDraft{
				Title:    title,
				Content:  content,
				IsPublic: public,
				Images:   images,
			}
			if place != "" {
				loc, err := a.resolvePlace(cmd, place)
				if err != nil {
					return err
				}
				draft.Location = loc
			}

			entry, err := a.journals.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Created", entry.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "entry title")
	cmd.Flags().StringVarP(&content, "content", "m", "", "entry text (prompted if omitted)")
	cmd.Flags().BoolVarP(&public, "public", "p", false, "make the entry publicly visible")
	cmd.Flags().StringVarP(&place, "location", "l", "", "place name, resolved via the geocoder")
	cmd.Flags().StringSliceVar(&images, "image", nil, "uploaded image URI (repeatable)")
	return cmd
}

func (a *App) editCmd() *cobra.Command {
	var (
		title   string
		content string
		public  bool
		place   string
	)
	cmd := &cobra.Command{
		Use:   "edit <journal-id>",
		Short: "Edit an existing journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch models.JournalPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("content") {
				patch.Content = &content
			}
			if cmd.Flags().Changed("public") {
				patch.IsPublic = &public
			}
			if cmd.Flags().Changed("location") {
				loc, err := a.resolvePlace(cmd, place)
				if err != nil {
					return err
				}
				patch.Location = loc
			}
			if patch == (models.JournalPatch{}) {
				return errors.New("nothing to change: pass at least one of --title, --content, --public, --location")
			}

			_, err := a.journals.Update(cmd.Context(), args[0], patch)
			return err
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&content, "content", "m", "", "new text")
	cmd.Flags().BoolVarP(&public, "public", "p", false, "new visibility")
	cmd.Flags().StringVarP(&place, "location", "l", "", "new place name")
	return cmd
}

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <journal-id>",
		Short: "Delete a journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.journals.Delete(cmd.Context(), args[0])
		},
	}
}

// resolvePlace turns a free-text place name into a location via the
// geocoder. Requires a configured Geoapify key.
func (a *App) resolvePlace(cmd *cobra.Command, place string) (*models.Location, error) {
	if a.geocoder == nil {
		return nil, errors.New("no geocoder configured: set ODYSSEY_GEOAPIFY_KEY to attach locations")
	}
	return a.geocoder.Resolve(cmd.Context(), place)
}

func (a *App) printEntryTable(entries []models.JournalEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No journals yet.")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTITLE\tPLACE\tVISIBILITY")
	for _, e := range entries {
		place := ""
		if e.Location != nil {
			place = e.Location.Name
		}
		visibility := "private"
		if e.IsPublic {
			visibility = "public"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.CreatedAt.Format("2006-01-02"), e.Title, place, visibility)
	}
	tw.Flush()
}

func (a *App) printEntry(e models.JournalEntry) {
	fmt.Fprintln(a.out, e.Title)
	fmt.Fprintln(a.out, strings.Repeat("=", len(e.Title)))
	if e.Location != nil {
		fmt.Fprintf(a.out, "Place: %s (%.4f, %.4f)\n", e.Location.Name, e.Location.Latitude, e.Location.Longitude)
	}
	fmt.Fprintln(a.out, "Date:", e.CreatedAt.Format("January 2, 2006"))
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, e.Content)

	if len(e.Images) > 0 {
		fmt.Fprintln(a.out)
		for _, img := range e.Images {
			fmt.Fprintln(a.out, "Image:", img)
		}
	}
	if len(e.Reactions) > 0 {
		fmt.Fprintln(a.out)
		parts := make([]string, 0, len(e.Reactions))
		for _, r := range e.Reactions {
			parts = append(parts, fmt.Sprintf("%s %d", r.Type, r.Count))
		}
		fmt.Fprintln(a.out, "Reactions:", strings.Join(parts, "  "))
	}
	if len(e.Comments) > 0 {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Comments:")
		for _, c := range e.Comments {
			fmt.Fprintf(a.out, "  %s (%s): %s\n", c.UserName, c.CreatedAt.Format("2006-01-02"), c.Content)
		}
	}
}
