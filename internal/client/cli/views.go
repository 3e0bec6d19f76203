package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odysseyhq/odyssey-cli/internal/client/projections"
)

func (a *App) exploreCmd() *cobra.Command {
	var (
		search string
		place  string
		sort   string
	)
	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Browse public journals from all travellers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := a.api.PublicJournals(cmd.Context())
			if err != nil {
				return err
			}
			got := projections.Explore(entries, projections.ExploreQuery{
				Search:       search,
				LocationName: place,
				Sort:         projections.SortKey(sort),
			})
			a.printEntryTable(got)
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "match against title and place")
	cmd.Flags().StringVarP(&place, "location", "l", "", "exact place name filter")
	cmd.Flags().StringVar(&sort, "sort", string(projections.SortRecent), "recent, oldest or popular")
	return cmd
}

func (a *App) timelineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timeline",
		Short: "Show your journals grouped by month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, ok := a.session.CurrentUser()
			if !ok {
				return errors.New("sign in to see your timeline")
			}
			if err := a.journals.Refresh(cmd.Context()); err != nil {
				a.log.Warn(cmd.Context(), "refresh failed, showing cached entries", "error", err)
			}

			groups := projections.Timeline(a.journals.OwnedBy(user.ID))
			if len(groups) == 0 {
				fmt.Fprintln(a.out, "No journals yet.")
				return nil
			}
			for _, g := range groups {
				fmt.Fprintln(a.out, g.Label)
				for _, e := range g.Entries {
					fmt.Fprintf(a.out, "  %s  %s (%s)\n", e.CreatedAt.Format("Jan 02"), e.Title, e.ID)
				}
			}
			return nil
		},
	}
}

func (a *App) mapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "map",
		Short: "List the places your visible journals were written at",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.journals.Refresh(cmd.Context()); err != nil {
				a.log.Warn(cmd.Context(), "refresh failed, showing cached entries", "error", err)
			}

			points := projections.MapPoints(a.journals.All())
			if len(points) == 0 {
				fmt.Fprintln(a.out, "No located journals yet.")
				return nil
			}
			for _, p := range points {
				fmt.Fprintf(a.out, "%.4f,%.4f  %s: %s\n", p.Latitude, p.Longitude, p.Name, p.Entry.Title)
			}
			return nil
		},
	}
}

func (a *App) locateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locate <query>",
		Short: "Look up a place name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.geocoder == nil {
				return errors.New("no geocoder configured: set ODYSSEY_GEOAPIFY_KEY")
			}
			query := args[0]
			for _, extra := range args[1:] {
				query += " " + extra
			}
			suggestions, err := a.geocoder.Suggest(cmd.Context(), query)
			if err != nil {
				return err
			}
			if len(suggestions) == 0 {
				fmt.Fprintln(a.out, "No matches.")
				return nil
			}
			for _, s := range suggestions {
				fmt.Fprintf(a.out, "%s  (%.4f, %.4f)\n", s.Name, s.Latitude, s.Longitude)
			}
			return nil
		},
	}
}
