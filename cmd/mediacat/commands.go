package main

import (
	"strconv"

	"github.com/dastanaron/mediacat/internal/commands"
	"github.com/dastanaron/mediacat/internal/models"
	"github.com/dastanaron/mediacat/internal/service"

	"github.com/spf13/cobra"
)

func newListCmd(rt *session) *cobra.Command {
	var (
		q      service.Query
		sortBy string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the catalog, filtered and sorted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, _, err := rt.open(false)
			if err != nil {
				return err
			}
			q.Sort = service.ParseSortOrder(sortBy)
			return commands.NewListCommand(catalog, cmd.OutOrStdout()).Execute(q)
		},
	}
	cmd.Flags().StringVar(&q.Search, "search", "", "Case-insensitive substring of title or tags")
	cmd.Flags().StringVar(&q.Type, "type", "", "Only items of this type")
	cmd.Flags().IntVar(&q.MinRating, "min-rating", 0, "Only items rated at least this")
	cmd.Flags().StringVar(&sortBy, "sort", string(service.SortCreatedDesc), "Sort order: "+sortOrderNames())
	return cmd
}

func newAddCmd(rt *session) *cobra.Command {
	var (
		d     models.Draft
		image string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add one item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, thumbs, err := rt.open(false)
			if err != nil {
				return err
			}
			_, err = commands.NewAddCommand(catalog, thumbs, cmd.OutOrStdout()).Execute(cmd.Context(), d, image)
			return err
		},
	}
	cmd.Flags().StringVar(&d.Title, "title", "", "Title (required)")
	cmd.Flags().StringVar(&d.Type, "type", "", "Type, e.g. Book or Movie")
	cmd.Flags().StringVar(&d.Tags, "tags", "", "Comma separated tags")
	cmd.Flags().StringVar(&d.Date, "date", "", "Date, e.g. 2024-05-01")
	cmd.Flags().IntVar(&d.Rating, "rating", 0, "Rating from 0 to "+strconv.Itoa(models.MaxRating))
	cmd.Flags().StringVar(&image, "image", "", "Path to a .jpg/.jpeg thumbnail")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newImportCmd(rt *session) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import items from a JSON blob or an exported HTML gallery",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, _, err := rt.open(false)
			if err != nil {
				return err
			}
			return commands.NewImportCommand(catalog, cmd.OutOrStdout()).Execute(args[0])
		},
	}
}

func newExportCmd(rt *session) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export the catalog as a JSON blob or a static HTML gallery",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, _, err := rt.open(false)
			if err != nil {
				return err
			}
			return commands.NewExportCommand(catalog, cmd.OutOrStdout()).Execute(args[0], format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "json|html (default: from the file extension)")
	return cmd
}

func newClearDoublesCmd(rt *session) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-doubles",
		Short: "Remove items with the same type, title and date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, _, err := rt.open(false)
			if err != nil {
				return err
			}
			return commands.NewClearDoublesCommand(catalog, cmd.OutOrStdout()).Execute()
		},
	}
}

func sortOrderNames() string {
	names := ""
	for i, s := range service.SortOrders {
		if i > 0 {
			names += "|"
		}
		names += string(s)
	}
	return names
}
