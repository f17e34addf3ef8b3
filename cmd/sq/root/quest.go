package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sidequest/internal/engine"
	"sidequest/internal/ui"
)

func newQuestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quest",
		Short: "Manage quest templates",
	}
	cmd.AddCommand(
		newQuestAddCmd(),
		newQuestListCmd(),
		newQuestEditCmd(),
		newQuestRemoveCmd(),
	)
	return cmd
}

func newQuestAddCmd() *cobra.Command {
	var points int
	var category string
	var icon string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a quest template",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			q, err := svc.AddQuest(ctx, args[0], category, points, icon)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconQuest+" Added"), q.Title,
				ui.Gold.Render(fmt.Sprintf("(%d pts)", q.Points)),
				ui.Muted.Render("id="+q.ID))
			return nil
		},
	}

	cmd.Flags().IntVarP(&points, "points", "p", 10, "Point value (0-1000)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (default Work)")
	cmd.Flags().StringVar(&icon, "icon", "", "Icon emoji")
	return cmd
}

func newQuestListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List quest templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			quests, err := svc.Quests(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconScroll, "Quests"))
			for _, q := range quests {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s %s\n",
					q.Icon, q.Title,
					ui.Gold.Render(fmt.Sprintf("%d pts", q.Points)),
					ui.Muted.Render(q.Category),
					ui.Muted.Render("id="+q.ID))
			}
			return nil
		},
	}
}

func newQuestEditCmd() *cobra.Command {
	var title string
	var points int
	var category string
	var icon string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a quest template",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			in := engine.UpdateQuestInput{}
			if cmd.Flags().Changed("title") {
				in.Title = &title
			}
			if cmd.Flags().Changed("points") {
				in.Points = &points
			}
			if cmd.Flags().Changed("category") {
				in.Category = &category
			}
			if cmd.Flags().Changed("icon") {
				in.Icon = &icon
			}

			q, err := svc.UpdateQuest(ctx, args[0], in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Good.Render(ui.IconDone+" Updated"), q.Title,
				ui.Gold.Render(fmt.Sprintf("(%d pts)", q.Points)))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().IntVarP(&points, "points", "p", 0, "New point value (0-1000)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category")
	cmd.Flags().StringVar(&icon, "icon", "", "New icon emoji")
	return cmd
}

func newQuestRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a quest template (past entries are kept)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.DeleteQuest(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("Deleted ")+args[0])
			return nil
		},
	}
}
