package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meridianfirm/firmdesk/internal/api"
	"github.com/meridianfirm/firmdesk/internal/cli"
	"github.com/meridianfirm/firmdesk/internal/model"
)

func tasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage engagement procedures and sign-offs",
	}

	cmd.AddCommand(tasksListCmd())
	cmd.AddCommand(tasksShowCmd())
	cmd.AddCommand(tasksAddCmd())
	cmd.AddCommand(tasksSignOffCmd())
	cmd.AddCommand(tasksSetStatusCmd())
	cmd.AddCommand(tasksDeleteCmd())

	return cmd
}

// taskStatusIcon maps a task status to its list marker.
func taskStatusIcon(status string) string {
	switch status {
	case model.TaskDone:
		return cli.SuccessStyle.Render(cli.SuccessIcon)
	case model.TaskReview:
		return cli.ReviewIcon
	case model.TaskInProgress:
		return cli.WarningStyle.Render("◐")
	default:
		return cli.PendingIcon
	}
}

// signOffHint describes the next sign-off action available for a task. DONE
// tasks are fully reviewed, so the action is reported as unavailable.
func signOffHint(t model.Task) string {
	if !t.CanSignOff() {
		return cli.SubtleStyle.Render("signed off")
	}
	if t.Status == model.TaskReview {
		return "review"
	}
	return "prepare"
}

func tasksListCmd() *cobra.Command {
	var engagementID int
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the procedures on an engagement",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := authedClient()
			if err != nil {
				return err
			}

			tasks, err := client.ListTasks(cmd.Context(), engagementID, search)
			if err != nil {
				return err
			}

			if len(tasks) == 0 {
				fmt.Println(cli.InfoStyle.Render("No tasks found."))
				return nil
			}

			w := newTable()
			defer w.Flush()
			printTableHeader(w, "", "ID", "Title", "Status", "Assignee", "Due", "Next")
			for _, t := range tasks {
				title := t.Title
				if t.IsMilestone {
					title = cli.BoldStyle.Render(title)
				}
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
					taskStatusIcon(t.Status), t.ID, title, t.Status,
					orDash(t.AssigneeName), orDash(t.DueDate), signOffHint(t))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&engagementID, "engagement", 0, "engagement id (required)")
	cmd.Flags().StringVar(&search, "search", "", "filter by title or description")
	_ = cmd.MarkFlagRequired("engagement")

	return cmd
}

func tasksShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one procedure with its sign-off trail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			client, err := authedClient()
			if err != nil {
				return err
			}

			t, err := client.GetTask(cmd.Context(), id)
			if err != nil {
				return err
			}

			fmt.Printf("%s %s\n", taskStatusIcon(t.Status), cli.BoldStyle.Render(t.Title))
			if t.Description != "" {
				fmt.Println(t.Description)
			}
			fmt.Printf("Status:   %s\n", t.Status)
			fmt.Printf("Assignee: %s\n", orDash(t.AssigneeName))
			fmt.Printf("Due:      %s\n", orDash(t.DueDate))
			if t.PreparedAt != "" {
				fmt.Println(cli.SubtleStyle.Render("Prepared " + t.PreparedAt))
			}
			if t.ReviewedAt != "" {
				fmt.Println(cli.SubtleStyle.Render("Reviewed " + t.ReviewedAt))
			}
			return nil
		},
	}
}

func tasksAddCmd() *cobra.Command {
	var req api.CreateTaskRequest

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a procedure to an engagement",
		Long:  `New procedures always start PENDING; status advances only through sign-offs.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := authedClient()
			if err != nil {
				return err
			}

			req.Title = args[0]
			task, err := client.CreateTask(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added task %q (id %d)", task.Title, task.ID)))
			return nil
		},
	}

	cmd.Flags().IntVar(&req.Engagement, "engagement", 0, "engagement id (required)")
	cmd.Flags().StringVar(&req.Description, "description", "", "procedure description")
	cmd.Flags().StringVar(&req.DueDate, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&req.IsMilestone, "milestone", false, "mark as a milestone")
	_ = cmd.MarkFlagRequired("engagement")

	return cmd
}

func tasksSignOffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sign-off <id>",
		Short: "Sign off a procedure as preparer or reviewer",
		Long: `Advances the task through the two-stage sign-off chain:
PENDING → REVIEW (preparer sign-off) → DONE (reviewer sign-off).

The backend decides which role you act in and rejects self-review: the
reviewer must be a different person than the preparer.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			client, err := authedClient()
			if err != nil {
				return err
			}

			result, err := client.SignOffTask(cmd.Context(), id)
			if err != nil {
				return err
			}

			msg := result.Status
			if result.Message != "" {
				msg = result.Message
			}
			fmt.Println(cli.FormatSuccess("Signed off: " + msg))

			// Refetch so the user sees the resulting state and the parent's
			// recomputed completion.
			task, err := client.GetTask(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s is now %s\n", taskStatusIcon(task.Status), task.Title, cli.BoldStyle.Render(task.Status))

			engagement, err := client.GetEngagement(cmd.Context(), task.Engagement)
			if err != nil {
				return err
			}
			fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("Engagement %q is %d%% complete", engagement.Name, engagement.CompletionPercentage)))
			return nil
		},
	}
}

func tasksSetStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <id> <status>",
		Short: "Force-set a task status (bypasses sign-off)",
		Long: `Directly sets PENDING, IN_PROGRESS, REVIEW, or DONE through the
backend's escape-hatch endpoint. Prefer 'firmdesk tasks sign-off' for the
normal review workflow.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			client, err := authedClient()
			if err != nil {
				return err
			}

			if err := client.SetTaskStatus(cmd.Context(), id, args[1]); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Task %d set to %s", id, args[1])))
			return nil
		},
	}
}

func tasksDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a procedure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			client, err := authedClient()
			if err != nil {
				return err
			}

			if !force {
				ok, confirmErr := cli.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
					fmt.Sprintf("Delete task %d? Sign-off history on it is lost.", id))
				if confirmErr != nil {
					return confirmErr
				}
				if !ok {
					fmt.Println(cli.InfoStyle.Render("Aborted."))
					return nil
				}
			}

			// Look up the parent first so completion can be reshown after.
			task, err := client.GetTask(cmd.Context(), id)
			if err != nil {
				return err
			}

			if err := client.DeleteTask(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted task %d", id)))

			engagement, err := client.GetEngagement(cmd.Context(), task.Engagement)
			if err != nil {
				return err
			}
			fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("Engagement %q is %d%% complete", engagement.Name, engagement.CompletionPercentage)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip confirmation")

	return cmd
}
