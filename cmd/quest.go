package cmd

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/abhisek/homeworkpal/internal/assignment"
	"github.com/abhisek/homeworkpal/internal/logging"
	"github.com/abhisek/homeworkpal/internal/quest"
	"github.com/spf13/cobra"
)

var questCmd = &cobra.Command{
	Use:   "quest",
	Short: "Create and manage quests",
}

// withStack loads config, opens the stack and runs fn.
func withStack(cmd *cobra.Command, fn func(s *stack) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	s, err := openStack(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

var questCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a quest from a file, inline text or a goal",
	Long: "Create a quest. Content uses the two-section layout:\n\n" +
		"  ##LEARNING##\n  <material>\n\n  ##QUIZ##\n  1. Question\n    1) option\n    2) right option*\n\n" +
		"With --goal the quest is designed by the LLM instead.",
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		file, _ := cmd.Flags().GetString("file")
		content, _ := cmd.Flags().GetString("content")
		goal, _ := cmd.Flags().GetString("goal")
		stars, _ := cmd.Flags().GetInt("stars")

		if file != "" {
			body, err := readContent(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			content = body
		}

		return withStack(cmd, func(s *stack) error {
			if strings.TrimSpace(content) == "" && goal != "" {
				designer := s.designer()
				if designer == nil {
					return errors.New("designing a quest from a goal needs an LLM provider")
				}
				design, err := designer.Design(cmd.Context(), goal)
				if err != nil {
					return err
				}
				content = design.Content
			}

			a, err := s.assignments.Create(cmd.Context(), assignment.CreateInput{
				Title:   title,
				Content: content,
				Stars:   stars,
			})
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created quest %s (%d items, %d ⭐)\n", a.ID, itemCount(a), a.Stars)
			return nil
		})
	},
}

var questListCmd = &cobra.Command{
	Use:   "list",
	Short: "List quests, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStack(cmd, func(s *stack) error {
			list, err := s.assignments.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No quests yet.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSTATUS\tSTARS\tCREATED\tTITLE\tPREVIEW")
			for _, a := range list {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
					a.ID, a.Status, a.Stars,
					a.CreatedAt.Local().Format("2006-01-02 15:04"),
					a.Title, a.Preview(40))
			}
			return tw.Flush()
		})
	},
}

var questShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a quest with its answers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStack(cmd, func(s *stack) error {
			a, err := s.assignments.Get(cmd.Context(), args[0])
			if err != nil {
				return describe(err)
			}
			out := cmd.OutOrStdout()
			sep := strings.Repeat("─", 60)

			fmt.Fprintf(out, "ID:        %s\n", a.ID)
			fmt.Fprintf(out, "Title:     %s\n", a.Title)
			fmt.Fprintf(out, "Status:    %s\n", a.Status)
			fmt.Fprintf(out, "Stars:     %d\n", a.Stars)
			fmt.Fprintf(out, "Created:   %s\n", a.CreatedAt.Local().Format("2006-01-02 15:04:05"))

			c, err := quest.Parse(a.Description)
			if err != nil {
				fmt.Fprintln(out, sep)
				fmt.Fprintln(out, a.Description)
				return err
			}
			fmt.Fprintf(out, "Kind:      %s\n", c.Kind)
			fmt.Fprintln(out)
			fmt.Fprintln(out, sep)
			fmt.Fprintln(out, quest.Format(c))
			fmt.Fprintln(out, sep)

			sessions, err := s.store.SessionRepo().SessionsForAssignment(cmd.Context(), a.ID)
			if err != nil {
				return err
			}
			if len(sessions) > 0 {
				fmt.Fprintf(out, "\n%d session(s):\n", len(sessions))
				for _, rec := range sessions {
					fmt.Fprintf(out, "  %s  %-8s  %d/%d correct  %s\n",
						rec.ID, rec.Stage, rec.Correct, rec.Total,
						rec.UpdatedAt.Local().Format("2006-01-02 15:04"))
				}
			}
			return nil
		})
	},
}

var questDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a quest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStack(cmd, func(s *stack) error {
			if err := s.assignments.Delete(cmd.Context(), args[0]); err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted quest %s\n", args[0])
			return nil
		})
	},
}

var questStatusCmd = &cobra.Command{
	Use:   "status <id> <new|inprogress|completed>",
	Short: "Move a quest forward to a new status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := assignment.ParseStatus(args[1])
		if err != nil {
			return err
		}
		return withStack(cmd, func(s *stack) error {
			if err := s.assignments.SetStatus(cmd.Context(), args[0], status); err != nil {
				return describe(err)
			}
			a, err := s.assignments.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Quest %s is %s\n", a.ID, a.Status)
			return nil
		})
	},
}

// readContent reads quest text from path, or stdin for "-".
func readContent(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read quest file: %w", err)
	}
	return string(b), nil
}

// describe turns store errors into messages for a parent at a terminal.
func describe(err error) error {
	var verr *assignment.ValidationError
	switch {
	case errors.As(err, &verr):
		var b strings.Builder
		b.WriteString("quest is not valid:")
		for _, k := range slices.Sorted(maps.Keys(verr.Fields)) {
			fmt.Fprintf(&b, "\n  %s: %s", k, verr.Fields[k])
		}
		return errors.New(b.String())
	case errors.Is(err, assignment.ErrNotFound):
		return errors.New("no quest with that id")
	case errors.Is(err, assignment.ErrUnsupported):
		return errors.New("quests are read-only in this setup")
	}
	return err
}

func itemCount(a assignment.Assignment) int {
	c, err := quest.Parse(a.Description)
	if err != nil {
		return 0
	}
	return c.Len()
}

func init() {
	questCreateCmd.Flags().StringP("title", "t", "", "Quest title")
	questCreateCmd.Flags().StringP("file", "f", "", "Read quest content from a file (- for stdin)")
	questCreateCmd.Flags().StringP("content", "c", "", "Quest content inline")
	questCreateCmd.Flags().StringP("goal", "g", "", "Describe what to learn and let the LLM design the quest")
	questCreateCmd.Flags().IntP("stars", "s", 1, "Stars awarded on completion")
	_ = questCreateCmd.MarkFlagRequired("title")

	questCmd.AddCommand(questCreateCmd)
	questCmd.AddCommand(questListCmd)
	questCmd.AddCommand(questShowCmd)
	questCmd.AddCommand(questDeleteCmd)
	questCmd.AddCommand(questStatusCmd)
}
