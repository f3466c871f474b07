package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/abhisek/homeworkpal/internal/llm"
	"github.com/abhisek/homeworkpal/internal/store"
	"github.com/spf13/cobra"
)

const stamp = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Look at what the tutor asked the model and what came back",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent model calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := store.QueryOpts{}
		opts.Limit, _ = cmd.Flags().GetInt("limit")
		opts.Purpose, _ = cmd.Flags().GetString("purpose")
		opts.SessionID, _ = cmd.Flags().GetString("session")

		return withEvents(cmd, func(repo store.EventRepo) error {
			events, err := repo.QueryLLMEvents(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "No model calls recorded.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTIME\tPURPOSE\tMODEL\tTOKENS\tMS\tOK\tSESSION")
			for _, e := range events {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d/%d\t%d\t%s\t%s\n",
					e.ID, e.Timestamp.Local().Format(stamp), e.Purpose,
					clip(e.Model, 28), e.InputTokens, e.OutputTokens, e.LatencyMs,
					mark(e.Success), shortID(e.SessionID))
			}
			return tw.Flush()
		})
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full prompt and reply of one call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}

		return withEvents(cmd, func(repo store.EventRepo) error {
			e, err := repo.GetLLMEvent(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get event: %w", err)
			}
			if e == nil {
				return fmt.Errorf("event %d not found", id)
			}

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 0, 1, ' ', 0)
			fields := [][2]string{
				{"ID", strconv.Itoa(e.ID)},
				{"Time", e.Timestamp.Local().Format(stamp)},
				{"Provider", e.Provider},
				{"Model", e.Model},
				{"Purpose", e.Purpose},
				{"Session", e.SessionID},
				{"Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens)},
				{"Latency", fmt.Sprintf("%dms", e.LatencyMs)},
				{"Success", strconv.FormatBool(e.Success)},
				{"Error", e.ErrorMessage},
			}
			for _, f := range fields {
				if f[1] != "" {
					fmt.Fprintf(tw, "%s:\t%s\n", f[0], f[1])
				}
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			section(out, "REQUEST", e.RequestBody)
			section(out, "RESPONSE", e.ResponseBody)
			return nil
		})
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage per purpose and an estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEvents(cmd, func(repo store.EventRepo) error {
			ctx := cmd.Context()
			byPurpose, err := repo.LLMUsageByPurpose(ctx)
			if err != nil {
				return fmt.Errorf("query usage: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(byPurpose) == 0 {
				fmt.Fprintln(out, "No model usage recorded yet.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "PURPOSE\tCALLS\tINPUT\tOUTPUT\tAVG MS\t")
			var calls, in, outTok int
			for _, u := range byPurpose {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t\n", u.Purpose, u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
				calls += u.Calls
				in += u.InputTokens
				outTok += u.OutputTokens
			}
			fmt.Fprintf(tw, "total\t%d\t%d\t%d\t\t\n", calls, in, outTok)
			if err := tw.Flush(); err != nil {
				return err
			}

			byModel, err := repo.LLMUsageByModel(ctx)
			if err != nil {
				return fmt.Errorf("query model usage: %w", err)
			}
			fmt.Fprintln(out)
			return writeCosts(out, byModel)
		})
	},
}

// writeCosts prints an estimated USD cost per model. Models without a
// known price are listed but left out of the total.
func writeCosts(w io.Writer, usage []store.ModelUsage) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "MODEL\tCALLS\tCOST\t")

	var total float64
	var unpriced []string
	for _, u := range usage {
		price := "?"
		if c := llm.LookupCost(u.Model); c != nil {
			usd := c.Cost(u.InputTokens, u.OutputTokens)
			total += usd
			price = dollars(usd)
		} else {
			unpriced = append(unpriced, u.Model)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t\n", clip(u.Model, 32), u.Calls, price)
	}
	label := "total"
	if len(unpriced) > 0 {
		label = "total (partial)"
	}
	fmt.Fprintf(tw, "%s\t\t%s\t\n", label, dollars(total))
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(unpriced) > 0 {
		fmt.Fprintf(w, "\nNo price known for: %s\n", strings.Join(unpriced, ", "))
	}
	return nil
}

// withEvents opens the database for the duration of fn.
func withEvents(cmd *cobra.Command, fn func(store.EventRepo) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()
	return fn(s.EventRepo())
}

func section(w io.Writer, title, body string) {
	if body == "" {
		body = "(not captured)"
	}
	rule := strings.Repeat("─", 60)
	fmt.Fprintf(w, "\n%s\n%s\n%s\n%s\n", rule, title, rule, body)
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

func shortID(id string) string {
	if id == "" {
		return "-"
	}
	return clip(id, 8)
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func dollars(usd float64) string {
	if usd > 0 && usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show one purpose (tutor, quest-design, story)")
	llmListCmd.Flags().String("session", "", "Only show calls made during one play session")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
