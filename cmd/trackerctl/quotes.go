package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	response "labtracker/internal/adapter/http/dto/response"

	"github.com/spf13/cobra"
)

func newPipelineCmd(c *cli) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Show quote counts per status",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := c.client()
			if !watch {
				p, err := client.Pipeline(cmd.Context())
				if err != nil {
					return err
				}
				return printPipeline(cmd.OutOrStdout(), p)
			}
			return client.WatchPipeline(cmd.Context(), func(p response.PipelineResponse) error {
				fmt.Fprintln(cmd.OutOrStdout())
				return printPipeline(cmd.OutOrStdout(), p)
			})
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reprint on every quote change")
	return cmd
}

func printPipeline(out io.Writer, p response.PipelineResponse) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STATUS\tCOUNT")
	for _, status := range p.Order {
		fmt.Fprintf(tw, "%s\t%d\n", status, p.Counts[status])
	}
	fmt.Fprintf(tw, "total\t%d\n", p.Total)
	return tw.Flush()
}

func newQuotesCmd(c *cli) *cobra.Command {
	quotes := &cobra.Command{
		Use:   "quotes",
		Short: "List and change quotes",
	}

	quotes.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the quotes visible to the caller",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := c.client().Quotes(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNUMBER\tSTATUS\tLAB\tITEMS")
			for _, q := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", q.ID, q.QuoteNumber, q.Status, q.LabID, len(q.Items))
			}
			return tw.Flush()
		},
	})

	quotes.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Print one quote as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := c.client().GetQuote(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), q)
		},
	})

	quotes.AddCommand(&cobra.Command{
		Use:   "status <id> <status>",
		Short: "Set a quote's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.client().UpdateQuoteStatus(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", args[0], args[1])
			return nil
		},
	})

	quotes.AddCommand(&cobra.Command{
		Use:   "send <id>",
		Short: "Send a draft quote to the lab, consuming usage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := c.client().SendToVendor(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", q.ID, q.Status)
			return nil
		},
	})

	quotes.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a quote and its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.client().DeleteQuote(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	})
	return quotes
}

func newUsageCmd(c *cli) *cobra.Command {
	usage := &cobra.Command{
		Use:   "usage",
		Short: "Show the caller's monthly usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := c.client().Usage(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), u)
		},
	}

	usage.AddCommand(&cobra.Command{
		Use:   "track <items>",
		Short: "Record items sent this month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return fmt.Errorf("items must be a positive integer, got %q", args[0])
			}
			res, err := c.client().TrackUsage(cmd.Context(), n)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "items sent this month: %d\n", res.ItemsSentThisMonth)
			return nil
		},
	})
	return usage
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
