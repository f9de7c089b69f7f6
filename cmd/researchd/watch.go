package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rickgao/niche-research/internal/config"
	"github.com/rickgao/niche-research/internal/feed"
)

func watchCmd() *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print market snapshots from a running researchd feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(os.Stderr, config.LogConfig{Level: "info", Format: "text"})
			ctx, cancel := signalContext(logger)
			defer cancel()

			client := feed.NewClient(feed.DefaultClientConfig(url), logger)
			if err := client.Connect(ctx); err != nil {
				return fmt.Errorf("connect %s: %w", url, err)
			}
			defer client.Close()

			out := cmd.OutOrStdout()
			for {
				select {
				case <-ctx.Done():
					return nil
				case err := <-client.Errors():
					return err
				case msg, ok := <-client.Messages():
					if !ok {
						return nil
					}
					printSnapshot(out, msg)
				}
			}
		},
	}

	cmd.Flags().StringVar(&url, "url", "ws://localhost:8080/ws/feed", "feed WebSocket URL")
	return cmd
}

func printSnapshot(w io.Writer, msg feed.Message) {
	fetched := time.UnixMicro(msg.Snapshot.FetchedAt).UTC().Format(time.RFC3339)
	fmt.Fprintf(w, "snapshot #%d fetched %s\n", msg.Seq, fetched)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PERIOD\tSECTOR\tGROWTH")
	for _, t := range msg.Snapshot.Trends {
		fmt.Fprintf(tw, "%s\t%s\t%.1f%%\n", t.Date, t.Sector, t.GrowthRate)
	}
	tw.Flush()

	for _, a := range msg.Snapshot.Alerts {
		fmt.Fprintf(w, "[%s] %s: %s\n", a.PotentialImpact, a.Title, a.Description)
	}
	fmt.Fprintln(w)
}
