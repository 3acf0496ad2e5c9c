package cli

import (
	"errors"
	"fmt"

	"github.com/MikeRez0/yporders/internal/adapter/metrics"
	"github.com/MikeRez0/yporders/internal/adapter/outbox"
	"github.com/spf13/cobra"
)

var errNoBroker = errors.New("kafka brokers are not configured, set KAFKA_BROKERS or --brokers")

func newOutboxCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outbox",
		Short: "Inspect and drain the payment request outbox",
	}
	cmd.AddCommand(newOutboxPendingCmd(a))
	cmd.AddCommand(newOutboxFlushCmd(a))
	return cmd
}

func newOutboxPendingCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "pending",
		Short: "List messages not yet delivered to the broker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit <= 0 {
				return fmt.Errorf("limit must be positive, got %d", limit)
			}
			b, err := a.backend(cmd.Context())
			if err != nil {
				return err
			}
			defer b.close()

			pending, err := b.outbox.FetchPending(cmd.Context(), limit, 0)
			if err != nil {
				return fmt.Errorf("fetch pending outbox messages: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, msg := range pending {
				fmt.Fprintf(out, "%s\ttopic=%s\torder=%s\tattempts=%d", msg.ID, msg.Topic, msg.Key, msg.Attempts)
				if msg.LastError != "" {
					fmt.Fprintf(out, "\terror=%q", msg.LastError)
				}
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "%d pending\n", len(pending))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 100, "Maximum number of messages to list")
	return cmd
}

func newOutboxFlushCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "flush",
		Short: "Deliver one batch of pending messages now",
		Long:  "Deliver one batch of pending messages now. With --force, messages past the attempts limit are retried too.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := a.backend(cmd.Context())
			if err != nil {
				return err
			}
			defer b.close()
			if b.sink == nil {
				return errNoBroker
			}

			relay, err := outbox.NewRelay(b.outbox, b.tx, b.sink, a.conf.Outbox, metrics.New(), a.log.Named("Relay"))
			if err != nil {
				return err
			}

			var stats outbox.Stats
			if force {
				stats, err = relay.FlushAll(cmd.Context())
			} else {
				stats, err = relay.Flush(cmd.Context())
			}
			if err != nil {
				return fmt.Errorf("flush outbox: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "pending=%d sent=%d failed=%d\n", stats.Pending, stats.Sent, stats.Failed)
			if stats.Failed > 0 {
				return fmt.Errorf("%d message(s) failed to deliver", stats.Failed)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Ignore the delivery attempts limit")
	return cmd
}
