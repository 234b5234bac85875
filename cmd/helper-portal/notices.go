package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/helper-labs/helper-portal/internal/model"
	"github.com/helper-labs/helper-portal/internal/pagination"
)

var noticePage int

var noticesCmd = &cobra.Command{
	Use:   "notices",
	Short: "Print one page of the notice board",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printNotices(cmd.Context(), cmd.OutOrStdout(), noticePage)
	},
}

func init() {
	noticesCmd.Flags().IntVarP(&noticePage, "page", "p", 1, "Page to print")
}

func printNotices(ctx context.Context, out io.Writer, page int) error {
	p, err := openPortal(ctx)
	if err != nil {
		return err
	}
	defer p.Close()

	if cfg.API.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.API.RequestTimeout)
		defer cancel()
	}
	result := p.services.Notices.Fetcher().Load(ctx, page, "")
	writeNoticePage(out, result)
	if result.Err != "" {
		return errors.New(result.Err)
	}
	return nil
}

func writeNoticePage(out io.Writer, result pagination.Result[model.Notice]) {
	if result.Err != "" {
		return
	}
	if len(result.Records) == 0 {
		fmt.Fprintln(out, "No notices.")
	}
	for _, n := range result.Records {
		fmt.Fprintf(out, "%5d  %-10s  %s\n", n.NoticeNo, n.CreatedAt.Date(), n.Title)
	}
	controls := pagination.Controls(result.Window)
	if len(controls) == 0 {
		return
	}
	labels := make([]string, 0, len(controls))
	for _, c := range controls {
		if c.Current {
			labels = append(labels, "["+c.Label()+"]")
			continue
		}
		labels = append(labels, c.Label())
	}
	fmt.Fprintf(out, "\n%s  (page %d of %d)\n", strings.Join(labels, " "), result.Window.Page, result.Window.TotalPage)
}
