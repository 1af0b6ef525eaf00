package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/pkordes/circlehub/internal/config"
	"github.com/pkordes/circlehub/internal/domain"
	"github.com/pkordes/circlehub/internal/querystate"
	"github.com/pkordes/circlehub/internal/suggest"
)

func newFindCmd() *cobra.Command {
	var tags []string

	cmd := &cobra.Command{
		Use:   "find [query...]",
		Short: "Search clubs from the terminal with instant results",
		Long: `With a query, prints the instant-results panel for it and exits.

Without one, reads queries line by line and prints the panel after each
(debounced by SUGGEST_DEBOUNCE). An empty line clears the query, ":go" prints
the full search link for the current text, and end of input quits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			logger := newLogger(cmd.ErrOrStderr(), cfg)

			clubs, closeRepo, err := openClubRepo(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer closeRepo()

			idx, err := newClubService(clubs, cfg, logger).Index(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) > 0 {
				p := suggest.Compute(idx, strings.Join(args, " "), tags, cfg.SuggestionLimit)
				printPanel(out, p)
				return nil
			}
			return findLoop(cmd.InOrStdin(), out, idx, tags, cfg)
		},
	}
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "tags to keep in the view-all link")
	return cmd
}

// findLoop drives a suggest.Controller from lines of input.
func findLoop(in io.Reader, out io.Writer, idx suggest.Searcher, tags []string, cfg config.Config) error {
	var mu sync.Mutex // serialises writes from the debounce goroutine
	c := suggest.NewController(idx,
		suggest.WithLimit(cfg.SuggestionLimit),
		suggest.WithDebounce(cfg.SuggestDebounce),
		suggest.WithTags(tags),
		suggest.OnChange(func(st suggest.State, p suggest.Panel) {
			if !st.Visible() {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			printPanel(out, p)
		}),
	)
	defer c.Close()

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := sc.Text()
		switch strings.TrimSpace(line) {
		case "":
			c.Dispatch(suggest.Clear{})
		case ":go":
			c.Flush()
			st := c.Dispatch(suggest.Submit{})
			mu.Lock()
			fmt.Fprintln(out, querystate.SubmitHref(domain.QueryState{Text: st.Text, Tags: tags}))
			mu.Unlock()
		default:
			c.Dispatch(suggest.Input{Text: line})
		}
	}
	c.Flush()
	return sc.Err()
}

func printPanel(w io.Writer, p suggest.Panel) {
	if p.Query == "" {
		return
	}
	fmt.Fprintf(w, "%q: %d found\n", p.Query, p.Total)
	for _, c := range p.Results {
		fmt.Fprintf(w, "  %s  %s\n", c.Name, querystate.ClubHref(c.Key))
	}
	if p.Total > 0 {
		fmt.Fprintf(w, "  view all: %s\n", p.ViewAllHref)
	}
}
