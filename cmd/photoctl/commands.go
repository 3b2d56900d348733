// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/taibuivan/photodir/internal/photographer"
)

const defaultSourceURL = "http://localhost:3001/photographers"

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	sourceURL string
	timeout   time.Duration
	asJSON    bool
	verbose   bool
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "photoctl",
		Short:         "Query the photographer directory",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.sourceURL, "source", defaultSourceURL, "photographer collection endpoint")
	flags.DurationVar(&opts.timeout, "timeout", 10*time.Second, "upstream request timeout")
	flags.BoolVar(&opts.asJSON, "json", false, "print JSON instead of a table")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log upstream activity to stderr")

	root.AddCommand(newSearchCmd(opts), newCitiesCmd(opts))
	return root
}

// service builds a one-shot [photographer.Service] for the configured source.
func (opts *globalOptions) service(cmd *cobra.Command) *photographer.Service {
	level := slog.LevelError
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	return photographer.NewService(photographer.NewHTTPSource(opts.sourceURL, opts.timeout, logger), logger)
}

// # search

type searchFlags struct {
	query     string
	minRating float64
	styles    []string
	city      string
	maxPrice  float64
	sort      string
	limit     int
}

func newSearchCmd(opts *globalOptions) *cobra.Command {
	flags := &searchFlags{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "List photographers matching the given filters",
		Long: `Fetches the collection once and applies the directory filters:
free-text search, minimum rating, required styles (all must match),
city, and maximum price. Results are sorted by --sort.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, opts, flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.query, "query", "q", "", "case-insensitive match on name, location, or tags")
	f.Float64Var(&flags.minRating, "min-rating", 0, "minimum rating (0 = any)")
	f.StringSliceVar(&flags.styles, "style", nil, "required style; repeat or comma-separate for several")
	f.StringVar(&flags.city, "city", "", "exact city")
	f.Float64Var(&flags.maxPrice, "max-price", photographer.PriceCeiling, "maximum price")
	f.StringVar(&flags.sort, "sort", "", "priceLowHigh, ratingHighLow, or recent")
	f.IntVar(&flags.limit, "limit", 0, "show only the first N results (0 = all)")

	return cmd
}

func (flags *searchFlags) criteria(cmd *cobra.Command) photographer.Criteria {
	criteria := photographer.DefaultCriteria().
		WithSearchTerm(flags.query).
		WithStyles(flags.styles).
		WithCity(flags.city).
		WithMaxPrice(flags.maxPrice).
		WithSort(photographer.SortOption(flags.sort))

	if cmd.Flags().Changed("min-rating") && flags.minRating > 0 {
		criteria = criteria.WithMinRating(flags.minRating)
	}
	return criteria
}

func runSearch(cmd *cobra.Command, opts *globalOptions, flags *searchFlags) error {
	result, err := opts.service(cmd).Search(cmd.Context(), flags.criteria(cmd), flags.limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.asJSON {
		return writeJSON(out, map[string]any{
			"data": photographer.Cards(result.Results),
			"meta": result.Meta,
		})
	}

	if len(result.Results) == 0 {
		_, err := io.WriteString(out, "No photographers match these filters.\n")
		return err
	}

	rows := make([][]string, 0, len(result.Results))
	for _, p := range result.Results {
		rows = append(rows, []string{
			strconv.Itoa(p.ID),
			p.Name,
			p.Location,
			strconv.FormatFloat(p.Price, 'f', 0, 64),
			strconv.FormatFloat(p.Rating, 'f', 1, 64),
			strings.Join(p.Styles, ", "),
		})
	}

	rendered := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "CITY", "PRICE", "RATING", "STYLES").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Render()

	_, err = io.WriteString(out, rendered+"\n"+summary(result.Meta.VisibleCount, result.Meta.Total)+"\n")
	return err
}

func summary(visible, total int) string {
	if visible < total {
		return "Showing " + strconv.Itoa(visible) + " of " + strconv.Itoa(total) + " photographers"
	}
	return strconv.Itoa(total) + " photographers"
}

// # cities

func newCitiesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "cities",
		Short: "List the distinct cities in the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cities, err := opts.service(cmd).Cities(cmd.Context())
			if err != nil {
				return err
			}

			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"data": cities})
			}

			_, err = io.WriteString(cmd.OutOrStdout(), strings.Join(cities, "\n")+"\n")
			return err
		},
	}
}

func writeJSON(out io.Writer, payload any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
