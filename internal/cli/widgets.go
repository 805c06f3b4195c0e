package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/kanban/internal/models"
)

// WeatherCmd returns the weather command
func WeatherCmd() *cobra.Command {
	var boardID string

	cmd := &cobra.Command{
		Use:   "weather [location]",
		Short: "Show the forecast for a location or a board's weather location",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext(cmd.Context())
			svc, err := services()
			if err != nil {
				return err
			}
			location := ""
			if len(args) > 0 {
				location = args[0]
			} else {
				boardID, err = resolveBoard(ctx, svc, boardID)
				if err != nil {
					return err
				}
			}
			report, err := svc.Widgets.Weather(ctx, boardID, location)
			if err != nil {
				return err
			}
			printWeather(cmd, report)
			return nil
		},
	}
	cmd.Flags().StringVarP(&boardID, "board", "b", "", "Board whose weather location to use (default: current board)")
	return cmd
}

func printWeather(cmd *cobra.Command, report *models.WeatherReport) {
	out := cmd.OutOrStdout()
	place := report.Location
	if report.Country != "" {
		place += ", " + report.Country
	}
	fmt.Fprintln(out, color.New(color.Bold).Sprint(place))
	for _, day := range report.Days {
		fmt.Fprintf(out, "  %s  %5.1f° / %5.1f°  %s\n", day.Date, day.MinTemp, day.MaxTemp, day.Description)
	}
}

// ProgressCmd returns the progress command
func ProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show how much of the year, month and week has elapsed",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := services()
			if err != nil {
				return err
			}
			p := svc.Widgets.TimeProgress(NewContext(cmd.Context()))
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Year   %s %3d%%\n", progressBar(p.Year), p.Year)
			fmt.Fprintf(out, "Month  %s %3d%%\n", progressBar(p.Month), p.Month)
			fmt.Fprintf(out, "Week   %s %3d%%\n", progressBar(p.Week), p.Week)
			return nil
		},
	}
}

// progressBar draws a 20-cell bar for a 0-100 percentage.
func progressBar(pct int) string {
	filled := pct / 5
	if filled < 0 {
		filled = 0
	}
	if filled > 20 {
		filled = 20
	}
	return color.New(color.FgGreen).Sprint(strings.Repeat("█", filled)) + strings.Repeat("░", 20-filled)
}
