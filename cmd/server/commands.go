package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Nixie-Tech-LLC/minbar/internal/display"
	"github.com/Nixie-Tech-LLC/minbar/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/minbar/internal/model"
	"github.com/Nixie-Tech-LLC/minbar/internal/prayertimes"
)

func newCitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cities",
		Short: "List the cities the data source knows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, cleanup, err := InitProvider(cmd.Context(), env)
			if err != nil {
				return err
			}
			defer cleanup()

			cities, err := provider.ListCities(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range cities {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}

func newTodayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today [city]",
		Short: "Print today's prayer times",
		Long:  "Print today's prayer times for a city (default: MINBAR_DEFAULT_CITY), marking the next prayer.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			city := env.DefaultCity
			if len(args) == 1 {
				city = strings.TrimSpace(args[0])
			}

			provider, cleanup, err := InitProvider(cmd.Context(), env)
			if err != nil {
				return err
			}
			defer cleanup()

			schedule, err := provider.GetSchedule(cmd.Context(), city)
			if err != nil {
				return err
			}
			renderSchedule(cmd.OutOrStdout(), schedule, time.Now())
			return nil
		},
	}
}

// renderSchedule prints s as a table with the next prayer marked.
func renderSchedule(w io.Writer, s *model.PrayerSchedule, now time.Time) {
	if s.Timezone != "" {
		if loc, err := time.LoadLocation(s.Timezone); err == nil {
			now = now.In(loc)
		}
	}
	next := display.NextPrayer(s.Prayers, now)

	fmt.Fprintf(w, "%s  %s  %s\n\n", s.City, s.Date, s.IslamicDate)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Prayer", "", "Time", ""})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetTablePadding("\t")
	for _, p := range s.Prayers {
		marker := ""
		if next != nil && next.Name == p.Name {
			marker = "◀ next"
		}
		table.Append([]string{p.Name, p.LocalizedName, p.Time, marker})
	}
	table.Render()
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the built-in schedules into PostgreSQL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openStore(env)
			if err != nil {
				return err
			}
			defer closeStore()

			n, err := prayertimes.Seed(cmd.Context(), store)
			if err != nil {
				return err
			}
			log.Info().Int("schedules", n).Msg("database seeded")
			return nil
		},
	}
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for MINBAR_ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := middleware.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
