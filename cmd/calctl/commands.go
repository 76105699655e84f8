package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Asurkatha/calctl/internal/models"
)

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func printEvents(events []models.Event) error {
	if flagJSON {
		return printJSON(events)
	}
	if len(events) == 0 {
		fmt.Println("No events.")
		return nil
	}
	for i := range events {
		e := &events[i]
		fmt.Printf("%s | %s | %s | %s\n", e.ID, e.Title, e.Date, e.StartTime)
	}
	return nil
}

func newAddCmd() *cobra.Command {
	var req models.AddRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new event",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, _, err := newEngine()
			if err != nil {
				return err
			}
			event, err := engine.Add(req)
			if err != nil {
				return err
			}
			fmt.Printf("Added event %s\n", event.ID)
			return printEvents([]models.Event{*event})
		},
	}

	cmd.Flags().StringVar(&req.Title, "title", "", "event title")
	cmd.Flags().StringVar(&req.Date, "date", "", "date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.Time, "time", "", "start time (HH:MM)")
	cmd.Flags().IntVar(&req.Duration, "duration", 0, "duration in minutes")
	cmd.Flags().StringVar(&req.Location, "location", "", "location")
	cmd.Flags().StringVar(&req.Description, "description", "", "description")
	cmd.Flags().BoolVar(&req.Force, "force", false, "skip conflict validation")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("date")
	cmd.MarkFlagRequired("time")
	cmd.MarkFlagRequired("duration")

	return cmd
}

func newListCmd() *cobra.Command {
	var filter models.ListFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, _, err := newEngine()
			if err != nil {
				return err
			}
			events, err := engine.List(filter)
			if err != nil {
				return err
			}
			return printEvents(events)
		},
	}

	cmd.Flags().StringVar(&filter.From, "from", "", "from date")
	cmd.Flags().StringVar(&filter.To, "to", "", "to date")
	cmd.Flags().BoolVar(&filter.Today, "today", false, "today's events")
	cmd.Flags().BoolVar(&filter.Week, "week", false, "this week's events")

	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <event-id>",
		Short: "Show event details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, _, err := newEngine()
			if err != nil {
				return err
			}
			detail, err := engine.Show(args[0])
			if err != nil {
				return err
			}
			if detail == nil {
				return fmt.Errorf("event %s not found", args[0])
			}
			if flagJSON {
				return printJSON(detail)
			}
			fmt.Printf("Event: %s\n", detail.Title)
			fmt.Printf("Date: %s %s\n", detail.Date, detail.StartTime)
			fmt.Printf("End: %s\n", detail.EndTime)
			fmt.Printf("Duration: %d minutes\n", detail.Duration)
			if detail.Location != nil {
				fmt.Printf("Location: %s\n", *detail.Location)
			}
			if detail.Description != nil {
				fmt.Printf("Description: %s\n", *detail.Description)
			}
			if len(detail.Conflicts) > 0 {
				fmt.Println("Conflicts:")
				for i := range detail.Conflicts {
					c := &detail.Conflicts[i]
					fmt.Printf("  %s (%s)\n", c.Title, c.TimeRange())
				}
			}
			return nil
		},
	}
}

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <event-id>",
		Short: "Edit an event",
		Args:  cobra.ExactArgs(1),
	}

	title := cmd.Flags().String("title", "", "new title")
	date := cmd.Flags().String("date", "", "new date")
	timeFlag := cmd.Flags().String("time", "", "new start time")
	duration := cmd.Flags().Int("duration", 0, "new duration in minutes")
	location := cmd.Flags().String("location", "", "new location")
	description := cmd.Flags().String("description", "", "new description")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		engine, _, _, err := newEngine()
		if err != nil {
			return err
		}

		// Only flags the user actually set become part of the update.
		var req models.EditRequest
		if cmd.Flags().Changed("title") {
			req.Title = title
		}
		if cmd.Flags().Changed("date") {
			req.Date = date
		}
		if cmd.Flags().Changed("time") {
			req.Time = timeFlag
		}
		if cmd.Flags().Changed("duration") {
			req.Duration = duration
		}
		if cmd.Flags().Changed("location") {
			req.Location = location
		}
		if cmd.Flags().Changed("description") {
			req.Description = description
		}

		updated, err := engine.Edit(args[0], req)
		if err != nil {
			return err
		}
		if updated == nil {
			return fmt.Errorf("event %s not found", args[0])
		}
		fmt.Printf("Updated event %s\n", args[0])
		return printEvents([]models.Event{*updated})
	}

	return cmd
}

func newDeleteCmd() *cobra.Command {
	var (
		byDate string
		yes    bool
	)

	cmd := &cobra.Command{
		Use:   "delete [event-id]",
		Short: "Delete an event, or all events on a date",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, _, err := newEngine()
			if err != nil {
				return err
			}

			if byDate != "" {
				deleted, err := engine.DeleteByDate(byDate)
				if err != nil {
					return err
				}
				fmt.Printf("Deleted %d event(s)\n", len(deleted))
				return printEvents(deleted)
			}

			if len(args) == 0 {
				return errors.New("an event id or --date is required")
			}
			id := args[0]

			if !yes {
				detail, err := engine.Show(id)
				if err != nil {
					return err
				}
				if detail != nil && !confirm(fmt.Sprintf("Delete %q?", detail.Title)) {
					fmt.Println("Cancelled")
					return nil
				}
			}

			deleted, err := engine.Delete(id)
			if err != nil {
				return err
			}
			if deleted == nil {
				return fmt.Errorf("event %s not found", id)
			}
			fmt.Printf("Deleted event %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&byDate, "date", "", "delete all events on this date")
	cmd.Flags().BoolVar(&yes, "yes", false, "skip confirmation")

	return cmd
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

func newSearchCmd() *cobra.Command {
	var titleOnly bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, _, err := newEngine()
			if err != nil {
				return err
			}
			results, err := engine.Search(args[0], titleOnly)
			if err != nil {
				return err
			}
			return printEvents(results)
		},
	}

	cmd.Flags().BoolVar(&titleOnly, "title", false, "search titles only")

	return cmd
}

func newAgendaCmd() *cobra.Command {
	var (
		date string
		week bool
	)

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Show agenda for a day or week",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, _, err := newEngine()
			if err != nil {
				return err
			}
			agenda, err := engine.Agenda(date, week)
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(agenda)
			}

			fmt.Printf("Total events: %d\n", agenda.TotalEvents)
			if agenda.Type == "day" {
				fmt.Printf("Agenda for %s\n", agenda.Date)
				for i := range agenda.Events {
					e := &agenda.Events[i]
					fmt.Printf("%s - %s\n", e.StartTime, e.Title)
				}
				return nil
			}

			dates := make([]string, 0, len(agenda.EventsByDate))
			for d := range agenda.EventsByDate {
				dates = append(dates, d)
			}
			sort.Strings(dates)
			for _, d := range dates {
				fmt.Printf("%s:\n", d)
				for i := range agenda.EventsByDate[d] {
					e := &agenda.EventsByDate[d][i]
					fmt.Printf("  %s - %s\n", e.StartTime, e.Title)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "specific date")
	cmd.Flags().BoolVar(&week, "week", false, "week view")

	return cmd
}
