package poll

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/tallykv/tallykv/lib/record"
)

var (
	createCmd = &cobra.Command{
		Use:   "create [question] [option]...",
		Short: "Creates a new poll with at least two options",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := args[0]
			options := args[1:]
			if rec, err := pollClient.Create(question, options); err != nil {
				return err
			} else {
				fmt.Printf("created poll with id=%d\n", rec.ID)
				printRecord(rec)
			}
			return nil
		},
	}
	getCmd = &cobra.Command{
		Use:   "get [id]",
		Short: "Reads a poll by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if rec, err := pollClient.Get(id); err != nil {
				return err
			} else {
				printRecord(rec)
			}
			return nil
		},
	}
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "Lists all polls in ascending id order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := pollClient.List()
			if err != nil {
				return err
			}
			for i := range recs {
				printRecord(&recs[i])
			}
			return nil
		},
	}
	editCmd = &cobra.Command{
		Use:   "edit [id] [question] [option]...",
		Short: "Replaces question and options of a poll, resetting its tally",
		Args:  cobra.MinimumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			question := args[1]
			options := args[2:]
			if rec, err := pollClient.Edit(id, question, options); err != nil {
				return err
			} else {
				fmt.Println("edited successfully")
				printRecord(rec)
			}
			return nil
		},
	}
	delCmd = &cobra.Command{
		Use:   "del [id]",
		Short: "Deletes a poll permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := pollClient.Delete(id); err != nil {
				return err
			} else {
				fmt.Println("deleted successfully")
			}
			return nil
		},
	}
	voteCmd = &cobra.Command{
		Use:   "vote [id] [option]",
		Short: "Casts one vote for an option of a poll",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			choice := args[1]
			if rec, err := pollClient.Vote(id, choice); err != nil {
				return err
			} else {
				fmt.Println("vote counted")
				printRecord(rec)
			}
			return nil
		},
	}
)

// parseID parses a poll id argument
func parseID(arg string) (uint64, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("id must be a number: %w", err)
	}
	return id, nil
}

// printRecord prints one poll with its tally
func printRecord(rec *record.Record) {
	fmt.Printf("[%d] %s\n", rec.ID, rec.Question)
	for _, option := range rec.Options {
		fmt.Printf("  %-20s: %d\n", option, rec.Tally[option])
	}
	if rec.Owner != "" {
		fmt.Printf("  owner: %s\n", rec.Owner)
	}
	fmt.Printf("  created: %s\n", formatTS(rec.CreatedAt))
	if rec.UpdatedAt != nil {
		fmt.Printf("  updated: %s\n", formatTS(*rec.UpdatedAt))
	}
}

// formatTS formats a Unix nanosecond timestamp
func formatTS(ts uint64) string {
	return time.Unix(0, int64(ts)).Format(time.RFC3339)
}
