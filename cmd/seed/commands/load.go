package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/friendlens/friendlens/internal/config"
	"github.com/friendlens/friendlens/internal/models"
	"github.com/friendlens/friendlens/internal/store"
	"github.com/spf13/cobra"
)

// seedPerson mirrors the people.json record layout.
type seedPerson struct {
	Name      string `json:"name"`
	Gender    string `json:"gender"`
	BirthDate string `json:"birth_date"`
}

// seedActivity mirrors the activities.json record layout.
type seedActivity struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Indoor  bool   `json:"indoor"`
	Outdoor bool   `json:"outdoor"`
}

// seedEvent mirrors the events.json record layout. Activity is the
// activity's name, not an ID.
type seedEvent struct {
	Name     string   `json:"name"`
	Activity string   `json:"activity"`
	DateTime string   `json:"date_time"`
	People   []string `json:"people"`
}

// NewLoadCmd creates the load command.
func NewLoadCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load people, activities and events from JSON files",
		Long:  "Reads people.json, activities.json and events.json from the data directory and inserts them in dependency order.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			db, err := store.Open(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer func() { _ = db.Close() }()

			return loadData(context.Background(), db, dir)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "Directory containing people.json, activities.json and events.json")
	return cmd
}

func loadData(ctx context.Context, db *store.Postgres, dir string) error {
	var people []seedPerson
	if err := readJSONFile(filepath.Join(dir, "people.json"), &people); err != nil {
		return err
	}
	var activities []seedActivity
	if err := readJSONFile(filepath.Join(dir, "activities.json"), &activities); err != nil {
		return err
	}
	var events []seedEvent
	if err := readJSONFile(filepath.Join(dir, "events.json"), &events); err != nil {
		return err
	}

	// People and activities go first so event references resolve.
	knownPeople := make(map[string]bool)
	for _, p := range people {
		person := models.Person{
			Name:   p.Name,
			Gender: p.Gender,
		}
		if p.BirthDate != "" {
			birthDate, err := time.Parse("2006-01-02", p.BirthDate)
			if err != nil {
				return fmt.Errorf("person %q: invalid birth_date %q: %w", p.Name, p.BirthDate, err)
			}
			person.BirthDate = &birthDate
		}
		if err := db.InsertPerson(ctx, &person); err != nil {
			return err
		}
		knownPeople[p.Name] = true
		fmt.Printf("Inserted person: %s\n", p.Name)
	}

	knownActivities := make(map[string]bool)
	for _, a := range activities {
		activity := models.Activity{
			Name:    a.Name,
			Type:    a.Type,
			Indoor:  a.Indoor,
			Outdoor: a.Outdoor,
		}
		if err := db.InsertActivity(ctx, &activity); err != nil {
			return err
		}
		knownActivities[a.Name] = true
		fmt.Printf("Inserted activity: %s\n", a.Name)
	}

	for _, e := range events {
		event := models.Event{
			Name:         e.Name,
			ActivityName: e.Activity,
			People:       e.People,
		}
		if e.DateTime != "" {
			dateTime, err := time.Parse(time.RFC3339, e.DateTime)
			if err != nil {
				return fmt.Errorf("event %q: invalid date_time %q: %w", e.Name, e.DateTime, err)
			}
			event.DateTime = &dateTime
		}

		// Unknown references are inserted as-is; the read path resolves
		// what it can and skips the rest.
		if !knownActivities[e.Activity] {
			fmt.Printf("Warning: event %q references unknown activity %q\n", e.Name, e.Activity)
		}
		for _, name := range e.People {
			if !knownPeople[name] {
				fmt.Printf("Warning: event %q references unknown person %q\n", e.Name, name)
			}
		}

		if err := db.InsertEvent(ctx, &event); err != nil {
			return err
		}
		fmt.Printf("Inserted event: %s\n", e.Name)
	}

	fmt.Printf("Loaded %d people, %d activities, %d events.\n", len(people), len(activities), len(events))
	return nil
}

func readJSONFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
