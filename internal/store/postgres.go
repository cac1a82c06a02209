package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/friendlens/friendlens/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Postgres implements EventStore on PostgreSQL. Every operation checks a
// connection out of the database/sql pool and returns it unconditionally,
// success or failure.
type Postgres struct {
	db *sql.DB
}

// Open connects to PostgreSQL and verifies the connection.
func Open(databaseURL string) (*Postgres, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{db: db}, nil
}

// Close closes the underlying pool.
func (p *Postgres) Close() error {
	return p.db.Close()
}

// Ping verifies the store is reachable.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// FetchAllEvents returns up to limit events, newest first, with activity
// and attendee references resolved where the referenced records exist.
func (p *Postgres) FetchAllEvents(ctx context.Context, limit int) ([]models.Event, error) {
	query := `
		SELECT id, name, activity_name, date_time, people
		FROM events
		ORDER BY date_time DESC NULLS LAST, name
		LIMIT $1
	`
	events, err := p.queryEvents(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if err := p.resolveReferences(ctx, events); err != nil {
		return nil, err
	}
	return events, nil
}

// FetchAllPeople returns up to limit people ordered by name.
func (p *Postgres) FetchAllPeople(ctx context.Context, limit int) ([]models.Person, error) {
	query := `
		SELECT id, name, gender, birth_date
		FROM people
		ORDER BY name
		LIMIT $1
	`
	rows, err := p.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query people: %w", err)
	}
	defer rows.Close()

	var people []models.Person
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		people = append(people, person)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}
	return people, nil
}

// FetchAllActivities returns up to limit activities ordered by name.
func (p *Postgres) FetchAllActivities(ctx context.Context, limit int) ([]models.Activity, error) {
	query := `
		SELECT id, name, type, indoor, outdoor
		FROM activities
		ORDER BY name
		LIMIT $1
	`
	rows, err := p.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		var activity models.Activity
		if err := rows.Scan(&activity.ID, &activity.Name, &activity.Type, &activity.Indoor, &activity.Outdoor); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activities: %w", err)
	}
	return activities, nil
}

// SearchEventsByKeyword runs a relevance-ranked full-text search over the
// given event field. References are not resolved on search results.
func (p *Postgres) SearchEventsByKeyword(ctx context.Context, field SearchField, keyword string, limit int) ([]models.Event, error) {
	var query string
	switch field {
	case SearchFieldActivityName:
		query = `
			SELECT id, name, activity_name, date_time, people
			FROM events
			WHERE to_tsvector('simple', activity_name) @@ plainto_tsquery('simple', $1)
			ORDER BY ts_rank(to_tsvector('simple', activity_name), plainto_tsquery('simple', $1)) DESC, name
			LIMIT $2
		`
	case SearchFieldPeople:
		query = `
			SELECT id, name, activity_name, date_time, people
			FROM events
			WHERE to_tsvector('simple', array_to_string(people, ' ')) @@ plainto_tsquery('simple', $1)
			ORDER BY ts_rank(to_tsvector('simple', array_to_string(people, ' ')), plainto_tsquery('simple', $1)) DESC, name
			LIMIT $2
		`
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedField, field)
	}

	return p.queryEvents(ctx, query, keyword, limit)
}

// queryEvents runs an event query and scans the base columns.
func (p *Postgres) queryEvents(ctx context.Context, query string, args ...any) ([]models.Event, error) {
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		var dateTime sql.NullTime
		var people pq.StringArray

		if err := rows.Scan(&event.ID, &event.Name, &event.ActivityName, &dateTime, &people); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		if dateTime.Valid {
			t := dateTime.Time
			event.DateTime = &t
		}
		event.People = []string(people)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return events, nil
}

// resolveReferences attaches resolved Activity and Attendee records to the
// events in place. Events referencing an unknown activity keep a nil
// Activity; unknown attendee names are skipped. Bad references are a data
// condition, not an error.
func (p *Postgres) resolveReferences(ctx context.Context, events []models.Event) error {
	if len(events) == 0 {
		return nil
	}

	activityNames := make(map[string]bool)
	personNames := make(map[string]bool)
	for _, event := range events {
		if event.ActivityName != "" {
			activityNames[event.ActivityName] = true
		}
		for _, name := range event.People {
			personNames[name] = true
		}
	}

	activities, err := p.activitiesByName(ctx, keys(activityNames))
	if err != nil {
		return err
	}
	people, err := p.peopleByName(ctx, keys(personNames))
	if err != nil {
		return err
	}

	for i := range events {
		if activity, ok := activities[events[i].ActivityName]; ok {
			a := activity
			events[i].Activity = &a
		}
		for _, name := range events[i].People {
			if person, ok := people[name]; ok {
				events[i].Attendees = append(events[i].Attendees, person)
			}
		}
	}
	return nil
}

func (p *Postgres) activitiesByName(ctx context.Context, names []string) (map[string]models.Activity, error) {
	result := make(map[string]models.Activity, len(names))
	if len(names) == 0 {
		return result, nil
	}

	query := `
		SELECT id, name, type, indoor, outdoor
		FROM activities
		WHERE name = ANY($1)
	`
	rows, err := p.db.QueryContext(ctx, query, pq.Array(names))
	if err != nil {
		return nil, fmt.Errorf("failed to query referenced activities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var activity models.Activity
		if err := rows.Scan(&activity.ID, &activity.Name, &activity.Type, &activity.Indoor, &activity.Outdoor); err != nil {
			return nil, fmt.Errorf("failed to scan referenced activity: %w", err)
		}
		result[activity.Name] = activity
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate referenced activities: %w", err)
	}
	return result, nil
}

func (p *Postgres) peopleByName(ctx context.Context, names []string) (map[string]models.Person, error) {
	result := make(map[string]models.Person, len(names))
	if len(names) == 0 {
		return result, nil
	}

	query := `
		SELECT id, name, gender, birth_date
		FROM people
		WHERE name = ANY($1)
	`
	rows, err := p.db.QueryContext(ctx, query, pq.Array(names))
	if err != nil {
		return nil, fmt.Errorf("failed to query referenced people: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		result[person.Name] = person
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate referenced people: %w", err)
	}
	return result, nil
}

func scanPerson(rows *sql.Rows) (models.Person, error) {
	var person models.Person
	var birthDate sql.NullTime
	if err := rows.Scan(&person.ID, &person.Name, &person.Gender, &birthDate); err != nil {
		return models.Person{}, fmt.Errorf("failed to scan person: %w", err)
	}
	if birthDate.Valid {
		t := birthDate.Time
		person.BirthDate = &t
	}
	return person, nil
}

func keys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}

// InsertPerson inserts a person record, assigning an ID when missing.
func (p *Postgres) InsertPerson(ctx context.Context, person *models.Person) error {
	if person.ID == uuid.Nil {
		person.ID = uuid.New()
	}
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO people (id, name, gender, birth_date)
		VALUES ($1, $2, $3, $4)
	`, person.ID, person.Name, person.Gender, person.BirthDate)
	if err != nil {
		return fmt.Errorf("failed to insert person %q: %w", person.Name, err)
	}
	return nil
}

// InsertActivity inserts an activity record, assigning an ID when missing.
func (p *Postgres) InsertActivity(ctx context.Context, activity *models.Activity) error {
	if activity.ID == uuid.Nil {
		activity.ID = uuid.New()
	}
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO activities (id, name, type, indoor, outdoor)
		VALUES ($1, $2, $3, $4, $5)
	`, activity.ID, activity.Name, activity.Type, activity.Indoor, activity.Outdoor)
	if err != nil {
		return fmt.Errorf("failed to insert activity %q: %w", activity.Name, err)
	}
	return nil
}

// InsertEvent inserts an event record, assigning an ID when missing.
func (p *Postgres) InsertEvent(ctx context.Context, event *models.Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO events (id, name, activity_name, date_time, people)
		VALUES ($1, $2, $3, $4, $5)
	`, event.ID, event.Name, event.ActivityName, event.DateTime, pq.Array(event.People))
	if err != nil {
		return fmt.Errorf("failed to insert event %q: %w", event.Name, err)
	}
	return nil
}
