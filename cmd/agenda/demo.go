package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/example/agenda/internal/application"
	"github.com/example/agenda/internal/calendar"
	"github.com/example/agenda/internal/config"
	"github.com/example/agenda/internal/logging"
	"github.com/example/agenda/internal/printer"
)

type demoOptions struct {
	Date string
	Type string
}

func runDemo(ctx context.Context, out io.Writer, o *demoOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	service := application.NewAgendaServiceWithLogger(uuid.NewString, time.Now, cfg.Calendar(), logger)

	reference := time.Now().In(cfg.Location)
	if o.Date != "" {
		day, err := calendar.ParseDay(o.Date)
		if err != nil {
			return err
		}
		reference = day.Start(cfg.Location)
	}

	if err := seedDemo(ctx, service, reference); err != nil {
		return err
	}

	pp := &printer.PrettyPrint{Out: out, Palette: cfg.TypeColors, Location: cfg.Location}
	renderDemo(ctx, pp, service, reference, o.Type)
	return nil
}

type demoEvent struct {
	offset     int
	hour       int
	title      string
	eventType  string
	recurrence application.Recurrence
	notes      []string
}

// seedDemo fills service with a week of sample events around reference.
func seedDemo(ctx context.Context, service *application.AgendaService, reference time.Time) error {
	settings := service.Settings()
	weekStart := calendar.StartOfWeek(reference, settings.WeekStart, settings.Loc())

	samples := []demoEvent{
		{offset: 0, hour: 9, title: "Organic chemistry lecture", eventType: application.TypeClass, recurrence: application.RecurrenceWeekly},
		{offset: 1, hour: 14, title: "Department meeting", eventType: application.TypeWork, notes: []string{"bring budget draft"}},
		{offset: 2, hour: 10, title: "Titration lab", eventType: application.TypeExperiment, notes: []string{"bring goggles", "calibrate pH meter"}},
		{offset: 2, hour: 18, title: "Climbing", eventType: application.TypePersonal, recurrence: application.RecurrenceDaily},
		{offset: 4, hour: 11, title: "Grade quizzes", eventType: application.TypeWork, recurrence: application.RecurrenceMonthly},
	}

	for _, sample := range samples {
		date := weekStart.AddDays(sample.offset).Start(settings.Loc()).Add(time.Duration(sample.hour) * time.Hour)
		event, err := service.CreateEvent(ctx, application.EventInput{
			Title:      sample.title,
			Date:       date,
			Type:       sample.eventType,
			Recurrence: sample.recurrence,
		})
		if err != nil {
			return fmt.Errorf("seed event %q: %w", sample.title, err)
		}
		for _, note := range sample.notes {
			if _, err := service.CreateNote(ctx, application.NoteInput{Content: note, EventID: event.ID}); err != nil {
				return fmt.Errorf("seed note %q: %w", note, err)
			}
		}
	}

	if _, err := service.CreateNote(ctx, application.NoteInput{Content: "order new burettes"}); err != nil {
		return fmt.Errorf("seed free note: %w", err)
	}
	return nil
}

func renderDemo(ctx context.Context, pp *printer.PrettyPrint, service *application.AgendaService, reference time.Time, filter string) {
	settings := service.Settings()
	pp.Events("Events", service.ListEvents(ctx, filter))
	pp.Month(reference, settings.WeekStart, service.DayMarkers(ctx, filter))
	pp.Week(service.WeekView(ctx, reference, filter))
	pp.Notes(service.ListNotes(ctx))
}
