package testfixtures

import (
	"log/slog"
	"time"

	"github.com/example/agenda/internal/application"
	"github.com/example/agenda/internal/calendar"
)

// ServiceFactory assists tests with constructing agenda sessions using
// deterministic identifiers and clocks.
type ServiceFactory struct {
	Clock       *Clock
	IDGenerator *IDGenerator
	Settings    calendar.Settings
	Logger      *slog.Logger
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with defaults: Monday-start
// weeks observed in UTC.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	settings := calendar.DefaultSettings()
	settings.Location = time.UTC
	factory := &ServiceFactory{
		Clock:       NewClock(time.Time{}),
		IDGenerator: NewIDGenerator("id"),
		Settings:    settings,
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.IDGenerator == nil {
		factory.IDGenerator = NewIDGenerator("id")
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

// WithIDGenerator overrides the identifier generator used by the factory.
func WithIDGenerator(generator *IDGenerator) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.IDGenerator = generator
	}
}

// WithWeekStart overrides the first weekday of week projections.
func WithWeekStart(day time.Weekday) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Settings.WeekStart = day
	}
}

// WithLogger routes service logs to logger.
func WithLogger(logger *slog.Logger) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Logger = logger
	}
}

// NewAgendaService builds an empty session wired to the factory's
// deterministic collaborators.
func (f *ServiceFactory) NewAgendaService() *application.AgendaService {
	return application.NewAgendaServiceWithLogger(
		f.IDGenerator.NextFunc(),
		f.Clock.NowFunc(),
		f.Settings,
		f.Logger,
	)
}
