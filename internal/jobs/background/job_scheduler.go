package background

import (
	"context"
	"sync"
	"time"

	"barberflow/internal/repositories"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

// JobScheduler runs the recurring maintenance work: expiring trial
// tenants and logging the day's agenda size per shop.
type JobScheduler struct {
	scheduler       gocron.Scheduler
	orgRepo         repositories.OrganizationRepository
	appointmentRepo repositories.AppointmentRepository
	jobs            map[string]gocron.Job
	mu              sync.RWMutex
}

func NewJobScheduler(orgRepo repositories.OrganizationRepository, appointmentRepo repositories.AppointmentRepository) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:       scheduler,
		orgRepo:         orgRepo,
		appointmentRepo: appointmentRepo,
		jobs:            make(map[string]gocron.Job),
	}
	js.registerJobs()
	return js, nil
}

func (js *JobScheduler) Start() {
	log.Info().Msg("starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Info().Msg("stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	js.mu.Lock()
	defer js.mu.Unlock()

	trialJob, err := js.scheduler.NewJob(
		gocron.DurationJob(time.Hour),
		gocron.NewTask(js.expireTrials, context.Background()),
		gocron.WithName("trial-expiry-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to create trial expiry job")
	} else {
		js.jobs["trial-expiry"] = trialJob
	}

	agendaJob, err := js.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(6, 0, 0))),
		gocron.NewTask(js.logDailyAgenda, context.Background()),
		gocron.WithName("daily-agenda-report"),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to create daily agenda job")
	} else {
		js.jobs["daily-agenda"] = agendaJob
	}

	log.Info().Int("count", len(js.jobs)).Msg("registered background jobs")
}

// expireTrials suspends every trial organization whose window has closed,
// so the next login attempt is rejected at the gate.
func (js *JobScheduler) expireTrials(ctx context.Context) {
	affected, err := js.orgRepo.ExpireTrials(ctx, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("trial expiry sweep failed")
		return
	}
	if affected > 0 {
		log.Info().Int64("organizations", affected).Msg("suspended expired trials")
	}
}

// logDailyAgenda walks the tenant list in pages and logs how many
// appointments each shop has today.
func (js *JobScheduler) logDailyAgenda(ctx context.Context) {
	const pageSize = 100
	today := time.Now()

	for offset := 0; ; offset += pageSize {
		orgs, err := js.orgRepo.List(ctx, pageSize, offset)
		if err != nil {
			log.Error().Err(err).Msg("daily agenda report failed to list organizations")
			return
		}
		if len(orgs) == 0 {
			return
		}

		for _, org := range orgs {
			count, err := js.appointmentRepo.CountByDay(ctx, org.ID, today)
			if err != nil {
				log.Warn().Err(err).Str("organization", org.Slug).Msg("daily agenda count failed")
				continue
			}
			log.Info().
				Str("organization", org.Slug).
				Int("appointments", count).
				Msg("daily agenda")
		}

		if len(orgs) < pageSize {
			return
		}
	}
}
