package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"reminders/internal/core/domain"
	"reminders/internal/core/model/request"
	"reminders/internal/core/port"
	"reminders/internal/core/telemetry"
	"reminders/pkg/logger"
	"reminders/pkg/tracing"
)

type Clock func() time.Time

type ReminderService struct {
	repo      port.ReminderRepository
	validator port.Validator
	metrics   port.Metrics
	logger    *logger.Logger
	now       Clock
	newID     func() string
}

type ReminderServiceOption func(*ReminderService)

func WithClock(clock Clock) ReminderServiceOption {
	return func(s *ReminderService) {
		s.now = clock
	}
}

func WithMetrics(metrics port.Metrics) ReminderServiceOption {
	return func(s *ReminderService) {
		s.metrics = metrics
	}
}

func WithLogger(log *logger.Logger) ReminderServiceOption {
	return func(s *ReminderService) {
		s.logger = log
	}
}

func NewReminderService(repo port.ReminderRepository, validator port.Validator, opts ...ReminderServiceOption) *ReminderService {
	s := &ReminderService{
		repo:      repo,
		validator: validator,
		metrics:   telemetry.NewNoOpMetrics(),
		logger:    logger.NewNop(),
		now:       time.Now,
		newID:     uuid.NewString,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

var _ port.ReminderService = (*ReminderService)(nil)

func (s *ReminderService) Create(ctx context.Context, req request.ReminderRequest) (domain.Reminder, error) {
	var created domain.Reminder

	err := s.observe(ctx, "create", func(ctx context.Context) error {
		req.Title = strings.TrimSpace(req.Title)
		req.Description = strings.TrimSpace(req.Description)
		req.DueDate = strings.TrimSpace(req.DueDate)
		req.Email = strings.TrimSpace(req.Email)

		dueDate, err := s.validate(req)
		if err != nil {
			return err
		}

		reminder := domain.Reminder{
			ID:          s.newID(),
			Title:       req.Title,
			Description: req.Description,
			DueDate:     dueDate,
			Email:       req.Email,
			Sent:        false,
			Created:     domain.NormalizeTimestamp(s.now()),
		}

		created, err = s.repo.Create(ctx, reminder)
		if err != nil {
			s.logger.Error(ctx, "failed to store reminder",
				zap.String("id", reminder.ID),
				zap.Error(err),
			)
			return err
		}

		s.logger.Info(ctx, "reminder created",
			zap.String("id", created.ID),
			zap.Time("due_date", created.DueDate),
		)

		return nil
	})

	return created, err
}

// validate collects every failing field so the client sees them all at once.
func (s *ReminderService) validate(req request.ReminderRequest) (time.Time, error) {
	fields := []domain.FieldError{}

	if err := s.validator.ValidateStruct(req); err != nil {
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			return time.Time{}, err
		}
		fields = append(fields, verr.Fields...)
	}

	var dueDate time.Time
	if req.DueDate != "" {
		parsed, err := domain.ParseTimestamp(req.DueDate)
		if err != nil {
			fields = append(fields, domain.FieldError{
				Field:   "dueDate",
				Message: "dueDate must be an ISO 8601 timestamp",
			})
		}
		dueDate = parsed
	}

	if len(fields) > 0 {
		return time.Time{}, &domain.ValidationError{Fields: fields}
	}

	return dueDate, nil
}

func (s *ReminderService) GetByID(ctx context.Context, id string) (domain.Reminder, error) {
	var reminder domain.Reminder

	err := s.observe(ctx, "get", func(ctx context.Context) error {
		var err error
		reminder, err = s.repo.GetByID(ctx, id)
		return err
	})

	return reminder, err
}

func (s *ReminderService) List(ctx context.Context) ([]domain.Reminder, error) {
	var reminders []domain.Reminder

	err := s.observe(ctx, "list", func(ctx context.Context) error {
		var err error
		reminders, err = s.repo.List(ctx)
		return err
	})

	return reminders, err
}

func (s *ReminderService) Update(ctx context.Context, reminder domain.Reminder) error {
	return s.observe(ctx, "update", func(ctx context.Context) error {
		return s.repo.Update(ctx, reminder)
	})
}

func (s *ReminderService) Delete(ctx context.Context, id string) error {
	return s.observe(ctx, "delete", func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, id); err != nil {
			return err
		}

		s.logger.Info(ctx, "reminder deleted", zap.String("id", id))
		return nil
	})
}

func (s *ReminderService) observe(ctx context.Context, operation string, fn func(context.Context) error) error {
	op := telemetry.StartOperation(func(d time.Duration, err error) {
		s.metrics.RecordReminderOperation(ctx, operation, d, err)
	})

	err := tracing.ServiceSpanWrapper(ctx, "reminder", operation, fn)
	op.Done(err)

	return err
}
