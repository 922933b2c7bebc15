// Package batch applies ordered lists of task mutations in one transaction
// with per-operation permission checks and failure isolation.
package batch

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/taskscope-backend/internal/config"
	"github.com/heartmarshall/taskscope-backend/internal/domain"
	"github.com/heartmarshall/taskscope-backend/internal/service/history"
	"github.com/heartmarshall/taskscope-backend/internal/service/notify"
	"github.com/heartmarshall/taskscope-backend/internal/service/permission"
	"github.com/heartmarshall/taskscope-backend/internal/service/scope"
)

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	RunInSavepoint(ctx context.Context, fn func(ctx context.Context) error) error
}

type permissionChecker interface {
	Subject(ctx context.Context, userID uuid.UUID) (*scope.Snapshot, error)
	Check(ctx context.Context, subject *scope.Snapshot, key domain.Permission, pctx *permission.Context) (bool, error)
}

type taskRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	UpdateField(ctx context.Context, id uuid.UUID, field domain.TaskField, value any) error
	SetStatus(ctx context.Context, id, statusID uuid.UUID) error
	Close(ctx context.Context, id uuid.UUID, closeType domain.CloseType, reason *string, closedBy uuid.UUID, at time.Time) error
	ListAssigneeIDs(ctx context.Context, taskID uuid.UUID) ([]uuid.UUID, error)
	ReplaceAssignees(ctx context.Context, taskID uuid.UUID, userIDs []uuid.UUID, assignedBy uuid.UUID) error
}

type statusRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Status, error)
}

type checklistRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ChecklistItem, error)
	SetChecked(ctx context.Context, id uuid.UUID, checked bool) error
	CountByTask(ctx context.Context, taskID uuid.UUID) (int, error)
	Create(ctx context.Context, item domain.ChecklistItem) (*domain.ChecklistItem, error)
}

type userRepo interface {
	ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}

type auditLogger interface {
	Append(ctx context.Context, input history.AppendInput) (domain.HistoryEntry, error)
}

type dispatcher interface {
	Dispatch(ctx context.Context, n notify.Notice) ([]domain.Notification, error)
}

// Publisher forwards committed notifications to live subscribers.
type Publisher interface {
	Publish(ctx context.Context, items []domain.Notification) error
}

// Metrics records batch outcomes.
type Metrics interface {
	ObserveOperation(kind string, outcome string)
	ObserveBatch(size int, d time.Duration)
}

// Repos groups the stores the processor writes to.
type Repos struct {
	Tasks     taskRepo
	Statuses  statusRepo
	Checklist checklistRepo
	Users     userRepo
}

// Processor executes batches.
type Processor struct {
	tx        txManager
	perms     permissionChecker
	tasks     taskRepo
	statuses  statusRepo
	checklist checklistRepo
	users     userRepo
	audit     auditLogger
	notify    dispatcher
	publisher Publisher
	metrics   Metrics
	cfg       config.BatchConfig
	now       func() time.Time
	log       *slog.Logger
}

// Option customizes a Processor.
type Option func(*Processor)

// WithPublisher sets the post-commit notification publisher.
func WithPublisher(p Publisher) Option {
	return func(pr *Processor) { pr.publisher = p }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m Metrics) Option {
	return func(pr *Processor) { pr.metrics = m }
}

// NewProcessor creates a new batch Processor.
func NewProcessor(
	log *slog.Logger,
	tx txManager,
	perms permissionChecker,
	repos Repos,
	audit auditLogger,
	notify dispatcher,
	cfg config.BatchConfig,
	opts ...Option,
) *Processor {
	p := &Processor{
		tx:        tx,
		perms:     perms,
		tasks:     repos.Tasks,
		statuses:  repos.Statuses,
		checklist: repos.Checklist,
		users:     repos.Users,
		audit:     audit,
		notify:    notify,
		metrics:   nopMetrics{},
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
		log:       log.With("service", "batch"),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.cfg.MaxOperations <= 0 {
		p.cfg.MaxOperations = DefaultMaxOperations
	}
	return p
}

// MaxOperations returns the effective batch size bound.
func (p *Processor) MaxOperations() int {
	return p.cfg.MaxOperations
}

// DefaultMaxOperations is used when the configured bound is unset.
const DefaultMaxOperations = 100

type nopMetrics struct{}

func (nopMetrics) ObserveOperation(string, string) {}
func (nopMetrics) ObserveBatch(int, time.Duration) {}
