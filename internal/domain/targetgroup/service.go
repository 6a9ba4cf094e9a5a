package targetgroup

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"audiens/internal/core/apperror"
	"audiens/internal/core/id"
	"audiens/internal/domain/employee"
	"audiens/internal/domain/eval"
	"audiens/internal/domain/filter"
	"audiens/pkg/logger"
)

var tracer trace.Tracer = otel.Tracer("audiens/targetgroup")

// Service provides target group business logic. Compiled membership rules
// are cached per group and invalidated on delete.
type Service struct {
	repo      Repository
	employees employee.Repository
	evaluator *eval.Evaluator
	audit     AuditLog

	mu       sync.Mutex
	programs map[id.ID]*eval.Program
}

// NewService creates a target group service. audit may be nil.
func NewService(repo Repository, employees employee.Repository, evaluator *eval.Evaluator, audit AuditLog) *Service {
	return &Service{
		repo:      repo,
		employees: employees,
		evaluator: evaluator,
		audit:     audit,
		programs:  make(map[id.ID]*eval.Program),
	}
}

// Create validates the payload, rejects duplicate names, verifies the rule
// compiles, and persists the group.
func (s *Service) Create(ctx context.Context, payload filter.WirePayload) (*TargetGroup, error) {
	ctx, span := tracer.Start(ctx, "targetgroup.Create")
	defer span.End()
	span.SetAttributes(attribute.String("targetgroup.name", payload.Name))

	if err := payload.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByName(ctx, payload.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewDuplicate("target group", "name", payload.Name)
	}

	// An expression the evaluator cannot compile must never be stored.
	prg, err := s.evaluator.Compile(payload)
	if err != nil {
		return nil, err
	}

	tg := &TargetGroup{
		ID:        id.New(),
		Name:      payload.Name,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, tg); err != nil {
		return nil, err
	}
	s.cacheProgram(tg.ID, prg)

	if s.audit != nil {
		if err := s.audit.Record(ctx, "create", tg.ID, payload); err != nil {
			logger.Warn(ctx, "audit write failed", "group_id", tg.ID, "error", err)
		}
	}

	logger.Info(ctx, "target group created",
		"group_id", tg.ID,
		"name", tg.Name,
		"groups", len(payload.FilterGroups),
	)
	return tg, nil
}

// List returns all target groups.
func (s *Service) List(ctx context.Context) ([]TargetGroup, error) {
	return s.repo.List(ctx)
}

// Get returns one target group by id.
func (s *Service) Get(ctx context.Context, groupID id.ID) (*TargetGroup, error) {
	return s.repo.GetByID(ctx, groupID)
}

// Delete removes a target group.
func (s *Service) Delete(ctx context.Context, groupID id.ID) error {
	tg, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, groupID); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.programs, groupID)
	s.mu.Unlock()
	if s.audit != nil {
		if err := s.audit.Record(ctx, "delete", groupID, tg.Payload); err != nil {
			logger.Warn(ctx, "audit write failed", "group_id", groupID, "error", err)
		}
	}
	return nil
}

func (s *Service) cacheProgram(groupID id.ID, prg *eval.Program) {
	s.mu.Lock()
	s.programs[groupID] = prg
	s.mu.Unlock()
}

// program returns the compiled rule for a stored group, compiling and
// caching it on first use.
func (s *Service) program(groupID id.ID, payload filter.WirePayload) (*eval.Program, error) {
	s.mu.Lock()
	prg, ok := s.programs[groupID]
	s.mu.Unlock()
	if ok {
		return prg, nil
	}
	prg, err := s.evaluator.Compile(payload)
	if err != nil {
		return nil, err
	}
	s.cacheProgram(groupID, prg)
	return prg, nil
}

// Preview is the membership summary for a payload evaluated against the
// current employee population.
type Preview struct {
	Total   int      `json:"total"`
	Matched int      `json:"matched"`
	Sample  []string `json:"sample"`
}

// previewSampleSize caps the number of matched names returned.
const previewSampleSize = 10

// PreviewMembers evaluates a payload against all employees without
// persisting anything.
func (s *Service) PreviewMembers(ctx context.Context, payload filter.WirePayload) (*Preview, error) {
	ctx, span := tracer.Start(ctx, "targetgroup.PreviewMembers")
	defer span.End()

	prg, err := s.evaluator.Compile(payload)
	if err != nil {
		return nil, err
	}

	preview, err := s.evaluate(ctx, prg)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("targetgroup.preview.total", preview.Total),
		attribute.Int("targetgroup.preview.matched", preview.Matched),
	)
	return preview, nil
}

// Members evaluates a stored target group against the current employee
// population, reusing the group's compiled rule.
func (s *Service) Members(ctx context.Context, groupID id.ID) (*Preview, error) {
	ctx, span := tracer.Start(ctx, "targetgroup.Members")
	defer span.End()

	tg, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	prg, err := s.program(tg.ID, tg.Payload)
	if err != nil {
		return nil, err
	}
	return s.evaluate(ctx, prg)
}

func (s *Service) evaluate(ctx context.Context, prg *eval.Program) (*Preview, error) {
	people, err := s.employees.List(ctx)
	if err != nil {
		return nil, err
	}

	preview := &Preview{Total: len(people)}
	for i := range people {
		matched, err := prg.Matches(people[i].AttributeValues())
		if err != nil {
			return nil, err
		}
		if matched {
			preview.Matched++
			if len(preview.Sample) < previewSampleSize {
				preview.Sample = append(preview.Sample, people[i].FullName)
			}
		}
	}
	return preview, nil
}
