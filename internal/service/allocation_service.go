package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/roomplan/internal/engine"
	"github.com/Freeeeeet/roomplan/internal/model"
)

// AllocationService runs one allocation strategy over validated inputs and
// gates every result through the schedule validator before handing it out.
type AllocationService struct {
	strategy engine.Strategy
	logger   *zap.Logger
}

func NewAllocationService(strategy engine.Strategy, logger *zap.Logger) *AllocationService {
	return &AllocationService{
		strategy: strategy,
		logger:   logger,
	}
}

// Run produces a fresh assignment for the given events and rooms. A
// validator violation means the allocator itself is defective: every
// violation is logged at error level and the run fails.
func (s *AllocationService) Run(ctx context.Context, events []*model.Event, rooms []*model.Room) (*model.Assignment, error) {
	started := time.Now()

	assignment, err := s.strategy.Allocate(ctx, events, rooms)
	if err != nil {
		return nil, fmt.Errorf("allocate (%s): %w", s.strategy.Name(), err)
	}

	if violations := engine.Validate(assignment); len(violations) > 0 {
		for _, v := range violations {
			s.logger.Error("assignment failed validation",
				zap.String("run_id", assignment.RunID),
				zap.String("strategy", s.strategy.Name()),
				zap.String("violation", v.String()))
		}
		return nil, fmt.Errorf("allocator %q produced an infeasible assignment: %d violation(s)", s.strategy.Name(), len(violations))
	}

	s.logger.Info("allocation finished",
		zap.String("run_id", assignment.RunID),
		zap.String("strategy", s.strategy.Name()),
		zap.Int("events", len(events)),
		zap.Int("assigned", assignment.AssignedCount()),
		zap.Int("unassigned", len(events)-assignment.AssignedCount()),
		zap.Int("rooms_used", assignment.RoomsOpened),
		zap.Duration("took", time.Since(started)))

	return assignment, nil
}
