package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/db"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/projection"
)

type projectionService struct {
	uow      db.UnitOfWork
	userID   string
	clock    func() time.Time
	observer UseCaseObserver
}

// NewProjectionService builds the read-side projection use cases. clock is
// read once per call to fix asOf; nil means time.Now.
func NewProjectionService(uow db.UnitOfWork, userID string, clock func() time.Time, observers ...UseCaseObserver) ProjectionService {
	if clock == nil {
		clock = time.Now
	}
	return &projectionService{
		uow:      uow,
		userID:   userID,
		clock:    clock,
		observer: useCaseObserverOrNoop(observers),
	}
}

func checkHorizon(horizon int) error {
	if horizon < 0 || horizon > projection.MaxHorizon {
		return fmt.Errorf("%w: %d (must be between 0 and %d)", ErrInvalidHorizon, horizon, projection.MaxHorizon)
	}
	return nil
}

func (s *projectionService) Project(ctx context.Context, horizon int) (result *Projection, err error) {
	fields := map[string]any{"horizon": horizon}
	defer observe(ctx, s.observer, "project", time.Now(), fields, &err)

	if err = checkHorizon(horizon); err != nil {
		return nil, err
	}
	asOf := s.clock()
	data, err := loadData(ctx, s.uow, s.userID)
	if err != nil {
		return nil, err
	}

	snapshots := projection.Project(data, horizon, asOf)
	markers := projection.Markers(data, horizon, asOf).Entries()
	fields["records"] = data.RecordCount()

	return &Projection{
		AsOf:      asOf,
		Horizon:   horizon,
		Snapshots: snapshots,
		Markers:   markers,
	}, nil
}

func (s *projectionService) Markers(ctx context.Context, horizon int) ([]projection.MarkerEntry, error) {
	if err := checkHorizon(horizon); err != nil {
		return nil, err
	}
	asOf := s.clock()
	data, err := loadData(ctx, s.uow, s.userID)
	if err != nil {
		return nil, err
	}
	return projection.Markers(data, horizon, asOf).Entries(), nil
}

func (s *projectionService) Detail(ctx context.Context, month int) (*projection.MonthDetail, error) {
	if err := checkHorizon(month); err != nil {
		return nil, err
	}
	asOf := s.clock()
	data, err := loadData(ctx, s.uow, s.userID)
	if err != nil {
		return nil, err
	}
	r := projection.NewResolver(data, asOf, projection.Markers(data, month, asOf))
	detail := r.Detail(month)
	return &detail, nil
}
