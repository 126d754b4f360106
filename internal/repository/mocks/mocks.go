package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ganot/timecard/internal/domain/timecard"
)

// TimecardRepository is a mock for timecard.Repository.
type TimecardRepository struct {
	mock.Mock
}

func (m *TimecardRepository) FindByEmployeeAndWeek(ctx context.Context, employeeID string, weekStart timecard.Date) (*timecard.Timecard, error) {
	args := m.Called(ctx, employeeID, weekStart)
	if tc, ok := args.Get(0).(*timecard.Timecard); ok {
		return tc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TimecardRepository) Save(ctx context.Context, tc *timecard.Timecard) error {
	args := m.Called(ctx, tc)
	return args.Error(0)
}

func (m *TimecardRepository) List(ctx context.Context) ([]*timecard.Timecard, error) {
	args := m.Called(ctx)
	if cards, ok := args.Get(0).([]*timecard.Timecard); ok {
		return cards, args.Error(1)
	}
	return nil, args.Error(1)
}
