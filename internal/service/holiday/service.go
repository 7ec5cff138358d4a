package holiday

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-portal/internal/domain/auth"
	"github.com/cmlabs-hris/hr-portal/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-portal/internal/domain/timeoff"
	"github.com/cmlabs-hris/hr-portal/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal/internal/pkg/database"
	"github.com/cmlabs-hris/hr-portal/internal/pkg/logger"
	"github.com/cmlabs-hris/hr-portal/internal/pkg/validator"
	"go.uber.org/zap"
)

var (
	_ holiday.HolidayService  = (*HolidayServiceImpl)(nil)
	_ timeoff.HolidayCalendar = (*HolidayServiceImpl)(nil)
)

type HolidayServiceImpl struct {
	tx database.Transactor
	holiday.HolidayRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewHolidayService(tx database.Transactor, repo holiday.HolidayRepository, log *zap.Logger) *HolidayServiceImpl {
	return &HolidayServiceImpl{
		tx:                tx,
		HolidayRepository: repo,
		logger:            logger.OrNop(log).Named("holiday.service"),
		now:               time.Now,
	}
}

func (s *HolidayServiceImpl) List(ctx context.Context, year int) ([]holiday.HolidayResponse, error) {
	if year == 0 {
		year = s.now().Year()
	}
	from, to := holiday.YearRange(year)

	holidays, err := s.HolidayRepository.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	responses := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, holiday.NewHolidayResponse(h))
	}
	return responses, nil
}

func (s *HolidayServiceImpl) Create(ctx context.Context, caller auth.AuthContext, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := caller.Require(user.PermissionHolidayManage); err != nil {
		return holiday.HolidayResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}
	date, _ := validator.IsValidDate(strings.TrimSpace(req.Date))

	exists, err := s.HolidayRepository.ExistsByDate(ctx, date)
	if err != nil {
		return holiday.HolidayResponse{}, fmt.Errorf("failed to check holiday date: %w", err)
	}
	if exists {
		return holiday.HolidayResponse{}, holiday.ErrHolidayDateExists
	}

	created, err := s.HolidayRepository.Create(ctx, holiday.Holiday{Date: date, Name: req.Name})
	if err != nil {
		if errors.Is(err, holiday.ErrHolidayDateExists) {
			return holiday.HolidayResponse{}, err
		}
		return holiday.HolidayResponse{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	s.logger.Info("holiday created",
		zap.String("date", date.Format(validator.DateLayout)),
		zap.String("name", created.Name),
		zap.Int64("created_by", caller.UserID),
	)
	return holiday.NewHolidayResponse(created), nil
}

func (s *HolidayServiceImpl) Delete(ctx context.Context, caller auth.AuthContext, id int64) error {
	if err := caller.Require(user.PermissionHolidayManage); err != nil {
		return err
	}
	if id <= 0 {
		return fmt.Errorf("%w: holiday id must be a positive integer", timeoff.ErrInvalidArgument)
	}

	if err := s.HolidayRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, holiday.ErrHolidayNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete holiday: %w", err)
	}

	s.logger.Info("holiday deleted", zap.Int64("holiday_id", id), zap.Int64("deleted_by", caller.UserID))
	return nil
}

// ImportFile loads a YAML calendar and upserts every entry in one transaction.
func (s *HolidayServiceImpl) ImportFile(ctx context.Context, path string) (holiday.ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return holiday.ImportResult{}, fmt.Errorf("failed to read holiday file: %w", err)
	}

	holidays, err := holiday.ParseCalendar(data)
	if err != nil {
		return holiday.ImportResult{}, err
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		for _, h := range holidays {
			if err := s.HolidayRepository.Upsert(ctx, h); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return holiday.ImportResult{}, fmt.Errorf("failed to import holidays: %w", err)
	}

	s.logger.Info("holiday calendar imported", zap.String("path", path), zap.Int("count", len(holidays)))
	return holiday.ImportResult{Imported: len(holidays)}, nil
}

// HolidaySet implements timeoff.HolidayCalendar.
func (s *HolidayServiceImpl) HolidaySet(ctx context.Context, from, to time.Time) (timeoff.HolidaySet, error) {
	holidays, err := s.HolidayRepository.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load holidays: %w", err)
	}

	dates := make([]time.Time, 0, len(holidays))
	for _, h := range holidays {
		dates = append(dates, h.Date)
	}
	return timeoff.NewHolidaySet(dates...), nil
}
