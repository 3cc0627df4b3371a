package leave

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cordia-hr/leave-planner-go/internal/calendar"
	"github.com/cordia-hr/leave-planner-go/internal/domain/leave"
	"github.com/cordia-hr/leave-planner-go/internal/domain/user"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BulkServiceImpl struct {
	tx leave.Transactor
	leave.LeaveTypeRepository
	leave.LeaveQuotaRepository
	leave.LeaveRequestRepository
	leave.HolidayRepository
	user.UserRepository
}

func NewBulkService(
	tx leave.Transactor,
	leaveTypeRepository leave.LeaveTypeRepository,
	leaveQuotaRepository leave.LeaveQuotaRepository,
	leaveRequestRepository leave.LeaveRequestRepository,
	holidayRepository leave.HolidayRepository,
	userRepository user.UserRepository,
) leave.BulkService {
	return &BulkServiceImpl{
		tx:                     tx,
		LeaveTypeRepository:    leaveTypeRepository,
		LeaveQuotaRepository:   leaveQuotaRepository,
		LeaveRequestRepository: leaveRequestRepository,
		HolidayRepository:      holidayRepository,
		UserRepository:         userRepository,
	}
}

// LeaveTypes implements leave.BulkService. Inactive types stay on existing
// rows but never appear as options for new batches.
func (s *BulkServiceImpl) LeaveTypes(ctx context.Context) ([]leave.LeaveTypeOption, error) {
	types, err := s.LeaveTypeRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load leave types: %w", err)
	}

	options := make([]leave.LeaveTypeOption, 0, len(types))
	for _, lt := range types {
		if !lt.IsActive {
			continue
		}
		options = append(options, leave.LeaveTypeOption{
			ID:            lt.ID,
			Name:          lt.Name,
			Code:          lt.Code,
			Color:         lt.Color,
			HasQuota:      lt.HasQuota,
			AllowBackdate: lt.AllowBackdate,
		})
	}
	return options, nil
}

// CalendarData implements leave.BulkService.
func (s *BulkServiceImpl) CalendarData(ctx context.Context, req leave.CalendarDataRequest) (leave.CalendarData, error) {
	if _, err := s.UserRepository.GetByID(ctx, req.UserID); err != nil {
		return leave.CalendarData{}, err
	}

	requests, err := s.LeaveRequestRepository.GetActiveByEmployeeYear(ctx, req.UserID, req.Year)
	if err != nil {
		return leave.CalendarData{}, fmt.Errorf("failed to load leave requests: %w", err)
	}

	holidays, err := s.HolidayRepository.GetByYear(ctx, req.Year)
	if err != nil {
		return leave.CalendarData{}, fmt.Errorf("failed to load public holidays: %w", err)
	}

	data := leave.CalendarData{
		ExistingLeaves: make([]leave.ExternalLeaveRange, 0, len(requests)),
		PublicHolidays: make([]string, 0, len(holidays)),
	}
	for _, lr := range requests {
		data.ExistingLeaves = append(data.ExistingLeaves, leave.ExternalLeaveRange{
			FromDate: calendar.DateOf(lr.StartDate),
			ToDate:   calendar.DateOf(lr.EndDate),
		})
	}
	for _, h := range holidays {
		data.PublicHolidays = append(data.PublicHolidays, calendar.DateOf(h.Date))
	}
	return data, nil
}

// ValidateBulk implements leave.BulkService.
func (s *BulkServiceImpl) ValidateBulk(ctx context.Context, req leave.BulkValidateRequest) ([]leave.ValidationResult, leave.BalanceImpact, error) {
	in, leaveType, _, err := s.prepareVerdict(ctx, req.UserID, req.LeaveTypeID, req.Dates)
	if err != nil {
		return nil, leave.BalanceImpact{}, err
	}

	return evaluateDates(in), balanceImpact(leaveType.Name, in), nil
}

// StoreBulk implements leave.BulkService. Dates are re-verified against
// current data; validation results from an earlier call are never trusted.
// The verdict read runs outside the transaction, so every accepted date is
// re-checked for overlaps inside it before its row is created.
func (s *BulkServiceImpl) StoreBulk(ctx context.Context, req leave.BulkStoreRequest) (leave.BulkStoreSummary, error) {
	in, leaveType, quota, err := s.prepareVerdict(ctx, req.UserID, req.LeaveTypeID, req.Dates)
	if err != nil {
		return leave.BulkStoreSummary{}, err
	}

	results := evaluateDates(in)

	accepted := make([]string, 0, len(results))
	failed := 0
	for _, res := range results {
		if res.Status == leave.ValidationStatusConflict {
			failed++
			continue
		}
		accepted = append(accepted, res.Date)
	}

	if failed > 0 && !req.AllowPartialSuccess {
		return leave.BulkStoreSummary{Successful: 0, Failed: len(results)}, leave.ErrUnresolvedConflicts
	}
	if len(accepted) == 0 && failed == 0 {
		return leave.BulkStoreSummary{}, leave.ErrNothingToSubmit
	}

	successful := 0
	if len(accepted) > 0 {
		batchID := uuid.NewString()
		err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
			for _, date := range accepted {
				day, err := calendar.ParseDate(date)
				if err != nil {
					return fmt.Errorf("failed to parse date %q: %w", date, err)
				}

				overlaps, err := s.LeaveRequestRepository.ExistsOverlapping(txCtx, req.UserID, day)
				if err != nil {
					return fmt.Errorf("failed to check overlap for %s: %w", date, err)
				}
				if overlaps {
					// A competing request landed between verdict and store.
					if !req.AllowPartialSuccess {
						return leave.ErrUnresolvedConflicts
					}
					failed++
					continue
				}

				request := leave.LeaveRequest{
					EmployeeID:  req.UserID,
					LeaveTypeID: leaveType.ID,
					StartDate:   day,
					EndDate:     day,
					Reason:      req.Reason,
					Status:      leave.LeaveRequestStatusWaitingApproval,
					BatchID:     &batchID,
				}
				if _, err := s.LeaveRequestRepository.Create(txCtx, request); err != nil {
					return fmt.Errorf("failed to create leave request for %s: %w", date, err)
				}
				successful++
			}

			if successful > 0 && leaveType.HasQuota {
				days := decimal.NewFromInt(int64(successful))
				if err := s.LeaveQuotaRepository.AddPending(txCtx, quota.ID, days); err != nil {
					return fmt.Errorf("failed to reserve pending quota: %w", err)
				}
			}
			return nil
		})
		if err != nil {
			return leave.BulkStoreSummary{}, err
		}
	}

	return leave.BulkStoreSummary{Successful: successful, Failed: failed}, nil
}

// prepareVerdict loads everything evaluateDates needs for the given batch.
func (s *BulkServiceImpl) prepareVerdict(ctx context.Context, userID, leaveTypeID string, dates []string) (verdictInput, leave.LeaveType, leave.LeaveQuota, error) {
	var in verdictInput

	if _, err := s.UserRepository.GetByID(ctx, userID); err != nil {
		return in, leave.LeaveType{}, leave.LeaveQuota{}, err
	}

	leaveType, err := s.LeaveTypeRepository.GetByID(ctx, leaveTypeID)
	if err != nil {
		return in, leave.LeaveType{}, leave.LeaveQuota{}, err
	}
	if !leaveType.IsActive {
		return in, leave.LeaveType{}, leave.LeaveQuota{}, leave.ErrLeaveTypeInactive
	}

	var quota leave.LeaveQuota
	if leaveType.HasQuota {
		quota, err = s.LeaveQuotaRepository.GetByEmployeeTypeYear(ctx, userID, leaveType.ID, quotaYear(dates))
		if err != nil {
			return in, leave.LeaveType{}, leave.LeaveQuota{}, err
		}
	}

	existing := make([]calendar.DateRange, 0)
	holidays := make(calendar.DateSet)
	for _, year := range distinctYears(dates) {
		requests, err := s.LeaveRequestRepository.GetActiveByEmployeeYear(ctx, userID, year)
		if err != nil {
			return in, leave.LeaveType{}, leave.LeaveQuota{}, fmt.Errorf("failed to load leave requests: %w", err)
		}
		for _, lr := range requests {
			existing = append(existing, calendar.DateRange{
				From: calendar.DateOf(lr.StartDate),
				To:   calendar.DateOf(lr.EndDate),
			})
		}

		yearHolidays, err := s.HolidayRepository.GetByYear(ctx, year)
		if err != nil {
			return in, leave.LeaveType{}, leave.LeaveQuota{}, fmt.Errorf("failed to load public holidays: %w", err)
		}
		for _, h := range yearHolidays {
			holidays[calendar.DateOf(h.Date)] = struct{}{}
		}
	}

	in = verdictInput{
		Dates:         dates,
		Existing:      existing,
		Holidays:      holidays,
		Today:         calendar.DateOf(time.Now()),
		AllowBackdate: leaveType.AllowBackdate,
		HasQuota:      leaveType.HasQuota,
		Available:     quota.Available(),
	}
	return in, leaveType, quota, nil
}

// quotaYear picks the quota period the batch is charged against: the year of
// the earliest requested date.
func quotaYear(dates []string) int {
	year := time.Now().Year()
	earliest := ""
	for _, d := range dates {
		if earliest == "" || d < earliest {
			earliest = d
		}
	}
	if t, err := calendar.ParseDate(earliest); err == nil {
		year = t.Year()
	}
	return year
}

func distinctYears(dates []string) []int {
	set := make(map[int]struct{})
	for _, d := range dates {
		if t, err := calendar.ParseDate(d); err == nil {
			set[t.Year()] = struct{}{}
		}
	}
	years := make([]int, 0, len(set))
	for y := range set {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
