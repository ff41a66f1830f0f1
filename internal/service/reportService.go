package service

import (
	"errors"

	"moreview/internal/dto"
	"moreview/internal/models"
	"moreview/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrReportNotFound       = errors.New("report not found")
	ErrNotReporter          = errors.New("only the reporter can withdraw a report")
	ErrReportResolved       = errors.New("report has already been resolved")
	ErrUnknownReportVerdict = errors.New("action must be accept or refuse")
)

type ReportService interface {
	Create(userID string, req dto.CreateReportDTO) (*dto.ReportResponse, error)
	Withdraw(reportID int64, userID string) (*dto.ReportResponse, error)
	Moderate(reportID int64, adminID, action string) (*dto.ReportResponse, error)
	ListOwn(userID string) ([]dto.ReportResponse, error)
	ListAll(movieQuery, status string) ([]dto.ReportResponse, error)
}

type reportService struct {
	reportRepo repository.ReportRepository
	reviewRepo repository.ReviewRepository
}

func NewReportService(reportRepo repository.ReportRepository, reviewRepo repository.ReviewRepository) ReportService {
	return &reportService{
		reportRepo: reportRepo,
		reviewRepo: reviewRepo,
	}
}

// Create flags a review. Status starts pending.
func (s *reportService) Create(userID string, req dto.CreateReportDTO) (*dto.ReportResponse, error) {
	if _, err := s.reviewRepo.GetByID(req.ReviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	report := &models.Report{
		UserID:   userID,
		ReviewID: req.ReviewID,
		Content:  req.Content,
		Status:   models.ReportPending,
	}

	if err := s.reportRepo.Create(report); err != nil {
		return nil, err
	}

	report, err := s.reportRepo.GetByID(report.ID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToReportResponse(report), nil
}

// Withdraw is the reporter's self-service retraction. Only a pending report
// can be withdrawn, and only by its reporter. No handler is recorded.
func (s *reportService) Withdraw(reportID int64, userID string) (*dto.ReportResponse, error) {
	report, err := s.reportRepo.GetByID(reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	if report.UserID != userID {
		return nil, ErrNotReporter
	}
	if report.Terminal() {
		return nil, ErrReportResolved
	}

	report.Status = models.ReportWithdrawn
	if err := s.saveTransition(report); err != nil {
		return nil, err
	}

	return dto.FromModelToReportResponse(report), nil
}

// Moderate applies the admin verdict on a pending report and records the
// acting admin as handler. Terminal reports never transition again.
func (s *reportService) Moderate(reportID int64, adminID, action string) (*dto.ReportResponse, error) {
	report, err := s.reportRepo.GetByID(reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	if report.Terminal() {
		return nil, ErrReportResolved
	}

	switch action {
	case "accept":
		report.Status = models.ReportAccepted
	case "refuse":
		report.Status = models.ReportRejected
	default:
		return nil, ErrUnknownReportVerdict
	}
	report.HandlerID = &adminID

	if err := s.saveTransition(report); err != nil {
		return nil, err
	}

	report, err = s.reportRepo.GetByID(reportID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToReportResponse(report), nil
}

func (s *reportService) saveTransition(report *models.Report) error {
	// Drop preloaded associations so Save only touches the report row
	report.Review = nil
	report.Handler = nil
	report.User = nil
	return s.reportRepo.Update(report)
}

// ListOwn returns the user's reports, withdrawn ones excluded.
func (s *reportService) ListOwn(userID string) ([]dto.ReportResponse, error) {
	reports, err := s.reportRepo.ListByReporter(userID)
	if err != nil {
		return nil, err
	}
	return toReportResponses(reports), nil
}

// ListAll returns every report for the moderation screen, optionally filtered
// by movie-name substring and status.
func (s *reportService) ListAll(movieQuery, status string) ([]dto.ReportResponse, error) {
	reports, err := s.reportRepo.ListAll(movieQuery, status)
	if err != nil {
		return nil, err
	}
	return toReportResponses(reports), nil
}

func toReportResponses(reports []models.Report) []dto.ReportResponse {
	responses := make([]dto.ReportResponse, 0, len(reports))
	for i := range reports {
		responses = append(responses, *dto.FromModelToReportResponse(&reports[i]))
	}
	return responses
}
