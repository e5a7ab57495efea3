package service

import (
	"fmt"

	"github.com/hengrui/sitecms-backend/internal/common"
	"github.com/hengrui/sitecms-backend/internal/domain"
	"github.com/hengrui/sitecms-backend/internal/repository"
)

// InquiryService business logic for contact-form intake
type InquiryService interface {
	Submit(req *domain.InquiryRequest, clientIP string) (*domain.Inquiry, error)
	List(status string, page, limit int) ([]*domain.Inquiry, *common.Meta, error)
	UpdateStatus(id uint64, status string) error
}

type inquiryService struct {
	repo  repository.InquiryRepository
	audit AuditLogger
}

// NewInquiryService creates a new InquiryService
func NewInquiryService(repo repository.InquiryRepository, audit AuditLogger) InquiryService {
	return &inquiryService{repo: repo, audit: audit}
}

func (s *inquiryService) Submit(req *domain.InquiryRequest, clientIP string) (*domain.Inquiry, error) {
	locale := req.Locale
	if locale == "" {
		locale = "zh"
	}

	inquiry := &domain.Inquiry{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Company:  req.Company,
		Subject:  req.Subject,
		Message:  req.Message,
		Locale:   locale,
		Status:   domain.InquiryStatusNew,
		ClientIP: clientIP,
	}
	if err := s.repo.Create(inquiry); err != nil {
		return nil, err
	}

	s.audit.LogEvent(AuditEvent{
		Action:      "INQUIRY_RECEIVED",
		Description: fmt.Sprintf("contact inquiry from %s <%s>", req.Name, req.Email),
		Details: domain.JSONMap{
			"inquiry_id": inquiry.ID,
			"locale":     locale,
		},
		Severity: domain.SeverityInfo,
		ClientIP: clientIP,
	})

	return inquiry, nil
}

func (s *inquiryService) List(status string, page, limit int) ([]*domain.Inquiry, *common.Meta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	inquiries, total, err := s.repo.Find(status, page, limit)
	if err != nil {
		return nil, nil, err
	}
	return inquiries, &common.Meta{Page: page, Limit: limit, Total: total}, nil
}

func (s *inquiryService) UpdateStatus(id uint64, status string) error {
	switch status {
	case domain.InquiryStatusNew, domain.InquiryStatusRead, domain.InquiryStatusClosed, domain.InquiryStatusSpammed:
	default:
		return common.ErrInvalidInput
	}
	return s.repo.UpdateStatus(id, status)
}
