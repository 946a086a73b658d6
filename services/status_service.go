package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"mindful-chat/config"
	"mindful-chat/dto"
	"mindful-chat/models"
)

type StatusCheckRepository interface {
	Insert(ctx context.Context, s *models.StatusCheck) error
	List(ctx context.Context) ([]models.StatusCheck, error)
}

// StatusService records client pings.
type StatusService struct {
	repo      StatusCheckRepository
	opTimeout time.Duration
}

func NewStatusService(repo StatusCheckRepository, opTimeout time.Duration) *StatusService {
	if opTimeout <= 0 {
		opTimeout = config.DefaultOperationTimeout
	}
	return &StatusService{repo: repo, opTimeout: opTimeout}
}

func (s *StatusService) Create(ctx context.Context, in dto.StatusCheckCreateDTO) (dto.StatusCheckDTO, *ServiceError) {
	name := strings.TrimSpace(in.ClientName)
	if name == "" {
		return dto.StatusCheckDTO{}, validationError("client_name must not be empty")
	}

	check := models.StatusCheck{
		ID:         uuid.NewString(),
		ClientName: name,
		Timestamp:  time.Now().UTC().Truncate(time.Millisecond),
	}

	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()
	if err := s.repo.Insert(ctx, &check); err != nil {
		config.Logger.Errorf("insert status check failed: %v", err)
		return dto.StatusCheckDTO{}, toServiceError(err)
	}
	return dto.NewStatusCheckDTO(check), nil
}

func (s *StatusService) List(ctx context.Context) ([]dto.StatusCheckDTO, *ServiceError) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	checks, err := s.repo.List(ctx)
	if err != nil {
		return nil, toServiceError(err)
	}
	out := make([]dto.StatusCheckDTO, 0, len(checks))
	for _, c := range checks {
		out = append(out, dto.NewStatusCheckDTO(c))
	}
	return out, nil
}
