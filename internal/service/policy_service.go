package service

import (
	"context"

	"github.com/helper-labs/helper-portal/internal/apiclient"
	"github.com/helper-labs/helper-portal/internal/config"
	"github.com/helper-labs/helper-portal/internal/logging"
	"github.com/helper-labs/helper-portal/internal/model"
	"github.com/helper-labs/helper-portal/internal/pagination"
	"go.uber.org/zap"
)

// PolicyService backs the policy search on the chatbot page.
type PolicyService struct {
	api    *apiclient.Client
	cfg    *config.Config
	logger *zap.Logger
}

// NewPolicyService builds PolicyService.
func NewPolicyService(api *apiclient.Client, cfg *config.Config, logger *zap.Logger) *PolicyService {
	return &PolicyService{api: api, cfg: cfg, logger: logging.OrNop(logger)}
}

// Fetcher returns a fresh list fetcher; the search word travels with each load.
func (s *PolicyService) Fetcher() *pagination.Fetcher[model.Policy] {
	return pagination.NewFetcher(func(ctx context.Context, page int, word string) (model.ListPage[model.Policy], error) {
		return s.api.PolicyList(ctx, page, s.cfg.API.PerPageNum, word)
	}, s.logger)
}
