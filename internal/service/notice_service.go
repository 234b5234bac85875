package service

import (
	"context"
	"strings"

	"github.com/helper-labs/helper-portal/internal/apiclient"
	"github.com/helper-labs/helper-portal/internal/config"
	"github.com/helper-labs/helper-portal/internal/logging"
	"github.com/helper-labs/helper-portal/internal/model"
	"github.com/helper-labs/helper-portal/internal/pagination"
	"go.uber.org/zap"
)

// NoticeService backs the notice board pages.
type NoticeService struct {
	api    *apiclient.Client
	cfg    *config.Config
	logger *zap.Logger
}

// NewNoticeService builds NoticeService.
func NewNoticeService(api *apiclient.Client, cfg *config.Config, logger *zap.Logger) *NoticeService {
	return &NoticeService{api: api, cfg: cfg, logger: logging.OrNop(logger)}
}

// Fetcher returns a fresh list fetcher for the notice board.
func (s *NoticeService) Fetcher() *pagination.Fetcher[model.Notice] {
	return pagination.NewFetcher(func(ctx context.Context, page int, _ string) (model.ListPage[model.Notice], error) {
		return s.api.NoticeList(ctx, page, s.cfg.API.PerPageNum)
	}, s.logger)
}

// Latest returns the newest n notices for the main page. Errors yield an empty list.
func (s *NoticeService) Latest(ctx context.Context, n int) []model.Notice {
	resp, err := s.api.NoticeList(ctx, 1, n)
	if err != nil {
		s.logger.Warn("latest notices failed", zap.Error(err))
		return []model.Notice{}
	}
	if resp.List == nil {
		return []model.Notice{}
	}
	return resp.List
}

// View fetches one notice. On failure the returned string is the message to show.
func (s *NoticeService) View(ctx context.Context, noticeNo int64) (*model.Notice, string) {
	notice, err := s.api.NoticeView(ctx, noticeNo)
	if err != nil {
		return nil, viewError(err)
	}
	return notice, ""
}

// Write posts a new notice.
func (s *NoticeService) Write(ctx context.Context, title, content string) (bool, model.Alert) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return false, model.Error(msgMissingFields)
	}
	if _, err := s.api.NoticeWrite(ctx, title, content); err != nil {
		return false, mutationAlert(err, "Failed to post the notice.", "You do not have permission to write notices.")
	}
	return true, model.Info("The notice was posted successfully.")
}

// Update edits a notice.
func (s *NoticeService) Update(ctx context.Context, noticeNo int64, title, content string) (bool, model.Alert) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return false, model.Error(msgMissingFields)
	}
	if _, err := s.api.NoticeUpdate(ctx, noticeNo, title, content); err != nil {
		return false, mutationAlert(err, "Failed to update the notice.", "You do not have permission to update notices.")
	}
	return true, model.Info("The notice was updated successfully.")
}

// Delete removes a notice. The server answers 2xx either way; only a body
// containing the success marker counts as deleted.
func (s *NoticeService) Delete(ctx context.Context, noticeNo int64) (bool, model.Alert) {
	result, err := s.api.NoticeDelete(ctx, noticeNo)
	if err != nil {
		return false, mutationAlert(err, "Failed to delete the notice.", "You do not have permission to delete notices.")
	}
	marker := s.cfg.API.SuccessMarker
	if strings.TrimSpace(marker) == "" {
		marker = config.DefaultSuccessMarker
	}
	if !strings.Contains(result, marker) {
		return false, model.Error(result)
	}
	return true, model.Info(result)
}
