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

// QnaService backs the Q&A board pages.
type QnaService struct {
	api    *apiclient.Client
	cfg    *config.Config
	logger *zap.Logger
}

// NewQnaService builds QnaService.
func NewQnaService(api *apiclient.Client, cfg *config.Config, logger *zap.Logger) *QnaService {
	return &QnaService{api: api, cfg: cfg, logger: logging.OrNop(logger)}
}

// Fetcher returns a fresh list fetcher for the Q&A board.
func (s *QnaService) Fetcher() *pagination.Fetcher[model.Question] {
	return pagination.NewFetcher(func(ctx context.Context, page int, _ string) (model.ListPage[model.Question], error) {
		return s.api.QnaList(ctx, page, s.cfg.API.PerPageNum)
	}, s.logger)
}

// View fetches a question and its answer.
func (s *QnaService) View(ctx context.Context, questionNo int64) (*model.QnaView, string) {
	view, err := s.api.QnaView(ctx, questionNo)
	if err != nil {
		return nil, viewError(err)
	}
	if view.Question == nil {
		return nil, "The question could not be found."
	}
	return view, ""
}

// IsAdmin reports whether sess is the configured administrator.
func (s *QnaService) IsAdmin(sess model.Session) bool {
	return sess.IsLoggedIn && sess.MemberID == s.cfg.Portal.AdminID
}

// CanEditQuestion reports whether sess wrote q.
func (s *QnaService) CanEditQuestion(sess model.Session, q *model.Question) bool {
	return q != nil && sess.IsLoggedIn && sess.MemberID != "" && q.MemberID == sess.MemberID
}

// WriteQuestion posts a question as the session's member.
func (s *QnaService) WriteQuestion(ctx context.Context, sess model.Session, title, content string) (bool, model.Alert) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return false, model.Error(msgMissingFields)
	}
	if _, err := s.api.QuestionWrite(ctx, sess.MemberID, title, content); err != nil {
		return false, mutationAlert(err, "Failed to post the question.", "")
	}
	return true, model.Info("Your question was posted successfully.")
}

// UpdateQuestion edits a question.
func (s *QnaService) UpdateQuestion(ctx context.Context, sess model.Session, questionNo int64, title, content string) (bool, model.Alert) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return false, model.Error(msgMissingFields)
	}
	if _, err := s.api.QuestionUpdate(ctx, questionNo, sess.MemberID, title, content); err != nil {
		return false, mutationAlert(err, "Failed to update the question.", "")
	}
	return true, model.Info("Your question was updated successfully.")
}

// DeleteQuestion removes a question.
func (s *QnaService) DeleteQuestion(ctx context.Context, sess model.Session, questionNo int64) (bool, model.Alert) {
	if _, err := s.api.QuestionDelete(ctx, questionNo, sess.MemberID); err != nil {
		s.logger.Warn("question delete failed", zap.Int64("question_no", questionNo), zap.Error(err))
		return false, model.Error("Failed to delete the post. Please try again.")
	}
	return true, model.Info("The post was deleted successfully.")
}

// WriteAnswer attaches an answer to a question.
func (s *QnaService) WriteAnswer(ctx context.Context, questionNo int64, content string) (bool, model.Alert) {
	if strings.TrimSpace(content) == "" {
		return false, model.Error(msgMissingBody)
	}
	if _, err := s.api.AnswerWrite(ctx, questionNo, content); err != nil {
		return false, mutationAlert(err, "Failed to post the answer.", "")
	}
	return true, model.Info("The answer was posted successfully.")
}

// UpdateAnswer edits an answer.
func (s *QnaService) UpdateAnswer(ctx context.Context, questionNo int64, content string) (bool, model.Alert) {
	if strings.TrimSpace(content) == "" {
		return false, model.Error(msgMissingBody)
	}
	if _, err := s.api.AnswerUpdate(ctx, questionNo, content); err != nil {
		return false, mutationAlert(err, "Failed to update the answer.", "")
	}
	return true, model.Info("The answer was updated successfully.")
}

// DeleteAnswer removes an answer.
func (s *QnaService) DeleteAnswer(ctx context.Context, questionNo int64) (bool, model.Alert) {
	if _, err := s.api.AnswerDelete(ctx, questionNo); err != nil {
		s.logger.Warn("answer delete failed", zap.Int64("question_no", questionNo), zap.Error(err))
		return false, model.Error("Failed to delete the answer. Please try again.")
	}
	return true, model.Info("The answer was deleted successfully.")
}
