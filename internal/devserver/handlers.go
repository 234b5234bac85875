package devserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/helper-labs/helper-portal/internal/apiclient"
	"github.com/helper-labs/helper-portal/internal/model"
	"github.com/helper-labs/helper-portal/internal/pagination"
	"github.com/helper-labs/helper-portal/internal/service"
	"github.com/helper-labs/helper-portal/internal/storage"
)

func (s *Server) handleGetID(c *fiber.Ctx) error {
	if p := currentPrincipal(c); p != nil {
		return c.SendString(p.MemberID)
	}
	return c.SendString("")
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req model.AuthRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).SendString("로그인 실패!")
	}
	ctx := c.UserContext()
	member, err := s.store.GetMember(ctx, req.MemberID)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(req.Password)) != nil {
		s.logger.Info("login rejected", zap.String("member_id", req.MemberID))
		return c.Status(http.StatusUnauthorized).SendString("로그인 실패!")
	}

	access, accessExp, err := s.issueToken(member.MemberID, member.Auth, s.cfg.DevServer.AccessTokenTTL)
	if err != nil {
		return s.fail(c, http.StatusInternalServerError, err.Error())
	}
	refresh, refreshExp, err := s.issueToken(member.MemberID, member.Auth, s.cfg.DevServer.RefreshTokenTTL)
	if err != nil {
		return s.fail(c, http.StatusInternalServerError, err.Error())
	}
	record := &model.RefreshToken{Token: refresh, MemberID: member.MemberID, ExpiresAt: refreshExp}
	if err := s.store.PutRefreshToken(ctx, record); err != nil {
		return s.fail(c, http.StatusInternalServerError, err.Error())
	}
	c.Cookie(s.tokenCookie(apiclient.AccessTokenCookie, access, accessExp))
	c.Cookie(s.tokenCookie(apiclient.RefreshTokenCookie, refresh, refreshExp))
	s.logger.Info("login", zap.String("member_id", member.MemberID), zap.String("auth", member.Auth))
	return c.SendString("로그인 성공!")
}

func (s *Server) handleLogout(c *fiber.Ctx) error {
	if p := currentPrincipal(c); p != nil {
		if err := s.store.DeleteRefreshTokens(c.UserContext(), p.MemberID); err != nil {
			return s.fail(c, http.StatusInternalServerError, err.Error())
		}
		s.logger.Info("logout", zap.String("member_id", p.MemberID))
	}
	c.Cookie(s.expireCookie(apiclient.AccessTokenCookie))
	c.Cookie(s.expireCookie(apiclient.RefreshTokenCookie))
	return c.SendString("로그아웃 성공!")
}

func (s *Server) handleSignUp(c *fiber.Ctx) error {
	var req model.AuthRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).SendString("회원 가입 실패")
	}
	if service.CheckMemberIDFormat(req.MemberID) != nil || service.CheckPasswordFormat(req.Password) != nil {
		return c.Status(http.StatusBadRequest).SendString("회원 가입 실패")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return s.fail(c, http.StatusInternalServerError, err.Error())
	}
	member := &model.Member{MemberID: req.MemberID, PasswordHash: string(hash), Auth: model.RoleMember}
	if err := s.store.PutMember(c.UserContext(), member); err != nil {
		s.logger.Info("sign-up rejected", zap.String("member_id", req.MemberID), zap.Error(err))
		return c.Status(http.StatusBadRequest).SendString("회원 가입 실패")
	}
	return c.SendString("회원 가입 성공")
}

func (s *Server) handleValidateMemberID(c *fiber.Ctx) error {
	var req model.AuthRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.MemberID) == "" {
		return c.Status(http.StatusBadRequest).SendString("아이디를 입력하세요.")
	}
	_, err := s.store.GetMember(c.UserContext(), req.MemberID)
	switch {
	case err == nil:
		return c.Status(http.StatusBadRequest).SendString("이미 사용중인 아이디입니다.")
	case errors.Is(err, storage.ErrNotFound):
		return c.SendString("사용 가능한 아이디입니다.")
	default:
		return s.fail(c, http.StatusInternalServerError, err.Error())
	}
}

// window reads page, perPageNum and word from the query and builds the
// storage slice matching the window for total rows.
func (s *Server) window(c *fiber.Ctx, total int) (model.PageWindow, storage.Page) {
	per := c.QueryInt("perPageNum", s.cfg.API.PerPageNum)
	w := pagination.Compute(pagination.ParsePage(c.Query("page")), per, total, s.cfg.DevServer.GroupWidth)
	w.Word = strings.TrimSpace(c.Query("word"))
	return w, storage.Page{Offset: pagination.Offset(w), Limit: w.PerPageNum, Word: w.Word}
}

// list counts the matches first so an out-of-range page clamps to the last one.
func list[T any](s *Server, c *fiber.Ctx, fetch func(storage.Page) ([]*T, int, error), strip func(*T)) error {
	_, total, err := fetch(storage.Page{Limit: 1, Word: strings.TrimSpace(c.Query("word"))})
	if err != nil {
		return s.fail(c, http.StatusInternalServerError, err.Error())
	}
	w, page := s.window(c, total)
	items, _, err := fetch(page)
	if err != nil {
		return s.fail(c, http.StatusInternalServerError, err.Error())
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if strip != nil {
			strip(item)
		}
		out = append(out, *item)
	}
	return c.JSON(model.ListPage[T]{List: out, PageObject: &w})
}

func (s *Server) handleNoticeList(c *fiber.Ctx) error {
	return list(s, c, func(p storage.Page) ([]*model.Notice, int, error) {
		return s.store.ListNotices(c.UserContext(), p)
	}, func(n *model.Notice) { n.Content = "" })
}

func (s *Server) handleNoticeView(c *fiber.Ctx) error {
	no := int64(c.QueryInt("notice_no"))
	notice, err := s.store.GetNotice(c.UserContext(), no)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return s.fail(c, http.StatusNotFound, fmt.Sprintf("notice %d not found", no))
		}
		return s.fail(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(notice)
}

func (s *Server) handleNoticeWrite(c *fiber.Ctx) error {
	var req model.NoticeRequest
	if err := c.BodyParser(&req); err != nil || blank(req.Title, req.Content) {
		return s.result(c, "공지사항 글 등록", errBadRequest)
	}
	err := s.store.CreateNotice(c.UserContext(), &model.Notice{Title: req.Title, Content: req.Content})
	return s.result(c, "공지사항 글 등록", err)
}

func (s *Server) handleNoticeUpdate(c *fiber.Ctx) error {
	var req model.NoticeRequest
	if err := c.BodyParser(&req); err != nil || blank(req.Title, req.Content) {
		return s.result(c, "공지사항 글 수정", errBadRequest)
	}
	err := s.store.UpdateNotice(c.UserContext(), &model.Notice{NoticeNo: req.NoticeNo, Title: req.Title, Content: req.Content})
	return s.result(c, "공지사항 글 수정", err)
}

func (s *Server) handleNoticeDelete(c *fiber.Ctx) error {
	var req model.NoticeRequest
	if err := c.BodyParser(&req); err != nil {
		return s.result(c, "공지사항 글 삭제", errBadRequest)
	}
	return s.result(c, "공지사항 글 삭제", s.store.DeleteNotice(c.UserContext(), req.NoticeNo))
}

func (s *Server) handleQnaList(c *fiber.Ctx) error {
	return list(s, c, func(p storage.Page) ([]*model.Question, int, error) {
		return s.store.ListQuestions(c.UserContext(), p)
	}, func(q *model.Question) { q.Content = "" })
}

func (s *Server) handleQnaView(c *fiber.Ctx) error {
	ctx := c.UserContext()
	no := int64(c.QueryInt("question_no"))
	view := model.QnaView{}
	question, err := s.store.GetQuestion(ctx, no)
	switch {
	case err == nil:
		view.Question = question
	case !errors.Is(err, storage.ErrNotFound):
		return s.fail(c, http.StatusInternalServerError, err.Error())
	}
	answer, err := s.store.GetAnswer(ctx, no)
	switch {
	case err == nil:
		view.Answer = answer
	case !errors.Is(err, storage.ErrNotFound):
		return s.fail(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(view)
}

func (s *Server) handleQuestionWrite(c *fiber.Ctx) error {
	var req model.QuestionRequest
	if err := c.BodyParser(&req); err != nil || blank(req.Title, req.Content) {
		return s.result(c, "질문 작성", errBadRequest)
	}
	question := &model.Question{Title: req.Title, Content: req.Content, MemberID: currentPrincipal(c).MemberID}
	return s.result(c, "질문 작성", s.store.CreateQuestion(c.UserContext(), question))
}

func (s *Server) handleQuestionUpdate(c *fiber.Ctx) error {
	var req model.QuestionRequest
	if err := c.BodyParser(&req); err != nil || blank(req.Title, req.Content) {
		return s.result(c, "질문 수정", errBadRequest)
	}
	if denied := s.checkOwner(c, req.QuestionNo); denied != nil {
		return denied()
	}
	question := &model.Question{QuestionNo: req.QuestionNo, Title: req.Title, Content: req.Content}
	return s.result(c, "질문 수정", s.store.UpdateQuestion(c.UserContext(), question))
}

func (s *Server) handleQuestionDelete(c *fiber.Ctx) error {
	var req model.QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return s.result(c, "질문 글 삭제", errBadRequest)
	}
	if denied := s.checkOwner(c, req.QuestionNo); denied != nil {
		return denied()
	}
	return s.result(c, "질문 글 삭제", s.store.DeleteQuestion(c.UserContext(), req.QuestionNo))
}

// checkOwner returns a responder when the caller may not touch the question.
// Missing questions pass through so the mutation reports its own failure.
func (s *Server) checkOwner(c *fiber.Ctx, questionNo int64) func() error {
	p := currentPrincipal(c)
	question, err := s.store.GetQuestion(c.UserContext(), questionNo)
	if err != nil || p.isAdmin() || question.MemberID == p.MemberID {
		return nil
	}
	return func() error { return s.fail(c, http.StatusForbidden, "not the author of this question") }
}

func (s *Server) handleAnswerWrite(c *fiber.Ctx) error {
	var req model.AnswerRequest
	if err := c.BodyParser(&req); err != nil || blank(req.Content) {
		return s.result(c, "질문글 답변등록", errBadRequest)
	}
	ctx := c.UserContext()
	if _, err := s.store.GetAnswer(ctx, req.QuestionNo); err == nil {
		return s.result(c, "질문글 답변등록", storage.ErrConflict)
	}
	return s.result(c, "질문글 답변등록", s.store.PutAnswer(ctx, &model.Answer{QuestionNo: req.QuestionNo, Content: req.Content}))
}

func (s *Server) handleAnswerUpdate(c *fiber.Ctx) error {
	var req model.AnswerRequest
	if err := c.BodyParser(&req); err != nil || blank(req.Content) {
		return s.result(c, "질문글 답변 수정", errBadRequest)
	}
	ctx := c.UserContext()
	if _, err := s.store.GetAnswer(ctx, req.QuestionNo); err != nil {
		return s.result(c, "질문글 답변 수정", err)
	}
	return s.result(c, "질문글 답변 수정", s.store.PutAnswer(ctx, &model.Answer{QuestionNo: req.QuestionNo, Content: req.Content}))
}

func (s *Server) handleAnswerDelete(c *fiber.Ctx) error {
	var req model.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return s.result(c, "질문글 답변 삭제", errBadRequest)
	}
	return s.result(c, "질문글 답변 삭제", s.store.DeleteAnswer(c.UserContext(), req.QuestionNo))
}

func (s *Server) handlePolicyList(c *fiber.Ctx) error {
	return list(s, c, func(p storage.Page) ([]*model.Policy, int, error) {
		return s.store.ListPolicies(c.UserContext(), p)
	}, nil)
}

func (s *Server) handleChatAsk(c *fiber.Ctx) error {
	var req model.ChatRequest
	if err := c.BodyParser(&req); err != nil || blank(req.Question) {
		return c.Status(http.StatusBadRequest).SendString("질문을 입력하세요.")
	}
	answer, err := s.answer(c.UserContext(), req.Question)
	if err != nil {
		return s.fail(c, http.StatusInternalServerError, err.Error())
	}
	return c.SendString(answer)
}

var errBadRequest = errors.New("missing or malformed fields")

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
