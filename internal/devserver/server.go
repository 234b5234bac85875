// Package devserver is a local stand-in for the portal API, backed by Bolt.
package devserver

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/helper-labs/helper-portal/internal/apiclient"
	"github.com/helper-labs/helper-portal/internal/config"
	"github.com/helper-labs/helper-portal/internal/crypto"
	"github.com/helper-labs/helper-portal/internal/logging"
	"github.com/helper-labs/helper-portal/internal/storage"
)

const jwtSecretLength = 48

// Server wires HTTP handlers.
type Server struct {
	app    *fiber.App
	store  storage.Store
	cfg    *config.Config
	logger *zap.Logger
	secret []byte
	now    func() time.Time
}

// New builds a server instance, seeding the admin account and the policy catalogue.
func New(ctx context.Context, cfg *config.Config, store storage.Store, logger *zap.Logger) (*Server, error) {
	app := fiber.New(fiber.Config{
		IdleTimeout:           cfg.DevServer.ReadTimeout,
		ReadTimeout:           cfg.DevServer.ReadTimeout,
		WriteTimeout:          cfg.DevServer.WriteTimeout,
		AppName:               "helper-portal-devserver",
		DisableStartupMessage: true,
	})
	logger = logging.OrNop(logger)
	secret := strings.TrimSpace(cfg.DevServer.JWTSecret)
	if secret == "" {
		generated, err := crypto.GenerateSecret(jwtSecretLength)
		if err != nil {
			return nil, fmt.Errorf("generate jwt secret: %w", err)
		}
		logger.Warn("devserver.jwt_secret is empty, using a random secret; tokens will not survive a restart")
		secret = generated
	}
	s := &Server{
		app:    app,
		store:  store,
		cfg:    cfg,
		logger: logger,
		secret: []byte(secret),
		now:    time.Now,
	}
	if err := s.seedAdmin(ctx); err != nil {
		return nil, err
	}
	if err := s.seedPolicies(ctx); err != nil {
		return nil, err
	}
	s.registerRoutes()
	return s, nil
}

// Start listens and serves HTTP traffic.
func (s *Server) Start() error {
	s.logger.Info("dev server listening", zap.String("addr", s.cfg.DevServer.Addr))
	return s.app.Listen(s.cfg.DevServer.Addr)
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) registerRoutes() {
	s.app.Use(s.logRequests)
	s.app.Use(s.authenticate)

	s.app.Get("/healthz", s.handleHealth)

	auth := s.app.Group("/auth")
	auth.Get("/getId.do", s.handleGetID)
	auth.Post("/login.do", s.handleLogin)
	auth.Post("/logout.do", s.handleLogout)
	auth.Post("/signUp.do", s.handleSignUp)
	auth.Post("/validateMemberId.do", s.handleValidateMemberID)

	user := s.app.Group("/user")
	user.Get("/notice/list.do", s.handleNoticeList)
	user.Get("/notice/view.do", s.handleNoticeView)
	user.Get("/qna/list.do", s.handleQnaList)
	user.Get("/qna/view.do", s.handleQnaView)

	member := s.app.Group("/member", s.requireMember)
	member.Get("/getId.do", s.handleGetID)
	member.Get("/policy/list.do", s.handlePolicyList)
	member.Post("/chatbot/ask.do", s.handleChatAsk)
	member.Post("/qna/write.do", s.handleQuestionWrite)
	member.Post("/qna/update.do", s.handleQuestionUpdate)
	member.Post("/qna/delete.do", s.handleQuestionDelete)

	admin := s.app.Group("/admin", s.requireAdmin)
	admin.Post("/notice/write.do", s.handleNoticeWrite)
	admin.Post("/notice/update.do", s.handleNoticeUpdate)
	admin.Post("/notice/delete.do", s.handleNoticeDelete)
	admin.Post("/qna/write.do", s.handleAnswerWrite)
	admin.Post("/qna/update.do", s.handleAnswerUpdate)
	admin.Post("/qna/delete.do", s.handleAnswerDelete)
}

func (s *Server) logRequests(c *fiber.Ctx) error {
	started := time.Now()
	err := c.Next()
	fields := []zap.Field{
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", c.Response().StatusCode()),
		zap.Duration("latency", time.Since(started)),
		zap.String("request_id", c.Get(apiclient.RequestIDHeader)),
	}
	if p := currentPrincipal(c); p != nil {
		fields = append(fields, zap.String("member_id", p.MemberID))
	}
	if err != nil {
		s.logger.Warn("request failed", append(fields, zap.Error(err))...)
		return err
	}
	s.logger.Debug("request", fields...)
	return nil
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(fiber.Map{"status": "ok"})
}

func (s *Server) fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  status,
		"error":   http.StatusText(status),
		"message": message,
		"path":    c.Path(),
	})
}

// result answers a mutation the way every write endpoint does: "<thing> 성공"
// with 200, or "<thing> 실패" with 203.
func (s *Server) result(c *fiber.Ctx, thing string, err error) error {
	if err != nil {
		s.logger.Warn("mutation failed", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(http.StatusNonAuthoritativeInfo).SendString(thing + " 실패")
	}
	return c.Status(http.StatusOK).SendString(thing + " 성공")
}
