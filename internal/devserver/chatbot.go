package devserver

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/helper-labs/helper-portal/internal/model"
	"github.com/helper-labs/helper-portal/internal/storage"
)

const maxSuggestions = 3

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "how": true, "can": true,
	"what": true, "are": true, "any": true, "you": true, "with": true,
}

var policyCatalogue = []model.Policy{
	{Title: "Youth Monthly Rent Support", URL: "https://www.gov.kr/portal/rcvfvrSvc/dtlEx/youth-rent"},
	{Title: "Youth Job Seeker Allowance", URL: "https://www.gov.kr/portal/rcvfvrSvc/dtlEx/job-seeker"},
	{Title: "National Employment Support Program", URL: "https://www.gov.kr/portal/rcvfvrSvc/dtlEx/employment-support"},
	{Title: "Youth Leap Savings Account", URL: "https://www.gov.kr/portal/rcvfvrSvc/dtlEx/youth-savings"},
	{Title: "Newlywed Jeonse Housing Loan", URL: "https://www.gov.kr/portal/rcvfvrSvc/dtlEx/newlywed-housing"},
	{Title: "Small Business Startup Loan", URL: "https://www.gov.kr/portal/rcvfvrSvc/dtlEx/startup-loan"},
	{Title: "Childcare Allowance", URL: "https://www.gov.kr/portal/rcvfvrSvc/dtlEx/childcare"},
	{Title: "Basic Pension for Seniors", URL: "https://www.gov.kr/portal/rcvfvrSvc/dtlEx/basic-pension"},
	{Title: "Energy Voucher for Low-Income Households", URL: "https://www.gov.kr/portal/rcvfvrSvc/dtlEx/energy-voucher"},
	{Title: "Digital Skills Training for Job Seekers", URL: "https://www.gov.kr/portal/rcvfvrSvc/dtlEx/digital-training"},
	{Title: "Rural Return Settlement Support", URL: "https://www.gov.kr/portal/rcvfvrSvc/dtlEx/rural-return"},
	{Title: "Youth Housing Deposit Loan", URL: "https://www.gov.kr/portal/rcvfvrSvc/dtlEx/youth-deposit"},
}

// seedPolicies fills an empty policy bucket with the built-in catalogue.
func (s *Server) seedPolicies(ctx context.Context) error {
	_, total, err := s.store.ListPolicies(ctx, storage.Page{Limit: 1})
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}
	for i := range policyCatalogue {
		policy := policyCatalogue[i]
		if err := s.store.CreatePolicy(ctx, &policy); err != nil {
			return fmt.Errorf("seed policy %q: %w", policy.Title, err)
		}
	}
	s.logger.Info("policy catalogue seeded", zap.Int("count", len(policyCatalogue)))
	return nil
}

// answer suggests up to three policies whose titles share a word with question.
func (s *Server) answer(ctx context.Context, question string) (string, error) {
	policies, _, err := s.store.ListPolicies(ctx, storage.Page{})
	if err != nil {
		return "", err
	}
	words := keywords(question)
	var matches []*model.Policy
	for _, p := range policies {
		if len(matches) == maxSuggestions {
			break
		}
		title := strings.ToLower(p.Title)
		for _, w := range words {
			if strings.Contains(title, w) {
				matches = append(matches, p)
				break
			}
		}
	}
	if len(matches) == 0 {
		return "I could not find a policy matching your question. Try other keywords, such as housing, job or youth.", nil
	}
	var b strings.Builder
	b.WriteString("These policies may help:")
	for _, p := range matches {
		fmt.Fprintf(&b, "\n- %s (%s)", p.Title, p.URL)
	}
	return b.String(), nil
}

// keywords lowercases question and keeps the words of at least three
// letters that are not stopwords.
func keywords(question string) []string {
	fields := strings.FieldsFunc(strings.ToLower(question), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= 3 && !stopwords[f] {
			out = append(out, f)
		}
	}
	return out
}
