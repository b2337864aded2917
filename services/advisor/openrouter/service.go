// Package openrouteradvisor talks to an OpenRouter-hosted model for
// transcript extraction and transfer verification. Responses are free text;
// a typed decode step turns them into domain values and fails loudly when no
// usable JSON comes back, so callers can fall back to local evaluation.
package openrouteradvisor

import (
	"context"
	"net/http"
	"strings"

	"github.com/stepm01/cruzHacks/core"
	"github.com/stepm01/cruzHacks/core/student"
	"github.com/stepm01/cruzHacks/core/verification"
)

const (
	verifyTemperature  = 0.2
	verifyMaxTokens    = 3000
	extractTemperature = 0.1
	extractMaxTokens   = 2000
)

type service struct {
	baseURL string
	apiKey  string
	model   string
	referer string
	title   string
	client  *http.Client
	logger  core.Logger
}

var (
	_ verification.Provider = (*service)(nil)
	_ student.Extractor     = (*service)(nil)
)

func NewService(conf core.AdvisorConfig, logger core.Logger) *service {
	return &service{
		baseURL: strings.TrimRight(conf.BaseURL, "/"),
		apiKey:  conf.APIKey,
		model:   conf.Model,
		referer: core.Conf.FrontendBaseURL,
		title:   core.Conf.AppName,
		client:  &http.Client{Timeout: conf.HTTPTimeout},
		logger:  logger,
	}
}

// Verify asks the model for a full verdict. One request, no retries.
func (svc *service) Verify(ctx context.Context, courses []student.Course, major, targetCampus string) (student.Verdict, error) {
	content, err := svc.chat(ctx, verifyPrompt(courses, major, targetCampus), verifyTemperature, verifyMaxTokens)
	if err != nil {
		return student.Verdict{}, err
	}
	return decodeVerdict(content, major, targetCampus)
}

// ExtractCourses pulls course entries out of raw transcript text. Returned
// courses carry no IDs; identity and field defaults are the caller's job.
func (svc *service) ExtractCourses(ctx context.Context, text string) ([]student.Course, error) {
	content, err := svc.chat(ctx, extractPrompt(text), extractTemperature, extractMaxTokens)
	if err != nil {
		return nil, err
	}
	return decodeCourses(content)
}
