package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"studyquiz/internal/domain"
	"studyquiz/internal/dto"
)

const defaultRequestTimeout = 120 * time.Second

// HTTPClient calls the quiz service over HTTP.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ QuizAPI = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the service at baseURL. A nil httpClient
// gets a default with a generous timeout, since generation can take a while.
func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	return &HTTPClient{baseURL: baseURL, httpClient: httpClient}
}

// GenerateQuiz posts a generation request and returns the questions. Any
// non-2xx status, undecodable body, or empty question list is an error.
func (c *HTTPClient) GenerateQuiz(ctx context.Context, req dto.GenerateQuizRequest) ([]domain.Question, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate_quiz", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call quiz service: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp dto.ErrorResponse
		if json.Unmarshal(raw, &errResp) == nil && errResp.Error != "" {
			if errResp.Details != "" {
				return nil, fmt.Errorf("quiz service returned %d: %s (%s)", resp.StatusCode, errResp.Error, errResp.Details)
			}
			return nil, fmt.Errorf("quiz service returned %d: %s", resp.StatusCode, errResp.Error)
		}
		return nil, fmt.Errorf("quiz service returned %d", resp.StatusCode)
	}

	var quizResp dto.GenerateQuizResponse
	if err := json.Unmarshal(raw, &quizResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(quizResp.Questions) == 0 {
		return nil, fmt.Errorf("no questions returned")
	}

	questions := make([]domain.Question, 0, len(quizResp.Questions))
	for _, q := range quizResp.Questions {
		questions = append(questions, domain.Question{
			Question:    q.Question,
			Options:     q.Options,
			Answer:      q.Answer,
			Explanation: q.Explanation,
		})
	}
	return questions, nil
}
