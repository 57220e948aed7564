package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"quizdeck/internal/client/app/dto"
	"quizdeck/internal/client/domain/entities"
)

// Categories возвращает список категорий викторины.
func (c *Client) Categories(ctx context.Context) ([]entities.Category, error) {
	var list results[entities.Category]
	if err := c.do(ctx, http.MethodGet, "/categories/", nil, nil, &list); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return list.Items, nil
}

// CategoryQuestions возвращает вопросы категории с учетом фильтра.
func (c *Client) CategoryQuestions(ctx context.Context, slug string, filter dto.QuestionFilter) ([]entities.Question, error) {
	query := url.Values{}
	if filter.Difficulty != "" {
		query.Set("difficulty", filter.Difficulty)
	}
	if filter.Type != "" {
		query.Set("type", filter.Type)
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}

	var list results[entities.Question]
	path := fmt.Sprintf("/categories/%s/questions/", url.PathEscape(slug))
	if err := c.do(ctx, http.MethodGet, path, query, nil, &list); err != nil {
		return nil, fmt.Errorf("failed to list questions for %q: %w", slug, err)
	}
	return list.Items, nil
}

// Question возвращает вопрос по идентификатору.
func (c *Client) Question(ctx context.Context, id int) (*entities.Question, error) {
	var question entities.Question
	path := fmt.Sprintf("/questions/%d/", id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &question); err != nil {
		return nil, fmt.Errorf("failed to fetch question %d: %w", id, err)
	}
	return &question, nil
}

// SubmitAnswer отправляет ответ на проверку и возвращает результат.
func (c *Client) SubmitAnswer(ctx context.Context, id int, sub dto.AnswerSubmission) (*entities.SubmitResult, error) {
	var result entities.SubmitResult
	path := fmt.Sprintf("/questions/%d/submit/", id)
	if err := c.do(ctx, http.MethodPost, path, nil, sub, &result); err != nil {
		return nil, fmt.Errorf("failed to submit answer for question %d: %w", id, err)
	}
	return &result, nil
}

// Leaderboard возвращает таблицу лидеров за период.
func (c *Client) Leaderboard(ctx context.Context, period entities.LeaderboardPeriod) (*entities.Leaderboard, error) {
	if period == "" {
		period = entities.PeriodOverall
	}
	query := url.Values{"period": []string{string(period)}}

	var board entities.Leaderboard
	if err := c.do(ctx, http.MethodGet, "/leaderboard/", query, nil, &board); err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard: %w", err)
	}
	return &board, nil
}

// Challenges возвращает вызовы текущего пользователя.
func (c *Client) Challenges(ctx context.Context) ([]entities.Challenge, error) {
	var list results[entities.Challenge]
	if err := c.do(ctx, http.MethodGet, "/challenges/", nil, nil, &list); err != nil {
		return nil, fmt.Errorf("failed to list challenges: %w", err)
	}
	return list.Items, nil
}

// CreateChallenge создает новый вызов.
func (c *Client) CreateChallenge(ctx context.Context, input dto.ChallengeInput) (*entities.Challenge, error) {
	var challenge entities.Challenge
	if err := c.do(ctx, http.MethodPost, "/challenges/", nil, input, &challenge); err != nil {
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}
	return &challenge, nil
}

// ChallengeStatus возвращает состояние вызова.
func (c *Client) ChallengeStatus(ctx context.Context, id int) (*entities.Challenge, error) {
	var challenge entities.Challenge
	path := fmt.Sprintf("/challenges/%d/status/", id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &challenge); err != nil {
		return nil, fmt.Errorf("failed to fetch challenge %d: %w", id, err)
	}
	return &challenge, nil
}
