package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"quizdeck/internal/client/app/dto"
	"quizdeck/internal/client/domain/entities"
)

// DashboardStats возвращает сводную статистику административной панели.
func (c *Client) DashboardStats(ctx context.Context) (*entities.DashboardStats, error) {
	var stats entities.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/admin/dashboard/stats/", nil, nil, &stats); err != nil {
		return nil, fmt.Errorf("failed to fetch dashboard stats: %w", err)
	}
	return &stats, nil
}

// CreateCategory создает категорию.
func (c *Client) CreateCategory(ctx context.Context, input dto.CategoryInput) (*entities.Category, error) {
	var category entities.Category
	if err := c.do(ctx, http.MethodPost, "/admin/categories/", nil, input, &category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

// UpdateCategory частично обновляет категорию.
func (c *Client) UpdateCategory(ctx context.Context, slug string, input dto.CategoryInput) (*entities.Category, error) {
	var category entities.Category
	path := fmt.Sprintf("/admin/categories/%s/", url.PathEscape(slug))
	if err := c.do(ctx, http.MethodPatch, path, nil, input, &category); err != nil {
		return nil, fmt.Errorf("failed to update category %q: %w", slug, err)
	}
	return &category, nil
}

// DeleteCategory удаляет категорию.
func (c *Client) DeleteCategory(ctx context.Context, slug string) error {
	path := fmt.Sprintf("/admin/categories/%s/", url.PathEscape(slug))
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete category %q: %w", slug, err)
	}
	return nil
}

// AdminQuestions возвращает все вопросы, включая скрытые от игроков поля.
func (c *Client) AdminQuestions(ctx context.Context) ([]entities.Question, error) {
	var list results[entities.Question]
	if err := c.do(ctx, http.MethodGet, "/admin/questions/", nil, nil, &list); err != nil {
		return nil, fmt.Errorf("failed to list admin questions: %w", err)
	}
	return list.Items, nil
}

// CreateQuestion создает вопрос.
func (c *Client) CreateQuestion(ctx context.Context, input dto.QuestionInput) (*entities.Question, error) {
	var question entities.Question
	if err := c.do(ctx, http.MethodPost, "/admin/questions/", nil, input, &question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return &question, nil
}

// UpdateQuestion частично обновляет вопрос.
func (c *Client) UpdateQuestion(ctx context.Context, id int, input dto.QuestionInput) (*entities.Question, error) {
	var question entities.Question
	path := fmt.Sprintf("/admin/questions/%d/", id)
	if err := c.do(ctx, http.MethodPatch, path, nil, input, &question); err != nil {
		return nil, fmt.Errorf("failed to update question %d: %w", id, err)
	}
	return &question, nil
}

// DeleteQuestion удаляет вопрос.
func (c *Client) DeleteQuestion(ctx context.Context, id int) error {
	path := fmt.Sprintf("/admin/questions/%d/", id)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete question %d: %w", id, err)
	}
	return nil
}

// Users возвращает пользователей, опционально отфильтрованных по роли.
func (c *Client) Users(ctx context.Context, role string) ([]entities.User, error) {
	query := url.Values{}
	if role != "" {
		query.Set("role", role)
	}

	var list results[userPayload]
	if err := c.do(ctx, http.MethodGet, "/admin/users/", query, nil, &list); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]entities.User, 0, len(list.Items))
	for _, payload := range list.Items {
		users = append(users, *payload.toUser())
	}
	return users, nil
}

// ToggleUserActive переключает признак активности пользователя.
func (c *Client) ToggleUserActive(ctx context.Context, id int) (*entities.User, error) {
	var payload userPayload
	path := fmt.Sprintf("/admin/users/%d/toggle_active/", id)
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &payload); err != nil {
		return nil, fmt.Errorf("failed to toggle user %d: %w", id, err)
	}
	return payload.toUser(), nil
}

// ChangeUserRole изменяет роль пользователя.
func (c *Client) ChangeUserRole(ctx context.Context, id int, role entities.Role) (*entities.User, error) {
	var payload userPayload
	path := fmt.Sprintf("/admin/users/%d/change_role/", id)
	if err := c.do(ctx, http.MethodPost, path, nil, map[string]string{"role": string(role)}, &payload); err != nil {
		return nil, fmt.Errorf("failed to change role for user %d: %w", id, err)
	}
	return payload.toUser(), nil
}
