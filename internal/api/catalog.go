package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Amanjarngal/localfix-client/internal/domain"
)

// ServiceInput is the create/update payload for a service category.
type ServiceInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// ProblemInput is the create/update payload for a priced repair issue.
type ProblemInput struct {
	ServiceID   string  `json:"serviceId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// ListServices returns all service categories.
func (c *Client) ListServices(ctx context.Context) ([]domain.Service, error) {
	var services []domain.Service
	if _, err := c.getJSON(ctx, "/api/services", &services); err != nil {
		return nil, err
	}
	return services, nil
}

// CreateService adds a service category. Admin surface only.
func (c *Client) CreateService(ctx context.Context, input ServiceInput) (*domain.Service, error) {
	var service domain.Service
	if _, err := c.sendJSON(ctx, http.MethodPost, "/api/services", input, &service); err != nil {
		return nil, err
	}
	return &service, nil
}

// UpdateService replaces a service category. Admin surface only.
func (c *Client) UpdateService(ctx context.Context, id string, input ServiceInput) (*domain.Service, error) {
	var service domain.Service
	if _, err := c.sendJSON(ctx, http.MethodPut, "/api/services/"+url.PathEscape(id), input, &service); err != nil {
		return nil, err
	}
	return &service, nil
}

// DeleteService removes a service category; the server cascades the
// deletion to its problems.
func (c *Client) DeleteService(ctx context.Context, id string) error {
	_, err := c.sendJSON(ctx, http.MethodDelete, "/api/services/"+url.PathEscape(id), nil, nil)
	return err
}

// ListProblems returns the problems belonging to one service.
func (c *Client) ListProblems(ctx context.Context, serviceID string) ([]domain.Problem, error) {
	var problems []domain.Problem
	if _, err := c.getJSON(ctx, "/api/problems/service/"+url.PathEscape(serviceID), &problems); err != nil {
		return nil, err
	}
	return problems, nil
}

// CreateProblem adds a priced issue under a service. Admin surface only.
func (c *Client) CreateProblem(ctx context.Context, input ProblemInput) (*domain.Problem, error) {
	var problem domain.Problem
	if _, err := c.sendJSON(ctx, http.MethodPost, "/api/problems", input, &problem); err != nil {
		return nil, err
	}
	return &problem, nil
}

// UpdateProblem replaces a priced issue. Admin surface only.
func (c *Client) UpdateProblem(ctx context.Context, id string, input ProblemInput) (*domain.Problem, error) {
	var problem domain.Problem
	if _, err := c.sendJSON(ctx, http.MethodPut, "/api/problems/"+url.PathEscape(id), input, &problem); err != nil {
		return nil, err
	}
	return &problem, nil
}

// DeleteProblem removes a priced issue. Admin surface only.
func (c *Client) DeleteProblem(ctx context.Context, id string) error {
	_, err := c.sendJSON(ctx, http.MethodDelete, "/api/problems/"+url.PathEscape(id), nil, nil)
	return err
}
