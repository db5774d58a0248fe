package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/Amanjarngal/localfix-client/internal/domain"
	apperrors "github.com/Amanjarngal/localfix-client/pkg/util"
)

type cartAddRequest struct {
	UserID      string `json:"userId"`
	ProblemID   string `json:"problemId"`
	ServiceName string `json:"serviceName"`
}

type cartRemoveRequest struct {
	UserID string `json:"userId"`
	// ItemID carries the problem id of the item to drop; the field name
	// is the server's, not a typo.
	ItemID string `json:"itemId"`
}

// GetCart fetches the authoritative cart for a user.
func (c *Client) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/cart/"+url.PathEscape(userID), "", nil)
	if err != nil {
		return nil, err
	}
	return decodeCart(env)
}

// AddCartItem appends a problem to the user's cart and returns the full
// server-side cart, total included.
func (c *Client) AddCartItem(ctx context.Context, userID, problemID, serviceName string) (*domain.Cart, error) {
	env, err := c.sendJSON(ctx, http.MethodPost, "/api/cart/add", cartAddRequest{
		UserID:      userID,
		ProblemID:   problemID,
		ServiceName: serviceName,
	}, nil)
	if err != nil {
		return nil, err
	}
	return decodeCart(env)
}

// RemoveCartItem drops a problem from the user's cart and returns the
// full server-side cart.
func (c *Client) RemoveCartItem(ctx context.Context, userID, problemID string) (*domain.Cart, error) {
	env, err := c.sendJSON(ctx, http.MethodPost, "/api/cart/remove", cartRemoveRequest{
		UserID: userID,
		ItemID: problemID,
	}, nil)
	if err != nil {
		return nil, err
	}
	return decodeCart(env)
}

func decodeCart(env *envelope) (*domain.Cart, error) {
	if len(env.Cart) == 0 {
		return nil, apperrors.NewDomainError("REQUEST_FAILED", "response carried no cart", 0, nil)
	}
	var cart domain.Cart
	if err := json.Unmarshal(env.Cart, &cart); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &cart, nil
}
