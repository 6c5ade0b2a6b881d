package api

import (
	"context"
	"net/http"
)

// createdTimeLayout matches the millisecond UTC form the backend stores.
const createdTimeLayout = "2006-01-02T15:04:05.000Z"

// Messages fetches a bounty's chat.
func (c *Client) Messages(ctx context.Context, bountyID uint64) ([]Record, error) {
	return field[[]Record](ctx, c, "message/"+id(bountyID), "chat")
}

// PostMessage appends to a bounty's chat as the logged-in user.
func (c *Client) PostMessage(ctx context.Context, bountyID uint64, text string) (Record, error) {
	return c.postThread(ctx, "message/", bountyID, text)
}

// Complaints fetches a bounty's complaint thread.
func (c *Client) Complaints(ctx context.Context, bountyID uint64) ([]Record, error) {
	return field[[]Record](ctx, c, "complaint/"+id(bountyID), "complaint")
}

// PostComplaint files a complaint as the logged-in user.
func (c *Client) PostComplaint(ctx context.Context, bountyID uint64, text string) (Record, error) {
	return c.postThread(ctx, "complaint/", bountyID, text)
}

func (c *Client) postThread(ctx context.Context, path string, bountyID uint64, text string) (Record, error) {
	a, err := c.auth(ctx)
	if err != nil {
		return nil, err
	}
	msg := ThreadMessage{
		BountyID:    bountyID,
		User:        a.UserID,
		Message:     text,
		CreatedTime: c.now().UTC().Format(createdTimeLayout),
	}
	var out Record
	err = c.do(ctx, http.MethodPost, path, true, msg, &out)
	return out, err
}

