package larder

import (
	"context"
	"fmt"
)

// Tags lists every tag of the account in server order.
func (c *Client) Tags(ctx context.Context) ([]Tag, error) {
	tags, err := listAll[Tag](ctx, c, tagsPath+"/")
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	return tags, nil
}

// SaveTag creates the tag when it has no ID, or edits it otherwise.
// On success the tag is updated with the server's representation
// (ID, color and timestamps are assigned by the server on create).
func (c *Client) SaveTag(ctx context.Context, tag *Tag) error {
	if err := tag.Validate(); err != nil {
		return &ConfigurationError{Op: "save tag", Err: err}
	}

	req := tagRequest{Name: tag.Name, Color: tag.Color}
	if err := c.save(ctx, tagsPath, tag.ID, req, tag); err != nil {
		return fmt.Errorf("saving tag %q: %w", tag.Name, err)
	}
	return nil
}

// DeleteTag deletes the tag. A tag without ID is rejected without a request.
func (c *Client) DeleteTag(ctx context.Context, tag Tag) error {
	if err := c.remove(ctx, tagsPath, tag.ID); err != nil {
		return fmt.Errorf("deleting tag %q: %w", tag.Name, err)
	}
	return nil
}
