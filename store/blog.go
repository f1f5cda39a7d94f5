package store

import (
	"context"
	"fmt"
)

// BlogPost is one published article.
type BlogPost struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ListPosts returns all blog posts, newest first.
func (s *Store) ListPosts(ctx context.Context) ([]BlogPost, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, content
		FROM blog_posts
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []BlogPost{}
	for rows.Next() {
		var p BlogPost
		if err := rows.Scan(&p.ID, &p.Title, &p.Content); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

// CreatePost inserts a blog post and returns its id.
func (s *Store) CreatePost(ctx context.Context, title, content string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO blog_posts (title, content)
		VALUES (?, ?)
	`, title, content)
	if err != nil {
		return 0, fmt.Errorf("create post: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create post id: %w", err)
	}
	return id, nil
}
