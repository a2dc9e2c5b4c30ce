package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tubepost/internal/core"
)

// CreateBlogWithSections writes one blog and its ordered sections in a
// single transaction: the parent and children become visible atomically or
// not at all. Section order is assigned from slice position, starting at 0.
// Returns the blog's identifier.
func (s *Store) CreateBlogWithSections(ctx context.Context, blog core.Blog) (string, error) {
	if blog.ID == "" {
		blog.ID = uuid.NewString()
	}
	if blog.CreatedAt.IsZero() {
		blog.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO blogs (id, title, subtitle, conclusion, youtube_url, cover_image, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		blog.ID,
		blog.Title,
		blog.Subtitle,
		blog.Conclusion,
		blog.YouTubeURL,
		blog.CoverImage,
		blog.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert blog: %w", err)
	}

	for i, section := range blog.Sections {
		sectionID := section.ID
		if sectionID == "" {
			sectionID = uuid.NewString()
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO blog_sections (id, blog_id, heading, content, section_order, image_url)
			VALUES (?, ?, ?, ?, ?, ?)`,
			sectionID,
			blog.ID,
			section.Heading,
			section.Content,
			i,
			section.ImageURL,
		)
		if err != nil {
			return "", fmt.Errorf("failed to insert section %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit blog: %w", err)
	}

	return blog.ID, nil
}

// GetBlog retrieves a blog with its sections ordered by section_order.
// Returns nil when no blog with the given id exists.
func (s *Store) GetBlog(ctx context.Context, id string) (*core.Blog, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, subtitle, conclusion, youtube_url, cover_image, created_at
		FROM blogs WHERE id = ?`, id)

	var blog core.Blog
	err := row.Scan(
		&blog.ID,
		&blog.Title,
		&blog.Subtitle,
		&blog.Conclusion,
		&blog.YouTubeURL,
		&blog.CoverImage,
		&blog.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan blog: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, blog_id, heading, content, section_order, image_url
		FROM blog_sections WHERE blog_id = ?
		ORDER BY section_order ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query sections: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var section core.BlogSection
		if err := rows.Scan(
			&section.ID,
			&section.BlogID,
			&section.Heading,
			&section.Content,
			&section.Order,
			&section.ImageURL,
		); err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		blog.Sections = append(blog.Sections, section)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sections: %w", err)
	}

	return &blog, nil
}

// ListRecent returns up to limit blogs, newest first, without sections.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]core.Blog, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, subtitle, conclusion, youtube_url, cover_image, created_at
		FROM blogs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query blogs: %w", err)
	}
	defer rows.Close()

	var blogs []core.Blog
	for rows.Next() {
		var blog core.Blog
		if err := rows.Scan(
			&blog.ID,
			&blog.Title,
			&blog.Subtitle,
			&blog.Conclusion,
			&blog.YouTubeURL,
			&blog.CoverImage,
			&blog.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan blog: %w", err)
		}
		blogs = append(blogs, blog)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate blogs: %w", err)
	}

	return blogs, nil
}

// Counts returns the number of blogs and sections, for status reporting.
func (s *Store) Counts(ctx context.Context) (blogs, sections int, err error) {
	if err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM blogs").Scan(&blogs); err != nil {
		return 0, 0, fmt.Errorf("failed to count blogs: %w", err)
	}
	if err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM blog_sections").Scan(&sections); err != nil {
		return 0, 0, fmt.Errorf("failed to count sections: %w", err)
	}
	return blogs, sections, nil
}
