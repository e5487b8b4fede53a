package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/repository"
)

// BlogService implements post listing and owner-gated mutations.
//
// Mutating operations assume the caller already passed the login guard; the
// requester id is trusted to be a valid session identity. Ownership is still
// re-checked here because authorization belongs to the domain, not to the
// HTTP boundary.
type BlogService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	Requester uint
	Title     string
	Body      string
}

type UpdatePostInput struct {
	Requester uint
	PostID    uint
	Title     string
	Body      string
}

func NewBlogService(postRepo repository.PostRepository) *BlogService {
	return &BlogService{postRepo: postRepo}
}

// ListPosts returns all posts, newest first, each with its author joined in.
func (s *BlogService) ListPosts(ctx context.Context) ([]models.Post, error) {
	return s.postRepo.List(ctx)
}

// GetPost fetches a post by id. When checkAuthor is set, a post owned by
// someone other than requester is a forbidden error. Absence is always
// reported before ownership, so probing an id that doesn't exist yields
// not-found even for non-owners.
func (s *BlogService) GetPost(ctx context.Context, id uint, requester uint, checkAuthor bool) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if checkAuthor && post.AuthorID != requester {
		return nil, models.NewForbiddenError()
	}
	return post, nil
}

// CreatePost inserts a post owned by the requester.
func (s *BlogService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required.")
	}

	post := &models.Post{
		Title:    in.Title,
		Body:     in.Body,
		AuthorID: in.Requester,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost overwrites title and body of a post the requester owns.
// Resolution (not-found, then forbidden) happens before title validation,
// matching the original system's ordering.
func (s *BlogService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.GetPost(ctx, in.PostID, in.Requester, true)
	if err != nil {
		return nil, err
	}

	if in.Title == "" {
		return nil, models.NewValidationError("Title is required.")
	}

	post.Title = in.Title
	post.Body = in.Body
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post the requester owns.
func (s *BlogService) DeletePost(ctx context.Context, id uint, requester uint) error {
	if _, err := s.GetPost(ctx, id, requester, true); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, id)
}
