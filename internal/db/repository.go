package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chirpdex/chirpdex/internal/models"
	"github.com/chirpdex/chirpdex/pkg/telemetry"
)

// Repository provides database access methods
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CategoryRepository provides category-related database operations
type CategoryRepository struct {
	*Repository
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(repo *Repository) *CategoryRepository {
	return &CategoryRepository{Repository: repo}
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// List retrieves all categories ordered by id
func (r *CategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Create creates a new category
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// UpsertOutcome reports whether an upsert inserted a new row or refreshed
// an existing one
type UpsertOutcome int

const (
	// OutcomeInserted means a new post row was created
	OutcomeInserted UpsertOutcome = iota
	// OutcomeUpdated means an existing post's text was refreshed
	OutcomeUpdated
)

// PostRepository provides post-related database operations
type PostRepository struct {
	*Repository
}

// NewPostRepository creates a new post repository
func NewPostRepository(repo *Repository) *PostRepository {
	return &PostRepository{Repository: repo}
}

// GetByID retrieves a post by ID
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetByIDStr retrieves a post by its external identifier
func (r *PostRepository) GetByIDStr(ctx context.Context, idStr string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Where("id_str = ?", idStr).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// List retrieves all posts ordered by external creation time, newest first
func (r *PostRepository) List(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.db.WithContext(ctx).Order("created_at_x DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Upsert inserts a post keyed by its external identifier, or refreshes the
// text of an existing row. First-seen timestamps are preserved on update.
func (r *PostRepository) Upsert(ctx context.Context, idStr, text string, createdAtX time.Time) (UpsertOutcome, error) {
	ctx, span := telemetry.StartSpan(ctx, "db.post_upsert")
	defer span.End()

	existing, err := r.GetByIDStr(ctx, idStr)
	if err != nil {
		return OutcomeInserted, err
	}

	if existing != nil {
		if err := r.db.WithContext(ctx).Model(existing).Update("text", text).Error; err != nil {
			return OutcomeUpdated, err
		}
		return OutcomeUpdated, nil
	}

	post := &models.Post{
		IDStr:      idStr,
		Text:       text,
		CreatedAtX: createdAtX,
	}
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return OutcomeInserted, err
	}
	return OutcomeInserted, nil
}

// LinkRepository maintains the post-to-category association
type LinkRepository struct {
	*Repository
}

// NewLinkRepository creates a new link repository
func NewLinkRepository(repo *Repository) *LinkRepository {
	return &LinkRepository{Repository: repo}
}

// Link creates a post-category association. Re-linking an existing pair
// is a no-op, not an error.
func (r *LinkRepository) Link(ctx context.Context, postID, categoryID int64) error {
	ctx, span := telemetry.StartSpan(ctx, "db.link_create")
	defer span.End()

	link := &models.PostCategory{PostID: postID, CategoryID: categoryID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(link).Error
}

// PostsForCategory retrieves the posts linked to a category, newest first
// by external creation time
func (r *LinkRepository) PostsForCategory(ctx context.Context, categoryID int64) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Joins("JOIN post_categories ON post_categories.post_id = posts.id").
		Where("post_categories.category_id = ?", categoryID).
		Order("posts.created_at_x DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}
