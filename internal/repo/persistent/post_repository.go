package persistent

import (
	"errors"
	"fmt"
	"strings"

	"board/internal/entity"
	"board/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepository interface {
	Save(post *entity.Post) error
	GetByID(id int) (*entity.Post, error)
	Delete(id int) error
	List(req entity.PageRequest) (*entity.Page, error)
	SearchByTitle(keyword string, req entity.PageRequest) (*entity.Page, error)
}

var sortableColumns = map[string]bool{
	"id":      true,
	"title":   true,
	"content": true,
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Save inserts posts without an ID and overwrites the row of posts that have one.
func (r *postRepository) Save(post *entity.Post) error {
	postModel := ToPostModel(post)

	var err error
	if postModel.ID == 0 {
		err = r.db.Create(postModel).Error
	} else {
		err = r.db.Save(postModel).Error
	}
	if err != nil {
		return err
	}

	post.ID = postModel.ID
	return nil
}

func (r *postRepository) GetByID(id int) (*entity.Post, error) {
	var postModel model.PostModel
	if err := r.db.Where("id = ?", id).First(&postModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post %d: %w", id, entity.ErrPostNotFound)
		}
		return nil, err
	}
	return ToPostEntity(&postModel), nil
}

func (r *postRepository) Delete(id int) error {
	return r.db.Delete(&model.PostModel{}, "id = ?", id).Error
}

func (r *postRepository) List(req entity.PageRequest) (*entity.Page, error) {
	return r.page(req, func(db *gorm.DB) *gorm.DB { return db })
}

// SearchByTitle matches keyword anywhere in the title, ignoring case. LIKE
// wildcards in the keyword match literally.
func (r *postRepository) SearchByTitle(keyword string, req entity.PageRequest) (*entity.Page, error) {
	pattern := "%" + escapeLike(keyword) + "%"
	return r.page(req, func(db *gorm.DB) *gorm.DB {
		return db.Where(`LOWER(title) LIKE LOWER(?) ESCAPE '\'`, pattern)
	})
}

func (r *postRepository) page(req entity.PageRequest, filter func(*gorm.DB) *gorm.DB) (*entity.Page, error) {
	var total int64
	if err := r.db.Model(&model.PostModel{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, err
	}

	if offset := req.Offset(); offset < 0 || int64(offset) >= total {
		return entity.NewPage(nil, req, total), nil
	}

	var postModels []model.PostModel
	query := r.db.Model(&model.PostModel{}).
		Scopes(filter).
		Order(orderBy(req)).
		Limit(req.Size).
		Offset(req.Offset())
	if err := query.Find(&postModels).Error; err != nil {
		return nil, err
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return entity.NewPage(posts, req, total), nil
}

func orderBy(req entity.PageRequest) clause.OrderBy {
	column := req.Sort
	if !sortableColumns[column] {
		column = entity.DefaultSort
	}
	desc := req.Direction != entity.SortAsc

	columns := []clause.OrderByColumn{{Column: clause.Column{Name: column}, Desc: desc}}
	if column != "id" {
		columns = append(columns, clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: desc})
	}
	return clause.OrderBy{Columns: columns}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
