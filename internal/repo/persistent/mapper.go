package persistent

import (
	"board/internal/entity"
	"board/internal/model"
)

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	return &entity.Post{
		ID:       m.ID,
		Title:    m.Title,
		Content:  m.Content,
		Filename: fromNullable(m.Filename),
		Filepath: fromNullable(m.Filepath),
	}
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	return &model.PostModel{
		ID:       e.ID,
		Title:    e.Title,
		Content:  e.Content,
		Filename: toNullable(e.Filename),
		Filepath: toNullable(e.Filepath),
	}
}

func toNullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func fromNullable(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
