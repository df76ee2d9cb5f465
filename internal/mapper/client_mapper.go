package mapper

import (
	"cme-be/internal/entity"
	"cme-be/internal/model"
)

type ClientMapper struct{}

func NewClientMapper() *ClientMapper {
	return &ClientMapper{}
}

func (m *ClientMapper) ToEntity(n *model.Client) *entity.Client {
	if n == nil {
		return nil
	}
	return &entity.Client{
		Id:         n.Id,
		Name:       n.Name,
		SecretHash: n.SecretHash,
		CreatedAt:  n.CreatedAt,
	}
}

func (m *ClientMapper) ToModel(n *entity.Client) *model.Client {
	if n == nil {
		return nil
	}
	return &model.Client{
		Id:         n.Id,
		Name:       n.Name,
		SecretHash: n.SecretHash,
		CreatedAt:  n.CreatedAt,
	}
}
