package service

import (
	"coffeeshop/internal/entity"
	"coffeeshop/internal/utils"

	"github.com/google/uuid"
)

type JWTTokenIssuer struct {
	Manager *utils.JWTManager
}

func (j JWTTokenIssuer) IssuePair(user entity.User) (utils.TokenPair, error) {
	if j.Manager == nil {
		return utils.TokenPair{}, utils.ErrTokenInvalid
	}
	return j.Manager.IssuePair(user.ID, string(user.Role))
}

func (j JWTTokenIssuer) ParseRefresh(token string) (uuid.UUID, error) {
	if j.Manager == nil {
		return uuid.Nil, utils.ErrTokenInvalid
	}
	return j.Manager.ParseRefresh(token)
}
