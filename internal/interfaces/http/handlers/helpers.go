package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	domainerrors "market-hub.backend/internal/domain/errors"
	"market-hub.backend/pkg/utils"
)

func pathID(c *gin.Context, name string) (primitive.ObjectID, error) {
	id, err := utils.ParseObjectID(c.Param(name))
	if err != nil {
		return primitive.NilObjectID, domainerrors.BadRequest("invalid " + name)
	}
	return id, nil
}

func pagination(c *gin.Context) utils.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return utils.GetPaginationParams(page, limit)
}
