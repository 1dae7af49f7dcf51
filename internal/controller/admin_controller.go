package controller

import (
	"errors"

	"student_mgt_backend/internal/service"
	"student_mgt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	UserService *service.UserService
}

func NewAdminController(userService *service.UserService) *AdminController {
	return &AdminController{UserService: userService}
}

// ListAdmins godoc
// @Summary 管理员列表
// @Tags 管理员
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.User}
// @Failure 403 {object} util.Response "仅限管理员"
// @Router /admin [get]
func (c *AdminController) ListAdmins(ctx *gin.Context) {
	admins, err := c.UserService.ListAdmins()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, admins)
}

// DeleteAdmin godoc
// @Summary 删除管理员
// @Description 需要超级管理员权限和新鲜令牌
// @Tags 管理员
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "管理员ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "仅限超级管理员"
// @Failure 404 {object} util.Response "管理员不存在"
// @Router /admins/{id} [delete]
func (c *AdminController) DeleteAdmin(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid admin id")
		return
	}

	if err := c.UserService.DeleteAdmin(id); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, "Admin not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"message": "Admin deleted"})
}
