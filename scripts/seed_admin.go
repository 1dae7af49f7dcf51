// 初始化超级管理员账号脚本
//
// 首次部署时执行一次，按配置文件 super_admin.email 创建管理员账号。
// 账号已存在时直接退出，不做任何修改。
//
// 用法: go run scripts/seed_admin.go [姓] [名]
package main

import (
	"errors"
	"log"
	"os"
	"student_mgt_backend/internal/config"
	"student_mgt_backend/internal/model"
	"student_mgt_backend/internal/repository"
	"student_mgt_backend/internal/util"
	"student_mgt_backend/pkg/database"
	"student_mgt_backend/pkg/logger"

	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}
	if cfg.SuperAdmin.Email == "" {
		log.Fatal("配置缺少 super_admin.email")
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	firstName, lastName := "Super", "Admin"
	if len(os.Args) > 2 {
		lastName, firstName = os.Args[1], os.Args[2]
	}

	userRepo := repository.NewUserRepository(db)
	if _, err := userRepo.FindByEmail(cfg.SuperAdmin.Email); err == nil {
		log.Printf("管理员 %s 已存在，跳过", cfg.SuperAdmin.Email)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("查询管理员失败: %v", err)
	}

	hashed, err := util.HashPassword(util.DefaultPassword(firstName, lastName))
	if err != nil {
		log.Fatalf("生成密码失败: %v", err)
	}

	admin := &model.User{
		FirstName:        firstName,
		LastName:         lastName,
		Email:            cfg.SuperAdmin.Email,
		Password:         hashed,
		IsAdmin:          true,
		EnrollmentStatus: model.AdminSt,
	}
	if err := userRepo.Create(admin); err != nil {
		log.Fatalf("创建管理员失败: %v", err)
	}

	log.Printf("已创建超级管理员 %s，初始密码为默认规则生成，请立即登录修改", cfg.SuperAdmin.Email)
}
