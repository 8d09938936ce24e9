// issue-token 为运维与联调签发 Access Token。
// 正式环境的登录由认证模块负责，本工具与服务共用 auth.jwt_secret。
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/w-isiah/shpsk/config"
	"github.com/w-isiah/shpsk/internal/auth"
	"github.com/w-isiah/shpsk/pkg/jwt"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径")
	userID := flag.String("user", "", "用户 ID（必填）")
	role := flag.String("role", auth.RoleStaff, "角色：super_admin / admin / staff 或其他只读角色")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "缺少 -user 参数")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	token, err := jwt.NewManager(&cfg.Auth).GenerateAccessToken(*userID, *role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "签发 Token 失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
