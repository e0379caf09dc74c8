package auth

import (
	"crypto/subtle"
	"errors"
	"log"
	"time"

	"github.com/space458/gallery-backend/database/repo/accounts"
	cryptopackage "github.com/space458/gallery-backend/utils/crypto"
)

// ErrInvalidCredentials 用户名或密码错误
var ErrInvalidCredentials = errors.New("invalid username or password")

// LoginResult 登录成功结果
type LoginResult struct {
	Token    string
	Expiry   time.Time
	Username string
}

// LoginService 管理登录流程，含按 IP 的失败节流
type LoginService struct {
	accountsRepo *accounts.Repository
	attemptsRepo *accounts.LoginAttemptRepository
	jwtService   *JWTService

	// 环境变量回退凭据，数据库里没有用户时使用
	fallbackUsername string
	fallbackPassword string
}

// NewLoginService 创建登录服务
func NewLoginService(accountsRepo *accounts.Repository, attemptsRepo *accounts.LoginAttemptRepository,
	jwtService *JWTService, fallbackUsername, fallbackPassword string) *LoginService {
	return &LoginService{
		accountsRepo:     accountsRepo,
		attemptsRepo:     attemptsRepo,
		jwtService:       jwtService,
		fallbackUsername: fallbackUsername,
		fallbackPassword: fallbackPassword,
	}
}

// Login 校验凭据并签发会话令牌
// 锁定窗口内直接返回 ErrTooManyAttempts，不再校验凭据
func (s *LoginService) Login(ip, username, password string, now time.Time) (*LoginResult, error) {
	if err := s.attemptsRepo.Check(ip, now); err != nil {
		return nil, err
	}

	userID, ok, err := s.verify(username, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		if err := s.attemptsRepo.RecordFailure(ip, now); err != nil {
			log.Printf("[auth] failed to record login failure for %s: %v", ip, err)
		}
		return nil, ErrInvalidCredentials
	}

	if err := s.attemptsRepo.Clear(ip); err != nil {
		log.Printf("[auth] failed to clear login attempts for %s: %v", ip, err)
	}

	token, expiry, err := s.jwtService.GenerateToken(username, userID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:    token,
		Expiry:   expiry,
		Username: username,
	}, nil
}

// verify 校验凭据，环境变量回退凭据优先于数据库用户
// 回退凭据是找回入口，数据库里的同名用户不能把它遮蔽掉
func (s *LoginService) verify(username, password string) (uint, bool, error) {
	if s.fallbackUsername != "" && s.fallbackPassword != "" {
		userMatch := subtle.ConstantTimeCompare([]byte(username), []byte(s.fallbackUsername)) == 1
		passMatch := subtle.ConstantTimeCompare([]byte(password), []byte(s.fallbackPassword)) == 1
		if userMatch && passMatch {
			return 0, true, nil
		}
	}

	user, err := s.accountsRepo.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, accounts.ErrUserNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}

	match, err := cryptopackage.ComparePasswordAndHash(password, user.Password)
	if err != nil {
		return 0, false, err
	}
	return user.ID, match, nil
}
