package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/space458/gallery-backend/config"
)

const emailjsEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// ErrNotConfigured 邮件转发未配置
var ErrNotConfigured = errors.New("contact email is not configured")

// inquiryTypeLabels 咨询类型到邮件标签的映射
var inquiryTypeLabels = map[string]string{
	"exhibition": "전시 문의",
	"artwork":    "작품 문의",
	"rental":     "대관 문의",
	"press":      "언론 문의",
	"other":      "기타 문의",
}

// Message 联系表单内容
type Message struct {
	Name        string
	Email       string
	Phone       string
	InquiryType string
	Content     string
}

// Service 通过 EmailJS 转发联系表单
type Service struct {
	serviceID  string
	templateID string
	publicKey  string
	privateKey string
	toEmail    string
	endpoint   string
	client     *http.Client
}

// NewService 创建联系邮件服务
func NewService(cfg *config.Config) *Service {
	return &Service{
		serviceID:  cfg.EmailJSServiceID,
		templateID: cfg.EmailJSTemplateID,
		publicKey:  cfg.EmailJSPublicKey,
		privateKey: cfg.EmailJSPrivateKey,
		toEmail:    cfg.GalleryEmail,
		endpoint:   emailjsEndpoint,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured 返回服务是否可用
func (s *Service) Configured() bool {
	return s.serviceID != "" && s.templateID != "" && s.publicKey != ""
}

// InquiryLabel 返回咨询类型的邮件标签，未知类型归入其他
func InquiryLabel(inquiryType string) string {
	if label, ok := inquiryTypeLabels[inquiryType]; ok {
		return label
	}
	return inquiryTypeLabels["other"]
}

// Send 转发一条联系消息
func (s *Service) Send(ctx context.Context, msg *Message) error {
	if !s.Configured() {
		return ErrNotConfigured
	}

	payload := map[string]interface{}{
		"service_id":  s.serviceID,
		"template_id": s.templateID,
		"user_id":     s.publicKey,
		"template_params": map[string]string{
			"to_email":     s.toEmail,
			"from_name":    msg.Name,
			"from_email":   msg.Email,
			"phone":        msg.Phone,
			"inquiry_type": InquiryLabel(msg.InquiryType),
			"message":      msg.Content,
		},
	}
	if s.privateKey != "" {
		payload["accessToken"] = s.privateKey
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("emailjs returned status %d: %s", resp.StatusCode, string(detail))
	}

	return nil
}
