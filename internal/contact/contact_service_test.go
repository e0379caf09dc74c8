package contact

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInquiryLabel(t *testing.T) {
	assert.Equal(t, "전시 문의", InquiryLabel("exhibition"))
	assert.Equal(t, "작품 문의", InquiryLabel("artwork"))
	assert.Equal(t, "대관 문의", InquiryLabel("rental"))
	assert.Equal(t, "언론 문의", InquiryLabel("press"))
	assert.Equal(t, "기타 문의", InquiryLabel("other"))

	// 未知类型归入其他
	assert.Equal(t, "기타 문의", InquiryLabel("spam"))
	assert.Equal(t, "기타 문의", InquiryLabel(""))
}

func TestService_Configured(t *testing.T) {
	assert.False(t, (&Service{}).Configured())
	assert.False(t, (&Service{serviceID: "s", templateID: "t"}).Configured())
	assert.True(t, (&Service{serviceID: "s", templateID: "t", publicKey: "k"}).Configured())
}

// TestService_Send 校验发往 EmailJS 的请求体
func TestService_Send(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	service := &Service{
		serviceID:  "svc_1",
		templateID: "tpl_1",
		publicKey:  "pub_1",
		privateKey: "priv_1",
		toEmail:    "gallery@example.com",
		endpoint:   server.URL,
		client:     &http.Client{Timeout: 5 * time.Second},
	}

	err := service.Send(context.Background(), &Message{
		Name:        "홍길동",
		Email:       "hong@example.com",
		Phone:       "010-1234-5678",
		InquiryType: "exhibition",
		Content:     "문의합니다",
	})
	assert.NoError(t, err)

	assert.Equal(t, "svc_1", received["service_id"])
	assert.Equal(t, "tpl_1", received["template_id"])
	assert.Equal(t, "pub_1", received["user_id"])
	assert.Equal(t, "priv_1", received["accessToken"])

	params, ok := received["template_params"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "gallery@example.com", params["to_email"])
	assert.Equal(t, "홍길동", params["from_name"])
	assert.Equal(t, "전시 문의", params["inquiry_type"])
}

// TestService_SendErrors 未配置和上游失败的错误处理
func TestService_SendErrors(t *testing.T) {
	unconfigured := &Service{client: http.DefaultClient}
	err := unconfigured.Send(context.Background(), &Message{Name: "x"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad template", http.StatusBadRequest)
	}))
	defer server.Close()

	service := &Service{
		serviceID:  "svc_1",
		templateID: "tpl_1",
		publicKey:  "pub_1",
		endpoint:   server.URL,
		client:     &http.Client{Timeout: 5 * time.Second},
	}

	err = service.Send(context.Background(), &Message{Name: "x"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}
