package services

import (
	"fmt"
	"net/smtp"

	"ambulance-dispatch-service/config"
	"ambulance-dispatch-service/models"
)

// InterfaceEmailService 定义邮件服务接口
type InterfaceEmailService interface {
	SendPasswordResetEmail(user *models.User, token string)
}

// EmailService 通过SMTP发送系统邮件
type EmailService struct {
	Config *config.Config
}

// NewEmailService 创建新的邮件服务
func NewEmailService(cfg *config.Config) InterfaceEmailService {
	return &EmailService{Config: cfg}
}

// SendPasswordResetEmail 发送密码重置邮件。
// 发送是尽力而为的：失败只记日志，不影响调用方的请求处理。
func (s *EmailService) SendPasswordResetEmail(user *models.User, token string) {
	go func() {
		subject := "密码重置请求"
		body := fmt.Sprintf(
			"您好 %s：\r\n\r\n我们收到了您的密码重置请求。请使用以下令牌在1小时内完成重置：\r\n\r\n%s\r\n\r\n如果这不是您本人的操作，请忽略此邮件。\r\n",
			user.FullName(), token)

		msg := []byte(fmt.Sprintf(
			"From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
			s.Config.SMTPFrom, user.Email, subject, body))

		var auth smtp.Auth
		if s.Config.SMTPUser != "" {
			auth = smtp.PlainAuth("", s.Config.SMTPUser, s.Config.SMTPPass, s.Config.SMTPHost)
		}

		if err := smtp.SendMail(s.Config.GetSMTPAddr(), auth, s.Config.SMTPFrom, []string{user.Email}, msg); err != nil {
			config.Error("发送密码重置邮件失败 (user=%d): %v", user.ID, err)
			return
		}
		config.Info("密码重置邮件已发送 (user=%d)", user.ID)
	}()
}
