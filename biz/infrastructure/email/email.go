// Package email 事务邮件
package email

import (
	"context"
	"fmt"
	"learnhub/biz/infrastructure/config"
	"learnhub/biz/infrastructure/util/log"
)

type Message struct {
	ToName  string
	ToEmail string
	Subject string
	Text    string
	HTML    string
}

type ISender interface {
	Send(ctx context.Context, msg *Message) error
}

// EnrollmentMessage 报名成功通知
func EnrollmentMessage(name, email, courseTitle string) *Message {
	return &Message{
		ToName:  name,
		ToEmail: email,
		Subject: "You are enrolled in " + courseTitle,
		Text:    fmt.Sprintf("Hi %s, you now have access to \"%s\". Happy learning!", name, courseTitle),
		HTML:    fmt.Sprintf("<p>Hi %s,</p><p>You now have access to <strong>%s</strong>. Happy learning!</p>", name, courseTitle),
	}
}

// NewSender 未配置 SendGridKey 时退化为日志输出
func NewSender(config *config.Config) ISender {
	if config.Email.SendGridKey == "" {
		log.Info("NewSender: no sendgrid key, use console sender")
		return NewConsoleSender(config.Email.AppName)
	}
	return NewSendGridSender(config.Email.SendGridKey, config.Email.AppName, config.Email.From)
}

type ConsoleSender struct {
	subjPrefix string
}

func NewConsoleSender(appName string) *ConsoleSender {
	return &ConsoleSender{subjPrefix: "[" + appName + "] "}
}

func (s *ConsoleSender) Send(ctx context.Context, msg *Message) error {
	log.CtxInfo(ctx, "email to=%s subject=%s%s text=%s", msg.ToEmail, s.subjPrefix, msg.Subject, msg.Text)
	return nil
}
