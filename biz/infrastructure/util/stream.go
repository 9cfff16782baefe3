package util

import (
	"learnhub/biz/infrastructure/util/log"

	"github.com/bytedance/sonic"
)

type StreamType string

var (
	STInit  StreamType = "init"
	STEvent StreamType = "event"
	STError StreamType = "error"
)

// StreamMessage 推送给长连接客户端的帧
type StreamMessage struct {
	Type    StreamType `json:"type"`              // 消息类型
	Channel string     `json:"channel,omitempty"` // 来源频道
	Message string     `json:"message,omitempty"` // 事件名或文本消息
	Data    any        `json:"data,omitempty"`    // 数据内容
}

// SendStreamMessage 非阻塞投递，通道满时丢弃并返回 false
func SendStreamMessage(resultChan chan<- string, msg *StreamMessage) bool {
	jsonData, err := sonic.MarshalString(msg)
	if err != nil {
		log.Error("推送消息JSON序列化失败: %v", err)
		return false
	}
	select {
	case resultChan <- jsonData:
		return true
	default:
		log.Error("推送消息通道已满，跳过消息: %s %s", msg.Type, msg.Message)
		return false
	}
}
