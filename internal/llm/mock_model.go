package llm

import (
	"context"
	"log"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// MockChatModel 本地开发和测试用的固定响应模型。
// 未配置真实LLM时作为回退，保证摘要链路可以端到端跑通。
type MockChatModel struct {
	// Response 固定返回的内容，为空时返回一条通用摘要
	Response string
	// Err 用于测试失败路径
	Err error
	// CallCount 记录调用次数
	CallCount int

	boundTools []*schema.ToolInfo
}

var _ model.ToolCallingChatModel = (*MockChatModel)(nil)

// Generate 实现model.ChatModel接口
func (m *MockChatModel) Generate(ctx context.Context, messages []*schema.Message, options ...model.Option) (*schema.Message, error) {
	m.CallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	content := m.Response
	if content == "" {
		content = "候选人的核心技能与岗位要求高度吻合，历史面试表现稳定，值得优先安排沟通。"
	}
	return &schema.Message{
		Role:    "assistant",
		Content: content,
	}, nil
}

// Stream 实现model.ChatModel接口，摘要链路不使用流式响应
func (m *MockChatModel) Stream(ctx context.Context, messages []*schema.Message, options ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, nil
}

// BindTools 实现model.ChatModel接口
func (m *MockChatModel) BindTools(tools []*schema.ToolInfo) error {
	m.boundTools = tools
	log.Printf("[MockChatModel] BindTools called with %d tools.", len(tools))
	return nil
}

// WithTools 实现 model.ToolCallingChatModel 接口
func (m *MockChatModel) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	if err := m.BindTools(tools); err != nil {
		return nil, err
	}
	return m, nil
}
