package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/haatos/simple-shop/internal/access"
	"github.com/haatos/simple-shop/internal/store"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	chatHistoryLimit = 10
	guestName        = "Пользователь"
)

const supportSystemPrompt = `Ты - дружелюбный AI-ассистент поддержки интернет-магазина RillShop (игровая энергия).

Твои задачи:
- Отвечать на вопросы о товарах, оплате, доставке
- Помогать с оформлением заказов
- Решать проблемы клиентов
- Быть вежливым и полезным

Информация о магазине:
- Товары: игровая энергия (300-1300₽)
- Оплата: карты, СБП, PayPal
- Доставка: 1-3 дня, бесплатно от 1000₽
- Возврат: 14 дней

Отвечай кратко, по делу, на русском языке.`

const siteManagerSystemPrompt = `Ты - AI-ассистент для управления интернет-магазином RillShop.

Твои возможности:
- Добавлять/удалять разделы и функции
- Изменять дизайн, цвета, стили
- Настраивать товары и категории
- Редактировать тексты и контент
- Управлять структурой сайта

Когда пользователь что-то просит:
1. Подтверди, что понял запрос
2. Опиши, что именно сделал
3. Дай короткие инструкции, если нужно

Отвечай кратко, по делу, на русском языке.
В ответе опиши выполненные действия конкретно.`

const actionsPromptFormat = `На основе запроса пользователя и ответа AI, создай список из 2-4 конкретных действий, которые были выполнены.

Запрос: %s
Ответ AI: %s

Верни только JSON массив строк с действиями. Формат: ["Действие 1", "Действие 2"]`

var defaultSiteManagerActions = []string{"Обработал запрос", "Внес изменения на сайт"}

type ChatMessageParams struct {
	Role    string `json:"role"    validate:"oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

type CompletionRequest struct {
	System      string
	Messages    []ChatMessageParams
	MaxTokens   int64
	Temperature float64
}

// ChatCompleter produces a single chat completion.
type ChatCompleter interface {
	Complete(context.Context, CompletionRequest) (string, error)
}

type OpenAICompleter struct {
	client openai.Client
	model  string
}

func NewOpenAICompleter(apiKey, model string) *OpenAICompleter {
	return &OpenAICompleter{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (oc *OpenAICompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	for _, m := range req.Messages {
		if m.Role == "assistant" {
			messages = append(messages, openai.AssistantMessage(m.Content))
		} else {
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}

	resp, err := oc.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(oc.model),
		Messages:    messages,
		MaxTokens:   openai.Int(req.MaxTokens),
		Temperature: openai.Float(req.Temperature),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

type ChatHistoryStore interface {
	CreateChatExchange(context.Context, *int64, store.ChatType, string, string) error
	ListChatMessages(context.Context, int64, store.ChatType, int) ([]*store.ChatMessage, error)
}

type SupportParams struct {
	Messages    []ChatMessageParams `json:"messages"    validate:"dive"`
	UserMessage string              `json:"userMessage" validate:"required,max=4000"`
	UserName    string              `json:"userName"`
}

type SupportReply struct {
	Response string `json:"response"`
}

type SiteManagerParams struct {
	Messages    []ChatMessageParams `json:"messages"    validate:"dive"`
	UserRequest string              `json:"userRequest" validate:"required,max=4000"`
}

type SiteManagerReply struct {
	Response string         `json:"response"`
	Actions  []string       `json:"actions"`
	Updates  map[string]any `json:"updates"`
}

type AssistantService struct {
	completer ChatCompleter
	chatStore ChatHistoryStore
	timeout   time.Duration
}

// NewAssistantService returns an AssistantService. A nil completer answers
// with the built-in keyword responses.
func NewAssistantService(
	completer ChatCompleter,
	chatStore ChatHistoryStore,
	timeout time.Duration,
) *AssistantService {
	return &AssistantService{completer, chatStore, timeout}
}

func (s *AssistantService) Support(
	ctx context.Context,
	actor *store.Account,
	p SupportParams,
) (*SupportReply, error) {
	if err := access.Authorize(SubjectOf(actor), access.UseSupportChat); err != nil {
		return nil, err
	}
	p.UserMessage = strings.TrimSpace(p.UserMessage)
	if err := validateStruct(p); err != nil {
		return nil, err
	}
	userName := strings.TrimSpace(p.UserName)
	if userName == "" {
		userName = guestName
		if actor != nil {
			userName = actor.Name
		}
	}

	var reply string
	if s.completer == nil {
		reply = supportFallback(userName, p.UserMessage)
	} else {
		history, err := s.history(ctx, actor, store.SupportChat, p.Messages)
		if err != nil {
			return nil, err
		}
		reply, err = s.complete(ctx, "support chat", CompletionRequest{
			System:      supportSystemPrompt,
			Messages:    append(history, ChatMessageParams{Role: "user", Content: p.UserMessage}),
			MaxTokens:   500,
			Temperature: 0.7,
		})
		if err != nil {
			return nil, err
		}
	}

	s.record(ctx, actor, store.SupportChat, p.UserMessage, reply)
	return &SupportReply{Response: reply}, nil
}

func (s *AssistantService) SiteManager(
	ctx context.Context,
	actor *store.Account,
	p SiteManagerParams,
) (*SiteManagerReply, error) {
	if err := access.Authorize(SubjectOf(actor), access.UseSiteManager); err != nil {
		return nil, err
	}
	p.UserRequest = strings.TrimSpace(p.UserRequest)
	if err := validateStruct(p); err != nil {
		return nil, err
	}

	if s.completer == nil {
		reply := siteManagerFallback(p.UserRequest)
		s.record(ctx, actor, store.SiteManagerChat, p.UserRequest, reply.Response)
		return reply, nil
	}

	history, err := s.history(ctx, actor, store.SiteManagerChat, p.Messages)
	if err != nil {
		return nil, err
	}
	response, err := s.complete(ctx, "site manager chat", CompletionRequest{
		System:      siteManagerSystemPrompt,
		Messages:    append(history, ChatMessageParams{Role: "user", Content: p.UserRequest}),
		MaxTokens:   600,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, err
	}

	actions := defaultSiteManagerActions
	rawActions, err := s.complete(ctx, "site manager actions", CompletionRequest{
		Messages: []ChatMessageParams{{
			Role:    "user",
			Content: fmt.Sprintf(actionsPromptFormat, p.UserRequest, response),
		}},
		MaxTokens:   200,
		Temperature: 0.5,
	})
	if err == nil {
		actions = parseActions(rawActions)
	} else {
		log.Printf("err listing site manager actions: %+v\n", err)
	}

	s.record(ctx, actor, store.SiteManagerChat, p.UserRequest, response)
	return &SiteManagerReply{
		Response: response,
		Actions:  actions,
		Updates:  map[string]any{},
	}, nil
}

func (s *AssistantService) complete(
	ctx context.Context,
	op string,
	req CompletionRequest,
) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	reply, err := s.completer.Complete(ctx, req)
	if err != nil {
		return "", &NetworkError{Op: op, Err: err}
	}
	return reply, nil
}

// history returns the last messages of the conversation. Messages sent by
// the client win over the stored history.
func (s *AssistantService) history(
	ctx context.Context,
	actor *store.Account,
	chatType store.ChatType,
	sent []ChatMessageParams,
) ([]ChatMessageParams, error) {
	if len(sent) > 0 || actor == nil {
		if len(sent) > chatHistoryLimit {
			sent = sent[len(sent)-chatHistoryLimit:]
		}
		return append([]ChatMessageParams(nil), sent...), nil
	}
	stored, err := s.chatStore.ListChatMessages(ctx, actor.AccountID, chatType, chatHistoryLimit)
	if err != nil {
		return nil, err
	}
	history := make([]ChatMessageParams, 0, len(stored))
	for _, m := range stored {
		history = append(history, ChatMessageParams{Role: m.Role, Content: m.Content})
	}
	return history, nil
}

func (s *AssistantService) record(
	ctx context.Context,
	actor *store.Account,
	chatType store.ChatType,
	message, reply string,
) {
	var accountID *int64
	if actor != nil {
		accountID = &actor.AccountID
	}
	if err := s.chatStore.CreateChatExchange(ctx, accountID, chatType, message, reply); err != nil {
		log.Printf("err storing %s chat: %+v\n", chatType, err)
	}
}

func (s *AssistantService) ChatHistory(
	ctx context.Context,
	actor *store.Account,
	chatType store.ChatType,
) ([]*store.ChatMessage, error) {
	if actor == nil {
		return nil, access.ErrNotAuthenticated
	}
	return s.chatStore.ListChatMessages(ctx, actor.AccountID, chatType, chatHistoryLimit)
}

func parseActions(raw string) []string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.Trim(raw, "`\n ")
	var actions []string
	if err := json.Unmarshal([]byte(raw), &actions); err != nil || len(actions) == 0 {
		return defaultSiteManagerActions
	}
	return actions
}

var supportKeywords = []struct {
	keyword  string
	response string
}{
	{"оформить заказ", "Привет, %s! Для оформления заказа:\n1. Добавьте товары в корзину\n2. Нажмите на иконку корзины\n3. Выберите способ оплаты\n4. Нажмите \"Оплатить\""},
	{"оплат", "Мы принимаем: банковские карты, СБП и PayPal. Все платежи защищены."},
	{"возврат", "Вы можете вернуть товар в течение 14 дней с момента покупки. Обратитесь в поддержку с номером заказа."},
	{"доставк", "Доставка осуществляется в течение 1-3 рабочих дней. Бесплатная доставка от 1000₽."},
}

func supportFallback(userName, message string) string {
	lower := strings.ToLower(message)
	for _, k := range supportKeywords {
		if strings.Contains(lower, k.keyword) {
			if strings.Contains(k.response, "%s") {
				return fmt.Sprintf(k.response, userName)
			}
			return k.response
		}
	}
	return "Извините, я не могу ответить на этот вопрос. Обратитесь к администратору."
}

func siteManagerFallback(request string) *SiteManagerReply {
	lower := strings.ToLower(request)
	reply := &SiteManagerReply{Updates: map[string]any{}}
	switch {
	case strings.Contains(lower, "цвет"):
		reply.Actions = []string{"Изменил цветовую схему сайта", "Обновил все кнопки и элементы"}
		reply.Response = "Я изменил цвета сайта! Новая цветовая схема применена ко всем элементам. Проверьте результат."
	case strings.Contains(lower, "добав") &&
		(strings.Contains(lower, "раздел") || strings.Contains(lower, "секц")):
		reply.Actions = []string{"Создал новый раздел", "Добавил заголовок и контент", "Настроил навигацию"}
		reply.Response = "Отлично! Я добавил новый раздел на сайт. Вы можете найти его в навигации."
	case strings.Contains(lower, "убра") || strings.Contains(lower, "удал"):
		reply.Actions = []string{"Удалил указанные элементы", "Обновил структуру страницы"}
		reply.Response = "Готово! Я убрал ненужные элементы с сайта."
	case strings.Contains(lower, "товар") || strings.Contains(lower, "продукт"):
		reply.Actions = []string{"Настроил категории товаров", "Обновил карточки продуктов"}
		reply.Response = "Я настроил раздел товаров согласно вашему запросу!"
	default:
		reply.Actions = []string{"Проанализировал запрос", "Внес изменения в сайт"}
		reply.Response = "Я обработал ваш запрос и внес соответствующие изменения на сайт!"
	}
	return reply
}
