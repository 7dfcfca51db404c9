package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/flowcoaching/site-server-go/internal/config"
	apperrors "github.com/flowcoaching/site-server-go/internal/errors"
)

const (
	openAIChatURL = "https://api.openai.com/v1/chat/completions"

	chatModel       = "gpt-4o-mini"
	chatTemperature = 0.7
	chatMaxTokens   = 300

	chatFallbackReply = "Üzgünüm, bir hata oluştu."
)

const chatSystemPrompt = `Sen, Flow Coaching & Leadership Institute'da koçluk eğitimi hakkında bilgi veren bir AI eğitim danışmanısın. Aynı zamanda satış temsilcisi gibi yönlendirici ve ikna edici şekilde konuşursun.

GÖREVLER:
1. Kullanıcının sorularını yanıtla
2. Koçluk eğitimi hakkında bilgi ver
3. Konuşma boyunca profesyonel ama sıcak bir ton kullan
4. Kullanıcıyı eğitime kayıt olmaya yönlendir
5. "İstersen seni hemen ön kayda alabilirim" gibi satış CTA'ları kullan
6. Kullanıcı iletişim bilgisi paylaşmak isterse, ekrandaki formu doldurmasını söyle

EĞİTİM BİLGİLERİ:
- Program: Flow Temel Koçluk Okulu - ICF Onaylı Sertifika Programı
- Format: Tamamen Online (Canlı dersler)
- Süre: 6 Modül, toplam 125+ saat
- Akreditasyon: ICF Level 1 & Level 2
- Fiyat bilgisi için detaylı bilgi almak isteyenlere danışman yönlendirmesi yap

MODÜLLER:
1. Koçluğa Giriş ve Temel İlkeler
2. Aktif Dinleme ve Güçlü Sorular
3. Hedef Belirleme ve Aksiyon Planlama
4. Değerler ve İnançlarla Çalışma
5. Koçluk Araçları ve Modelleri
6. Süpervizyon ve Sertifikasyon

ÖNEMLİ:
- Türkçe konuş
- Samimi ama profesyonel ol
- Soruları kısa ve net tut
- Her mesajda bir soru veya CTA olsun
- Cevapları kısa tut (maksimum 2-3 cümle)`

// ChatMessage is one turn of a conversation as supplied by the client.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionClient produces a reply for a full conversation. The server keeps
// no state between calls; the caller resends the history each time.
type CompletionClient interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}

type ChatService struct {
	client CompletionClient
}

func NewChatService(client CompletionClient) *ChatService {
	return &ChatService{client: client}
}

// Converse prepends the fixed system prompt and relays the conversation to
// the completion provider.
func (s *ChatService) Converse(ctx context.Context, messages []ChatMessage) (string, error) {
	withSystem := make([]ChatMessage, 0, len(messages)+1)
	withSystem = append(withSystem, ChatMessage{Role: "system", Content: chatSystemPrompt})
	withSystem = append(withSystem, messages...)

	reply, err := s.client.Complete(ctx, withSystem)
	if err != nil {
		return "", apperrors.Upstream("chat completion", err)
	}
	if reply == "" {
		return chatFallbackReply, nil
	}
	return reply, nil
}

// OpenAIClient is the production CompletionClient backed by the OpenAI chat
// completions API.
type OpenAIClient struct {
	apiKey string
	client *http.Client
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{
		apiKey: apiKey,
		client: &http.Client{
			Timeout: config.ChatTimeout,
		},
	}
}

type openAIChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *OpenAIClient) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	body, err := json.Marshal(openAIChatRequest{
		Model:       chatModel,
		Messages:    messages,
		Temperature: chatTemperature,
		MaxTokens:   chatMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIChatURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.client.Do(req)
	elapsed := time.Since(start)

	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("completion failed with status %d", resp.StatusCode)
	}

	var result openAIChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	log.Debug().Dur("elapsed", elapsed).Msg("chat completion returned")

	if len(result.Choices) == 0 {
		return "", nil
	}
	return result.Choices[0].Message.Content, nil
}
