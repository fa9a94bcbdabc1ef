package service

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
)

// chatLogSize bounds the kept history; older messages are dropped.
const chatLogSize = 200

const chatGreeting = "Hi! I'm your fashion assistant. How can I help you today?"

type chatRule struct {
	keywords []string
	answer   string
}

// Rules are matched in order against the lower-cased message.
var chatRules = []chatRule{
	{[]string{"find me a dress"}, "I'd love to help you find the perfect dress! What occasion are you shopping for? Casual, formal, or party wear?"},
	{[]string{"size guide"}, "Our size guide varies by category. For dresses, we recommend measuring your bust, waist, and hips. Would you like specific measurements for a particular item?"},
	{[]string{"track my order"}, "To track your order, please provide your order number or email address. You can also check your order status in the 'My Orders' section of your account."},
	{[]string{"return policy"}, "We offer a 30-day return policy for unworn items with tags. Free returns are available for orders over $50. Would you like help with a specific return?"},
	{[]string{"style recommendations"}, "I can help you create amazing outfits! What's your style preference - classic, trendy, bohemian, or minimalist?"},
	{[]string{"current offers"}, "We currently have 20% off on all dresses and free shipping on orders over $75. Plus, new customers get 15% off their first order!"},
	{[]string{"hello", "hi"}, "Hello! Welcome to Worldofbrandsey. I'm here to help you find the perfect fashion pieces. What are you looking for today?"},
	{[]string{"price", "cost"}, "Our prices range from $25 for accessories to $300 for premium dresses. We often have sales and promotions. Would you like to see items in a specific price range?"},
	{[]string{"shipping"}, "We offer free standard shipping on orders over $75, which takes 3-5 business days. Express shipping (1-2 days) is available for $15. International shipping is also available!"},
	{[]string{"material", "fabric"}, "We use high-quality materials including organic cotton, silk, leather, and sustainable fabrics. Each product page has detailed material information. What type of fabric are you interested in?"},
}

const chatFallback = "That's a great question! While I'm still learning, I'd recommend browsing our collections or contacting our customer service team for detailed assistance. Is there anything specific about our products I can help you with?"

// QuickReplies are suggested prompts for the chat view.
var QuickReplies = []string{
	"Find me a dress",
	"Size guide",
	"Track my order",
	"Return policy",
	"Style recommendations",
	"Current offers",
}

func chatAnswer(message string) string {
	message = strings.ToLower(message)
	for _, r := range chatRules {
		for _, k := range r.keywords {
			if strings.Contains(message, k) {
				return r.answer
			}
		}
	}
	return chatFallback
}

// ChatBot keeps the latest chatLogSize messages and answers each user message
// after a delay. Pending answers die with the bot.
type ChatBot struct {
	mu       sync.Mutex
	messages []domain.ChatMessage
	pending  map[*Reply]struct{}
	nextID   int64
	closed   bool
	delay    func() time.Duration
	now      func() time.Time
}

func NewChatBot(minDelay, maxDelay time.Duration) *ChatBot {
	b := &ChatBot{
		pending: make(map[*Reply]struct{}),
		delay:   randomDelay(minDelay, maxDelay),
		now:     time.Now,
	}
	b.appendLocked(domain.ChatSenderBot, chatGreeting)
	return b
}

func randomDelay(lo, hi time.Duration) func() time.Duration {
	if hi <= lo {
		return func() time.Duration { return lo }
	}
	return func() time.Duration {
		return lo + rand.N(hi-lo)
	}
}

// A Reply is the handle of a scheduled bot answer.
type Reply struct {
	bot   *ChatBot
	timer *time.Timer
	done  chan struct{}
	once  sync.Once
}

// Done is closed once the answer is delivered or cancelled.
func (r *Reply) Done() <-chan struct{} {
	return r.done
}

// Cancel drops the answer if it has not been delivered yet.
func (r *Reply) Cancel() bool {
	b := r.bot
	b.mu.Lock()
	if _, ok := b.pending[r]; !ok {
		b.mu.Unlock()
		return false
	}
	delete(b.pending, r)
	r.timer.Stop()
	b.mu.Unlock()

	r.finish()
	return true
}

func (r *Reply) finish() {
	r.once.Do(func() { close(r.done) })
}

// Send logs the user message and schedules the answer.
func (b *ChatBot) Send(text string) (domain.ChatMessage, *Reply, error) {
	const op = "ChatBot.Send"

	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ChatMessage{}, nil, fmt.Errorf("%s: %w", op, domain.ErrEmptyMessage)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return domain.ChatMessage{}, nil, fmt.Errorf("%s: %w", op, domain.ErrChatClosed)
	}

	msg := b.appendLocked(domain.ChatSenderUser, text)

	r := &Reply{bot: b, done: make(chan struct{})}
	b.pending[r] = struct{}{}
	answer := chatAnswer(text)
	r.timer = time.AfterFunc(b.delay(), func() { b.deliver(r, answer) })

	return msg, r, nil
}

func (b *ChatBot) deliver(r *Reply, answer string) {
	b.mu.Lock()
	if _, ok := b.pending[r]; !ok {
		b.mu.Unlock()
		return
	}
	delete(b.pending, r)
	b.appendLocked(domain.ChatSenderBot, answer)
	b.mu.Unlock()

	r.finish()
}

func (b *ChatBot) appendLocked(sender domain.ChatSender, text string) domain.ChatMessage {
	b.nextID++
	msg := domain.ChatMessage{
		ID:     b.nextID,
		Sender: sender,
		Text:   text,
		At:     b.now(),
	}
	b.messages = append(b.messages, msg)
	if over := len(b.messages) - chatLogSize; over > 0 {
		b.messages = slices.Delete(b.messages, 0, over)
	}
	return msg
}

func (b *ChatBot) Messages() []domain.ChatMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.messages)
}

// Typing reports whether an answer is on its way.
func (b *ChatBot) Typing() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending) != 0
}

// Close cancels every pending answer. Further sends fail.
func (b *ChatBot) Close() {
	b.mu.Lock()
	b.closed = true
	replies := make([]*Reply, 0, len(b.pending))
	for r := range b.pending {
		r.timer.Stop()
		replies = append(replies, r)
	}
	clear(b.pending)
	b.mu.Unlock()

	for _, r := range replies {
		r.finish()
	}
}
